package sqlite_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/aziyat1977/Inter-1.1/internal/models"
	"github.com/aziyat1977/Inter-1.1/internal/repository"
	"github.com/aziyat1977/Inter-1.1/internal/repository/sqlite"
	"github.com/aziyat1977/Inter-1.1/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type FeedbackRepositorySuite struct {
	suite.Suite
	repo repository.FeedbackRepository
	base time.Time
}

func (s *FeedbackRepositorySuite) SetupTest() {
	d := testutil.NewTestDB(s.T())
	s.repo = sqlite.NewFeedbackRepository(d.DB)
	s.base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *FeedbackRepositorySuite) pending(id string, at time.Time) models.FeedbackEntry {
	return models.FeedbackEntry{
		ID:        id,
		LearnerID: "learner-1",
		Question:  "Is this true?",
		Answer:    "I think most of them are contacts.",
		Status:    models.FeedbackPending,
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func (s *FeedbackRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Insert(ctx, s.pending("f1", s.base)))

	got, err := s.repo.Get(ctx, "f1")
	s.Require().NoError(err)
	s.Assert().Equal("learner-1", got.LearnerID)
	s.Assert().Equal(models.FeedbackPending, got.Status)
	s.Assert().False(got.FromModel)
	s.Assert().True(s.base.Equal(got.CreatedAt))
}

func (s *FeedbackRepositorySuite) TestInsertDuplicate() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Insert(ctx, s.pending("f1", s.base)))
	s.Assert().Error(s.repo.Insert(ctx, s.pending("f1", s.base)))
}

func (s *FeedbackRepositorySuite) TestGetMissing() {
	_, err := s.repo.Get(context.Background(), "missing")
	s.Assert().ErrorIs(err, sql.ErrNoRows)
}

func (s *FeedbackRepositorySuite) TestUpdate() {
	ctx := context.Background()
	e := s.pending("f1", s.base)
	s.Require().NoError(s.repo.Insert(ctx, e))

	e.Feedback = "Nice idea, try a linking word."
	e.Score = 7
	e.FromModel = true
	e.Status = models.FeedbackDone
	e.UpdatedAt = s.base.Add(time.Minute)
	s.Require().NoError(s.repo.Update(ctx, e))

	got, err := s.repo.Get(ctx, "f1")
	s.Require().NoError(err)
	s.Assert().Equal(models.FeedbackDone, got.Status)
	s.Assert().Equal(7, got.Score)
	s.Assert().True(got.FromModel)
	s.Assert().Equal("Nice idea, try a linking word.", got.Feedback)
	s.Assert().True(e.UpdatedAt.Equal(got.UpdatedAt))
}

func (s *FeedbackRepositorySuite) TestUpdateMissing() {
	err := s.repo.Update(context.Background(), s.pending("ghost", s.base))
	s.Assert().ErrorIs(err, sql.ErrNoRows)
}

func (s *FeedbackRepositorySuite) TestListRecent() {
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("f%d", i)
		s.Require().NoError(s.repo.Insert(ctx, s.pending(id, s.base.Add(time.Duration(i)*time.Minute))))
	}

	entries, err := s.repo.ListRecent(ctx, 3)
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Assert().Equal("f4", entries[0].ID)
	s.Assert().Equal("f2", entries[2].ID)

	all, err := s.repo.ListRecent(ctx, 0)
	s.Require().NoError(err)
	s.Assert().Len(all, 5)
}

func TestFeedbackRepositorySuite(t *testing.T) {
	suite.Run(t, new(FeedbackRepositorySuite))
}
