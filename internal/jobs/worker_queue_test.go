package jobs_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aziyat1977/Inter-1.1/internal/feedback"
	"github.com/aziyat1977/Inter-1.1/internal/jobs"
	"github.com/aziyat1977/Inter-1.1/internal/models"
	"github.com/aziyat1977/Inter-1.1/internal/testutil/mocks"
	"github.com/aziyat1977/Inter-1.1/internal/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sink struct {
	mu      sync.Mutex
	entries []models.FeedbackEntry
}

func (s *sink) AttachFeedback(e models.FeedbackEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
}

func (s *sink) all() []models.FeedbackEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.FeedbackEntry(nil), s.entries...)
}

var fixed = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func newQueue(pool *worker.Pool, client feedback.Client, repo *mocks.MockFeedbackRepository) *jobs.WorkerQueue {
	return jobs.NewWorkerQueue(pool, client, repo, time.Second,
		jobs.WithNow(func() time.Time { return fixed }),
		jobs.WithIDGenerator(func() string { return "fb-1" }))
}

func TestEnqueueFeedback_Reviewed(t *testing.T) {
	repo := new(mocks.MockFeedbackRepository)
	client := new(mocks.MockFeedbackClient)
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(e models.FeedbackEntry) bool {
		return e.ID == "fb-1" && e.Status == models.FeedbackPending && e.Answer == "bold claim"
	})).Return(nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	client.On("Review", mock.Anything, mock.Anything).Return(feedback.Result{Feedback: "Good.", Score: 9}, nil)

	pool := worker.NewPool(1, 2)
	pool.Start(context.Background())
	q := newQueue(pool, client, repo)
	s := &sink{}

	entry, err := q.EnqueueFeedback(context.Background(), s, jobs.FeedbackRequest{
		LearnerID: "l-1",
		Question:  "Is this true?",
		Answer:    "<b>bold</b> claim",
	})
	require.NoError(t, err)
	assert.Equal(t, models.FeedbackPending, entry.Status)
	assert.Equal(t, fixed, entry.CreatedAt)

	pool.Stop()

	got := s.all()
	require.Len(t, got, 2)
	assert.Equal(t, models.FeedbackPending, got[0].Status)
	assert.Equal(t, models.FeedbackDone, got[1].Status)
	assert.Equal(t, 9, got[1].Score)
	assert.True(t, got[1].FromModel)
	repo.AssertExpectations(t)
}

func TestEnqueueFeedback_StoppedPoolStoresFallback(t *testing.T) {
	repo := new(mocks.MockFeedbackRepository)
	repo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(e models.FeedbackEntry) bool {
		return e.Status == models.FeedbackDone && e.Score == feedback.Fallback.Score && !e.FromModel
	})).Return(nil)

	pool := worker.NewPool(1, 1)
	pool.Start(context.Background())
	pool.Stop()

	s := &sink{}
	entry, err := newQueue(pool, feedback.Offline{}, repo).EnqueueFeedback(context.Background(), s,
		jobs.FeedbackRequest{LearnerID: "l-1", Question: "q", Answer: "an answer"})
	require.NoError(t, err)
	assert.Equal(t, models.FeedbackDone, entry.Status)
	assert.Equal(t, feedback.Fallback.Feedback, entry.Feedback)
	assert.Len(t, s.all(), 2)
	repo.AssertExpectations(t)
}

func TestEnqueueFeedback_InsertError(t *testing.T) {
	repo := new(mocks.MockFeedbackRepository)
	repo.On("Insert", mock.Anything, mock.Anything).Return(errors.New("locked"))

	pool := worker.NewPool(1, 1)
	s := &sink{}
	_, err := newQueue(pool, feedback.Offline{}, repo).EnqueueFeedback(context.Background(), s,
		jobs.FeedbackRequest{LearnerID: "l-1", Answer: "x"})
	assert.Error(t, err)
	assert.Empty(t, s.all())
	assert.Equal(t, 0, pool.QueueSize())
}

func TestEnqueueFeedback_StoresEncodedMarkupAsText(t *testing.T) {
	repo := new(mocks.MockFeedbackRepository)
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(e models.FeedbackEntry) bool {
		return e.Answer == "I agree  bold"
	})).Return(nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	pool := worker.NewPool(1, 2)
	pool.Start(context.Background())
	q := newQueue(pool, feedback.Offline{}, repo)

	entry, err := q.EnqueueFeedback(context.Background(), &sink{}, jobs.FeedbackRequest{
		LearnerID: "l-1",
		Question:  "Is this true?",
		Answer:    "I agree &lt;script&gt;alert(1)&lt;/script&gt; <b>bold</b>",
	})
	pool.Stop()

	require.NoError(t, err)
	assert.NotContains(t, entry.Answer, "<")
	repo.AssertExpectations(t)
}
