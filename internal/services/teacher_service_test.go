package services

import (
	"bytes"
	"context"
	stderrors "errors"
	"net/http"
	"testing"
	"time"

	"github.com/aziyat1977/Inter-1.1/internal/content"
	"github.com/aziyat1977/Inter-1.1/internal/models"
	"github.com/aziyat1977/Inter-1.1/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTeacher(t *testing.T, passcode string, repo *mocks.MockFeedbackRepository, contentRepo *mocks.MockContentRepository) TeacherService {
	t.Helper()
	if contentRepo == nil {
		contentRepo = new(mocks.MockContentRepository)
	}
	svc, err := NewTeacherService(NewContentService(contentRepo), repo, passcode, WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err)
	return svc
}

func TestTeacherService_Open(t *testing.T) {
	svc := newTeacher(t, "", new(mocks.MockFeedbackRepository), nil)
	assert.False(t, svc.Locked())
	assert.True(t, svc.Authorized(""))

	token, err := svc.Unlock(context.Background(), "anything")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestTeacherService_Passcode(t *testing.T) {
	svc := newTeacher(t, "celta", new(mocks.MockFeedbackRepository), nil)
	ctx := context.Background()
	assert.True(t, svc.Locked())
	assert.False(t, svc.Authorized(""))

	_, err := svc.Unlock(ctx, "wrong")
	assertStatus(t, err, http.StatusUnauthorized)

	token, err := svc.Unlock(ctx, "celta")
	require.NoError(t, err)
	assert.True(t, svc.Authorized(token))
	assert.False(t, svc.Authorized("forged"))
}

func TestTeacherService_OpenUnlockKeepsNoSessions(t *testing.T) {
	svc := newTeacher(t, "", new(mocks.MockFeedbackRepository), nil)
	for i := 0; i < 100; i++ {
		_, err := svc.Unlock(context.Background(), "")
		require.NoError(t, err)
	}
	assert.Empty(t, svc.(*teacherService).sessions)
}

func TestTeacherService_SessionExpires(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	svc, err := NewTeacherService(NewContentService(new(mocks.MockContentRepository)), new(mocks.MockFeedbackRepository), "celta",
		WithBcryptCost(bcrypt.MinCost), WithSessionTTL(time.Hour), WithTeacherClock(clock))
	require.NoError(t, err)
	ctx := context.Background()

	first, err := svc.Unlock(ctx, "celta")
	require.NoError(t, err)
	now = now.Add(59 * time.Minute)
	assert.True(t, svc.Authorized(first))

	now = now.Add(time.Minute)
	assert.False(t, svc.Authorized(first), "expired token is rejected")

	now = now.Add(-30 * time.Minute)
	assert.False(t, svc.Authorized(first), "expired token stays gone")
}

func TestTeacherService_UnlockPrunesExpired(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	svc, err := NewTeacherService(NewContentService(new(mocks.MockContentRepository)), new(mocks.MockFeedbackRepository), "celta",
		WithBcryptCost(bcrypt.MinCost), WithSessionTTL(time.Hour), WithTeacherClock(func() time.Time { return now }))
	require.NoError(t, err)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Unlock(ctx, "celta")
		require.NoError(t, err)
	}
	now = now.Add(2 * time.Hour)
	fresh, err := svc.Unlock(ctx, "celta")
	require.NoError(t, err)

	sessions := svc.(*teacherService).sessions
	assert.Len(t, sessions, 1)
	assert.Contains(t, sessions, fresh)
}

func TestTeacherService_Dashboard(t *testing.T) {
	repo := new(mocks.MockFeedbackRepository)
	ctx := context.Background()
	entries := []models.FeedbackEntry{{ID: "f1", Score: 7, Status: models.FeedbackDone}}
	repo.On("ListRecent", ctx, recentFeedbackLimit).Return(entries, nil)
	svc := newTeacher(t, "", repo, nil)

	hidden, err := svc.Dashboard(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, content.UnitTitle, hidden.Unit)
	assert.Len(t, hidden.Aims, 4)
	assert.Len(t, hidden.ConceptChecks, 2)
	assert.Empty(t, hidden.AnswerKeys)
	assert.False(t, hidden.Revealed)
	assert.Equal(t, entries, hidden.RecentFeedback)

	shown, err := svc.Dashboard(ctx, true)
	require.NoError(t, err)
	assert.Len(t, shown.AnswerKeys, 3)
	assert.True(t, shown.Revealed)
}

func TestTeacherService_DashboardError(t *testing.T) {
	repo := new(mocks.MockFeedbackRepository)
	repo.On("ListRecent", mock.Anything, mock.Anything).Return(nil, stderrors.New("locked"))

	_, err := newTeacher(t, "", repo, nil).Dashboard(context.Background(), false)
	assertStatus(t, err, http.StatusInternalServerError)
}

func TestTeacherService_ExportAnswerKey(t *testing.T) {
	contentRepo := new(mocks.MockContentRepository)
	contentRepo.On("ListQuestions", mock.Anything, models.BankBattle).Return(content.BattleQuestions(), nil)
	contentRepo.On("ListQuestions", mock.Anything, models.BankPractice).Return(content.PracticeExercises(), nil)
	contentRepo.On("ListVocab", mock.Anything, models.VocabFilter{}).Return(content.Vocab(), nil)

	var buf bytes.Buffer
	svc := newTeacher(t, "", new(mocks.MockFeedbackRepository), contentRepo)
	require.NoError(t, svc.ExportAnswerKey(context.Background(), &buf))
	assert.Equal(t, []byte("PK"), buf.Bytes()[:2], "xlsx is a zip archive")
}
