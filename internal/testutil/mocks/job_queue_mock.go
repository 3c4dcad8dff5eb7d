package mocks

import (
	"context"

	"github.com/aziyat1977/Inter-1.1/internal/jobs"
	"github.com/aziyat1977/Inter-1.1/internal/models"
	"github.com/aziyat1977/Inter-1.1/internal/worker"
	"github.com/stretchr/testify/mock"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueFeedback(ctx context.Context, sink worker.FeedbackSink, req jobs.FeedbackRequest) (models.FeedbackEntry, error) {
	args := m.Called(ctx, sink, req)
	return args.Get(0).(models.FeedbackEntry), args.Error(1)
}
