package mocks

import (
	"context"

	"github.com/aziyat1977/Inter-1.1/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockFeedbackRepository is a mock implementation of repository.FeedbackRepository
type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) Insert(ctx context.Context, entry models.FeedbackEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockFeedbackRepository) Update(ctx context.Context, entry models.FeedbackEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockFeedbackRepository) Get(ctx context.Context, id string) (*models.FeedbackEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeedbackEntry), args.Error(1)
}

func (m *MockFeedbackRepository) ListRecent(ctx context.Context, limit int) ([]models.FeedbackEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FeedbackEntry), args.Error(1)
}
