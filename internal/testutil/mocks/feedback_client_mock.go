package mocks

import (
	"context"

	"github.com/aziyat1977/Inter-1.1/internal/feedback"
	"github.com/stretchr/testify/mock"
)

// MockFeedbackClient is a mock implementation of feedback.Client
type MockFeedbackClient struct {
	mock.Mock
}

func (m *MockFeedbackClient) Review(ctx context.Context, req feedback.Request) (feedback.Result, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(feedback.Result), args.Error(1)
}
