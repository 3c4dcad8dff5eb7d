package mocks

import (
	"context"

	"github.com/aziyat1977/Inter-1.1/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockContentRepository is a mock implementation of repository.ContentRepository
type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) ListVocab(ctx context.Context, filter models.VocabFilter) ([]models.VocabItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VocabItem), args.Error(1)
}

func (m *MockContentRepository) GetVocab(ctx context.Context, id string) (*models.VocabItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VocabItem), args.Error(1)
}

func (m *MockContentRepository) ListQuestions(ctx context.Context, bank models.QuestionBank) ([]models.Question, error) {
	args := m.Called(ctx, bank)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Question), args.Error(1)
}

func (m *MockContentRepository) ListGrammar(ctx context.Context, usage models.TenseUsage) ([]models.GrammarRule, error) {
	args := m.Called(ctx, usage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GrammarRule), args.Error(1)
}
