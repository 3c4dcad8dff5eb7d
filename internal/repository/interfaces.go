package repository

import (
	"context"

	"github.com/aziyat1977/Inter-1.1/internal/models"
)

// ContentRepository reads the seeded lesson content.
type ContentRepository interface {
	ListVocab(ctx context.Context, filter models.VocabFilter) ([]models.VocabItem, error)
	GetVocab(ctx context.Context, id string) (*models.VocabItem, error)
	ListQuestions(ctx context.Context, bank models.QuestionBank) ([]models.Question, error)
	ListGrammar(ctx context.Context, usage models.TenseUsage) ([]models.GrammarRule, error)
}

// FeedbackRepository stores discussion answers and their reviews.
type FeedbackRepository interface {
	Insert(ctx context.Context, entry models.FeedbackEntry) error
	Update(ctx context.Context, entry models.FeedbackEntry) error
	Get(ctx context.Context, id string) (*models.FeedbackEntry, error)
	ListRecent(ctx context.Context, limit int) ([]models.FeedbackEntry, error)
}
