package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/aziyat1977/Inter-1.1/internal/content"
	"github.com/aziyat1977/Inter-1.1/internal/errors"
	"github.com/aziyat1977/Inter-1.1/internal/export"
	"github.com/aziyat1977/Inter-1.1/internal/logger"
	"github.com/aziyat1977/Inter-1.1/internal/models"
	"github.com/aziyat1977/Inter-1.1/internal/repository"
)

const (
	maxVocabPage  = 100
	maxSearchRune = 40
)

var partsOfSpeech = []string{"n", "v", "adv", "phr"}

// ContentService reads lesson content from the store.
type ContentService interface {
	ListVocab(ctx context.Context, filter models.VocabFilter) ([]models.VocabItem, error)
	GetVocab(ctx context.Context, id string) (*models.VocabItem, error)
	ListGrammar(ctx context.Context, usage string) ([]models.GrammarRule, error)
	Workbook(ctx context.Context) (export.Workbook, error)
}

type contentService struct {
	repo repository.ContentRepository
}

// NewContentService creates a new ContentService
func NewContentService(repo repository.ContentRepository) ContentService {
	return &contentService{repo: repo}
}

func (s *contentService) ListVocab(ctx context.Context, filter models.VocabFilter) ([]models.VocabItem, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing vocab: filter=%+v", filter)

	filter.PartOfSpeech = strings.ToLower(strings.TrimSpace(filter.PartOfSpeech))
	filter.Search = strings.TrimSpace(filter.Search)
	if filter.PartOfSpeech != "" && !slices.Contains(partsOfSpeech, filter.PartOfSpeech) {
		return nil, errors.NewValidationError("pos", "must be one of n, v, adv, phr")
	}
	if utf8.RuneCountInString(filter.Search) > maxSearchRune {
		return nil, errors.NewValidationError("q", "too long")
	}
	if filter.Limit < 0 || filter.Limit > maxVocabPage {
		return nil, errors.NewValidationError("limit", "must be between 0 and 100")
	}
	if filter.Offset < 0 {
		return nil, errors.NewValidationError("offset", "must not be negative")
	}

	items, err := s.repo.ListVocab(ctx, filter)
	if err != nil {
		log.Error("failed to list vocab: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if items == nil {
		items = []models.VocabItem{}
	}
	return items, nil
}

func (s *contentService) GetVocab(ctx context.Context, id string) (*models.VocabItem, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting vocab: id=%s", id)

	item, err := s.repo.GetVocab(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("vocab", id)
		}
		log.Error("failed to get vocab: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return item, nil
}

func (s *contentService) ListGrammar(ctx context.Context, usage string) ([]models.GrammarRule, error) {
	u := models.TenseUsage(strings.ToLower(strings.TrimSpace(usage)))
	switch u {
	case "", models.UsageSimple, models.UsageContinuous, models.UsagePerfect:
	default:
		return nil, errors.NewValidationError("usage", "must be simple, continuous or perfect")
	}
	rules, err := s.repo.ListGrammar(ctx, u)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list grammar: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return rules, nil
}

// Workbook gathers the answer-key material from the store. Teacher notes
// are static.
func (s *contentService) Workbook(ctx context.Context) (export.Workbook, error) {
	log := logger.FromContext(ctx)

	battle, err := s.repo.ListQuestions(ctx, models.BankBattle)
	if err != nil {
		log.Error("failed to load battle questions: %v", err)
		return export.Workbook{}, errors.NewInternalError(err)
	}
	practice, err := s.repo.ListQuestions(ctx, models.BankPractice)
	if err != nil {
		log.Error("failed to load practice questions: %v", err)
		return export.Workbook{}, errors.NewInternalError(err)
	}
	vocab, err := s.repo.ListVocab(ctx, models.VocabFilter{})
	if err != nil {
		log.Error("failed to load vocab: %v", err)
		return export.Workbook{}, errors.NewInternalError(err)
	}
	return export.Workbook{Battle: battle, Practice: practice, Vocab: vocab, Notes: content.Teacher()}, nil
}
