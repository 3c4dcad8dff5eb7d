package services

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/aziyat1977/Inter-1.1/internal/content"
	"github.com/aziyat1977/Inter-1.1/internal/errors"
	"github.com/aziyat1977/Inter-1.1/internal/logger"
	"github.com/aziyat1977/Inter-1.1/internal/models"
	"github.com/aziyat1977/Inter-1.1/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const recentFeedbackLimit = 20

// TeacherSessionTTL is how long an unlocked dashboard session stays valid.
const TeacherSessionTTL = 12 * time.Hour

// Dashboard is the teacher view. AnswerKeys is empty unless revealed.
type Dashboard struct {
	Unit           string                 `json:"unit"`
	Aims           []string               `json:"aims"`
	ConceptChecks  []models.ConceptCheck  `json:"concept_checks"`
	AnswerKeys     []models.AnswerKey     `json:"answer_keys,omitempty"`
	Revealed       bool                   `json:"revealed"`
	RecentFeedback []models.FeedbackEntry `json:"recent_feedback"`
}

// TeacherService serves the dashboard and its optional passcode gate.
type TeacherService interface {
	// Locked reports whether a passcode is configured.
	Locked() bool
	// Unlock checks passcode and returns a session token.
	Unlock(ctx context.Context, passcode string) (string, error)
	Authorized(token string) bool
	Dashboard(ctx context.Context, reveal bool) (*Dashboard, error)
	ExportAnswerKey(ctx context.Context, w io.Writer) error
}

type teacherService struct {
	content  ContentService
	feedback repository.FeedbackRepository
	hash     []byte

	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]time.Time
}

type TeacherOption func(*teacherConfig)

type teacherConfig struct {
	cost int
	ttl  time.Duration
	now  func() time.Time
}

// WithBcryptCost overrides the hashing cost; tests use bcrypt.MinCost.
func WithBcryptCost(cost int) TeacherOption {
	return func(c *teacherConfig) { c.cost = cost }
}

func WithSessionTTL(ttl time.Duration) TeacherOption {
	return func(c *teacherConfig) { c.ttl = ttl }
}

func WithTeacherClock(now func() time.Time) TeacherOption {
	return func(c *teacherConfig) { c.now = now }
}

// NewTeacherService hashes passcode once. An empty passcode leaves the
// dashboard open.
func NewTeacherService(contentSvc ContentService, feedbackRepo repository.FeedbackRepository, passcode string, opts ...TeacherOption) (TeacherService, error) {
	cfg := teacherConfig{cost: bcrypt.DefaultCost, ttl: TeacherSessionTTL, now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	s := &teacherService{
		content:  contentSvc,
		feedback: feedbackRepo,
		ttl:      cfg.ttl,
		now:      cfg.now,
		sessions: make(map[string]time.Time),
	}
	if passcode != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(passcode), cfg.cost)
		if err != nil {
			return nil, err
		}
		s.hash = hash
	}
	return s, nil
}

func (s *teacherService) Locked() bool { return s.hash != nil }

func (s *teacherService) Unlock(ctx context.Context, passcode string) (string, error) {
	log := logger.FromContext(ctx)
	if s.hash != nil {
		if err := bcrypt.CompareHashAndPassword(s.hash, []byte(passcode)); err != nil {
			log.Warn("teacher unlock rejected")
			return "", errors.NewUnauthorizedError("invalid passcode")
		}
	}
	token := uuid.NewString()
	if s.hash == nil {
		// Open dashboard: Authorized never consults the session set.
		return token, nil
	}

	now := s.now()
	s.mu.Lock()
	s.pruneLocked(now)
	s.sessions[token] = now.Add(s.ttl)
	s.mu.Unlock()
	log.Info("teacher dashboard unlocked")
	return token, nil
}

func (s *teacherService) Authorized(token string) bool {
	if s.hash == nil {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	expires, ok := s.sessions[token]
	if !ok {
		return false
	}
	if !s.now().Before(expires) {
		delete(s.sessions, token)
		return false
	}
	return true
}

func (s *teacherService) pruneLocked(now time.Time) {
	for token, expires := range s.sessions {
		if !now.Before(expires) {
			delete(s.sessions, token)
		}
	}
}

func (s *teacherService) Dashboard(ctx context.Context, reveal bool) (*Dashboard, error) {
	notes := content.Teacher()
	recent, err := s.feedback.ListRecent(ctx, recentFeedbackLimit)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list recent feedback: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if recent == nil {
		recent = []models.FeedbackEntry{}
	}

	d := &Dashboard{
		Unit:           notes.Unit,
		Aims:           notes.Aims,
		ConceptChecks:  notes.ConceptChecks,
		Revealed:       reveal,
		RecentFeedback: recent,
	}
	if reveal {
		d.AnswerKeys = notes.AnswerKeys
	}
	return d, nil
}

func (s *teacherService) ExportAnswerKey(ctx context.Context, w io.Writer) error {
	wb, err := s.content.Workbook(ctx)
	if err != nil {
		return err
	}
	if err := wb.Write(w); err != nil {
		logger.FromContext(ctx).Error("failed to write answer key: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}
