package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/aziyat1977/Inter-1.1/internal/feedback"
	"github.com/aziyat1977/Inter-1.1/internal/logger"
	"github.com/aziyat1977/Inter-1.1/internal/models"
	"github.com/aziyat1977/Inter-1.1/internal/repository"
	"github.com/aziyat1977/Inter-1.1/internal/worker"
	"github.com/google/uuid"
)

const feedbackTopic = "Friendship in the digital age"

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	pool    *worker.Pool
	client  feedback.Client
	repo    repository.FeedbackRepository
	timeout time.Duration
	now     func() time.Time
	newID   func() string
}

type Option func(*WorkerQueue)

func WithNow(now func() time.Time) Option {
	return func(q *WorkerQueue) { q.now = now }
}

func WithIDGenerator(fn func() string) Option {
	return func(q *WorkerQueue) { q.newID = fn }
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(
	pool *worker.Pool,
	client feedback.Client,
	repo repository.FeedbackRepository,
	timeout time.Duration,
	opts ...Option,
) *WorkerQueue {
	q := &WorkerQueue{
		pool:    pool,
		client:  client,
		repo:    repo,
		timeout: timeout,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

func (q *WorkerQueue) EnqueueFeedback(ctx context.Context, sink worker.FeedbackSink, req FeedbackRequest) (models.FeedbackEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("jobs").WithField("learner_id", req.LearnerID)

	now := q.now().UTC()
	entry := models.FeedbackEntry{
		ID:        q.newID(),
		LearnerID: req.LearnerID,
		Question:  feedback.Sanitize(req.Question),
		Answer:    feedback.Sanitize(req.Answer),
		Status:    models.FeedbackPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := q.repo.Insert(ctx, entry); err != nil {
		return models.FeedbackEntry{}, err
	}
	sink.AttachFeedback(entry)

	err := q.pool.Submit(&worker.FeedbackJob{
		Client:  q.client,
		Repo:    q.repo,
		Sink:    sink,
		Entry:   entry,
		Topic:   feedbackTopic,
		Timeout: q.timeout,
		Now:     q.now,
	})
	switch {
	case err == nil:
		log.Debug("feedback %s queued", entry.ID)
		return entry, nil
	case errors.Is(err, worker.ErrQueueFull), errors.Is(err, worker.ErrPoolStopped):
		log.Warn("feedback %s not queued (%v), storing fallback", entry.ID, err)
		return worker.Resolve(ctx, q.repo, sink, entry, feedback.Fallback, false, q.now().UTC())
	default:
		return entry, err
	}
}
