package jobs

import (
	"context"

	"github.com/aziyat1977/Inter-1.1/internal/models"
	"github.com/aziyat1977/Inter-1.1/internal/worker"
)

// FeedbackRequest is one discussion answer waiting for review.
type FeedbackRequest struct {
	LearnerID string
	Question  string
	Answer    string
}

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	// EnqueueFeedback records a pending entry and schedules its review. It
	// never blocks on the reviewer.
	EnqueueFeedback(ctx context.Context, sink worker.FeedbackSink, req FeedbackRequest) (models.FeedbackEntry, error)
}
