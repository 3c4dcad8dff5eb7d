package worker

import (
	"context"
	"time"

	"github.com/aziyat1977/Inter-1.1/internal/feedback"
	"github.com/aziyat1977/Inter-1.1/internal/logger"
	"github.com/aziyat1977/Inter-1.1/internal/models"
	"github.com/aziyat1977/Inter-1.1/internal/repository"
)

// FeedbackSink receives finished feedback entries. A learner context is one.
type FeedbackSink interface {
	AttachFeedback(models.FeedbackEntry)
}

// FeedbackJob asks the reviewer about one discussion answer and records the
// outcome.
type FeedbackJob struct {
	Client  feedback.Client
	Repo    repository.FeedbackRepository
	Sink    FeedbackSink
	Entry   models.FeedbackEntry
	Topic   string
	Timeout time.Duration
	Now     func() time.Time
}

func (j *FeedbackJob) Name() string { return "discussion_feedback" }

func (j *FeedbackJob) Run(ctx context.Context) error {
	callCtx := ctx
	if j.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, j.Timeout)
		defer cancel()
	}

	res, fromModel := feedback.Evaluate(callCtx, j.Client, feedback.Request{
		Question: j.Entry.Question,
		Answer:   j.Entry.Answer,
		Topic:    j.Topic,
	})

	now := time.Now
	if j.Now != nil {
		now = j.Now
	}
	_, err := Resolve(ctx, j.Repo, j.Sink, j.Entry, res, fromModel, now())
	return err
}

// Resolve marks entry done with res, persists it and hands it to sink. The
// sink is updated even when persisting fails.
func Resolve(ctx context.Context, repo repository.FeedbackRepository, sink FeedbackSink,
	entry models.FeedbackEntry, res feedback.Result, fromModel bool, at time.Time) (models.FeedbackEntry, error) {
	entry.Feedback = res.Feedback
	entry.Score = res.Score
	entry.FromModel = fromModel
	entry.Status = models.FeedbackDone
	entry.UpdatedAt = at

	var err error
	if repo != nil {
		if err = repo.Update(ctx, entry); err != nil {
			logger.FromContext(ctx).WithField("id", entry.ID).Error("failed to store feedback: %v", err)
		}
	}
	if sink != nil {
		sink.AttachFeedback(entry)
	}
	return entry, err
}
