package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aziyat1977/Inter-1.1/internal/logger"
	"github.com/aziyat1977/Inter-1.1/internal/models"
	"github.com/aziyat1977/Inter-1.1/internal/repository"
	"github.com/jmoiron/sqlx"
)

const maxFeedbackPage = 200

var feedbackColumns = []string{
	"id", "learner_id", "question", "answer", "feedback", "score",
	"from_model", "status", "created_at", "updated_at",
}

type feedbackRepository struct {
	db *sqlx.DB
}

func NewFeedbackRepository(db *sqlx.DB) repository.FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Insert(ctx context.Context, e models.FeedbackEntry) error {
	log := logger.FromContext(ctx).WithPrefix("feedback_repo").WithField("id", e.ID)

	stmt, args, err := sqlBuilder.Insert("feedback_entries").
		Columns(feedbackColumns...).
		Values(e.ID, e.LearnerID, e.Question, e.Answer, e.Feedback, e.Score,
			e.FromModel, string(e.Status), e.CreatedAt.UTC(), e.UpdatedAt.UTC()).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, stmt, args...); err != nil {
		log.Error("failed to insert feedback: %v", err)
		return err
	}
	log.Debug("feedback entry stored")
	return nil
}

func (r *feedbackRepository) Update(ctx context.Context, e models.FeedbackEntry) error {
	log := logger.FromContext(ctx).WithPrefix("feedback_repo").WithField("id", e.ID)

	stmt, args, err := sqlBuilder.Update("feedback_entries").
		Set("feedback", e.Feedback).
		Set("score", e.Score).
		Set("from_model", e.FromModel).
		Set("status", string(e.Status)).
		Set("updated_at", e.UpdatedAt.UTC()).
		Where("id = ?", e.ID).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		log.Error("failed to update feedback: %v", err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *feedbackRepository) Get(ctx context.Context, id string) (*models.FeedbackEntry, error) {
	stmt, args, err := sqlBuilder.Select(feedbackColumns...).
		From("feedback_entries").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, err
	}
	var e models.FeedbackEntry
	if err := r.db.GetContext(ctx, &e, stmt, args...); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.FromContext(ctx).WithPrefix("feedback_repo").Error("failed to get feedback: %v", err)
		}
		return nil, err
	}
	return &e, nil
}

// ListRecent returns the newest entries first.
func (r *feedbackRepository) ListRecent(ctx context.Context, limit int) ([]models.FeedbackEntry, error) {
	if limit <= 0 || limit > maxFeedbackPage {
		limit = maxFeedbackPage
	}
	stmt, args, err := sqlBuilder.Select(feedbackColumns...).
		From("feedback_entries").
		OrderBy("created_at DESC", "id").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	var entries []models.FeedbackEntry
	if err := r.db.SelectContext(ctx, &entries, stmt, args...); err != nil {
		logger.FromContext(ctx).WithPrefix("feedback_repo").Error("failed to list feedback: %v", err)
		return nil, err
	}
	return entries, nil
}
