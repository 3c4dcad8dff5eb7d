package services

import (
	"context"
	"strings"

	"github.com/aziyat1977/Inter-1.1/internal/battle"
	"github.com/aziyat1977/Inter-1.1/internal/content"
	"github.com/aziyat1977/Inter-1.1/internal/drill"
	"github.com/aziyat1977/Inter-1.1/internal/errors"
	"github.com/aziyat1977/Inter-1.1/internal/jobs"
	"github.com/aziyat1977/Inter-1.1/internal/learner"
	"github.com/aziyat1977/Inter-1.1/internal/lesson"
	"github.com/aziyat1977/Inter-1.1/internal/logger"
	"github.com/aziyat1977/Inter-1.1/internal/models"
	"github.com/aziyat1977/Inter-1.1/internal/progress"
)

// maxXPGrant caps a single client-reported XP award.
const maxXPGrant = 1000

// BattleSelection names an option either by text or by position.
type BattleSelection struct {
	Option string `json:"option"`
	Index  *int   `json:"index"`
}

// DiscussResult is the discussion reveal plus the review it queued, if any.
type DiscussResult struct {
	lesson.DiscussOutcome
	Feedback *models.FeedbackEntry `json:"feedback,omitempty"`
}

// LearnerService runs learner actions and reports failures as AppErrors.
type LearnerService interface {
	SetLanguage(ctx context.Context, lc *learner.Context, code string) error
	SetMode(ctx context.Context, lc *learner.Context, mode string) error
	AddXP(ctx context.Context, lc *learner.Context, amount int) (progress.Snapshot, error)

	GoToStep(ctx context.Context, lc *learner.Context, step int) lesson.Snapshot
	Discuss(ctx context.Context, lc *learner.Context, answer string) (*DiscussResult, error)
	RevealComprehension(ctx context.Context, lc *learner.Context, i int) (string, error)
	CheckPractice(ctx context.Context, lc *learner.Context, answers map[string]string) (lesson.PracticeResult, error)
	RetryPractice(ctx context.Context, lc *learner.Context) lesson.Snapshot

	StartBattle(ctx context.Context, lc *learner.Context) (battle.Snapshot, error)
	Battle(ctx context.Context, lc *learner.Context) (battle.Snapshot, error)
	SelectOption(ctx context.Context, lc *learner.Context, sel BattleSelection) (battle.Answer, error)
	AdvanceBattle(ctx context.Context, lc *learner.Context) (battle.Snapshot, error)

	FlipCard(ctx context.Context, lc *learner.Context, id string) (bool, error)
	Recall(ctx context.Context, lc *learner.Context) (drill.RecallSnapshot, error)
	FlipRecall(ctx context.Context, lc *learner.Context) (drill.RecallSnapshot, error)
	JudgeRecall(ctx context.Context, lc *learner.Context, knew bool) (drill.RecallSnapshot, error)
	Choice(ctx context.Context, lc *learner.Context) (drill.ChoiceSnapshot, error)
	AnswerChoice(ctx context.Context, lc *learner.Context, side int) (drill.ChoiceOutcome, error)
}

type learnerService struct {
	queue jobs.JobQueue
}

// NewLearnerService creates a new LearnerService. queue may be nil, in which
// case discussion answers are not reviewed.
func NewLearnerService(queue jobs.JobQueue) LearnerService {
	return &learnerService{queue: queue}
}

func (s *learnerService) SetLanguage(ctx context.Context, lc *learner.Context, code string) error {
	lang := models.Language(strings.ToLower(strings.TrimSpace(code)))
	logger.FromContext(ctx).Debug("set language: learner=%s lang=%s", lc.ID(), lang)
	return toAppError(lc.SetLanguage(lang))
}

func (s *learnerService) SetMode(ctx context.Context, lc *learner.Context, mode string) error {
	m := learner.Mode(strings.ToLower(strings.TrimSpace(mode)))
	logger.FromContext(ctx).Debug("set mode: learner=%s mode=%s", lc.ID(), m)
	return toAppError(lc.SetMode(m))
}

func (s *learnerService) AddXP(ctx context.Context, lc *learner.Context, amount int) (progress.Snapshot, error) {
	if amount > maxXPGrant {
		return progress.Snapshot{}, errors.NewValidationError("amount", "too large")
	}
	if _, err := lc.AddXP(amount); err != nil {
		return progress.Snapshot{}, toAppError(err)
	}
	return lc.Progress(), nil
}

func (s *learnerService) GoToStep(ctx context.Context, lc *learner.Context, step int) lesson.Snapshot {
	lc.GoToStep(step)
	return lc.Lesson()
}

// Discuss reveals the model idea and, when a review queue is configured,
// queues the answer for feedback. A queueing failure does not fail the
// reveal.
func (s *learnerService) Discuss(ctx context.Context, lc *learner.Context, answer string) (*DiscussResult, error) {
	log := logger.FromContext(ctx).WithField("learner_id", lc.ID())

	out, err := lc.Discuss(answer)
	if err != nil {
		return nil, toAppError(err)
	}
	res := &DiscussResult{DiscussOutcome: out}
	if s.queue == nil {
		return res, nil
	}

	prompt := content.Discussion()
	entry, err := s.queue.EnqueueFeedback(ctx, lc, jobs.FeedbackRequest{
		LearnerID: lc.ID(),
		Question:  prompt.Statement + " " + prompt.Question[models.English],
		Answer:    answer,
	})
	if err != nil {
		log.Warn("failed to queue discussion feedback: %v", err)
		return res, nil
	}
	res.Feedback = &entry
	return res, nil
}

func (s *learnerService) RevealComprehension(ctx context.Context, lc *learner.Context, i int) (string, error) {
	answer, err := lc.RevealComprehension(i)
	return answer, toAppError(err)
}

func (s *learnerService) CheckPractice(ctx context.Context, lc *learner.Context, answers map[string]string) (lesson.PracticeResult, error) {
	res, err := lc.CheckPractice(answers)
	if err != nil {
		return res, toAppError(err)
	}
	logger.FromContext(ctx).Debug("practice checked: learner=%s correct=%d/%d", lc.ID(), res.Correct, res.Total)
	return res, nil
}

func (s *learnerService) RetryPractice(ctx context.Context, lc *learner.Context) lesson.Snapshot {
	lc.RetryPractice()
	return lc.Lesson()
}

func (s *learnerService) StartBattle(ctx context.Context, lc *learner.Context) (battle.Snapshot, error) {
	snap, err := lc.StartBattle()
	if err != nil {
		return snap, toAppError(err)
	}
	logger.FromContext(ctx).Debug("battle started: learner=%s", lc.ID())
	return snap, nil
}

func (s *learnerService) Battle(ctx context.Context, lc *learner.Context) (battle.Snapshot, error) {
	snap, err := lc.Battle()
	return snap, toAppError(err)
}

func (s *learnerService) SelectOption(ctx context.Context, lc *learner.Context, sel BattleSelection) (battle.Answer, error) {
	var (
		ans battle.Answer
		err error
	)
	switch {
	case sel.Index != nil:
		ans, err = lc.SelectOptionIndex(*sel.Index)
	case sel.Option != "":
		ans, err = lc.SelectOption(sel.Option)
	default:
		return ans, errors.NewValidationError("option", "option or index is required")
	}
	return ans, toAppError(err)
}

func (s *learnerService) AdvanceBattle(ctx context.Context, lc *learner.Context) (battle.Snapshot, error) {
	snap, err := lc.AdvanceBattle()
	return snap, toAppError(err)
}

func (s *learnerService) FlipCard(ctx context.Context, lc *learner.Context, id string) (bool, error) {
	flipped, err := lc.FlipCard(id)
	return flipped, toAppError(err)
}

func (s *learnerService) Recall(ctx context.Context, lc *learner.Context) (drill.RecallSnapshot, error) {
	snap, err := lc.Recall()
	return snap, toAppError(err)
}

func (s *learnerService) FlipRecall(ctx context.Context, lc *learner.Context) (drill.RecallSnapshot, error) {
	snap, err := lc.FlipRecall()
	return snap, toAppError(err)
}

func (s *learnerService) JudgeRecall(ctx context.Context, lc *learner.Context, knew bool) (drill.RecallSnapshot, error) {
	snap, err := lc.JudgeRecall(knew)
	return snap, toAppError(err)
}

func (s *learnerService) Choice(ctx context.Context, lc *learner.Context) (drill.ChoiceSnapshot, error) {
	snap, err := lc.Choice()
	return snap, toAppError(err)
}

func (s *learnerService) AnswerChoice(ctx context.Context, lc *learner.Context, side int) (drill.ChoiceOutcome, error) {
	out, err := lc.AnswerChoice(side)
	return out, toAppError(err)
}
