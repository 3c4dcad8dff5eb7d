// Package learner holds everything the app remembers about one visitor: the
// chosen language and mode, progress, and whichever battle, drill or lesson is
// in flight. Every change goes through a named action on Context.
package learner

import (
	"errors"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/aziyat1977/Inter-1.1/internal/battle"
	"github.com/aziyat1977/Inter-1.1/internal/content"
	"github.com/aziyat1977/Inter-1.1/internal/drill"
	"github.com/aziyat1977/Inter-1.1/internal/i18n"
	"github.com/aziyat1977/Inter-1.1/internal/lesson"
	"github.com/aziyat1977/Inter-1.1/internal/models"
	"github.com/aziyat1977/Inter-1.1/internal/progress"
)

type Mode string

const (
	ModeLanding Mode = "landing"
	ModeStudent Mode = "student"
	ModeBattle  Mode = "battle"
	ModeVocab   Mode = "vocab"
	ModeTeacher Mode = "teacher"
)

var Modes = []Mode{ModeLanding, ModeStudent, ModeBattle, ModeVocab, ModeTeacher}

// Module ids recorded on the tracker.
const (
	ModuleBattle   = "battle"
	ModuleLesson   = "lesson"
	ModuleDiscuss  = "discussion"
	ModuleWordList = "vocab"
)

const comboKingThreshold = 5

var (
	ErrUnknownMode     = errors.New("unknown mode")
	ErrUnsupportedLang = errors.New("unsupported language")
	ErrNoBattle        = errors.New("no battle in progress")
	ErrUnknownFeedback = errors.New("unknown feedback entry")
)

// Context is one learner's state. Safe for concurrent use; battle ticks run on
// their own goroutines and only touch the battle session, the tracker and the
// notification queue, each of which has its own lock.
type Context struct {
	id string

	mu       sync.Mutex
	lang     models.Language
	mode     Mode
	battle   *battle.Session
	review   *drill.Review
	recall   *drill.Recall
	choice   *drill.Choice
	lesson   *lesson.Lesson
	feedback []models.FeedbackEntry

	tracker *progress.Tracker
	notes   notifications

	clock battle.Clock
	rng   *rand.Rand
}

type Option func(*Context)

func WithClock(c battle.Clock) Option {
	return func(lc *Context) { lc.clock = c }
}

// WithRand fixes the randomness used by the multiple-choice drill.
func WithRand(r *rand.Rand) Option {
	return func(lc *Context) { lc.rng = r }
}

func WithStreak(n int) Option {
	return func(lc *Context) {
		lc.tracker = progress.NewTracker(content.Levels(),
			progress.WithStreak(n), progress.WithBadges(content.BadgeFirstBlood))
	}
}

func WithLanguage(lang models.Language) Option {
	return func(lc *Context) {
		if i18n.Supported(lang) {
			lc.lang = lang
		}
	}
}

func New(id string, opts ...Option) *Context {
	lc := &Context{
		id:      id,
		lang:    models.English,
		mode:    ModeLanding,
		tracker: progress.NewTracker(content.Levels(), progress.WithBadges(content.BadgeFirstBlood)),
		clock:   battle.SystemClock,
	}
	for _, opt := range opts {
		opt(lc)
	}
	lc.lesson = lesson.New(content.Discussion(), content.ReadingText(), content.PracticeExercises())
	return lc
}

func (lc *Context) ID() string { return lc.id }

func (lc *Context) Language() models.Language {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.lang
}

func (lc *Context) SetLanguage(lang models.Language) error {
	if !i18n.Supported(lang) {
		return ErrUnsupportedLang
	}
	lc.mu.Lock()
	defer lc.mu.Unlock()
	lc.lang = lang
	return nil
}

func (lc *Context) Translator() i18n.Translator {
	return i18n.Translator{Lang: lc.Language()}
}

func (lc *Context) Mode() Mode {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.mode
}

// SetMode switches views. Entering battle mode prepares a fresh battle in
// its intro; leaving it tears the battle down.
func (lc *Context) SetMode(m Mode) error {
	if !slices.Contains(Modes, m) {
		return ErrUnknownMode
	}
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.setMode(m)
}

func (lc *Context) ReturnToLanding() {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	_ = lc.setMode(ModeLanding)
}

func (lc *Context) setMode(m Mode) error {
	if m == lc.mode {
		return nil
	}
	if lc.mode == ModeBattle {
		lc.closeBattle()
	}
	lc.mode = m
	if m == ModeBattle {
		return lc.newBattle()
	}
	return nil
}

func (lc *Context) closeBattle() {
	if lc.battle != nil {
		lc.battle.Close()
		lc.battle = nil
	}
}

func (lc *Context) newBattle() error {
	lc.closeBattle()
	s, err := battle.NewSession(content.BattleQuestions(),
		battle.WithClock(lc.clock),
		battle.OnFinish(lc.battleFinished),
	)
	if err != nil {
		return err
	}
	lc.battle = s
	return nil
}

// battleFinished runs under the battle session's lock, so it must not take
// lc.mu.
func (lc *Context) battleFinished(res battle.Result) {
	_, _ = lc.tracker.AddXP(res.Score)
	if res.Total > 0 && res.Correct == res.Total {
		lc.tracker.UnlockBadge(content.BadgeSpeedDemon)
	}
	if res.MaxCombo >= comboKingThreshold {
		lc.tracker.UnlockBadge(content.BadgeComboKing)
	}
	lc.tracker.CompleteModule(ModuleBattle)
	lc.notes.push(Notification{Kind: KindBattleOver, Score: res.Score, Correct: res.Correct, Total: res.Total})
}

// StartBattle switches to battle mode if needed and starts the countdown. A
// finished battle is replaced by a new one.
func (lc *Context) StartBattle() (battle.Snapshot, error) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	if lc.mode != ModeBattle {
		if err := lc.setMode(ModeBattle); err != nil {
			return battle.Snapshot{}, err
		}
	}
	if lc.battle == nil || lc.battle.State() != battle.StateIntro {
		if err := lc.newBattle(); err != nil {
			return battle.Snapshot{}, err
		}
	}
	if err := lc.battle.Start(); err != nil {
		return battle.Snapshot{}, err
	}
	return lc.battle.Snapshot(), nil
}

func (lc *Context) Battle() (battle.Snapshot, error) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	if lc.battle == nil {
		return battle.Snapshot{}, ErrNoBattle
	}
	return lc.battle.Snapshot(), nil
}

func (lc *Context) SelectOption(option string) (battle.Answer, error) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	if lc.battle == nil {
		return battle.Answer{}, ErrNoBattle
	}
	return lc.battle.Select(option)
}

func (lc *Context) SelectOptionIndex(i int) (battle.Answer, error) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	if lc.battle == nil {
		return battle.Answer{}, ErrNoBattle
	}
	return lc.battle.SelectIndex(i)
}

func (lc *Context) AdvanceBattle() (battle.Snapshot, error) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	if lc.battle == nil {
		return battle.Snapshot{}, ErrNoBattle
	}
	return lc.battle.Advance()
}

func (lc *Context) Review() []drill.ReviewCard {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.reviewDrill().Cards()
}

func (lc *Context) FlipCard(id string) (bool, error) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.reviewDrill().Flip(id)
}

func (lc *Context) reviewDrill() *drill.Review {
	if lc.review == nil {
		lc.review = drill.NewReview(content.Vocab())
	}
	return lc.review
}

func (lc *Context) Recall() (drill.RecallSnapshot, error) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	r, err := lc.recallDrill()
	if err != nil {
		return drill.RecallSnapshot{}, err
	}
	return r.Snapshot(), nil
}

func (lc *Context) FlipRecall() (drill.RecallSnapshot, error) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	r, err := lc.recallDrill()
	if err != nil {
		return drill.RecallSnapshot{}, err
	}
	return r.Flip(), nil
}

// JudgeRecall records knew/forgot. A streak covering the whole word list
// earns the word smith badge.
func (lc *Context) JudgeRecall(knew bool) (drill.RecallSnapshot, error) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	r, err := lc.recallDrill()
	if err != nil {
		return drill.RecallSnapshot{}, err
	}
	snap := r.Judge(knew)
	if snap.Streak >= snap.Total {
		lc.tracker.UnlockBadge(content.BadgeWordSmith)
		lc.tracker.CompleteModule(ModuleWordList)
	}
	return snap, nil
}

func (lc *Context) recallDrill() (*drill.Recall, error) {
	if lc.recall == nil {
		r, err := drill.NewRecall(content.Vocab())
		if err != nil {
			return nil, err
		}
		lc.recall = r
	}
	return lc.recall, nil
}

func (lc *Context) Choice() (drill.ChoiceSnapshot, error) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	c, err := lc.choiceDrill()
	if err != nil {
		return drill.ChoiceSnapshot{}, err
	}
	return c.Snapshot(), nil
}

func (lc *Context) AnswerChoice(side int) (drill.ChoiceOutcome, error) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	c, err := lc.choiceDrill()
	if err != nil {
		return drill.ChoiceOutcome{}, err
	}
	return c.Answer(side)
}

func (lc *Context) choiceDrill() (*drill.Choice, error) {
	if lc.choice == nil {
		c, err := drill.NewChoice(content.Vocab(), lc.rng)
		if err != nil {
			return nil, err
		}
		lc.choice = c
	}
	return lc.choice, nil
}

func (lc *Context) Lesson() lesson.Snapshot {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.lesson.Snapshot()
}

func (lc *Context) GoToStep(i int) lesson.Step {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.lesson.GoTo(i)
}

func (lc *Context) Discuss(answer string) (lesson.DiscussOutcome, error) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	out, err := lc.lesson.Discuss(answer)
	if err != nil {
		return out, err
	}
	if out.XP > 0 {
		_, _ = lc.tracker.AddXP(out.XP)
		lc.tracker.CompleteModule(ModuleDiscuss)
	}
	return out, nil
}

func (lc *Context) RevealComprehension(i int) (string, error) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.lesson.RevealComprehension(i)
}

// CheckPractice grades the typed exercise; a perfect sheet earns the
// bookworm badge.
func (lc *Context) CheckPractice(answers map[string]string) (lesson.PracticeResult, error) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	res, err := lc.lesson.CheckPractice(answers)
	if err != nil {
		return res, err
	}
	if res.XP > 0 {
		_, _ = lc.tracker.AddXP(res.XP)
	}
	if res.Outcome == lesson.OutcomePerfect {
		lc.tracker.UnlockBadge(content.BadgeBookworm)
		lc.tracker.CompleteModule(ModuleLesson)
	}
	return res, nil
}

func (lc *Context) RetryPractice() {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	lc.lesson.Retry()
}

func (lc *Context) AddXP(amount int) (*progress.Event, error) {
	return lc.tracker.AddXP(amount)
}

func (lc *Context) RecordActivity(now time.Time) int {
	return lc.tracker.RecordActivity(now)
}

func (lc *Context) Progress() progress.Snapshot {
	return lc.tracker.Snapshot()
}

// AttachFeedback inserts or replaces a feedback entry by id. A completed
// entry raises a notification.
func (lc *Context) AttachFeedback(e models.FeedbackEntry) {
	lc.mu.Lock()
	i := slices.IndexFunc(lc.feedback, func(f models.FeedbackEntry) bool { return f.ID == e.ID })
	if i >= 0 {
		lc.feedback[i] = e
	} else {
		lc.feedback = append(lc.feedback, e)
	}
	lc.mu.Unlock()

	if e.Status == models.FeedbackDone {
		lc.notes.push(Notification{Kind: KindFeedbackReady, FeedbackID: e.ID, Score: e.Score})
	}
}

func (lc *Context) Feedback() []models.FeedbackEntry {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return slices.Clone(lc.feedback)
}

func (lc *Context) FeedbackEntry(id string) (models.FeedbackEntry, error) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	for _, e := range lc.feedback {
		if e.ID == id {
			return e, nil
		}
	}
	return models.FeedbackEntry{}, ErrUnknownFeedback
}

// TakeNotifications drains progress events and other notices, localised for
// the current language. Each is returned exactly once.
func (lc *Context) TakeNotifications() []Notification {
	tr := lc.Translator()
	var out []Notification
	for _, ev := range lc.tracker.TakeEvents() {
		out = append(out, fromEvent(ev))
	}
	out = append(out, lc.notes.take()...)
	for i := range out {
		out[i].Message = tr.T(out[i].Kind.messageKey())
	}
	return out
}

// Close tears down anything holding a timer.
func (lc *Context) Close() {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	lc.closeBattle()
}
