// Package battle implements the timed two-option speed battle.
//
// A session moves intro -> playing -> feedback -> playing ... -> finished.
// While playing, a countdown ticks once per TickInterval; reaching zero
// resolves the question as unanswered. Every entry into playing starts a new
// phase, and a tick carrying an older phase is dropped, so a late timer can
// never touch a question that has already been answered.
package battle

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/aziyat1977/Inter-1.1/internal/models"
)

type State string

const (
	StateIntro    State = "intro"
	StatePlaying  State = "playing"
	StateFeedback State = "feedback"
	StateFinished State = "finished"
)

const (
	QuestionSeconds = 10
	TickInterval    = time.Second

	BaseScore      = 200
	TimeBonusRate  = 20
	ComboBonusRate = 50
)

var (
	ErrNoQuestions    = errors.New("battle needs at least one question")
	ErrBadQuestion    = errors.New("battle questions must have exactly two options")
	ErrAlreadyStarted = errors.New("battle already started")
	ErrNotPlaying     = errors.New("no question is awaiting an answer")
	ErrNotInFeedback  = errors.New("current question has not been answered")
	ErrFinished       = errors.New("battle is finished")
	ErrClosed         = errors.New("battle is closed")
	ErrUnknownOption  = errors.New("option is not offered by the current question")
)

// Points is the credit for a correct answer given the seconds left on the
// countdown and the combo held before this answer.
func Points(timeLeft, combo int) int {
	return BaseScore + timeLeft*TimeBonusRate + combo*ComboBonusRate
}

// Answer records how one question was resolved.
type Answer struct {
	QuestionID    string  `json:"question_id"`
	Selected      *string `json:"selected"`
	TimedOut      bool    `json:"timed_out"`
	Correct       bool    `json:"correct"`
	Points        int     `json:"points"`
	TimeLeft      int     `json:"time_left"`
	CorrectAnswer string  `json:"correct_answer"`
	Explanation   string  `json:"explanation"`
}

// Result is reported once when the last question is advanced past.
type Result struct {
	Score    int `json:"score"`
	Correct  int `json:"correct"`
	Total    int `json:"total"`
	MaxCombo int `json:"max_combo"`
}

type Option func(*Session)

func WithClock(c Clock) Option {
	return func(s *Session) { s.clock = c }
}

// OnFinish registers the callback that receives the final result. It runs
// with the session locked and must not call back into the session.
func OnFinish(fn func(Result)) Option {
	return func(s *Session) { s.onFinish = fn }
}

// WithQuestionSeconds overrides the per-question countdown.
func WithQuestionSeconds(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.seconds = n
		}
	}
}

type Session struct {
	mu        sync.Mutex
	questions []models.Question
	clock     Clock
	onFinish  func(Result)
	seconds   int

	state    State
	index    int
	score    int
	timeLeft int
	combo    int
	maxCombo int
	correct  int
	selected *string
	answers  []Answer
	result   *Result

	phase  uint64
	timer  Timer
	closed bool
}

func NewSession(questions []models.Question, opts ...Option) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	for _, q := range questions {
		if len(q.Options) != 2 {
			return nil, ErrBadQuestion
		}
	}
	s := &Session{
		questions: slices.Clone(questions),
		clock:     SystemClock,
		seconds:   QuestionSeconds,
		state:     StateIntro,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.timeLeft = s.seconds
	return s, nil
}

// Start leaves the intro and begins the first question.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usable(); err != nil {
		return err
	}
	if s.state != StateIntro {
		return ErrAlreadyStarted
	}
	s.enterPlaying()
	return nil
}

// Select answers the current question. A selection that arrives after the
// countdown has already resolved the question returns ErrNotPlaying and
// changes nothing.
func (s *Session) Select(option string) (Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.answerable(); err != nil {
		return Answer{}, err
	}
	if !slices.Contains(s.questions[s.index].Options, option) {
		return Answer{}, ErrUnknownOption
	}
	return s.resolve(&option), nil
}

// SelectIndex answers with the option at position i (0 left, 1 right).
func (s *Session) SelectIndex(i int) (Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.answerable(); err != nil {
		return Answer{}, err
	}
	opts := s.questions[s.index].Options
	if i < 0 || i >= len(opts) {
		return Answer{}, ErrUnknownOption
	}
	option := opts[i]
	return s.resolve(&option), nil
}

// Advance moves from feedback to the next question, or to finished after the
// last one. The result is reported exactly once.
func (s *Session) Advance() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usable(); err != nil {
		return Snapshot{}, err
	}
	if s.state != StateFeedback {
		return Snapshot{}, ErrNotInFeedback
	}

	if s.index < len(s.questions)-1 {
		s.index++
		s.enterPlaying()
		return s.snapshot(), nil
	}

	s.state = StateFinished
	res := Result{
		Score:    s.score,
		Correct:  s.correct,
		Total:    len(s.questions),
		MaxCombo: s.maxCombo,
	}
	s.result = &res
	if s.onFinish != nil {
		s.onFinish(res)
	}
	return s.snapshot(), nil
}

// Close cancels any pending tick. A closed session rejects every action.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.stopTimer()
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) usable() error {
	if s.closed {
		return ErrClosed
	}
	if s.state == StateFinished {
		return ErrFinished
	}
	return nil
}

func (s *Session) answerable() error {
	if err := s.usable(); err != nil {
		return err
	}
	if s.state != StatePlaying {
		return ErrNotPlaying
	}
	return nil
}

func (s *Session) enterPlaying() {
	s.stopTimer()
	s.phase++
	s.state = StatePlaying
	s.timeLeft = s.seconds
	s.selected = nil
	s.schedule()
}

func (s *Session) schedule() {
	phase := s.phase
	s.timer = s.clock.AfterFunc(TickInterval, func() { s.tick(phase) })
}

func (s *Session) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) tick(phase uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.state != StatePlaying || phase != s.phase {
		return
	}
	s.timeLeft--
	if s.timeLeft > 0 {
		s.schedule()
		return
	}
	s.timeLeft = 0
	s.timer = nil
	s.resolve(nil)
}

// resolve must be called with the session locked and in StatePlaying.
func (s *Session) resolve(option *string) Answer {
	s.stopTimer()
	s.state = StateFeedback
	s.selected = option

	q := s.questions[s.index]
	a := Answer{
		QuestionID:    q.ID,
		Selected:      option,
		TimedOut:      option == nil,
		TimeLeft:      s.timeLeft,
		CorrectAnswer: q.Answer(),
		Explanation:   q.Explanation,
	}
	if option != nil && q.Accepts(*option) {
		a.Correct = true
		a.Points = Points(s.timeLeft, s.combo)
		s.score += a.Points
		s.correct++
		s.combo++
		if s.combo > s.maxCombo {
			s.maxCombo = s.combo
		}
	} else {
		s.combo = 0
	}
	s.answers = append(s.answers, a)
	return a
}
