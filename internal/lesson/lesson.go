// Package lesson tracks one learner's way through the guided student lesson:
// a warm-up discussion, the reading passage, the grammar overview and the
// typed practice exercise. It reports XP to award; it never owns the tracker.
package lesson

import (
	"errors"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/aziyat1977/Inter-1.1/internal/models"
)

const (
	DiscussXP        = 10
	PracticeXPPerHit = 20
)

var (
	ErrTooShort        = errors.New("answer is too short")
	ErrAlreadyChecked  = errors.New("practice already checked, retry first")
	ErrUnknownQuestion = errors.New("no such comprehension question")
)

type Step int

const (
	StepDiscuss Step = iota
	StepRead
	StepLearn
	StepType
)

var stepNames = [...]string{"discuss", "read", "learn", "type"}

func (s Step) String() string {
	if s < StepDiscuss || s > StepType {
		return "unknown"
	}
	return stepNames[s]
}

func (s Step) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// ClampStep maps any index onto the valid step range.
func ClampStep(i int) Step {
	switch {
	case i < int(StepDiscuss):
		return StepDiscuss
	case i > int(StepType):
		return StepType
	}
	return Step(i)
}

type Outcome string

const (
	OutcomePerfect Outcome = "perfect"
	OutcomePartial Outcome = "partial"
	OutcomeNone    Outcome = "none"
)

type ItemResult struct {
	ID          string `json:"id"`
	Answer      string `json:"answer"`
	Correct     bool   `json:"correct"`
	Expected    string `json:"expected"`
	Explanation string `json:"explanation"`
}

type PracticeResult struct {
	Items   []ItemResult `json:"items"`
	Correct int          `json:"correct"`
	Total   int          `json:"total"`
	Outcome Outcome      `json:"outcome"`
	// XP is what this check earned; zero once the practice has paid out.
	XP int `json:"xp"`
}

type DiscussOutcome struct {
	ModelIdea string `json:"model_idea"`
	XP        int    `json:"xp"`
}

type Snapshot struct {
	Step         Step            `json:"step"`
	Opinion      string          `json:"opinion"`
	Revealed     bool            `json:"revealed"`
	ModelIdea    string          `json:"model_idea,omitempty"`
	Comprehended []int           `json:"comprehension_revealed"`
	Result       *PracticeResult `json:"result,omitempty"`
}

type Lesson struct {
	mu sync.Mutex

	discussion models.DiscussionPrompt
	reading    models.Reading
	practice   []models.Question

	step          Step
	opinion       string
	revealed      bool
	comprehension map[int]bool
	result        *PracticeResult
	practicePaid  bool
}

func New(discussion models.DiscussionPrompt, reading models.Reading, practice []models.Question) *Lesson {
	if discussion.MinLength <= 0 {
		discussion.MinLength = 5
	}
	return &Lesson{
		discussion:    discussion,
		reading:       reading,
		practice:      practice,
		comprehension: make(map[int]bool),
	}
}

// GoTo moves to step i, clamped to the valid range.
func (l *Lesson) GoTo(i int) Step {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.step = ClampStep(i)
	return l.step
}

// Discuss records the learner's opinion and reveals the model idea. Only the
// first successful reveal earns XP.
func (l *Lesson) Discuss(answer string) (DiscussOutcome, error) {
	answer = strings.TrimSpace(answer)
	if utf8.RuneCountInString(answer) < l.discussion.MinLength {
		return DiscussOutcome{}, ErrTooShort
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	l.opinion = answer
	out := DiscussOutcome{ModelIdea: l.discussion.ModelIdea}
	if !l.revealed {
		l.revealed = true
		out.XP = DiscussXP
	}
	return out, nil
}

func (l *Lesson) RevealComprehension(i int) (string, error) {
	if i < 0 || i >= len(l.reading.Comprehension) {
		return "", ErrUnknownQuestion
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.comprehension[i] = true
	return l.reading.Comprehension[i].Answer, nil
}

// CheckPractice grades answers keyed by exercise id. Missing answers count as
// wrong.
func (l *Lesson) CheckPractice(answers map[string]string) (PracticeResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.result != nil {
		return PracticeResult{}, ErrAlreadyChecked
	}

	res := PracticeResult{Total: len(l.practice), Items: make([]ItemResult, 0, len(l.practice))}
	for _, q := range l.practice {
		given := answers[q.ID]
		item := ItemResult{
			ID:          q.ID,
			Answer:      given,
			Correct:     q.Accepts(given),
			Expected:    q.Answer(),
			Explanation: q.Explanation,
		}
		if item.Correct {
			res.Correct++
		}
		res.Items = append(res.Items, item)
	}
	switch {
	case res.Total > 0 && res.Correct == res.Total:
		res.Outcome = OutcomePerfect
	case res.Correct > 0:
		res.Outcome = OutcomePartial
	default:
		res.Outcome = OutcomeNone
	}
	if !l.practicePaid && res.Correct > 0 {
		res.XP = res.Correct * PracticeXPPerHit
		l.practicePaid = true
	}

	l.result = &res
	return res, nil
}

// Retry clears the graded result so the learner can try again.
func (l *Lesson) Retry() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.result = nil
}

func (l *Lesson) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := Snapshot{
		Step:         l.step,
		Opinion:      l.opinion,
		Revealed:     l.revealed,
		Comprehended: []int{},
	}
	if l.revealed {
		snap.ModelIdea = l.discussion.ModelIdea
	}
	for i := range l.reading.Comprehension {
		if l.comprehension[i] {
			snap.Comprehended = append(snap.Comprehended, i)
		}
	}
	if l.result != nil {
		res := *l.result
		snap.Result = &res
	}
	return snap
}
