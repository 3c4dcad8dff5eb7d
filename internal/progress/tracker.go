// Package progress tracks a learner's experience points, level, streak and
// badges for the lifetime of one session.
package progress

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/aziyat1977/Inter-1.1/internal/models"
)

var ErrNegativeXP = errors.New("xp amount must not be negative")

type EventKind string

const (
	EventLevelUp       EventKind = "level_up"
	EventBadgeUnlocked EventKind = "badge_unlocked"
)

// Event is a one-shot notification for the presentation layer.
type Event struct {
	Kind      EventKind `json:"kind"`
	FromLevel int       `json:"from_level,omitempty"`
	ToLevel   int       `json:"to_level,omitempty"`
	LevelName string    `json:"level_name,omitempty"`
	BadgeID   string    `json:"badge_id,omitempty"`
}

type Snapshot struct {
	XP               int      `json:"xp"`
	Level            int      `json:"level"`
	LevelName        string   `json:"level_name"`
	LevelColor       string   `json:"level_color"`
	NextLevelXP      *int     `json:"next_level_xp"`
	Progress         float64  `json:"progress"`
	Streak           int      `json:"streak"`
	Badges           []string `json:"badges"`
	CompletedModules []string `json:"completed_modules"`
}

// LevelFor returns the largest index i with thresholds[i] <= xp.
// thresholds must be ascending.
func LevelFor(thresholds []int, xp int) int {
	level := 0
	for i, th := range thresholds {
		if th > xp {
			break
		}
		level = i
	}
	return level
}

type Tracker struct {
	mu         sync.Mutex
	levels     []models.Level
	thresholds []int
	xp         int
	level      int
	streak     int
	lastActive time.Time
	badges     []string
	modules    []string
	events     []Event
}

type Option func(*Tracker)

// WithStreak sets the starting day streak.
func WithStreak(n int) Option {
	return func(t *Tracker) {
		if n > 0 {
			t.streak = n
		}
	}
}

// WithBadges pre-unlocks badges without emitting events.
func WithBadges(ids ...string) Option {
	return func(t *Tracker) {
		for _, id := range ids {
			if !slices.Contains(t.badges, id) {
				t.badges = append(t.badges, id)
			}
		}
	}
}

// NewTracker creates a tracker at zero XP over the given ascending level table.
func NewTracker(levels []models.Level, opts ...Option) *Tracker {
	if len(levels) == 0 {
		levels = []models.Level{{Name: "Level 1", XP: 0}}
	}
	t := &Tracker{
		levels:     slices.Clone(levels),
		thresholds: make([]int, len(levels)),
	}
	for i, l := range levels {
		t.thresholds[i] = l.XP
	}
	for _, opt := range opts {
		opt(t)
	}
	t.level = LevelFor(t.thresholds, t.xp)
	return t
}

// AddXP adds amount to the total and recomputes the level. When the level
// rises a level-up event is queued and also returned.
func (t *Tracker) AddXP(amount int) (*Event, error) {
	if amount < 0 {
		return nil, ErrNegativeXP
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.xp += amount
	next := LevelFor(t.thresholds, t.xp)
	if next <= t.level {
		return nil, nil
	}
	ev := Event{
		Kind:      EventLevelUp,
		FromLevel: t.level,
		ToLevel:   next,
		LevelName: t.levels[next].Name,
	}
	t.level = next
	t.events = append(t.events, ev)
	return &ev, nil
}

// UnlockBadge adds id to the unlocked set. It reports false if the badge was
// already unlocked.
func (t *Tracker) UnlockBadge(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id == "" || slices.Contains(t.badges, id) {
		return false
	}
	t.badges = append(t.badges, id)
	t.events = append(t.events, Event{Kind: EventBadgeUnlocked, BadgeID: id})
	return true
}

func (t *Tracker) HasBadge(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Contains(t.badges, id)
}

// CompleteModule marks a lesson module as done. Idempotent.
func (t *Tracker) CompleteModule(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id == "" || slices.Contains(t.modules, id) {
		return false
	}
	t.modules = append(t.modules, id)
	return true
}

// RecordActivity updates the day streak: same calendar day leaves it alone,
// the following day extends it, a longer gap restarts it at 1.
func (t *Tracker) RecordActivity(now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	today := truncateDay(now)
	switch {
	case t.lastActive.IsZero():
		if t.streak == 0 {
			t.streak = 1
		}
	case today.Equal(t.lastActive):
	case today.Equal(t.lastActive.AddDate(0, 0, 1)):
		t.streak++
	case today.After(t.lastActive):
		t.streak = 1
	default:
		// clock went backwards; keep the later day
		return t.streak
	}
	t.lastActive = today
	return t.streak
}

func truncateDay(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, ts.Location())
}

// TakeEvents returns and clears the queued events.
func (t *Tracker) TakeEvents() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	ev := t.events
	t.events = nil
	return ev
}

func (t *Tracker) XP() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.xp
}

func (t *Tracker) Level() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.level
}

func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	cur := t.levels[t.level]
	s := Snapshot{
		XP:               t.xp,
		Level:            t.level,
		LevelName:        cur.Name,
		LevelColor:       cur.Color,
		Progress:         1,
		Streak:           t.streak,
		Badges:           slices.Clone(t.badges),
		CompletedModules: slices.Clone(t.modules),
	}
	if t.level+1 < len(t.levels) {
		next := t.levels[t.level+1].XP
		s.NextLevelXP = &next
		if span := next - cur.XP; span > 0 {
			s.Progress = float64(t.xp-cur.XP) / float64(span)
		}
	}
	return s
}
