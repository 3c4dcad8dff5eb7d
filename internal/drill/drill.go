// Package drill holds the vocabulary practice loops: free review with card
// flips, a knew-it/forgot recall streak, and a two-option definition drill.
// None of them terminate on their own; both scored drills wrap around.
package drill

import (
	"errors"
	"math/rand"
	"slices"
	"sync"

	"github.com/aziyat1977/Inter-1.1/internal/models"
)

var (
	ErrEmptyDeck    = errors.New("drill needs at least one card")
	ErrDeckTooSmall = errors.New("multiple-choice drill needs at least two cards")
	ErrUnknownCard  = errors.New("card is not in the deck")
	ErrBadSide      = errors.New("side must be 0 or 1")
)

// Review tracks which cards are flipped to their back side.
type Review struct {
	mu      sync.Mutex
	cards   []models.VocabItem
	flipped map[string]bool
}

func NewReview(cards []models.VocabItem) *Review {
	return &Review{
		cards:   slices.Clone(cards),
		flipped: make(map[string]bool),
	}
}

// Flip toggles the card and returns its new side (true means back).
func (r *Review) Flip(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !slices.ContainsFunc(r.cards, func(c models.VocabItem) bool { return c.ID == id }) {
		return false, ErrUnknownCard
	}
	r.flipped[id] = !r.flipped[id]
	return r.flipped[id], nil
}

func (r *Review) Flipped(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flipped[id]
}

type ReviewCard struct {
	models.VocabItem
	Flipped bool `json:"flipped"`
}

func (r *Review) Cards() []ReviewCard {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ReviewCard, len(r.cards))
	for i, c := range r.cards {
		out[i] = ReviewCard{VocabItem: c, Flipped: r.flipped[c.ID]}
	}
	return out
}

// Recall shows one card at a time; the learner judges whether they knew it.
type Recall struct {
	mu      sync.Mutex
	cards   []models.VocabItem
	index   int
	flipped bool
	streak  int
	best    int
	seen    int
}

type RecallSnapshot struct {
	Card     models.VocabItem `json:"card"`
	Index    int              `json:"index"`
	Total    int              `json:"total"`
	Flipped  bool             `json:"flipped"`
	Streak   int              `json:"streak"`
	Best     int              `json:"best"`
	Reviewed int              `json:"reviewed"`
}

func NewRecall(cards []models.VocabItem) (*Recall, error) {
	if len(cards) == 0 {
		return nil, ErrEmptyDeck
	}
	return &Recall{cards: slices.Clone(cards)}, nil
}

func (r *Recall) Current() models.VocabItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cards[r.index]
}

func (r *Recall) Flip() RecallSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flipped = !r.flipped
	return r.snapshot()
}

// Judge records the verdict on the current card and moves to the next one,
// wrapping after the last.
func (r *Recall) Judge(knew bool) RecallSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	if knew {
		r.streak++
		if r.streak > r.best {
			r.best = r.streak
		}
	} else {
		r.streak = 0
	}
	r.seen++
	r.flipped = false
	r.index = (r.index + 1) % len(r.cards)
	return r.snapshot()
}

func (r *Recall) Snapshot() RecallSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot()
}

func (r *Recall) snapshot() RecallSnapshot {
	return RecallSnapshot{
		Card:     r.cards[r.index],
		Index:    r.index,
		Total:    len(r.cards),
		Flipped:  r.flipped,
		Streak:   r.streak,
		Best:     r.best,
		Reviewed: r.seen,
	}
}

// Choice asks for the definition of the current word out of two options:
// the right one and one taken from a different word.
type Choice struct {
	mu      sync.Mutex
	cards   []models.VocabItem
	rng     *rand.Rand
	index   int
	options [2]string
	correct int
	score   int
	asked   int
}

type ChoiceSnapshot struct {
	Word         string    `json:"word"`
	PartOfSpeech string    `json:"part_of_speech"`
	Options      [2]string `json:"options"`
	Index        int       `json:"index"`
	Total        int       `json:"total"`
	Score        int       `json:"score"`
	Asked        int       `json:"asked"`
}

type ChoiceOutcome struct {
	Correct           bool           `json:"correct"`
	Chosen            string         `json:"chosen"`
	CorrectDefinition string         `json:"correct_definition"`
	Next              ChoiceSnapshot `json:"next"`
}

// NewChoice builds the drill. rng may be nil, in which case a time-seeded
// source is used.
func NewChoice(cards []models.VocabItem, rng *rand.Rand) (*Choice, error) {
	if len(cards) < 2 {
		return nil, ErrDeckTooSmall
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	c := &Choice{cards: slices.Clone(cards), rng: rng}
	c.deal()
	return c, nil
}

func (c *Choice) deal() {
	right := c.cards[c.index]
	foil := c.index
	for foil == c.index {
		foil = c.rng.Intn(len(c.cards))
	}
	wrong := c.cards[foil]
	c.correct = c.rng.Intn(2)
	c.options[c.correct] = right.Definition
	c.options[1-c.correct] = wrong.Definition
}

// Answer picks the option on side (0 left, 1 right), scores it and deals
// the next word.
func (c *Choice) Answer(side int) (ChoiceOutcome, error) {
	if side != 0 && side != 1 {
		return ChoiceOutcome{}, ErrBadSide
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	out := ChoiceOutcome{
		Correct:           side == c.correct,
		Chosen:            c.options[side],
		CorrectDefinition: c.options[c.correct],
	}
	if out.Correct {
		c.score++
	}
	c.asked++
	c.index = (c.index + 1) % len(c.cards)
	c.deal()
	out.Next = c.snapshot()
	return out, nil
}

func (c *Choice) Snapshot() ChoiceSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// CorrectSide exposes the side holding the right definition.
func (c *Choice) CorrectSide() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.correct
}

func (c *Choice) snapshot() ChoiceSnapshot {
	cur := c.cards[c.index]
	return ChoiceSnapshot{
		Word:         cur.Word,
		PartOfSpeech: cur.PartOfSpeech,
		Options:      c.options,
		Index:        c.index,
		Total:        len(c.cards),
		Score:        c.score,
		Asked:        c.asked,
	}
}
