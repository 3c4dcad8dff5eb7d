package models

import "time"

type FeedbackStatus string

const (
	FeedbackPending FeedbackStatus = "pending"
	FeedbackDone    FeedbackStatus = "done"
)

// FeedbackEntry is one free-form discussion answer and the review it got.
type FeedbackEntry struct {
	ID        string         `json:"id" db:"id"`
	LearnerID string         `json:"learner_id" db:"learner_id"`
	Question  string         `json:"question" db:"question"`
	Answer    string         `json:"answer" db:"answer"`
	Feedback  string         `json:"feedback" db:"feedback"`
	Score     int            `json:"score" db:"score"`
	FromModel bool           `json:"from_model" db:"from_model"`
	Status    FeedbackStatus `json:"status" db:"status"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

type VocabFilter struct {
	PartOfSpeech string
	Search       string
	Limit        int
	Offset       int
}
