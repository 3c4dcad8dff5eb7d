package models

import "strings"

// Language is one of the closed set of interface languages.
type Language string

const (
	English Language = "en"
	Russian Language = "ru"
	Uzbek   Language = "uz"
)

// Languages lists the supported interface languages in display order.
var Languages = []Language{English, Russian, Uzbek}

type VocabItem struct {
	ID              string              `json:"id" db:"id"`
	Word            string              `json:"word" db:"word"`
	PartOfSpeech    string              `json:"part_of_speech" db:"part_of_speech"`
	Definition      string              `json:"definition" db:"definition"`
	ContextSentence string              `json:"context_sentence" db:"context_sentence"`
	Translation     map[Language]string `json:"translation" db:"-"`
}

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionInput          QuestionType = "input"
)

type QuestionBank string

const (
	BankBattle   QuestionBank = "battle"
	BankPractice QuestionBank = "practice"
)

type Question struct {
	ID             string       `json:"id"`
	Bank           QuestionBank `json:"bank"`
	Prompt         string       `json:"question"`
	Type           QuestionType `json:"type"`
	Options        []string     `json:"options,omitempty"`
	CorrectAnswers []string     `json:"-"`
	Explanation    string       `json:"explanation"`
	Hint           string       `json:"hint,omitempty"`
}

// Accepts reports whether answer matches one of the accepted answers,
// ignoring case and surrounding whitespace.
func (q Question) Accepts(answer string) bool {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return false
	}
	for _, c := range q.CorrectAnswers {
		if strings.EqualFold(strings.TrimSpace(c), answer) {
			return true
		}
	}
	return false
}

// Answer returns the primary accepted answer.
func (q Question) Answer() string {
	if len(q.CorrectAnswers) == 0 {
		return ""
	}
	return q.CorrectAnswers[0]
}

type TenseUsage string

const (
	UsageSimple     TenseUsage = "simple"
	UsageContinuous TenseUsage = "continuous"
	UsagePerfect    TenseUsage = "perfect"
)

type GrammarRule struct {
	Title       string     `json:"title"`
	Usage       TenseUsage `json:"usage"`
	Description string     `json:"description"`
	Examples    []string   `json:"examples"`
}

type Reading struct {
	Title         string               `json:"title"`
	Author        string               `json:"author"`
	Paragraphs    []string             `json:"paragraphs"`
	Comprehension []ComprehensionCheck `json:"comprehension"`
}

type ComprehensionCheck struct {
	Question string `json:"question"`
	Answer   string `json:"-"`
}

type DiscussionPrompt struct {
	Statement string              `json:"statement"`
	Question  map[Language]string `json:"question"`
	ModelIdea string              `json:"-"`
	MinLength int                 `json:"min_length"`
}

type Level struct {
	Name  string `json:"name"`
	XP    int    `json:"xp"`
	Color string `json:"color"`
}

type Badge struct {
	ID          string `json:"id"`
	Icon        string `json:"icon"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ConceptCheck struct {
	Target    string     `json:"target"`
	Questions []QAPair   `json:"questions"`
	Usage     TenseUsage `json:"usage"`
}

type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type AnswerKey struct {
	Exercise string   `json:"exercise"`
	Answers  []string `json:"answers"`
}

type TeacherNotes struct {
	Unit          string         `json:"unit"`
	Aims          []string       `json:"aims"`
	ConceptChecks []ConceptCheck `json:"concept_checks"`
	AnswerKeys    []AnswerKey    `json:"answer_keys"`
}
