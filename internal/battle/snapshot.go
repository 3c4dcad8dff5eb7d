package battle

import "slices"

// QuestionView is the current question as the learner may see it. The
// answer and explanation are only filled in once the question is resolved.
type QuestionView struct {
	ID            string   `json:"id"`
	Prompt        string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	Explanation   string   `json:"explanation,omitempty"`
}

type Snapshot struct {
	State      State         `json:"state"`
	Index      int           `json:"index"`
	Total      int           `json:"total"`
	Question   *QuestionView `json:"question,omitempty"`
	Score      int           `json:"score"`
	TimeLeft   int           `json:"time_left"`
	Combo      int           `json:"combo"`
	MaxCombo   int           `json:"max_combo"`
	Correct    int           `json:"correct"`
	Selected   *string       `json:"selected"`
	LastAnswer *Answer       `json:"last_answer,omitempty"`
	Result     *Result       `json:"result,omitempty"`
}

func (s *Session) snapshot() Snapshot {
	snap := Snapshot{
		State:    s.state,
		Index:    s.index,
		Total:    len(s.questions),
		Score:    s.score,
		TimeLeft: s.timeLeft,
		Combo:    s.combo,
		MaxCombo: s.maxCombo,
		Correct:  s.correct,
	}
	if s.selected != nil {
		sel := *s.selected
		snap.Selected = &sel
	}
	if s.result != nil {
		res := *s.result
		snap.Result = &res
	}

	if s.state == StatePlaying || s.state == StateFeedback {
		q := s.questions[s.index]
		view := &QuestionView{
			ID:      q.ID,
			Prompt:  q.Prompt,
			Options: slices.Clone(q.Options),
		}
		if s.state == StateFeedback {
			view.CorrectAnswer = q.Answer()
			view.Explanation = q.Explanation
		}
		snap.Question = view
	}
	if s.state != StateIntro && len(s.answers) > 0 {
		last := s.answers[len(s.answers)-1]
		snap.LastAnswer = &last
	}
	return snap
}

// Answers returns every resolved question in order.
func (s *Session) Answers() []Answer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.answers)
}
