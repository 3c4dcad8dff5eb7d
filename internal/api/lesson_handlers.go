package api

import (
	"net/http"

	"github.com/aziyat1977/Inter-1.1/internal/content"
	"github.com/aziyat1977/Inter-1.1/internal/lesson"
	"github.com/aziyat1977/Inter-1.1/internal/models"
	"github.com/go-chi/chi/v5"
)

// practiceView hides accepted answers until the sheet is checked.
type practiceView struct {
	ID     string `json:"id"`
	Prompt string `json:"question"`
	Hint   string `json:"hint,omitempty"`
}

type lessonResponse struct {
	lesson.Snapshot
	Discussion models.DiscussionPrompt `json:"discussion"`
	Reading    models.Reading          `json:"reading"`
	Grammar    []models.GrammarRule    `json:"grammar"`
	Practice   []practiceView          `json:"practice"`
}

func (s *Server) lessonView(snap lesson.Snapshot) lessonResponse {
	practice := content.PracticeExercises()
	views := make([]practiceView, len(practice))
	for i, q := range practice {
		views[i] = practiceView{ID: q.ID, Prompt: q.Prompt, Hint: q.Hint}
	}
	return lessonResponse{
		Snapshot:   snap,
		Discussion: content.Discussion(),
		Reading:    content.ReadingText(),
		Grammar:    content.Grammar(),
		Practice:   views,
	}
}

func (s *Server) handleLesson(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.lessonView(learnerFromContext(r.Context()).Lesson()))
}

func (s *Server) handleLessonStep(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Step int `json:"step"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	snap := s.LearnerService.GoToStep(r.Context(), learnerFromContext(r.Context()), req.Step)
	writeJSON(w, r, http.StatusOK, snap)
}

func (s *Server) handleDiscuss(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Answer string `json:"answer"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	res, err := s.LearnerService.Discuss(r.Context(), learnerFromContext(r.Context()), req.Answer)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleRevealComprehension(w http.ResponseWriter, r *http.Request) {
	i, err := pathInt(chi.URLParam(r, "index"), "index")
	if err != nil {
		handleError(w, r, err)
		return
	}
	answer, err := s.LearnerService.RevealComprehension(r.Context(), learnerFromContext(r.Context()), i)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"index": i, "answer": answer})
}

func (s *Server) handleCheckPractice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Answers map[string]string `json:"answers"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	res, err := s.LearnerService.CheckPractice(r.Context(), learnerFromContext(r.Context()), req.Answers)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleRetryPractice(w http.ResponseWriter, r *http.Request) {
	snap := s.LearnerService.RetryPractice(r.Context(), learnerFromContext(r.Context()))
	writeJSON(w, r, http.StatusOK, snap)
}

func (s *Server) handleGrammar(w http.ResponseWriter, r *http.Request) {
	rules, err := s.ContentService.ListGrammar(r.Context(), r.URL.Query().Get("usage"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"grammar": rules})
}
