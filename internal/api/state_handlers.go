package api

import (
	"net/http"

	"github.com/aziyat1977/Inter-1.1/internal/content"
	"github.com/aziyat1977/Inter-1.1/internal/i18n"
	"github.com/aziyat1977/Inter-1.1/internal/learner"
	"github.com/aziyat1977/Inter-1.1/internal/models"
	"github.com/aziyat1977/Inter-1.1/internal/progress"
)

type stateResponse struct {
	LearnerID string            `json:"learner_id"`
	Unit      string            `json:"unit"`
	Mode      learner.Mode      `json:"mode"`
	Modes     []learner.Mode    `json:"modes"`
	Language  models.Language   `json:"language"`
	Languages []models.Language `json:"languages"`
	Progress  progress.Snapshot `json:"progress"`
	Levels    []models.Level    `json:"levels"`
	Badges    []models.Badge    `json:"badges"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	lc := learnerFromContext(r.Context())
	writeJSON(w, r, http.StatusOK, stateResponse{
		LearnerID: lc.ID(),
		Unit:      content.UnitTitle,
		Mode:      lc.Mode(),
		Modes:     learner.Modes,
		Language:  lc.Language(),
		Languages: models.Languages,
		Progress:  lc.Progress(),
		Levels:    content.Levels(),
		Badges:    content.Badges(),
	})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	notes := learnerFromContext(r.Context()).TakeNotifications()
	if notes == nil {
		notes = []learner.Notification{}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"notifications": notes})
}

func (s *Server) handleSetLanguage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Language string `json:"language"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	lc := learnerFromContext(r.Context())
	if err := s.LearnerService.SetLanguage(r.Context(), lc, req.Language); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"language": lc.Language(),
		"strings":  i18n.Table(lc.Language()),
	})
}

func (s *Server) handleSetMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	lc := learnerFromContext(r.Context())
	if err := s.LearnerService.SetMode(r.Context(), lc, req.Mode); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"mode": lc.Mode()})
}

func (s *Server) handleI18n(w http.ResponseWriter, r *http.Request) {
	lang := learnerFromContext(r.Context()).Language()
	if code := r.URL.Query().Get("lang"); code != "" {
		lang = i18n.ParseLanguage(code)
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"language": lang,
		"strings":  i18n.Table(lang),
	})
}

func (s *Server) handleAddXP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount int `json:"amount"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	p, err := s.LearnerService.AddXP(r.Context(), learnerFromContext(r.Context()), req.Amount)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, p)
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	entries := learnerFromContext(r.Context()).Feedback()
	if entries == nil {
		entries = []models.FeedbackEntry{}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"feedback": entries})
}
