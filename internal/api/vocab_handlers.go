package api

import (
	"net/http"

	"github.com/aziyat1977/Inter-1.1/internal/errors"
	"github.com/aziyat1977/Inter-1.1/internal/models"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleVocab(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		handleError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		handleError(w, r, err)
		return
	}
	q := r.URL.Query()
	items, err := s.ContentService.ListVocab(r.Context(), models.VocabFilter{
		PartOfSpeech: q.Get("pos"),
		Search:       q.Get("q"),
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"vocab": items, "count": len(items)})
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	cards := learnerFromContext(r.Context()).Review()
	writeJSON(w, r, http.StatusOK, map[string]any{"cards": cards})
}

func (s *Server) handleFlipCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	flipped, err := s.LearnerService.FlipCard(r.Context(), learnerFromContext(r.Context()), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"id": id, "flipped": flipped})
}

func (s *Server) handleRecall(w http.ResponseWriter, r *http.Request) {
	snap, err := s.LearnerService.Recall(r.Context(), learnerFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, snap)
}

// handleRecallAction takes {"action":"flip"} or {"action":"judge","knew":bool}.
func (s *Server) handleRecallAction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Action string `json:"action"`
		Knew   bool   `json:"knew"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	lc := learnerFromContext(r.Context())
	switch req.Action {
	case "flip":
		snap, err := s.LearnerService.FlipRecall(r.Context(), lc)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, snap)
	case "judge":
		snap, err := s.LearnerService.JudgeRecall(r.Context(), lc, req.Knew)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, snap)
	default:
		handleError(w, r, errors.NewValidationError("action", "must be flip or judge"))
	}
}

func (s *Server) handleChoice(w http.ResponseWriter, r *http.Request) {
	snap, err := s.LearnerService.Choice(r.Context(), learnerFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, snap)
}

func (s *Server) handleAnswerChoice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Side *int `json:"side"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Side == nil {
		handleError(w, r, errors.NewValidationError("side", "is required"))
		return
	}
	out, err := s.LearnerService.AnswerChoice(r.Context(), learnerFromContext(r.Context()), *req.Side)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}
