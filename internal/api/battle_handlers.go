package api

import (
	"net/http"

	"github.com/aziyat1977/Inter-1.1/internal/services"
)

func (s *Server) handleBattle(w http.ResponseWriter, r *http.Request) {
	snap, err := s.LearnerService.Battle(r.Context(), learnerFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, snap)
}

func (s *Server) handleStartBattle(w http.ResponseWriter, r *http.Request) {
	snap, err := s.LearnerService.StartBattle(r.Context(), learnerFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, snap)
}

func (s *Server) handleSelectOption(w http.ResponseWriter, r *http.Request) {
	var sel services.BattleSelection
	if err := decodeJSON(w, r, &sel); err != nil {
		handleError(w, r, err)
		return
	}
	ans, err := s.LearnerService.SelectOption(r.Context(), learnerFromContext(r.Context()), sel)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, ans)
}

func (s *Server) handleAdvanceBattle(w http.ResponseWriter, r *http.Request) {
	snap, err := s.LearnerService.AdvanceBattle(r.Context(), learnerFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, snap)
}
