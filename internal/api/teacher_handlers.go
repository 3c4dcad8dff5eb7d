package api

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/aziyat1977/Inter-1.1/internal/errors"
	"github.com/aziyat1977/Inter-1.1/internal/logger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) handleTeacherUnlock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Passcode string `json:"passcode"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	token, err := s.TeacherService.Unlock(r.Context(), req.Passcode)
	if err != nil {
		handleError(w, r, err)
		return
	}
	s.setCookie(w, teacherCookieName, token, teacherCookieTTL)
	writeJSON(w, r, http.StatusOK, map[string]any{"unlocked": true})
}

func (s *Server) handleTeacherDashboard(w http.ResponseWriter, r *http.Request) {
	reveal := false
	if raw := r.URL.Query().Get("reveal"); raw != "" {
		var err error
		if reveal, err = strconv.ParseBool(raw); err != nil {
			handleError(w, r, errors.NewValidationError("reveal", "must be true or false"))
			return
		}
	}
	d, err := s.TeacherService.Dashboard(r.Context(), reveal)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, d)
}

// handleAnswerKeyExport buffers the workbook so a failure can still be
// reported as JSON.
func (s *Server) handleAnswerKeyExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.TeacherService.ExportAnswerKey(r.Context(), &buf); err != nil {
		handleError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="trends-unit-1-1-answer-key.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		logger.FromContext(r.Context()).Warn("failed to send answer key: %v", err)
	}
}
