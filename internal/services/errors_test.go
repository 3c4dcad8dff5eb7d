package services

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/aziyat1977/Inter-1.1/internal/battle"
	"github.com/aziyat1977/Inter-1.1/internal/drill"
	"github.com/aziyat1977/Inter-1.1/internal/errors"
	"github.com/aziyat1977/Inter-1.1/internal/learner"
	"github.com/aziyat1977/Inter-1.1/internal/lesson"
	"github.com/aziyat1977/Inter-1.1/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToAppError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{learner.ErrUnknownMode, http.StatusBadRequest, errors.ErrCodeValidation},
		{learner.ErrUnsupportedLang, http.StatusBadRequest, errors.ErrCodeValidation},
		{battle.ErrUnknownOption, http.StatusBadRequest, errors.ErrCodeValidation},
		{drill.ErrBadSide, http.StatusBadRequest, errors.ErrCodeValidation},
		{lesson.ErrTooShort, http.StatusBadRequest, errors.ErrCodeValidation},
		{progress.ErrNegativeXP, http.StatusBadRequest, errors.ErrCodeValidation},
		{drill.ErrUnknownCard, http.StatusNotFound, errors.ErrCodeNotFound},
		{lesson.ErrUnknownQuestion, http.StatusNotFound, errors.ErrCodeNotFound},
		{learner.ErrUnknownFeedback, http.StatusNotFound, errors.ErrCodeNotFound},
		{learner.ErrNoBattle, http.StatusConflict, errors.ErrCodeConflict},
		{battle.ErrFinished, http.StatusConflict, errors.ErrCodeConflict},
		{battle.ErrNotPlaying, http.StatusConflict, errors.ErrCodeConflict},
		{fmt.Errorf("wrapped: %w", lesson.ErrAlreadyChecked), http.StatusConflict, errors.ErrCodeConflict},
		{fmt.Errorf("disk on fire"), http.StatusInternalServerError, errors.ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			appErr, ok := errors.As(toAppError(tt.err))
			require.True(t, ok)
			assert.Equal(t, tt.status, appErr.Status)
			assert.Equal(t, tt.code, appErr.Code)
		})
	}

	assert.NoError(t, toAppError(nil))
	existing := errors.NewBadRequestError("x")
	assert.Same(t, existing, toAppError(existing))
}
