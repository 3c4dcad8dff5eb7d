package services

import (
	stderrors "errors"

	"github.com/aziyat1977/Inter-1.1/internal/battle"
	"github.com/aziyat1977/Inter-1.1/internal/drill"
	"github.com/aziyat1977/Inter-1.1/internal/errors"
	"github.com/aziyat1977/Inter-1.1/internal/learner"
	"github.com/aziyat1977/Inter-1.1/internal/lesson"
	"github.com/aziyat1977/Inter-1.1/internal/progress"
)

// toAppError maps domain sentinel errors onto AppErrors. Anything unknown is
// an internal error.
func toAppError(err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := errors.As(err); ok {
		return appErr
	}

	switch {
	case stderrors.Is(err, learner.ErrUnknownMode):
		return errors.NewValidationError("mode", err.Error())
	case stderrors.Is(err, learner.ErrUnsupportedLang):
		return errors.NewValidationError("language", err.Error())
	case stderrors.Is(err, learner.ErrUnknownFeedback):
		return errors.NewNotFoundError("feedback", "entry")
	case stderrors.Is(err, battle.ErrUnknownOption):
		return errors.NewValidationError("option", err.Error())
	case stderrors.Is(err, drill.ErrBadSide):
		return errors.NewValidationError("side", err.Error())
	case stderrors.Is(err, lesson.ErrTooShort):
		return errors.NewValidationError("answer", err.Error())
	case stderrors.Is(err, progress.ErrNegativeXP):
		return errors.NewValidationError("amount", err.Error())
	case stderrors.Is(err, drill.ErrUnknownCard):
		return errors.NewNotFoundError("card", "id")
	case stderrors.Is(err, lesson.ErrUnknownQuestion):
		return errors.NewNotFoundError("comprehension question", "index")
	case stderrors.Is(err, learner.ErrNoBattle),
		stderrors.Is(err, battle.ErrAlreadyStarted),
		stderrors.Is(err, battle.ErrNotPlaying),
		stderrors.Is(err, battle.ErrNotInFeedback),
		stderrors.Is(err, battle.ErrFinished),
		stderrors.Is(err, battle.ErrClosed),
		stderrors.Is(err, lesson.ErrAlreadyChecked):
		return errors.NewConflictError(err.Error(), err)
	}
	return errors.NewInternalError(err)
}
