package api

import (
	"context"

	"github.com/aziyat1977/Inter-1.1/internal/learner"
	"github.com/aziyat1977/Inter-1.1/internal/services"
)

// ReadyChecker reports whether a backing store can serve requests.
type ReadyChecker interface {
	Ready(ctx context.Context) error
}

type Server struct {
	DB             ReadyChecker
	Learners       *learner.Store
	LearnerService services.LearnerService
	ContentService services.ContentService
	TeacherService services.TeacherService
	SecureCookies  bool
}
