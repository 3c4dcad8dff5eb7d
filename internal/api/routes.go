package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.learnerMiddleware)

		r.Get("/state", s.handleState)
		r.Get("/events", s.handleEvents)
		r.Post("/language", s.handleSetLanguage)
		r.Post("/mode", s.handleSetMode)
		r.Get("/i18n", s.handleI18n)
		r.Post("/xp", s.handleAddXP)

		r.Route("/lesson", func(r chi.Router) {
			r.Get("/", s.handleLesson)
			r.Post("/step", s.handleLessonStep)
			r.Post("/discuss", s.handleDiscuss)
			r.Post("/comprehension/{index}", s.handleRevealComprehension)
			r.Post("/check", s.handleCheckPractice)
			r.Post("/retry", s.handleRetryPractice)
		})

		r.Route("/battle", func(r chi.Router) {
			r.Get("/", s.handleBattle)
			r.Post("/start", s.handleStartBattle)
			r.Post("/select", s.handleSelectOption)
			r.Post("/advance", s.handleAdvanceBattle)
		})

		r.Route("/vocab", func(r chi.Router) {
			r.Get("/", s.handleVocab)
			r.Get("/review", s.handleReview)
			r.Post("/review/{id}/flip", s.handleFlipCard)
			r.Get("/recall", s.handleRecall)
			r.Post("/recall", s.handleRecallAction)
			r.Get("/choice", s.handleChoice)
			r.Post("/choice", s.handleAnswerChoice)
		})

		r.Get("/grammar", s.handleGrammar)
		r.Get("/feedback", s.handleFeedback)

		r.Route("/teacher", func(r chi.Router) {
			r.Post("/unlock", s.handleTeacherUnlock)
			r.Group(func(r chi.Router) {
				r.Use(s.teacherGate)
				r.Get("/dashboard", s.handleTeacherDashboard)
				r.Get("/answer-key.xlsx", s.handleAnswerKeyExport)
			})
		})
	})

	return r
}
