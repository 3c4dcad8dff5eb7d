package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aziyat1977/Inter-1.1/internal/api"
	"github.com/aziyat1977/Inter-1.1/internal/config"
	"github.com/aziyat1977/Inter-1.1/internal/db"
	"github.com/aziyat1977/Inter-1.1/internal/feedback"
	"github.com/aziyat1977/Inter-1.1/internal/jobs"
	"github.com/aziyat1977/Inter-1.1/internal/learner"
	"github.com/aziyat1977/Inter-1.1/internal/logger"
	"github.com/aziyat1977/Inter-1.1/internal/repository/sqlite"
	"github.com/aziyat1977/Inter-1.1/internal/scheduler"
	"github.com/aziyat1977/Inter-1.1/internal/services"
	"github.com/aziyat1977/Inter-1.1/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Trends Unit 1.1 Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("feedback_worker_count=%d", cfg.FeedbackWorkerCount)
	log.Debug("feedback_queue_size=%d", cfg.FeedbackQueueSize)
	log.Debug("feedback_timeout=%v", cfg.FeedbackTimeout)
	log.Debug("feedback_enabled=%t model=%s", cfg.FeedbackEnabled(), cfg.GeminiModel)
	log.Debug("learner_idle=%v sweep_interval=%v", cfg.LearnerIdle, cfg.SweepInterval)
	log.Debug("teacher_passcode_set=%t", cfg.TeacherPasscode != "")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	contentRepo := sqlite.NewContentRepository(database.DB)
	feedbackRepo := sqlite.NewFeedbackRepository(database.DB)

	var reviewer feedback.Client = feedback.Offline{}
	if cfg.FeedbackEnabled() {
		reviewer = feedback.NewGemini(cfg.GeminiAPIKey,
			feedback.WithModel(cfg.GeminiModel),
			feedback.WithBaseURL(cfg.GeminiBaseURL),
		)
	} else {
		log.Warn("GEMINI_API_KEY not set, discussion answers get the offline fallback")
	}

	feedbackPool := worker.NewPool(cfg.FeedbackWorkerCount, cfg.FeedbackQueueSize)
	queue := jobs.NewWorkerQueue(feedbackPool, reviewer, feedbackRepo, cfg.FeedbackTimeout)

	learners := learner.NewStore(learner.WithContextOptions(learner.WithStreak(cfg.DefaultStreak)))
	sweeper := scheduler.New(learners, cfg.SweepInterval, cfg.LearnerIdle)

	contentService := services.NewContentService(contentRepo)
	teacherService, err := services.NewTeacherService(contentService, feedbackRepo, cfg.TeacherPasscode)
	if err != nil {
		log.Error("failed to prepare teacher service: %v", err)
		os.Exit(1)
	}

	srv := &api.Server{
		DB:             database,
		Learners:       learners,
		LearnerService: services.NewLearnerService(queue),
		ContentService: contentService,
		TeacherService: teacherService,
	}

	feedbackPool.Start(ctx)
	if err := sweeper.Start(); err != nil {
		log.Error("failed to start scheduler: %v", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping scheduler")
	sweeper.Stop()

	log.Debug("stopping feedback pool")
	feedbackPool.Stop()

	log.Debug("closing learner contexts")
	learners.CloseAll()

	log.Info("===========================================")
	log.Info("Trends Unit 1.1 Server Stopped")
	log.Info("===========================================")
}
