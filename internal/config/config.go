package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                string
	DBPath              string
	LogLevel            string
	FeedbackWorkerCount int
	FeedbackQueueSize   int
	FeedbackTimeout     time.Duration
	GeminiAPIKey        string
	GeminiModel         string
	GeminiBaseURL       string
	LearnerIdle         time.Duration
	SweepInterval       time.Duration
	TeacherPasscode     string
	DefaultStreak       int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                envOr("ADDR", ":8080"),
		DBPath:              envOr("DB_PATH", "file:trends?mode=memory&cache=shared"),
		LogLevel:            envOr("LOG_LEVEL", "INFO"),
		FeedbackWorkerCount: envIntOr("FEEDBACK_WORKER_COUNT", 2),
		FeedbackQueueSize:   envIntOr("FEEDBACK_QUEUE_SIZE", 32),
		FeedbackTimeout:     time.Duration(envIntOr("FEEDBACK_TIMEOUT_SECONDS", 15)) * time.Second,
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		GeminiModel:         envOr("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiBaseURL:       envOr("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		LearnerIdle:         time.Duration(envIntOr("LEARNER_IDLE_MINUTES", 120)) * time.Minute,
		SweepInterval:       time.Duration(envIntOr("SWEEP_INTERVAL_MINUTES", 5)) * time.Minute,
		TeacherPasscode:     os.Getenv("TEACHER_PASSCODE"),
		DefaultStreak:       envIntOr("DEFAULT_STREAK", 0),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if c.FeedbackWorkerCount < 1 {
		errs = append(errs, fmt.Errorf("FEEDBACK_WORKER_COUNT must be at least 1 (got %d)", c.FeedbackWorkerCount))
	}
	if c.FeedbackQueueSize < 1 {
		errs = append(errs, fmt.Errorf("FEEDBACK_QUEUE_SIZE must be at least 1 (got %d)", c.FeedbackQueueSize))
	}
	if c.FeedbackTimeout <= 0 {
		errs = append(errs, errors.New("FEEDBACK_TIMEOUT_SECONDS must be positive"))
	}
	if c.GeminiAPIKey != "" {
		if c.GeminiModel == "" {
			errs = append(errs, errors.New("GEMINI_MODEL cannot be empty when GEMINI_API_KEY is set"))
		}
		if u, err := url.Parse(c.GeminiBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("GEMINI_BASE_URL is not an absolute URL (got %q)", c.GeminiBaseURL))
		}
	}
	if c.LearnerIdle <= 0 {
		errs = append(errs, errors.New("LEARNER_IDLE_MINUTES must be positive"))
	}
	if c.SweepInterval <= 0 {
		errs = append(errs, errors.New("SWEEP_INTERVAL_MINUTES must be positive"))
	}
	if c.DefaultStreak < 0 {
		errs = append(errs, fmt.Errorf("DEFAULT_STREAK cannot be negative (got %d)", c.DefaultStreak))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
}

// FeedbackEnabled reports whether a generative model is configured.
func (c Config) FeedbackEnabled() bool { return c.GeminiAPIKey != "" }

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
