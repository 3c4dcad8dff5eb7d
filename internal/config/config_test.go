package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/aziyat1977/Inter-1.1/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() config.Config {
	return config.Config{
		Addr:                ":8080",
		DBPath:              "test.db",
		LogLevel:            "INFO",
		FeedbackWorkerCount: 2,
		FeedbackQueueSize:   32,
		FeedbackTimeout:     15 * time.Second,
		GeminiModel:         "gemini-2.5-flash",
		GeminiBaseURL:       "https://generativelanguage.googleapis.com/v1beta",
		LearnerIdle:         2 * time.Hour,
		SweepInterval:       5 * time.Minute,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = " "

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_InvalidWorkerSettings(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*config.Config)
		expectedError string
	}{
		{
			name:          "zero workers",
			mutate:        func(c *config.Config) { c.FeedbackWorkerCount = 0 },
			expectedError: "FEEDBACK_WORKER_COUNT",
		},
		{
			name:          "negative workers",
			mutate:        func(c *config.Config) { c.FeedbackWorkerCount = -1 },
			expectedError: "FEEDBACK_WORKER_COUNT",
		},
		{
			name:          "zero queue",
			mutate:        func(c *config.Config) { c.FeedbackQueueSize = 0 },
			expectedError: "FEEDBACK_QUEUE_SIZE",
		},
		{
			name:          "zero timeout",
			mutate:        func(c *config.Config) { c.FeedbackTimeout = 0 },
			expectedError: "FEEDBACK_TIMEOUT_SECONDS",
		},
		{
			name:          "zero idle window",
			mutate:        func(c *config.Config) { c.LearnerIdle = 0 },
			expectedError: "LEARNER_IDLE_MINUTES",
		},
		{
			name:          "zero sweep interval",
			mutate:        func(c *config.Config) { c.SweepInterval = 0 },
			expectedError: "SWEEP_INTERVAL_MINUTES",
		},
		{
			name:          "negative streak",
			mutate:        func(c *config.Config) { c.DefaultStreak = -2 },
			expectedError: "DEFAULT_STREAK",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestValidate_GeminiSettingsOnlyCheckedWithKey(t *testing.T) {
	cfg := validConfig()
	cfg.GeminiBaseURL = "not a url"
	cfg.GeminiModel = ""
	assert.NoError(t, cfg.Validate())
	assert.False(t, cfg.FeedbackEnabled())

	cfg.GeminiAPIKey = "key"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_BASE_URL")
	assert.Contains(t, err.Error(), "GEMINI_MODEL")
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{name: "invalid level", level: "INVALID"},
		{name: "empty level", level: ""},
		{name: "lowercase valid level", level: "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = tt.level

			err := cfg.Validate()
			if tt.level == "debug" {
				// Lowercase should be accepted (converted to uppercase)
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "LOG_LEVEL")
			}
		})
	}
}

func TestValidate_ValidLogLevels(t *testing.T) {
	for _, level := range []string{"DEBUG", "INFO", "WARN", "ERROR"} {
		t.Run(level, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = level
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{LogLevel: "INVALID"}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "DB_PATH cannot be empty")
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "FEEDBACK_WORKER_COUNT")
	assert.Contains(t, errStr, "FEEDBACK_QUEUE_SIZE")
	assert.Contains(t, errStr, "LEARNER_IDLE_MINUTES")
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_PATH", "custom.db")
	t.Setenv("FEEDBACK_TIMEOUT_SECONDS", "3")
	t.Setenv("LEARNER_IDLE_MINUTES", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, 3*time.Second, cfg.FeedbackTimeout)
	assert.Equal(t, 120*time.Minute, cfg.LearnerIdle, "invalid numbers fall back to the default")
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ADDR", "GEMINI_API_KEY", "TEACHER_PASSCODE", "SWEEP_INTERVAL_MINUTES"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := config.Load()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.Equal(t, 5*time.Minute, cfg.SweepInterval)
}
