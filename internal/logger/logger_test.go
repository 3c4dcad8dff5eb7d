package logger_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aziyat1977/Inter-1.1/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixed() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

func newBuffered(level logger.Level) (*logger.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return logger.New(
		logger.WithOutput(buf),
		logger.WithLevel(level),
		logger.WithColors(false),
		logger.WithClock(fixed),
	), buf
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logger.DEBUG, logger.ParseLevel("debug"))
	assert.Equal(t, logger.WARN, logger.ParseLevel("warning"))
	assert.Equal(t, logger.ERROR, logger.ParseLevel(" ERROR "))
	assert.Equal(t, logger.INFO, logger.ParseLevel("chatty"))
	assert.False(t, logger.ValidLevel("chatty"))
	assert.True(t, logger.ValidLevel("Warn"))
}

func TestLog_FiltersByLevel(t *testing.T) {
	log, buf := newBuffered(logger.WARN)
	log.Info("hidden")
	log.Warn("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 1")
	assert.True(t, strings.HasPrefix(out, "2024-03-01 12:00:00.000 WARN "))
}

func TestLog_PrefixAndSortedFields(t *testing.T) {
	log, buf := newBuffered(logger.DEBUG)
	log.WithPrefix("battle").
		WithFields(map[string]any{"zeta": 1, "alpha": "a"}).
		WithField("mid", true).
		Debug("tick")

	line := buf.String()
	assert.Contains(t, line, "[battle] ")
	assert.True(t, strings.HasSuffix(line, "tick alpha=a mid=true zeta=1\n"), line)
}

func TestWithField_DoesNotLeakIntoParent(t *testing.T) {
	log, buf := newBuffered(logger.INFO)
	_ = log.WithField("learner", "x")
	log.Info("plain")
	assert.NotContains(t, buf.String(), "learner=")
}

func TestWithField_Overwrites(t *testing.T) {
	log, buf := newBuffered(logger.INFO)
	log.WithField("k", 1).WithField("k", 2).Info("m")
	assert.Contains(t, buf.String(), " k=2")
	assert.NotContains(t, buf.String(), "k=1")
}

func TestContext(t *testing.T) {
	log, _ := newBuffered(logger.INFO)
	ctx := logger.NewContext(context.Background(), log)
	require.Same(t, log, logger.FromContext(ctx))
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}
