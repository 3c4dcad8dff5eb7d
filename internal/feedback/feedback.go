// Package feedback asks a generative-text model to comment on a learner's
// free-form answer. Any failure degrades to a fixed encouraging result.
package feedback

import (
	"context"
	"errors"
	"html"
	"strings"

	"github.com/aziyat1977/Inter-1.1/internal/logger"
	"github.com/microcosm-cc/bluemonday"
)

const (
	MinScore = 1
	MaxScore = 10
)

// Fallback is returned whenever the model cannot be reached or its reply is
// unusable.
var Fallback = Result{
	Feedback: "Good effort! (AI currently unavailable for detailed feedback)",
	Score:    5,
}

var (
	ErrUnavailable = errors.New("feedback service unavailable")
	ErrEmptyReply  = errors.New("empty reply from model")
	ErrBadScore    = errors.New("score out of range")
)

type Request struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Topic    string `json:"topic"`
}

type Result struct {
	Feedback string `json:"feedback"`
	Score    int    `json:"score"`
}

func (r Result) valid() bool {
	return strings.TrimSpace(r.Feedback) != "" && r.Score >= MinScore && r.Score <= MaxScore
}

// Client reviews one answer.
type Client interface {
	Review(ctx context.Context, req Request) (Result, error)
}

// Offline is used when no API key is configured.
type Offline struct{}

func (Offline) Review(context.Context, Request) (Result, error) {
	return Result{}, ErrUnavailable
}

var policy = bluemonday.StrictPolicy()

// Sanitize strips markup from learner text and trims it. Input entities are
// decoded before the policy runs so encoded tags are stripped too; the
// policy's own escapes are decoded afterwards so apostrophes stay plain text.
func Sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(html.UnescapeString(s))))
}

// Evaluate sanitises the request, calls c and validates the reply. It never
// fails: every error path yields Fallback. The second return value reports
// whether the result came from the model.
func Evaluate(ctx context.Context, c Client, req Request) (Result, bool) {
	log := logger.FromContext(ctx).WithPrefix("feedback")

	req.Question = Sanitize(req.Question)
	req.Answer = Sanitize(req.Answer)
	req.Topic = Sanitize(req.Topic)
	if c == nil || req.Answer == "" {
		return Fallback, false
	}

	res, err := c.Review(ctx, req)
	if err != nil {
		log.Warn("review failed, using fallback: %v", err)
		return Fallback, false
	}
	if !res.valid() {
		log.Warn("unusable review (score=%d), using fallback", res.Score)
		return Fallback, false
	}
	res.Feedback = Sanitize(res.Feedback)
	return res, true
}
