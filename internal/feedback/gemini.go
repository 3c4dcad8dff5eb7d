package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aziyat1977/Inter-1.1/internal/logger"
)

const (
	DefaultModel   = "gemini-2.5-flash"
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
)

// Gemini calls the generateContent REST endpoint.
type Gemini struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
}

type GeminiOption func(*Gemini)

func WithModel(model string) GeminiOption {
	return func(g *Gemini) {
		if model != "" {
			g.model = model
		}
	}
}

func WithBaseURL(url string) GeminiOption {
	return func(g *Gemini) {
		if url != "" {
			g.baseURL = strings.TrimRight(url, "/")
		}
	}
}

func WithHTTPClient(c *http.Client) GeminiOption {
	return func(g *Gemini) { g.httpClient = c }
}

func NewGemini(apiKey string, opts ...GeminiOption) *Gemini {
	g := &Gemini{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiKey:     apiKey,
		model:      DefaultModel,
		baseURL:    DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type part struct {
	Text string `json:"text"`
}

type contentBlock struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents         []contentBlock `json:"contents"`
	GenerationConfig struct {
		ResponseMimeType string `json:"responseMimeType"`
	} `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content contentBlock `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (r generateResponse) text() string {
	var sb strings.Builder
	for _, c := range r.Candidates {
		for _, p := range c.Content.Parts {
			sb.WriteString(p.Text)
		}
		if sb.Len() > 0 {
			break
		}
	}
	return sb.String()
}

// Prompt builds the instruction sent to the model.
func Prompt(req Request) string {
	return fmt.Sprintf(`Context: The student is studying an English textbook (B1+ level).
Topic: %q.
Question: %q
Student Answer: %q

Task: Act as a supportive CELTA-trained English teacher.
1. Give brief, encouraging feedback (max 2 sentences).
2. Correct any major grammar errors gently.
3. Rate the relevance of the answer from 1-10.

Output JSON format: { "feedback": string, "score": number }`, req.Topic, req.Question, req.Answer)
}

func (g *Gemini) Review(ctx context.Context, req Request) (Result, error) {
	log := logger.FromContext(ctx).WithPrefix("gemini").WithField("model", g.model)

	var body generateRequest
	body.Contents = []contentBlock{{Parts: []part{{Text: Prompt(req)}}}}
	body.GenerationConfig.ResponseMimeType = "application/json"
	payload, err := json.Marshal(body)
	if err != nil {
		return Result{}, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		log.Error("failed to create request: %v", err)
		return Result{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", g.apiKey)

	start := time.Now()
	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		log.Error("request failed: %v", err)
		return Result{}, err
	}
	defer resp.Body.Close()

	log.Debug("response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return Result{}, fmt.Errorf("generateContent status %d: %s", resp.StatusCode, string(raw))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{}, fmt.Errorf("decode response: %w", err)
	}
	if out.Error != nil {
		return Result{}, fmt.Errorf("generateContent error %d: %s", out.Error.Code, out.Error.Message)
	}
	return ParseReply(out.text())
}

// ParseReply decodes the model's JSON text, tolerating a markdown code fence
// around it. The score must lie in 1..10.
func ParseReply(text string) (Result, error) {
	text = stripFence(strings.TrimSpace(text))
	if text == "" {
		return Result{}, ErrEmptyReply
	}
	var raw struct {
		Feedback string  `json:"feedback"`
		Score    float64 `json:"score"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return Result{}, fmt.Errorf("parse reply: %w", err)
	}
	res := Result{Feedback: strings.TrimSpace(raw.Feedback), Score: int(raw.Score + 0.5)}
	if res.Feedback == "" {
		return Result{}, ErrEmptyReply
	}
	if res.Score < MinScore || res.Score > MaxScore {
		return Result{}, fmt.Errorf("%w: %v", ErrBadScore, raw.Score)
	}
	return res, nil
}

func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
