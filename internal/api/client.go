package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Config holds API client settings.
type Config struct {
	// BaseURL is the backend base URL including the /api prefix,
	// e.g. "http://localhost:8000/api".
	BaseURL string

	// Timeout bounds a single HTTP request.
	Timeout time.Duration

	// PollInterval is the delay between content-status polls during
	// SubmitQueryAndWait.
	PollInterval time.Duration

	// SubmitTimeout bounds the whole submit-and-wait cycle.
	SubmitTimeout time.Duration

	// RelatedQuestionsWait is how long SubmitQueryAndWait keeps waiting
	// for related questions after lessons are ready.
	RelatedQuestionsWait time.Duration
}

// DefaultConfig returns a Config for a locally running backend.
func DefaultConfig() Config {
	return Config{
		BaseURL:              "http://localhost:8000/api",
		Timeout:              15 * time.Second,
		PollInterval:         2 * time.Second,
		SubmitTimeout:        5 * time.Minute,
		RelatedQuestionsWait: 30 * time.Second,
	}
}

// Client talks to the content-generation backend.
type Client struct {
	cfg    Config
	client *http.Client
	log    *zap.Logger
}

// New creates a Client. A nil logger falls back to a no-op logger.
func New(cfg Config, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log,
	}
}

// HealthCheck probes the backend health endpoint.
func (c *Client) HealthCheck(ctx context.Context) error {
	var status HealthStatus
	if err := c.getJSON(ctx, "/health", &status); err != nil {
		return err
	}
	if status.Status != "healthy" {
		return statusError(http.StatusServiceUnavailable, fmt.Sprintf("backend reports status %q", status.Status))
	}
	return nil
}

// SubmitQuery posts a new query. Generation starts in the background; the
// returned QueryResponse carries the query id for later content fetches.
func (c *Client) SubmitQuery(ctx context.Context, req QueryRequest) (*QueryResponse, error) {
	var resp QueryResponse
	if err := c.postJSON(ctx, "/query", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Lessons fetches the generated lessons for a query id.
func (c *Client) Lessons(ctx context.Context, queryID string) (*ContentResponse, error) {
	return c.getContent(ctx, "/lessons/"+queryID)
}

// RelatedQuestions fetches the generated related questions for a query id.
func (c *Client) RelatedQuestions(ctx context.Context, queryID string) (*ContentResponse, error) {
	return c.getContent(ctx, "/related-questions/"+queryID)
}

// Flashcards fetches all flashcards for a query id, aggregated across
// lessons.
func (c *Client) Flashcards(ctx context.Context, queryID string) (*ContentResponse, error) {
	return c.getContent(ctx, "/flashcards/"+queryID)
}

// LessonFlashcards fetches the flashcards scoped to one lesson.
func (c *Client) LessonFlashcards(ctx context.Context, queryID string, lessonIndex int) (*ContentResponse, error) {
	return c.getContent(ctx, fmt.Sprintf("/flashcards/%s/%d", queryID, lessonIndex))
}

// Quiz fetches the quiz for one lesson of a query.
func (c *Client) Quiz(ctx context.Context, queryID string, lessonIndex int) (*ContentResponse, error) {
	return c.getContent(ctx, fmt.Sprintf("/quiz/%s/%d", queryID, lessonIndex))
}

// ContentStatus reports per-type generation status for a query.
func (c *Client) ContentStatus(ctx context.Context, queryID string) (*ContentStatus, error) {
	var status ContentStatus
	if err := c.getJSON(ctx, "/content-status/"+queryID, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// RecentLessons lists recent lessons history entries.
func (c *Client) RecentLessons(ctx context.Context, limit int) (*ContentList, error) {
	var list ContentList
	if err := c.getJSON(ctx, fmt.Sprintf("/lessons?limit=%d", limit), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) getContent(ctx context.Context, path string) (*ContentResponse, error) {
	var content ContentResponse
	if err := c.getJSON(ctx, path, &content); err != nil {
		return nil, err
	}
	return &content, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.doJSON(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doJSON(req, out)
}

func (c *Client) doJSON(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("path", req.URL.Path),
			zap.Error(err))
		return transportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(err)
	}

	c.log.Debug("request completed",
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, errorDetail(data))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return statusError(resp.StatusCode, fmt.Sprintf("malformed response: %v", err))
	}
	return nil
}

// errorDetail extracts the FastAPI-style {"detail": "..."} message from an
// error body, falling back to the raw body text.
func errorDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return strings.TrimSpace(string(body))
}
