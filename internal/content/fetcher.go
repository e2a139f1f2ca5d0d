package content

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/abhisek/learnix/internal/api"
)

// Backend is the slice of the API client the fetcher consumes.
type Backend interface {
	Flashcards(ctx context.Context, queryID string) (*api.ContentResponse, error)
	LessonFlashcards(ctx context.Context, queryID string, lessonIndex int) (*api.ContentResponse, error)
	Quiz(ctx context.Context, queryID string, lessonIndex int) (*api.ContentResponse, error)
}

// Fetcher retrieves flashcards and quizzes on demand. All operations share
// one loading/error pair; overlapping calls overwrite each other's state,
// so callers needing isolation must serialize.
type Fetcher struct {
	backend Backend
	log     *zap.Logger

	mu      sync.Mutex
	loading bool
	err     string
}

// NewFetcher creates a fetcher. A nil logger falls back to a no-op logger.
func NewFetcher(backend Backend, log *zap.Logger) *Fetcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{backend: backend, log: log}
}

// State returns the shared loading flag and last error message.
func (f *Fetcher) State() (loading bool, errMsg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading, f.err
}

// Flashcards fetches all flashcards for a query, aggregated across lessons.
// Returns nil on failure; the error is recorded in the shared state.
func (f *Fetcher) Flashcards(ctx context.Context, queryID string) *api.ContentResponse {
	return f.fetch(func() (*api.ContentResponse, error) {
		return f.backend.Flashcards(ctx, queryID)
	}, "Failed to get flashcards")
}

// LessonFlashcards fetches the flashcards scoped to one lesson.
func (f *Fetcher) LessonFlashcards(ctx context.Context, queryID string, lessonIndex int) *api.ContentResponse {
	return f.fetch(func() (*api.ContentResponse, error) {
		return f.backend.LessonFlashcards(ctx, queryID, lessonIndex)
	}, "Failed to get flashcards")
}

// Quiz fetches the quiz for the first lesson of a query.
func (f *Fetcher) Quiz(ctx context.Context, queryID string) *api.ContentResponse {
	return f.QuizForLesson(ctx, queryID, 0)
}

// QuizForLesson fetches the quiz for a specific lesson.
func (f *Fetcher) QuizForLesson(ctx context.Context, queryID string, lessonIndex int) *api.ContentResponse {
	return f.fetch(func() (*api.ContentResponse, error) {
		return f.backend.Quiz(ctx, queryID, lessonIndex)
	}, "Failed to get quiz")
}

// fetch runs one retrieval with the shared loading/error bookkeeping:
// loading set at entry and cleared on every exit path, error cleared at
// entry and derived on failure.
func (f *Fetcher) fetch(do func() (*api.ContentResponse, error), fallback string) *api.ContentResponse {
	f.mu.Lock()
	f.loading = true
	f.err = ""
	f.mu.Unlock()

	resp, err := do()

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false
	if err != nil {
		f.err = deriveContentError(err, fallback)
		f.log.Warn("content fetch failed", zap.String("error", f.err))
		return nil
	}
	return resp
}

// deriveContentError prefers the classified API error message, then the
// raw error text, then the operation-specific fallback.
func deriveContentError(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
