package content

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/abhisek/learnix/internal/api"
)

type stubBackend struct {
	resp *api.ContentResponse
	err  error

	lastLessonIndex int
}

func (s *stubBackend) Flashcards(ctx context.Context, queryID string) (*api.ContentResponse, error) {
	return s.resp, s.err
}

func (s *stubBackend) LessonFlashcards(ctx context.Context, queryID string, lessonIndex int) (*api.ContentResponse, error) {
	s.lastLessonIndex = lessonIndex
	return s.resp, s.err
}

func (s *stubBackend) Quiz(ctx context.Context, queryID string, lessonIndex int) (*api.ContentResponse, error) {
	s.lastLessonIndex = lessonIndex
	return s.resp, s.err
}

func TestFetcher_Success(t *testing.T) {
	backend := &stubBackend{resp: &api.ContentResponse{
		QueryID: "q-1",
		Content: json.RawMessage(`{"cards":[{"term":"ATP"}]}`),
	}}
	f := NewFetcher(backend, nil)

	resp := f.Flashcards(t.Context(), "q-1")
	if resp == nil {
		t.Fatal("expected a response")
	}

	loading, errMsg := f.State()
	if loading {
		t.Error("expected loading cleared")
	}
	if errMsg != "" {
		t.Errorf("expected no error, got %q", errMsg)
	}
}

func TestFetcher_APIErrorMessage(t *testing.T) {
	backend := &stubBackend{err: &api.Error{StatusCode: 404, Detail: "flashcards not found"}}
	f := NewFetcher(backend, nil)

	resp := f.Flashcards(t.Context(), "q-1")
	if resp != nil {
		t.Fatal("expected nil response")
	}

	_, errMsg := f.State()
	if errMsg != "backend error (404): flashcards not found" {
		t.Errorf("unexpected message %q", errMsg)
	}
}

func TestFetcher_FallbackMessage(t *testing.T) {
	backend := &stubBackend{err: errors.New("")}
	f := NewFetcher(backend, nil)

	f.Flashcards(t.Context(), "q-1")
	if _, errMsg := f.State(); errMsg != "Failed to get flashcards" {
		t.Errorf("unexpected message %q", errMsg)
	}

	f.Quiz(t.Context(), "q-1")
	if _, errMsg := f.State(); errMsg != "Failed to get quiz" {
		t.Errorf("unexpected message %q", errMsg)
	}
}

// A new fetch clears the previous error.
func TestFetcher_ErrorClearedOnNextFetch(t *testing.T) {
	backend := &stubBackend{err: errors.New("boom")}
	f := NewFetcher(backend, nil)

	f.Flashcards(t.Context(), "q-1")
	if _, errMsg := f.State(); errMsg == "" {
		t.Fatal("expected an error recorded")
	}

	backend.err = nil
	backend.resp = &api.ContentResponse{QueryID: "q-1"}
	f.Flashcards(t.Context(), "q-1")
	if _, errMsg := f.State(); errMsg != "" {
		t.Errorf("expected error cleared, got %q", errMsg)
	}
}

func TestFetcher_QuizDefaultsToFirstLesson(t *testing.T) {
	backend := &stubBackend{resp: &api.ContentResponse{QueryID: "q-1"}, lastLessonIndex: -1}
	f := NewFetcher(backend, nil)

	f.Quiz(t.Context(), "q-1")
	if backend.lastLessonIndex != 0 {
		t.Errorf("expected lesson 0, got %d", backend.lastLessonIndex)
	}

	f.QuizForLesson(t.Context(), "q-1", 3)
	if backend.lastLessonIndex != 3 {
		t.Errorf("expected lesson 3, got %d", backend.lastLessonIndex)
	}
}
