package query

import (
	"errors"
	"fmt"
	"testing"

	"github.com/abhisek/learnix/internal/api"
)

func TestDeriveErrorMessage_Unreachable(t *testing.T) {
	err := &api.Error{StatusCode: 0, Detail: "dial tcp 127.0.0.1:8000: connection refused"}

	got := deriveErrorMessage(err)
	want := "Connection failed: dial tcp 127.0.0.1:8000: connection refused. Is the backend server running on the correct port?"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDeriveErrorMessage_BackendStatus(t *testing.T) {
	err := &api.Error{StatusCode: 500, Detail: "internal server error"}

	got := deriveErrorMessage(err)
	if got != "Backend error (500): internal server error" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestDeriveErrorMessage_WrappedAPIError(t *testing.T) {
	err := fmt.Errorf("submit query: %w", &api.Error{StatusCode: 404, Detail: "query not found"})

	got := deriveErrorMessage(err)
	if got != "Backend error (404): query not found" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestDeriveErrorMessage_PlainError(t *testing.T) {
	got := deriveErrorMessage(errors.New("something odd"))
	if got != "something odd" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestDeriveErrorMessage_Fallback(t *testing.T) {
	if got := deriveErrorMessage(nil); got != fallbackErrorMessage {
		t.Errorf("unexpected message %q", got)
	}
	if got := deriveErrorMessage(errors.New("")); got != fallbackErrorMessage {
		t.Errorf("unexpected message %q", got)
	}
}
