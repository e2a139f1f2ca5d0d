package api

import "fmt"

// Error is a classified backend error. StatusCode 0 means the backend was
// unreachable at the network level; any other value is the HTTP status the
// backend returned.
type Error struct {
	StatusCode int
	Detail     string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("backend unreachable: %s", e.Detail)
	}
	return fmt.Sprintf("backend error (%d): %s", e.StatusCode, e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }

// Unreachable reports whether the error is a network-level failure rather
// than a server-returned one.
func (e *Error) Unreachable() bool { return e.StatusCode == 0 }

// transportError wraps a failed round trip as an unreachable-backend error.
func transportError(err error) *Error {
	return &Error{StatusCode: 0, Detail: err.Error(), Err: err}
}

// statusError builds an Error from a non-2xx response body detail.
func statusError(code int, detail string) *Error {
	if detail == "" {
		detail = "request failed"
	}
	return &Error{StatusCode: code, Detail: detail}
}
