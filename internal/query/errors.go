package query

import (
	"errors"
	"fmt"

	"github.com/abhisek/learnix/internal/api"
)

const fallbackErrorMessage = "An unexpected error occurred."

// deriveErrorMessage turns a workflow failure into a user-facing message.
// Classified backend errors get a status-aware message; anything else
// falls back to the error text, then to a generic message.
func deriveErrorMessage(err error) string {
	if err == nil {
		return fallbackErrorMessage
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == 0 {
			return fmt.Sprintf("Connection failed: %s. Is the backend server running on the correct port?", apiErr.Detail)
		}
		return fmt.Sprintf("Backend error (%d): %s", apiErr.StatusCode, apiErr.Detail)
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallbackErrorMessage
}
