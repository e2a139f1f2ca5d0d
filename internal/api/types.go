package api

import "encoding/json"

// QueryRequest is the payload for submitting a new content-generation query.
type QueryRequest struct {
	Query  string `json:"query"`
	UserID string `json:"user_id,omitempty"`
}

// QueryResponse is the backend's acknowledgement of a submitted query.
// Generation continues in the background; content is fetched separately.
type QueryResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	QueryID string `json:"query_id"`
}

// ContentResponse wraps one generated content payload (lessons, related
// questions, flashcards or a quiz). Content structure is owned by the
// backend; callers decode what they need.
type ContentResponse struct {
	QueryID        string          `json:"query_id"`
	Content        json.RawMessage `json:"content"`
	CreatedAt      string          `json:"created_at"`
	ProcessingTime float64         `json:"processing_time"`
}

// ContentList is a page of recent content history items.
type ContentList struct {
	Items      []json.RawMessage `json:"items"`
	TotalCount int               `json:"total_count"`
}

// ContentStatus reports which content types have finished generating for
// a query. Flashcards and quizzes are keyed by lesson index.
type ContentStatus struct {
	QueryID                   string          `json:"query_id"`
	LessonsGenerated          bool            `json:"lessons_generated"`
	RelatedQuestionsGenerated bool            `json:"related_questions_generated"`
	FlashcardsGenerated       map[string]bool `json:"flashcards_generated"`
	QuizzesGenerated          map[string]bool `json:"quizzes_generated"`
}

// HealthStatus is the backend health check response.
type HealthStatus struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Version  string `json:"version"`
	Database string `json:"database"`
}

// SubmitResult is the outcome of a full submit-and-wait cycle.
// RelatedQuestions is nil when they were not ready in time.
type SubmitResult struct {
	QueryID          string
	Lessons          *ContentResponse
	RelatedQuestions *ContentResponse
}
