package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *Client {
	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.Timeout = 2 * time.Second
	return New(cfg, nil)
}

func TestHealthCheck_Healthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		_ = json.NewEncoder(w).Encode(HealthStatus{Status: "healthy", Service: "learnix-backend"})
	}))
	defer srv.Close()

	client := testClient(srv.URL + "/api")
	require.NoError(t, client.HealthCheck(t.Context()))
}

func TestHealthCheck_DegradedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(HealthStatus{Status: "degraded"})
	}))
	defer srv.Close()

	client := testClient(srv.URL + "/api")
	err := client.HealthCheck(t.Context())
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
}

func TestSubmitQuery_PostsPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/query", r.URL.Path)

		var req QueryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "photosynthesis", req.Query)
		assert.Equal(t, "user-1", req.UserID)

		_ = json.NewEncoder(w).Encode(QueryResponse{Success: true, QueryID: "q-1"})
	}))
	defer srv.Close()

	client := testClient(srv.URL + "/api")
	resp, err := client.SubmitQuery(t.Context(), QueryRequest{Query: "photosynthesis", UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, "q-1", resp.QueryID)
}

func TestErrorDetail_FastAPIBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Lessons not found for query abc"}`))
	}))
	defer srv.Close()

	client := testClient(srv.URL + "/api")
	_, err := client.Lessons(t.Context(), "abc")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Lessons not found for query abc", apiErr.Detail)
	assert.False(t, apiErr.Unreachable())
}

func TestErrorDetail_NonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream timeout\n"))
	}))
	defer srv.Close()

	client := testClient(srv.URL + "/api")
	_, err := client.Lessons(t.Context(), "abc")

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "upstream timeout", apiErr.Detail)
}

func TestTransportError_StatusCodeZero(t *testing.T) {
	// Nothing is listening here.
	client := testClient("http://127.0.0.1:1/api")

	_, err := client.Lessons(t.Context(), "abc")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.StatusCode)
	assert.True(t, apiErr.Unreachable())
	assert.NotEmpty(t, apiErr.Detail)
	assert.Error(t, errors.Unwrap(apiErr))
}

func TestContentEndpoints_Paths(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		_ = json.NewEncoder(w).Encode(ContentResponse{QueryID: "q-1"})
	}))
	defer srv.Close()

	client := testClient(srv.URL + "/api")
	ctx := t.Context()

	_, _ = client.Lessons(ctx, "q-1")
	_, _ = client.RelatedQuestions(ctx, "q-1")
	_, _ = client.Flashcards(ctx, "q-1")
	_, _ = client.LessonFlashcards(ctx, "q-1", 2)
	_, _ = client.Quiz(ctx, "q-1", 0)

	assert.Equal(t, []string{
		"/api/lessons/q-1",
		"/api/related-questions/q-1",
		"/api/flashcards/q-1",
		"/api/flashcards/q-1/2",
		"/api/quiz/q-1/0",
	}, paths)
}

func TestContentStatus_Decodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/content-status/q-1", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"query_id": "q-1",
			"lessons_generated": true,
			"related_questions_generated": false,
			"flashcards_generated": {"0": true},
			"quizzes_generated": {}
		}`))
	}))
	defer srv.Close()

	client := testClient(srv.URL + "/api")
	status, err := client.ContentStatus(t.Context(), "q-1")
	require.NoError(t, err)
	assert.True(t, status.LessonsGenerated)
	assert.False(t, status.RelatedQuestionsGenerated)
	assert.True(t, status.FlashcardsGenerated["0"])
}

func TestRecentLessons_PassesLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/lessons", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"items":[{"query_id":"q-1"}],"total_count":1}`))
	}))
	defer srv.Close()

	client := testClient(srv.URL + "/api")
	list, err := client.RecentLessons(t.Context(), 10)
	require.NoError(t, err)
	assert.Equal(t, 1, list.TotalCount)
	assert.Len(t, list.Items, 1)
}

func TestMalformedSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := testClient(srv.URL + "/api")
	_, err := client.Lessons(t.Context(), "q-1")

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusOK, apiErr.StatusCode)
}
