package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resumate/internal/models"
)

func newTestOpenRouter(t *testing.T, handler http.HandlerFunc) ModelClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewOpenRouterClient(OpenRouterOptions{
		BaseURL:    server.URL,
		Referer:    "http://localhost:8501",
		Title:      "ResuMate Pro",
		Credential: StaticCredential("test-key"),
	})
}

func chatBody(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []any{map[string]any{"message": map[string]any{"content": content}}},
	})
	return string(b)
}

func testRequest(timeout time.Duration) CompletionRequest {
	return CompletionRequest{
		Model:       models.ModelCandidate{Name: "m", Backend: "vendor/model:free", Timeout: timeout},
		Prompt:      "Write something long enough",
		Temperature: 0.2,
		MaxTokens:   2000,
	}
}

func TestOpenRouterSendsExpectedRequest(t *testing.T) {
	var captured chatRequest
	client := newTestOpenRouter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "http://localhost:8501", r.Header.Get("HTTP-Referer"))
		assert.Equal(t, "ResuMate Pro", r.Header.Get("X-Title"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(chatBody(strings.Repeat("resume ", 20))))
	})

	outcome := client.Complete(context.Background(), testRequest(time.Second))

	assert.Equal(t, models.OutcomeSuccess, outcome.Kind)
	assert.Equal(t, EstimateTokens(outcome.Content), outcome.TokenEstimate)
	assert.Equal(t, "vendor/model:free", captured.Model)
	assert.Equal(t, 0.2, captured.Temperature)
	assert.Equal(t, 2000, captured.MaxTokens)
	require.Len(t, captured.Messages, 1)
	assert.Equal(t, "user", captured.Messages[0].Role)
}

func TestOpenRouterClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   models.OutcomeKind
	}{
		{"success", http.StatusOK, chatBody(strings.Repeat("x", 60)), models.OutcomeSuccess},
		{"too short", http.StatusOK, chatBody("tiny"), models.OutcomeTooShort},
		{"missing choices", http.StatusOK, `{"choices":[]}`, models.OutcomeInvalidStructure},
		{"missing content", http.StatusOK, `{"choices":[{"message":{}}]}`, models.OutcomeInvalidStructure},
		{"not json", http.StatusOK, `<html>oops</html>`, models.OutcomeInvalidStructure},
		{"rate limited", http.StatusTooManyRequests, `{"error":"slow down"}`, models.OutcomeRateLimited},
		{"unauthorized", http.StatusUnauthorized, `{"error":"bad key"}`, models.OutcomeAuthFailure},
		{"forbidden is not auth", http.StatusForbidden, `{"error":"moderation"}`, models.OutcomeHTTPError},
		{"unavailable", http.StatusServiceUnavailable, ``, models.OutcomeServiceUnavailable},
		{"server error", http.StatusInternalServerError, `boom`, models.OutcomeHTTPError},
		{"bad request", http.StatusBadRequest, `bad`, models.OutcomeHTTPError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestOpenRouter(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			outcome := client.Complete(context.Background(), testRequest(time.Second))

			assert.Equal(t, tt.want, outcome.Kind)
			if tt.status != http.StatusOK {
				assert.Equal(t, tt.status, outcome.StatusCode)
			}
		})
	}
}

func TestOpenRouterTimeout(t *testing.T) {
	client := newTestOpenRouter(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	outcome := client.Complete(context.Background(), testRequest(50*time.Millisecond))

	assert.Equal(t, models.OutcomeTimeout, outcome.Kind)
}

func TestOpenRouterThrottleWaitTimesOut(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte(chatBody(strings.Repeat("resume ", 20))))
	}))
	t.Cleanup(server.Close)

	client := NewOpenRouterClient(OpenRouterOptions{
		BaseURL:           server.URL,
		RequestsPerMinute: 1,
		Credential:        StaticCredential("test-key"),
	})

	first := client.Complete(context.Background(), testRequest(200*time.Millisecond))
	require.Equal(t, models.OutcomeSuccess, first.Kind)

	second := client.Complete(context.Background(), testRequest(200*time.Millisecond))
	assert.Equal(t, models.OutcomeTimeout, second.Kind)
	assert.Contains(t, second.Detail, "rate limiter wait")
	assert.Equal(t, int32(1), requests.Load())
}

func TestOpenRouterConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewOpenRouterClient(OpenRouterOptions{BaseURL: url, Credential: StaticCredential("k")})
	outcome := client.Complete(context.Background(), testRequest(time.Second))

	assert.Equal(t, models.OutcomeConnectionFailure, outcome.Kind)
}

func TestOpenRouterCheckCredential(t *testing.T) {
	client := NewOpenRouterClient(OpenRouterOptions{Credential: StaticCredential("")})
	assert.True(t, errors.Is(client.CheckCredential(), ErrMissingCredential))

	t.Setenv("RESUMATE_TEST_KEY", "abc")
	client = NewOpenRouterClient(OpenRouterOptions{Credential: EnvCredential("RESUMATE_TEST_KEY")})
	assert.NoError(t, client.CheckCredential())
}
