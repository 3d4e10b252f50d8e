package services

import (
	"context"
	"net/http"
	"os"
	"slices"
	"strings"

	"alfredoptarigan/resumate/internal/models"
)

// CompletionRequest is one call to one model.
type CompletionRequest struct {
	Model       models.ModelCandidate
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// ModelClient issues exactly one network request per Complete call and
// classifies the result. It never returns an error: every failure is an outcome.
type ModelClient interface {
	Complete(ctx context.Context, req CompletionRequest) models.AttemptOutcome
	// CheckCredential reports ErrMissingCredential when no credential is set.
	CheckCredential() error
}

// CredentialSource yields the API credential at call time.
type CredentialSource func() string

// EnvCredential reads the named environment variable on every call.
func EnvCredential(key string) CredentialSource {
	return func() string {
		return strings.TrimSpace(os.Getenv(key))
	}
}

func StaticCredential(value string) CredentialSource {
	return func() string {
		return value
	}
}

// outcomeForStatus maps a non-success status code to its outcome kind.
// authCodes lists the statuses the provider uses for a rejected credential.
func outcomeForStatus(code int, detail string, authCodes ...int) models.AttemptOutcome {
	detail = truncateRunes(detail, errorSnippetLength)
	switch {
	case code == http.StatusTooManyRequests:
		return models.AttemptOutcome{Kind: models.OutcomeRateLimited, StatusCode: code, Detail: detail}
	case slices.Contains(authCodes, code):
		return models.AttemptOutcome{Kind: models.OutcomeAuthFailure, StatusCode: code, Detail: detail}
	case code == http.StatusServiceUnavailable:
		return models.AttemptOutcome{Kind: models.OutcomeServiceUnavailable, StatusCode: code, Detail: detail}
	default:
		return models.AttemptOutcome{Kind: models.OutcomeHTTPError, StatusCode: code, Detail: detail}
	}
}
