package services

import (
	"context"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"alfredoptarigan/resumate/internal/logger"
	"alfredoptarigan/resumate/internal/models"
)

type geminiClient struct {
	client *genai.Client
	apiKey string
}

// NewGeminiClient builds a ModelClient backed by the Gemini API.
func NewGeminiClient(ctx context.Context, apiKey string) (ModelClient, error) {
	logger.Get().WithField("key_length", len(apiKey)).Info("🔑 Gemini API key loaded")

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create gemini client")
	}

	return &geminiClient{
		client: client,
		apiKey: apiKey,
	}, nil
}

// CheckCredential implements ModelClient.
func (g *geminiClient) CheckCredential() error {
	if strings.TrimSpace(g.apiKey) == "" {
		return errors.Wrap(ErrMissingCredential, "GEMINI_API_KEY not set")
	}
	return nil
}

// Complete implements ModelClient.
func (g *geminiClient) Complete(ctx context.Context, req CompletionRequest) models.AttemptOutcome {
	timeout := req.Model.Timeout
	if timeout <= 0 {
		timeout = defaultModelTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	temperature := float32(req.Temperature)
	config := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}

	resp, err := g.client.Models.GenerateContent(ctx, req.Model.Backend, genai.Text(req.Prompt), config)
	if err != nil {
		logger.Get().WithFields(logrus.Fields{
			"model": req.Model.Backend,
			"error": err,
		}).Warn("❌ Gemini API error")
		return classifyGeminiError(ctx, err)
	}

	if resp == nil {
		return models.AttemptOutcome{Kind: models.OutcomeInvalidStructure, StatusCode: http.StatusOK, Detail: "nil response"}
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return models.AttemptOutcome{Kind: models.OutcomeInvalidStructure, StatusCode: http.StatusOK, Detail: "no text content in response"}
	}
	if utf8.RuneCountInString(strings.TrimSpace(text)) < MinResponseLength {
		return models.AttemptOutcome{Kind: models.OutcomeTooShort, Content: text, StatusCode: http.StatusOK}
	}

	return models.AttemptOutcome{
		Kind:          models.OutcomeSuccess,
		Content:       text,
		TokenEstimate: EstimateTokens(text),
		StatusCode:    http.StatusOK,
	}
}

func classifyGeminiError(ctx context.Context, err error) models.AttemptOutcome {
	code := 0
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.Code
	case errors.As(err, &apiErrPtr):
		code = apiErrPtr.Code
	default:
		return transportOutcome(ctx, err)
	}

	return outcomeForStatus(code, err.Error(), http.StatusUnauthorized, http.StatusForbidden)
}
