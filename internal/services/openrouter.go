package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"alfredoptarigan/resumate/internal/logger"
	"alfredoptarigan/resumate/internal/models"
)

const (
	defaultModelTimeout = 90 * time.Second
	maxResponseBytes    = 8 << 20
	errorSnippetLength  = 200
)

type OpenRouterOptions struct {
	BaseURL           string
	Referer           string
	Title             string
	RequestsPerMinute int
	Credential        CredentialSource
	HTTPClient        *http.Client
}

type openRouterClient struct {
	baseURL    string
	referer    string
	title      string
	credential CredentialSource
	httpClient *http.Client
	limiter    *rate.Limiter
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewOpenRouterClient builds a chat-completions client. A non-positive
// RequestsPerMinute disables client-side throttling.
func NewOpenRouterClient(opts OpenRouterOptions) ModelClient {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.Credential == nil {
		opts.Credential = EnvCredential("OPENROUTER_API_KEY")
	}

	return &openRouterClient{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		referer:    opts.Referer,
		title:      opts.Title,
		credential: opts.Credential,
		httpClient: opts.HTTPClient,
		limiter:    newLimiter(opts.RequestsPerMinute),
	}
}

func newLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
}

// CheckCredential implements ModelClient.
func (c *openRouterClient) CheckCredential() error {
	if c.credential() == "" {
		return errors.Wrap(ErrMissingCredential, "OPENROUTER_API_KEY not set")
	}
	return nil
}

// Complete implements ModelClient.
func (c *openRouterClient) Complete(ctx context.Context, req CompletionRequest) models.AttemptOutcome {
	log := logger.Get().WithFields(logrus.Fields{
		"model":    req.Model.Backend,
		"provider": models.ProviderOpenRouter,
	})

	apiKey := c.credential()
	if apiKey == "" {
		return models.AttemptOutcome{Kind: models.OutcomeAuthFailure, Detail: "credential missing"}
	}

	timeout := req.Model.Timeout
	if timeout <= 0 {
		timeout = defaultModelTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return models.AttemptOutcome{Kind: models.OutcomeTimeout, Detail: "rate limiter wait: " + err.Error()}
	}

	payload, err := json.Marshal(chatRequest{
		Model:       req.Model.Backend,
		Messages:    []chatMessage{{Role: "user", Content: req.Prompt}},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return models.AttemptOutcome{Kind: models.OutcomeInvalidStructure, Detail: "encode request: " + err.Error()}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return models.AttemptOutcome{Kind: models.OutcomeConnectionFailure, Detail: err.Error()}
	}
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	if c.referer != "" {
		httpReq.Header.Set("HTTP-Referer", c.referer)
	}
	if c.title != "" {
		httpReq.Header.Set("X-Title", c.title)
	}

	log.WithField("prompt_chars", utf8.RuneCountInString(req.Prompt)).Debug("📤 Sending request to OpenRouter")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return transportOutcome(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return transportOutcome(ctx, err)
	}

	log.WithField("status", resp.StatusCode).Info("📥 OpenRouter response received")

	return classifyChatResponse(resp.StatusCode, body)
}

// classifyChatResponse maps a status code and body to an outcome.
func classifyChatResponse(status int, body []byte) models.AttemptOutcome {
	if status != http.StatusOK {
		return outcomeForStatus(status, snippet(body), http.StatusUnauthorized)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return models.AttemptOutcome{Kind: models.OutcomeInvalidStructure, StatusCode: status, Detail: "undecodable body"}
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == nil {
		return models.AttemptOutcome{Kind: models.OutcomeInvalidStructure, StatusCode: status, Detail: "missing choices[0].message.content"}
	}

	content := *parsed.Choices[0].Message.Content
	if utf8.RuneCountInString(strings.TrimSpace(content)) < MinResponseLength {
		return models.AttemptOutcome{Kind: models.OutcomeTooShort, Content: content, StatusCode: status}
	}

	return models.AttemptOutcome{
		Kind:          models.OutcomeSuccess,
		Content:       content,
		TokenEstimate: EstimateTokens(content),
		StatusCode:    status,
	}
}

// transportOutcome classifies a failure that produced no HTTP status.
func transportOutcome(ctx context.Context, err error) models.AttemptOutcome {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return models.AttemptOutcome{Kind: models.OutcomeTimeout, Detail: err.Error()}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return models.AttemptOutcome{Kind: models.OutcomeTimeout, Detail: err.Error()}
	}
	return models.AttemptOutcome{Kind: models.OutcomeConnectionFailure, Detail: err.Error()}
}

func snippet(body []byte) string {
	return truncateRunes(strings.TrimSpace(string(body)), errorSnippetLength)
}
