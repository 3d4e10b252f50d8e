package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"alfredoptarigan/resumate/internal/logger"
	"alfredoptarigan/resumate/internal/models"
)

// ModelCatalog lists what the upstream gateway offers.
type ModelCatalog interface {
	ListFree(ctx context.Context) ([]models.FreeModel, error)
}

type modelCatalog struct {
	baseURL    string
	credential CredentialSource
	httpClient *http.Client
}

type catalogResponse struct {
	Data []struct {
		ID            string `json:"id"`
		Name          string `json:"name"`
		ContextLength int    `json:"context_length"`
		Pricing       struct {
			Prompt any `json:"prompt"`
		} `json:"pricing"`
	} `json:"data"`
}

func NewModelCatalog(baseURL string, credential CredentialSource, httpClient *http.Client) ModelCatalog {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultModelTimeout}
	}
	if credential == nil {
		credential = EnvCredential("OPENROUTER_API_KEY")
	}
	return &modelCatalog{
		baseURL:    strings.TrimRight(baseURL, "/"),
		credential: credential,
		httpClient: httpClient,
	}
}

// ListFree implements ModelCatalog. A model is free when its id carries the
// ":free" suffix or its prompt price is zero.
func (c *modelCatalog) ListFree(ctx context.Context) ([]models.FreeModel, error) {
	apiKey := c.credential()
	if apiKey == "" {
		return nil, errors.Wrap(ErrMissingCredential, "OPENROUTER_API_KEY not set")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build catalog request")
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch model catalog")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read model catalog")
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, errors.Wrap(ErrAuthFailure, "model catalog")
	default:
		return nil, errors.Errorf("model catalog returned %d: %s", resp.StatusCode, snippet(body))
	}

	var parsed catalogResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errors.Wrap(err, "failed to decode model catalog")
	}

	free := []models.FreeModel{}
	for _, m := range parsed.Data {
		if strings.Contains(m.ID, ":free") || isZeroPrice(m.Pricing.Prompt) {
			free = append(free, models.FreeModel{ID: m.ID, Name: m.Name, ContextLength: m.ContextLength})
		}
	}
	sort.Slice(free, func(i, j int) bool { return free[i].ID < free[j].ID })

	logger.Get().WithField("count", len(free)).Info("📋 Free models listed")
	return free, nil
}

// isZeroPrice accepts the string and numeric price encodings the gateway uses.
func isZeroPrice(v any) bool {
	switch p := v.(type) {
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		return err == nil && f == 0
	case float64:
		return p == 0
	}
	return false
}
