package services

import (
	"context"

	"github.com/pkg/errors"

	"alfredoptarigan/resumate/internal/config"
	"alfredoptarigan/resumate/internal/logger"
	"alfredoptarigan/resumate/internal/models"
)

// NewOrchestratorFromConfig loads the model candidates and registers a client
// per provider. Gemini is registered only when GEMINI_API_KEY is set.
func NewOrchestratorFromConfig(ctx context.Context, cfg *config.Config) (Orchestrator, error) {
	candidates, err := config.LoadModels(cfg.Orchestrator.ModelsFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load model candidates")
	}

	clients := map[string]ModelClient{
		models.ProviderOpenRouter: NewOpenRouterClient(OpenRouterOptions{
			BaseURL:           cfg.OpenRouter.BaseURL,
			Referer:           cfg.OpenRouter.Referer,
			Title:             cfg.OpenRouter.Title,
			RequestsPerMinute: cfg.OpenRouter.RequestsPerMinute,
			Credential:        EnvCredential("OPENROUTER_API_KEY"),
		}),
	}

	if cfg.Gemini.APIKey != "" {
		gemini, err := NewGeminiClient(ctx, cfg.Gemini.APIKey)
		if err != nil {
			return nil, err
		}
		clients[models.ProviderGemini] = gemini
	}

	orch := NewOrchestrator(OrchestratorOptions{
		Candidates:  candidates,
		Clients:     clients,
		MaxRetries:  cfg.Orchestrator.MaxRetries,
		RetryWait:   cfg.Orchestrator.RetryWait,
		TokenBudget: cfg.Orchestrator.TokenBudget,
	})

	logger.Get().WithField("candidates", len(orch.Candidates())).Info("✅ Orchestrator initialized")
	return orch, nil
}
