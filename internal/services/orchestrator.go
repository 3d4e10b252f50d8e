package services

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/resumate/internal/logger"
	"alfredoptarigan/resumate/internal/models"
)

const DefaultMaxRetries = 2

type RunOptions struct {
	// Structured marks calls whose reply must contain a JSON object.
	Structured bool
	// Label identifies the caller in logs, e.g. a session id.
	Label string
}

// Result is the accepted reply of a cascade.
type Result struct {
	Content  string
	Model    string
	Tokens   int
	Attempts int
	Failures []AttemptRecord
}

type OrchestratorOptions struct {
	Candidates []models.ModelCandidate
	// Clients maps a provider name to its transport.
	Clients     map[string]ModelClient
	MaxRetries  int
	RetryWait   time.Duration
	TokenBudget int
}

// Orchestrator runs a prompt against the ordered model candidates until one
// returns an acceptable reply.
type Orchestrator interface {
	Run(ctx context.Context, prompt models.Prompt, opts RunOptions) (*Result, error)
	Candidates() []models.ModelCandidate
}

type orchestrator struct {
	candidates  []models.ModelCandidate
	clients     map[string]ModelClient
	maxRetries  int
	retryWait   time.Duration
	tokenBudget int
}

// NewOrchestrator drops candidates whose provider has no registered client.
func NewOrchestrator(opts OrchestratorOptions) Orchestrator {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.TokenBudget <= 0 {
		opts.TokenBudget = DefaultTokenBudget
	}

	candidates := make([]models.ModelCandidate, 0, len(opts.Candidates))
	for _, c := range opts.Candidates {
		if _, ok := opts.Clients[c.Provider]; !ok {
			logger.Get().WithFields(logrus.Fields{
				"model":    c.Backend,
				"provider": c.Provider,
			}).Warn("⚠️  No client for provider, skipping model candidate")
			continue
		}
		candidates = append(candidates, c)
	}

	return &orchestrator{
		candidates:  candidates,
		clients:     opts.Clients,
		maxRetries:  opts.MaxRetries,
		retryWait:   opts.RetryWait,
		tokenBudget: opts.TokenBudget,
	}
}

// Candidates implements Orchestrator.
func (o *orchestrator) Candidates() []models.ModelCandidate {
	return append([]models.ModelCandidate{}, o.candidates...)
}

// Run implements Orchestrator.
func (o *orchestrator) Run(ctx context.Context, prompt models.Prompt, opts RunOptions) (*Result, error) {
	if len(o.candidates) == 0 {
		return nil, ErrNoCandidates
	}
	if err := o.checkCredentials(); err != nil {
		return nil, err
	}

	compressed := CompressPrompt(prompt, o.tokenBudget)
	settings := compressed.Version.Settings()

	log := logger.Get().WithFields(logrus.Fields{
		"version": compressed.Version,
		"label":   opts.Label,
	})
	log.WithFields(logrus.Fields{
		"temperature":   settings.Temperature,
		"prompt_tokens": EstimateTokens(compressed.Text),
	}).Info("🤖 Starting AI request")

	var failures []AttemptRecord

	for _, candidate := range o.candidates {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "generation cancelled")
		}

		client := o.clients[candidate.Provider]
		req := CompletionRequest{
			Model:       candidate,
			Prompt:      compressed.Text,
			Temperature: settings.Temperature,
			MaxTokens:   settings.MaxTokens,
		}

		var accepted *models.AttemptOutcome
		authFailed := false
		attempt := 0

		operation := func() error {
			attempt++
			outcome := ValidateResponse(client.Complete(ctx, req), opts.Structured)
			if outcome.IsSuccess() {
				accepted = &outcome
				return nil
			}

			record := AttemptRecord{Model: candidate.Backend, Attempt: attempt, Reason: outcome.Reason()}
			failures = append(failures, record)
			log.WithFields(logrus.Fields{
				"model":   candidate.Backend,
				"attempt": attempt,
				"outcome": outcome.Kind,
			}).Warn("❌ Model attempt failed")

			failure := errors.New(record.Reason)
			switch outcome.Kind {
			case models.OutcomeAuthFailure:
				authFailed = true
				return backoff.Permanent(failure)
			case models.OutcomeRateLimited:
				return backoff.Permanent(failure)
			}
			return failure
		}

		policy := backoff.WithContext(backoff.WithMaxRetries(o.newBackOff(), uint64(o.maxRetries-1)), ctx)
		_ = backoff.Retry(operation, policy)

		if accepted != nil {
			result := &Result{
				Content:  accepted.Content,
				Model:    candidate.Backend,
				Tokens:   EstimateTokens(compressed.Text) + EstimateTokens(accepted.Content),
				Attempts: len(failures) + 1,
				Failures: failures,
			}
			log.WithFields(logrus.Fields{
				"model":  candidate.Backend,
				"chars":  len(accepted.Content),
				"tokens": result.Tokens,
			}).Info("✅ Model request succeeded")
			return result, nil
		}

		if authFailed {
			log.WithField("model", candidate.Backend).Error("🔒 Authentication failed, aborting request")
			return nil, errors.Wrapf(ErrAuthFailure, "%s", failures[len(failures)-1])
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "generation cancelled")
	}

	log.WithField("attempts", len(failures)).Error("💀 All models failed")
	return nil, &ExhaustedError{Attempts: failures}
}

func (o *orchestrator) checkCredentials() error {
	checked := make(map[string]bool)
	for _, c := range o.candidates {
		if checked[c.Provider] {
			continue
		}
		checked[c.Provider] = true
		if err := o.clients[c.Provider].CheckCredential(); err != nil {
			return err
		}
	}
	return nil
}

func (o *orchestrator) newBackOff() backoff.BackOff {
	if o.retryWait <= 0 {
		return &backoff.ZeroBackOff{}
	}
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = o.retryWait
	expo.MaxElapsedTime = 0
	return expo
}
