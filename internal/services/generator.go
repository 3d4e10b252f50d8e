package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/resumate/internal/logger"
	"alfredoptarigan/resumate/internal/models"
	"alfredoptarigan/resumate/internal/repositories"
)

type GeneratorService interface {
	Generate(ctx context.Context, sessionID uuid.UUID) error
}

type generatorService struct {
	sessionRepo   repositories.SessionRepository
	logRepo       repositories.GenerationLogRepository
	orchestrator  Orchestrator
	promptBuilder *PromptBuilder
}

func NewGeneratorService(
	sessionRepo repositories.SessionRepository,
	logRepo repositories.GenerationLogRepository,
	orchestrator Orchestrator,
) GeneratorService {
	return &generatorService{
		sessionRepo:   sessionRepo,
		logRepo:       logRepo,
		orchestrator:  orchestrator,
		promptBuilder: NewPromptBuilder(),
	}
}

// Generate produces every requested document of a session in fixed order.
// The first failure marks the session failed; documents produced before it
// are kept. The session's in-flight flag is cleared on return.
func (g *generatorService) Generate(ctx context.Context, sessionID uuid.UUID) error {
	defer g.sessionRepo.Finish(sessionID)

	session, err := g.sessionRepo.FindByID(sessionID)
	if err != nil {
		return errors.Wrap(err, "failed to get session")
	}
	if session.Form == nil {
		g.sessionRepo.UpdateError(sessionID, "no generation form submitted")
		return errors.Wrap(ErrInvalidRequest, "session has no generation form")
	}

	if err := g.sessionRepo.UpdateStatus(sessionID, models.StatusProcessing); err != nil {
		return errors.Wrap(err, "failed to update status")
	}

	log := logger.Get().WithField("session_id", sessionID)
	log.Info("🔄 Starting document generation")

	requested := make(map[models.DocumentType]bool, len(session.Form.Documents))
	for _, d := range session.Form.Documents {
		requested[d] = true
	}

	for _, docType := range models.DocumentOrder {
		if !requested[docType] {
			continue
		}

		doc, err := g.generateOne(ctx, sessionID, docType, *session.Form)
		if err != nil {
			g.sessionRepo.UpdateError(sessionID, err.Error())
			log.WithError(err).WithField("document", docType).Error("❌ Document generation failed")
			return err
		}

		if err := g.sessionRepo.SaveDocument(sessionID, doc); err != nil {
			err = errors.Wrapf(err, "failed to save %s", docType.Label())
			g.sessionRepo.UpdateError(sessionID, err.Error())
			log.WithError(err).WithField("document", docType).Error("❌ Document save failed")
			return err
		}
	}

	if err := g.sessionRepo.UpdateStatus(sessionID, models.StatusCompleted); err != nil {
		return errors.Wrap(err, "failed to update status")
	}

	log.Info("✅ Document generation completed")
	return nil
}

func (g *generatorService) generateOne(
	ctx context.Context,
	sessionID uuid.UUID,
	docType models.DocumentType,
	form models.GenerationForm,
) (*models.GeneratedDocument, error) {
	log := logger.Get().WithFields(logrus.Fields{
		"session_id": sessionID,
		"document":   docType,
	})

	prompt, err := g.promptBuilder.Build(docType, form)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidRequest, "%v", err)
	}

	log.Infof("📝 Generating %s", docType.Label())
	result, err := g.orchestrator.Run(ctx, prompt, RunOptions{Label: sessionID.String()})
	if err != nil {
		g.audit(sessionID, prompt.Version, nil, err)
		return nil, errors.Wrapf(err, "failed to generate %s", docType.Label())
	}
	g.audit(sessionID, prompt.Version, result, nil)

	content := result.Content
	if docType == models.DocumentPortfolio {
		content = CleanHTMLFences(content)
	}

	verdict := ValidateContent(content, docType)
	if !verdict.Valid {
		log.WithField("reason", verdict.Reason).Warn("⚠️  Generated document failed content checks")
	}

	return &models.GeneratedDocument{
		Type:      docType,
		Content:   content,
		Model:     result.Model,
		Tokens:    result.Tokens,
		Verdict:   verdict,
		CreatedAt: time.Now(),
	}, nil
}

// audit records one orchestrated call. Audit failures are logged, never returned.
func (g *generatorService) audit(sessionID uuid.UUID, version models.Version, result *Result, runErr error) {
	entry := &models.GenerationLog{
		SessionID: sessionID,
		Version:   string(version),
		Status:    string(models.StatusCompleted),
	}

	var failures []AttemptRecord
	if result != nil {
		entry.Model = result.Model
		entry.Attempts = result.Attempts
		entry.Tokens = result.Tokens
		failures = result.Failures
	}
	if runErr != nil {
		entry.Status = string(models.StatusFailed)
		entry.ErrorMessage = runErr.Error()
		var exhausted *ExhaustedError
		if errors.As(runErr, &exhausted) {
			failures = exhausted.Attempts
			entry.Attempts = len(exhausted.Attempts)
		}
	}

	reasons := make([]string, 0, len(failures))
	for _, f := range failures {
		reasons = append(reasons, f.String())
	}
	entry.Failures = strings.Join(reasons, "; ")

	if err := g.logRepo.Create(entry); err != nil {
		logger.Get().WithError(err).Warn("⚠️  Failed to write generation log")
	}
}
