package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"alfredoptarigan/resumate/internal/logger"
	"alfredoptarigan/resumate/internal/models"
	"alfredoptarigan/resumate/internal/repositories"
	"alfredoptarigan/resumate/internal/services"
)

type ProfileHandler struct {
	sessionRepo    repositories.SessionRepository
	extractor      services.ProfileExtractor
	textExtractor  services.TextExtractor
	storageService services.StorageService
	maxFileSize    int64
}

func NewProfileHandler(
	sessionRepo repositories.SessionRepository,
	extractor services.ProfileExtractor,
	textExtractor services.TextExtractor,
	storageService services.StorageService,
	maxFileSize int64,
) *ProfileHandler {
	return &ProfileHandler{
		sessionRepo:    sessionRepo,
		extractor:      extractor,
		textExtractor:  textExtractor,
		storageService: storageService,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload handles POST /profile/upload. The resume file is read and
// deleted before the profile is analyzed.
func (h *ProfileHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "a resume must be uploaded as 'file' (.pdf or .txt)")
	}

	if file.Size > h.maxFileSize {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("file too large. Max size: %d bytes", h.maxFileSize))
	}

	filename, filePath, err := h.storageService.SaveFile(file)
	if err != nil {
		return err
	}
	defer func() {
		if err := h.storageService.DeleteFile(filename); err != nil {
			logger.Get().WithError(err).Warn("⚠️  Failed to delete upload")
		}
	}()

	text, err := h.textExtractor.ExtractText(filePath)
	if err != nil {
		return errors.Wrapf(services.ErrInvalidRequest, "could not read %s: %v", file.Filename, err)
	}

	return h.analyze(c, c.FormValue("session_id"), text)
}

// HandleAnalyze handles POST /profile/analyze with pasted free text.
func (h *ProfileHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req models.ProfileTextRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}

	return h.analyze(c, req.SessionID, req.Text)
}

// HandleParse handles POST /profile/parse. It reads "key: value" lines and
// never calls a model.
func (h *ProfileHandler) HandleParse(c *fiber.Ctx) error {
	var req models.ProfileTextRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}
	if strings.TrimSpace(req.Text) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "text is required")
	}

	session, err := resolveSession(h.sessionRepo, req.SessionID)
	if err != nil {
		return err
	}

	record := services.ParsePastedProfile(req.Text)
	if err := h.sessionRepo.Update(session.ID, func(s *models.Session) {
		s.Profile = &record
	}); err != nil {
		return err
	}

	return c.JSON(models.ProfileResponse{
		SessionID: session.ID.String(),
		Profile:   record,
	})
}

func (h *ProfileHandler) analyze(c *fiber.Ctx, sessionID, text string) error {
	session, err := resolveSession(h.sessionRepo, sessionID)
	if err != nil {
		return err
	}

	if err := h.sessionRepo.Begin(session.ID); err != nil {
		return err
	}
	defer h.sessionRepo.Finish(session.ID)

	result, err := h.extractor.Extract(c.UserContext(), text)
	if err != nil {
		return err
	}

	if err := h.sessionRepo.Update(session.ID, func(s *models.Session) {
		s.Profile = &result.Record
		s.TotalTokens += result.Tokens
	}); err != nil {
		return err
	}

	return c.JSON(models.ProfileResponse{
		SessionID: session.ID.String(),
		Profile:   result.Record,
		Model:     result.Model,
		Tokens:    result.Tokens,
	})
}

// resolveSession creates a session when id is empty.
func resolveSession(repo repositories.SessionRepository, id string) (*models.Session, error) {
	if strings.TrimSpace(id) == "" {
		return repo.Create(), nil
	}

	sessionID, err := uuid.Parse(id)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid session ID format")
	}
	return repo.FindByID(sessionID)
}
