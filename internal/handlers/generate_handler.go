package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resumate/internal/models"
	"alfredoptarigan/resumate/internal/repositories"
	"alfredoptarigan/resumate/internal/services"
)

type GenerateHandler struct {
	sessionRepo repositories.SessionRepository
	worker      services.Worker
}

func NewGenerateHandler(
	sessionRepo repositories.SessionRepository,
	worker services.Worker,
) *GenerateHandler {
	return &GenerateHandler{
		sessionRepo: sessionRepo,
		worker:      worker,
	}
}

// HandleGenerate handles POST /generate. Generation runs in the background;
// the session id is returned immediately.
func (h *GenerateHandler) HandleGenerate(c *fiber.Ctx) error {
	if err := services.ValidateGenerateRequest(c.Body()); err != nil {
		return err
	}

	var req models.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}

	session, err := resolveSession(h.sessionRepo, req.SessionID)
	if err != nil {
		return err
	}

	if err := h.sessionRepo.Begin(session.ID); err != nil {
		return err
	}

	form := req.GenerationForm
	if err := h.sessionRepo.Update(session.ID, func(s *models.Session) {
		s.Form = &form
		s.Status = models.StatusQueued
		s.ErrorMessage = ""
		s.Documents = make(map[models.DocumentType]*models.GeneratedDocument)
	}); err != nil {
		h.sessionRepo.Finish(session.ID)
		return err
	}

	h.worker.EnqueueJob(session.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.GenerateResponse{
		SessionID: session.ID.String(),
		Status:    string(models.StatusQueued),
	})
}
