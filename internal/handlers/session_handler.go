package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resumate/internal/models"
	"alfredoptarigan/resumate/internal/repositories"
	"alfredoptarigan/resumate/internal/services"
)

type SessionHandler struct {
	sessionRepo repositories.SessionRepository
	logRepo     repositories.GenerationLogRepository
	renderer    services.PDFRenderer
}

func NewSessionHandler(
	sessionRepo repositories.SessionRepository,
	logRepo repositories.GenerationLogRepository,
	renderer services.PDFRenderer,
) *SessionHandler {
	return &SessionHandler{
		sessionRepo: sessionRepo,
		logRepo:     logRepo,
		renderer:    renderer,
	}
}

// HandleGetSession handles GET /sessions/:id
func (h *SessionHandler) HandleGetSession(c *fiber.Ctx) error {
	session, err := h.findSession(c)
	if err != nil {
		return err
	}

	response := models.SessionResponse{
		ID:          session.ID.String(),
		Status:      string(session.Status),
		Profile:     session.Profile,
		Documents:   []models.DocumentResponse{},
		TotalTokens: session.TotalTokens,
	}

	header := documentHeader(session)
	for _, docType := range models.DocumentOrder {
		doc, ok := session.Documents[docType]
		if !ok {
			continue
		}
		item := models.DocumentResponse{
			Type:     string(doc.Type),
			Label:    doc.Type.Label(),
			Model:    doc.Model,
			Tokens:   doc.Tokens,
			Content:  doc.Content,
			FileName: services.DocumentFileName(header.Name, doc.Type, "pdf"),
		}
		if !doc.Verdict.Valid {
			warning := doc.Verdict.Reason
			item.Warning = &warning
		}
		response.Documents = append(response.Documents, item)
	}

	if session.Status == models.StatusFailed && session.ErrorMessage != "" {
		response.ErrorMessage = &session.ErrorMessage
	}

	return c.JSON(response)
}

// HandleDownload handles GET /sessions/:id/documents/:type?format=pdf|txt|html
func (h *SessionHandler) HandleDownload(c *fiber.Ctx) error {
	session, err := h.findSession(c)
	if err != nil {
		return err
	}

	docType, ok := models.ParseDocumentType(c.Params("type"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("unknown document type %q", c.Params("type")))
	}

	doc, err := h.sessionRepo.FindDocument(session.ID, docType)
	if err != nil {
		return err
	}

	header := documentHeader(session)
	format := c.Query("format", "pdf")

	switch format {
	case "txt":
		c.Attachment(services.DocumentFileName(header.Name, docType, "txt"))
		return c.SendString(services.BuildDocumentText(*doc, header))

	case "html":
		html, err := services.BuildDocumentHTML(*doc, header)
		if err != nil {
			return err
		}
		c.Attachment(services.DocumentFileName(header.Name, docType, "html"))
		return c.SendString(html)

	case "pdf":
		html, err := services.BuildDocumentHTML(*doc, header)
		if err != nil {
			return err
		}
		pdf, err := h.renderer.RenderHTMLToPDF(c.UserContext(), html)
		if err != nil {
			return err
		}
		c.Attachment(services.DocumentFileName(header.Name, docType, "pdf"))
		return c.Send(pdf)
	}

	return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("unsupported format %q", format))
}

// HandleLogs handles GET /sessions/:id/logs. The list is empty when the
// audit database is disabled.
func (h *SessionHandler) HandleLogs(c *fiber.Ctx) error {
	session, err := h.findSession(c)
	if err != nil {
		return err
	}

	entries, err := h.logRepo.FindBySession(session.ID)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []models.GenerationLog{}
	}

	return c.JSON(models.GenerationLogsResponse{
		SessionID: session.ID.String(),
		Logs:      entries,
	})
}

func (h *SessionHandler) findSession(c *fiber.Ctx) (*models.Session, error) {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid session ID format")
	}
	return h.sessionRepo.FindByID(sessionID)
}

// documentHeader prefers the submitted form and falls back to the extracted profile.
func documentHeader(s *models.Session) services.DocumentHeader {
	var header services.DocumentHeader
	if s.Profile != nil {
		header = services.DocumentHeader{
			Name:  s.Profile.Name,
			Email: s.Profile.Email,
			Phone: s.Profile.Phone,
		}
	}
	if s.Form != nil {
		if s.Form.Name != "" {
			header.Name = s.Form.Name
		}
		if s.Form.Email != "" {
			header.Email = s.Form.Email
		}
		if s.Form.Phone != "" {
			header.Phone = s.Form.Phone
		}
	}
	return header
}
