package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Profile  *ProfileHandler
	Generate *GenerateHandler
	Session  *SessionHandler
	Models   *ModelsHandler
}

// Register mounts the API under /api/v1.
func Register(app *fiber.App, h Handlers) {
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/profile/upload", h.Profile.HandleUpload)
	api.Post("/profile/analyze", h.Profile.HandleAnalyze)
	api.Post("/profile/parse", h.Profile.HandleParse)

	api.Post("/generate", h.Generate.HandleGenerate)

	api.Get("/sessions/:id", h.Session.HandleGetSession)
	api.Get("/sessions/:id/documents/:type", h.Session.HandleDownload)
	api.Get("/sessions/:id/logs", h.Session.HandleLogs)

	api.Get("/models", h.Models.HandleList)
	api.Get("/models/free", h.Models.HandleFree)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "ResuMate API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/profile/upload",
				"POST /api/v1/profile/analyze",
				"POST /api/v1/profile/parse",
				"POST /api/v1/generate",
				"GET /api/v1/sessions/:id",
				"GET /api/v1/sessions/:id/documents/:type",
				"GET /api/v1/sessions/:id/logs",
				"GET /api/v1/models",
				"GET /api/v1/models/free",
			},
		})
	})
}
