package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resumate/internal/models"
	"alfredoptarigan/resumate/internal/services"
)

type ModelsHandler struct {
	orchestrator services.Orchestrator
	catalog      services.ModelCatalog
}

func NewModelsHandler(orchestrator services.Orchestrator, catalog services.ModelCatalog) *ModelsHandler {
	return &ModelsHandler{
		orchestrator: orchestrator,
		catalog:      catalog,
	}
}

// HandleList handles GET /models and returns the fallback order in use.
func (h *ModelsHandler) HandleList(c *fiber.Ctx) error {
	candidates := h.orchestrator.Candidates()
	response := make([]models.ModelResponse, 0, len(candidates))
	for _, m := range candidates {
		response = append(response, models.ModelResponse{
			Name:           m.Name,
			Backend:        m.Backend,
			Provider:       m.Provider,
			TimeoutSeconds: m.Timeout.Seconds(),
		})
	}
	return c.JSON(response)
}

// HandleFree handles GET /models/free
func (h *ModelsHandler) HandleFree(c *fiber.Ctx) error {
	free, err := h.catalog.ListFree(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(free)
}
