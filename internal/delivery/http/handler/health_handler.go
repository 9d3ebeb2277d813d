package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"plume/internal/buildinfo"
	"plume/internal/domain/entity"
	"plume/internal/infrastructure/fixture"
)

type HealthHandler struct {
	fixtures *fixture.Set
}

func NewHealthHandler(fixtures *fixture.Set) *HealthHandler {
	return &HealthHandler{fixtures: fixtures}
}

type HealthResponse struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Version   string         `json:"version"`
	Fixtures  fixture.Counts `json:"fixtures"`
}

// Health godoc
// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(entity.NewSuccessResponse(HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   buildinfo.Version,
		Fixtures:  h.fixtures.Counts(),
	}, "Service is healthy"))
}
