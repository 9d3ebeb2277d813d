package handler

import (
	"github.com/gofiber/fiber/v2"

	"plume/internal/domain/entity"
)

type CatalogHandler struct {
	catalog *entity.Catalog
}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{catalog: entity.NewCatalog()}
}

// Get godoc
// @Summary Display catalog
// @Description Status labels, timeline labels, template categories and reminder options
// @Tags catalog
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/catalog [get]
func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	return c.JSON(entity.NewSuccessResponse(h.catalog, "Catalog retrieved successfully"))
}
