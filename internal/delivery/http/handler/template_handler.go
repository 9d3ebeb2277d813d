package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"plume/internal/domain/entity"
	"plume/internal/usecase"
)

type TemplateHandler struct {
	usecase usecase.TemplateUsecase
	logger  *zap.Logger
}

func NewTemplateHandler(usecase usecase.TemplateUsecase, logger *zap.Logger) *TemplateHandler {
	return &TemplateHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// List godoc
// @Summary List templates
// @Tags templates
// @Produce json
// @Param category query string false "nda, msa, sow, employment, sales or all"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Router /api/v1/templates [get]
func (h *TemplateHandler) List(c *fiber.Ctx) error {
	templates, err := h.usecase.List(c.UserContext(), entity.TemplateCategory(c.Query("category")))
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load templates")
	}
	return c.JSON(entity.NewSuccessResponse(templates, "Templates retrieved successfully"))
}

// Get godoc
// @Summary Get template
// @Tags templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Router /api/v1/templates/{id} [get]
func (h *TemplateHandler) Get(c *fiber.Ctx) error {
	template, err := h.usecase.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load template")
	}
	return c.JSON(entity.NewSuccessResponse(template, "Template retrieved successfully"))
}
