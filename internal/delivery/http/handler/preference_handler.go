package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"plume/internal/domain/entity"
	"plume/internal/usecase"
)

// ClientIDHeader keys preferences per browser
const ClientIDHeader = "X-Client-ID"

type PreferenceHandler struct {
	usecase usecase.PreferenceUsecase
	logger  *zap.Logger
}

func NewPreferenceHandler(usecase usecase.PreferenceUsecase, logger *zap.Logger) *PreferenceHandler {
	return &PreferenceHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// Get godoc
// @Summary Get UI preferences
// @Tags preferences
// @Produce json
// @Param X-Client-ID header string false "Client key"
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/preferences [get]
func (h *PreferenceHandler) Get(c *fiber.Ctx) error {
	prefs, err := h.usecase.Get(c.UserContext(), c.Get(ClientIDHeader))
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load preferences")
	}
	return c.JSON(entity.NewSuccessResponse(prefs, "Preferences retrieved successfully"))
}

// Update godoc
// @Summary Update UI preferences
// @Description Omitted fields keep their current value
// @Tags preferences
// @Accept json
// @Produce json
// @Param X-Client-ID header string false "Client key"
// @Param request body entity.PreferencesPatch true "Changes"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Router /api/v1/preferences [put]
func (h *PreferenceHandler) Update(c *fiber.Ctx) error {
	var patch entity.PreferencesPatch
	if ok, err := parseBody(c, h.logger, &patch); !ok {
		return err
	}

	prefs, err := h.usecase.Update(c.UserContext(), c.Get(ClientIDHeader), &patch)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to save preferences")
	}
	return c.JSON(entity.NewSuccessResponse(prefs, "Preferences saved"))
}
