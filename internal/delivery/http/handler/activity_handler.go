package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"plume/internal/domain/entity"
	"plume/internal/usecase"
)

type ActivityHandler struct {
	usecase usecase.ActivityUsecase
	logger  *zap.Logger
}

func NewActivityHandler(usecase usecase.ActivityUsecase, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// List godoc
// @Summary Recent creator actions
// @Description Newest first. contract_id narrows to one contract and ignores limit.
// @Tags activity
// @Produce json
// @Param limit query int false "Maximum entries (default 50, max 200)"
// @Param contract_id query string false "Contract ID"
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/activity [get]
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	var (
		activities []*entity.Activity
		err        error
	)

	if contractID := c.Query("contract_id"); contractID != "" {
		activities, err = h.usecase.ListByContract(c.UserContext(), contractID)
	} else {
		activities, err = h.usecase.List(c.UserContext(), c.QueryInt("limit", usecase.DefaultActivityLimit))
	}
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load activity")
	}

	return c.JSON(entity.NewSuccessResponse(activities, "Activity retrieved successfully"))
}
