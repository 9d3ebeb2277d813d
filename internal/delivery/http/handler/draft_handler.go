package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"plume/internal/domain/entity"
	"plume/internal/usecase"
)

// DraftHandler serves the create-contract wizard
type DraftHandler struct {
	usecase usecase.DraftUsecase
	logger  *zap.Logger
}

func NewDraftHandler(usecase usecase.DraftUsecase, logger *zap.Logger) *DraftHandler {
	return &DraftHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// Create godoc
// @Summary Start a draft from a template
// @Tags drafts
// @Accept json
// @Produce json
// @Param request body entity.CreateDraftRequest true "Template and initial values"
// @Success 201 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Router /api/v1/drafts [post]
func (h *DraftHandler) Create(c *fiber.Ctx) error {
	var req entity.CreateDraftRequest
	if ok, err := parseBody(c, h.logger, &req); !ok {
		return err
	}
	if req.TemplateID == "" {
		return badRequest(c, "templateId is required")
	}

	draft, err := h.usecase.Create(c.UserContext(), &req)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to create draft")
	}
	return c.Status(fiber.StatusCreated).JSON(entity.NewSuccessResponse(draft, "Draft created"))
}

// Get godoc
// @Summary Get a draft
// @Tags drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Router /api/v1/drafts/{id} [get]
func (h *DraftHandler) Get(c *fiber.Ctx) error {
	draft, err := h.usecase.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load draft")
	}
	return c.JSON(entity.NewSuccessResponse(draft, "Draft retrieved successfully"))
}

// UpdateVariables godoc
// @Summary Fill in template variables
// @Description Empty values clear a variable
// @Tags drafts
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param request body entity.UpdateVariablesRequest true "Variables"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Router /api/v1/drafts/{id}/variables [put]
func (h *DraftHandler) UpdateVariables(c *fiber.Ctx) error {
	var req entity.UpdateVariablesRequest
	if ok, err := parseBody(c, h.logger, &req); !ok {
		return err
	}

	draft, err := h.usecase.UpdateVariables(c.UserContext(), c.Params("id"), req.Variables)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to update draft")
	}
	return c.JSON(entity.NewSuccessResponse(draft, "Variables updated"))
}

// AddSigner godoc
// @Summary Add a signer
// @Tags drafts
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param request body entity.AddSignerRequest true "Signer"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Router /api/v1/drafts/{id}/signers [post]
func (h *DraftHandler) AddSigner(c *fiber.Ctx) error {
	var req entity.AddSignerRequest
	if ok, err := parseBody(c, h.logger, &req); !ok {
		return err
	}

	draft, err := h.usecase.AddSigner(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to add signer")
	}
	return c.JSON(entity.NewSuccessResponse(draft, "Signer added"))
}

// RemoveSigner godoc
// @Summary Remove a signer
// @Tags drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Param signerId path string true "Signer ID"
// @Success 200 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Router /api/v1/drafts/{id}/signers/{signerId} [delete]
func (h *DraftHandler) RemoveSigner(c *fiber.Ctx) error {
	draft, err := h.usecase.RemoveSigner(c.UserContext(), c.Params("id"), c.Params("signerId"))
	if err != nil {
		return writeError(c, h.logger, err, "Failed to remove signer")
	}
	return c.JSON(entity.NewSuccessResponse(draft, "Signer removed"))
}

// SetSequential godoc
// @Summary Toggle sequential signing
// @Tags drafts
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param request body entity.SequentialRequest true "Signing order"
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/drafts/{id}/sequential [put]
func (h *DraftHandler) SetSequential(c *fiber.Ctx) error {
	var req entity.SequentialRequest
	if ok, err := parseBody(c, h.logger, &req); !ok {
		return err
	}

	draft, err := h.usecase.SetSequential(c.UserContext(), c.Params("id"), req.Sequential)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to update draft")
	}
	return c.JSON(entity.NewSuccessResponse(draft, "Signing order updated"))
}

// Review godoc
// @Summary Move a draft to review
// @Description Requires every required variable and at least one signer
// @Tags drafts
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param request body entity.ReviewDraftRequest false "Message and reminder"
// @Success 200 {object} entity.APIResponse
// @Failure 409 {object} entity.APIResponse
// @Router /api/v1/drafts/{id}/review [post]
func (h *DraftHandler) Review(c *fiber.Ctx) error {
	var req entity.ReviewDraftRequest
	if len(c.Body()) > 0 {
		if ok, err := parseBody(c, h.logger, &req); !ok {
			return err
		}
	}

	draft, err := h.usecase.Review(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to review draft")
	}
	return c.JSON(entity.NewSuccessResponse(draft, "Draft ready to send"))
}

// Send godoc
// @Summary Send a reviewed draft
// @Tags drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} entity.APIResponse
// @Failure 409 {object} entity.APIResponse
// @Router /api/v1/drafts/{id}/send [post]
func (h *DraftHandler) Send(c *fiber.Ctx) error {
	draft, err := h.usecase.Send(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.logger, err, "Failed to send draft")
	}
	return c.JSON(entity.NewSuccessResponse(draft, "Contract sent"))
}
