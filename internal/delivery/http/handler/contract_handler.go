package handler

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"plume/internal/domain/entity"
	"plume/internal/usecase"
)

type ContractHandler struct {
	usecase usecase.ContractUsecase
	logger  *zap.Logger
}

func NewContractHandler(usecase usecase.ContractUsecase, logger *zap.Logger) *ContractHandler {
	return &ContractHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// parseFilters reads ?status=a,b&template_id=&batch_id=&search=
func parseFilters(c *fiber.Ctx) (entity.ContractFilters, error) {
	filters := entity.ContractFilters{
		TemplateID: strings.TrimSpace(c.Query("template_id")),
		BatchID:    strings.TrimSpace(c.Query("batch_id")),
		Search:     c.Query("search"),
	}

	for _, raw := range strings.Split(c.Query("status"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		status := entity.ContractStatus(raw)
		if !status.Valid() {
			return filters, fmt.Errorf("unknown status %q", raw)
		}
		filters.Status = append(filters.Status, status)
	}

	return filters, nil
}

// List godoc
// @Summary List contracts
// @Description List contracts with signer progress, most recently updated first
// @Tags contracts
// @Produce json
// @Param status query string false "Comma-separated statuses"
// @Param template_id query string false "Template ID"
// @Param batch_id query string false "Batch ID"
// @Param search query string false "Matches title, template name and signers"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Router /api/v1/contracts [get]
func (h *ContractHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()

	filters, err := parseFilters(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	contracts, err := h.usecase.List(ctx, filters)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load contracts")
	}

	return c.JSON(entity.NewSuccessResponse(contracts, "Contracts retrieved successfully"))
}

// Dashboard godoc
// @Summary Dashboard
// @Description Contract stats together with the filtered contract list
// @Tags contracts
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/dashboard [get]
func (h *ContractHandler) Dashboard(c *fiber.Ctx) error {
	ctx := c.UserContext()

	filters, err := parseFilters(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	dashboard, err := h.usecase.Dashboard(ctx, filters)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load dashboard")
	}

	return c.JSON(entity.NewSuccessResponse(dashboard, "Dashboard retrieved successfully"))
}

// Stats godoc
// @Summary Contract stats
// @Tags contracts
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/contracts/stats [get]
func (h *ContractHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.usecase.Stats(c.UserContext())
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load contract stats")
	}
	return c.JSON(entity.NewSuccessResponse(stats, "Stats retrieved successfully"))
}

// Get godoc
// @Summary Get contract
// @Tags contracts
// @Produce json
// @Param id path string true "Contract ID"
// @Success 200 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Router /api/v1/contracts/{id} [get]
func (h *ContractHandler) Get(c *fiber.Ctx) error {
	contract, err := h.usecase.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load contract")
	}
	return c.JSON(entity.NewSuccessResponse(contract, "Contract retrieved successfully"))
}

// Overview godoc
// @Summary Contract detail
// @Description Contract, timeline, signing link and recorded activity in one call
// @Tags contracts
// @Produce json
// @Param id path string true "Contract ID"
// @Success 200 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Router /api/v1/contracts/{id}/overview [get]
func (h *ContractHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.usecase.Overview(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load contract")
	}
	return c.JSON(entity.NewSuccessResponse(overview, "Contract retrieved successfully"))
}

// Timeline godoc
// @Summary Contract timeline
// @Tags contracts
// @Produce json
// @Param id path string true "Contract ID"
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/contracts/{id}/timeline [get]
func (h *ContractHandler) Timeline(c *fiber.Ctx) error {
	events, err := h.usecase.Timeline(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load timeline")
	}
	return c.JSON(entity.NewSuccessResponse(events, "Timeline retrieved successfully"))
}

// Evidence godoc
// @Summary Evidence bundle
// @Description Only completed contracts have an evidence bundle
// @Tags contracts
// @Produce json
// @Param id path string true "Contract ID"
// @Success 200 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Router /api/v1/contracts/{id}/evidence [get]
func (h *ContractHandler) Evidence(c *fiber.Ctx) error {
	bundle, err := h.usecase.Evidence(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load evidence bundle")
	}
	return c.JSON(entity.NewSuccessResponse(bundle, "Evidence bundle retrieved successfully"))
}

// Send godoc
// @Summary Send a draft contract
// @Tags contracts
// @Produce json
// @Param id path string true "Contract ID"
// @Success 200 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Failure 409 {object} entity.APIResponse
// @Router /api/v1/contracts/{id}/send [post]
func (h *ContractHandler) Send(c *fiber.Ctx) error {
	result, err := h.usecase.Send(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.logger, err, "Failed to send contract")
	}
	return c.JSON(entity.NewSuccessResponse(result, "Contract sent"))
}

// Void godoc
// @Summary Void a contract
// @Tags contracts
// @Accept json
// @Produce json
// @Param id path string true "Contract ID"
// @Param request body entity.VoidContractRequest false "Reason"
// @Success 200 {object} entity.APIResponse
// @Failure 409 {object} entity.APIResponse
// @Router /api/v1/contracts/{id}/void [post]
func (h *ContractHandler) Void(c *fiber.Ctx) error {
	var req entity.VoidContractRequest
	if len(c.Body()) > 0 {
		if ok, err := parseBody(c, h.logger, &req); !ok {
			return err
		}
	}

	result, err := h.usecase.Void(c.UserContext(), c.Params("id"), req.Reason)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to void contract")
	}
	return c.JSON(entity.NewSuccessResponse(result, "The contract has been voided and signers notified."))
}

// Resend godoc
// @Summary Send a reminder to a signer
// @Tags contracts
// @Produce json
// @Param id path string true "Contract ID"
// @Param signerId path string true "Signer ID"
// @Success 200 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Failure 409 {object} entity.APIResponse
// @Router /api/v1/contracts/{id}/signers/{signerId}/resend [post]
func (h *ContractHandler) Resend(c *fiber.Ctx) error {
	result, err := h.usecase.ResendToSigner(c.UserContext(), c.Params("id"), c.Params("signerId"))
	if err != nil {
		return writeError(c, h.logger, err, "Failed to send reminder")
	}
	return c.JSON(entity.NewSuccessResponse(result, "A reminder has been sent to the signer."))
}
