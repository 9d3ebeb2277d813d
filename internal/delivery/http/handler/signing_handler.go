package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"plume/internal/domain/entity"
	"plume/internal/signature"
	"plume/internal/usecase"
)

// SignRequest is the sign step body: the capture plus the legal agreement
type SignRequest struct {
	signature.Capture
	Agreed bool `json:"agreed"`
}

type SigningHandler struct {
	usecase usecase.SigningUsecase
	logger  *zap.Logger
}

func NewSigningHandler(usecase usecase.SigningUsecase, logger *zap.Logger) *SigningHandler {
	return &SigningHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// fail reports unknown tokens the way the signer pages word them
func (h *SigningHandler) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, entity.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(
			entity.NewErrorResponse("NOT_FOUND", "Invalid or expired link"),
		)
	}
	return writeError(c, h.logger, err, "Failed to load session")
}

// Get godoc
// @Summary Open a signing session
// @Description Expired, completed and invalid sessions are returned with their status
// @Tags signing
// @Produce json
// @Param token path string true "Signing token"
// @Success 200 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Router /api/v1/sign/{token} [get]
func (h *SigningHandler) Get(c *fiber.Ctx) error {
	session, err := h.usecase.Open(c.UserContext(), c.Params("token"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(session, "Session retrieved successfully"))
}

// Consent godoc
// @Summary Consent disclosure
// @Tags signing
// @Produce json
// @Param token path string true "Signing token"
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/sign/{token}/consent [get]
func (h *SigningHandler) Consent(c *fiber.Ctx) error {
	view, err := h.usecase.Consent(c.UserContext(), c.Params("token"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(view, "Consent disclosure retrieved successfully"))
}

// GiveConsent godoc
// @Summary Agree to electronic signatures
// @Description Accepted only once the disclosure was scrolled to the bottom
// @Tags signing
// @Accept json
// @Produce json
// @Param token path string true "Signing token"
// @Param request body entity.ConsentRequest true "Consent"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 409 {object} entity.APIResponse
// @Router /api/v1/sign/{token}/consent [post]
func (h *SigningHandler) GiveConsent(c *fiber.Ctx) error {
	var req entity.ConsentRequest
	if ok, err := parseBody(c, h.logger, &req); !ok {
		return err
	}

	session, err := h.usecase.GiveConsent(c.UserContext(), c.Params("token"), req.ScrolledToBottom, req.Agreed)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(session, "Consent recorded"))
}

// ResendCode godoc
// @Summary Send a verification code
// @Tags signing
// @Produce json
// @Param token path string true "Signing token"
// @Success 200 {object} entity.APIResponse
// @Failure 409 {object} entity.APIResponse
// @Failure 429 {object} entity.APIResponse
// @Router /api/v1/sign/{token}/otp/resend [post]
func (h *SigningHandler) ResendCode(c *fiber.Ctx) error {
	result, err := h.usecase.ResendCode(c.UserContext(), c.Params("token"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(result, "A new verification code has been sent to your email."))
}

// VerifyCode godoc
// @Summary Verify the emailed code
// @Description Any code of six digits is accepted
// @Tags signing
// @Accept json
// @Produce json
// @Param token path string true "Signing token"
// @Param request body entity.VerifyOTPRequest true "Code"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Router /api/v1/sign/{token}/otp/verify [post]
func (h *SigningHandler) VerifyCode(c *fiber.Ctx) error {
	var req entity.VerifyOTPRequest
	if ok, err := parseBody(c, h.logger, &req); !ok {
		return err
	}

	result, err := h.usecase.VerifyCode(c.UserContext(), c.Params("token"), req.Code)
	if err != nil {
		return h.fail(c, err)
	}
	if !result.Success {
		return badRequest(c, result.Error)
	}
	return c.JSON(entity.NewSuccessResponse(result, "Your identity has been verified."))
}

// Review godoc
// @Summary Finish reviewing the document
// @Tags signing
// @Produce json
// @Param token path string true "Signing token"
// @Success 200 {object} entity.APIResponse
// @Failure 409 {object} entity.APIResponse
// @Router /api/v1/sign/{token}/review [post]
func (h *SigningHandler) Review(c *fiber.Ctx) error {
	session, err := h.usecase.CompleteReview(c.UserContext(), c.Params("token"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(session, "Review completed"))
}

// Sign godoc
// @Summary Sign the document
// @Tags signing
// @Accept json
// @Produce json
// @Param token path string true "Signing token"
// @Param request body SignRequest true "Signature"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 409 {object} entity.APIResponse
// @Router /api/v1/sign/{token}/sign [post]
func (h *SigningHandler) Sign(c *fiber.Ctx) error {
	var req SignRequest
	if ok, err := parseBody(c, h.logger, &req); !ok {
		return err
	}

	session, err := h.usecase.Sign(c.UserContext(), c.Params("token"), req.Capture, req.Agreed)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(session, "Document signed"))
}
