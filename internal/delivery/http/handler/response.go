package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"plume/internal/domain/entity"
)

// writeError maps domain errors onto HTTP statuses. Unexpected errors are
// logged and reported with the generic internalMsg.
func writeError(c *fiber.Ctx, logger *zap.Logger, err error, internalMsg string) error {
	status, code := statusFor(err)
	if status == fiber.StatusInternalServerError {
		logger.Error(internalMsg,
			zap.String("path", c.Path()),
			zap.String("request_id", requestID(c)),
			zap.Error(err),
		)
		return c.Status(status).JSON(entity.NewErrorResponse(code, internalMsg))
	}

	return c.Status(status).JSON(entity.NewErrorResponse(code, err.Error()))
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, entity.ErrInvalidInput):
		return fiber.StatusBadRequest, "BAD_REQUEST"
	case errors.Is(err, entity.ErrStepOutOfOrder),
		errors.Is(err, entity.ErrSessionClosed),
		errors.Is(err, entity.ErrInvalidState):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, entity.ErrCooldown):
		return fiber.StatusTooManyRequests, "TOO_MANY_REQUESTS"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusRequestTimeout, "REQUEST_TIMEOUT"
	default:
		return fiber.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(
		entity.NewErrorResponse("BAD_REQUEST", message),
	)
}

// parseBody decodes the JSON body into req, answering 400 when it is malformed
func parseBody(c *fiber.Ctx, logger *zap.Logger, req interface{}) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		logger.Debug("Failed to parse request body", zap.String("path", c.Path()), zap.Error(err))
		return false, badRequest(c, "Invalid request body")
	}
	return true, nil
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
