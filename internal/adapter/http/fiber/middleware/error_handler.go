package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/translog/internal/adapter/http/fiber/response"
	"github.com/seu-repo/translog/internal/domain"
)

// ErrorHandler maps the domain error taxonomy onto HTTP statuses so handlers
// can return service errors unwrapped.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if verr, ok := domain.AsValidation(err); ok {
			return response.Error(c, fiber.StatusUnprocessableEntity, "validation failed", verr.Fields)
		}

		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.Error(c, fiber.StatusNotFound, "resource not found", nil)
		case errors.Is(err, domain.ErrForbidden):
			return response.Error(c, fiber.StatusForbidden, "forbidden", nil)
		case errors.Is(err, domain.ErrUnauthorized):
			return response.Error(c, fiber.StatusUnauthorized, "unauthorized", nil)
		case errors.Is(err, domain.ErrConflict):
			return response.Error(c, fiber.StatusConflict, "resource already exists", nil)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return response.Error(c, fiberErr.Code, fiberErr.Message, nil)
		}

		log.Error("unhandled error",
			zap.String("path", c.Path()),
			zap.String("method", c.Method()),
			zap.Error(err),
		)
		return response.Error(c, fiber.StatusInternalServerError, "internal server error", nil)
	}
}
