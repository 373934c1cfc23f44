package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/punchlist-api/internal/application/dto"
	"github.com/jhoicas/punchlist-api/internal/domain"
)

const localError = "error"

var errInvalidBody = errors.New("cuerpo inválido")

// respondError traduce los errores de dominio a HTTP. Los 5xx quedan en Locals para el access log
// y no exponen el detalle interno.
func respondError(c *fiber.Ctx, err error) error {
	status, code := classify(err)
	msg := err.Error()
	if status >= fiber.StatusInternalServerError {
		c.Locals(localError, err)
		if status == fiber.StatusInternalServerError {
			msg = "error interno"
		}
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, errInvalidBody):
		return fiber.StatusBadRequest, "INVALID_BODY"
	case errors.Is(err, domain.ErrEmptySelection):
		return fiber.StatusBadRequest, "EMPTY_SELECTION"
	case errors.Is(err, domain.ErrInvalidInviteCode):
		return fiber.StatusBadRequest, "INVALID_INVITE_CODE"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, "EMAIL_EXISTS"
	case errors.Is(err, domain.ErrStatusLocked):
		return fiber.StatusConflict, "STATUS_LOCKED"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrUnavailable):
		return fiber.StatusServiceUnavailable, "UNAVAILABLE"
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusRequestTimeout, "TIMEOUT"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}
