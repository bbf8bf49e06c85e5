package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
)

// writeError traduce errores de dominio a respuestas HTTP.
// NotFound -> 404, reglas de negocio -> 400, duplicados/referenciados -> 409, resto -> 500.
func writeError(c *fiber.Ctx, err error) error {
	status, code, msg := classify(err)
	if status >= fiber.StatusInternalServerError {
		l := loggerFrom(c)
		l.Error().Err(err).Str("path", c.Path()).Msg("error interno")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func classify(err error) (int, string, string) {
	var insufficient *domain.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		return fiber.StatusBadRequest, "INSUFFICIENT_STOCK",
			fmt.Sprintf("stock insuficiente: disponible %s, solicitado %s", insufficient.Available, insufficient.Requested)
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusBadRequest, "INSUFFICIENT_STOCK", err.Error()
	case errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusBadRequest, "INVALID_TRANSITION", err.Error()
	case errors.Is(err, domain.ErrAlreadySettled):
		return fiber.StatusBadRequest, "ALREADY_SETTLED", err.Error()
	case errors.Is(err, domain.ErrMoveCancelled):
		return fiber.StatusBadRequest, "MOVE_CANCELLED", err.Error()
	case errors.Is(err, domain.ErrMissingWarehouse):
		return fiber.StatusBadRequest, "MISSING_WAREHOUSE", err.Error()
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION", "datos inválidos"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE", err.Error()
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT", "el recurso está referenciado por movimientos"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED", err.Error()
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN", err.Error()
	case errors.Is(err, domain.ErrSerialExhausted):
		return fiber.StatusInternalServerError, "SERIAL_EXHAUSTED", err.Error()
	default:
		return fiber.StatusInternalServerError, "INTERNAL", "error interno"
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
