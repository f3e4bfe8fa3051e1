package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/zonafranca-api/internal/application/dto"
	"github.com/jhoicas/zonafranca-api/internal/domain"
)

// statusForCode mapea los códigos de error de dominio a status HTTP.
// Los tres conflictos concurrentes/terminales (CAS perdido, lote ya anulado,
// estado bloqueado) son 409: el cliente debe releer y decidir.
func statusForCode(code string) int {
	switch code {
	case "VALIDATION":
		return fiber.StatusBadRequest
	case "NOT_FOUND":
		return fiber.StatusNotFound
	case "CONCURRENT_MODIFICATION", "ALREADY_VOIDED", "STATUS_LOCKED", "DUPLICATE":
		return fiber.StatusConflict
	case "UNAUTHORIZED":
		return fiber.StatusUnauthorized
	case "FORBIDDEN":
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// errorResponse escribe la respuesta de error uniforme {code, message}.
func errorResponse(c *fiber.Ctx, err error) error {
	code := domain.Code(err)
	return c.Status(statusForCode(code)).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
