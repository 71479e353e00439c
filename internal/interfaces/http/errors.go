package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Recomendador-api/internal/application/dto"
	"github.com/jhoicas/Recomendador-api/internal/domain"
)

// respondError traduce errores de dominio a status HTTP y dto.ErrorResponse.
// El orden importa: un timeout del proveedor también envuelve ErrLLMUpstream.
func respondError(c *fiber.Ctx, err error) error {
	status, body := classifyError(err)
	return c.Status(status).JSON(body)
}

func classifyError(err error) (int, dto.ErrorResponse) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout, dto.ErrorResponse{
			Code: "TIMEOUT", Message: "el servicio de IA tardó demasiado; intenta de nuevo",
		}
	case errors.Is(err, domain.ErrLLMNotConfigured):
		return fiber.StatusServiceUnavailable, dto.ErrorResponse{
			Code: "AI_UNAVAILABLE", Message: "el servicio de recomendaciones IA no está configurado",
		}
	case errors.Is(err, domain.ErrCatalogUnavailable):
		return fiber.StatusServiceUnavailable, dto.ErrorResponse{Code: "CATALOG_UNAVAILABLE", Message: err.Error()}
	case errors.Is(err, domain.ErrLLMUpstream):
		return fiber.StatusBadGateway, dto.ErrorResponse{Code: "LLM_UPSTREAM", Message: err.Error()}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()}
	}
}
