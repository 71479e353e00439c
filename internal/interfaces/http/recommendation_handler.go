package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Recomendador-api/internal/application/dto"
	"github.com/jhoicas/Recomendador-api/internal/application/usecase"
	"github.com/jhoicas/Recomendador-api/pkg/logger"
)

// RecommendationHandler expone la generación de recomendaciones.
type RecommendationHandler struct {
	uc  *usecase.RecommendationUseCase
	log *logger.Logger
}

// NewRecommendationHandler construye el handler.
func NewRecommendationHandler(uc *usecase.RecommendationUseCase, log *logger.Logger) *RecommendationHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &RecommendationHandler{uc: uc, log: log}
}

// Recommend godoc
// @Summary      Generar recomendaciones personalizadas
// @Description  Filtra el catálogo según preferencias e historial, consulta al LLM y devuelve hasta 5
//               productos del catálogo con explicación y confidence_score (1-10). Si el modelo responde
//               texto ilegible se devuelve 200 con recommendations vacío y el campo error.
// @Tags         recommendations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecommendationRequest  true  "preferences y browsing_history (ids de producto)"
// @Success      200   {object}  dto.RecommendationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Failure      504   {object}  dto.ErrorResponse
// @Router       /api/recommendations [post]
func (h *RecommendationHandler) Recommend(c *fiber.Ctx) error {
	var req dto.RecommendationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "cuerpo de la petición inválido",
		})
	}
	if err := validateStruct(&req); err != nil {
		return respondError(c, err)
	}

	out, err := h.uc.RecommendForCatalog(c.UserContext(), req)
	if err != nil {
		h.log.Warn().Err(err).Str("user_id", GetUserID(c)).Msg("recomendación fallida")
		return respondError(c, err)
	}
	return c.JSON(out)
}
