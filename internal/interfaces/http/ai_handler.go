package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/punchlist-api/internal/application/dto"
	"github.com/jhoicas/punchlist-api/internal/application/usecase"
)

// AIHandler sugerencia de oficio asistida por IA.
type AIHandler struct {
	uc *usecase.AIUseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *usecase.AIUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// SuggestTrade godoc
// @Summary      Sugerir oficio con IA
// @Description  Analiza nombre, descripción y ubicación del ítem y devuelve uno de los oficios fijos.
// @Description  Timeout interno de 10 s; 503 si el servicio no está configurado.
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SuggestTradeRequest  true  "name y/o description"
// @Success      200   {object}  dto.TradeSuggestionDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      408   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/items/suggest-trade [post]
func (h *AIHandler) SuggestTrade(c *fiber.Ctx) error {
	var req dto.SuggestTradeRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.SuggestTrade(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
