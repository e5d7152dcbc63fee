package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-analytics/internal/application/dto"
	"github.com/jhoicas/ventas-analytics/internal/application/usecase"
)

// AIHandler resumen ejecutivo de la selección filtrada vía LLM.
type AIHandler struct {
	uc *usecase.AIUseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *usecase.AIUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen IA de las ventas filtradas
// @Description  provider opcional (anthropic|gemini); sin él se usa AI_PROVIDER.
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AISummaryRequest  true  "provider y filtro"
// @Success      200   {object}  dto.AISummaryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      408   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/ai/summary [post]
func (h *AIHandler) Summary(c *fiber.Ctx) error {
	var req dto.AISummaryRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.Summarize(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
