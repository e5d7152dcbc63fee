package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-analytics/internal/application/dto"
	"github.com/jhoicas/ventas-analytics/internal/application/usecase"
)

// SettingsHandler CRUD de la tabla clave/valor (API keys de IA, etc.).
type SettingsHandler struct {
	uc *usecase.SettingsUseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Get godoc
// @Summary      Leer un setting (secretos enmascarados)
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Param        key  path  string  true  "clave"
// @Success      200  {object}  dto.SettingDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/settings/{key} [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("key"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Put godoc
// @Summary      Guardar un setting (último valor gana)
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        key   path  string                  true  "clave"
// @Param        body  body  dto.SaveSettingRequest  true  "value"
// @Success      200  {object}  dto.SettingDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/settings/{key} [put]
func (h *SettingsHandler) Put(c *fiber.Ctx) error {
	var in dto.SaveSettingRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	key := c.Params("key")
	if err := h.uc.Save(c.UserContext(), key, in.Value); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), key)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar un setting
// @Tags         settings
// @Security     Bearer
// @Success      204
// @Router       /api/settings/{key} [delete]
func (h *SettingsHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("key")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
