package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wedding-api/internal/application/dto"
	"github.com/jhoicas/wedding-api/internal/application/usecase"
)

// SettingsHandler maneja la configuración de la boda (un registro por usuario).
type SettingsHandler struct {
	uc *usecase.SettingsUseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Get godoc
// @Summary      Configuración de la boda
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.WeddingSettingsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/wedding-settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Upsert godoc
// @Summary      Crear o actualizar configuración
// @Description  Actualización parcial; en la creación weddingDate es obligatorio.
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertWeddingSettingsRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.WeddingSettingsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/wedding-settings [put]
func (h *SettingsHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertWeddingSettingsRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Upsert(c.Context(), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina la configuración del usuario.
// DELETE /api/wedding-settings
func (h *SettingsHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c)); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Countdown días, horas, minutos y segundos hasta la boda.
// GET /api/wedding-settings/countdown
func (h *SettingsHandler) Countdown(c *fiber.Ctx) error {
	out, err := h.uc.Countdown(c.Context(), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
