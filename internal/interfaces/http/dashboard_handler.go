package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wedding-api/internal/application/usecase"
)

// DashboardHandler maneja el resumen de la página principal.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve cuenta atrás, nombres de la pareja y progreso de preparativos.
// GET /api/dashboard/summary
//
// Sin configuración de boda, countdown es null y el progreso se calcula igualmente.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context(), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(summary)
}
