package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wedding-api/internal/application/dto"
	"github.com/jhoicas/wedding-api/internal/application/usecase"
)

// ImportHandler recibe los datos exportados desde el almacenamiento del navegador.
type ImportHandler struct {
	uc *usecase.LocalImportUseCase
}

// NewImportHandler construye el handler.
func NewImportHandler(uc *usecase.LocalImportUseCase) *ImportHandler {
	return &ImportHandler{uc: uc}
}

// ImportLocal godoc
// @Summary      Importar datos locales
// @Description  Agrega categorías, tareas y configuración exportadas del navegador a la cuenta.
// @Tags         import
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LocalExport  true  "Exportación local"
// @Success      200   {object}  dto.LocalImportResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/import/local [post]
func (h *ImportHandler) ImportLocal(c *fiber.Ctx) error {
	var in dto.LocalExport
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Import(c.Context(), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
