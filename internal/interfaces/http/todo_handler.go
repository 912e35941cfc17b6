package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wedding-api/internal/application/dto"
	"github.com/jhoicas/wedding-api/internal/application/usecase"
)

// TodoHandler maneja las peticiones HTTP de tareas (protegido).
type TodoHandler struct {
	uc        *usecase.TodoUseCase
	checklist *usecase.ChecklistUseCase
}

// NewTodoHandler construye el handler.
func NewTodoHandler(uc *usecase.TodoUseCase, checklist *usecase.ChecklistUseCase) *TodoHandler {
	return &TodoHandler{uc: uc, checklist: checklist}
}

// List godoc
// @Summary      Listar tareas
// @Tags         todos
// @Security     Bearer
// @Produce      json
// @Param        categoryId  query  string  false  "Filtrar por categoría"
// @Param        tree        query  bool    false  "Devolver como árbol"
// @Param        stats       query  bool    false  "Incluir estadísticas"
// @Success      200  {object}  dto.TodoListResponse
// @Router       /api/todos [get]
func (h *TodoHandler) List(c *fiber.Ctx) error {
	var q dto.ListTodosQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de consulta inválidos"})
	}
	out, err := h.uc.List(c.Context(), GetUserID(c), q)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear tarea o subtarea
// @Tags         todos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTodoRequest  true  "Datos de la tarea"
// @Success      201   {object}  dto.TodoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/todos [post]
func (h *TodoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTodoRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener tarea
// @Tags         todos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la tarea"
// @Success      200  {object}  dto.TodoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/todos/{id} [get]
func (h *TodoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar tarea
// @Tags         todos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la tarea"
// @Param        body  body  dto.UpdateTodoRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.TodoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/todos/{id} [put]
func (h *TodoHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTodoRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Toggle invierte el estado de la tarea y propaga a subtareas y ancestros.
// POST /api/todos/:id/toggle
func (h *TodoHandler) Toggle(c *fiber.Ctx) error {
	out, err := h.uc.Toggle(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina la tarea con todas sus subtareas.
// DELETE /api/todos/:id
func (h *TodoHandler) Delete(c *fiber.Ctx) error {
	removed, err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.ClearCompletedResponse{Removed: removed})
}

// ClearCompleted elimina todas las tareas completadas.
// DELETE /api/todos/completed
func (h *TodoHandler) ClearCompleted(c *fiber.Ctx) error {
	out, err := h.uc.ClearCompleted(c.Context(), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Stats estadísticas globales y por categoría.
// GET /api/todos/stats
func (h *TodoHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Context(), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ExportPDF descarga la lista de preparativos.
// GET /api/todos/export.pdf
func (h *TodoHandler) ExportPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.checklist.Export(c.Context(), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}
