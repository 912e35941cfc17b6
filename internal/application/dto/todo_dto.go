package dto

import "time"

// CreateTodoRequest entrada para crear una tarea. ParentID ausente = tarea raíz.
type CreateTodoRequest struct {
	Text       string     `json:"text" validate:"required,max=500"`
	CategoryID string     `json:"categoryId" validate:"omitempty,max=64"`
	Priority   string     `json:"priority" validate:"omitempty,oneof=high medium low"`
	ParentID   string     `json:"parentId,omitempty" validate:"omitempty,max=64"`
	Notes      string     `json:"notes,omitempty" validate:"max=1000"`
	DueDate    *time.Time `json:"dueDate,omitempty"`
}

// UpdateTodoRequest actualización parcial. ParentID "" convierte la tarea en raíz;
// ClearDueDate elimina la fecha límite.
type UpdateTodoRequest struct {
	Text         *string    `json:"text" validate:"omitempty,max=500"`
	Completed    *bool      `json:"completed"`
	CategoryID   *string    `json:"categoryId" validate:"omitempty,max=64"`
	Priority     *string    `json:"priority" validate:"omitempty,oneof=high medium low"`
	ParentID     *string    `json:"parentId" validate:"omitempty,max=64"`
	Notes        *string    `json:"notes" validate:"omitempty,max=1000"`
	DueDate      *time.Time `json:"dueDate"`
	ClearDueDate bool       `json:"clearDueDate"`
}

// TodoResponse salida de una tarea. Children solo se rellena en vista de árbol.
type TodoResponse struct {
	ID         string         `json:"id"`
	Text       string         `json:"text"`
	Completed  bool           `json:"completed"`
	CategoryID string         `json:"categoryId"`
	Priority   string         `json:"priority"`
	ParentID   string         `json:"parentId,omitempty"`
	Notes      string         `json:"notes,omitempty"`
	DueDate    *time.Time     `json:"dueDate,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	Children   []TodoResponse `json:"children,omitempty"`
}

// ListTodosQuery filtros de GET /todos.
type ListTodosQuery struct {
	CategoryID string `query:"categoryId"`
	Tree       bool   `query:"tree"`
	Stats      bool   `query:"stats"`
}

// TodoListResponse lista de tareas (planas o en árbol) con estadísticas opcionales.
type TodoListResponse struct {
	Items []TodoResponse     `json:"items"`
	Stats *TodoStatsResponse `json:"stats,omitempty"`
}

// TodoCountsResponse contadores total/completadas/pendientes.
type TodoCountsResponse struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// TodoStatsResponse estadísticas globales y por categoría.
type TodoStatsResponse struct {
	TodoCountsResponse
	ByCategory map[string]TodoCountsResponse `json:"byCategory"`
}

// ClearCompletedResponse resultado de eliminar las tareas completadas.
type ClearCompletedResponse struct {
	Removed []string `json:"removed"`
}
