package dto

import "time"

// CreateTodoCategoryRequest entrada para crear una categoría. Color e icono tienen valor por defecto.
type CreateTodoCategoryRequest struct {
	Name  string `json:"name" validate:"required,max=50"`
	Color string `json:"color" validate:"omitempty,oneof=rose pink purple blue orange green gray indigo"`
	Icon  string `json:"icon" validate:"omitempty,max=10"`
	Order *int   `json:"order" validate:"omitempty,min=1"`
}

// UpdateTodoCategoryRequest actualización parcial de una categoría.
type UpdateTodoCategoryRequest struct {
	Name  *string `json:"name" validate:"omitempty,max=50"`
	Color *string `json:"color" validate:"omitempty,oneof=rose pink purple blue orange green gray indigo"`
	Icon  *string `json:"icon" validate:"omitempty,max=10"`
	Order *int    `json:"order" validate:"omitempty,min=1"`
}

// TodoCategoryResponse salida de una categoría.
type TodoCategoryResponse struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug,omitempty"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
