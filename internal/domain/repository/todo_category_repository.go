package repository

import (
	"context"

	"github.com/jhoicas/wedding-api/internal/domain/entity"
)

// TodoCategoryRepository define el puerto de persistencia para TodoCategory (DIP).
type TodoCategoryRepository interface {
	// ListByUser devuelve las categorías ordenadas por Order ascendente.
	ListByUser(ctx context.Context, userID string) ([]*entity.TodoCategory, error)
	GetByID(ctx context.Context, userID, id string) (*entity.TodoCategory, error)
	GetBySlug(ctx context.Context, userID, slug string) (*entity.TodoCategory, error)
	// CreateMany inserta en bloque (siembra de categorías por defecto).
	CreateMany(ctx context.Context, categories []*entity.TodoCategory) error
	Create(ctx context.Context, category *entity.TodoCategory) error
	Update(ctx context.Context, category *entity.TodoCategory) error
	Delete(ctx context.Context, userID, id string) error
	// MaxOrder mayor Order del usuario; 0 si no tiene categorías.
	MaxOrder(ctx context.Context, userID string) (int, error)
}
