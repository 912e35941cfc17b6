package repository

import (
	"context"

	"github.com/jhoicas/wedding-api/internal/domain/entity"
)

// TodoRepository define el puerto de persistencia para Todo (DIP).
// Los registros son planos; la jerarquía la reconstruye el paquete todotree.
type TodoRepository interface {
	// ListByUser devuelve las tareas del usuario en orden de creación. categoryID vacío = todas.
	ListByUser(ctx context.Context, userID, categoryID string) ([]*entity.Todo, error)
	// GetByID devuelve (nil, nil) si la tarea no existe o pertenece a otro usuario.
	GetByID(ctx context.Context, userID, id string) (*entity.Todo, error)
	Create(ctx context.Context, todo *entity.Todo) error
	Update(ctx context.Context, todo *entity.Todo) error
	Delete(ctx context.Context, userID, id string) error
	DeleteMany(ctx context.Context, userID string, ids []string) error
	// CountByCategory número de tareas (a cualquier profundidad) que referencian la categoría.
	CountByCategory(ctx context.Context, userID, categoryID string) (int, error)
	// StatsByUser contadores calculados en el almacén, sin reconstruir el árbol.
	StatsByUser(ctx context.Context, userID string) (*entity.TodoStats, error)
}
