package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/wedding-api/internal/domain/repository"
)

// TodoTxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Toda mutación del árbol de tareas escribe sus cambios (tarea tocada + ancestros recalculados)
// a través de RunTodos para que la operación se aplique completa o no se aplique.
type TodoTxRunner interface {
	RunTodos(ctx context.Context, fn func(
		todos repository.TodoRepository,
		categories repository.TodoCategoryRepository,
	) error) error
}

// Clock fuente de la hora actual (inyectable en tests).
type Clock func() time.Time
