package memory

import (
	"context"

	"github.com/jhoicas/wedding-api/internal/application/usecase"
	"github.com/jhoicas/wedding-api/internal/domain/repository"
)

var _ usecase.TodoTxRunner = (*TxRunner)(nil)

// TxRunner serializa las transacciones de tareas y deshace los cambios si fn falla.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre s.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// RunTodos ejecuta fn con repos sobre el mismo almacén que anotan cada escritura.
// Si fn falla se reponen solo las tareas y categorías que fn tocó.
func (r *TxRunner) RunTodos(ctx context.Context, fn func(
	todos repository.TodoRepository,
	categories repository.TodoCategoryRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	undo := newUndoLog()
	todos := &TodoRepo{s: r.s, undo: undo}
	categories := &TodoCategoryRepo{s: r.s, undo: undo}
	if err := fn(todos, categories); err != nil {
		r.s.rollback(undo)
		return err
	}
	return nil
}
