package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/wedding-api/internal/application/usecase"
	"github.com/jhoicas/wedding-api/internal/domain/entity"
	"github.com/jhoicas/wedding-api/internal/domain/repository"
)

var _ usecase.TodoTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunTodos inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Dos mutaciones concurrentes del árbol de un mismo usuario se serializan.
func (r *TxRunner) RunTodos(ctx context.Context, fn func(
	todos repository.TodoRepository,
	categories repository.TodoCategoryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&lockingTodoRepo{TodoRepo: NewTodoRepository(tx)}, NewTodoCategoryRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// lockingTodoRepo toma un advisory lock por usuario antes de la primera lectura dentro de la tx,
// de modo que mutar el árbol y borrar una categoría del mismo usuario se serializan.
type lockingTodoRepo struct {
	*TodoRepo
	locked bool
}

func (r *lockingTodoRepo) lock(ctx context.Context, userID string) error {
	if r.locked {
		return nil
	}
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, userID); err != nil {
		return fmt.Errorf("lock todos: %w", err)
	}
	r.locked = true
	return nil
}

func (r *lockingTodoRepo) ListByUser(ctx context.Context, userID, categoryID string) ([]*entity.Todo, error) {
	if err := r.lock(ctx, userID); err != nil {
		return nil, err
	}
	return r.TodoRepo.ListByUser(ctx, userID, categoryID)
}

func (r *lockingTodoRepo) CountByCategory(ctx context.Context, userID, categoryID string) (int, error) {
	if err := r.lock(ctx, userID); err != nil {
		return 0, err
	}
	return r.TodoRepo.CountByCategory(ctx, userID, categoryID)
}
