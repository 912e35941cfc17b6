package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/wedding-api/internal/domain"
	"github.com/jhoicas/wedding-api/internal/domain/entity"
	"github.com/jhoicas/wedding-api/internal/domain/repository"
)

var _ repository.TodoRepository = (*TodoRepo)(nil)

// TodoRepo implementación de TodoRepository sobre PostgreSQL (usable con pool o tx).
type TodoRepo struct {
	q Querier
}

// NewTodoRepository construye el adaptador de tareas. Pasar pool o tx (Querier).
func NewTodoRepository(q Querier) *TodoRepo {
	return &TodoRepo{q: q}
}

const todoColumns = `id, user_id, text, completed, category_id, priority,
	COALESCE(parent_id, ''), notes, due_date, created_at, updated_at`

// ListByUser lista en orden de creación; seq desempata registros con el mismo created_at.
func (r *TodoRepo) ListByUser(ctx context.Context, userID, categoryID string) ([]*entity.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE user_id = $1`
	args := []any{userID}
	if categoryID != "" {
		query += ` AND category_id = $2`
		args = append(args, categoryID)
	}
	query += ` ORDER BY created_at, seq`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// GetByID obtiene una tarea del usuario.
func (r *TodoRepo) GetByID(ctx context.Context, userID, id string) (*entity.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1 AND user_id = $2`
	t, err := scanTodo(r.q.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get todo: %w", err)
	}
	return t, nil
}

// Create inserta una tarea.
func (r *TodoRepo) Create(ctx context.Context, t *entity.Todo) error {
	query := `
		INSERT INTO todos (id, user_id, text, completed, category_id, priority, parent_id, notes, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.UserID, t.Text, t.Completed, t.CategoryID, t.Priority,
		nullIfEmpty(t.ParentID), t.Notes, t.DueDate, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert todo: %w", err)
	}
	return nil
}

// Update reescribe los campos editables de la tarea.
func (r *TodoRepo) Update(ctx context.Context, t *entity.Todo) error {
	query := `
		UPDATE todos SET text = $3, completed = $4, category_id = $5, priority = $6,
			parent_id = $7, notes = $8, due_date = $9, updated_at = $10
		WHERE id = $1 AND user_id = $2`
	tag, err := r.q.Exec(ctx, query,
		t.ID, t.UserID, t.Text, t.Completed, t.CategoryID, t.Priority,
		nullIfEmpty(t.ParentID), t.Notes, t.DueDate, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

// Delete elimina una tarea (las subtareas las elimina el caso de uso con DeleteMany).
func (r *TodoRepo) Delete(ctx context.Context, userID, id string) error {
	return r.DeleteMany(ctx, userID, []string{id})
}

// DeleteMany elimina las tareas indicadas del usuario.
func (r *TodoRepo) DeleteMany(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.q.Exec(ctx, `DELETE FROM todos WHERE user_id = $1 AND id = ANY($2)`, userID, ids)
	if err != nil {
		return fmt.Errorf("delete todos: %w", err)
	}
	return nil
}

// CountByCategory cuenta las tareas que referencian la categoría.
func (r *TodoRepo) CountByCategory(ctx context.Context, userID, categoryID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM todos WHERE user_id = $1 AND category_id = $2`, userID, categoryID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count todos by category: %w", err)
	}
	return n, nil
}

// StatsByUser agrupa por categoría y estado en una sola consulta.
func (r *TodoRepo) StatsByUser(ctx context.Context, userID string) (*entity.TodoStats, error) {
	query := `
		SELECT category_id, completed, COUNT(*)
		FROM todos WHERE user_id = $1
		GROUP BY category_id, completed`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("todo stats: %w", err)
	}
	defer rows.Close()

	stats := &entity.TodoStats{ByCategory: make(map[string]entity.TodoCounts)}
	for rows.Next() {
		var (
			categoryID string
			completed  bool
			n          int
		)
		if err := rows.Scan(&categoryID, &completed, &n); err != nil {
			return nil, fmt.Errorf("scan todo stats: %w", err)
		}
		c := stats.ByCategory[categoryID]
		c.Total += n
		stats.Total += n
		if completed {
			c.Completed += n
			stats.Completed += n
		} else {
			c.Pending += n
			stats.Pending += n
		}
		stats.ByCategory[categoryID] = c
	}
	return stats, rows.Err()
}

func scanTodo(row pgx.Row) (*entity.Todo, error) {
	var t entity.Todo
	err := row.Scan(
		&t.ID, &t.UserID, &t.Text, &t.Completed, &t.CategoryID, &t.Priority,
		&t.ParentID, &t.Notes, &t.DueDate, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
