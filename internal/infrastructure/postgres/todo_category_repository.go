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

var _ repository.TodoCategoryRepository = (*TodoCategoryRepo)(nil)

// TodoCategoryRepo implementación de TodoCategoryRepository sobre PostgreSQL.
type TodoCategoryRepo struct {
	q Querier
}

// NewTodoCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTodoCategoryRepository(q Querier) *TodoCategoryRepo {
	return &TodoCategoryRepo{q: q}
}

const categoryColumns = `id, user_id, COALESCE(slug, ''), name, color, icon, sort_order, created_at, updated_at`

// ListByUser lista las categorías del usuario por orden.
func (r *TodoCategoryRepo) ListByUser(ctx context.Context, userID string) ([]*entity.TodoCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM todo_categories WHERE user_id = $1 ORDER BY sort_order, created_at, id`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list todo categories: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.TodoCategory, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan todo category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// GetByID obtiene una categoría del usuario.
func (r *TodoCategoryRepo) GetByID(ctx context.Context, userID, id string) (*entity.TodoCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM todo_categories WHERE id = $1 AND user_id = $2`
	return r.findOne(ctx, query, id, userID)
}

// GetBySlug obtiene una de las categorías sembradas por su slug.
func (r *TodoCategoryRepo) GetBySlug(ctx context.Context, userID, slug string) (*entity.TodoCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM todo_categories WHERE user_id = $1 AND slug = $2`
	return r.findOne(ctx, query, userID, slug)
}

// CreateMany inserta en un solo batch. Si alguna fila viola un índice único no se inserta ninguna.
func (r *TodoCategoryRepo) CreateMany(ctx context.Context, categories []*entity.TodoCategory) error {
	if len(categories) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, c := range categories {
		batch.Queue(insertCategory, categoryArgs(c)...)
	}
	br := r.q.SendBatch(ctx, batch)
	for range categories {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			if isUniqueViolation(err) {
				return domain.ErrConflict
			}
			return fmt.Errorf("insert todo categories: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("insert todo categories: %w", err)
	}
	return nil
}

// Create inserta una categoría.
func (r *TodoCategoryRepo) Create(ctx context.Context, c *entity.TodoCategory) error {
	if _, err := r.q.Exec(ctx, insertCategory, categoryArgs(c)...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert todo category: %w", err)
	}
	return nil
}

// Update reescribe nombre, color, icono y orden.
func (r *TodoCategoryRepo) Update(ctx context.Context, c *entity.TodoCategory) error {
	query := `
		UPDATE todo_categories SET name = $3, color = $4, icon = $5, sort_order = $6, updated_at = $7
		WHERE id = $1 AND user_id = $2`
	tag, err := r.q.Exec(ctx, query, c.ID, c.UserID, c.Name, c.Color, c.Icon, c.Order, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update todo category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// Delete elimina una categoría del usuario.
func (r *TodoCategoryRepo) Delete(ctx context.Context, userID, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM todo_categories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete todo category: %w", err)
	}
	return nil
}

// MaxOrder mayor sort_order del usuario (0 sin categorías).
func (r *TodoCategoryRepo) MaxOrder(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COALESCE(MAX(sort_order), 0) FROM todo_categories WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("max todo category order: %w", err)
	}
	return n, nil
}

const insertCategory = `
	INSERT INTO todo_categories (id, user_id, slug, name, color, icon, sort_order, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func categoryArgs(c *entity.TodoCategory) []any {
	return []any{c.ID, c.UserID, nullIfEmpty(c.Slug), c.Name, c.Color, c.Icon, c.Order, c.CreatedAt, c.UpdatedAt}
}

func (r *TodoCategoryRepo) findOne(ctx context.Context, query string, args ...any) (*entity.TodoCategory, error) {
	c, err := scanCategory(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get todo category: %w", err)
	}
	return c, nil
}

func scanCategory(row pgx.Row) (*entity.TodoCategory, error) {
	var c entity.TodoCategory
	err := row.Scan(&c.ID, &c.UserID, &c.Slug, &c.Name, &c.Color, &c.Icon, &c.Order, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
