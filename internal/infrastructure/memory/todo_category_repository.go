package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/wedding-api/internal/domain"
	"github.com/jhoicas/wedding-api/internal/domain/entity"
	"github.com/jhoicas/wedding-api/internal/domain/repository"
)

var _ repository.TodoCategoryRepository = (*TodoCategoryRepo)(nil)

// TodoCategoryRepo implementación en memoria de TodoCategoryRepository.
type TodoCategoryRepo struct {
	s    *Store
	undo *undoLog
}

// NewTodoCategoryRepository construye el repositorio sobre s.
func NewTodoCategoryRepository(s *Store) *TodoCategoryRepo {
	return &TodoCategoryRepo{s: s}
}

// ListByUser lista por Order y, a igual orden, por fecha de creación.
func (r *TodoCategoryRepo) ListByUser(_ context.Context, userID string) ([]*entity.TodoCategory, error) {
	r.s.mu.RLock()
	out := make([]*entity.TodoCategory, 0)
	for _, c := range r.s.categories {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	r.s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// GetByID obtiene una categoría del usuario.
func (r *TodoCategoryRepo) GetByID(_ context.Context, userID, id string) (*entity.TodoCategory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok || c.UserID != userID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

// GetBySlug obtiene una categoría por defecto del usuario por su slug.
func (r *TodoCategoryRepo) GetBySlug(_ context.Context, userID, slug string) (*entity.TodoCategory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.categories {
		if c.UserID == userID && c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

// CreateMany inserta todas o ninguna. Un slug repetido para el usuario devuelve domain.ErrConflict.
func (r *TodoCategoryRepo) CreateMany(_ context.Context, categories []*entity.TodoCategory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range categories {
		if err := r.checkUnique(c); err != nil {
			return err
		}
	}
	for _, c := range categories {
		r.undo.saveCategory(r.s, c.ID)
		cp := *c
		r.s.categories[c.ID] = &cp
	}
	return nil
}

// Create persiste una categoría.
func (r *TodoCategoryRepo) Create(_ context.Context, category *entity.TodoCategory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkUnique(category); err != nil {
		return err
	}
	r.undo.saveCategory(r.s, category.ID)
	cp := *category
	r.s.categories[category.ID] = &cp
	return nil
}

// Update reemplaza una categoría existente.
func (r *TodoCategoryRepo) Update(_ context.Context, category *entity.TodoCategory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[category.ID]
	if !ok || c.UserID != category.UserID {
		return domain.ErrCategoryNotFound
	}
	r.undo.saveCategory(r.s, category.ID)
	cp := *category
	r.s.categories[category.ID] = &cp
	return nil
}

// Delete elimina una categoría del usuario.
func (r *TodoCategoryRepo) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.categories[id]; ok && c.UserID == userID {
		r.undo.saveCategory(r.s, id)
		delete(r.s.categories, id)
	}
	return nil
}

// MaxOrder mayor Order del usuario.
func (r *TodoCategoryRepo) MaxOrder(_ context.Context, userID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	last := 0
	for _, c := range r.s.categories {
		if c.UserID == userID && c.Order > last {
			last = c.Order
		}
	}
	return last, nil
}

// checkUnique requiere r.s.mu tomado.
func (r *TodoCategoryRepo) checkUnique(c *entity.TodoCategory) error {
	if _, ok := r.s.categories[c.ID]; ok {
		return domain.ErrConflict
	}
	if c.Slug == "" {
		return nil
	}
	for _, other := range r.s.categories {
		if other.UserID == c.UserID && other.Slug == c.Slug {
			return domain.ErrConflict
		}
	}
	return nil
}
