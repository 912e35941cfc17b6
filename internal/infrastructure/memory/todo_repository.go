package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/wedding-api/internal/domain"
	"github.com/jhoicas/wedding-api/internal/domain/entity"
	"github.com/jhoicas/wedding-api/internal/domain/repository"
)

var _ repository.TodoRepository = (*TodoRepo)(nil)

// TodoRepo implementación en memoria de TodoRepository.
type TodoRepo struct {
	s    *Store
	undo *undoLog
}

// NewTodoRepository construye el repositorio sobre s.
func NewTodoRepository(s *Store) *TodoRepo {
	return &TodoRepo{s: s}
}

// ListByUser lista por CreatedAt y orden de inserción.
func (r *TodoRepo) ListByUser(_ context.Context, userID, categoryID string) ([]*entity.Todo, error) {
	r.s.mu.RLock()
	recs := make([]*todoRecord, 0)
	for _, rec := range r.s.todos {
		if rec.todo.UserID != userID {
			continue
		}
		if categoryID != "" && rec.todo.CategoryID != categoryID {
			continue
		}
		recs = append(recs, &todoRecord{todo: copyTodo(rec.todo), seq: rec.seq})
	}
	r.s.mu.RUnlock()

	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if !a.todo.CreatedAt.Equal(b.todo.CreatedAt) {
			return a.todo.CreatedAt.Before(b.todo.CreatedAt)
		}
		return a.seq < b.seq
	})
	out := make([]*entity.Todo, 0, len(recs))
	for _, rec := range recs {
		t := rec.todo
		out = append(out, &t)
	}
	return out, nil
}

// GetByID obtiene una tarea del usuario.
func (r *TodoRepo) GetByID(_ context.Context, userID, id string) (*entity.Todo, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.todos[id]
	if !ok || rec.todo.UserID != userID {
		return nil, nil
	}
	t := copyTodo(rec.todo)
	return &t, nil
}

// Create persiste una tarea nueva.
func (r *TodoRepo) Create(_ context.Context, todo *entity.Todo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.todos[todo.ID]; ok {
		return domain.ErrConflict
	}
	r.undo.saveTodo(r.s, todo.ID)
	r.s.seq++
	r.s.todos[todo.ID] = &todoRecord{todo: copyTodo(*todo), seq: r.s.seq}
	return nil
}

// Update reemplaza una tarea existente.
func (r *TodoRepo) Update(_ context.Context, todo *entity.Todo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.todos[todo.ID]
	if !ok || rec.todo.UserID != todo.UserID {
		return domain.ErrTodoNotFound
	}
	r.undo.saveTodo(r.s, todo.ID)
	rec.todo = copyTodo(*todo)
	return nil
}

// Delete elimina una tarea (solo el registro; la cascada la decide la aplicación).
func (r *TodoRepo) Delete(ctx context.Context, userID, id string) error {
	return r.DeleteMany(ctx, userID, []string{id})
}

// DeleteMany elimina varias tareas del usuario. IDs inexistentes se ignoran.
func (r *TodoRepo) DeleteMany(_ context.Context, userID string, ids []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range ids {
		if rec, ok := r.s.todos[id]; ok && rec.todo.UserID == userID {
			r.undo.saveTodo(r.s, id)
			delete(r.s.todos, id)
		}
	}
	return nil
}

// CountByCategory cuenta las tareas que referencian la categoría.
func (r *TodoRepo) CountByCategory(_ context.Context, userID, categoryID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, rec := range r.s.todos {
		if rec.todo.UserID == userID && rec.todo.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

// StatsByUser cuenta cada registro una vez (cada registro es un nodo del bosque).
func (r *TodoRepo) StatsByUser(_ context.Context, userID string) (*entity.TodoStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	stats := &entity.TodoStats{ByCategory: make(map[string]entity.TodoCounts)}
	for _, rec := range r.s.todos {
		if rec.todo.UserID != userID {
			continue
		}
		stats.Add(rec.todo.Completed)
		c := stats.ByCategory[rec.todo.CategoryID]
		c.Add(rec.todo.Completed)
		stats.ByCategory[rec.todo.CategoryID] = c
	}
	return stats, nil
}
