package usecase

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jhoicas/wedding-api/internal/application/dto"
	"github.com/jhoicas/wedding-api/internal/domain"
	"github.com/jhoicas/wedding-api/internal/domain/entity"
	"github.com/jhoicas/wedding-api/internal/domain/repository"
	"github.com/jhoicas/wedding-api/internal/domain/todotree"
	"github.com/jhoicas/wedding-api/pkg/logger"
)

const (
	maxTodoTextLen  = 500
	maxTodoNotesLen = 1000
)

// TodoUseCase casos de uso de la lista de tareas jerárquica.
//
// Cada mutación carga la lista completa del usuario dentro de la transacción, reconstruye
// el bosque, aplica la operación pura de todotree y persiste solo la diferencia.
type TodoUseCase struct {
	todos      repository.TodoRepository
	categories *CategoryUseCase
	tx         TodoTxRunner
	log        *logger.Logger
	now        Clock
}

// NewTodoUseCase construye el caso de uso.
func NewTodoUseCase(todos repository.TodoRepository, categories *CategoryUseCase, tx TodoTxRunner, log *logger.Logger) *TodoUseCase {
	return &TodoUseCase{todos: todos, categories: categories, tx: tx, log: log.Component("todos"), now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *TodoUseCase) WithClock(c Clock) *TodoUseCase {
	uc.now = c
	return uc
}

// List devuelve las tareas del usuario. En vista de árbol las subtareas van anidadas en
// children y el filtro por categoría se aplica a las raíces; en vista plana se filtra cada registro.
func (uc *TodoUseCase) List(ctx context.Context, userID string, q dto.ListTodosQuery) (*dto.TodoListResponse, error) {
	out := &dto.TodoListResponse{Items: []dto.TodoResponse{}}

	var forest todotree.Forest
	if q.Tree || q.Stats {
		all, err := uc.todos.ListByUser(ctx, userID, "")
		if err != nil {
			return nil, err
		}
		forest = todotree.Build(all)
	}

	if q.Tree {
		for _, root := range forest {
			if q.CategoryID == "" || root.CategoryID == q.CategoryID {
				out.Items = append(out.Items, toTodoTree(root))
			}
		}
	} else {
		flat, err := uc.todos.ListByUser(ctx, userID, q.CategoryID)
		if err != nil {
			return nil, err
		}
		for _, t := range flat {
			out.Items = append(out.Items, *toTodoResponse(t))
		}
	}

	if q.Stats {
		stats, err := uc.aggregate(ctx, userID, forest)
		if err != nil {
			return nil, err
		}
		out.Stats = stats
	}
	return out, nil
}

// Get devuelve una tarea con sus subtareas.
func (uc *TodoUseCase) Get(ctx context.Context, userID, id string) (*dto.TodoResponse, error) {
	all, err := uc.todos.ListByUser(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	n := todotree.Build(all).Find(id)
	if n == nil {
		return nil, domain.ErrTodoNotFound
	}
	res := toTodoTree(n)
	return &res, nil
}

// Create agrega una tarea raíz o, con ParentID, una subtarea. Texto vacío o fecha límite
// no futura se rechazan sin crear nada.
func (uc *TodoUseCase) Create(ctx context.Context, userID string, in dto.CreateTodoRequest) (*dto.TodoResponse, error) {
	now := uc.now()
	text, err := todoText(in.Text)
	if err != nil {
		return nil, err
	}
	notes, err := todoNotes(in.Notes)
	if err != nil {
		return nil, err
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}
	if !entity.IsValidPriority(priority) {
		return nil, domain.NewValidationError("priority", "prioridad no admitida (high, medium, low)")
	}
	if err := futureDueDate(in.DueDate, now); err != nil {
		return nil, err
	}
	category, err := uc.categories.resolve(ctx, userID, in.CategoryID)
	if err != nil {
		return nil, err
	}

	todo := &entity.Todo{
		ID:         uuid.New().String(),
		UserID:     userID,
		Text:       text,
		CategoryID: category.ID,
		Priority:   priority,
		ParentID:   in.ParentID,
		Notes:      notes,
		DueDate:    in.DueDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var created *todotree.Node
	err = uc.mutateIn(ctx, userID, category.ID, func(f todotree.Forest) (todotree.Forest, error) {
		after, err := todotree.Add(f, todo)
		if err != nil {
			return nil, err
		}
		created = after.Find(todo.ID)
		return after, nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Debug().Str("user_id", userID).Str("todo_id", todo.ID).Str("parent_id", todo.ParentID).Msg("tarea creada")
	res := toTodoTree(created)
	return &res, nil
}

// Update aplica una actualización parcial. Si incluye completed se usan las reglas de Toggle.
func (uc *TodoUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateTodoRequest) (*dto.TodoResponse, error) {
	patch := todotree.Patch{
		Completed:    in.Completed,
		ParentID:     in.ParentID,
		ClearDueDate: in.ClearDueDate,
	}
	if in.Text != nil {
		text, err := todoText(*in.Text)
		if err != nil {
			return nil, err
		}
		patch.Text = &text
	}
	if in.Notes != nil {
		notes, err := todoNotes(*in.Notes)
		if err != nil {
			return nil, err
		}
		patch.Notes = &notes
	}
	if in.Priority != nil {
		if !entity.IsValidPriority(*in.Priority) {
			return nil, domain.NewValidationError("priority", "prioridad no admitida (high, medium, low)")
		}
		patch.Priority = in.Priority
	}
	if !in.ClearDueDate && in.DueDate != nil {
		if err := futureDueDate(in.DueDate, uc.now()); err != nil {
			return nil, err
		}
		patch.DueDate = in.DueDate
	}
	if in.CategoryID != nil {
		category, err := uc.categories.resolve(ctx, userID, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		patch.CategoryID = &category.ID
	}

	categoryID := ""
	if patch.CategoryID != nil {
		categoryID = *patch.CategoryID
	}
	return uc.mutateOne(ctx, userID, id, categoryID, func(f todotree.Forest) (todotree.Forest, error) {
		return todotree.Update(f, id, patch)
	})
}

// Toggle alterna el estado de completado (ver todotree.Toggle).
func (uc *TodoUseCase) Toggle(ctx context.Context, userID, id string) (*dto.TodoResponse, error) {
	return uc.mutateOne(ctx, userID, id, "", func(f todotree.Forest) (todotree.Forest, error) {
		return todotree.Toggle(f, id)
	})
}

// Delete elimina la tarea y todo su subárbol. Devuelve los IDs eliminados.
func (uc *TodoUseCase) Delete(ctx context.Context, userID, id string) ([]string, error) {
	var removed []string
	err := uc.mutate(ctx, userID, func(f todotree.Forest) (todotree.Forest, error) {
		after, ids, err := todotree.Delete(f, id)
		removed = ids
		return after, err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Debug().Str("user_id", userID).Str("todo_id", id).Int("removed", len(removed)).Msg("tarea eliminada")
	return removed, nil
}

// ClearCompleted elimina todas las tareas completadas (con sus subárboles).
func (uc *TodoUseCase) ClearCompleted(ctx context.Context, userID string) (*dto.ClearCompletedResponse, error) {
	var removed []string
	err := uc.mutate(ctx, userID, func(f todotree.Forest) (todotree.Forest, error) {
		after, ids := todotree.ClearCompleted(f)
		removed = ids
		return after, nil
	})
	if err != nil {
		return nil, err
	}
	if removed == nil {
		removed = []string{}
	}
	return &dto.ClearCompletedResponse{Removed: removed}, nil
}

// Stats estadísticas del usuario: todos los nodos a cualquier profundidad, por categoría.
func (uc *TodoUseCase) Stats(ctx context.Context, userID string) (*dto.TodoStatsResponse, error) {
	all, err := uc.todos.ListByUser(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	return uc.aggregate(ctx, userID, todotree.Build(all))
}

func (uc *TodoUseCase) aggregate(ctx context.Context, userID string, f todotree.Forest) (*dto.TodoStatsResponse, error) {
	categories, err := uc.categories.listEntities(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	stats := todotree.Aggregate(f, ids)
	return toTodoStatsResponse(&stats), nil
}

// mutateOne ejecuta op (ver mutateIn) y devuelve la tarea id resultante con sus subtareas.
func (uc *TodoUseCase) mutateOne(ctx context.Context, userID, id, categoryID string, op func(todotree.Forest) (todotree.Forest, error)) (*dto.TodoResponse, error) {
	var node *todotree.Node
	err := uc.mutateIn(ctx, userID, categoryID, func(f todotree.Forest) (todotree.Forest, error) {
		after, err := op(f)
		if err != nil {
			return nil, err
		}
		node = after.Find(id)
		return after, nil
	})
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, domain.ErrTodoNotFound
	}
	res := toTodoTree(node)
	return &res, nil
}

// mutate carga el bosque del usuario, aplica op y persiste la diferencia en una transacción.
func (uc *TodoUseCase) mutate(ctx context.Context, userID string, op func(todotree.Forest) (todotree.Forest, error)) error {
	return uc.mutateIn(ctx, userID, "", op)
}

// mutateIn como mutate; con categoryID comprueba dentro de la transacción que la categoría
// sigue existiendo, para no dejar tareas apuntando a una categoría recién eliminada.
func (uc *TodoUseCase) mutateIn(ctx context.Context, userID, categoryID string, op func(todotree.Forest) (todotree.Forest, error)) error {
	return uc.tx.RunTodos(ctx, func(todos repository.TodoRepository, categories repository.TodoCategoryRepository) error {
		all, err := todos.ListByUser(ctx, userID, "")
		if err != nil {
			return err
		}
		if categoryID != "" {
			c, err := categories.GetByID(ctx, userID, categoryID)
			if err != nil {
				return err
			}
			if c == nil {
				return domain.NewValidationError("categoryId", "la categoría no existe")
			}
		}
		before := todotree.Build(all)
		after, err := op(before)
		if err != nil {
			return err
		}
		ch := todotree.Diff(before, after)
		if err := applyChanges(ctx, todos, userID, ch, uc.now()); err != nil {
			uc.log.Error().Err(err).Str("user_id", userID).Msg("error persistiendo cambios de tareas")
			return err
		}
		syncTimes(after, ch)
		return nil
	})
}

// applyChanges escribe altas, modificaciones y bajas. Los nodos modificados reciben UpdatedAt.
func applyChanges(ctx context.Context, todos repository.TodoRepository, userID string, ch todotree.Changes, now time.Time) error {
	for _, t := range ch.Created {
		if t.CreatedAt.IsZero() {
			t.CreatedAt = now
		}
		t.UpdatedAt = now
		if err := todos.Create(ctx, t); err != nil {
			return err
		}
	}
	for _, t := range ch.Updated {
		t.UpdatedAt = now
		if err := todos.Update(ctx, t); err != nil {
			return err
		}
	}
	if len(ch.Removed) > 0 {
		return todos.DeleteMany(ctx, userID, ch.Removed)
	}
	return nil
}

// syncTimes lleva a los nodos de after las fechas que applyChanges fijó al persistir.
func syncTimes(after todotree.Forest, ch todotree.Changes) {
	stamped := make(map[string]*entity.Todo, len(ch.Created)+len(ch.Updated))
	for _, t := range ch.Created {
		stamped[t.ID] = t
	}
	for _, t := range ch.Updated {
		stamped[t.ID] = t
	}
	if len(stamped) == 0 {
		return
	}
	after.Walk(func(n *todotree.Node, _ int) bool {
		if t, ok := stamped[n.ID]; ok {
			n.CreatedAt = t.CreatedAt
			n.UpdatedAt = t.UpdatedAt
		}
		return true
	})
}

func todoText(raw string) (string, error) {
	text := domain.NormalizeText(raw)
	if text == "" {
		return "", domain.NewValidationError("text", "el texto de la tarea no puede estar vacío")
	}
	if utf8.RuneCountInString(text) > maxTodoTextLen {
		return "", domain.NewValidationError("text", "el texto no puede superar 500 caracteres")
	}
	return text, nil
}

func todoNotes(raw string) (string, error) {
	notes := domain.NormalizeText(raw)
	if utf8.RuneCountInString(notes) > maxTodoNotesLen {
		return "", domain.NewValidationError("notes", "las notas no pueden superar 1000 caracteres")
	}
	return notes, nil
}

func futureDueDate(d *time.Time, now time.Time) error {
	if d != nil && !d.After(now) {
		return domain.NewValidationError("dueDate", "la fecha límite debe ser futura")
	}
	return nil
}

func toTodoResponse(t *entity.Todo) *dto.TodoResponse {
	if t == nil {
		return nil
	}
	return &dto.TodoResponse{
		ID:         t.ID,
		Text:       t.Text,
		Completed:  t.Completed,
		CategoryID: t.CategoryID,
		Priority:   t.Priority,
		ParentID:   t.ParentID,
		Notes:      t.Notes,
		DueDate:    t.DueDate,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

func toTodoTree(n *todotree.Node) dto.TodoResponse {
	res := *toTodoResponse(&n.Todo)
	if len(n.Children) > 0 {
		res.Children = make([]dto.TodoResponse, 0, len(n.Children))
		for _, c := range n.Children {
			res.Children = append(res.Children, toTodoTree(c))
		}
	}
	return res
}

func toTodoStatsResponse(s *entity.TodoStats) *dto.TodoStatsResponse {
	res := &dto.TodoStatsResponse{
		TodoCountsResponse: toTodoCountsResponse(s.TodoCounts),
		ByCategory:         make(map[string]dto.TodoCountsResponse, len(s.ByCategory)),
	}
	for id, c := range s.ByCategory {
		res.ByCategory[id] = toTodoCountsResponse(c)
	}
	return res
}

func toTodoCountsResponse(c entity.TodoCounts) dto.TodoCountsResponse {
	return dto.TodoCountsResponse{Total: c.Total, Completed: c.Completed, Pending: c.Pending}
}
