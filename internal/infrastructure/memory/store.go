// Package memory implementa los puertos de persistencia en memoria del proceso.
// Es la estrategia de almacenamiento "local": sin base de datos, útil en desarrollo y tests.
package memory

import (
	"sync"

	"github.com/jhoicas/wedding-api/internal/domain/entity"
)

// Store estado compartido por los repositorios en memoria.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	seq  int64

	users      map[string]*entity.User
	todos      map[string]*todoRecord
	categories map[string]*entity.TodoCategory
	settings   map[string]*entity.WeddingSettings // por userID
}

// todoRecord guarda la tarea con su número de inserción para listar en orden estable.
type todoRecord struct {
	todo entity.Todo
	seq  int64
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		users:      make(map[string]*entity.User),
		todos:      make(map[string]*todoRecord),
		categories: make(map[string]*entity.TodoCategory),
		settings:   make(map[string]*entity.WeddingSettings),
	}
}

// undoLog guarda el valor previo de cada clave que toca una transacción, la primera
// vez que la toca. nil significa que la clave no existía. Solo se deshacen esas claves:
// las escrituras de otras peticiones sobre otras claves sobreviven al rollback.
type undoLog struct {
	todos      map[string]*todoRecord
	categories map[string]*entity.TodoCategory
}

func newUndoLog() *undoLog {
	return &undoLog{
		todos:      make(map[string]*todoRecord),
		categories: make(map[string]*entity.TodoCategory),
	}
}

// saveTodo requiere s.mu tomado. Un log nil (fuera de transacción) no registra nada.
func (l *undoLog) saveTodo(s *Store, id string) {
	if l == nil {
		return
	}
	if _, seen := l.todos[id]; seen {
		return
	}
	var prev *todoRecord
	if rec, ok := s.todos[id]; ok {
		prev = &todoRecord{todo: copyTodo(rec.todo), seq: rec.seq}
	}
	l.todos[id] = prev
}

// saveCategory requiere s.mu tomado.
func (l *undoLog) saveCategory(s *Store, id string) {
	if l == nil {
		return
	}
	if _, seen := l.categories[id]; seen {
		return
	}
	var prev *entity.TodoCategory
	if c, ok := s.categories[id]; ok {
		cp := *c
		prev = &cp
	}
	l.categories[id] = prev
}

// rollback repone las claves registradas en l.
func (s *Store) rollback(l *undoLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, prev := range l.todos {
		if prev == nil {
			delete(s.todos, id)
			continue
		}
		s.todos[id] = prev
	}
	for id, prev := range l.categories {
		if prev == nil {
			delete(s.categories, id)
			continue
		}
		s.categories[id] = prev
	}
}

func copyTodo(t entity.Todo) entity.Todo {
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	return t
}
