package entity

import "time"

// Prioridades válidas para Todo.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Todo representa una tarea de la lista de preparativos. Registro plano: la jerarquía
// se reconstruye al leer a partir de ParentID (ver paquete todotree).
type Todo struct {
	ID         string
	UserID     string
	Text       string
	Completed  bool
	CategoryID string
	Priority   string     // high, medium, low
	ParentID   string     // vacío si es raíz; referencia débil, solo búsqueda
	Notes      string
	DueDate    *time.Time // nil si no tiene fecha límite
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsValidPriority indica si p es una prioridad admitida.
func IsValidPriority(p string) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// TodoCounts contadores de tareas.
type TodoCounts struct {
	Total     int
	Completed int
	Pending   int
}

// Add suma un nodo a los contadores.
func (c *TodoCounts) Add(completed bool) {
	c.Total++
	if completed {
		c.Completed++
	} else {
		c.Pending++
	}
}

// TodoStats estadísticas globales y por categoría de un usuario.
type TodoStats struct {
	TodoCounts
	ByCategory map[string]TodoCounts
}
