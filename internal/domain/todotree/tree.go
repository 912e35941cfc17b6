// Package todotree reconstruye la jerarquía de tareas a partir de registros planos y
// aplica las mutaciones (alternar, eliminar, agregar, actualizar) como funciones puras:
// cada operación recibe un bosque y devuelve uno nuevo sin tocar el original.
//
// Regla de completado: un nodo con hijos está completado si y solo si todos sus hijos
// lo están; un nodo sin hijos guarda su propio valor.
package todotree

import "github.com/jhoicas/wedding-api/internal/domain/entity"

// Node una tarea con sus subtareas. Children se deriva al leer, no se persiste.
type Node struct {
	entity.Todo
	Children []*Node
}

// Forest lista ordenada de tareas raíz.
type Forest []*Node

// Build convierte registros planos en un bosque. Un registro cuyo ParentID no existe
// (huérfano) o que forma un ciclo se promueve a raíz con ParentID vacío; nunca se descarta. El orden
// de entrada se conserva entre hermanos. Los IDs repetidos se ignoran tras el primero.
func Build(flat []*entity.Todo) Forest {
	byID := make(map[string]*Node, len(flat))
	order := make([]*Node, 0, len(flat))
	for _, t := range flat {
		if t == nil {
			continue
		}
		if _, dup := byID[t.ID]; dup {
			continue
		}
		n := &Node{Todo: copyTodo(*t)}
		byID[t.ID] = n
		order = append(order, n)
	}

	parent := make(map[string]string, len(order))
	for _, n := range order {
		if n.ParentID == "" || n.ParentID == n.ID {
			continue
		}
		if _, ok := byID[n.ParentID]; ok {
			parent[n.ID] = n.ParentID
		}
	}
	breakCycles(order, parent)

	roots := make(Forest, 0, len(order))
	for _, n := range order {
		if pid, ok := parent[n.ID]; ok {
			p := byID[pid]
			p.Children = append(p.Children, n)
			continue
		}
		n.ParentID = ""
		roots = append(roots, n)
	}
	return roots
}

// breakCycles corta cada ciclo de parent promoviendo a raíz su primer miembro en orden de entrada.
func breakCycles(order []*Node, parent map[string]string) {
	for _, n := range order {
		cur, ok := parent[n.ID]
		for steps := 0; ok && steps <= len(order); steps++ {
			if cur == n.ID {
				delete(parent, n.ID)
				break
			}
			cur, ok = parent[cur]
		}
	}
}

// Walk recorre el bosque en preorden. Si fn devuelve false no desciende a los hijos de ese nodo.
func (f Forest) Walk(fn func(n *Node, depth int) bool) {
	var visit func(nodes []*Node, depth int)
	visit = func(nodes []*Node, depth int) {
		for _, n := range nodes {
			if fn(n, depth) {
				visit(n.Children, depth+1)
			}
		}
	}
	visit(f, 0)
}

// Flatten devuelve copias de todas las tareas en preorden (raíz, luego sus descendientes).
func Flatten(f Forest) []*entity.Todo {
	out := make([]*entity.Todo, 0, f.Len())
	f.Walk(func(n *Node, _ int) bool {
		t := copyTodo(n.Todo)
		out = append(out, &t)
		return true
	})
	return out
}

// Len número total de nodos (raíces y descendientes).
func (f Forest) Len() int {
	total := 0
	f.Walk(func(*Node, int) bool {
		total++
		return true
	})
	return total
}

// Find busca un nodo por ID a cualquier profundidad.
func (f Forest) Find(id string) *Node {
	p := f.path(id)
	if p == nil {
		return nil
	}
	return p[len(p)-1]
}

// Ancestors devuelve los ancestros de id desde la raíz hasta el padre directo.
func (f Forest) Ancestors(id string) []*Node {
	p := f.path(id)
	if len(p) < 2 {
		return nil
	}
	return p[:len(p)-1]
}

// Clone copia profunda del bosque.
func (f Forest) Clone() Forest {
	if f == nil {
		return nil
	}
	out := make(Forest, len(f))
	for i, n := range f {
		out[i] = n.clone()
	}
	return out
}

// SubtreeIDs IDs del nodo y de todos sus descendientes, en preorden.
func (n *Node) SubtreeIDs() []string {
	ids := []string{n.ID}
	Forest(n.Children).Walk(func(c *Node, _ int) bool {
		ids = append(ids, c.ID)
		return true
	})
	return ids
}

// HasChildren indica si el nodo tiene subtareas.
func (n *Node) HasChildren() bool {
	return len(n.Children) > 0
}

// EffectiveCompleted estado visible del nodo: derivado de los hijos si los tiene.
func (n *Node) EffectiveCompleted() bool {
	if !n.HasChildren() {
		return n.Completed
	}
	return allCompleted(n.Children)
}

func (n *Node) clone() *Node {
	c := &Node{Todo: copyTodo(n.Todo)}
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.clone()
		}
	}
	return c
}

// path devuelve la cadena raíz..nodo para id, o nil si no existe.
func (f Forest) path(id string) []*Node {
	for _, n := range f {
		if n.ID == id {
			return []*Node{n}
		}
		if sub := Forest(n.Children).path(id); sub != nil {
			return append([]*Node{n}, sub...)
		}
	}
	return nil
}

func allCompleted(nodes []*Node) bool {
	for _, n := range nodes {
		if !n.Completed {
			return false
		}
	}
	return true
}

func copyTodo(t entity.Todo) entity.Todo {
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	return t
}
