package todotree

import (
	"time"

	"github.com/jhoicas/wedding-api/internal/domain"
	"github.com/jhoicas/wedding-api/internal/domain/entity"
)

// Toggle invierte el estado visible de id. Una tarea sin hijos cambia su propio valor;
// una tarea con hijos propaga el nuevo valor a todos sus descendientes, de modo que su
// estado sigue siendo el derivado. Los ancestros se recalculan desde el padre hacia la raíz.
func Toggle(f Forest, id string) (Forest, error) {
	n := f.Find(id)
	if n == nil {
		return nil, domain.ErrTodoNotFound
	}
	return SetCompleted(f, id, !n.EffectiveCompleted())
}

// SetCompleted fija el estado visible de id con las mismas reglas que Toggle.
func SetCompleted(f Forest, id string, completed bool) (Forest, error) {
	out := f.Clone()
	p := out.path(id)
	if p == nil {
		return nil, domain.ErrTodoNotFound
	}
	setAll(p[len(p)-1], completed)
	rollup(p[:len(p)-1])
	return out, nil
}

// Delete elimina id junto con todo su subárbol (los hijos nunca se re-asignan).
// Devuelve el bosque resultante y los IDs eliminados en preorden.
func Delete(f Forest, id string) (Forest, []string, error) {
	out := f.Clone()
	p := out.path(id)
	if p == nil {
		return nil, nil, domain.ErrTodoNotFound
	}
	removed := p[len(p)-1].SubtreeIDs()
	if len(p) == 1 {
		out = detach(out, id)
	} else {
		parent := p[len(p)-2]
		parent.Children = detach(parent.Children, id)
		rollup(p[:len(p)-1])
	}
	return out, removed, nil
}

// Add inserta t como raíz (ParentID vacío) o como último hijo de ParentID.
// Una subtarea pendiente reabre a un padre completado.
func Add(f Forest, t *entity.Todo) (Forest, error) {
	out := f.Clone()
	if out.Find(t.ID) != nil {
		return nil, domain.ErrConflict
	}
	node := &Node{Todo: copyTodo(*t)}
	if t.ParentID == "" {
		return append(out, node), nil
	}
	p := out.path(t.ParentID)
	if p == nil {
		return nil, domain.NewValidationError("parentId", "la tarea padre no existe")
	}
	parent := p[len(p)-1]
	parent.Children = append(parent.Children, node)
	rollup(p)
	return out, nil
}

// Patch campos modificables de una tarea. nil significa "sin cambio".
type Patch struct {
	Text         *string
	Completed    *bool
	CategoryID   *string
	Priority     *string
	ParentID     *string // "" convierte la tarea en raíz
	Notes        *string
	DueDate      *time.Time
	ClearDueDate bool
}

// Update aplica patch sobre id. Mover una tarea debajo de sí misma o de un descendiente
// se rechaza. Completed sigue las reglas de SetCompleted.
func Update(f Forest, id string, patch Patch) (Forest, error) {
	out := f.Clone()
	n := out.Find(id)
	if n == nil {
		return nil, domain.ErrTodoNotFound
	}

	if patch.Text != nil {
		n.Text = *patch.Text
	}
	if patch.CategoryID != nil {
		n.CategoryID = *patch.CategoryID
	}
	if patch.Priority != nil {
		n.Priority = *patch.Priority
	}
	if patch.Notes != nil {
		n.Notes = *patch.Notes
	}
	if patch.ClearDueDate {
		n.DueDate = nil
	} else if patch.DueDate != nil {
		d := *patch.DueDate
		n.DueDate = &d
	}

	if patch.ParentID != nil {
		var err error
		out, err = move(out, n, *patch.ParentID)
		if err != nil {
			return nil, err
		}
	}

	if patch.Completed != nil && *patch.Completed != n.EffectiveCompleted() {
		return SetCompleted(out, id, *patch.Completed)
	}
	return out, nil
}

// ClearCompleted elimina toda tarea completada junto con su subárbol.
func ClearCompleted(f Forest) (Forest, []string) {
	var removed []string
	var prune func(nodes []*Node) []*Node
	prune = func(nodes []*Node) []*Node {
		kept := make([]*Node, 0, len(nodes))
		for _, n := range nodes {
			if n.Completed {
				removed = append(removed, n.SubtreeIDs()...)
				continue
			}
			if len(n.Children) > 0 {
				before := len(n.Children)
				n.Children = prune(n.Children)
				if len(n.Children) != before && len(n.Children) > 0 {
					n.Completed = allCompleted(n.Children)
				}
			}
			kept = append(kept, n)
		}
		return kept
	}
	out := Forest(prune(f.Clone()))
	return out, removed
}

// move cambia el padre de n dentro de out (out ya es una copia propia).
func move(out Forest, n *Node, newParentID string) (Forest, error) {
	p := out.path(n.ID)
	currentParent := ""
	if len(p) > 1 {
		currentParent = p[len(p)-2].ID
	}
	if newParentID == currentParent {
		n.ParentID = newParentID
		return out, nil
	}
	if newParentID == n.ID {
		return nil, domain.NewValidationError("parentId", "una tarea no puede ser subtarea de sí misma")
	}
	if newParentID != "" && Forest(n.Children).Find(newParentID) != nil {
		return nil, domain.NewValidationError("parentId", "una tarea no puede moverse debajo de una subtarea propia")
	}
	if newParentID != "" && out.Find(newParentID) == nil {
		return nil, domain.NewValidationError("parentId", "la tarea padre no existe")
	}

	if len(p) == 1 {
		out = detach(out, n.ID)
	} else {
		oldParent := p[len(p)-2]
		oldParent.Children = detach(oldParent.Children, n.ID)
		rollup(p[:len(p)-1])
	}

	n.ParentID = newParentID
	if newParentID == "" {
		return append(out, n), nil
	}
	np := out.path(newParentID)
	parent := np[len(np)-1]
	parent.Children = append(parent.Children, n)
	rollup(np)
	return out, nil
}

// setAll fija completed en n y en todos sus descendientes.
func setAll(n *Node, completed bool) {
	n.Completed = completed
	for _, c := range n.Children {
		setAll(c, completed)
	}
}

// rollup recalcula el estado derivado de la cadena dada, del último (más profundo) al primero.
func rollup(chain []*Node) {
	for i := len(chain) - 1; i >= 0; i-- {
		if n := chain[i]; len(n.Children) > 0 {
			n.Completed = allCompleted(n.Children)
		}
	}
}

func detach(nodes []*Node, id string) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n.ID != id {
			out = append(out, n)
		}
	}
	return out
}

// Normalize recalcula el estado derivado de todos los nodos con hijos, de las hojas a la raíz.
// Se usa con datos que no pasaron por estas operaciones (importaciones).
func Normalize(f Forest) Forest {
	out := f.Clone()
	var derive func(n *Node)
	derive = func(n *Node) {
		for _, c := range n.Children {
			derive(c)
		}
		if len(n.Children) > 0 {
			n.Completed = allCompleted(n.Children)
		}
	}
	for _, n := range out {
		derive(n)
	}
	return out
}
