package todotree

import "github.com/jhoicas/wedding-api/internal/domain/entity"

// Changes escrituras necesarias para pasar de un bosque persistido a otro.
type Changes struct {
	Created []*entity.Todo
	Updated []*entity.Todo
	Removed []string
}

// Empty indica que no hay nada que escribir.
func (c Changes) Empty() bool {
	return len(c.Created) == 0 && len(c.Updated) == 0 && len(c.Removed) == 0
}

// Diff compara dos bosques por ID. Los timestamps no cuentan como cambio.
func Diff(before, after Forest) Changes {
	prev := make(map[string]*entity.Todo)
	for _, t := range Flatten(before) {
		prev[t.ID] = t
	}
	var ch Changes
	seen := make(map[string]bool, len(prev))
	for _, t := range Flatten(after) {
		seen[t.ID] = true
		old, ok := prev[t.ID]
		switch {
		case !ok:
			ch.Created = append(ch.Created, t)
		case !sameContent(old, t):
			ch.Updated = append(ch.Updated, t)
		}
	}
	for _, t := range Flatten(before) {
		if !seen[t.ID] {
			ch.Removed = append(ch.Removed, t.ID)
		}
	}
	return ch
}

func sameContent(a, b *entity.Todo) bool {
	if a.Text != b.Text || a.Completed != b.Completed || a.CategoryID != b.CategoryID ||
		a.Priority != b.Priority || a.ParentID != b.ParentID || a.Notes != b.Notes {
		return false
	}
	switch {
	case a.DueDate == nil && b.DueDate == nil:
		return true
	case a.DueDate == nil || b.DueDate == nil:
		return false
	default:
		return a.DueDate.Equal(*b.DueDate)
	}
}
