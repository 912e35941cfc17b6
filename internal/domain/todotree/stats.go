package todotree

import "github.com/jhoicas/wedding-api/internal/domain/entity"

// Aggregate cuenta todos los nodos del bosque (raíces y descendientes a cualquier
// profundidad). Cada nodo suma en el grupo de su propia CategoryID. categoryIDs
// garantiza un grupo (posiblemente en cero) por cada categoría conocida.
func Aggregate(f Forest, categoryIDs []string) entity.TodoStats {
	stats := entity.TodoStats{ByCategory: make(map[string]entity.TodoCounts, len(categoryIDs))}
	for _, id := range categoryIDs {
		stats.ByCategory[id] = entity.TodoCounts{}
	}
	f.Walk(func(n *Node, _ int) bool {
		stats.Add(n.Completed)
		c := stats.ByCategory[n.CategoryID]
		c.Add(n.Completed)
		stats.ByCategory[n.CategoryID] = c
		return true
	})
	return stats
}

// Group tareas raíz de una categoría (con sus subárboles).
type Group struct {
	Category *entity.TodoCategory // nil para raíces cuya categoría no existe
	Roots    []*Node
}

// GroupByCategory reparte las raíces del bosque según categories (en el orden recibido).
// Las raíces con una categoría desconocida van a un grupo final sin categoría.
func GroupByCategory(f Forest, categories []*entity.TodoCategory) []Group {
	index := make(map[string]int, len(categories))
	groups := make([]Group, 0, len(categories)+1)
	for _, c := range categories {
		index[c.ID] = len(groups)
		groups = append(groups, Group{Category: c})
	}
	var orphans []*Node
	for _, root := range f {
		if i, ok := index[root.CategoryID]; ok {
			groups[i].Roots = append(groups[i].Roots, root)
			continue
		}
		orphans = append(orphans, root)
	}
	if len(orphans) > 0 {
		groups = append(groups, Group{Roots: orphans})
	}
	return groups
}
