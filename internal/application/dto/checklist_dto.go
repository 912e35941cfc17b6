package dto

import "time"

// ChecklistDocument contenido del PDF de preparativos, ya agrupado y ordenado.
type ChecklistDocument struct {
	Title       string
	Subtitle    string
	GeneratedAt time.Time
	Totals      TodoCountsResponse
	Sections    []ChecklistSection
}

// ChecklistSection una categoría con sus tareas en preorden.
type ChecklistSection struct {
	Name  string
	Icon  string
	Items []ChecklistItem
}

// ChecklistItem una tarea; Depth 0 para raíces.
type ChecklistItem struct {
	Text      string
	Completed bool
	Priority  string
	Depth     int
	DueDate   *time.Time
	Notes     string
}
