package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/wedding-api/internal/application/dto"
	"github.com/jhoicas/wedding-api/internal/application/ports"
	"github.com/jhoicas/wedding-api/internal/domain/repository"
	"github.com/jhoicas/wedding-api/internal/domain/todotree"
)

const checklistTitle = "婚礼筹备清单"

// ChecklistUseCase exporta la lista de preparativos como PDF, agrupada por categoría.
type ChecklistUseCase struct {
	todos      repository.TodoRepository
	categories *CategoryUseCase
	settings   repository.WeddingSettingsRepository
	generator  ports.ChecklistPDFGenerator
	now        Clock
}

// NewChecklistUseCase construye el caso de uso inyectando el generador de PDF.
func NewChecklistUseCase(
	todos repository.TodoRepository,
	categories *CategoryUseCase,
	settings repository.WeddingSettingsRepository,
	generator ports.ChecklistPDFGenerator,
) *ChecklistUseCase {
	return &ChecklistUseCase{todos: todos, categories: categories, settings: settings, generator: generator, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *ChecklistUseCase) WithClock(c Clock) *ChecklistUseCase {
	uc.now = c
	return uc
}

// Export genera el PDF. Retorna (pdfBytes, filename, nil).
func (uc *ChecklistUseCase) Export(ctx context.Context, userID string) ([]byte, string, error) {
	doc, err := uc.Document(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateChecklist(ctx, *doc)
	if err != nil {
		return nil, "", fmt.Errorf("checklist: generar pdf: %w", err)
	}
	return pdf, "checklist-" + doc.GeneratedAt.Format("20060102") + ".pdf", nil
}

// Document arma el contenido del PDF: una sección por categoría (en su orden) con las
// tareas en preorden; las raíces de categorías desconocidas van a una sección final.
func (uc *ChecklistUseCase) Document(ctx context.Context, userID string) (*dto.ChecklistDocument, error) {
	categories, err := uc.categories.listEntities(ctx, userID)
	if err != nil {
		return nil, err
	}
	all, err := uc.todos.ListByUser(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	settings, err := uc.settings.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	forest := todotree.Build(all)
	stats := todotree.Aggregate(forest, nil)
	doc := &dto.ChecklistDocument{
		Title:       checklistTitle,
		GeneratedAt: uc.now(),
		Totals:      toTodoCountsResponse(stats.TodoCounts),
	}
	if settings != nil {
		doc.Subtitle = fmt.Sprintf("%s & %s · %s", settings.BrideName, settings.GroomName, settings.WeddingDate.Format("2006-01-02"))
	}

	for _, g := range todotree.GroupByCategory(forest, categories) {
		if len(g.Roots) == 0 {
			continue
		}
		section := dto.ChecklistSection{Name: "未分类", Icon: "📦"}
		if g.Category != nil {
			section.Name = g.Category.Name
			section.Icon = g.Category.Icon
		}
		todotree.Forest(g.Roots).Walk(func(n *todotree.Node, depth int) bool {
			section.Items = append(section.Items, dto.ChecklistItem{
				Text:      n.Text,
				Completed: n.Completed,
				Priority:  n.Priority,
				Depth:     depth,
				DueDate:   n.DueDate,
				Notes:     n.Notes,
			})
			return true
		})
		doc.Sections = append(doc.Sections, section)
	}
	return doc, nil
}
