// Package pdf genera la lista de preparativos imprimible.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + pareja y fecha  │  Fecha de generación     │
//	│  RESUMEN: total / completadas / pendientes                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SECCIÓN por categoría: icono + nombre + avance              │
//	│    ☐ tarea                         prioridad   fecha límite  │
//	│        ☑ subtarea (sangría por nivel)                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"

	"github.com/jhoicas/wedding-api/internal/application/dto"
	"github.com/jhoicas/wedding-api/internal/application/ports"
)

var _ ports.ChecklistPDFGenerator = (*MarotoChecklistGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 190, Green: 24, Blue: 93}
	colorGray    = &props.Color{Red: 110, Green: 110, Blue: 110}
	colorDone    = &props.Color{Red: 22, Green: 163, Blue: 74}
)

const (
	defaultFamily = "helvetica"
	customFamily  = "checklist"
	indentPerLvl  = 5.0
)

var priorityLabels = map[string]string{
	"high":   "高",
	"medium": "中",
	"low":    "低",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoChecklistGenerator implementa ports.ChecklistPDFGenerator usando Maroto v2.
// Sin fuente TTF los caracteres fuera de Latin-1 no se dibujan correctamente.
type MarotoChecklistGenerator struct {
	family string
	fonts  []*entity.CustomFont
}

// NewMarotoChecklistGenerator construye el generador. fontPath (opcional) apunta a una fuente
// TTF con soporte CJK que se registra para todos los estilos.
func NewMarotoChecklistGenerator(fontPath string) (*MarotoChecklistGenerator, error) {
	if fontPath == "" {
		return &MarotoChecklistGenerator{family: defaultFamily}, nil
	}
	fonts, err := repository.New().
		AddUTF8Font(customFamily, fontstyle.Normal, fontPath).
		AddUTF8Font(customFamily, fontstyle.Bold, fontPath).
		AddUTF8Font(customFamily, fontstyle.Italic, fontPath).
		AddUTF8Font(customFamily, fontstyle.BoldItalic, fontPath).
		Load()
	if err != nil {
		return nil, fmt.Errorf("pdf: cargar fuente %s: %w", fontPath, err)
	}
	return &MarotoChecklistGenerator{family: customFamily, fonts: fonts}, nil
}

// GenerateChecklist genera el PDF y devuelve sus bytes.
func (g *MarotoChecklistGenerator) GenerateChecklist(_ context.Context, doc dto.ChecklistDocument) ([]byte, error) {
	b := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: g.family, Size: 10}).
		WithTitle(doc.Title, true)
	if len(g.fonts) > 0 {
		b = b.WithCustomFonts(g.fonts)
	}
	m := maroto.New(b.Build())

	m.AddRows(headerRow(doc))
	m.AddRows(totalsRow(doc.Totals))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, s := range doc.Sections {
		m.AddRows(sectionRow(s))
		for _, it := range s.Items {
			m.AddRows(itemRows(it)...)
		}
		m.AddRows(row.New(3))
	}
	if len(doc.Sections) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("暂无待办事项", props.Text{Size: 10, Align: align.Center, Color: colorGray, Top: 3}),
		)))
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(doc dto.ChecklistDocument) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(doc.Title, props.Text{Style: fontstyle.Bold, Size: 16, Color: colorPrimary, Top: 1}),
			text.New(doc.Subtitle, props.Text{Size: 10, Color: colorGray, Top: 10}),
		),
		col.New(4).Add(
			text.New(doc.GeneratedAt.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Color: colorGray, Top: 2,
			}),
		),
	)
}

func totalsRow(t dto.TodoCountsResponse) core.Row {
	cell := func(label string, n int) core.Col {
		return col.New(4).Add(text.New(fmt.Sprintf("%s: %d", label, n), props.Text{
			Size: 9, Align: align.Center, Top: 1,
		}))
	}
	return row.New(7).Add(
		cell("总计", t.Total),
		cell("已完成", t.Completed),
		cell("待完成", t.Pending),
	)
}

func sectionRow(s dto.ChecklistSection) core.Row {
	done := 0
	for _, it := range s.Items {
		if it.Completed {
			done++
		}
	}
	return row.New(9).Add(
		col.New(9).Add(text.New(strings.TrimSpace(s.Icon+" "+s.Name), props.Text{
			Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 2,
		})),
		col.New(3).Add(text.New(fmt.Sprintf("%d/%d", done, len(s.Items)), props.Text{
			Size: 9, Align: align.Right, Color: colorGray, Top: 3,
		})),
	)
}

// itemRows una fila por tarea, más otra con las notas si las tiene.
func itemRows(it dto.ChecklistItem) []core.Row {
	indent := float64(it.Depth) * indentPerLvl
	mark, color := "☐", (*props.Color)(nil)
	if it.Completed {
		mark, color = "☑", colorDone
	}
	due := ""
	if it.DueDate != nil {
		due = it.DueDate.Format("2006-01-02")
	}
	rows := []core.Row{
		row.New(6).Add(
			col.New(8).Add(text.New(mark+" "+it.Text, props.Text{
				Size: 9, Left: indent, Top: 1, Color: color,
			})),
			col.New(2).Add(text.New(priorityLabels[it.Priority], props.Text{
				Size: 8, Align: align.Center, Top: 1, Color: colorGray,
			})),
			col.New(2).Add(text.New(due, props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			})),
		),
	}
	if it.Notes != "" {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(it.Notes, props.Text{
				Size: 7, Style: fontstyle.Italic, Left: indent + indentPerLvl, Color: colorGray,
			}),
		)))
	}
	return rows
}
