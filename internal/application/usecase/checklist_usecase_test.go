package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wedding-api/internal/application/dto"
	"github.com/jhoicas/wedding-api/internal/application/usecase"
)

type fakeChecklistPDF struct {
	doc dto.ChecklistDocument
	err error
}

func (g *fakeChecklistPDF) GenerateChecklist(_ context.Context, doc dto.ChecklistDocument) ([]byte, error) {
	g.doc = doc
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-fake"), nil
}

func TestChecklistExport_AgrupaPorCategoriaEnPreorden(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	gen := &fakeChecklistPDF{}
	uc := usecase.NewChecklistUseCase(f.todos, f.categories, f.settings, gen).WithClock(clock)

	venue := f.categoryID(t, "u1", "场地布置")
	other := f.create(t, "u1", dto.CreateTodoRequest{Text: "预订场地"})
	f.create(t, "u1", dto.CreateTodoRequest{Text: "支付押金", ParentID: other.ID, Priority: "high"})
	f.create(t, "u1", dto.CreateTodoRequest{Text: "选花艺", CategoryID: venue})
	date := fixedNow.AddDate(0, 3, 0)
	_, err := f.settingsUC.Upsert(ctx, "u1", dto.UpsertWeddingSettingsRequest{
		WeddingDate: &date, BrideName: ptr("小美"), GroomName: ptr("小明"),
	})
	require.NoError(t, err)

	pdf, name, err := uc.Export(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
	assert.Equal(t, "checklist-20300314.pdf", name)

	doc := gen.doc
	assert.Equal(t, "婚礼筹备清单", doc.Title)
	assert.Equal(t, "小美 & 小明 · 2030-06-14", doc.Subtitle)
	assert.Equal(t, dto.TodoCountsResponse{Total: 3, Pending: 3}, doc.Totals)

	require.Len(t, doc.Sections, 2, "las categorías sin tareas no generan sección")
	assert.Equal(t, "场地布置", doc.Sections[0].Name)
	require.Len(t, doc.Sections[0].Items, 1)

	assert.Equal(t, "其他事项", doc.Sections[1].Name)
	items := doc.Sections[1].Items
	require.Len(t, items, 2)
	assert.Equal(t, "预订场地", items[0].Text)
	assert.Equal(t, 0, items[0].Depth)
	assert.Equal(t, "支付押金", items[1].Text)
	assert.Equal(t, 1, items[1].Depth)
	assert.Equal(t, "high", items[1].Priority)
}

func TestChecklistExport_ErrorDelGenerador(t *testing.T) {
	f := newFixture()
	gen := &fakeChecklistPDF{err: errors.New("sin fuente")}
	uc := usecase.NewChecklistUseCase(f.todos, f.categories, f.settings, gen).WithClock(clock)

	_, _, err := uc.Export(context.Background(), "u1")
	assert.ErrorIs(t, err, gen.err)
}

func TestChecklistDocument_SinConfiguracionNiTareas(t *testing.T) {
	f := newFixture()
	uc := usecase.NewChecklistUseCase(f.todos, f.categories, f.settings, &fakeChecklistPDF{}).WithClock(clock)

	doc, err := uc.Document(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, doc.Subtitle)
	assert.Empty(t, doc.Sections)
	assert.Zero(t, doc.Totals.Total)
}
