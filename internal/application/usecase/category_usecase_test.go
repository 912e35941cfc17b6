package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wedding-api/internal/application/dto"
	"github.com/jhoicas/wedding-api/internal/application/usecase"
	"github.com/jhoicas/wedding-api/internal/domain"
	"github.com/jhoicas/wedding-api/internal/domain/entity"
	"github.com/jhoicas/wedding-api/internal/infrastructure/memory"
	"github.com/jhoicas/wedding-api/pkg/logger"
)

func TestCategoryList_SiembraLasOchoPorDefectoUnaSolaVez(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.categories.List(ctx, "u1")
		}()
	}
	wg.Wait()

	list, err := f.categories.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 8)
	for i, c := range list {
		assert.Equal(t, entity.DefaultCategories[i].Name, c.Name)
		assert.Equal(t, i+1, c.Order)
	}
	assert.Equal(t, "其他事项", list[7].Name)
	assert.Equal(t, entity.FallbackCategorySlug, list[7].Slug)
}

func TestCategoryCreate_ValoresPorDefectoYOrden(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.categories.List(ctx, "u1")
	require.NoError(t, err)

	res, err := f.categories.Create(ctx, "u1", dto.CreateTodoCategoryRequest{Name: "  蜜月旅行 "})
	require.NoError(t, err)
	assert.Equal(t, "蜜月旅行", res.Name)
	assert.Equal(t, entity.DefaultCategoryColor, res.Color)
	assert.Equal(t, entity.DefaultCategoryIcon, res.Icon)
	assert.Equal(t, 9, res.Order)
	assert.Empty(t, res.Slug)
}

func TestCategoryCreate_Validaciones(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	long := ""
	for i := 0; i < 51; i++ {
		long += "字"
	}
	cases := map[string]dto.CreateTodoCategoryRequest{
		"nombre vacío":      {Name: "   "},
		"nombre largo":      {Name: long},
		"color inválido":    {Name: "x", Color: "teal"},
		"icono largo":       {Name: "x", Icon: "12345678901"},
		"orden no positivo": {Name: "x", Order: ptr(0)},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.categories.Create(ctx, "u1", in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCategoryUpdate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.categoryID(t, "u1", "音乐娱乐")

	res, err := f.categories.Update(ctx, "u1", id, dto.UpdateTodoCategoryRequest{Name: ptr("乐队"), Color: ptr("blue"), Order: ptr(2)})
	require.NoError(t, err)
	assert.Equal(t, "乐队", res.Name)
	assert.Equal(t, "blue", res.Color)
	assert.Equal(t, 2, res.Order)

	_, err = f.categories.Update(ctx, "u2", id, dto.UpdateTodoCategoryRequest{Name: ptr("ajeno")})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestCategoryDelete_EnUsoSeRechaza(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.categoryID(t, "u1", "证件文书")
	todo := f.create(t, "u1", dto.CreateTodoRequest{Text: "结婚登记", CategoryID: id})

	assert.ErrorIs(t, f.categories.Delete(ctx, "u1", id), domain.ErrCategoryInUse)

	_, err := f.todoUC.Delete(ctx, "u1", todo.ID)
	require.NoError(t, err)
	require.NoError(t, f.categories.Delete(ctx, "u1", id))
	assert.ErrorIs(t, f.categories.Delete(ctx, "u1", id), domain.ErrCategoryNotFound)
}

func TestCategoryDelete_VaEnLaTransaccionDeTareas(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.categoryID(t, "u1", "证件文书")

	boom := errors.New("boom")
	failing := usecase.NewCategoryUseCase(memory.NewTodoCategoryRepository(f.store), failAfterTx{inner: memory.NewTxRunner(f.store), err: boom}, logger.Nop())
	assert.ErrorIs(t, failing.Delete(ctx, "u1", id), boom)
	assert.Equal(t, id, f.categoryID(t, "u1", "证件文书"), "el borrado se deshace con la transacción")
}

func TestTodoCreate_CategoriaBorradaAntesDeLaTransaccionSeRechaza(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.categoryID(t, "u1", "证件文书")

	// la categoría desaparece entre la validación y la escritura
	racing := beforeTx{inner: memory.NewTxRunner(f.store), hook: func() {
		require.NoError(t, memory.NewTodoCategoryRepository(f.store).Delete(ctx, "u1", id))
	}}
	todoUC := usecase.NewTodoUseCase(f.todos, f.categories, racing, logger.Nop()).WithClock(clock)

	_, err := todoUC.Create(ctx, "u1", dto.CreateTodoRequest{Text: "结婚登记", CategoryID: id})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	n, err := f.todos.CountByCategory(ctx, "u1", id)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTodoCreate_SinCategoriaOtrosUsaLaDeMayorOrden(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	other := f.categoryID(t, "u1", "其他事项")
	require.NoError(t, f.categories.Delete(ctx, "u1", other))

	res := f.create(t, "u1", dto.CreateTodoRequest{Text: "x"})
	assert.Equal(t, f.categoryID(t, "u1", "证件文书"), res.CategoryID)
}
