package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wedding-api/internal/application/dto"
	"github.com/jhoicas/wedding-api/internal/application/usecase"
	"github.com/jhoicas/wedding-api/internal/domain/repository"
	"github.com/jhoicas/wedding-api/internal/infrastructure/memory"
	"github.com/jhoicas/wedding-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2030, 3, 14, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type fixture struct {
	store      *memory.Store
	todos      *memory.TodoRepo
	settings   *memory.WeddingSettingsRepo
	categories *usecase.CategoryUseCase
	todoUC     *usecase.TodoUseCase
	settingsUC *usecase.SettingsUseCase
}

func newFixture() *fixture {
	store := memory.NewStore()
	log := logger.Nop()
	todos := memory.NewTodoRepository(store)
	settings := memory.NewWeddingSettingsRepository(store)
	tx := memory.NewTxRunner(store)
	categories := usecase.NewCategoryUseCase(memory.NewTodoCategoryRepository(store), tx, log).WithClock(clock)
	return &fixture{
		store:      store,
		todos:      todos,
		settings:   settings,
		categories: categories,
		todoUC:     usecase.NewTodoUseCase(todos, categories, tx, log).WithClock(clock),
		settingsUC: usecase.NewSettingsUseCase(settings).WithClock(clock),
	}
}

// categoryID devuelve el ID de la categoría con ese nombre (sembrando las por defecto).
func (f *fixture) categoryID(t *testing.T, userID, name string) string {
	t.Helper()
	list, err := f.categories.List(context.Background(), userID)
	require.NoError(t, err)
	for _, c := range list {
		if c.Name == name {
			return c.ID
		}
	}
	t.Fatalf("categoría %q no encontrada", name)
	return ""
}

func (f *fixture) create(t *testing.T, userID string, in dto.CreateTodoRequest) *dto.TodoResponse {
	t.Helper()
	res, err := f.todoUC.Create(context.Background(), userID, in)
	require.NoError(t, err)
	return res
}

func ptr[T any](v T) *T { return &v }

// failAfterTx ejecuta fn en la transacción real y luego falla, forzando el rollback.
type failAfterTx struct {
	inner usecase.TodoTxRunner
	err   error
}

func (r failAfterTx) RunTodos(ctx context.Context, fn func(repository.TodoRepository, repository.TodoCategoryRepository) error) error {
	return r.inner.RunTodos(ctx, func(todos repository.TodoRepository, categories repository.TodoCategoryRepository) error {
		if err := fn(todos, categories); err != nil {
			return err
		}
		return r.err
	})
}

// beforeTx ejecuta hook justo antes de abrir la transacción.
type beforeTx struct {
	inner usecase.TodoTxRunner
	hook  func()
}

func (r beforeTx) RunTodos(ctx context.Context, fn func(repository.TodoRepository, repository.TodoCategoryRepository) error) error {
	r.hook()
	return r.inner.RunTodos(ctx, fn)
}
