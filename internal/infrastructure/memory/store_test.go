package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wedding-api/internal/domain"
	"github.com/jhoicas/wedding-api/internal/domain/entity"
	"github.com/jhoicas/wedding-api/internal/domain/repository"
)

var t0 = time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)

func newTodo(id, userID, categoryID string, completed bool, createdAt time.Time) *entity.Todo {
	return &entity.Todo{
		ID: id, UserID: userID, Text: "tarea " + id, CategoryID: categoryID,
		Priority: entity.PriorityMedium, Completed: completed, CreatedAt: createdAt, UpdatedAt: createdAt,
	}
}

func TestTodoRepo_ListOrdenaPorCreacionYFiltra(t *testing.T) {
	ctx := context.Background()
	repo := NewTodoRepository(NewStore())

	require.NoError(t, repo.Create(ctx, newTodo("b", "u1", "c1", false, t0)))
	require.NoError(t, repo.Create(ctx, newTodo("a", "u1", "c2", false, t0)))
	require.NoError(t, repo.Create(ctx, newTodo("z", "u1", "c1", false, t0.Add(-time.Hour))))
	require.NoError(t, repo.Create(ctx, newTodo("otro", "u2", "c1", false, t0)))

	all, err := repo.ListByUser(ctx, "u1", "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"z", "b", "a"}, []string{all[0].ID, all[1].ID, all[2].ID}, "misma fecha: orden de inserción")

	filtered, err := repo.ListByUser(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.Len(t, filtered, 2)

	got, err := repo.GetByID(ctx, "u2", "a")
	require.NoError(t, err)
	assert.Nil(t, got, "las tareas de otro usuario no son visibles")
}

func TestTodoRepo_StatsYConteoPorCategoria(t *testing.T) {
	ctx := context.Background()
	repo := NewTodoRepository(NewStore())
	require.NoError(t, repo.Create(ctx, newTodo("p", "u1", "c1", false, t0)))
	child := newTodo("h1", "u1", "c1", true, t0)
	child.ParentID = "p"
	require.NoError(t, repo.Create(ctx, child))
	other := newTodo("h2", "u1", "c2", false, t0)
	other.ParentID = "p"
	require.NoError(t, repo.Create(ctx, other))

	stats, err := repo.StatsByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.TodoCounts{Total: 3, Completed: 1, Pending: 2}, stats.TodoCounts)
	assert.Equal(t, 2, stats.ByCategory["c1"].Total)
	assert.Equal(t, 1, stats.ByCategory["c2"].Pending)

	n, err := repo.CountByCategory(ctx, "u1", "c2")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestTxRunner_RestauraSiFalla(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewTodoRepository(store)
	require.NoError(t, repo.Create(ctx, newTodo("keep", "u1", "c1", false, t0)))

	boom := errors.New("boom")
	err := NewTxRunner(store).RunTodos(ctx, func(todos repository.TodoRepository, _ repository.TodoCategoryRepository) error {
		require.NoError(t, todos.Create(ctx, newTodo("nuevo", "u1", "c1", false, t0)))
		require.NoError(t, todos.DeleteMany(ctx, "u1", []string{"keep"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	all, err := repo.ListByUser(ctx, "u1", "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "keep", all[0].ID)
}

func TestTxRunner_ConfirmaSinError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	err := NewTxRunner(store).RunTodos(ctx, func(todos repository.TodoRepository, _ repository.TodoCategoryRepository) error {
		return todos.Create(ctx, newTodo("x", "u1", "c1", false, t0))
	})
	require.NoError(t, err)
	got, err := NewTodoRepository(store).GetByID(ctx, "u1", "x")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestTxRunner_RollbackRestauraValorPrevio(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewTodoRepository(store)
	categories := NewTodoCategoryRepository(store)
	require.NoError(t, repo.Create(ctx, newTodo("a", "u1", "c1", false, t0)))
	require.NoError(t, categories.Create(ctx, &entity.TodoCategory{ID: "c1", UserID: "u1", Name: "场地", Order: 1}))

	boom := errors.New("boom")
	err := NewTxRunner(store).RunTodos(ctx, func(todos repository.TodoRepository, cats repository.TodoCategoryRepository) error {
		changed := newTodo("a", "u1", "c1", true, t0)
		changed.Text = "cambiada"
		require.NoError(t, todos.Update(ctx, changed))
		require.NoError(t, todos.Update(ctx, changed))
		require.NoError(t, cats.Delete(ctx, "u1", "c1"))
		require.NoError(t, cats.Create(ctx, &entity.TodoCategory{ID: "c2", UserID: "u1", Name: "新", Order: 2}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.GetByID(ctx, "u1", "a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "tarea a", got.Text)
	assert.False(t, got.Completed)

	list, err := categories.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "c1", list[0].ID)
}

func TestTxRunner_RollbackConservaEscriturasConcurrentes(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	categories := NewTodoCategoryRepository(store)
	runner := NewTxRunner(store)
	const n = 300

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			assert.NoError(t, categories.Create(ctx, &entity.TodoCategory{
				ID: fmt.Sprintf("u1-%d", i), UserID: "u1", Name: "cat", Order: i + 1,
			}))
		}
	}()
	boom := errors.New("boom")
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			err := runner.RunTodos(ctx, func(todos repository.TodoRepository, cats repository.TodoCategoryRepository) error {
				if err := todos.Create(ctx, newTodo(fmt.Sprintf("u2-%d", i), "u2", "x", false, t0)); err != nil {
					return err
				}
				return boom
			})
			assert.ErrorIs(t, err, boom)
		}
	}()
	wg.Wait()

	list, err := categories.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, n)
	left, err := NewTodoRepository(store).ListByUser(ctx, "u2", "")
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestTodoCategoryRepo_SlugUnicoPorUsuario(t *testing.T) {
	ctx := context.Background()
	repo := NewTodoCategoryRepository(NewStore())
	seed := []*entity.TodoCategory{
		{ID: "1", UserID: "u1", Slug: "wedding-other", Name: "其他事项", Order: 8},
		{ID: "2", UserID: "u1", Slug: "wedding-venue", Name: "场地布置", Order: 1},
	}
	require.NoError(t, repo.CreateMany(ctx, seed))

	err := repo.CreateMany(ctx, []*entity.TodoCategory{
		{ID: "3", UserID: "u1", Slug: "wedding-music", Order: 6},
		{ID: "4", UserID: "u1", Slug: "wedding-other", Order: 8},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	list, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2, "CreateMany es todo o nada")
	assert.Equal(t, "wedding-venue", list[0].Slug)

	require.NoError(t, repo.CreateMany(ctx, []*entity.TodoCategory{{ID: "5", UserID: "u2", Slug: "wedding-other", Order: 8}}))

	last, err := repo.MaxOrder(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 8, last)
}

func TestWeddingSettingsRepo_UpsertConservaIdentidad(t *testing.T) {
	ctx := context.Background()
	repo := NewWeddingSettingsRepository(NewStore())
	first := &entity.WeddingSettings{ID: "s1", UserID: "u1", BrideName: "新娘", CreatedAt: t0, BackgroundImages: []string{"a"}}
	require.NoError(t, repo.Upsert(ctx, first))

	second := &entity.WeddingSettings{ID: "s2", UserID: "u1", BrideName: "Ana", CreatedAt: t0.Add(time.Hour)}
	require.NoError(t, repo.Upsert(ctx, second))

	got, err := repo.GetByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "s1", got.ID)
	assert.True(t, got.CreatedAt.Equal(t0))
	assert.Equal(t, "Ana", got.BrideName)

	require.NoError(t, repo.Delete(ctx, "u1"))
	got, err = repo.GetByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepo_EmailUnico(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewStore())
	require.NoError(t, repo.Create(ctx, &entity.User{ID: "1", Email: "a@b.c"}))
	assert.ErrorIs(t, repo.Create(ctx, &entity.User{ID: "2", Email: "a@b.c"}), domain.ErrConflict)

	u, err := repo.GetByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, "1", u.ID)
}
