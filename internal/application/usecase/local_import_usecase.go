package usecase

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jhoicas/wedding-api/internal/application/dto"
	"github.com/jhoicas/wedding-api/internal/domain"
	"github.com/jhoicas/wedding-api/internal/domain/entity"
	"github.com/jhoicas/wedding-api/internal/domain/repository"
	"github.com/jhoicas/wedding-api/internal/domain/todotree"
	"github.com/jhoicas/wedding-api/pkg/logger"
)

// LocalImportUseCase importa los datos que la versión sin servidor guardaba en el navegador.
// Los IDs locales se reasignan; las categorías locales se emparejan con las del usuario por
// slug o por nombre antes de crear nuevas.
type LocalImportUseCase struct {
	categories *CategoryUseCase
	settings   *SettingsUseCase
	tx         TodoTxRunner
	log        *logger.Logger
	now        Clock
}

// NewLocalImportUseCase construye el caso de uso.
func NewLocalImportUseCase(categories *CategoryUseCase, settings *SettingsUseCase, tx TodoTxRunner, log *logger.Logger) *LocalImportUseCase {
	return &LocalImportUseCase{categories: categories, settings: settings, tx: tx, log: log.Component("local_import"), now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *LocalImportUseCase) WithClock(c Clock) *LocalImportUseCase {
	uc.now = c
	return uc
}

// Import agrega los datos exportados a la cuenta de userID. Las tareas con texto vacío se
// omiten junto con sus subtareas anidadas; el estado de los padres se recalcula al final.
// Categorías y tareas nuevas se escriben en una sola transacción: si falla, no queda nada a medias.
func (uc *LocalImportUseCase) Import(ctx context.Context, userID string, in dto.LocalExport) (*dto.LocalImportResult, error) {
	// las categorías por defecto se siembran antes, fuera de la transacción
	if _, err := uc.categories.listEntities(ctx, userID); err != nil {
		return nil, err
	}

	now := uc.now()
	var res *dto.LocalImportResult
	err := uc.tx.RunTodos(ctx, func(todos repository.TodoRepository, categories repository.TodoCategoryRepository) error {
		res = &dto.LocalImportResult{}
		catMap, err := uc.importCategories(ctx, categories, userID, in.Categories, res)
		if err != nil {
			return err
		}
		fallback, err := resolveIn(ctx, categories, userID, "")
		if err != nil {
			return err
		}
		incoming := localTodos(userID, in.Todos, catMap, fallback.ID, now, res)

		existing, err := todos.ListByUser(ctx, userID, "")
		if err != nil {
			return err
		}
		before := todotree.Build(existing)
		after := todotree.Normalize(todotree.Build(append(todotree.Flatten(before), incoming...)))
		ch := todotree.Diff(before, after)
		res.TodosCreated = len(ch.Created)
		return applyChanges(ctx, todos, userID, ch, now)
	})
	if err != nil {
		return nil, err
	}

	if in.Settings != nil {
		uc.importSettings(ctx, userID, in.Settings, res)
	}

	uc.log.Info().
		Str("user_id", userID).
		Int("todos_created", res.TodosCreated).
		Int("todos_skipped", res.TodosSkipped).
		Int("categories_created", res.CategoriesCreated).
		Msg("importación local completada")
	return res, nil
}

// localTodos convierte el árbol (o la lista plana) local en registros con IDs nuevos.
// Un ParentID local que no aparece en la exportación deja la tarea como raíz.
func localTodos(userID string, items []dto.LocalTodo, catMap map[string]string, fallbackID string, now time.Time, res *dto.LocalImportResult) []*entity.Todo {
	idMap := make(map[string]string)
	var incoming []*entity.Todo
	var collect func(items []dto.LocalTodo, parentID string)
	collect = func(items []dto.LocalTodo, parentID string) {
		for _, lt := range items {
			text := truncateRunes(domain.NormalizeText(lt.Text), maxTodoTextLen)
			if text == "" {
				res.TodosSkipped += 1 + countLocal(lt.Children)
				continue
			}
			t := &entity.Todo{
				ID:         uuid.New().String(),
				UserID:     userID,
				Text:       text,
				Completed:  lt.Completed,
				CategoryID: fallbackID,
				Priority:   lt.Priority,
				ParentID:   parentID,
				Notes:      truncateRunes(domain.NormalizeText(lt.Notes), maxTodoNotesLen),
				DueDate:    parseLocalTime(lt.DueDate),
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if id, ok := catMap[lt.CategoryID]; ok {
				t.CategoryID = id
			}
			if !entity.IsValidPriority(t.Priority) {
				t.Priority = entity.PriorityMedium
			}
			if created := parseLocalTime(lt.CreatedAt); created != nil {
				t.CreatedAt = *created
			}
			if parentID == "" && lt.ParentID != "" {
				// registro plano: el padre se resuelve cuando todos tengan ID nuevo
				t.ParentID = localRef + lt.ParentID
			}
			if lt.ID != "" {
				idMap[lt.ID] = t.ID
			}
			incoming = append(incoming, t)
			collect(lt.Children, t.ID)
		}
	}
	collect(items, "")

	for _, t := range incoming {
		if strings.HasPrefix(t.ParentID, localRef) {
			t.ParentID = idMap[strings.TrimPrefix(t.ParentID, localRef)] // huérfano -> raíz
		}
	}
	return incoming
}

// importCategories devuelve el mapa ID local -> ID de la categoría del usuario. Las categorías
// nuevas se crean en repo, atado a la transacción de la importación.
func (uc *LocalImportUseCase) importCategories(ctx context.Context, repo repository.TodoCategoryRepository, userID string, locals []dto.LocalCategory, res *dto.LocalImportResult) (map[string]string, error) {
	existing, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	bySlug := make(map[string]string, len(existing))
	byName := make(map[string]string, len(existing))
	for _, c := range existing {
		if c.Slug != "" {
			bySlug[c.Slug] = c.ID
		}
		byName[c.Name] = c.ID
	}

	out := make(map[string]string, len(locals))
	for _, lc := range locals {
		name := domain.NormalizeText(lc.Name)
		if id, ok := bySlug[lc.ID]; ok {
			out[lc.ID] = id
			res.CategoriesMatched++
			continue
		}
		if id, ok := byName[name]; ok {
			out[lc.ID] = id
			res.CategoriesMatched++
			continue
		}
		color := lc.Color
		if !entity.IsValidCategoryColor(color) {
			color = ""
		}
		created, err := uc.categories.create(ctx, repo, userID, dto.CreateTodoCategoryRequest{Name: name, Color: color, Icon: lc.Icon})
		if errors.Is(err, domain.ErrInvalidInput) {
			uc.log.Warn().Str("category_id", lc.ID).Err(err).Msg("categoría local omitida")
			continue
		}
		if err != nil {
			return nil, err
		}
		out[lc.ID] = created.ID
		byName[created.Name] = created.ID
		res.CategoriesCreated++
	}
	return out, nil
}

func (uc *LocalImportUseCase) importSettings(ctx context.Context, userID string, ls *dto.LocalSettings, res *dto.LocalImportResult) {
	if _, err := uc.settings.Get(ctx, userID); err == nil {
		res.SettingsSkipped = "el usuario ya tiene configuración de boda"
		return
	}
	req := dto.UpsertWeddingSettingsRequest{
		WeddingDate: parseLocalTime(ls.WeddingDate),
	}
	if ls.BrideName != "" {
		req.BrideName = &ls.BrideName
	}
	if ls.GroomName != "" {
		req.GroomName = &ls.GroomName
	}
	if ls.Theme != "" {
		req.Theme = &ls.Theme
	}
	if ls.WeddingQuote != "" {
		req.WeddingQuote = &ls.WeddingQuote
	}
	if len(ls.BackgroundImages) > 0 {
		req.BackgroundImages = ls.BackgroundImages
	}
	if _, err := uc.settings.Upsert(ctx, userID, req); err != nil {
		res.SettingsSkipped = err.Error()
		return
	}
	res.SettingsImported = true
}

const localRef = "local:"

var localTimeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04", "2006-01-02"}

// parseLocalTime acepta ISO-8601 completo o solo fecha; nil si vacío o ilegible.
func parseLocalTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range localTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func countLocal(items []dto.LocalTodo) int {
	n := 0
	for _, it := range items {
		n += 1 + countLocal(it.Children)
	}
	return n
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
