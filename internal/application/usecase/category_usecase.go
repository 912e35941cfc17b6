package usecase

import (
	"context"
	"errors"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jhoicas/wedding-api/internal/application/dto"
	"github.com/jhoicas/wedding-api/internal/domain"
	"github.com/jhoicas/wedding-api/internal/domain/entity"
	"github.com/jhoicas/wedding-api/internal/domain/repository"
	"github.com/jhoicas/wedding-api/pkg/logger"
)

const (
	maxCategoryNameLen = 50
	maxCategoryIconLen = 10
)

// CategoryUseCase casos de uso CRUD para categorías de tareas. Siembra las categorías
// por defecto la primera vez que un usuario sin categorías las lista.
type CategoryUseCase struct {
	repo   repository.TodoCategoryRepository
	tx     TodoTxRunner
	log    *logger.Logger
	now    Clock
	seedMu sync.Mutex
}

// NewCategoryUseCase construye el caso de uso. tx es el mismo runner que usan las mutaciones
// de tareas: el borrado comprueba el uso de la categoría dentro de esa transacción.
func NewCategoryUseCase(repo repository.TodoCategoryRepository, tx TodoTxRunner, log *logger.Logger) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, tx: tx, log: log.Component("categories"), now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *CategoryUseCase) WithClock(c Clock) *CategoryUseCase {
	uc.now = c
	return uc
}

// List devuelve las categorías del usuario ordenadas por Order.
func (uc *CategoryUseCase) List(ctx context.Context, userID string) ([]dto.TodoCategoryResponse, error) {
	list, err := uc.listEntities(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TodoCategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toTodoCategoryResponse(c))
	}
	return items, nil
}

// Create crea una categoría. Color por defecto gray, icono 📦, orden al final.
func (uc *CategoryUseCase) Create(ctx context.Context, userID string, in dto.CreateTodoCategoryRequest) (*dto.TodoCategoryResponse, error) {
	category, err := uc.create(ctx, uc.repo, userID, in)
	if err != nil {
		return nil, err
	}
	return toTodoCategoryResponse(category), nil
}

// create valida y persiste en repo, que puede estar atado a una transacción.
func (uc *CategoryUseCase) create(ctx context.Context, repo repository.TodoCategoryRepository, userID string, in dto.CreateTodoCategoryRequest) (*entity.TodoCategory, error) {
	name, err := categoryName(in.Name)
	if err != nil {
		return nil, err
	}
	color := in.Color
	if color == "" {
		color = entity.DefaultCategoryColor
	}
	if !entity.IsValidCategoryColor(color) {
		return nil, domain.NewValidationError("color", "color de categoría no admitido")
	}
	icon := domain.NormalizeText(in.Icon)
	if icon == "" {
		icon = entity.DefaultCategoryIcon
	}
	if utf8.RuneCountInString(icon) > maxCategoryIconLen {
		return nil, domain.NewValidationError("icon", "el icono no puede superar 10 caracteres")
	}
	order := 0
	if in.Order != nil {
		if *in.Order < 1 {
			return nil, domain.NewValidationError("order", "el orden debe ser mayor que cero")
		}
		order = *in.Order
	} else {
		last, err := repo.MaxOrder(ctx, userID)
		if err != nil {
			return nil, err
		}
		order = last + 1
	}

	now := uc.now()
	category := &entity.TodoCategory{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Color:     color,
		Icon:      icon,
		Order:     order,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update actualiza una categoría del usuario.
func (uc *CategoryUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateTodoCategoryRequest) (*dto.TodoCategoryResponse, error) {
	category, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrCategoryNotFound
	}
	if in.Name != nil {
		name, err := categoryName(*in.Name)
		if err != nil {
			return nil, err
		}
		category.Name = name
	}
	if in.Color != nil {
		if !entity.IsValidCategoryColor(*in.Color) {
			return nil, domain.NewValidationError("color", "color de categoría no admitido")
		}
		category.Color = *in.Color
	}
	if in.Icon != nil {
		icon := domain.NormalizeText(*in.Icon)
		if icon == "" {
			icon = entity.DefaultCategoryIcon
		}
		if utf8.RuneCountInString(icon) > maxCategoryIconLen {
			return nil, domain.NewValidationError("icon", "el icono no puede superar 10 caracteres")
		}
		category.Icon = icon
	}
	if in.Order != nil {
		if *in.Order < 1 {
			return nil, domain.NewValidationError("order", "el orden debe ser mayor que cero")
		}
		category.Order = *in.Order
	}
	category.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return toTodoCategoryResponse(category), nil
}

// Delete elimina una categoría. Se rechaza con ErrCategoryInUse mientras alguna tarea la referencie.
// El conteo y el borrado van en la transacción de tareas: una tarea creada en paralelo no puede
// quedar apuntando a la categoría borrada.
func (uc *CategoryUseCase) Delete(ctx context.Context, userID, id string) error {
	return uc.tx.RunTodos(ctx, func(todos repository.TodoRepository, categories repository.TodoCategoryRepository) error {
		category, err := categories.GetByID(ctx, userID, id)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.ErrCategoryNotFound
		}
		n, err := todos.CountByCategory(ctx, userID, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrCategoryInUse
		}
		return categories.Delete(ctx, userID, id)
	})
}

// listEntities lista las categorías sembrando las ocho por defecto si el usuario no tiene ninguna.
func (uc *CategoryUseCase) listEntities(ctx context.Context, userID string) ([]*entity.TodoCategory, error) {
	list, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(list) > 0 {
		return list, nil
	}

	uc.seedMu.Lock()
	defer uc.seedMu.Unlock()
	// otra petición pudo sembrar mientras esperábamos el lock
	if list, err = uc.repo.ListByUser(ctx, userID); err != nil || len(list) > 0 {
		return list, err
	}

	now := uc.now()
	seed := make([]*entity.TodoCategory, 0, len(entity.DefaultCategories))
	for _, d := range entity.DefaultCategories {
		seed = append(seed, &entity.TodoCategory{
			ID:        uuid.New().String(),
			UserID:    userID,
			Slug:      d.Slug,
			Name:      d.Name,
			Color:     d.Color,
			Icon:      d.Icon,
			Order:     d.Order,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	if err := uc.repo.CreateMany(ctx, seed); err != nil {
		// otra instancia sembró primero (índice único user_id+slug)
		if errors.Is(err, domain.ErrConflict) {
			return uc.repo.ListByUser(ctx, userID)
		}
		uc.log.Error().Err(err).Str("user_id", userID).Msg("error sembrando categorías por defecto")
		return nil, err
	}
	uc.log.Info().Str("user_id", userID).Int("count", len(seed)).Msg("categorías por defecto creadas")
	return seed, nil
}

// resolve devuelve la categoría indicada o, si id está vacío, la categoría por defecto del usuario
// (ver resolveIn), sembrando antes las categorías por defecto si hace falta.
func (uc *CategoryUseCase) resolve(ctx context.Context, userID, id string) (*entity.TodoCategory, error) {
	if id == "" {
		if _, err := uc.listEntities(ctx, userID); err != nil {
			return nil, err
		}
	}
	return resolveIn(ctx, uc.repo, userID, id)
}

// resolveIn como resolve pero sobre repo y sin sembrar: sin id usa "其他事项" si existe,
// si no la de mayor orden.
func resolveIn(ctx context.Context, repo repository.TodoCategoryRepository, userID, id string) (*entity.TodoCategory, error) {
	if id != "" {
		c, err := repo.GetByID(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, domain.NewValidationError("categoryId", "la categoría no existe")
		}
		return c, nil
	}
	c, err := repo.GetBySlug(ctx, userID, entity.FallbackCategorySlug)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}
	list, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.NewValidationError("categoryId", "el usuario no tiene categorías")
	}
	return list[len(list)-1], nil
}

func categoryName(raw string) (string, error) {
	name := domain.NormalizeText(raw)
	if name == "" {
		return "", domain.NewValidationError("name", "el nombre de la categoría es obligatorio")
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLen {
		return "", domain.NewValidationError("name", "el nombre no puede superar 50 caracteres")
	}
	return name, nil
}

func toTodoCategoryResponse(c *entity.TodoCategory) *dto.TodoCategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.TodoCategoryResponse{
		ID:        c.ID,
		Slug:      c.Slug,
		Name:      c.Name,
		Color:     c.Color,
		Icon:      c.Icon,
		Order:     c.Order,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
