package usecase

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jhoicas/wedding-api/internal/application/dto"
	"github.com/jhoicas/wedding-api/internal/domain"
	"github.com/jhoicas/wedding-api/internal/domain/entity"
	"github.com/jhoicas/wedding-api/internal/domain/repository"
)

const (
	maxCoupleNameLen   = 50
	maxWeddingQuoteLen = 200
)

// SettingsUseCase casos de uso de la configuración de boda (una por usuario).
type SettingsUseCase struct {
	repo repository.WeddingSettingsRepository
	now  Clock
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.WeddingSettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *SettingsUseCase) WithClock(c Clock) *SettingsUseCase {
	uc.now = c
	return uc
}

// Get devuelve la configuración del usuario o ErrSettingsNotFound.
func (uc *SettingsUseCase) Get(ctx context.Context, userID string) (*dto.WeddingSettingsResponse, error) {
	s, err := uc.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrSettingsNotFound
	}
	return toWeddingSettingsResponse(s), nil
}

// Upsert crea o actualiza la configuración. Los campos ausentes conservan su valor actual,
// o el valor por defecto si es la primera vez. La fecha de la boda, cuando se envía, debe ser futura.
func (uc *SettingsUseCase) Upsert(ctx context.Context, userID string, in dto.UpsertWeddingSettingsRequest) (*dto.WeddingSettingsResponse, error) {
	now := uc.now()
	s, err := uc.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		if in.WeddingDate == nil {
			return nil, domain.NewValidationError("weddingDate", "la fecha de la boda es obligatoria")
		}
		s = &entity.WeddingSettings{
			ID:               uuid.New().String(),
			UserID:           userID,
			BrideName:        entity.DefaultBrideName,
			GroomName:        entity.DefaultGroomName,
			BackgroundImages: append([]string(nil), entity.DefaultBackgroundImages...),
			Theme:            entity.ThemeLight,
			WeddingQuote:     entity.DefaultWeddingQuote,
			CreatedAt:        now,
		}
	}

	if in.BrideName != nil {
		if s.BrideName, err = coupleName("brideName", *in.BrideName); err != nil {
			return nil, err
		}
	}
	if in.GroomName != nil {
		if s.GroomName, err = coupleName("groomName", *in.GroomName); err != nil {
			return nil, err
		}
	}
	if in.WeddingDate != nil {
		if !in.WeddingDate.After(now) {
			return nil, domain.NewValidationError("weddingDate", "la fecha de la boda debe ser futura")
		}
		s.WeddingDate = *in.WeddingDate
	}
	if in.BackgroundImages != nil {
		if len(in.BackgroundImages) > entity.MaxBackgroundImages {
			return nil, domain.NewValidationError("backgroundImages", "se permiten como máximo 6 imágenes de fondo")
		}
		s.BackgroundImages = append([]string{}, in.BackgroundImages...)
	}
	if in.Theme != nil {
		if *in.Theme != entity.ThemeLight && *in.Theme != entity.ThemeDark {
			return nil, domain.NewValidationError("theme", "tema no admitido (light, dark)")
		}
		s.Theme = *in.Theme
	}
	if in.WeddingQuote != nil {
		quote := domain.NormalizeText(*in.WeddingQuote)
		if utf8.RuneCountInString(quote) > maxWeddingQuoteLen {
			return nil, domain.NewValidationError("weddingQuote", "la frase no puede superar 200 caracteres")
		}
		s.WeddingQuote = quote
	}
	s.UpdatedAt = now

	if err := uc.repo.Upsert(ctx, s); err != nil {
		return nil, err
	}
	return toWeddingSettingsResponse(s), nil
}

// Delete elimina la configuración del usuario.
func (uc *SettingsUseCase) Delete(ctx context.Context, userID string) error {
	s, err := uc.repo.GetByUser(ctx, userID)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrSettingsNotFound
	}
	return uc.repo.Delete(ctx, userID)
}

// Countdown tiempo restante hasta la boda.
func (uc *SettingsUseCase) Countdown(ctx context.Context, userID string) (*dto.CountdownResponse, error) {
	s, err := uc.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrSettingsNotFound
	}
	c := countdown(s.WeddingDate, uc.now())
	return &c, nil
}

// countdown descompone la diferencia en días, horas, minutos y segundos (truncados).
// Una fecha pasada da todo en cero con Passed=true.
func countdown(target, now time.Time) dto.CountdownResponse {
	c := dto.CountdownResponse{WeddingDate: target}
	d := target.Sub(now)
	if d <= 0 {
		c.Passed = true
		return c
	}
	total := int64(d / time.Second)
	c.Days = int(total / 86400)
	c.Hours = int(total % 86400 / 3600)
	c.Minutes = int(total % 3600 / 60)
	c.Seconds = int(total % 60)
	return c
}

func coupleName(field, raw string) (string, error) {
	name := domain.NormalizeText(raw)
	if name == "" {
		return "", domain.NewValidationError(field, "el nombre es obligatorio")
	}
	if utf8.RuneCountInString(name) > maxCoupleNameLen {
		return "", domain.NewValidationError(field, "el nombre no puede superar 50 caracteres")
	}
	return name, nil
}

func toWeddingSettingsResponse(s *entity.WeddingSettings) *dto.WeddingSettingsResponse {
	if s == nil {
		return nil
	}
	images := s.BackgroundImages
	if images == nil {
		images = []string{}
	}
	return &dto.WeddingSettingsResponse{
		ID:               s.ID,
		BrideName:        s.BrideName,
		GroomName:        s.GroomName,
		WeddingDate:      s.WeddingDate,
		BackgroundImages: images,
		Theme:            s.Theme,
		WeddingQuote:     s.WeddingQuote,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}
