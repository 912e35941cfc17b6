package repository

import (
	"context"

	"github.com/jhoicas/wedding-api/internal/domain/entity"
)

// WeddingSettingsRepository define el puerto de persistencia para WeddingSettings (DIP).
// Un documento por usuario.
type WeddingSettingsRepository interface {
	GetByUser(ctx context.Context, userID string) (*entity.WeddingSettings, error)
	// Upsert crea o reemplaza la configuración del usuario. Conserva ID y CreatedAt si ya existía.
	Upsert(ctx context.Context, settings *entity.WeddingSettings) error
	Delete(ctx context.Context, userID string) error
}
