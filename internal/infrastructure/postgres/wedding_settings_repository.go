package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/wedding-api/internal/domain/entity"
	"github.com/jhoicas/wedding-api/internal/domain/repository"
)

var _ repository.WeddingSettingsRepository = (*WeddingSettingsRepo)(nil)

// WeddingSettingsRepo implementación de WeddingSettingsRepository sobre PostgreSQL.
type WeddingSettingsRepo struct {
	q Querier
}

// NewWeddingSettingsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWeddingSettingsRepository(q Querier) *WeddingSettingsRepo {
	return &WeddingSettingsRepo{q: q}
}

// GetByUser obtiene la configuración del usuario.
func (r *WeddingSettingsRepo) GetByUser(ctx context.Context, userID string) (*entity.WeddingSettings, error) {
	query := `
		SELECT id, user_id, bride_name, groom_name, wedding_date, background_images, theme, wedding_quote, created_at, updated_at
		FROM wedding_settings WHERE user_id = $1`
	var s entity.WeddingSettings
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&s.ID, &s.UserID, &s.BrideName, &s.GroomName, &s.WeddingDate, &s.BackgroundImages,
		&s.Theme, &s.WeddingQuote, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wedding settings: %w", err)
	}
	return &s, nil
}

// Upsert inserta o reemplaza la configuración (una por usuario). Conserva id y created_at.
func (r *WeddingSettingsRepo) Upsert(ctx context.Context, s *entity.WeddingSettings) error {
	images := s.BackgroundImages
	if images == nil {
		images = []string{}
	}
	query := `
		INSERT INTO wedding_settings (id, user_id, bride_name, groom_name, wedding_date, background_images, theme, wedding_quote, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id) DO UPDATE SET
			bride_name = EXCLUDED.bride_name,
			groom_name = EXCLUDED.groom_name,
			wedding_date = EXCLUDED.wedding_date,
			background_images = EXCLUDED.background_images,
			theme = EXCLUDED.theme,
			wedding_quote = EXCLUDED.wedding_quote,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		s.ID, s.UserID, s.BrideName, s.GroomName, s.WeddingDate, images,
		s.Theme, s.WeddingQuote, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert wedding settings: %w", err)
	}
	return nil
}

// Delete elimina la configuración del usuario.
func (r *WeddingSettingsRepo) Delete(ctx context.Context, userID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM wedding_settings WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete wedding settings: %w", err)
	}
	return nil
}
