package memory

import (
	"context"

	"github.com/jhoicas/wedding-api/internal/domain/entity"
	"github.com/jhoicas/wedding-api/internal/domain/repository"
)

var _ repository.WeddingSettingsRepository = (*WeddingSettingsRepo)(nil)

// WeddingSettingsRepo implementación en memoria de WeddingSettingsRepository.
type WeddingSettingsRepo struct {
	s *Store
}

// NewWeddingSettingsRepository construye el repositorio sobre s.
func NewWeddingSettingsRepository(s *Store) *WeddingSettingsRepo {
	return &WeddingSettingsRepo{s: s}
}

// GetByUser obtiene la configuración del usuario.
func (r *WeddingSettingsRepo) GetByUser(_ context.Context, userID string) (*entity.WeddingSettings, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ws, ok := r.s.settings[userID]
	if !ok {
		return nil, nil
	}
	return copySettings(ws), nil
}

// Upsert crea o reemplaza la configuración del usuario conservando ID y CreatedAt.
func (r *WeddingSettingsRepo) Upsert(_ context.Context, settings *entity.WeddingSettings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := copySettings(settings)
	if prev, ok := r.s.settings[settings.UserID]; ok {
		cp.ID = prev.ID
		cp.CreatedAt = prev.CreatedAt
	}
	r.s.settings[settings.UserID] = cp
	return nil
}

// Delete elimina la configuración del usuario.
func (r *WeddingSettingsRepo) Delete(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.settings, userID)
	return nil
}

func copySettings(ws *entity.WeddingSettings) *entity.WeddingSettings {
	cp := *ws
	cp.BackgroundImages = append([]string(nil), ws.BackgroundImages...)
	return &cp
}
