package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/wedding-api/internal/application/dto"
	"github.com/jhoicas/wedding-api/internal/domain/entity"
	"github.com/jhoicas/wedding-api/internal/domain/repository"
)

// DashboardUseCase arma el resumen de la página de inicio: cuenta regresiva y avance de tareas.
//
// Fuente de datos: WeddingSettingsRepository y TodoRepository.StatsByUser (conteo hecho en el
// almacén, sin reconstruir el árbol).
type DashboardUseCase struct {
	settings repository.WeddingSettingsRepository
	todos    repository.TodoRepository
	now      Clock
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(settings repository.WeddingSettingsRepository, todos repository.TodoRepository) *DashboardUseCase {
	return &DashboardUseCase{settings: settings, todos: todos, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(c Clock) *DashboardUseCase {
	uc.now = c
	return uc
}

// GetSummary construye el resumen del usuario. Las dos consultas corren en paralelo.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, userID string) (*dto.DashboardSummaryDTO, error) {
	type settingsResult struct {
		s   *entity.WeddingSettings
		err error
	}
	type statsResult struct {
		s   *entity.TodoStats
		err error
	}

	settingsCh := make(chan settingsResult, 1)
	statsCh := make(chan statsResult, 1)

	go func() {
		s, err := uc.settings.GetByUser(ctx, userID)
		settingsCh <- settingsResult{s, err}
	}()
	go func() {
		s, err := uc.todos.StatsByUser(ctx, userID)
		statsCh <- statsResult{s, err}
	}()

	settings := <-settingsCh
	stats := <-statsCh

	if settings.err != nil {
		return nil, fmt.Errorf("dashboard: configuración: %w", settings.err)
	}
	if stats.err != nil {
		return nil, fmt.Errorf("dashboard: estadísticas: %w", stats.err)
	}

	out := &dto.DashboardSummaryDTO{
		Todos: dto.TodoStatsResponse{ByCategory: map[string]dto.TodoCountsResponse{}},
	}
	if stats.s != nil {
		out.Todos = *toTodoStatsResponse(stats.s)
		if stats.s.Total > 0 {
			out.Progress = stats.s.Completed * 100 / stats.s.Total
		}
	}
	if settings.s != nil {
		c := countdown(settings.s.WeddingDate, uc.now())
		out.Countdown = &c
		out.BrideName = settings.s.BrideName
		out.GroomName = settings.s.GroomName
	}
	return out, nil
}
