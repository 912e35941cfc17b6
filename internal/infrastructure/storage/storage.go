// Package storage abre el backend elegido en STORAGE_DRIVER y expone sus repositorios
// detrás de los puertos de dominio.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/wedding-api/internal/application/usecase"
	"github.com/jhoicas/wedding-api/internal/domain/repository"
	"github.com/jhoicas/wedding-api/internal/infrastructure/memory"
	infmongo "github.com/jhoicas/wedding-api/internal/infrastructure/mongo"
	"github.com/jhoicas/wedding-api/internal/infrastructure/postgres"
	"github.com/jhoicas/wedding-api/pkg/config"
	"github.com/jhoicas/wedding-api/pkg/logger"
)

// Repositories puertos de persistencia de un backend ya conectado.
type Repositories struct {
	Users      repository.UserRepository
	Todos      repository.TodoRepository
	Categories repository.TodoCategoryRepository
	Settings   repository.WeddingSettingsRepository
	Tx         usecase.TodoTxRunner

	close func(ctx context.Context) error
}

// Close libera las conexiones del backend.
func (r *Repositories) Close(ctx context.Context) error {
	if r.close == nil {
		return nil
	}
	return r.close(ctx)
}

// Open conecta con el backend configurado. Con postgres aplica las migraciones si
// DB_AUTO_MIGRATE está activo; con mongo crea los índices.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Repositories, error) {
	log = log.Component("storage")
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		return openPostgres(ctx, cfg, log)
	case config.StorageMongo:
		return openMongo(ctx, cfg, log)
	case config.StorageMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &Repositories{
			Users:      memory.NewUserRepository(store),
			Todos:      memory.NewTodoRepository(store),
			Categories: memory.NewTodoCategoryRepository(store),
			Settings:   memory.NewWeddingSettingsRepository(store),
			Tx:         memory.NewTxRunner(store),
		}, nil
	}
	return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Storage.Driver)
}

func openPostgres(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Repositories, error) {
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			pool.Close()
			return nil, err
		}
	}
	log.Info().Str("driver", config.StoragePostgres).Msg("almacenamiento conectado")
	return &Repositories{
		Users:      postgres.NewUserRepository(pool),
		Todos:      postgres.NewTodoRepository(pool),
		Categories: postgres.NewTodoCategoryRepository(pool),
		Settings:   postgres.NewWeddingSettingsRepository(pool),
		Tx:         postgres.NewTxRunner(pool),
		close: func(context.Context) error {
			pool.Close()
			return nil
		},
	}, nil
}

func openMongo(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Repositories, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, db, err := infmongo.Connect(connectCtx, cfg.Mongo)
	if err != nil {
		return nil, err
	}
	if err := infmongo.EnsureIndexes(connectCtx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	log.Info().
		Str("driver", config.StorageMongo).
		Str("database", cfg.Mongo.Database).
		Bool("transactions", cfg.Mongo.Transactions).
		Msg("almacenamiento conectado")
	return &Repositories{
		Users:      infmongo.NewUserRepository(db),
		Todos:      infmongo.NewTodoRepository(db),
		Categories: infmongo.NewTodoCategoryRepository(db),
		Settings:   infmongo.NewWeddingSettingsRepository(db),
		Tx:         infmongo.NewTxRunner(client, db, cfg.Mongo.Transactions),
		close:      client.Disconnect,
	}, nil
}
