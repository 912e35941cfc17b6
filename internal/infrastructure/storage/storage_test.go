package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wedding-api/pkg/config"
	"github.com/jhoicas/wedding-api/pkg/logger"
)

func TestOpen_Memoria(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: config.StorageMemory}}

	repos, err := Open(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	assert.NotNil(t, repos.Users)
	assert.NotNil(t, repos.Todos)
	assert.NotNil(t, repos.Categories)
	assert.NotNil(t, repos.Settings)
	assert.NotNil(t, repos.Tx)
	assert.NoError(t, repos.Close(context.Background()))
}

func TestOpen_DriverDesconocido(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: "sqlite"}}

	_, err := Open(context.Background(), cfg, logger.Nop())
	assert.ErrorContains(t, err, "sqlite")
}
