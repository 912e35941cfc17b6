package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg := fromViper(viper.New())

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
	assert.Equal(t, 7*24*60, cfg.JWT.Expiration)
	assert.Equal(t, "token", cfg.Auth.CookieName)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.False(t, cfg.Mongo.Transactions)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Empty(t, cfg.PDF.FontPath)
}

func TestFromViper_Sobrescritos(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "Mongo")
	v.Set("HTTP_PORT", "9090")
	v.Set("MONGODB_TRANSACTIONS", "true")
	v.Set("JWT_EXPIRATION_MINUTES", "abc")
	v.Set("PDF_FONT_PATH", "/fonts/NotoSansSC.ttf")

	cfg := fromViper(v)
	assert.Equal(t, StorageMongo, cfg.Storage.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Mongo.Transactions)
	assert.Equal(t, 7*24*60, cfg.JWT.Expiration, "valor no numérico usa el defecto")
	assert.Equal(t, "/fonts/NotoSansSC.ttf", cfg.PDF.FontPath)
}

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", cfg.JWT.Secret)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		c := fromViper(viper.New())
		c.JWT.Secret = "x"
		return c
	}

	assert.NoError(t, base().Validate())

	c := base()
	c.JWT.Secret = ""
	assert.Error(t, c.Validate())

	c = base()
	c.Storage.Driver = "sqlite"
	assert.Error(t, c.Validate())

	c = base()
	c.Storage.Driver = StorageMongo
	c.Mongo.URI = ""
	assert.Error(t, c.Validate())
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss/word", DBName: "wedding", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss%2Fword@db:5432/wedding?sslmode=disable", c.ConnectionString())
}
