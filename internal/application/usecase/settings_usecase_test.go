package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wedding-api/internal/application/dto"
	"github.com/jhoicas/wedding-api/internal/domain"
	"github.com/jhoicas/wedding-api/internal/domain/entity"
)

func TestSettingsGet_SinConfiguracion(t *testing.T) {
	f := newFixture()
	_, err := f.settingsUC.Get(context.Background(), "u1")
	assert.ErrorIs(t, err, domain.ErrSettingsNotFound)
}

func TestSettingsUpsert_PrimeraVezUsaValoresPorDefecto(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	date := fixedNow.AddDate(0, 6, 0)

	res, err := f.settingsUC.Upsert(ctx, "u1", dto.UpsertWeddingSettingsRequest{WeddingDate: &date})
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, entity.DefaultBrideName, res.BrideName)
	assert.Equal(t, entity.DefaultGroomName, res.GroomName)
	assert.Equal(t, entity.ThemeLight, res.Theme)
	assert.Equal(t, entity.DefaultWeddingQuote, res.WeddingQuote)
	assert.Equal(t, entity.DefaultBackgroundImages, res.BackgroundImages)
	assert.True(t, date.Equal(res.WeddingDate))

	got, err := f.settingsUC.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, res.ID, got.ID)
}

func TestSettingsUpsert_ActualizacionParcialConservaIdentidad(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	date := fixedNow.AddDate(1, 0, 0)
	first, err := f.settingsUC.Upsert(ctx, "u1", dto.UpsertWeddingSettingsRequest{WeddingDate: &date})
	require.NoError(t, err)

	res, err := f.settingsUC.Upsert(ctx, "u1", dto.UpsertWeddingSettingsRequest{
		BrideName:        ptr(" 小美 "),
		Theme:            ptr(entity.ThemeDark),
		BackgroundImages: []string{},
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, res.ID)
	assert.Equal(t, "小美", res.BrideName)
	assert.Equal(t, entity.DefaultGroomName, res.GroomName)
	assert.Equal(t, entity.ThemeDark, res.Theme)
	assert.Empty(t, res.BackgroundImages)
	assert.NotNil(t, res.BackgroundImages)
	assert.True(t, date.Equal(res.WeddingDate), "la fecha ausente se conserva")
}

func TestSettingsUpsert_Validaciones(t *testing.T) {
	past := fixedNow.Add(-time.Minute)
	future := fixedNow.AddDate(0, 1, 0)
	cases := map[string]dto.UpsertWeddingSettingsRequest{
		"sin fecha la primera vez": {BrideName: ptr("小美")},
		"fecha pasada":             {WeddingDate: &past},
		"fecha igual a ahora":      {WeddingDate: ptr(fixedNow)},
		"siete imágenes":           {WeddingDate: &future, BackgroundImages: []string{"1", "2", "3", "4", "5", "6", "7"}},
		"tema desconocido":         {WeddingDate: &future, Theme: ptr("sepia")},
		"nombre vacío":             {WeddingDate: &future, GroomName: ptr("  ")},
		"nombre largo":             {WeddingDate: &future, GroomName: ptr(strings.Repeat("郎", 51))},
		"frase larga":              {WeddingDate: &future, WeddingQuote: ptr(strings.Repeat("爱", 201))},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			_, err := f.settingsUC.Upsert(context.Background(), "u1", in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			_, err = f.settingsUC.Get(context.Background(), "u1")
			assert.ErrorIs(t, err, domain.ErrSettingsNotFound, "un rechazo no persiste nada")
		})
	}
}

func TestSettingsUpsert_SeisImagenesEsElLimite(t *testing.T) {
	f := newFixture()
	future := fixedNow.AddDate(0, 1, 0)
	res, err := f.settingsUC.Upsert(context.Background(), "u1", dto.UpsertWeddingSettingsRequest{
		WeddingDate:      &future,
		BackgroundImages: []string{"1", "2", "3", "4", "5", "data:image/png;base64,AAAA"},
	})
	require.NoError(t, err)
	assert.Len(t, res.BackgroundImages, 6)
}

func TestSettingsCountdown(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	date := fixedNow.Add(3*24*time.Hour + 4*time.Hour + 5*time.Minute + 6*time.Second + 700*time.Millisecond)
	_, err := f.settingsUC.Upsert(ctx, "u1", dto.UpsertWeddingSettingsRequest{WeddingDate: &date})
	require.NoError(t, err)

	c, err := f.settingsUC.Countdown(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, c.Days)
	assert.Equal(t, 4, c.Hours)
	assert.Equal(t, 5, c.Minutes)
	assert.Equal(t, 6, c.Seconds)
	assert.False(t, c.Passed)

	// el día de la boda pasa
	f.settingsUC.WithClock(func() time.Time { return date.Add(time.Second) })
	c, err = f.settingsUC.Countdown(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, c.Passed)
	assert.Zero(t, c.Days+c.Hours+c.Minutes+c.Seconds)

	_, err = f.settingsUC.Countdown(ctx, "u2")
	assert.ErrorIs(t, err, domain.ErrSettingsNotFound)
}

func TestSettingsDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	date := fixedNow.AddDate(0, 2, 0)
	_, err := f.settingsUC.Upsert(ctx, "u1", dto.UpsertWeddingSettingsRequest{WeddingDate: &date})
	require.NoError(t, err)

	require.NoError(t, f.settingsUC.Delete(ctx, "u1"))
	assert.ErrorIs(t, f.settingsUC.Delete(ctx, "u1"), domain.ErrSettingsNotFound)
	_, err = f.settingsUC.Get(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrSettingsNotFound)
}
