package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opp-dev/polla-api/models"
)

func TestSettingsLoadCreatesDefaults(t *testing.T) {
	dir := t.TempDir()
	repo := NewFileSettingsRepository(dir, 0)

	settings, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), settings)

	// Файл создан первым же чтением.
	_, err = os.Stat(filepath.Join(dir, "config.json"))
	assert.NoError(t, err)
}

func TestSettingsLoadBackfillsMissingKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"points_exact": 5}`), 0o644))

	repo := NewFileSettingsRepository(dir, 0)
	settings, err := repo.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, settings.PointsExact)
	assert.Equal(t, 1, settings.PointsOutcome)
	assert.Equal(t, "admin123", settings.AdminPassword)
	assert.True(t, settings.ShowLocalTime)
}

func TestSettingsLoadToleratesBrokenJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"points_exact": `), 0o644))

	repo := NewFileSettingsRepository(dir, 0)
	settings, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), settings)
}

func TestSettingsSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	repo := NewFileSettingsRepository(dir, 0)
	ctx := context.Background()

	want := models.Settings{
		PointsExact:   5,
		PointsOutcome: 2,
		AdminPassword: "$2a$10$examplehash",
		ShowLocalTime: false,
	}
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
