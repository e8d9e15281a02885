package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "saves", cfg.Stocktake.SaveDir)
	assert.Equal(t, 10, cfg.Stocktake.MinBarcodeLength)
	assert.Equal(t, 1, cfg.Stocktake.AutosaveCount)
	assert.Equal(t, 10, cfg.Stocktake.AutosaveCountNewFile)
	assert.Equal(t, 3, cfg.Stocktake.RetainFiles)
	assert.Equal(t, 30, cfg.Stocktake.MaxGroupSize)
	assert.Equal(t, 3, cfg.Sources.BarcodeColumn)
	assert.Equal(t, "Material", cfg.Sources.MaterialHeader)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.False(t, cfg.Storage.Enabled)
	assert.Equal(t, "snapshots/", cfg.Storage.Prefix)
	assert.Equal(t, "*/15 * * * *", cfg.Scheduler.ArchiveSpec)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("STOCKTAKE_RETAIN_FILES", "7")
	t.Setenv("STORAGE_ENABLED", "true")
	t.Setenv("SOURCES_MATERIAL_HEADER", "Grade")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Stocktake.RetainFiles)
	assert.True(t, cfg.Storage.Enabled)
	assert.Equal(t, "Grade", cfg.Sources.MaterialHeader)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SERVER_PORT=9090\nSTOCKTAKE_SAVE_DIR=/tmp/saves\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("STOCKTAKE_SAVE_DIR")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/tmp/saves", cfg.Stocktake.SaveDir)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("STOCKTAKE_DEFAULT_LOAD_MODE", "merge")

	_, err := LoadConfig(t.TempDir())
	assert.ErrorContains(t, err, "invalid stocktake configuration")
}

func TestConfig_Validate(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	cfg.Scheduler.Enabled = true
	cfg.Scheduler.ArchiveSpec = "every quarter hour"
	cfg.Database.Driver = "postgres"

	err = cfg.Validate()
	assert.ErrorContains(t, err, "invalid scheduler configuration")
	assert.ErrorContains(t, err, "invalid database configuration")

	cfg.Scheduler.ArchiveSpec = "*/5 * * * *"
	cfg.Database.Driver = "mysql"
	assert.NoError(t, cfg.Validate())
}
