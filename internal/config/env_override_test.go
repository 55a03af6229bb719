package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides_Paths(t *testing.T) {
	t.Run("SATRADAR_DB overrides database path", func(t *testing.T) {
		t.Setenv("SATRADAR_DB", "/tmp/override.db")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "/tmp/override.db", cfg.Catalog.DatabasePath)
	})

	t.Run("SATRADAR_CSV overrides csv path", func(t *testing.T) {
		t.Setenv("SATRADAR_CSV", "/tmp/override.csv")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "/tmp/override.csv", cfg.Catalog.CSVPath)
	})

	t.Run("SATRADAR_HARVEST_DIR overrides harvest dir", func(t *testing.T) {
		t.Setenv("SATRADAR_HARVEST_DIR", "/var/logs/discoveries")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "/var/logs/discoveries", cfg.Harvest.Dir)
	})

	t.Run("SATRADAR_FIGURES_DIR overrides figure dir", func(t *testing.T) {
		t.Setenv("SATRADAR_FIGURES_DIR", "/tmp/figs")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "/tmp/figs", cfg.Figures.OutDir)
	})

	t.Run("empty env leaves file values alone", func(t *testing.T) {
		t.Setenv("SATRADAR_DB", "")

		cfg := DefaultConfig()
		cfg.Catalog.DatabasePath = "from-file.db"
		cfg.applyEnvOverrides()

		assert.Equal(t, "from-file.db", cfg.Catalog.DatabasePath)
	})
}

func TestEnvOverrides_LogLevel(t *testing.T) {
	t.Setenv("SATRADAR_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestEnvOverrides_AppliedByLoad(t *testing.T) {
	t.Setenv("SATRADAR_DB", "/env/wins.db")

	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Catalog.DatabasePath = "file-value.db"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/env/wins.db", loaded.Catalog.DatabasePath)
}
