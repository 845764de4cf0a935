package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "./data/matrixview.db", cfg.DBPath)
	assert.Equal(t, "matrixview_notes", cfg.StorageKey)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 720*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "₹", cfg.Currency)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.AuthEnabled())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_KEY", "other_notes")
	t.Setenv("AUTH_SECRET", "s3cret")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "other_notes", cfg.StorageKey)
	assert.True(t, cfg.AuthEnabled())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CURRENCY_SYMBOL=€\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("CURRENCY_SYMBOL") })

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "€", cfg.Currency)
}

func TestLoad_MissingEnvFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"), nil)
	assert.NoError(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_PATH", "/env/notes.db")
	t.Setenv("PORT", "9090")

	cfg, err := Load("", &Config{DBPath: "/flag/notes.db"})
	require.NoError(t, err)

	assert.Equal(t, "/flag/notes.db", cfg.DBPath)
	assert.Equal(t, 9090, cfg.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"port zero", func(c *Config) { c.Port = 0 }},
		{"port too large", func(c *Config) { c.Port = 70000 }},
		{"empty db path", func(c *Config) { c.DBPath = " " }},
		{"empty storage key", func(c *Config) { c.StorageKey = "" }},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }},
		{"non-positive ttl", func(c *Config) { c.TokenTTL = 0 }},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Port:       8080,
				DBPath:     "notes.db",
				StorageKey: "matrixview_notes",
				LogLevel:   "info",
				TokenTTL:   time.Hour,
			}
			require.NoError(t, cfg.Validate())

			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
