package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "showdex.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "./data/showdex.db", cfg.Database.Path)
	assert.Equal(t, "./configs/dex.json", cfg.Dex.SeedPath)
	assert.Equal(t, "gen9ou", cfg.Dex.Format)
	assert.Equal(t, 30*time.Minute, cfg.Session.IdleTTL)
	assert.Equal(t, time.Minute, cfg.Session.SweepInterval)
	assert.Equal(t, int64(0), cfg.Session.Seed)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
server:
  address: ":9090"
dex:
  format: gen1ou
session:
  idle_ttl: 5m
  seed: 42
logging:
  level: debug
  format: console
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "gen1ou", cfg.Dex.Format)
	assert.Equal(t, 5*time.Minute, cfg.Session.IdleTTL)
	assert.Equal(t, int64(42), cfg.Session.Seed)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	// Untouched sections keep their defaults.
	assert.Equal(t, "./data/showdex.db", cfg.Database.Path)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Address)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfig(t, "server: [not a map")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty address", "server:\n  address: \"\"\n"},
		{"bad log level", "logging:\n  level: loud\n"},
		{"bad log format", "logging:\n  format: xml\n"},
		{"zero idle ttl", "session:\n  idle_ttl: 0s\n"},
		{"zero sweep interval", "session:\n  sweep_interval: 0s\n"},
		{"empty format", "dex:\n  format: \"\"\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.body)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	good := &Config{
		Server:  ServerConfig{Address: ":8080"},
		Dex:     DexConfig{SeedPath: "./dex.json", Format: "gen9ou"},
		Session: SessionConfig{IdleTTL: time.Minute, SweepInterval: time.Second},
		Logging: LoggingConfig{Level: "info", Format: "json"},
	}
	require.NoError(t, good.Validate())

	bad := *good
	bad.Dex.SeedPath = ""
	assert.Error(t, bad.Validate())
}
