// Package config provides Viper-based configuration loading for the
// showdex simulation service.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Address is the bind address, e.g. ":8080".
	Address string `mapstructure:"address"`
}

// DatabaseConfig holds SQLite settings for the move dex and the
// simulation-summary history.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// DexConfig holds the move-metadata seed settings.
type DexConfig struct {
	// SeedPath is the JSON seed file loaded at startup.
	SeedPath string `mapstructure:"seed_path"`
	// Format is the default ruleset tag for sessions and lookups.
	Format string `mapstructure:"format"`
}

// SessionConfig holds simulation-session settings.
type SessionConfig struct {
	// IdleTTL is how long a session may sit untouched before the sweeper
	// discards it.
	IdleTTL time.Duration `mapstructure:"idle_ttl"`
	// SweepInterval is the sweeper's tick period.
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
	// Seed, when non-zero, fixes the order tie-break random source so
	// whole simulations replay identically.
	Seed int64 `mapstructure:"seed"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Config is the full service configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Dex      DexConfig      `mapstructure:"dex"`
	Session  SessionConfig  `mapstructure:"session"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// Validate checks the configuration for values the service cannot run
// with.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return errors.New("server.address must not be empty")
	}
	if c.Dex.SeedPath == "" {
		return errors.New("dex.seed_path must not be empty")
	}
	if c.Dex.Format == "" {
		return errors.New("dex.format must not be empty")
	}
	if c.Session.IdleTTL <= 0 {
		return errors.New("session.idle_ttl must be positive")
	}
	if c.Session.SweepInterval <= 0 {
		return errors.New("session.sweep_interval must be positive")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug|info|warn|error", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format %q is not one of json|console", c.Logging.Format)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("database.path", "./data/showdex.db")
	v.SetDefault("dex.seed_path", "./configs/dex.json")
	v.SetDefault("dex.format", "gen9ou")
	v.SetDefault("session.idle_ttl", 30*time.Minute)
	v.SetDefault("session.sweep_interval", time.Minute)
	v.SetDefault("session.seed", int64(0))
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Load reads the configuration file at path (YAML or JSON, decided by
// extension), applies SHOWDEX_* environment overrides and validates the
// result. A missing file is not an error: defaults plus environment win.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("showdex")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
