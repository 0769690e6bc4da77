package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Calculator holds all configuration for the dfocalc CLI.
type Calculator struct {
	LogLevel string `yaml:"log_level" env:"DFOCALC_LOG_LEVEL"`
	Workers  int    `yaml:"workers" env:"DFOCALC_WORKERS"`

	// Cleansing set: true selects the cooldown mode, false the damage mode.
	CleansingCDR bool `yaml:"cleansing_cdr" env:"DFOCALC_CLEANSING_CDR"`

	Database DatabaseConfig `yaml:"database" envPrefix:"DFOCALC_DB_"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled" env:"ENABLED"`
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	DBName   string `yaml:"dbname" env:"NAME"`
	SSLMode  string `yaml:"sslmode" env:"SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultCalculator returns Calculator config with sensible defaults.
func DefaultCalculator() Calculator {
	return Calculator{
		LogLevel:     "info",
		Workers:      8,
		CleansingCDR: true,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "dfocalc",
			Password: "dfocalc",
			DBName:   "dfocalc",
			SSLMode:  "disable",
		},
	}
}

// LoadCalculator loads config from a YAML file and applies DFOCALC_*
// environment overrides on top. A missing file yields the defaults.
func LoadCalculator(path string) (Calculator, error) {
	cfg := DefaultCalculator()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c Calculator) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Database.Enabled && c.Database.Host == "" {
		return errors.New("database.host is required when the database is enabled")
	}
	return nil
}

// Level returns the slog level of LogLevel, falling back to info.
func (c Calculator) Level() slog.Level {
	lvl, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// ParseLevel maps debug|info|warn|error to a slog level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
