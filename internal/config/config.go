// Package config provides configuration management for the pricer CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"

	"lattice-pricer/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	Pricing  PricingConfig  `mapstructure:"pricing"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	UI       UIConfig       `mapstructure:"ui"`
}

// PricingConfig holds lattice defaults.
type PricingConfig struct {
	DefaultSteps int     `mapstructure:"default_steps"` // lattice steps when --steps is omitted
	Workers      int     `mapstructure:"workers"`       // 0 = one per CPU
	GreeksBump   float64 `mapstructure:"greeks_bump"`   // relative bump for bump-and-reprice Greeks
}

// DatabaseConfig holds run-history persistence configuration.
type DatabaseConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`    // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`     // days
}

// UIConfig holds terminal output configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/lattice-pricer"
	}
	return filepath.Join(home, ".config", "lattice-pricer")
}

// Default returns the built-in configuration.
func Default() *Config {
	dir := DefaultConfigDir()
	return &Config{
		Pricing: PricingConfig{
			DefaultSteps: 100,
			Workers:      0,
			GreeksBump:   0.01,
		},
		Database: DatabaseConfig{
			Enabled: true,
			Path:    filepath.Join(dir, "pricer.db"),
		},
		Logging: LoggingConfig{
			Level:      "info",
			Console:    true,
			File:       true,
			FilePath:   filepath.Join(dir, "logs", "pricer.log"),
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     30,
		},
		UI: UIConfig{
			ColorEnabled: true,
			DateFormat:   "2006-01-02",
		},
	}
}

// Load loads configuration from the specified directory. If configDir
// is empty, the default config directory is used; a missing config file
// creates a commented template and falls back to defaults.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if err := writeTemplateConfig(configDir); err != nil {
				return nil, fmt.Errorf("creating config template: %w", err)
			}
		} else {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
	} else if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies PRICER_* environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PRICER_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("PRICER_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("PRICER_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Pricing.Workers = n
		}
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Pricing.DefaultSteps < 1 {
		return errors.Wrapf(errors.ErrConfigInvalid, "pricing.default_steps = %d", c.Pricing.DefaultSteps)
	}
	if c.Pricing.Workers < 0 {
		return errors.Wrapf(errors.ErrConfigInvalid, "pricing.workers = %d", c.Pricing.Workers)
	}
	if c.Pricing.GreeksBump <= 0 || c.Pricing.GreeksBump >= 1 {
		return errors.Wrapf(errors.ErrConfigInvalid, "pricing.greeks_bump = %g", c.Pricing.GreeksBump)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.Wrapf(errors.ErrConfigInvalid, "logging.level = %q", c.Logging.Level)
	}
	return nil
}
