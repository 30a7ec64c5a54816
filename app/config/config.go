// Package config loads application settings from the environment, an
// optional northwind.yaml file and built-in defaults, in that order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig holds store connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (DATABASE_URL, required)
	URL string `mapstructure:"url"`

	// Driver selects the database/sql driver under gorm: pgx or postgres (lib/pq)
	Driver string `mapstructure:"driver"`

	// MaxOpenConns caps the connection pool (default: 4)
	MaxOpenConns int `mapstructure:"max_open_conns"`

	// MaxIdleConns is how many released connections are kept (default: 1)
	MaxIdleConns int `mapstructure:"max_idle_conns"`

	// ConnMaxIdleTime closes connections idle for longer (default: 1m)
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`

	// LogLevel is the SQL log level: silent, error, warn, info (default: silent)
	LogLevel string `mapstructure:"log_level"`
}

// LogConfig holds logging sink settings.
type LogConfig struct {
	// Level is the minimum level: debug, info, warn, error (default: info)
	Level string `mapstructure:"level"`

	// Format is text or json (default: text)
	Format string `mapstructure:"format"`

	// File receives log entries; empty writes to stderr (default: northwind.log)
	File string `mapstructure:"file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.url", "")
	v.SetDefault("database.driver", "pgx")
	v.SetDefault("database.max_open_conns", 4)
	v.SetDefault("database.max_idle_conns", 1)
	v.SetDefault("database.conn_max_idle_time", time.Minute)
	v.SetDefault("database.log_level", "silent")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "northwind.log")
}

// Load reads the configuration. northwind.yaml is looked up in paths, or in
// the working directory when no path is given; a missing file is not an
// error.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("northwind")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	if c.Database.URL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}
	switch strings.ToLower(c.Database.Driver) {
	case "pgx", "postgres":
	default:
		errs = append(errs, fmt.Sprintf("DATABASE_DRIVER (%q) must be one of: pgx, postgres", c.Database.Driver))
	}
	if c.Database.MaxOpenConns <= 0 {
		errs = append(errs, "DATABASE_MAX_OPEN_CONNS must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		errs = append(errs, "DATABASE_MAX_IDLE_CONNS must be non-negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		errs = append(errs, fmt.Sprintf("DATABASE_MAX_IDLE_CONNS (%d) must be <= DATABASE_MAX_OPEN_CONNS (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns))
	}

	validSQLLevels := map[string]bool{"silent": true, "error": true, "warn": true, "info": true}
	if !validSQLLevels[strings.ToLower(c.Database.LogLevel)] {
		errs = append(errs, fmt.Sprintf("DATABASE_LOG_LEVEL (%q) must be one of: silent, error, warn, info", c.Database.LogLevel))
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Log.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Log.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
