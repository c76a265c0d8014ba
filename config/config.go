package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Load loads the configuration from file. When no path is given and no
// config file exists in the standard locations, defaults are used.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".jcc"))
		}
		v.AddConfigPath("/etc/jcc/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.url", "http://localhost:8080")
	v.SetDefault("api.base_path", "/api")
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("api.retries", 1)

	// Cache defaults
	v.SetDefault("cache.size", 64)
	v.SetDefault("cache.ttl", 30*time.Second)

	// Lineup defaults
	v.SetDefault("lineups.page_size", 10)
	v.SetDefault("lineups.default_version", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	v.SetDefault("mock.addr", "127.0.0.1:8080")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.API.URL == "" {
		return fmt.Errorf("api.url is required")
	}

	if cfg.API.BasePath == "" || !strings.HasPrefix(cfg.API.BasePath, "/") {
		return fmt.Errorf("invalid api.base_path: %q (must start with '/')", cfg.API.BasePath)
	}

	if cfg.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}

	// A single transport retry is the most the client will attempt
	if cfg.API.Retries < 0 || cfg.API.Retries > 1 {
		return fmt.Errorf("invalid api.retries: %d (must be 0 or 1)", cfg.API.Retries)
	}

	if cfg.Cache.Size < 0 || cfg.Cache.TTL < 0 {
		return fmt.Errorf("cache.size and cache.ttl must not be negative")
	}

	if cfg.Lineups.PageSize < 1 {
		return fmt.Errorf("invalid lineups.page_size: %d", cfg.Lineups.PageSize)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
