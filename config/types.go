package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Lineups LineupsConfig `mapstructure:"lineups"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
	Mock    MockConfig    `mapstructure:"mock"`
}

// APIConfig holds the backend connection details
type APIConfig struct {
	URL      string        `mapstructure:"url"`
	BasePath string        `mapstructure:"base_path"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Retries  int           `mapstructure:"retries"`
}

// CacheConfig controls the per-hook result cache
type CacheConfig struct {
	Size int           `mapstructure:"size"`
	TTL  time.Duration `mapstructure:"ttl"`
}

// LineupsConfig holds defaults for lineup listings
type LineupsConfig struct {
	PageSize       int    `mapstructure:"page_size"`
	DefaultVersion string `mapstructure:"default_version"`
}

// FilterConfig contains named filter expressions
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// MockConfig configures the local mock backend
type MockConfig struct {
	Addr string `mapstructure:"addr"`
}
