package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		API: APIConfig{
			URL:      "http://localhost:8080",
			BasePath: "/api",
			Timeout:  15 * time.Second,
			Retries:  1,
		},
		Lineups: LineupsConfig{PageSize: 10},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:    "missing url",
			mutate:  func(c *Config) { c.API.URL = "" },
			wantErr: "api.url is required",
		},
		{
			name:    "relative base path",
			mutate:  func(c *Config) { c.API.BasePath = "api" },
			wantErr: "invalid api.base_path",
		},
		{
			name:    "too many retries",
			mutate:  func(c *Config) { c.API.Retries = 3 },
			wantErr: "invalid api.retries: 3",
		},
		{
			name:   "retries disabled",
			mutate: func(c *Config) { c.API.Retries = 0 },
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.API.Timeout = -time.Second },
			wantErr: "api.timeout",
		},
		{
			name:    "zero page size",
			mutate:  func(c *Config) { c.Lineups.PageSize = 0 },
			wantErr: "invalid lineups.page_size",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "trace" },
			wantErr: "invalid logging level: trace",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format: xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
api:
  url: http://example.test:8080
  timeout: 5s
lineups:
  page_size: 20
filter:
  presets:
    strong: 'item.Rating == "S"'
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://example.test:8080", cfg.API.URL)
	assert.Equal(t, "/api", cfg.API.BasePath)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 1, cfg.API.Retries)
	assert.Equal(t, 20, cfg.Lineups.PageSize)
	assert.Equal(t, 64, cfg.Cache.Size)
	assert.Equal(t, `item.Rating == "S"`, cfg.Filter.Presets["strong"])
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config")
}
