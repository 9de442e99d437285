package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innobrain/onoffice-structure/internal/onoffice"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
}

func TestLoad(t *testing.T) {
	// Test loading with no config file (should use defaults)
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, onoffice.DefaultURL, cfg.API.URL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "DEU", cfg.Language)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Modules)
	assert.Equal(t, onoffice.Credentials{}, cfg.Credentials())
}

func TestLoadWithConfigFile(t *testing.T) {
	chdirTemp(t)

	configContent := `
api:
  token: file-token
  secret: file-secret
  timeout: 5s
language: english
modules:
  - estate
  - address
server:
  addr: 127.0.0.1:9000
log:
  level: debug
`
	require.NoError(t, os.WriteFile("onoffice-structure.yaml", []byte(configContent), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, onoffice.Credentials{Token: "file-token", Secret: "file-secret"}, cfg.Credentials())
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, onoffice.LanguageEnglish, cfg.ParsedLanguage())
	assert.Equal(t, []string{"estate", "address"}, cfg.Modules)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	chdirTemp(t)
	require.NoError(t, os.WriteFile("onoffice-structure.yaml", []byte("api:\n  token: file-token\n"), 0o644))

	t.Setenv("ONOFFICE_STRUCTURE_API_TOKEN", "env-token")
	t.Setenv("ONOFFICE_STRUCTURE_API_SECRET", "env-secret")
	t.Setenv("ONOFFICE_STRUCTURE_SERVER_ADDR", ":9999")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.API.Token)
	assert.Equal(t, "env-secret", cfg.API.Secret)
	assert.Equal(t, ":9999", cfg.Server.Addr)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			API:      APIConfig{URL: onoffice.DefaultURL, Timeout: time.Second},
			Language: "DEU",
			Log:      LogConfig{Level: "info"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "relative url", mutate: func(c *Config) { c.API.URL = "/api.php" }, wantErr: "api.url"},
		{name: "ftp url", mutate: func(c *Config) { c.API.URL = "ftp://example.com" }, wantErr: "api.url"},
		{name: "zero timeout", mutate: func(c *Config) { c.API.Timeout = 0 }, wantErr: "api.timeout"},
		{name: "language", mutate: func(c *Config) { c.Language = "klingon" }, wantErr: "language"},
		{name: "log level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadInvalidFile(t *testing.T) {
	chdirTemp(t)
	require.NoError(t, os.WriteFile("onoffice-structure.yaml", []byte("language: klingon\n"), 0o644))

	_, err := Load()
	assert.Error(t, err)
}
