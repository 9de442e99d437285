package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/innobrain/onoffice-structure/internal/onoffice"
)

// EnvPrefix prefixes every environment variable, e.g.
// ONOFFICE_STRUCTURE_API_TOKEN for api.token.
const EnvPrefix = "ONOFFICE_STRUCTURE"

// Config represents the onoffice-structure configuration
type Config struct {
	API      APIConfig    `mapstructure:"api"`
	Language string       `mapstructure:"language"`
	Modules  []string     `mapstructure:"modules"`
	Server   ServerConfig `mapstructure:"server"`
	Log      LogConfig    `mapstructure:"log"`
}

// APIConfig represents the onOffice API connection
type APIConfig struct {
	URL     string        `mapstructure:"url"`
	Token   string        `mapstructure:"token"`
	Secret  string        `mapstructure:"secret"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Credentials returns the configured API credentials.
func (c *Config) Credentials() onoffice.Credentials {
	return onoffice.Credentials{Token: c.API.Token, Secret: c.API.Secret}
}

// ParsedLanguage returns the configured label language.
func (c *Config) ParsedLanguage() onoffice.Language {
	l, err := onoffice.ParseLanguage(c.Language)
	if err != nil {
		return onoffice.DefaultLanguage
	}
	return l
}

// Load loads the configuration from onoffice-structure.yaml in the working
// directory, if present, and the environment.
func Load() (*Config, error) {
	return LoadWith(viper.New())
}

// LoadWith loads the configuration into v, which may already carry bound
// flags.
func LoadWith(v *viper.Viper) (*Config, error) {
	// Set defaults
	v.SetDefault("api.url", onoffice.DefaultURL)
	v.SetDefault("api.token", "")
	v.SetDefault("api.secret", "")
	v.SetDefault("api.timeout", onoffice.DefaultTimeout)
	v.SetDefault("language", onoffice.DefaultLanguage.String())
	v.SetDefault("modules", []string{})
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("log.level", "info")

	// Set config name and paths
	v.SetConfigName("onoffice-structure")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Enable environment variable support
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	u, err := url.Parse(cfg.API.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.url must be an absolute http(s) URL, got: %s", cfg.API.URL)
	}
	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got: %s", cfg.API.Timeout)
	}
	if _, err := onoffice.ParseLanguage(cfg.Language); err != nil {
		return fmt.Errorf("language: %w", err)
	}
	if _, err := zapcore.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}
