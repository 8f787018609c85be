package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Cache   CacheConfig
	Session SessionConfig
	Upload  UploadConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	RateLimitPerIP float64  `mapstructure:"rate_limit_per_ip"` // requests per second, 0 disables
	RateLimitBurst int      `mapstructure:"rate_limit_burst"`
	LogLevel       string   `mapstructure:"log_level"`
}

// BackendConfig holds the matching service configuration
type BackendConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	FiltersTimeout time.Duration `mapstructure:"filters_timeout"` // bounds the background filter load of a new session
	RateLimit      float64       `mapstructure:"rate_limit"`      // requests per second, 0 disables
	Burst          int           `mapstructure:"burst"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	FiltersTTL      time.Duration `mapstructure:"filters_ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// SessionConfig holds search session configuration
type SessionConfig struct {
	TTL        time.Duration `mapstructure:"ttl"`
	CookieName string        `mapstructure:"cookie_name"`
}

// UploadConfig holds image upload limits
type UploadConfig struct {
	MaxBytes int64 `mapstructure:"max_bytes"`
}

// Load loads configuration from a .env file, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/lookalike/")

	// LOOKALIKE_BACKEND_BASE_URL -> backend.base_url
	v.SetEnvPrefix("LOOKALIKE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile exports variables from ./.env that are not already set
func loadEnvFile() error {
	if _, err := os.Stat(".env"); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return gotenv.Load(".env")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.rate_limit_per_ip", 10)
	v.SetDefault("server.rate_limit_burst", 20)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("backend.base_url", "http://127.0.0.1:5000")
	v.SetDefault("backend.timeout", "60s")
	v.SetDefault("backend.filters_timeout", "5s")
	v.SetDefault("backend.rate_limit", 0)
	v.SetDefault("backend.burst", 10)

	v.SetDefault("cache.filters_ttl", "10m")
	v.SetDefault("cache.cleanup_interval", "10m")

	v.SetDefault("session.ttl", "2h")
	v.SetDefault("session.cookie_name", "lookalike_session")

	v.SetDefault("upload.max_bytes", 10<<20)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Backend.BaseURL == "" {
		return fmt.Errorf("matching service URL is required (set LOOKALIKE_BACKEND_BASE_URL)")
	}

	u, err := url.Parse(config.Backend.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("matching service URL must be an absolute http(s) URL, got: %s", config.Backend.BaseURL)
	}

	if config.Backend.Timeout < 0 {
		return fmt.Errorf("backend timeout must not be negative, got: %s", config.Backend.Timeout)
	}

	if config.Backend.FiltersTimeout < 0 {
		return fmt.Errorf("filters timeout must not be negative, got: %s", config.Backend.FiltersTimeout)
	}

	if config.Backend.RateLimit < 0 || config.Server.RateLimitPerIP < 0 {
		return fmt.Errorf("rate limits must not be negative")
	}

	if config.Session.TTL <= 0 {
		return fmt.Errorf("session TTL must be positive, got: %s", config.Session.TTL)
	}

	if config.Session.CookieName == "" {
		return fmt.Errorf("session cookie name is required")
	}

	if config.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload size limit must be positive, got: %d", config.Upload.MaxBytes)
	}

	return nil
}
