package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	apperrors "github.com/killallgit/annotator/pkg/errors"
	"github.com/spf13/viper"
)

// DefaultConfigPath is where Init looks for a settings file
const DefaultConfigPath = "./config/settings.yaml"

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		initErr = Load(DefaultConfigPath)
	})
	return initErr
}

// Load reads defaults, the settings file at path (if present) and
// ANNOTATOR_* environment overrides into the global viper instance
func Load(path string) error {
	setDefaults()

	viper.SetEnvPrefix("ANNOTATOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	configPath := filepath.Clean(path)
	viper.SetConfigFile(configPath)
	if err := viper.ReadInConfig(); err != nil {
		// A missing file means defaults and env vars only
		if !os.IsNotExist(err) {
			return fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
	}

	if err := validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// Get returns a config value by key using Viper directly
func Get(key string) any {
	return viper.Get(key)
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate checks viper values, auto-correcting the ones with a safe fallback
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return apperrors.ConfigError("server.port", fmt.Sprintf("invalid port %d", port))
	}

	zoom := viper.GetInt("session.default_zoom")
	if zoom < 1 || zoom > 200 {
		return apperrors.ConfigError("session.default_zoom", fmt.Sprintf("%d outside 1..200", zoom))
	}

	if viper.GetFloat64("session.seek_step") <= 0 {
		viper.Set("session.seek_step", 1.0)
	}
	if viper.GetFloat64("session.seek_step_large") <= 0 {
		viper.Set("session.seek_step_large", 5.0)
	}
	if viper.GetInt("client.rate_limit") <= 0 {
		viper.Set("client.rate_limit", 600)
	}

	switch viper.GetString("logging.format") {
	case "json", "console":
	default:
		return apperrors.ConfigError("logging.format", "must be json or console")
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return apperrors.ConfigError("server.port", fmt.Sprintf("invalid port %d", c.Server.Port))
	}
	if c.Session.DefaultZoom < 1 || c.Session.DefaultZoom > 200 {
		return apperrors.ConfigError("session.default_zoom", fmt.Sprintf("%d outside 1..200", c.Session.DefaultZoom))
	}

	if c.Session.SeekStep <= 0 {
		c.Session.SeekStep = 1
	}
	if c.Session.SeekStepLarge <= 0 {
		c.Session.SeekStepLarge = 5
	}
	if c.Client.RateLimit <= 0 {
		c.Client.RateLimit = 600
	}

	return nil
}

// RequireClient reports a config error when the dataset API cannot be reached
func (c *Config) RequireClient() error {
	if c.Client.BaseURL == "" {
		return apperrors.ConfigError("client.base_url", "required")
	}
	if c.Session.ProjectID <= 0 {
		return apperrors.ConfigError("session.project_id", "required")
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)
	viper.SetDefault("server.audio_dir", "./data/audios")
	viper.SetDefault("server.max_upload_bytes", 104857600)
	viper.SetDefault("server.rate_limit", 120)
	viper.SetDefault("server.rate_burst", 20)
	viper.SetDefault("server.cors_origins", []string{"*"})
	viper.SetDefault("server.label_cache_ttl", 5*time.Minute)

	// Database defaults
	viper.SetDefault("database.path", "./data/annotator.db")
	viper.SetDefault("database.max_connections", 10)
	viper.SetDefault("database.max_idle_connections", 5)
	viper.SetDefault("database.connection_max_lifetime", 30*time.Minute)
	viper.SetDefault("database.enable_wal", true)
	viper.SetDefault("database.enable_foreign_keys", true)
	viper.SetDefault("database.log_queries", false)

	// Client defaults
	viper.SetDefault("client.base_url", "http://localhost:8080")
	viper.SetDefault("client.token", "")
	viper.SetDefault("client.timeout", 15*time.Second)
	viper.SetDefault("client.rate_limit", 600)
	viper.SetDefault("client.burst", 10)
	viper.SetDefault("client.label_cache_ttl", 10*time.Minute)
	viper.SetDefault("client.user_agent", "annotator/1.0")

	// Session defaults
	viper.SetDefault("session.project_id", 1)
	viper.SetDefault("session.default_zoom", 100)
	viper.SetDefault("session.seek_step", 1.0)
	viper.SetDefault("session.seek_step_large", 5.0)
	viper.SetDefault("session.audio_path_prefix", "/audios/")
	viper.SetDefault("session.ffprobe_path", "ffprobe")
	viper.SetDefault("session.probe_timeout", 30*time.Second)

	// Cache defaults
	viper.SetDefault("cache.max_entries", 1000)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output", "stderr")
	viper.SetDefault("logging.enable_caller", false)
	viper.SetDefault("logging.enable_stacktrace", true)
}
