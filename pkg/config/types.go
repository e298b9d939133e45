package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Client      ClientConfig   `mapstructure:"client"`
	Session     SessionConfig  `mapstructure:"session"`
	Cache       CacheConfig    `mapstructure:"cache"`
	Logging     LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig contains settings of the reference dataset server
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	AudioDir        string        `mapstructure:"audio_dir"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
	RateLimit       int           `mapstructure:"rate_limit"`
	RateBurst       int           `mapstructure:"rate_burst"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	LabelCacheTTL   time.Duration `mapstructure:"label_cache_ttl"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path                  string        `mapstructure:"path"`
	MaxConnections        int           `mapstructure:"max_connections"`
	MaxIdleConnections    int           `mapstructure:"max_idle_connections"`
	ConnectionMaxLifetime time.Duration `mapstructure:"connection_max_lifetime"`
	EnableWAL             bool          `mapstructure:"enable_wal"`
	EnableForeignKeys     bool          `mapstructure:"enable_foreign_keys"`
	LogQueries            bool          `mapstructure:"log_queries"`
}

// ClientConfig contains settings of the dataset API client
type ClientConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	Token         string        `mapstructure:"token"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RateLimit     int           `mapstructure:"rate_limit"`
	Burst         int           `mapstructure:"burst"`
	LabelCacheTTL time.Duration `mapstructure:"label_cache_ttl"`
	UserAgent     string        `mapstructure:"user_agent"`
}

// SessionConfig contains annotation session settings
type SessionConfig struct {
	ProjectID       int64         `mapstructure:"project_id"`
	DefaultZoom     int           `mapstructure:"default_zoom"`
	SeekStep        float64       `mapstructure:"seek_step"`
	SeekStepLarge   float64       `mapstructure:"seek_step_large"`
	AudioPathPrefix string        `mapstructure:"audio_path_prefix"`
	FFprobePath     string        `mapstructure:"ffprobe_path"`
	ProbeTimeout    time.Duration `mapstructure:"probe_timeout"`
}

// CacheConfig contains in-memory cache settings
type CacheConfig struct {
	MaxEntries int `mapstructure:"max_entries"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level            string `mapstructure:"level"`
	Format           string `mapstructure:"format"`
	Output           string `mapstructure:"output"`
	EnableCaller     bool   `mapstructure:"enable_caller"`
	EnableStacktrace bool   `mapstructure:"enable_stacktrace"`
}
