package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/killallgit/annotator/pkg/errors"
	"github.com/spf13/viper"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing settings: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) string
		wantErr bool
		check   func(t *testing.T)
	}{
		{
			name: "load from settings file",
			setup: func(t *testing.T) string {
				return writeSettings(t, `
server:
  host: "127.0.0.1"
  port: 8081
session:
  project_id: 4
  seek_step: 2
`)
			},
			check: func(t *testing.T) {
				if GetInt("server.port") != 8081 {
					t.Errorf("Expected server.port to be 8081, got %d", GetInt("server.port"))
				}
				if GetInt("session.project_id") != 4 {
					t.Errorf("Expected session.project_id to be 4, got %d", GetInt("session.project_id"))
				}
			},
		},
		{
			name: "environment variable override",
			setup: func(t *testing.T) string {
				t.Setenv("ANNOTATOR_SERVER_PORT", "9090")
				t.Setenv("ANNOTATOR_CLIENT_TOKEN", "tok")
				return writeSettings(t, "server:\n  port: 8080\n")
			},
			check: func(t *testing.T) {
				if GetInt("server.port") != 9090 {
					t.Errorf("Expected server.port to be overridden to 9090, got %d", GetInt("server.port"))
				}
				if GetString("client.token") != "tok" {
					t.Errorf("Expected client.token from env, got %q", GetString("client.token"))
				}
			},
		},
		{
			name: "missing settings file uses defaults",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "absent.yaml")
			},
			check: func(t *testing.T) {
				if GetInt("server.port") != 8080 {
					t.Errorf("Expected default server.port to be 8080, got %d", GetInt("server.port"))
				}
				if GetDuration("client.timeout") != 15*time.Second {
					t.Errorf("Expected default client.timeout, got %v", GetDuration("client.timeout"))
				}
				if GetString("session.audio_path_prefix") != "/audios/" {
					t.Errorf("Expected default audio prefix, got %q", GetString("session.audio_path_prefix"))
				}
			},
		},
		{
			name: "negative seek step is corrected",
			setup: func(t *testing.T) string {
				return writeSettings(t, "session:\n  seek_step: -3\n")
			},
			check: func(t *testing.T) {
				if viper.GetFloat64("session.seek_step") != 1 {
					t.Errorf("Expected seek_step to be reset to 1, got %v", viper.GetFloat64("session.seek_step"))
				}
			},
		},
		{
			name: "zoom out of range",
			setup: func(t *testing.T) string {
				return writeSettings(t, "session:\n  default_zoom: 500\n")
			},
			wantErr: true,
		},
		{
			name: "unknown log format",
			setup: func(t *testing.T) string {
				return writeSettings(t, "logging:\n  format: xml\n")
			},
			wantErr: true,
		},
		{
			name: "malformed file",
			setup: func(t *testing.T) string {
				return writeSettings(t, "server: [\n")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			defer viper.Reset()

			err := Load(tt.setup(t))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.check != nil && err == nil {
				tt.check(t)
			}
		})
	}
}

func TestGetConfig(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	path := writeSettings(t, `
client:
  base_url: "http://dataset.local"
  label_cache_ttl: 5m
session:
  project_id: 12
  seek_step_large: 10
logging:
  format: console
`)
	if err := Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg, err := GetConfig()
	if err != nil {
		t.Fatalf("GetConfig() error = %v", err)
	}
	if cfg.Client.BaseURL != "http://dataset.local" {
		t.Errorf("BaseURL = %q", cfg.Client.BaseURL)
	}
	if cfg.Client.LabelCacheTTL != 5*time.Minute {
		t.Errorf("LabelCacheTTL = %v", cfg.Client.LabelCacheTTL)
	}
	if cfg.Session.ProjectID != 12 {
		t.Errorf("ProjectID = %d", cfg.Session.ProjectID)
	}
	if cfg.Session.SeekStep != 1 || cfg.Session.SeekStepLarge != 10 {
		t.Errorf("seek steps = %v/%v", cfg.Session.SeekStep, cfg.Session.SeekStepLarge)
	}
	if cfg.Session.DefaultZoom != 100 {
		t.Errorf("DefaultZoom = %d", cfg.Session.DefaultZoom)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q", cfg.Logging.Format)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: &Config{
				Server:  ServerConfig{Host: "localhost", Port: 8080},
				Session: SessionConfig{DefaultZoom: 100},
			},
		},
		{
			name: "invalid port",
			config: &Config{
				Server:  ServerConfig{Host: "localhost", Port: 0},
				Session: SessionConfig{DefaultZoom: 100},
			},
			wantErr: true,
		},
		{
			name: "zoom below range",
			config: &Config{
				Server: ServerConfig{Port: 8080},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !apperrors.Is(err, apperrors.ErrCodeConfigInvalid) {
				t.Errorf("expected CONFIG_INVALID, got %v", err)
			}
		})
	}
}

func TestConfig_ValidateFillsSteps(t *testing.T) {
	cfg := &Config{
		Server:  ServerConfig{Port: 8080},
		Session: SessionConfig{DefaultZoom: 50},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Session.SeekStep != 1 || cfg.Session.SeekStepLarge != 5 {
		t.Errorf("seek steps = %v/%v", cfg.Session.SeekStep, cfg.Session.SeekStepLarge)
	}
	if cfg.Client.RateLimit != 600 {
		t.Errorf("RateLimit = %d", cfg.Client.RateLimit)
	}
}

func TestConfig_RequireClient(t *testing.T) {
	cfg := &Config{}
	if err := cfg.RequireClient(); err == nil {
		t.Error("expected error without base url")
	}

	cfg.Client.BaseURL = "http://x"
	if err := cfg.RequireClient(); err == nil {
		t.Error("expected error without project id")
	}

	cfg.Session.ProjectID = 1
	if err := cfg.RequireClient(); err != nil {
		t.Errorf("RequireClient() error = %v", err)
	}
}
