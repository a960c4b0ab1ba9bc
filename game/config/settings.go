package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

var (
	ErrSettingsNotFound = errors.New("settings file not found")
	ErrInvalidSettings  = errors.New("invalid settings")
)

// Settings holds everything the server needs at startup
type Settings struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	LogLevel    string `yaml:"log_level"`
	Development bool   `yaml:"development"`

	// Sessions idle longer than SessionTTL are removed every CleanupInterval.
	SessionTTL      time.Duration `yaml:"session_ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`

	// DefaultSeed, when set, is used for sessions created without a seed.
	DefaultSeed *uint64 `yaml:"default_seed,omitempty"`

	// ExternalAPI is probed by the stdio MCP command before it starts an
	// internal HTTP server.
	ExternalAPI string `yaml:"external_api"`

	Ngrok NgrokSettings `yaml:"ngrok"`
}

// NgrokSettings configures the optional public tunnel
type NgrokSettings struct {
	Enabled   bool   `yaml:"enabled"`
	AuthToken string `yaml:"auth_token"`
	Domain    string `yaml:"domain"`
}

// Default returns the settings used when nothing else is configured
func Default() Settings {
	return Settings{
		Host:            "localhost",
		Port:            8080,
		LogLevel:        "info",
		SessionTTL:      24 * time.Hour,
		CleanupInterval: time.Hour,
		ExternalAPI:     "http://localhost:8080",
	}
}

// Load reads a YAML settings file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Settings, error) {
	settings := Default()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, fmt.Errorf("%w: %s", ErrSettingsNotFound, path)
		}
		return settings, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}

	return settings, nil
}

// LoadDotEnv loads environment variables from the given files (".env" when
// none are given). Missing files are not an error. It reports whether any
// file was loaded.
func LoadDotEnv(files ...string) (bool, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return false, nil
	}

	if err := godotenv.Load(existing...); err != nil {
		return false, fmt.Errorf("failed to load env file: %w", err)
	}
	return true, nil
}

// Addr returns the host:port the HTTP server listens on
func (s Settings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Validate checks that the settings can be used to start the server
func (s Settings) Validate() error {
	if s.Host == "" {
		return fmt.Errorf("%w: host is required", ErrInvalidSettings)
	}
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidSettings, s.Port)
	}
	if _, err := zapcore.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidSettings, s.LogLevel)
	}
	if s.SessionTTL < 0 {
		return fmt.Errorf("%w: session TTL must not be negative", ErrInvalidSettings)
	}
	if s.CleanupInterval < 0 {
		return fmt.Errorf("%w: cleanup interval must not be negative", ErrInvalidSettings)
	}
	if s.Ngrok.Enabled && s.Ngrok.AuthToken == "" {
		return fmt.Errorf("%w: ngrok enabled without an auth token", ErrInvalidSettings)
	}
	return nil
}
