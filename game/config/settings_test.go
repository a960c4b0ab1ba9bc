package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	settings := Default()

	assert.Equal(t, "localhost:8080", settings.Addr())
	assert.Equal(t, 24*time.Hour, settings.SessionTTL)
	assert.Nil(t, settings.DefaultSeed)
	assert.NoError(t, settings.Validate())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("empty path returns defaults", func(t *testing.T) {
		settings, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), settings)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeFile(t, dir, "server.yaml", `
host: 0.0.0.0
port: 9090
log_level: debug
session_ttl: 30m
default_seed: 42
ngrok:
  enabled: true
  auth_token: secret
`)
		settings, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0:9090", settings.Addr())
		assert.Equal(t, "debug", settings.LogLevel)
		assert.Equal(t, 30*time.Minute, settings.SessionTTL)
		assert.Equal(t, time.Hour, settings.CleanupInterval, "unset fields keep defaults")
		require.NotNil(t, settings.DefaultSeed)
		assert.Equal(t, uint64(42), *settings.DefaultSeed)
		assert.True(t, settings.Ngrok.Enabled)
		assert.NoError(t, settings.Validate())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.yaml"))
		assert.ErrorIs(t, err, ErrSettingsNotFound)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := writeFile(t, dir, "bad.yaml", "port: [not a number\n")
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{"empty host", func(s *Settings) { s.Host = "" }},
		{"port zero", func(s *Settings) { s.Port = 0 }},
		{"port too large", func(s *Settings) { s.Port = 70000 }},
		{"unknown log level", func(s *Settings) { s.LogLevel = "loud" }},
		{"negative TTL", func(s *Settings) { s.SessionTTL = -time.Second }},
		{"negative cleanup interval", func(s *Settings) { s.CleanupInterval = -time.Second }},
		{"ngrok without token", func(s *Settings) { s.Ngrok.Enabled = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := Default()
			tt.modify(&settings)
			assert.ErrorIs(t, settings.Validate(), ErrInvalidSettings)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()

	loaded, err := LoadDotEnv(filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.False(t, loaded)

	path := writeFile(t, dir, "test.env", "TILEMERGE_TEST_DOTENV=from-file\n")
	t.Setenv("TILEMERGE_TEST_DOTENV", "")
	os.Unsetenv("TILEMERGE_TEST_DOTENV")

	loaded, err = LoadDotEnv(path)
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, "from-file", os.Getenv("TILEMERGE_TEST_DOTENV"))
}

func TestLoadDotEnv_DoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "test.env", "TILEMERGE_TEST_PRESET=from-file\n")
	t.Setenv("TILEMERGE_TEST_PRESET", "from-env")

	_, err := LoadDotEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", os.Getenv("TILEMERGE_TEST_PRESET"))
}
