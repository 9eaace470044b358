package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, uint16(3000), cfg.HTTP.Port)
	assert.Equal(t, []string{"*"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "http://localhost:8080/ords/bingo_schema", cfg.Ords.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Ords.Timeout)
	assert.Equal(t, "none", cfg.Ords.AuthType)
	assert.Equal(t, 50, cfg.RateLimiter.RequestsPerTimeFrame)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestLoadFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  port: 8090
  allowed_origins:
    - "https://bingo.example.com"
ords:
  base_url: "https://db.example.com/ords/bingo"
  auth_type: "basic"
  username: "bingo_app"
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, uint16(8090), cfg.HTTP.Port)
	assert.Equal(t, []string{"https://bingo.example.com"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "https://db.example.com/ords/bingo", cfg.Ords.BaseURL)
	assert.Equal(t, "basic", cfg.Ords.AuthType)
	assert.Equal(t, "bingo_app", cfg.Ords.Username)

	// Untouched keys keep their defaults.
	assert.Equal(t, 10*time.Second, cfg.Ords.Timeout)
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http:\n  port: 8090\n"), 0o600))

	t.Setenv("PORT", "9000")
	t.Setenv("ORDS_BASE_URL", "https://prod.example.com/ords/bingo")
	t.Setenv("ORDS_TIMEOUT_SECONDS", "3")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, uint16(9000), cfg.HTTP.Port)
	assert.Equal(t, "https://prod.example.com/ords/bingo", cfg.Ords.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Ords.Timeout)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}
