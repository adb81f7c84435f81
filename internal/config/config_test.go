package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, 12, cfg.Security.BcryptCost)
	assert.Equal(t, "notive_session", cfg.Auth.CookieName)
	assert.Equal(t, 720, cfg.Auth.SessionHours)
	assert.Equal(t, "data/notive.db", cfg.Database.Path)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9000
auth:
  api_key: from-file
foursquare:
  client_id: fsq-id
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("NOTIVE_AUTH_API_KEY", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.Auth.APIKey)
	assert.Equal(t, "fsq-id", cfg.Foursquare.ClientID)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
