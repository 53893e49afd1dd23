package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDefault_LoadsBack(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "moviecache", "config.toml")
	require.NoError(t, WriteDefault(cfgPath))

	t.Setenv("OMDB_API_KEY", "test-omdb-key")

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "test-omdb-key", cfg.OMDb.APIKey)
	assert.Equal(t, 8484, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
}

func TestWriteDefault_RequiresAPIKey(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, WriteDefault(cfgPath))
	t.Setenv("OMDB_API_KEY", "")

	_, err := Load(cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OMDB_API_KEY")
}

func TestWriteDefault_DoesNotOverwrite(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("# mine\n"), 0o644))

	err := WriteDefault(cfgPath)
	require.Error(t, err)

	data, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "# mine\n", string(data))
}

func TestDefaultConfig_NotEmpty(t *testing.T) {
	assert.Contains(t, DefaultConfig(), "[cache]")
}
