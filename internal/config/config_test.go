package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefaults(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "0.0.0.0:3000", cfg.Addr())
}

func TestFromEnv(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"HOST":                 "127.0.0.1",
		"PORT":                 "8080",
		"STORAGE":              "Badger",
		"DATA_DIR":             "-",
		"MATCHMAKING_INTERVAL": "250ms",
		"LOG_LEVEL":            "debug",
	}))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, StorageBadger, cfg.Storage)
	assert.Empty(t, cfg.DataDir)
	assert.Equal(t, 250*time.Millisecond, cfg.MatchmakingInterval)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel)
}

func TestFromEnvRejects(t *testing.T) {
	for key, value := range map[string]string{
		"PORT":                 "http",
		"STORAGE":              "mysql",
		"MATCHMAKING_INTERVAL": "soon",
		"LOG_LEVEL":            "loud",
	} {
		_, err := FromEnv(env(map[string]string{key: value}))
		assert.Error(t, err, key)
	}
}

func TestLoadReadsDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ALLOWED_ORIGINS=https://chess.example.com\n"), 0o600))
	t.Setenv("ALLOWED_ORIGINS", "")
	require.NoError(t, os.Unsetenv("ALLOWED_ORIGINS"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://chess.example.com", cfg.AllowedOrigins)
}
