package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerSettings_Defaults(t *testing.T) {
	for _, k := range []string{"API_PORT", "API_ENV", "STATIC_DIR", "PRESET_DIR", "LOG_LEVEL", "CACHE_TTL"} {
		t.Setenv(k, "")
	}
	s, err := LoadServerSettings()
	require.NoError(t, err)

	// An empty env var counts as unset for viper, so defaults apply.
	assert.Equal(t, "8080", s.Port)
	assert.Equal(t, ":8080", s.Addr())
	assert.Equal(t, "./web/dist", s.StaticDir)
	assert.Equal(t, "./examples/scenarios", s.PresetDir)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, time.Hour, s.CacheTTL)
	assert.False(t, s.Production())
}

func TestLoadServerSettings_Env(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("API_ENV", "production")
	t.Setenv("PRESET_DIR", "/srv/presets")
	t.Setenv("CACHE_TTL", "90s")

	s, err := LoadServerSettings()
	require.NoError(t, err)
	assert.Equal(t, "9090", s.Port)
	assert.True(t, s.Production())
	assert.Equal(t, "/srv/presets", s.PresetDir)
	assert.Equal(t, 90*time.Second, s.CacheTTL)
}

func TestLoadServerSettings_BadTTL(t *testing.T) {
	t.Setenv("CACHE_TTL", "soon")
	_, err := LoadServerSettings()
	assert.Error(t, err)
}
