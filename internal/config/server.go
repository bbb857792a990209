package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// ServerSettings configures cmd/api. Values come from the environment
// (optionally seeded from .env by the caller).
type ServerSettings struct {
	Port      string        `mapstructure:"port"`
	Env       string        `mapstructure:"env"`
	StaticDir string        `mapstructure:"static_dir"`
	PresetDir string        `mapstructure:"preset_dir"`
	LogLevel  string        `mapstructure:"log_level"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
}

func (s ServerSettings) Production() bool { return s.Env == "production" }

func (s ServerSettings) Addr() string { return ":" + s.Port }

// LoadServerSettings reads settings from the environment.
func LoadServerSettings() (*ServerSettings, error) {
	return loadServerSettings(viper.New())
}

func loadServerSettings(v *viper.Viper) (*ServerSettings, error) {
	v.SetDefault("port", "8080")
	v.SetDefault("env", "development")
	v.SetDefault("static_dir", "./web/dist")
	v.SetDefault("preset_dir", "./examples/scenarios")
	v.SetDefault("log_level", "info")
	v.SetDefault("cache_ttl", "1h")

	_ = v.BindEnv("port", "API_PORT")
	_ = v.BindEnv("env", "API_ENV")
	_ = v.BindEnv("static_dir", "STATIC_DIR")
	_ = v.BindEnv("preset_dir", "PRESET_DIR")
	_ = v.BindEnv("log_level", "LOG_LEVEL")
	_ = v.BindEnv("cache_ttl", "CACHE_TTL")

	var s ServerSettings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal server settings: %w", err)
	}
	if s.CacheTTL < 0 {
		return nil, fmt.Errorf("cache_ttl must be >= 0, got %s", s.CacheTTL)
	}
	return &s, nil
}
