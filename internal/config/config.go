// Package config loads application configuration from an optional YAML
// file with environment variable overrides (GOLDBOARD_ prefix).
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the complete application configuration.
type Config struct {
	Sources SourcesConfig `mapstructure:"sources"`
	Refresh RefreshConfig `mapstructure:"refresh"`
	Server  ServerConfig  `mapstructure:"server"`
}

// SourcesConfig describes the upstream payload sources, freshest first.
type SourcesConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	CombinedPath    string        `mapstructure:"combined_path"`
	PredictionsPath string        `mapstructure:"predictions_path"`
	SamplePath      string        `mapstructure:"sample_path"`
	Timeout         time.Duration `mapstructure:"timeout"`

	// APIKey unlocks the richer upstream tier. Empty means demo tier;
	// the pipeline works either way.
	APIKey string `mapstructure:"api_key"`
}

// RefreshConfig controls the simulated-market refresh cycle.
type RefreshConfig struct {
	Period  time.Duration `mapstructure:"period"`
	Enabled bool          `mapstructure:"enabled"`
}

// ServerConfig controls the read-only rendering API.
type ServerConfig struct {
	Addr         string   `mapstructure:"addr"`
	AllowOrigins []string `mapstructure:"allow_origins"`
	Enabled      bool     `mapstructure:"enabled"`
}

// Load reads configuration. path may be empty, in which case defaults and
// environment overrides alone apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("GOLDBOARD")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// setDefaults configures default values for all options.
func setDefaults(v *viper.Viper) {
	v.SetDefault("sources.base_url", "https://ml-gold-prediction.github.io/data")
	v.SetDefault("sources.combined_path", "web_data.json")
	v.SetDefault("sources.predictions_path", "latest_forecast.json")
	v.SetDefault("sources.sample_path", "sample_data.json")
	v.SetDefault("sources.timeout", "30s")
	v.SetDefault("sources.api_key", "")

	v.SetDefault("refresh.period", "5m")
	v.SetDefault("refresh.enabled", true)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allow_origins", []string{"http://localhost:5173", "http://localhost:3000"})
	v.SetDefault("server.enabled", true)
}

// Validate checks that all configuration values are usable.
func (c *Config) Validate() error {
	if c.Sources.BaseURL == "" {
		return fmt.Errorf("sources.base_url is required")
	}
	if c.Sources.CombinedPath == "" || c.Sources.PredictionsPath == "" || c.Sources.SamplePath == "" {
		return fmt.Errorf("all three source paths are required")
	}
	if c.Sources.Timeout < time.Second {
		return fmt.Errorf("sources.timeout must be at least 1s")
	}
	if c.Refresh.Period < time.Minute {
		return fmt.Errorf("refresh.period must be at least 1 minute")
	}
	if c.Server.Enabled && c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required when the server is enabled")
	}
	return nil
}
