package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, "https://ml-gold-prediction.github.io/data", cfg.Sources.BaseURL)
	require.Equal(t, "web_data.json", cfg.Sources.CombinedPath)
	require.Equal(t, "latest_forecast.json", cfg.Sources.PredictionsPath)
	require.Equal(t, "sample_data.json", cfg.Sources.SamplePath)
	require.Equal(t, 30*time.Second, cfg.Sources.Timeout)
	require.Empty(t, cfg.Sources.APIKey)

	require.Equal(t, 5*time.Minute, cfg.Refresh.Period)
	require.True(t, cfg.Refresh.Enabled)

	require.Equal(t, ":8080", cfg.Server.Addr)
	require.True(t, cfg.Server.Enabled)
	require.NotEmpty(t, cfg.Server.AllowOrigins)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
sources:
  base_url: https://example.test/data
  timeout: 10s
refresh:
  period: 2m
server:
  addr: ":9999"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, "https://example.test/data", cfg.Sources.BaseURL)
	require.Equal(t, 10*time.Second, cfg.Sources.Timeout)
	require.Equal(t, 2*time.Minute, cfg.Refresh.Period)
	require.Equal(t, ":9999", cfg.Server.Addr)
	// Untouched keys keep their defaults.
	require.Equal(t, "web_data.json", cfg.Sources.CombinedPath)
}

func TestLoad_MissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate_Rejections(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	cfg := base()
	cfg.Sources.BaseURL = ""
	require.Error(t, cfg.Validate())

	cfg = base()
	cfg.Sources.Timeout = 100 * time.Millisecond
	require.Error(t, cfg.Validate())

	cfg = base()
	cfg.Refresh.Period = 10 * time.Second
	require.Error(t, cfg.Validate())

	cfg = base()
	cfg.Server.Addr = ""
	require.Error(t, cfg.Validate())

	cfg = base()
	cfg.Server.Addr = ""
	cfg.Server.Enabled = false
	require.NoError(t, cfg.Validate(), "addr is only required when the server is enabled")
}
