package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.CoinGecko.BaseURL)
	assert.Equal(t, 3, cfg.CoinGecko.MaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.CoinGecko.RetryDelay())
	assert.Equal(t, 5*time.Second, cfg.CoinGecko.RequestTimeout())
	assert.Equal(t, 10*time.Second, cfg.Refresh.Interval())
	assert.Equal(t, time.Second, cfg.Clock.Interval())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Metrics.ListenAddr)
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
coingecko:
  base_url: "http://localhost:8080"
  max_attempts: 5
  retry_delay_ms: 500
refresh:
  interval_ms: 30000
logging:
  level: debug
metrics:
  listen_addr: "127.0.0.1:9090"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.CoinGecko.BaseURL)
	assert.Equal(t, 5, cfg.CoinGecko.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.CoinGecko.RetryDelay())
	assert.Equal(t, 5*time.Second, cfg.CoinGecko.RequestTimeout(), "unset fields keep defaults")
	assert.Equal(t, 30*time.Second, cfg.Refresh.Interval())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "127.0.0.1:9090", cfg.Metrics.ListenAddr)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "coingecko: [unclosed")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"relative url", "coingecko:\n  base_url: api.coingecko.com\n", "coingecko.base_url"},
		{"negative attempts", "coingecko:\n  max_attempts: -1\n", "coingecko.max_attempts"},
		{"negative delay", "coingecko:\n  retry_delay_ms: -5\n", "coingecko.retry_delay_ms"},
		{"fast refresh", "refresh:\n  interval_ms: 10\n", "refresh.interval_ms"},
		{"negative burst", "coingecko:\n  burst: -2\n", "coingecko.burst"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
}
