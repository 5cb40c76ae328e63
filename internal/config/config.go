package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is looked up in the working directory at startup.
const FileName = "cryptoliveshow.yaml"

type Config struct {
	CoinGecko CoinGecko `yaml:"coingecko"`
	Refresh   Refresh   `yaml:"refresh"`
	Clock     Clock     `yaml:"clock"`
	Logging   Logging   `yaml:"logging"`
	Metrics   Metrics   `yaml:"metrics"`
}

type CoinGecko struct {
	BaseURL           string `yaml:"base_url"`
	MaxAttempts       int    `yaml:"max_attempts"`
	RetryDelayMs      int    `yaml:"retry_delay_ms"`
	RequestTimeoutMs  int    `yaml:"request_timeout_ms"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
	Burst             int    `yaml:"burst"`
}

type Refresh struct {
	IntervalMs int `yaml:"interval_ms"`
}

type Clock struct {
	IntervalMs int `yaml:"interval_ms"`
}

type Logging struct {
	Level string `yaml:"level"`
}

type Metrics struct {
	// ListenAddr enables the /metrics endpoint when set, e.g. "127.0.0.1:9090".
	ListenAddr string `yaml:"listen_addr"`
}

func (c CoinGecko) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMs) * time.Millisecond
}

func (c CoinGecko) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMs) * time.Millisecond
}

func (r Refresh) Interval() time.Duration {
	return time.Duration(r.IntervalMs) * time.Millisecond
}

func (c Clock) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

// Load reads path, fills unset fields with defaults and validates the result.
// A missing file yields Default().
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config [%s]: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
