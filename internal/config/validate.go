package config

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

func (c *Config) Validate() error {
	u, err := url.Parse(c.CoinGecko.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: coingecko.base_url %q is not an absolute URL", ErrInvalid, c.CoinGecko.BaseURL)
	}
	if c.CoinGecko.MaxAttempts < 1 {
		return fmt.Errorf("%w: coingecko.max_attempts must be >= 1", ErrInvalid)
	}
	if c.CoinGecko.RetryDelayMs < 0 {
		return fmt.Errorf("%w: coingecko.retry_delay_ms must be >= 0", ErrInvalid)
	}
	if c.CoinGecko.RequestTimeoutMs < 1 {
		return fmt.Errorf("%w: coingecko.request_timeout_ms must be >= 1", ErrInvalid)
	}
	if c.CoinGecko.RequestsPerMinute < 1 {
		return fmt.Errorf("%w: coingecko.requests_per_minute must be >= 1", ErrInvalid)
	}
	if c.CoinGecko.Burst < 1 {
		return fmt.Errorf("%w: coingecko.burst must be >= 1", ErrInvalid)
	}
	if c.Refresh.IntervalMs < 1000 {
		return fmt.Errorf("%w: refresh.interval_ms must be >= 1000, got %d", ErrInvalid, c.Refresh.IntervalMs)
	}
	if c.Clock.IntervalMs < 1 {
		return fmt.Errorf("%w: clock.interval_ms must be >= 1", ErrInvalid)
	}
	return nil
}
