package config

const (
	DefaultBaseURL           = "https://api.coingecko.com"
	DefaultMaxAttempts       = 3
	DefaultRetryDelayMs      = 2000
	DefaultRequestTimeoutMs  = 5000
	DefaultRequestsPerMinute = 30
	DefaultBurst             = 5
	DefaultRefreshIntervalMs = 10000
	DefaultClockIntervalMs   = 1000
	DefaultLogLevel          = "info"
)

func Default() Config {
	var c Config
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.CoinGecko.BaseURL == "" {
		c.CoinGecko.BaseURL = DefaultBaseURL
	}
	if c.CoinGecko.MaxAttempts == 0 {
		c.CoinGecko.MaxAttempts = DefaultMaxAttempts
	}
	if c.CoinGecko.RetryDelayMs == 0 {
		c.CoinGecko.RetryDelayMs = DefaultRetryDelayMs
	}
	if c.CoinGecko.RequestTimeoutMs == 0 {
		c.CoinGecko.RequestTimeoutMs = DefaultRequestTimeoutMs
	}
	if c.CoinGecko.RequestsPerMinute == 0 {
		c.CoinGecko.RequestsPerMinute = DefaultRequestsPerMinute
	}
	if c.CoinGecko.Burst == 0 {
		c.CoinGecko.Burst = DefaultBurst
	}
	if c.Refresh.IntervalMs == 0 {
		c.Refresh.IntervalMs = DefaultRefreshIntervalMs
	}
	if c.Clock.IntervalMs == 0 {
		c.Clock.IntervalMs = DefaultClockIntervalMs
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
}
