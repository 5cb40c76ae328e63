package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/temidaradev/cryptoliveshow/internal/coins"
)

// ErrAllAttemptsFailed is returned once every attempt of a fetch has failed.
var ErrAllAttemptsFailed = errors.New("all attempts failed")

// HTTPStatusHandler is notified about every attempt and retry.
type HTTPStatusHandler interface {
	// OnRequest receives "success", "error" or "rate_limited".
	OnRequest(status string)
	OnRetry()
}

// RetryOptions configures the fixed-delay retry loop.
type RetryOptions struct {
	MaxAttempts    int
	Delay          time.Duration // fixed wait between attempts, no backoff
	RequestTimeout time.Duration // per attempt
}

func DefaultRetryOptions() RetryOptions {
	return RetryOptions{
		MaxAttempts:    3,
		Delay:          2 * time.Second,
		RequestTimeout: 5 * time.Second,
	}
}

// Client fetches quotes for the tracked assets from the simple price endpoint.
type Client struct {
	baseURL       string
	http          *http.Client
	opts          RetryOptions
	limiter       *rate.Limiter
	statusHandler HTTPStatusHandler
	logger        *zap.Logger

	// sleep waits between attempts; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

type Option func(*Client)

// WithLimiter makes every attempt wait on l first.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

func WithStatusHandler(h HTTPStatusHandler) Option {
	return func(c *Client) { c.statusHandler = h }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func NewClient(baseURL string, opts RetryOptions, options ...Option) *Client {
	if baseURL == "" {
		baseURL = PublicURL
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 1
	}

	c := &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: opts.RequestTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: opts.RequestTimeout,
				}).DialContext,
			},
		},
		opts:   opts,
		logger: zap.NewNop(),
		sleep:  sleepContext,
	}
	for _, o := range options {
		o(c)
	}
	return c
}

// FetchQuotes requests all tracked assets, retrying up to MaxAttempts times with
// a fixed delay between attempts.
func (c *Client) FetchQuotes(ctx context.Context) (map[coins.Asset]coins.Quote, error) {
	var lastErr error

	for attempt := 1; attempt <= c.opts.MaxAttempts; attempt++ {
		if attempt > 1 {
			if c.statusHandler != nil {
				c.statusHandler.OnRetry()
			}
			if err := c.sleep(ctx, c.opts.Delay); err != nil {
				return nil, fmt.Errorf("fetch prices [attempt %d]: %w", attempt, err)
			}
		}

		c.logger.Info("Fetching prices", zap.Int("attempt", attempt))

		quotes, err := c.fetchOnce(ctx)
		if err == nil {
			c.logger.Info("Prices fetched successfully",
				zap.Int("attempt", attempt), zap.Int("assets", len(quotes)))
			return quotes, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("fetch prices [attempt %d]: %w", attempt, ctxErr)
		}

		lastErr = err
		c.logger.Warn("Fetch attempt failed", zap.Int("attempt", attempt), zap.Error(err))
	}

	c.logger.Error("All attempts failed, unable to fetch prices",
		zap.Int("attempts", c.opts.MaxAttempts), zap.Error(lastErr))
	return nil, fmt.Errorf("%w [%d attempts]: %v", ErrAllAttemptsFailed, c.opts.MaxAttempts, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context) (map[coins.Asset]coins.Quote, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}
	}

	req, err := NewPricesRequestBuilder(c.baseURL).
		WithIds(coins.IDs()).
		WithCurrencies([]string{"usd"}).
		WithAllMetadata().
		Build(ctx)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.report("error")
		return nil, fmt.Errorf("HTTP request failed after %.2fs: %w", time.Since(start).Seconds(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		if resp.StatusCode == http.StatusTooManyRequests {
			c.report("rate_limited")
			return nil, fmt.Errorf("rate limit exceeded, retry after %q: %s",
				resp.Header.Get("Retry-After"), string(bodyBytes))
		}
		c.report("error")
		return nil, fmt.Errorf("API error: %s - %s", resp.Status, string(bodyBytes))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.report("error")
		return nil, fmt.Errorf("body read error: %w", err)
	}

	var raw map[string]coins.Quote
	if err := json.Unmarshal(body, &raw); err != nil {
		c.report("error")
		return nil, fmt.Errorf("JSON parse error: %w, Received Data: %s", err, string(body))
	}

	quotes := make(map[coins.Asset]coins.Quote, len(raw))
	for id, q := range raw {
		if asset, ok := coins.Lookup(id); ok {
			quotes[asset] = q
		}
	}

	if len(quotes) == 0 {
		c.report("error")
		return nil, fmt.Errorf("empty price response: %s", string(body))
	}

	c.report("success")
	return quotes, nil
}

func (c *Client) report(status string) {
	if c.statusHandler != nil {
		c.statusHandler.OnRequest(status)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
