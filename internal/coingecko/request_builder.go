package coingecko

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	// PublicURL is the base URL of the free CoinGecko API.
	PublicURL = "https://api.coingecko.com"

	// PricesAPIPath is the simple price endpoint.
	PricesAPIPath = "/api/v3/simple/price"

	defaultUserAgent = "Mozilla/5.0 CryptoLiveShow"
)

// PricesRequestBuilder builds requests for the simple price endpoint.
type PricesRequestBuilder struct {
	baseURL   string
	apiPath   string
	params    map[string]string
	headers   map[string]string
	userAgent string
}

func NewPricesRequestBuilder(baseURL string) *PricesRequestBuilder {
	rb := &PricesRequestBuilder{
		baseURL:   baseURL,
		apiPath:   PricesAPIPath,
		params:    make(map[string]string),
		headers:   make(map[string]string),
		userAgent: defaultUserAgent,
	}
	rb.headers["Accept"] = "application/json"
	return rb
}

// With adds a custom query parameter.
func (rb *PricesRequestBuilder) With(key, value string) *PricesRequestBuilder {
	rb.params[key] = value
	return rb
}

func (rb *PricesRequestBuilder) WithIds(ids []string) *PricesRequestBuilder {
	return rb.With("ids", strings.Join(ids, ","))
}

func (rb *PricesRequestBuilder) WithCurrencies(currencies []string) *PricesRequestBuilder {
	return rb.With("vs_currencies", strings.Join(currencies, ","))
}

func (rb *PricesRequestBuilder) WithInclude24hChange(include bool) *PricesRequestBuilder {
	if include {
		rb.With("include_24hr_change", "true")
	}
	return rb
}

func (rb *PricesRequestBuilder) WithInclude24hVolume(include bool) *PricesRequestBuilder {
	if include {
		rb.With("include_24hr_vol", "true")
	}
	return rb
}

func (rb *PricesRequestBuilder) WithIncludeLastUpdatedAt(include bool) *PricesRequestBuilder {
	if include {
		rb.With("include_last_updated_at", "true")
	}
	return rb
}

// WithInclude24hPercentChange adds include_24hr_percent_change. CoinGecko ignores
// it today but the widget has always sent it.
func (rb *PricesRequestBuilder) WithInclude24hPercentChange(include bool) *PricesRequestBuilder {
	if include {
		rb.With("include_24hr_percent_change", "true")
	}
	return rb
}

// WithAllMetadata requests 24h change, 24h volume and last-updated timestamps.
func (rb *PricesRequestBuilder) WithAllMetadata() *PricesRequestBuilder {
	return rb.WithInclude24hChange(true).
		WithInclude24hVolume(true).
		WithIncludeLastUpdatedAt(true).
		WithInclude24hPercentChange(true)
}

// BuildURL returns the full request URL with an encoded, sorted query.
func (rb *PricesRequestBuilder) BuildURL() string {
	fullPath := strings.TrimRight(rb.baseURL, "/") + "/" + strings.TrimLeft(rb.apiPath, "/")

	query := url.Values{}
	for key, value := range rb.params {
		query.Add(key, value)
	}

	if qs := query.Encode(); qs != "" {
		return fmt.Sprintf("%s?%s", fullPath, qs)
	}
	return fullPath
}

func (rb *PricesRequestBuilder) Build(ctx context.Context) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rb.BuildURL(), nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", rb.userAgent)
	for key, value := range rb.headers {
		req.Header.Set(key, value)
	}
	return req, nil
}
