package coins

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Asset is a CoinGecko coin id.
type Asset string

const (
	Bitcoin  Asset = "bitcoin"
	Ethereum Asset = "ethereum"
	Ripple   Asset = "ripple"
	Litecoin Asset = "litecoin"
	Cardano  Asset = "cardano"
	Solana   Asset = "solana"
)

// All lists the tracked assets in display order.
var All = []Asset{
	Bitcoin,
	Ethereum,
	Ripple,
	Litecoin,
	Cardano,
	Solana,
}

// IDs returns the CoinGecko ids of all tracked assets.
func IDs() []string {
	ids := make([]string, len(All))
	for i, a := range All {
		ids[i] = string(a)
	}
	return ids
}

// Lookup reports whether id is one of the tracked assets.
func Lookup(id string) (Asset, bool) {
	for _, a := range All {
		if string(a) == id {
			return a, true
		}
	}
	return "", false
}

// Name is the display name, e.g. "Bitcoin".
func (a Asset) Name() string {
	if a == "" {
		return ""
	}
	return strings.ToUpper(string(a[:1])) + string(a[1:])
}

// Quote is a single asset's entry in the simple/price response.
type Quote struct {
	USD           decimal.Decimal `json:"usd"`
	USD24hChange  *float64        `json:"usd_24h_change,omitempty"`
	USD24hVol     float64         `json:"usd_24h_vol,omitempty"`
	LastUpdatedAt int64           `json:"last_updated_at,omitempty"`
}

// Change24h returns the 24h percent change, or 0 when the API omitted it.
func (q Quote) Change24h() float64 {
	if q.USD24hChange == nil {
		return 0
	}
	return *q.USD24hChange
}

type PriceSample struct {
	Asset     Asset
	Price     decimal.Decimal
	Change24h float64
	FetchedAt time.Time
}

func NewPriceSample(asset Asset, q Quote, fetchedAt time.Time) PriceSample {
	return PriceSample{
		Asset:     asset,
		Price:     q.USD,
		Change24h: q.Change24h(),
		FetchedAt: fetchedAt,
	}
}
