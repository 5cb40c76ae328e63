package refresh

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/temidaradev/cryptoliveshow/internal/coins"
)

// PriceTable holds the last known price per asset. Missing entries mean no
// prior data. It is only written from the UI loop; the lock keeps readers on
// other goroutines (tests, diagnostics) consistent.
type PriceTable struct {
	mu     sync.RWMutex
	prices map[coins.Asset]decimal.Decimal
}

func NewPriceTable() *PriceTable {
	return &PriceTable{prices: make(map[coins.Asset]decimal.Decimal)}
}

func (t *PriceTable) Get(asset coins.Asset) (decimal.Decimal, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.prices[asset]
	return p, ok
}

// Apply stores every sample of one cycle under a single lock.
func (t *PriceTable) Apply(samples []coins.PriceSample) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range samples {
		t.prices[s.Asset] = s.Price
	}
}

// Reset zeroes every stored price.
func (t *PriceTable) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for asset := range t.prices {
		t.prices[asset] = decimal.Zero
	}
}

func (t *PriceTable) Snapshot() map[coins.Asset]decimal.Decimal {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[coins.Asset]decimal.Decimal, len(t.prices))
	for k, v := range t.prices {
		out[k] = v
	}
	return out
}

func (t *PriceTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.prices)
}
