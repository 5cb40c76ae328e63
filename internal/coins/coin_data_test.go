package coins

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetName(t *testing.T) {
	assert.Equal(t, "Bitcoin", Bitcoin.Name())
	assert.Equal(t, "Solana", Solana.Name())
	assert.Equal(t, "", Asset("").Name())
}

func TestIDs(t *testing.T) {
	assert.Equal(t, []string{"bitcoin", "ethereum", "ripple", "litecoin", "cardano", "solana"}, IDs())
}

func TestLookup(t *testing.T) {
	a, ok := Lookup("cardano")
	assert.True(t, ok)
	assert.Equal(t, Cardano, a)

	_, ok = Lookup("dogecoin")
	assert.False(t, ok)
}

func TestQuoteDecode(t *testing.T) {
	var q Quote
	require.NoError(t, json.Unmarshal([]byte(`{"usd":67123.45,"usd_24h_change":-1.5,"usd_24h_vol":1000,"last_updated_at":1700000000}`), &q))
	assert.Equal(t, "67123.45", q.USD.String())
	assert.Equal(t, -1.5, q.Change24h())
	assert.Equal(t, int64(1700000000), q.LastUpdatedAt)
}

func TestQuoteMissingChange(t *testing.T) {
	var q Quote
	require.NoError(t, json.Unmarshal([]byte(`{"usd":0.52}`), &q))
	assert.Equal(t, 0.0, q.Change24h())
}

func TestNewPriceSample(t *testing.T) {
	var q Quote
	require.NoError(t, json.Unmarshal([]byte(`{"usd":2.5,"usd_24h_change":3}`), &q))

	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	s := NewPriceSample(Ripple, q, now)
	assert.Equal(t, Ripple, s.Asset)
	assert.Equal(t, "2.5", s.Price.String())
	assert.Equal(t, 3.0, s.Change24h)
	assert.Equal(t, now, s.FetchedAt)
}
