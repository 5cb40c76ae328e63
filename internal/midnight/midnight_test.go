package midnight

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temidaradev/cryptoliveshow/internal/coins"
	"github.com/temidaradev/cryptoliveshow/internal/loop"
	"github.com/temidaradev/cryptoliveshow/internal/refresh"
)

func TestUntilNext(t *testing.T) {
	loc := time.UTC
	tests := []struct {
		name string
		now  time.Time
		want time.Duration
	}{
		{"just before midnight", time.Date(2024, 5, 1, 23, 59, 59, 0, loc), time.Second},
		{"noon", time.Date(2024, 5, 1, 12, 0, 0, 0, loc), 12 * time.Hour},
		{"exactly midnight", time.Date(2024, 5, 1, 0, 0, 0, 0, loc), 24 * time.Hour},
		{"end of year", time.Date(2024, 12, 31, 18, 30, 0, 0, loc), 5*time.Hour + 30*time.Minute},
		{"leap day", time.Date(2024, 2, 28, 23, 0, 0, 0, loc), time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UntilNext(tt.now))
		})
	}
}

func TestUntilNext_Bounds(t *testing.T) {
	start := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 24*60; i += 7 {
		now := start.Add(time.Duration(i) * time.Minute)
		wait := UntilNext(now)
		assert.Greater(t, wait, time.Duration(0), now)
		assert.LessOrEqual(t, wait, 24*time.Hour, now)
	}
}

func TestUntilNext_DST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}

	// 2024-11-03 is 25h long in New York.
	now := time.Date(2024, 11, 3, 0, 0, 1, 0, loc)
	wait := UntilNext(now)
	assert.Greater(t, wait, time.Duration(0))
	assert.LessOrEqual(t, wait, 24*time.Hour)
}

func TestResetter_FireResetsTable(t *testing.T) {
	table := refresh.NewPriceTable()
	table.Apply([]coins.PriceSample{
		{Asset: coins.Bitcoin, Price: decimal.RequireFromString("67000")},
		{Asset: coins.Solana, Price: decimal.RequireFromString("150.25")},
	})

	l := loop.New()
	r := NewResetter(table, l, nil)

	r.fire(context.Background())

	// Nothing changes until the UI loop runs the posted reset.
	price, _ := table.Get(coins.Bitcoin)
	assert.Equal(t, "67000", price.String())

	require.Equal(t, 1, l.Drain())
	for asset, price := range table.Snapshot() {
		assert.True(t, price.IsZero(), asset)
	}
	assert.Len(t, table.Snapshot(), 2)

	wait := r.next(time.Now())
	assert.Greater(t, wait, time.Duration(0))
	assert.LessOrEqual(t, wait, 24*time.Hour)
}

func TestResetter_StartStop(t *testing.T) {
	r := NewResetter(refresh.NewPriceTable(), loop.New(), nil)
	r.Start(context.Background())
	assert.True(t, r.sched.IsRunning())
	r.Stop()
	assert.False(t, r.sched.IsRunning())
}
