// Package view holds the label state rendered by the UI shell.
package view

import (
	"sync"

	"github.com/temidaradev/cryptoliveshow/internal/coins"
	"github.com/temidaradev/cryptoliveshow/internal/format"
)

type Row struct {
	Asset      coins.Asset
	Name       string
	PriceText  string
	ChangeText string
	Tone       format.Tone
}

// Snapshot is a consistent copy of the board for one frame.
type Snapshot struct {
	Clock string
	Rows  []Row
	Busy  bool
}

// Board is the per-asset label state. Rows keep the order of coins.All.
type Board struct {
	mu    sync.Mutex
	clock string
	rows  []Row
	index map[coins.Asset]int
	busy  bool
}

func NewBoard(assets []coins.Asset) *Board {
	b := &Board{
		rows:  make([]Row, len(assets)),
		index: make(map[coins.Asset]int, len(assets)),
	}
	for i, a := range assets {
		b.rows[i] = Row{
			Asset:      a,
			Name:       a.Name(),
			PriceText:  format.Dash,
			ChangeText: format.Dash,
			Tone:       format.ToneNeutral,
		}
		b.index[a] = i
	}
	return b
}

// SetRow updates one asset's labels. Unknown assets are ignored.
func (b *Board) SetRow(asset coins.Asset, priceText, changeText string, tone format.Tone) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i, ok := b.index[asset]
	if !ok {
		return
	}
	b.rows[i].PriceText = priceText
	b.rows[i].ChangeText = changeText
	b.rows[i].Tone = tone
}

func (b *Board) SetBusy(busy bool) {
	b.mu.Lock()
	b.busy = busy
	b.mu.Unlock()
}

func (b *Board) SetClock(text string) {
	b.mu.Lock()
	b.clock = text
	b.mu.Unlock()
}

func (b *Board) Busy() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.busy
}

func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	rows := make([]Row, len(b.rows))
	copy(rows, b.rows)
	return Snapshot{
		Clock: b.clock,
		Rows:  rows,
		Busy:  b.busy,
	}
}
