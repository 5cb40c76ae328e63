// Package format turns raw prices and percentages into display strings.
package format

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Tone is the colour hint attached to a change value.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneUp
	ToneDown
)

func (t Tone) String() string {
	switch t {
	case ToneUp:
		return "up"
	case ToneDown:
		return "down"
	default:
		return "neutral"
	}
}

const (
	UpGlyph   = "▲"
	DownGlyph = "▼"

	// ErrorText replaces a price after a failed cycle.
	ErrorText = "Error"
	// Dash is shown before the first fetch and in place of a change after a failed cycle.
	Dash = "—"

	ClockLayout = "2006-01-02 15:04:05"
)

var printer = message.NewPrinter(language.English)

// Price renders d with two decimals and thousands separators: 1234.5 -> "1,234.50".
func Price(d decimal.Decimal) string {
	return printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

// Change renders a signed percentage with a direction glyph.
func Change(p float64) (string, Tone) {
	switch {
	case p > 0:
		return fmt.Sprintf("%s %.2f%%", UpGlyph, p), ToneUp
	case p < 0:
		return fmt.Sprintf("%s %.2f%%", DownGlyph, math.Abs(p)), ToneDown
	default:
		return "0.00%", ToneNeutral
	}
}

// PercentChange returns (current-previous)/previous*100. A zero previous price
// yields 0 rather than an error; callers must not read it as "unchanged".
func PercentChange(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		return 0
	}
	return current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).InexactFloat64()
}

func Clock(t time.Time) string {
	return t.Format(ClockLayout)
}
