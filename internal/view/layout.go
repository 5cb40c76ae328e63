package view

const (
	WindowWidth  = 700
	WindowHeight = 500

	Padding    = 10
	LineHeight = 32
)

// Rect is an axis-aligned rectangle in logical pixels.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) is inside r. The right and bottom edges are exclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Layout places every element of the window for a given number of asset rows.
type Layout struct {
	Clock    Rect
	Header   Rect
	Rows     []Rect
	Progress Rect
	Button   Rect
	Columns  [3]float64 // left edge of the name, price and change columns
}

func NewLayout(rowCount int) Layout {
	inner := float64(WindowWidth - 2*Padding)
	colWidth := inner / 3

	l := Layout{
		Clock:  Rect{Padding, Padding, inner, LineHeight},
		Header: Rect{Padding, Padding + LineHeight + 10, inner, LineHeight},
		Columns: [3]float64{
			Padding + 10,
			Padding + colWidth,
			Padding + 2*colWidth,
		},
	}

	y := l.Header.Y + LineHeight + 5
	l.Rows = make([]Rect, rowCount)
	for i := range l.Rows {
		l.Rows[i] = Rect{Padding, y, inner, LineHeight}
		y += LineHeight + 5
	}

	l.Progress = Rect{Padding, y + 10, inner, 8}
	l.Button = Rect{Padding, l.Progress.Y + l.Progress.H + 20, inner, 40}
	return l
}
