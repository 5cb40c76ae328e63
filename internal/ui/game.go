package ui

import (
	"context"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/temidaradev/esset/v2"
	"go.uber.org/zap"

	"github.com/temidaradev/cryptoliveshow/internal/format"
	"github.com/temidaradev/cryptoliveshow/internal/loop"
	"github.com/temidaradev/cryptoliveshow/internal/view"
)

const (
	Title = "Live Cryptocurrency Prices"

	// GlyphsToPreload covers every character the window can show.
	GlyphsToPreload = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789.,:-/%$ ▲▼—"
	BaseFontSize    = 16

	buttonLabel = "Refresh Prices"
)

var (
	background   = color.RGBA{0, 0, 0, 255}
	foreground   = color.RGBA{255, 255, 255, 255}
	upColor      = color.RGBA{0, 200, 0, 255}
	downColor    = color.RGBA{230, 40, 40, 255}
	dimColor     = color.RGBA{120, 120, 120, 255}
	trackColor   = color.RGBA{40, 40, 40, 255}
	barColor     = color.RGBA{0, 200, 255, 255}
	buttonColor  = color.RGBA{60, 60, 60, 255}
	buttonBorder = color.RGBA{150, 150, 150, 255}
)

// Game is the ebiten shell. It only renders the board and forwards button
// clicks; all state changes arrive through the loop.
type Game struct {
	ctx         context.Context
	board       *view.Board
	loop        *loop.Loop
	layout      view.Layout
	onRefresh   func()
	fontFace    text.Face
	deviceScale float64
	logger      *zap.Logger

	frame int
}

func NewGame(ctx context.Context, board *view.Board, l *loop.Loop, rowCount int, onRefresh func(), fontFace text.Face, deviceScale float64, logger *zap.Logger) *Game {
	if deviceScale <= 0 {
		deviceScale = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Game{
		ctx:         ctx,
		board:       board,
		loop:        l,
		layout:      view.NewLayout(rowCount),
		onRefresh:   onRefresh,
		fontFace:    fontFace,
		deviceScale: deviceScale,
		logger:      logger,
	}
}

func (g *Game) Update() error {
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.loop.Drain()
	g.frame++

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		x, y := float64(mx)/g.deviceScale, float64(my)/g.deviceScale
		if g.layout.Button.Contains(x, y) && !g.board.Busy() {
			g.logger.Info("Manual refresh requested")
			g.onRefresh()
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	snap := g.board.Snapshot()
	l := g.layout

	g.drawCentered(screen, snap.Clock, l.Clock, foreground)

	for i, header := range []string{"Crypto", "Price", "24h %"} {
		g.drawText(screen, header, l.Columns[i], l.Header.Y, foreground)
	}

	for i, row := range snap.Rows {
		if i >= len(l.Rows) {
			break
		}
		y := l.Rows[i].Y
		g.drawText(screen, row.Name, l.Columns[0], y, foreground)
		g.drawText(screen, row.PriceText, l.Columns[1], y, foreground)
		g.drawText(screen, row.ChangeText, l.Columns[2], y, toneColor(row.Tone))
	}

	g.drawProgress(screen, l.Progress, snap.Busy)
	g.drawButton(screen, l.Button, !snap.Busy)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return int(float64(outsideWidth) * g.deviceScale), int(float64(outsideHeight) * g.deviceScale)
}

func (g *Game) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	if s == "" {
		return
	}
	esset.DrawText(screen, s, 0, x*g.deviceScale, y*g.deviceScale, g.fontFace, clr)
}

func (g *Game) drawCentered(screen *ebiten.Image, s string, r view.Rect, clr color.Color) {
	if s == "" {
		return
	}
	w, h := text.Measure(s, g.fontFace, 0)
	x := r.X*g.deviceScale + (r.W*g.deviceScale-w)/2
	y := r.Y*g.deviceScale + (r.H*g.deviceScale-h)/2
	esset.DrawText(screen, s, 0, x, y, g.fontFace, clr)
}

// drawProgress draws an indeterminate bar sliding across the track while busy.
func (g *Game) drawProgress(screen *ebiten.Image, r view.Rect, busy bool) {
	s := float32(g.deviceScale)
	vector.DrawFilledRect(screen, float32(r.X)*s, float32(r.Y)*s, float32(r.W)*s, float32(r.H)*s, trackColor, false)
	if !busy {
		return
	}

	segment := r.W / 4
	travel := r.W - segment
	period := 90
	pos := g.frame % (2 * period)
	if pos > period {
		pos = 2*period - pos
	}
	x := r.X + travel*float64(pos)/float64(period)
	vector.DrawFilledRect(screen, float32(x)*s, float32(r.Y)*s, float32(segment)*s, float32(r.H)*s, barColor, false)
}

func (g *Game) drawButton(screen *ebiten.Image, r view.Rect, enabled bool) {
	s := float32(g.deviceScale)
	vector.DrawFilledRect(screen, float32(r.X)*s, float32(r.Y)*s, float32(r.W)*s, float32(r.H)*s, buttonColor, false)

	labelColor := color.Color(foreground)
	border := color.Color(buttonBorder)
	if !enabled {
		labelColor = dimColor
		border = dimColor
	}
	vector.StrokeRect(screen, float32(r.X)*s, float32(r.Y)*s, float32(r.W)*s, float32(r.H)*s, 1*s, border, false)
	g.drawCentered(screen, buttonLabel, r, labelColor)
}

func toneColor(t format.Tone) color.Color {
	switch t {
	case format.ToneUp:
		return upColor
	case format.ToneDown:
		return downColor
	default:
		return foreground
	}
}
