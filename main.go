package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/temidaradev/esset/v2"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/time/rate"

	"github.com/temidaradev/cryptoliveshow/internal/coingecko"
	"github.com/temidaradev/cryptoliveshow/internal/coins"
	"github.com/temidaradev/cryptoliveshow/internal/config"
	"github.com/temidaradev/cryptoliveshow/internal/format"
	"github.com/temidaradev/cryptoliveshow/internal/logger"
	"github.com/temidaradev/cryptoliveshow/internal/loop"
	"github.com/temidaradev/cryptoliveshow/internal/metrics"
	"github.com/temidaradev/cryptoliveshow/internal/midnight"
	"github.com/temidaradev/cryptoliveshow/internal/refresh"
	"github.com/temidaradev/cryptoliveshow/internal/scheduler"
	"github.com/temidaradev/cryptoliveshow/internal/ui"
	"github.com/temidaradev/cryptoliveshow/internal/view"
)

func main() {
	cfg, err := config.Load(config.FileName)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.Logging.Level)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Received shutdown signal, closing window")
		cancel()
	}()

	metricsWriter := metrics.NewMetricsWriter()
	if cfg.Metrics.ListenAddr != "" {
		metrics.NewServer(cfg.Metrics.ListenAddr, log.Named("metrics")).Start(ctx)
	}

	limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.CoinGecko.RequestsPerMinute)), cfg.CoinGecko.Burst)
	client := coingecko.NewClient(cfg.CoinGecko.BaseURL,
		coingecko.RetryOptions{
			MaxAttempts:    cfg.CoinGecko.MaxAttempts,
			Delay:          cfg.CoinGecko.RetryDelay(),
			RequestTimeout: cfg.CoinGecko.RequestTimeout(),
		},
		coingecko.WithLimiter(limiter),
		coingecko.WithStatusHandler(metricsWriter),
		coingecko.WithLogger(log.Named("coingecko")),
	)

	uiLoop := loop.New()
	board := view.NewBoard(coins.All)

	orchestrator := refresh.New(refresh.Config{Interval: cfg.Refresh.Interval()},
		client, board, uiLoop, refresh.NewPriceTable(), log.Named("refresh"))
	orchestrator.SetRecorder(metricsWriter)

	resetter := midnight.NewResetter(orchestrator.Table(), uiLoop, log.Named("midnight"))

	clock := scheduler.New(cfg.Clock.Interval(), func(context.Context) {
		now := time.Now()
		uiLoop.Post(func() { board.SetClock(format.Clock(now)) })
	})

	ebiten.SetWindowSize(view.WindowWidth, view.WindowHeight)
	ebiten.SetWindowTitle(ui.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)

	deviceScale := ebiten.Monitor().DeviceScaleFactor()
	scaledFontSize := ui.BaseFontSize * deviceScale
	fontFace, err := esset.GetFont(goregular.TTF, int(scaledFontSize))
	if err != nil {
		log.Fatal("Font could not be loaded", zap.Float64("size", scaledFontSize), zap.Error(err))
	}

	log.Debug("Glyph caching")
	text.Draw(ebiten.NewImage(1, 1), ui.GlyphsToPreload, fontFace, &text.DrawOptions{})

	clock.Start(ctx, true)
	orchestrator.Start(ctx)
	resetter.Start(ctx)

	game := ui.NewGame(ctx, board, uiLoop, len(coins.All),
		func() { orchestrator.Trigger(true) },
		fontFace, deviceScale, log.Named("ui"))

	err = ebiten.RunGame(game)

	cancel()
	clock.Stop()
	resetter.Stop()
	orchestrator.Stop()

	if err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal("Game loop failed", zap.Error(err))
	}
	log.Info("Window closed")
}
