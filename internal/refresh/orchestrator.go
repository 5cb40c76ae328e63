// Package refresh drives fetch-and-render cycles for the price table.
package refresh

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/temidaradev/cryptoliveshow/internal/coins"
	"github.com/temidaradev/cryptoliveshow/internal/format"
	"github.com/temidaradev/cryptoliveshow/internal/loop"
	"github.com/temidaradev/cryptoliveshow/internal/scheduler"
)

//go:generate mockgen -destination=mocks/fetcher.go . Fetcher

// Fetcher returns the latest quote of every tracked asset it could get.
type Fetcher interface {
	FetchQuotes(ctx context.Context) (map[coins.Asset]coins.Quote, error)
}

// View receives rendered rows. Calls always arrive on the UI loop.
type View interface {
	SetRow(asset coins.Asset, priceText, changeText string, tone format.Tone)
	SetBusy(busy bool)
}

// CycleRecorder observes finished cycles.
type CycleRecorder interface {
	RecordCycle(outcome string, duration time.Duration)
}

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFetching
	PhaseApplying
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseFetching:
		return "fetching"
	case PhaseApplying:
		return "applying"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

const (
	OutcomeSuccess   = "success"
	OutcomeFailure   = "failure"
	OutcomeCancelled = "cancelled"
)

// Config holds orchestrator settings.
type Config struct {
	Interval time.Duration // automatic refresh interval (default: 10s)
}

func DefaultConfig() Config {
	return Config{Interval: 10 * time.Second}
}

// Orchestrator runs refresh cycles. Each cycle fetches on its own goroutine
// and applies the result on the UI loop, so the table and the view are only
// ever touched from that loop. Cycles may overlap; the last one applied wins.
type Orchestrator struct {
	cfg      Config
	fetcher  Fetcher
	view     View
	poster   loop.Poster
	table    *PriceTable
	recorder CycleRecorder
	logger   *zap.Logger
	now      func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	sched  *scheduler.Scheduler
	wg     sync.WaitGroup

	mu       sync.Mutex
	inFlight int
	phase    Phase
	cycles   uint64
}

func New(cfg Config, fetcher Fetcher, view View, poster loop.Poster, table *PriceTable, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if table == nil {
		table = NewPriceTable()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Orchestrator{
		cfg:     cfg,
		fetcher: fetcher,
		view:    view,
		poster:  poster,
		table:   table,
		logger:  logger,
		now:     time.Now,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// SetRecorder attaches a metrics recorder; call before Start.
func (o *Orchestrator) SetRecorder(r CycleRecorder) {
	o.recorder = r
}

// Table returns the previous-price table owned by the orchestrator.
func (o *Orchestrator) Table() *PriceTable {
	return o.table
}

// Start runs the first cycle immediately and then one every Interval. Manual
// triggers do not move this schedule.
func (o *Orchestrator) Start(ctx context.Context) {
	o.cancel()
	o.ctx, o.cancel = context.WithCancel(ctx)
	o.sched = scheduler.New(o.cfg.Interval, func(context.Context) {
		o.poster.Post(func() { o.Trigger(false) })
	})
	o.sched.Start(o.ctx, true)
	o.logger.Info("Refresh orchestrator started", zap.Duration("interval", o.cfg.Interval))
}

// Stop cancels the schedule and in-flight fetches and waits for their workers.
func (o *Orchestrator) Stop() {
	o.cancel()
	if o.sched != nil {
		o.sched.Stop()
	}
	o.wg.Wait()
}

// Trigger starts one cycle. It must be called on the UI loop.
func (o *Orchestrator) Trigger(manual bool) {
	o.mu.Lock()
	o.inFlight++
	o.cycles++
	id := o.cycles
	o.phase = PhaseFetching
	o.mu.Unlock()

	o.view.SetBusy(true)
	o.logger.Info("Refresh cycle started", zap.Uint64("cycle", id), zap.Bool("manual", manual))

	ctx := o.ctx
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()

		start := o.now()
		quotes, err := o.fetcher.FetchQuotes(ctx)
		fetchedAt := o.now()

		o.poster.Post(func() {
			o.complete(ctx, id, quotes, err, fetchedAt, fetchedAt.Sub(start))
		})
	}()
}

func (o *Orchestrator) Phase() Phase {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.phase
}

func (o *Orchestrator) InFlight() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.inFlight
}

func (o *Orchestrator) complete(ctx context.Context, id uint64, quotes map[coins.Asset]coins.Quote, err error, fetchedAt time.Time, took time.Duration) {
	outcome := OutcomeSuccess
	switch {
	case ctx.Err() != nil:
		outcome = OutcomeCancelled
		o.logger.Info("Refresh cycle cancelled", zap.Uint64("cycle", id))
	case err != nil:
		outcome = OutcomeFailure
		o.setPhase(PhaseFailed)
		o.logger.Error("Refresh cycle failed", zap.Uint64("cycle", id), zap.Error(err))
		for _, asset := range coins.All {
			o.view.SetRow(asset, format.ErrorText, format.Dash, format.ToneNeutral)
		}
	default:
		o.setPhase(PhaseApplying)
		o.apply(id, quotes, fetchedAt)
	}

	if o.recorder != nil {
		o.recorder.RecordCycle(outcome, took)
	}

	o.mu.Lock()
	o.inFlight--
	idle := o.inFlight == 0
	if idle {
		o.phase = PhaseIdle
	} else {
		o.phase = PhaseFetching
	}
	o.mu.Unlock()

	if idle {
		o.view.SetBusy(false)
	}
}

func (o *Orchestrator) apply(id uint64, quotes map[coins.Asset]coins.Quote, fetchedAt time.Time) {
	samples := make([]coins.PriceSample, 0, len(quotes))
	for _, asset := range coins.All {
		q, ok := quotes[asset]
		if !ok {
			continue
		}
		s := coins.NewPriceSample(asset, q, fetchedAt)
		samples = append(samples, s)

		changeText, tone := format.Change(s.Change24h)
		o.view.SetRow(asset, "$"+format.Price(s.Price), changeText, tone)

		if prev, ok := o.table.Get(asset); ok {
			o.logger.Debug("Price since baseline",
				zap.String("asset", string(asset)),
				zap.String("price", s.Price.String()),
				zap.Float64("change_pct", format.PercentChange(s.Price, prev)))
		}
	}

	o.table.Apply(samples)
	o.logger.Info("Refresh cycle applied", zap.Uint64("cycle", id), zap.Int("assets", len(samples)))
}

func (o *Orchestrator) setPhase(p Phase) {
	o.mu.Lock()
	o.phase = p
	o.mu.Unlock()
}
