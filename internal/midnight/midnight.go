// Package midnight clears the daily price baseline at local midnight.
package midnight

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/temidaradev/cryptoliveshow/internal/loop"
	"github.com/temidaradev/cryptoliveshow/internal/scheduler"
)

const day = 24 * time.Hour

// UntilNext returns the wait from now until the next local midnight, in (0, 24h].
// DST days longer than 24h are capped; the resetter then fires an hour early
// and again at midnight, which is harmless for a reset.
func UntilNext(now time.Time) time.Duration {
	y, m, d := now.Date()
	next := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())

	wait := next.Sub(now)
	if wait > day {
		return day
	}
	if wait <= 0 {
		// Only reachable if the zone skips midnight entirely.
		return day
	}
	return wait
}

// Resettable is the state cleared at midnight.
type Resettable interface {
	Reset()
}

type Resetter struct {
	table  Resettable
	poster loop.Poster
	logger *zap.Logger
	sched  *scheduler.Scheduler
}

// NewResetter resets table on the UI loop at every local midnight.
func NewResetter(table Resettable, poster loop.Poster, logger *zap.Logger) *Resetter {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Resetter{
		table:  table,
		poster: poster,
		logger: logger,
	}
	r.sched = scheduler.NewRecurring(r.next, r.fire)
	return r
}

func (r *Resetter) Start(ctx context.Context) {
	r.logger.Info("Scheduling midnight reset", zap.Duration("in", UntilNext(time.Now())))
	r.sched.Start(ctx, false)
}

func (r *Resetter) Stop() {
	r.sched.Stop()
}

func (r *Resetter) next(now time.Time) time.Duration {
	return UntilNext(now)
}

func (r *Resetter) fire(ctx context.Context) {
	r.poster.Post(func() {
		r.table.Reset()
		r.logger.Info("Previous prices reset at midnight",
			zap.Duration("next_in", UntilNext(time.Now())))
	})
}
