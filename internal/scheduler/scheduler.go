package scheduler

import (
	"context"
	"sync"
	"time"
)

// NextFunc returns how long to wait, measured from now, before the next run.
type NextFunc func(now time.Time) time.Duration

// Scheduler runs a task in the background. The wait before each run is
// recomputed after the previous one, so both fixed intervals and calendar
// deadlines (next midnight) work without the task rescheduling itself.
type Scheduler struct {
	next    NextFunc
	task    func(context.Context)
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
}

// New creates a Scheduler that runs task every interval.
func New(interval time.Duration, task func(context.Context)) *Scheduler {
	return NewRecurring(func(time.Time) time.Duration { return interval }, task)
}

// NewRecurring creates a Scheduler whose deadline is recomputed by next after every run.
func NewRecurring(next NextFunc, task func(context.Context)) *Scheduler {
	return &Scheduler{
		next: next,
		task: task,
	}
}

// Start begins executing the task. A second Start while running is a no-op.
func (s *Scheduler) Start(ctx context.Context, firstRunImmediately bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.running = true

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		if firstRunImmediately {
			s.task(ctx)
		}

		timer := time.NewTimer(s.next(time.Now()))
		defer timer.Stop()

		for {
			select {
			case <-timer.C:
				s.task(ctx)
				timer.Reset(s.next(time.Now()))
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop cancels the schedule and waits for a running task to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.running = false
}

func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
