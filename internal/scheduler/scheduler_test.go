package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodicTask(t *testing.T) {
	var counter int32

	pt := New(50*time.Millisecond, func(ctx context.Context) {
		atomic.AddInt32(&counter, 1)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pt.Start(ctx, true)
	assert.True(t, pt.IsRunning())

	time.Sleep(180 * time.Millisecond)

	pt.Stop()
	assert.False(t, pt.IsRunning())
	assert.GreaterOrEqual(t, atomic.LoadInt32(&counter), int32(3))

	finalCount := atomic.LoadInt32(&counter)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, finalCount, atomic.LoadInt32(&counter))
}

func TestPeriodicTask_NoImmediateRun(t *testing.T) {
	var counter int32
	pt := New(time.Hour, func(ctx context.Context) {
		atomic.AddInt32(&counter, 1)
	})

	pt.Start(context.Background(), false)
	time.Sleep(30 * time.Millisecond)
	pt.Stop()

	assert.Equal(t, int32(0), atomic.LoadInt32(&counter))
}

func TestPeriodicTask_StopBeforeStart(t *testing.T) {
	pt := New(100*time.Millisecond, func(ctx context.Context) {})
	pt.Stop()
	assert.False(t, pt.IsRunning())
}

func TestPeriodicTask_DoubleStart(t *testing.T) {
	var counter int32
	pt := New(time.Hour, func(ctx context.Context) {
		atomic.AddInt32(&counter, 1)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pt.Start(ctx, true)
	pt.Start(ctx, true)

	time.Sleep(50 * time.Millisecond)
	pt.Stop()

	assert.Equal(t, int32(1), atomic.LoadInt32(&counter))
}

func TestPeriodicTask_ContextCancellation(t *testing.T) {
	var counter int32
	pt := New(20*time.Millisecond, func(ctx context.Context) {
		atomic.AddInt32(&counter, 1)
	})

	ctx, cancel := context.WithCancel(context.Background())
	pt.Start(ctx, true)
	time.Sleep(50 * time.Millisecond)

	cancel()
	time.Sleep(30 * time.Millisecond)
	stopped := atomic.LoadInt32(&counter)
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, stopped, atomic.LoadInt32(&counter))

	pt.Stop()
}

func TestRecurring_RecomputesDeadline(t *testing.T) {
	var mu sync.Mutex
	var waits []time.Duration
	fired := make(chan struct{}, 10)

	next := func(now time.Time) time.Duration {
		mu.Lock()
		defer mu.Unlock()
		d := time.Duration(len(waits)+1) * 10 * time.Millisecond
		waits = append(waits, d)
		return d
	}

	pt := NewRecurring(next, func(ctx context.Context) {
		fired <- struct{}{}
	})
	pt.Start(context.Background(), false)
	defer pt.Stop()

	for i := 0; i < 3; i++ {
		select {
		case <-fired:
		case <-time.After(time.Second):
			t.Fatalf("firing %d did not happen", i+1)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	assert.GreaterOrEqual(t, len(waits), 3)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 30 * time.Millisecond}, waits[:3])
}
