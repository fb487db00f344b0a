// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package daemon

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestSchedulerTicksAndStopsOnCancel(t *testing.T) {
	var calls int32

	s := &Scheduler{
		Interval: 5 * time.Millisecond,
		Fn: func(ctx context.Context) error {
			atomic.AddInt32(&calls, 1)
			return nil
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancel()

	s.Run(ctx)

	if atomic.LoadInt32(&calls) < 2 {
		t.Errorf("expected multiple ticks within 40ms at 5ms interval, got %d", calls)
	}
}

func TestSchedulerSkipsOverlappingTick(t *testing.T) {
	var concurrent int32
	var maxConcurrent int32
	release := make(chan struct{})

	s := &Scheduler{
		Interval: 2 * time.Millisecond,
		Fn: func(ctx context.Context) error {
			n := atomic.AddInt32(&concurrent, 1)
			if n > atomic.LoadInt32(&maxConcurrent) {
				atomic.StoreInt32(&maxConcurrent, n)
			}
			<-release
			atomic.AddInt32(&concurrent, -1)
			return nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	go s.Run(ctx)

	time.Sleep(20 * time.Millisecond) // several ticks fire while the first Fn blocks
	close(release)
	time.Sleep(5 * time.Millisecond)
	cancel()

	if atomic.LoadInt32(&maxConcurrent) > 1 {
		t.Errorf("max concurrent sync runs = %d, want at most 1", maxConcurrent)
	}
}
