// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package daemon

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// SyncFunc runs one sync pass. It is the scheduler's unit of work; the
// caller supplies whatever orchestrator call (Sync, PushAll, ...) the
// configured trigger should run.
type SyncFunc func(ctx context.Context) error

// Scheduler runs fn every interval, skipping a tick if the previous run is
// still in flight rather than overlapping two concurrent syncs.
type Scheduler struct {
	Interval time.Duration
	Fn       SyncFunc
	Logger   *zap.Logger

	running int32
}

// Run blocks until ctx is cancelled, firing Fn on every tick.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		if s.Logger != nil {
			s.Logger.Warn("skipping tick: previous sync still running")
		}
		return
	}
	defer atomic.StoreInt32(&s.running, 0)

	if err := s.Fn(ctx); err != nil && s.Logger != nil {
		s.Logger.Error("scheduled sync failed", zap.Error(err))
	}
}
