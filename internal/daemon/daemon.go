// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package daemon

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Daemon owns the PID file, scheduler, and config-reload watcher for one
// background run. Run blocks until a stop signal or ctx cancellation.
type Daemon struct {
	PIDFilePath  string
	ConfigPath   string
	Interval     time.Duration
	Sync         SyncFunc
	OnConfigLoad func() // invoked once at startup and again on every reload
	Logger       *zap.Logger
}

// Run acquires the PID file, starts the scheduler and config watcher, and
// blocks until SIGINT/SIGTERM or ctx is cancelled. It always releases the
// PID file before returning.
func (d *Daemon) Run(ctx context.Context) error {
	pf, err := AcquirePIDFile(d.PIDFilePath)
	if err != nil {
		return err
	}
	defer pf.Release()

	if d.OnConfigLoad != nil {
		d.OnConfigLoad()
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if d.ConfigPath != "" {
		reload := &ReloadWatcher{Path: d.ConfigPath, OnReload: d.OnConfigLoad, Logger: d.Logger}
		if err := reload.Start(runCtx); err != nil {
			return err
		}
		defer reload.Stop()
	}

	scheduler := &Scheduler{Interval: d.Interval, Fn: d.Sync, Logger: d.Logger}
	schedulerDone := make(chan struct{})
	go func() {
		scheduler.Run(runCtx)
		close(schedulerDone)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-sigCh:
		if d.Logger != nil {
			d.Logger.Info("received stop signal, shutting down")
		}
	case <-ctx.Done():
	}

	cancel()
	<-schedulerDone
	return nil
}
