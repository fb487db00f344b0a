// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package daemon

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestReloadWatcherFiresOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("initial"), 0o644); err != nil {
		t.Fatal(err)
	}

	var reloads int32
	r := &ReloadWatcher{
		Path:     path,
		OnReload: func() { atomic.AddInt32(&reloads, 1) },
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := r.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer r.Stop()

	time.Sleep(10 * time.Millisecond) // let the watch register before writing
	if err := os.WriteFile(path, []byte("changed"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(2 * time.Second)
	for atomic.LoadInt32(&reloads) == 0 {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for OnReload to fire")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
