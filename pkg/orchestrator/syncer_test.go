// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"

	mconfig "github.com/multigit-io/multigit/internal/config"
	"github.com/multigit-io/multigit/internal/secret"
)

func initRepoWithRemote(t *testing.T, remoteName string) (repoDir string) {
	t.Helper()
	repoDir = t.TempDir()
	repo, err := gogit.PlainInit(repoDir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if err := os.WriteFile(filepath.Join(repoDir, "README.md"), []byte("hi"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := wt.Add("README.md"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	sig := &object.Signature{Name: "Test", Email: "test@example.com", When: time.Unix(0, 0)}
	if _, err := wt.Commit("initial", &gogit.CommitOptions{Author: sig}); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	bareDir := t.TempDir()
	if _, err := gogit.PlainInit(bareDir, true); err != nil {
		t.Fatalf("PlainInit bare: %v", err)
	}
	if _, err := repo.CreateRemote(&config.RemoteConfig{Name: remoteName, URLs: []string{bareDir}}); err != nil {
		t.Fatalf("CreateRemote: %v", err)
	}
	return repoDir
}

func TestPushOneAgainstLocalBareRemote(t *testing.T) {
	const remoteName = "github"
	repoDir := initRepoWithRemote(t, remoteName)

	store := secret.NewFileStore(t.TempDir(), secret.NewPassphrase([]byte("pw")))
	ctx := context.Background()
	if err := store.Store(ctx, "github", "github.com", "alice", "unused-for-local-transport"); err != nil {
		t.Fatal(err)
	}

	s := NewSyncer(repoDir, store)
	remote := mconfig.RemoteSpec{Name: remoteName, Provider: "github", Username: "alice", Enabled: true}

	result := s.pushOne(ctx, "master", remote, false)
	if !result.Success {
		t.Fatalf("pushOne() failed: %s", result.Message)
	}
}

func TestPushAllAggregatesFailureForMissingCredential(t *testing.T) {
	const remoteName = "github"
	repoDir := initRepoWithRemote(t, remoteName)

	store := secret.NewFileStore(t.TempDir(), secret.NewPassphrase([]byte("pw")))
	s := NewSyncer(repoDir, store)
	remote := mconfig.RemoteSpec{Name: remoteName, Provider: "github", Username: "alice", Enabled: true}

	agg := s.PushAll(context.Background(), "master", []mconfig.RemoteSpec{remote}, 2, false)
	if agg.Succeeded != 0 || agg.Failed != 1 {
		t.Fatalf("PushAll() = %+v, want 1 failure", agg)
	}
	if agg.AllSucceeded() {
		t.Error("AllSucceeded() = true, want false")
	}
	if agg.Results[0].ErrorKind == "" {
		t.Error("expected a non-empty ErrorKind on the failed result")
	}
}

func TestRunPreservesInputOrder(t *testing.T) {
	s := &Syncer{}
	remotes := []mconfig.RemoteSpec{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	agg := s.run(context.Background(), remotes, 2, func(ctx context.Context, r mconfig.RemoteSpec) Result {
		// Vary latency so completion order would differ from input order
		// without the index-preserving write-back in run().
		if r.Name == "a" {
			time.Sleep(20 * time.Millisecond)
		}
		return Result{Remote: r.Name, Success: true}
	})

	for i, want := range []string{"a", "b", "c"} {
		if agg.Results[i].Remote != want {
			t.Errorf("Results[%d].Remote = %q, want %q", i, agg.Results[i].Remote, want)
		}
	}
}

func TestBackoffCapped(t *testing.T) {
	d := backoff(10) // would be far beyond the cap uncapped
	if d > maxRetryBackoff+maxRetryBackoff/10+time.Millisecond {
		t.Errorf("backoff(10) = %v, want capped near %v", d, maxRetryBackoff)
	}
}
