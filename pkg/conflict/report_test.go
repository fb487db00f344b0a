// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package conflict

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/multigit-io/multigit/internal/config"
	"github.com/multigit-io/multigit/internal/gitengine"
)

func commit(t *testing.T, repo *gogit.Repository, dir, file, content string, when time.Time) plumbing.Hash {
	t.Helper()
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := wt.Add(file); err != nil {
		t.Fatalf("Add: %v", err)
	}
	sig := &object.Signature{Name: "Test", Email: "test@example.com", When: when}
	hash, err := wt.Commit("commit "+file, &gogit.CommitOptions{Author: sig})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return hash
}

func TestDetectLocalAheadAndMissingRemote(t *testing.T) {
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}

	base := commit(t, repo, dir, "a.txt", "one", time.Unix(0, 0))
	commit(t, repo, dir, "b.txt", "two", time.Unix(1, 0))

	// github is in sync with the parent commit; gitlab has no tracking ref yet.
	_, err = repo.Storer.SetReference(plumbing.NewHashReference(
		plumbing.NewRemoteReferenceName("github", "main"), base))
	if err != nil {
		t.Fatalf("SetReference: %v", err)
	}

	h, err := gitengine.Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	report, err := Detect(context.Background(), h, "main", []string{"github", "gitlab"}, config.Sync{Strategy: config.StrategyFastForward})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(report.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(report.Entries))
	}

	byRemote := map[string]Entry{}
	for _, e := range report.Entries {
		byRemote[e.Remote] = e
	}

	if got := byRemote["github"].Classification; got != LocalAhead {
		t.Errorf("github classification = %v, want LocalAhead", got)
	}
	if got := byRemote["github"].Action; got != ActionPush {
		t.Errorf("github action = %v, want ActionPush", got)
	}
	if got := byRemote["gitlab"].Classification; got != MissingRemote {
		t.Errorf("gitlab classification = %v, want MissingRemote", got)
	}
	if report.AllClear() {
		t.Error("AllClear() = true, want false (gitlab is missing-remote)")
	}
}
