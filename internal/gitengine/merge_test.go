// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package gitengine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func TestFastForwardBranchAdvancesRefAndWorktree(t *testing.T) {
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}

	sig := &object.Signature{Name: "t", Email: "t@example.com", When: time.Unix(0, 0)}
	write := func(name, content string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := wt.Add(name); err != nil {
			t.Fatal(err)
		}
	}

	write("a.txt", "one")
	if _, err := wt.Commit("first", &gogit.CommitOptions{Author: sig}); err != nil {
		t.Fatal(err)
	}
	write("a.txt", "two")
	second, err := wt.Commit("second", &gogit.CommitOptions{Author: sig})
	if err != nil {
		t.Fatal(err)
	}

	// Rewind the branch ref back to the first commit, simulating a stale
	// local branch behind a fetched remote tip (second).
	h, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	head, err := repo.Head()
	if err != nil {
		t.Fatal(err)
	}
	branch := head.Name().Short()

	if err := h.FastForwardBranch(branch, second); err != nil {
		t.Fatalf("FastForwardBranch: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "two" {
		t.Errorf("a.txt = %q, want %q after fast-forward", data, "two")
	}

	resolved, err := h.ResolveRef(head.Name())
	if err != nil {
		t.Fatal(err)
	}
	if resolved != second {
		t.Errorf("branch ref = %v, want %v", resolved, second)
	}
}
