// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package gitengine

import (
	"os"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v5"

	"github.com/multigit-io/multigit/internal/merrors"
)

func initTestRepo(t *testing.T) *RepoHandle {
	t.Helper()
	dir := t.TempDir()
	if _, err := gogit.PlainInit(dir, false); err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	h, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return h
}

func TestAddRemoveSetRemoteURL(t *testing.T) {
	h := initTestRepo(t)

	if err := h.AddRemote("origin", "https://example.com/a.git"); err != nil {
		t.Fatalf("AddRemote: %v", err)
	}
	if err := h.AddRemote("origin", "https://example.com/a.git"); merrors.KindOf(err) != merrors.Conflict {
		t.Fatalf("expected Conflict on duplicate remote, got %v", err)
	}

	if err := h.SetRemoteURL("origin", "https://example.com/b.git"); err != nil {
		t.Fatalf("SetRemoteURL: %v", err)
	}
	url, err := h.RemoteURL("origin")
	if err != nil {
		t.Fatalf("RemoteURL: %v", err)
	}
	if url != "https://example.com/b.git" {
		t.Errorf("RemoteURL = %q, want the updated URL", url)
	}

	if err := h.RemoveRemote("origin"); err != nil {
		t.Fatalf("RemoveRemote: %v", err)
	}
	if err := h.RemoveRemote("origin"); merrors.KindOf(err) != merrors.NotFound {
		t.Fatalf("expected NotFound removing an absent remote, got %v", err)
	}
}

func TestOpenFromWorkingDirFindsRepoFromSubdir(t *testing.T) {
	h := initTestRepo(t)
	sub := filepath.Join(h.Root(), "nested", "dir")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	found, err := OpenFromWorkingDir(sub)
	if err != nil {
		t.Fatalf("OpenFromWorkingDir: %v", err)
	}
	if found.Root() != h.Root() {
		t.Errorf("Root() = %q, want %q", found.Root(), h.Root())
	}
}
