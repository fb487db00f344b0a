// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package gitengine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/multigit-io/multigit/internal/merrors"
	"github.com/multigit-io/multigit/pkg/provider"
)

func initRepoWithCommit(t *testing.T, dir string) *gogit.Repository {
	t.Helper()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := wt.Add("README.md"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	sig := &object.Signature{Name: "Test", Email: "test@example.com", When: time.Unix(0, 0)}
	if _, err := wt.Commit("initial", &gogit.CommitOptions{Author: sig}); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return repo
}

func TestOpenNotARepository(t *testing.T) {
	dir := t.TempDir()
	if _, err := Open(dir); merrors.KindOf(err) != merrors.NotFound {
		t.Errorf("Open() kind = %v, want NotFound", merrors.KindOf(err))
	}
}

func TestOpenCurrentBranchAndClean(t *testing.T) {
	dir := t.TempDir()
	initRepoWithCommit(t, dir)

	h, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	clean, err := h.WorkingDirClean()
	if err != nil {
		t.Fatalf("WorkingDirClean: %v", err)
	}
	if !clean {
		t.Error("expected a freshly committed worktree to be clean")
	}

	branch, err := h.CurrentBranch()
	if err != nil {
		t.Fatalf("CurrentBranch: %v", err)
	}
	if branch == "" {
		t.Error("expected a non-empty current branch name")
	}
}

func TestListRemotesAndRemoteURL(t *testing.T) {
	dir := t.TempDir()
	repo := initRepoWithCommit(t, dir)

	if _, err := repo.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{"https://github.com/example/repo.git"},
	}); err != nil {
		t.Fatalf("CreateRemote: %v", err)
	}

	h, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	remotes, err := h.ListRemotes()
	if err != nil {
		t.Fatalf("ListRemotes: %v", err)
	}
	if len(remotes) != 1 || remotes[0] != "origin" {
		t.Errorf("ListRemotes() = %v, want [origin]", remotes)
	}

	url, err := h.RemoteURL("origin")
	if err != nil {
		t.Fatalf("RemoteURL: %v", err)
	}
	if url != "https://github.com/example/repo.git" {
		t.Errorf("RemoteURL() = %q", url)
	}

	if _, err := h.RemoteURL("does-not-exist"); merrors.KindOf(err) != merrors.NotFound {
		t.Errorf("RemoteURL() for missing remote kind = %v, want NotFound", merrors.KindOf(err))
	}
}

func TestGraphAheadBehindIdenticalTips(t *testing.T) {
	dir := t.TempDir()
	repo := initRepoWithCommit(t, dir)
	h := &RepoHandle{repo: repo, path: dir}

	head, err := repo.Head()
	if err != nil {
		t.Fatalf("Head: %v", err)
	}

	ahead, behind, err := h.GraphAheadBehind(head.Hash(), head.Hash())
	if err != nil {
		t.Fatalf("GraphAheadBehind: %v", err)
	}
	if ahead != 0 || behind != 0 {
		t.Errorf("GraphAheadBehind(same, same) = (%d, %d), want (0, 0)", ahead, behind)
	}
}

func TestGraphAheadBehindLocalAhead(t *testing.T) {
	dir := t.TempDir()
	repo := initRepoWithCommit(t, dir)
	h := &RepoHandle{repo: repo, path: dir}

	base, err := repo.Head()
	if err != nil {
		t.Fatalf("Head: %v", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "second.txt"), []byte("more"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := wt.Add("second.txt"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	sig := &object.Signature{Name: "Test", Email: "test@example.com", When: time.Unix(1, 0)}
	if _, err := wt.Commit("second", &gogit.CommitOptions{Author: sig}); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	head, err := repo.Head()
	if err != nil {
		t.Fatalf("Head: %v", err)
	}

	ahead, behind, err := h.GraphAheadBehind(head.Hash(), base.Hash())
	if err != nil {
		t.Fatalf("GraphAheadBehind: %v", err)
	}
	if ahead != 1 || behind != 0 {
		t.Errorf("GraphAheadBehind(head, base) = (%d, %d), want (1, 0)", ahead, behind)
	}
}

func TestBuildAuthRejectsMissingHTTPSToken(t *testing.T) {
	_, err := buildAuth("https://github.com/example/repo.git", provider.Credential{})
	if merrors.KindOf(err) != merrors.Auth {
		t.Errorf("buildAuth() kind = %v, want Auth", merrors.KindOf(err))
	}
}
