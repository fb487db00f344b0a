// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package gitengine

import (
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/multigit-io/multigit/internal/merrors"
)

// DefaultTimeout is the wall-time budget applied to a fetch or push when the
// caller does not pass one, matching the teacher's gitcmd.Executor default.
const DefaultTimeout = 5 * time.Minute

// RepoHandle wraps an opened local repository.
type RepoHandle struct {
	repo *gogit.Repository
	path string
}

// Open opens the Git repository rooted at path. It returns a NotFound error
// if path is not a Git working tree, and a Corrupt error if a .git directory
// exists but its object database cannot be read.
func Open(path string) (*RepoHandle, error) {
	repo, err := gogit.PlainOpen(path)
	if err != nil {
		if err == gogit.ErrRepositoryNotExists {
			return nil, merrors.Wrap(merrors.NotFound, "gitengine.open", err)
		}
		return nil, merrors.Wrap(merrors.Corrupt, "gitengine.open", err)
	}
	return &RepoHandle{repo: repo, path: path}, nil
}

// CurrentBranch returns the short name of the branch HEAD points to. It
// returns a Conflict error when HEAD is detached, since no branch name
// exists to report.
func (h *RepoHandle) CurrentBranch() (string, error) {
	ref, err := h.repo.Head()
	if err != nil {
		return "", merrors.Wrap(merrors.Internal, "gitengine.current_branch", err)
	}
	if !ref.Name().IsBranch() {
		return "", merrors.New(merrors.Conflict, "gitengine.current_branch", "HEAD is detached")
	}
	return ref.Name().Short(), nil
}

// WorkingDirClean reports whether the worktree has no staged or unstaged
// changes relative to HEAD.
func (h *RepoHandle) WorkingDirClean() (bool, error) {
	wt, err := h.repo.Worktree()
	if err != nil {
		return false, merrors.Wrap(merrors.Internal, "gitengine.working_dir_clean", err)
	}
	status, err := wt.Status()
	if err != nil {
		return false, merrors.Wrap(merrors.Internal, "gitengine.working_dir_clean", err)
	}
	return status.IsClean(), nil
}

// ListRemotes returns the configured remote names.
func (h *RepoHandle) ListRemotes() ([]string, error) {
	remotes, err := h.repo.Remotes()
	if err != nil {
		return nil, merrors.Wrap(merrors.Internal, "gitengine.list_remotes", err)
	}
	names := make([]string, 0, len(remotes))
	for _, r := range remotes {
		names = append(names, r.Config().Name)
	}
	return names, nil
}

// ResolveRef returns the hash the named reference points to. It returns a
// NotFound error when the reference does not exist, e.g. a branch with no
// local commits yet or a remote-tracking ref before the first fetch.
func (h *RepoHandle) ResolveRef(name plumbing.ReferenceName) (plumbing.Hash, error) {
	ref, err := h.repo.Reference(name, true)
	if err != nil {
		return plumbing.ZeroHash, merrors.Wrap(merrors.NotFound, "gitengine.resolve_ref", err)
	}
	return ref.Hash(), nil
}

// RemoteURL returns the first configured URL for the named remote.
func (h *RepoHandle) RemoteURL(name string) (string, error) {
	remote, err := h.repo.Remote(name)
	if err != nil {
		return "", merrors.Wrap(merrors.NotFound, "gitengine.remote_url", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", merrors.New(merrors.NotFound, "gitengine.remote_url", "remote has no configured URL")
	}
	return urls[0], nil
}
