// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package gitengine

import (
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"

	"github.com/multigit-io/multigit/internal/merrors"
)

// Root returns the path the handle was opened against.
func (h *RepoHandle) Root() string { return h.path }

// AddRemote registers a new remote named name pointing at url. It returns a
// Conflict error if a remote by that name already exists.
func (h *RepoHandle) AddRemote(name, url string) error {
	_, err := h.repo.CreateRemote(&config.RemoteConfig{Name: name, URLs: []string{url}})
	if err != nil {
		if err == gogit.ErrRemoteExists {
			return merrors.Wrap(merrors.Conflict, "gitengine.add_remote", err)
		}
		return merrors.Wrap(merrors.Internal, "gitengine.add_remote", err)
	}
	return nil
}

// RemoveRemote deletes the named remote. It returns a NotFound error if no
// such remote is configured.
func (h *RepoHandle) RemoveRemote(name string) error {
	if err := h.repo.DeleteRemote(name); err != nil {
		if err == gogit.ErrRemoteNotFound {
			return merrors.Wrap(merrors.NotFound, "gitengine.remove_remote", err)
		}
		return merrors.Wrap(merrors.Internal, "gitengine.remove_remote", err)
	}
	return nil
}

// SetRemoteURL replaces the named remote's URL, removing and re-creating it
// since go-git has no in-place remote-config update.
func (h *RepoHandle) SetRemoteURL(name, url string) error {
	if err := h.RemoveRemote(name); err != nil && merrors.KindOf(err) != merrors.NotFound {
		return err
	}
	return h.AddRemote(name, url)
}

// OpenFromWorkingDir opens the repository containing start, searching
// parent directories for a .git entry the way `git` itself resolves the
// working repository from any subdirectory.
func OpenFromWorkingDir(start string) (*RepoHandle, error) {
	repo, err := gogit.PlainOpenWithOptions(start, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if err == gogit.ErrRepositoryNotExists {
			return nil, merrors.Wrap(merrors.NotFound, "gitengine.open", err)
		}
		return nil, merrors.Wrap(merrors.Corrupt, "gitengine.open", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, merrors.Wrap(merrors.Internal, "gitengine.open", err)
	}
	return &RepoHandle{repo: repo, path: wt.Filesystem.Root()}, nil
}
