// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package gitengine

import (
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/multigit-io/multigit/internal/merrors"
)

// FastForwardBranch advances branch's local ref to target and resets the
// worktree to match. Callers must have already established this is a safe
// fast-forward (e.g. conflict.RemoteAhead) — FastForwardBranch performs no
// ancestry check of its own and will happily rewrite history if target is
// not actually a descendant.
func (h *RepoHandle) FastForwardBranch(branch string, target plumbing.Hash) error {
	clean, err := h.WorkingDirClean()
	if err != nil {
		return err
	}
	if !clean {
		return merrors.New(merrors.Conflict, "gitengine.fast_forward", "working directory is not clean")
	}

	refName := plumbing.NewBranchReferenceName(branch)
	if err := h.repo.Storer.SetReference(plumbing.NewHashReference(refName, target)); err != nil {
		return merrors.Wrap(merrors.Internal, "gitengine.fast_forward", err)
	}

	wt, err := h.repo.Worktree()
	if err != nil {
		return merrors.Wrap(merrors.Internal, "gitengine.fast_forward", err)
	}
	if err := wt.Reset(&gogit.ResetOptions{Commit: target, Mode: gogit.HardReset}); err != nil {
		return merrors.Wrap(merrors.Internal, "gitengine.fast_forward", err)
	}
	return nil
}
