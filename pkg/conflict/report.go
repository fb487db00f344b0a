// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package conflict

import (
	"context"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/multigit-io/multigit/internal/config"
	"github.com/multigit-io/multigit/internal/gitengine"
	"github.com/multigit-io/multigit/internal/merrors"
)

// Entry pairs a BranchState with the Action the detector recommends.
type Entry struct {
	BranchState
	Action Action
}

// Report is the ordered per-remote output of Detect.
type Report struct {
	Entries []Entry
}

// AllClear reports whether every entry permits a non-forcing push (in-sync
// or local-ahead), matching spec §3's "a classification distinct from
// in-sync/local-ahead blocks non-forcing push for that remote" invariant.
func (r Report) AllClear() bool {
	for _, e := range r.Entries {
		if e.Classification != InSync && e.Classification != LocalAhead {
			return false
		}
	}
	return true
}

// Detect builds a Report for branch across remotes, using h to resolve the
// local tip and each remote's remote-tracking reference. It assumes
// remote-tracking refs are already current, i.e. a fetch-all has run.
// Detect performs no mutation of the repository.
func Detect(ctx context.Context, h *gitengine.RepoHandle, branch string, remotes []string, sync config.Sync) (Report, error) {
	var report Report

	localRef, err := h.ResolveRef(plumbing.NewBranchReferenceName(branch))
	hasLocal := err == nil

	for _, remote := range remotes {
		remoteRef, rerr := h.ResolveRef(plumbing.NewRemoteReferenceName(remote, branch))
		hasRemote := rerr == nil

		var ahead, behind int
		if hasLocal && hasRemote {
			var gErr error
			ahead, behind, gErr = h.GraphAheadBehind(localRef, remoteRef)
			if gErr != nil {
				return Report{}, merrors.Wrap(merrors.Internal, "conflict.detect", gErr)
			}
		}

		state := Classify(remote, branch, hasLocal, hasRemote, ahead, behind)
		report.Entries = append(report.Entries, Entry{
			BranchState: state,
			Action:      Plan(state, sync),
		})
	}

	return report, nil
}
