// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package gitengine

import (
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/multigit-io/multigit/internal/merrors"
)

// GraphAheadBehind returns how many commits localOID has that remoteOID
// lacks (ahead) and vice versa (behind), walking the commit graph from each
// tip back to their common ancestor. A zero-value hash in either argument
// means that side has no history yet (e.g. an unpushed remote).
func (h *RepoHandle) GraphAheadBehind(localOID, remoteOID plumbing.Hash) (ahead, behind int, err error) {
	if localOID.IsZero() && remoteOID.IsZero() {
		return 0, 0, nil
	}
	if localOID.IsZero() {
		behind, err = h.countReachable(remoteOID)
		return 0, behind, err
	}
	if remoteOID.IsZero() {
		ahead, err = h.countReachable(localOID)
		return ahead, 0, err
	}

	localSet, err := h.reachableSet(localOID)
	if err != nil {
		return 0, 0, err
	}
	remoteSet, err := h.reachableSet(remoteOID)
	if err != nil {
		return 0, 0, err
	}

	for hash := range localSet {
		if _, ok := remoteSet[hash]; !ok {
			ahead++
		}
	}
	for hash := range remoteSet {
		if _, ok := localSet[hash]; !ok {
			behind++
		}
	}
	return ahead, behind, nil
}

func (h *RepoHandle) reachableSet(from plumbing.Hash) (map[plumbing.Hash]struct{}, error) {
	set := make(map[plumbing.Hash]struct{})
	commit, err := h.repo.CommitObject(from)
	if err != nil {
		return nil, merrors.Wrap(merrors.Internal, "gitengine.graph_ahead_behind", err)
	}
	iter := object.NewCommitIterBSF(commit, nil, nil)
	err = iter.ForEach(func(c *object.Commit) error {
		set[c.Hash] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, merrors.Wrap(merrors.Internal, "gitengine.graph_ahead_behind", err)
	}
	return set, nil
}

func (h *RepoHandle) countReachable(from plumbing.Hash) (int, error) {
	set, err := h.reachableSet(from)
	if err != nil {
		return 0, err
	}
	return len(set), nil
}
