// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package conflict

import "github.com/multigit-io/multigit/internal/config"

// Classification is one of the six mutually exclusive branch states spec
// §4.5 defines for a (local tip, remote-tracking ref) pair.
type Classification string

const (
	MissingLocal  Classification = "missing-local"
	MissingRemote Classification = "missing-remote"
	InSync        Classification = "in-sync"
	LocalAhead    Classification = "local-ahead"
	RemoteAhead   Classification = "remote-ahead"
	Diverged      Classification = "diverged"
)

// Action is the recommendation attached to a BranchState by Plan.
type Action string

const (
	ActionPush    Action = "push"
	ActionPull    Action = "pull"
	ActionNone    Action = "none"
	ActionResolve Action = "resolve" // manual merge/rebase against primary_source
	ActionForce   Action = "force"   // non-fast-forward push, requires --force
	ActionBlocked Action = "blocked"
)

// BranchState is the classification and counts for one remote × branch pair.
type BranchState struct {
	Remote         string
	Branch         string
	HasLocal       bool
	HasRemote      bool
	Ahead          int
	Behind         int
	Classification Classification
}

// Classify derives the branch state from whether each side has a tip and,
// when both do, the ahead/behind counts between them. Every (hasLocal,
// hasRemote, ahead, behind) combination maps to exactly one Classification.
func Classify(remote, branch string, hasLocal, hasRemote bool, ahead, behind int) BranchState {
	s := BranchState{Remote: remote, Branch: branch, HasLocal: hasLocal, HasRemote: hasRemote}

	switch {
	case !hasLocal:
		s.Classification = MissingLocal
	case !hasRemote:
		s.Classification = MissingRemote
	default:
		s.Ahead, s.Behind = ahead, behind
		switch {
		case ahead == 0 && behind == 0:
			s.Classification = InSync
		case ahead > 0 && behind == 0:
			s.Classification = LocalAhead
		case ahead == 0 && behind > 0:
			s.Classification = RemoteAhead
		default:
			s.Classification = Diverged
		}
	}
	return s
}

// Plan derives the recommended action for state under the given sync
// configuration, per spec §4.5's per-strategy table.
func Plan(state BranchState, sync config.Sync) Action {
	switch state.Classification {
	case MissingRemote:
		return ActionPush
	case MissingLocal:
		return ActionPull
	case InSync:
		return ActionNone
	case LocalAhead:
		return ActionPush
	case RemoteAhead:
		return ActionPull
	case Diverged:
		switch sync.Strategy {
		case config.StrategyForce:
			return ActionForce
		case config.StrategyMerge, config.StrategyRebase:
			return ActionResolve
		default: // fast-forward
			return ActionBlocked
		}
	default:
		return ActionBlocked
	}
}
