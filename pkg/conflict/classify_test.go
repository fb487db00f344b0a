// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package conflict

import (
	"testing"

	"github.com/multigit-io/multigit/internal/config"
)

func TestClassifyAllSixClasses(t *testing.T) {
	tests := []struct {
		name      string
		hasLocal  bool
		hasRemote bool
		ahead     int
		behind    int
		want      Classification
	}{
		{"no local tip", false, true, 0, 0, MissingLocal},
		{"no remote tip", true, false, 0, 0, MissingRemote},
		{"even", true, true, 0, 0, InSync},
		{"local ahead", true, true, 2, 0, LocalAhead},
		{"remote ahead", true, true, 0, 3, RemoteAhead},
		{"diverged", true, true, 1, 1, Diverged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify("github", "main", tt.hasLocal, tt.hasRemote, tt.ahead, tt.behind)
			if got.Classification != tt.want {
				t.Errorf("Classify() = %v, want %v", got.Classification, tt.want)
			}
		})
	}
}

func TestClassifyMissingLocalTakesPrecedence(t *testing.T) {
	// Both sides "missing" is impossible upstream, but missing-local must win
	// if it ever occurs since there is nothing to compare against.
	got := Classify("github", "main", false, false, 0, 0)
	if got.Classification != MissingLocal {
		t.Errorf("Classify() = %v, want MissingLocal", got.Classification)
	}
}

func TestPlanFastForwardBlocksDiverged(t *testing.T) {
	state := Classify("github", "main", true, true, 1, 1)
	action := Plan(state, config.Sync{Strategy: config.StrategyFastForward})
	if action != ActionBlocked {
		t.Errorf("Plan() = %v, want ActionBlocked", action)
	}
}

func TestPlanForceStrategyPermitsDiverged(t *testing.T) {
	state := Classify("github", "main", true, true, 1, 1)
	action := Plan(state, config.Sync{Strategy: config.StrategyForce})
	if action != ActionForce {
		t.Errorf("Plan() = %v, want ActionForce", action)
	}
}

func TestPlanMergeStrategyAdvisesResolve(t *testing.T) {
	state := Classify("gitlab", "main", true, true, 2, 1)
	action := Plan(state, config.Sync{Strategy: config.StrategyMerge, PrimarySource: "github"})
	if action != ActionResolve {
		t.Errorf("Plan() = %v, want ActionResolve", action)
	}
}

func TestPlanLocalAheadIsPush(t *testing.T) {
	state := Classify("github", "main", true, true, 3, 0)
	if action := Plan(state, config.Sync{Strategy: config.StrategyFastForward}); action != ActionPush {
		t.Errorf("Plan() = %v, want ActionPush", action)
	}
}

func TestReportAllClear(t *testing.T) {
	r := Report{Entries: []Entry{
		{BranchState: BranchState{Classification: InSync}, Action: ActionNone},
		{BranchState: BranchState{Classification: LocalAhead}, Action: ActionPush},
	}}
	if !r.AllClear() {
		t.Error("AllClear() = false, want true for in-sync/local-ahead only report")
	}

	r.Entries = append(r.Entries, Entry{BranchState: BranchState{Classification: Diverged}, Action: ActionBlocked})
	if r.AllClear() {
		t.Error("AllClear() = true, want false once a diverged entry is present")
	}
}
