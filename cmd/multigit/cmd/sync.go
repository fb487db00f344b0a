// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/multigit-io/multigit/pkg/audit"
	"github.com/multigit-io/multigit/pkg/cliutil"
	"github.com/multigit-io/multigit/pkg/conflict"
	"github.com/multigit-io/multigit/pkg/orchestrator"
)

var (
	syncDryRun bool
	syncBranch string
	syncForce  bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch, detect conflicts, then push if the result permits it",
	Args:  cobra.NoArgs,
	RunE:  runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "fetch and report without pushing")
	syncCmd.Flags().StringVar(&syncBranch, "branch", "", "branch to sync (default: current branch)")
	syncCmd.Flags().BoolVar(&syncForce, "force", false, "skip the clean-worktree check and push despite conflicts")
	rootCmd.AddCommand(syncCmd)
}

func runSync(c *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	branch, err := resolveBranch(a, syncBranch)
	if err != nil {
		return err
	}
	remotes, err := selectRemotes(a, nil)
	if err != nil {
		return err
	}

	w, err := a.auditWriter()
	if err != nil {
		return err
	}
	appendAudit(w, audit.Record{Event: audit.EventSyncStart, Detail: "branch=" + branch})

	s := orchestrator.NewSyncer(a.repoRoot, a.secrets)
	agg, report, err := s.Sync(context.Background(), branch, remotes, a.cfg.Sync, a.cfg.Settings.MaxParallel, syncDryRun, syncForce)
	if err != nil {
		appendAudit(w, audit.Record{Event: audit.EventSyncEnd, Outcome: "error", Detail: err.Error()})
		return err
	}

	if err := printSyncReport(c, agg, report); err != nil {
		return err
	}

	blocked := !syncForce && !report.AllClear() && len(report.Entries) > 0
	appendAudit(w, audit.Record{Event: audit.EventSyncEnd, Outcome: syncOutcome(agg, blocked)})
	return exitErrForAggregate(agg, blocked)
}

func syncOutcome(agg orchestrator.Aggregate, blocked bool) string {
	switch {
	case blocked:
		return "blocked"
	case agg.AllSucceeded():
		return "ok"
	default:
		return "partial_failure"
	}
}

func printSyncReport(c *cobra.Command, agg orchestrator.Aggregate, report conflict.Report) error {
	if jsonFlag {
		return cliutil.WriteJSON(c.OutOrStdout(), map[string]any{
			"results":  agg.Results,
			"conflict": report.Entries,
			"allClear": report.AllClear(),
		}, verboseFlag)
	}
	for _, e := range report.Entries {
		if e.Classification != conflict.InSync && e.Classification != conflict.LocalAhead {
			c.Println(e.Remote, ":", e.Classification, "ahead=", e.Ahead, "behind=", e.Behind, "action=", e.Action)
		}
	}
	return printAggregate(c, agg)
}
