// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/spf13/cobra"

	"github.com/multigit-io/multigit/internal/gitengine"
	"github.com/multigit-io/multigit/internal/merrors"
	"github.com/multigit-io/multigit/pkg/cliutil"
	"github.com/multigit-io/multigit/pkg/conflict"
	"github.com/multigit-io/multigit/pkg/orchestrator"
)

var resolveStrategy string

var conflictCmd = &cobra.Command{
	Use:   "conflict",
	Short: "Inspect and resolve branch divergence across remotes",
}

var conflictListCmd = &cobra.Command{
	Use:   "list",
	Short: "List remotes whose branch state is not in-sync or local-ahead",
	Args:  cobra.NoArgs,
	RunE:  runConflictList,
}

var conflictResolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve diverged remotes per --strategy",
	Args:  cobra.NoArgs,
	RunE:  runConflictResolve,
}

func init() {
	conflictResolveCmd.Flags().StringVar(&resolveStrategy, "strategy", "primary", "ours|theirs|primary")
	conflictCmd.AddCommand(conflictListCmd, conflictResolveCmd)
	rootCmd.AddCommand(conflictCmd)
}

func currentReport(a *app, branch string) (*gitengine.RepoHandle, conflict.Report, error) {
	h, err := gitengine.Open(a.repoRoot)
	if err != nil {
		return nil, conflict.Report{}, err
	}
	names := make([]string, 0)
	for _, r := range a.cfg.EnabledRemotes() {
		names = append(names, r.Name)
	}
	report, err := conflict.Detect(context.Background(), h, branch, names, a.cfg.Sync)
	return h, report, err
}

func runConflictList(c *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	branch, err := resolveBranch(a, "")
	if err != nil {
		return err
	}
	_, report, err := currentReport(a, branch)
	if err != nil {
		return err
	}

	var unresolved []conflict.Entry
	for _, e := range report.Entries {
		if e.Classification != conflict.InSync && e.Classification != conflict.LocalAhead {
			unresolved = append(unresolved, e)
		}
	}

	if jsonFlag {
		return cliutil.WriteJSON(c.OutOrStdout(), unresolved, verboseFlag)
	}
	if len(unresolved) == 0 {
		fmt.Fprintln(c.OutOrStdout(), "no conflicts")
		return nil
	}
	for _, e := range unresolved {
		fmt.Fprintf(c.OutOrStdout(), "%s\t%s\tahead=%d behind=%d\n", e.Remote, e.Classification, e.Ahead, e.Behind)
	}
	return nil
}

func runConflictResolve(c *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	branch, err := resolveBranch(a, "")
	if err != nil {
		return err
	}
	h, report, err := currentReport(a, branch)
	if err != nil {
		return err
	}

	var diverged []conflict.Entry
	for _, e := range report.Entries {
		if e.Classification == conflict.Diverged {
			diverged = append(diverged, e)
		}
	}
	if len(diverged) == 0 {
		fmt.Fprintln(c.OutOrStdout(), "nothing diverged")
		return nil
	}

	switch resolveStrategy {
	case "ours":
		return resolveOurs(c, a, branch, diverged)
	case "theirs", "primary":
		return resolveTheirs(c, a, h, branch, diverged)
	default:
		return merrors.New(merrors.Config, "cmd.conflict_resolve", "strategy must be one of ours, theirs, primary")
	}
}

// resolveOurs force-pushes the local branch to every diverged remote,
// making the local tip the winner.
func resolveOurs(c *cobra.Command, a *app, branch string, diverged []conflict.Entry) error {
	names := make([]string, 0, len(diverged))
	for _, e := range diverged {
		names = append(names, e.Remote)
	}
	remotes, err := selectRemotes(a, names)
	if err != nil {
		return err
	}

	s := orchestrator.NewSyncer(a.repoRoot, a.secrets)
	agg := s.PushAll(context.Background(), branch, remotes, a.cfg.Settings.MaxParallel, true)
	if err := printAggregate(c, agg); err != nil {
		return err
	}
	return exitErrForAggregate(agg, false)
}

// resolveTheirs fast-forward-resets the local branch to the winning
// remote's tip: sync.primary_source if set and diverged, else the first
// diverged entry.
func resolveTheirs(c *cobra.Command, a *app, h *gitengine.RepoHandle, branch string, diverged []conflict.Entry) error {
	winner := diverged[0].Remote
	if a.cfg.Sync.PrimarySource != "" {
		for _, e := range diverged {
			if e.Remote == a.cfg.Sync.PrimarySource {
				winner = e.Remote
				break
			}
		}
	}

	remoteRef, err := h.ResolveRef(plumbing.NewRemoteReferenceName(winner, branch))
	if err != nil {
		return err
	}
	if err := h.FastForwardBranch(branch, remoteRef); err != nil {
		return err
	}
	fmt.Fprintln(c.OutOrStdout(), "reset", branch, "to", winner)
	return nil
}
