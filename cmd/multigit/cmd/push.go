// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/multigit-io/multigit/pkg/cliutil"
	"github.com/multigit-io/multigit/pkg/orchestrator"
)

var (
	pushBranch  string
	pushRemotes []string
	pushForce   bool
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push the current branch to every enabled remote",
	Args:  cobra.NoArgs,
	RunE:  runPush,
}

func init() {
	pushCmd.Flags().StringVar(&pushBranch, "branch", "", "branch to push (default: current branch)")
	pushCmd.Flags().StringSliceVar(&pushRemotes, "remotes", nil, "restrict to these remote names (default: all enabled)")
	pushCmd.Flags().BoolVar(&pushForce, "force", false, "allow non-fast-forward push, bypassing the conflict gate")
	rootCmd.AddCommand(pushCmd)
}

func runPush(c *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	branch, err := resolveBranch(a, pushBranch)
	if err != nil {
		return err
	}
	remotes, err := selectRemotes(a, pushRemotes)
	if err != nil {
		return err
	}

	s := orchestrator.NewSyncer(a.repoRoot, a.secrets)
	agg := s.PushAll(context.Background(), branch, remotes, a.cfg.Settings.MaxParallel, pushForce)

	if err := printAggregate(c, agg); err != nil {
		return err
	}
	return exitErrForAggregate(agg, false)
}

// printAggregate renders an orchestrator.Aggregate either as JSON lines or
// as a short human table.
func printAggregate(c *cobra.Command, agg orchestrator.Aggregate) error {
	if jsonFlag {
		for _, r := range agg.Results {
			if err := cliutil.WriteJSON(c.OutOrStdout(), r, verboseFlag); err != nil {
				return err
			}
		}
		return nil
	}
	for _, r := range agg.Results {
		status := "ok"
		if !r.Success {
			status = "FAILED: " + r.Message
		}
		fmt.Fprintf(c.OutOrStdout(), "%s\t%s\t%dms\n", r.Remote, status, r.DurationMS)
	}
	fmt.Fprintf(c.OutOrStdout(), "%d succeeded, %d failed\n", agg.Succeeded, agg.Failed)
	return nil
}

// exitErrForAggregate converts a non-clean aggregate into an error whose
// merrors.Kind the root command's exit-code mapping understands, without
// re-printing output the caller already rendered.
func exitErrForAggregate(agg orchestrator.Aggregate, blocked bool) error {
	if blocked {
		return silentErr{code: 3}
	}
	if agg.AllSucceeded() {
		return nil
	}
	return silentErr{code: exitCodeForAggregate(agg, false)}
}

// silentErr carries a precomputed exit code for a failure whose details
// were already printed, so Execute doesn't print a redundant error line.
type silentErr struct{ code int }

func (e silentErr) Error() string { return "" }
