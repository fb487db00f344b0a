// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/multigit-io/multigit/internal/gitengine"
	"github.com/multigit-io/multigit/pkg/cliutil"
	"github.com/multigit-io/multigit/pkg/conflict"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current branch's divergence against every enabled remote",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

type statusReport struct {
	Branch  string           `json:"branch"`
	Entries []conflict.Entry `json:"entries"`
}

func runStatus(c *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	branch, err := resolveBranch(a, "")
	if err != nil {
		return err
	}

	h, err := gitengine.Open(a.repoRoot)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(a.cfg.EnabledRemotes()))
	for _, r := range a.cfg.EnabledRemotes() {
		names = append(names, r.Name)
	}
	report, err := conflict.Detect(context.Background(), h, branch, names, a.cfg.Sync)
	if err != nil {
		return err
	}

	out := statusReport{Branch: branch, Entries: report.Entries}
	if jsonFlag {
		return cliutil.WriteJSON(c.OutOrStdout(), out, verboseFlag)
	}

	fmt.Fprintln(c.OutOrStdout(), "branch:", branch)
	for _, e := range report.Entries {
		fmt.Fprintf(c.OutOrStdout(), "  %s\t%s\tahead=%d behind=%d\taction=%s\n", e.Remote, e.Classification, e.Ahead, e.Behind, e.Action)
	}
	return nil
}
