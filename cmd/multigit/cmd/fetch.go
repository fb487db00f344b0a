// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/multigit-io/multigit/pkg/orchestrator"
)

var fetchAll bool

var fetchCmd = &cobra.Command{
	Use:   "fetch [remotes...]",
	Short: "Fetch every enabled remote, or the named ones",
	RunE:  runFetch,
}

func init() {
	fetchCmd.Flags().BoolVar(&fetchAll, "all", true, "fetch every enabled remote (default)")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(c *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	remotes, err := selectRemotes(a, args)
	if err != nil {
		return err
	}

	s := orchestrator.NewSyncer(a.repoRoot, a.secrets)
	agg := s.FetchAll(context.Background(), remotes, a.cfg.Settings.MaxParallel)

	if err := printAggregate(c, agg); err != nil {
		return err
	}
	return exitErrForAggregate(agg, false)
}
