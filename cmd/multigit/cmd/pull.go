// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/spf13/cobra"

	"github.com/multigit-io/multigit/internal/config"
	"github.com/multigit-io/multigit/internal/gitengine"
	"github.com/multigit-io/multigit/internal/merrors"
	"github.com/multigit-io/multigit/pkg/conflict"
	"github.com/multigit-io/multigit/pkg/orchestrator"
)

var pullFrom string

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Fetch and fast-forward the current branch from one remote",
	Args:  cobra.NoArgs,
	RunE:  runPull,
}

func init() {
	pullCmd.Flags().StringVar(&pullFrom, "from", "", "remote to pull from (default: sync.primary_source, else first enabled)")
	rootCmd.AddCommand(pullCmd)
}

func runPull(c *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	branch, err := resolveBranch(a, "")
	if err != nil {
		return err
	}

	from := pullFrom
	if from == "" {
		from = a.cfg.Sync.PrimarySource
	}
	enabled := a.cfg.EnabledRemotes()
	if from == "" {
		if len(enabled) == 0 {
			return merrors.New(merrors.Config, "cmd.pull", "no enabled remotes configured")
		}
		from = enabled[0].Name
	}
	remotes, err := selectRemotes(a, []string{from})
	if err != nil {
		return err
	}

	s := orchestrator.NewSyncer(a.repoRoot, a.secrets)
	fetchAgg := s.FetchAll(context.Background(), remotes, 1)
	if !fetchAgg.AllSucceeded() {
		printAggregate(c, fetchAgg)
		return exitErrForAggregate(fetchAgg, false)
	}

	h, err := gitengine.Open(a.repoRoot)
	if err != nil {
		return err
	}
	report, err := conflict.Detect(context.Background(), h, branch, []string{from}, a.cfg.Sync)
	if err != nil {
		return err
	}
	state := report.Entries[0]

	switch state.Classification {
	case conflict.InSync:
		fmt.Fprintln(c.OutOrStdout(), from, ": already up to date")
		return nil
	case conflict.RemoteAhead:
		remoteRef, err := h.ResolveRef(plumbing.NewRemoteReferenceName(from, branch))
		if err != nil {
			return err
		}
		if err := h.FastForwardBranch(branch, remoteRef); err != nil {
			return err
		}
		fmt.Fprintln(c.OutOrStdout(), from, ": fast-forwarded", branch)
		return nil
	case conflict.MissingLocal:
		remoteRef, err := h.ResolveRef(plumbing.NewRemoteReferenceName(from, branch))
		if err != nil {
			return err
		}
		if err := h.FastForwardBranch(branch, remoteRef); err != nil {
			return err
		}
		fmt.Fprintln(c.OutOrStdout(), from, ": created", branch, "from remote")
		return nil
	default:
		advice := pullAdvice(state, a.cfg.Sync)
		fmt.Fprintf(c.OutOrStdout(), "%s: %s, not fast-forwardable (%s)\n", from, state.Classification, advice)
		return silentErr{code: 3}
	}
}

func pullAdvice(state conflict.Entry, sync config.Sync) string {
	switch sync.Strategy {
	case config.StrategyForce:
		return "re-run with a force push, or resolve manually and pull again"
	case config.StrategyMerge:
		return "run a manual merge against " + state.Remote
	case config.StrategyRebase:
		return "run a manual rebase onto " + state.Remote
	default:
		return "resolve manually; fast-forward strategy blocks diverged branches"
	}
}
