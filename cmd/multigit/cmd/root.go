// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/multigit-io/multigit/internal/merrors"
	"github.com/multigit-io/multigit/pkg/cliutil"
	"github.com/multigit-io/multigit/pkg/orchestrator"
)

var (
	appVersion string

	verboseFlag       bool
	jsonFlag          bool
	defaultBranchFlag string
)

var rootCmd = &cobra.Command{
	Use:   "multigit",
	Short: "Keep one local Git repository in sync across many remote hosts",
	Long: `multigit pushes, pulls, and reports on a single local repository against
several hosted remotes (GitHub, GitLab, Bitbucket, Codeberg, Gitea) at once.
` + cliutil.QuickStartHelp(`  # Add two remotes and sync both
  multigit remote add github alice
  multigit remote add gitlab alice
  multigit sync

  See 'multigit status --json' for the machine-readable summary.`),
	Version:       appVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "emit line-oriented structured output")
	rootCmd.PersistentFlags().StringVar(&defaultBranchFlag, "default-branch", "", "override settings.default_branch for this invocation")
}

// Execute runs the command tree and returns the process exit code, per
// spec's exit-code convention: 0 success; 1 usage/config; 2 network/auth;
// 3 conflict. The exact numeric mapping beyond 0-vs-nonzero is left
// implementation-defined by spec §6 — this is this CLI's chosen mapping,
// recorded in DESIGN.md.
func Execute(version string) int {
	appVersion = version
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		if se, ok := err.(silentErr); ok {
			return se.code
		}
		fmt.Fprintln(os.Stderr, "multigit:", err)
		return exitCodeForErr(err)
	}
	return 0
}

// exitCodeForErr maps a single fatal error (config load failure, repo-open
// failure, usage error) to an exit code.
func exitCodeForErr(err error) int {
	switch merrors.KindOf(err) {
	case merrors.Conflict, merrors.NonFastForward:
		return 3
	case merrors.Auth, merrors.Network, merrors.Timeout, merrors.RateLimited,
		merrors.NotFound, merrors.BackendUnavailable:
		return 2
	default:
		return 1
	}
}

// exitCodeForAggregate maps an orchestrator.Aggregate (plus, if present, the
// conflict report that gated it) to an exit code. A blocked conflict report
// takes precedence over a clean aggregate, since "nothing failed" still
// means "nothing was pushed."
func exitCodeForAggregate(agg orchestrator.Aggregate, blocked bool) int {
	if blocked {
		return 3
	}
	if agg.AllSucceeded() {
		return 0
	}

	worst := 1
	for _, r := range agg.Results {
		if r.Success {
			continue
		}
		switch r.ErrorKind {
		case merrors.Conflict, merrors.NonFastForward:
			return 3
		case merrors.Auth, merrors.Network, merrors.Timeout, merrors.RateLimited,
			merrors.NotFound, merrors.BackendUnavailable:
			if worst < 2 {
				worst = 2
			}
		}
	}
	return worst
}
