// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/multigit-io/multigit/internal/config"
	"github.com/multigit-io/multigit/internal/gitengine"
	"github.com/multigit-io/multigit/internal/merrors"
)

// resolveBranch returns flagBranch if set, otherwise the repository's
// current branch, falling back to settings.default_branch if HEAD is
// detached.
func resolveBranch(a *app, flagBranch string) (string, error) {
	if flagBranch != "" {
		return flagBranch, nil
	}
	h, err := gitengine.Open(a.repoRoot)
	if err != nil {
		return "", err
	}
	branch, err := h.CurrentBranch()
	if err != nil {
		if merrors.KindOf(err) == merrors.Conflict {
			return a.cfg.Settings.DefaultBranch, nil
		}
		return "", err
	}
	return branch, nil
}

// selectRemotes returns the enabled remotes, optionally filtered to names.
// An empty names list selects all enabled remotes.
func selectRemotes(a *app, names []string) ([]config.RemoteSpec, error) {
	enabled := a.cfg.EnabledRemotes()
	if len(names) == 0 {
		return enabled, nil
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	var out []config.RemoteSpec
	for _, r := range enabled {
		if want[r.Name] {
			out = append(out, r)
		}
	}
	if len(out) != len(names) {
		return nil, merrors.New(merrors.Config, "cmd.select_remotes", fmt.Sprintf("one or more of %v is not an enabled remote", names))
	}
	return out, nil
}

// pidFilePath and daemonLogFilePath ensure the user config directory exists
// before returning the path, since the daemon writes to both on start.
func pidFilePath() (string, error) {
	if _, err := config.EnsureUserConfigDir(); err != nil {
		return "", merrors.Wrap(merrors.Internal, "cmd.pid_file_path", err)
	}
	return config.PIDFilePath()
}

func daemonLogFilePath() (string, error) {
	if _, err := config.EnsureUserConfigDir(); err != nil {
		return "", merrors.Wrap(merrors.Internal, "cmd.daemon_log_path", err)
	}
	return config.DaemonLogPath()
}

func repoConfigPathFor(repoRoot string) string {
	return config.RepoConfigPath(repoRoot)
}
