// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/multigit-io/multigit/internal/config"
	"github.com/multigit-io/multigit/internal/gitengine"
	"github.com/multigit-io/multigit/internal/merrors"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a repository-local config file",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing .multigit/config.toml")
	rootCmd.AddCommand(initCmd)
}

func runInit(c *cobra.Command, args []string) error {
	h, err := gitengine.OpenFromWorkingDir(".")
	if err != nil {
		return err
	}

	path := config.RepoConfigPath(h.Root())
	if _, statErr := os.Stat(path); statErr == nil && !initForce {
		return merrors.New(merrors.Config, "cmd.init", "config already exists at "+path+"; pass --force to overwrite")
	}

	defaults := config.Defaults()
	f := config.File{
		Settings: defaults.Settings,
		Sync:     defaults.Sync,
		Security: defaults.Security,
		Remotes:  map[string]config.RemoteSpec{},
	}
	if err := config.SaveRepo(h.Root(), f); err != nil {
		return err
	}

	fmt.Fprintln(c.OutOrStdout(), "wrote", path)
	return nil
}
