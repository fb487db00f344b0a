// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/multigit-io/multigit/internal/merrors"
	"github.com/multigit-io/multigit/internal/secret"
	"github.com/multigit-io/multigit/pkg/cliutil"
	"github.com/multigit-io/multigit/pkg/provider"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Test the connection for every enabled remote and report classified failures",
	Args:  cobra.NoArgs,
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

type doctorResult struct {
	Remote string `json:"remote"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func runDoctor(c *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}

	var results []doctorResult
	failed := false
	for _, r := range a.cfg.EnabledRemotes() {
		res := doctorResult{Remote: r.Name}

		p, err := a.registry.Get(r.Provider)
		if err != nil {
			res.Status = "unknown_provider"
			res.Error = err.Error()
			results = append(results, res)
			failed = true
			continue
		}

		host, err := secret.DeriveHost(r.Provider, r.APIURL)
		if err != nil {
			res.Status = "config_error"
			res.Error = err.Error()
			results = append(results, res)
			failed = true
			continue
		}
		token, err := a.secrets.Retrieve(context.Background(), r.Provider, host, r.Username)
		if err != nil {
			res.Status = "no_credential"
			res.Error = err.Error()
			results = append(results, res)
			failed = true
			continue
		}

		status, err := p.TestConnection(context.Background(), provider.Credential{
			Provider: r.Provider, Host: host, Username: r.Username, Token: token,
		})
		if err != nil {
			res.Status = string(merrors.KindOf(err))
			res.Error = err.Error()
			failed = true
		} else {
			res.Status = string(status)
			if status != provider.StatusOK {
				failed = true
			}
		}
		results = append(results, res)
	}

	if jsonFlag {
		if err := cliutil.WriteJSON(c.OutOrStdout(), results, verboseFlag); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			line := fmt.Sprintf("%s\t%s", r.Remote, r.Status)
			if r.Error != "" {
				line += "\t" + r.Error
			}
			fmt.Fprintln(c.OutOrStdout(), line)
		}
	}

	if failed {
		return silentErr{code: 2}
	}
	return nil
}
