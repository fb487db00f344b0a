// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/multigit-io/multigit/internal/config"
	"github.com/multigit-io/multigit/internal/merrors"
	"github.com/multigit-io/multigit/internal/secret"
	"github.com/multigit-io/multigit/pkg/cliutil"
	"github.com/multigit-io/multigit/pkg/provider"
)

var (
	remoteAddURL      string
	remoteAddToken    string
	remoteAddPriority int
)

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Manage configured remotes",
}

var remoteAddCmd = &cobra.Command{
	Use:   "add <provider> <username>",
	Short: "Add a remote; validates HTTPS and stores its credential",
	Args:  cobra.ExactArgs(2),
	RunE:  runRemoteAdd,
}

var remoteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured remotes",
	Args:  cobra.NoArgs,
	RunE:  runRemoteList,
}

var remoteRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a configured remote and its stored credential",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemoteRemove,
}

var remoteTestCmd = &cobra.Command{
	Use:   "test <name>",
	Short: "Verify a remote's credential against its provider API",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemoteTest,
}

var remoteUpdateCmd = &cobra.Command{
	Use:   "update <name>",
	Short: "Re-enter a remote's credential",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemoteUpdate,
}

func init() {
	remoteAddCmd.Flags().StringVar(&remoteAddURL, "url", "", "custom API base URL (required for self-hosted gitlab/gitea)")
	remoteAddCmd.Flags().StringVar(&remoteAddToken, "token", "", "credential token/app-password (prompted if omitted)")
	remoteAddCmd.Flags().IntVar(&remoteAddPriority, "priority", 0, "tie-break order for EnabledRemotes (lower runs first)")
	remoteUpdateCmd.Flags().StringVar(&remoteAddToken, "token", "", "new credential token/app-password (prompted if omitted)")

	remoteCmd.AddCommand(remoteAddCmd, remoteListCmd, remoteRemoveCmd, remoteTestCmd, remoteUpdateCmd)
	rootCmd.AddCommand(remoteCmd)
}

func runRemoteAdd(c *cobra.Command, args []string) error {
	providerTag, username := args[0], args[1]
	if !isSupportedProvider(providerTag) {
		return merrors.New(merrors.Config, "cmd.remote_add", fmt.Sprintf("unknown provider %q (want one of %v)", providerTag, provider.SupportedProviders))
	}
	if remoteAddURL != "" {
		if err := validateHTTPS(remoteAddURL); err != nil {
			return err
		}
	}

	a, err := newApp(false)
	if err != nil {
		return err
	}

	host, err := secret.DeriveHost(providerTag, remoteAddURL)
	if err != nil {
		return err
	}

	token := remoteAddToken
	if token == "" {
		token, err = promptToken(c, providerTag)
		if err != nil {
			return err
		}
	}
	if err := a.secrets.Store(context.Background(), providerTag, host, username, token); err != nil {
		return err
	}

	repoFile, err := config.LoadFile(config.RepoConfigPath(a.repoRoot))
	if err != nil {
		return err
	}
	repoFile.Remotes[providerTag] = config.RemoteSpec{
		Provider: providerTag,
		Username: username,
		APIURL:   remoteAddURL,
		Enabled:  true,
		Priority: remoteAddPriority,
	}
	if err := config.SaveRepo(a.repoRoot, repoFile); err != nil {
		return err
	}

	fmt.Fprintf(c.OutOrStdout(), "added remote %q (%s@%s)\n", providerTag, username, host)
	return nil
}

func runRemoteList(c *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(a.cfg.Remotes))
	for name := range a.cfg.Remotes {
		names = append(names, name)
	}
	sort.Strings(names)

	if jsonFlag {
		return cliutil.WriteJSON(c.OutOrStdout(), a.cfg.Remotes, verboseFlag)
	}
	for _, name := range names {
		r := a.cfg.Remotes[name]
		state := "disabled"
		if r.Enabled {
			state = "enabled"
		}
		fmt.Fprintf(c.OutOrStdout(), "%s\t%s\t%s\t%s\tpriority=%d\n", name, r.Provider, r.Username, state, r.Priority)
	}
	return nil
}

func runRemoteRemove(c *cobra.Command, args []string) error {
	name := args[0]
	a, err := newApp(false)
	if err != nil {
		return err
	}
	r, ok := a.cfg.Remotes[name]
	if !ok {
		return merrors.New(merrors.NotFound, "cmd.remote_remove", fmt.Sprintf("no remote named %q", name))
	}

	host, err := secret.DeriveHost(r.Provider, r.APIURL)
	if err == nil {
		_ = a.secrets.Delete(context.Background(), r.Provider, host, r.Username)
	}

	repoFile, err := config.LoadFile(config.RepoConfigPath(a.repoRoot))
	if err != nil {
		return err
	}
	delete(repoFile.Remotes, name)
	if err := config.SaveRepo(a.repoRoot, repoFile); err != nil {
		return err
	}

	fmt.Fprintln(c.OutOrStdout(), "removed remote", name)
	return nil
}

func runRemoteTest(c *cobra.Command, args []string) error {
	name := args[0]
	a, err := newApp(false)
	if err != nil {
		return err
	}
	r, ok := a.cfg.Remotes[name]
	if !ok {
		return merrors.New(merrors.NotFound, "cmd.remote_test", fmt.Sprintf("no remote named %q", name))
	}

	p, err := a.registry.Get(r.Provider)
	if err != nil {
		return merrors.Wrap(merrors.Config, "cmd.remote_test", err)
	}
	host, err := secret.DeriveHost(r.Provider, r.APIURL)
	if err != nil {
		return err
	}
	token, err := a.secrets.Retrieve(context.Background(), r.Provider, host, r.Username)
	if err != nil {
		return err
	}

	status, err := p.TestConnection(context.Background(), provider.Credential{
		Provider: r.Provider, Host: host, Username: r.Username, Token: token,
	})
	if err != nil {
		return err
	}

	if jsonFlag {
		return cliutil.WriteJSON(c.OutOrStdout(), map[string]string{"remote": name, "status": string(status)}, verboseFlag)
	}
	fmt.Fprintf(c.OutOrStdout(), "%s: %s\n", name, status)
	return nil
}

func runRemoteUpdate(c *cobra.Command, args []string) error {
	name := args[0]
	a, err := newApp(false)
	if err != nil {
		return err
	}
	r, ok := a.cfg.Remotes[name]
	if !ok {
		return merrors.New(merrors.NotFound, "cmd.remote_update", fmt.Sprintf("no remote named %q", name))
	}

	token := remoteAddToken
	if token == "" {
		token, err = promptToken(c, r.Provider)
		if err != nil {
			return err
		}
	}
	host, err := secret.DeriveHost(r.Provider, r.APIURL)
	if err != nil {
		return err
	}
	if err := a.secrets.Store(context.Background(), r.Provider, host, r.Username, token); err != nil {
		return err
	}

	fmt.Fprintln(c.OutOrStdout(), "updated credential for", name)
	return nil
}

func isSupportedProvider(tag string) bool {
	for _, p := range provider.SupportedProviders {
		if p == tag {
			return true
		}
	}
	return false
}

// validateHTTPS enforces spec §4.3's requirement that a custom provider
// base URL use HTTPS, guarding against accidental plaintext credential
// transmission to a self-hosted instance.
func validateHTTPS(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return merrors.Wrap(merrors.Config, "cmd.validate_https", err)
	}
	if u.Scheme != "https" {
		return merrors.New(merrors.Config, "cmd.validate_https", fmt.Sprintf("%q must use https", rawURL))
	}
	return nil
}

// promptToken reads a credential from stdin. Interactive UX is out of this
// tool's core scope (spec §1); this is the minimal external collaborator
// needed to get a token into the secret store at all.
func promptToken(c *cobra.Command, providerTag string) (string, error) {
	fmt.Fprintf(c.OutOrStdout(), "%s token/app-password: ", providerTag)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", merrors.Wrap(merrors.Config, "cmd.prompt_token", err)
	}
	return strings.TrimSpace(line), nil
}
