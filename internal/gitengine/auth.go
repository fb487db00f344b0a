// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package gitengine

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"

	"github.com/multigit-io/multigit/internal/merrors"
	"github.com/multigit-io/multigit/pkg/provider"
)

// buildAuth derives the go-git auth method for remoteURL from cred. HTTPS
// and HTTP remotes authenticate with the stored token as a basic-auth
// password; SSH remotes use the caller's ambient SSH agent, since MultiGit
// never stores or transmits SSH private key material.
func buildAuth(remoteURL string, cred provider.Credential) (transport.AuthMethod, error) {
	switch {
	case strings.HasPrefix(remoteURL, "https://"), strings.HasPrefix(remoteURL, "http://"):
		if cred.Token == "" {
			return nil, merrors.New(merrors.Auth, "gitengine.auth", "no credential available for HTTPS remote")
		}
		username := cred.Username
		if username == "" {
			username = "x-access-token"
		}
		return &http.BasicAuth{Username: username, Password: cred.Token}, nil
	case strings.HasPrefix(remoteURL, "ssh://"), strings.Contains(remoteURL, "@"):
		user := "git"
		if cred.Username != "" {
			user = cred.Username
		}
		auth, err := ssh.NewSSHAgentAuth(user)
		if err != nil {
			return nil, merrors.Wrap(merrors.Auth, "gitengine.auth", err)
		}
		return auth, nil
	case strings.HasPrefix(remoteURL, "file://"), filepathLocal(remoteURL):
		// The local filesystem transport (used for on-disk bare remotes, and
		// by our own tests) has no auth handshake.
		return nil, nil
	default:
		return nil, merrors.New(merrors.Auth, "gitengine.auth", "unrecognized remote URL scheme")
	}
}

// filepathLocal reports whether remoteURL looks like a bare filesystem path
// rather than a scheme://host URL.
func filepathLocal(remoteURL string) bool {
	return !strings.Contains(remoteURL, "://")
}
