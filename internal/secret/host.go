// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package secret

import (
	"fmt"
	"net/url"

	"github.com/multigit-io/multigit/internal/merrors"
)

// wellKnownHosts maps SaaS provider tags to their fixed host, used when a
// remote has no custom api_url.
var wellKnownHosts = map[string]string{
	"github":    "github.com",
	"gitlab":    "gitlab.com",
	"bitbucket": "bitbucket.org",
	"codeberg":  "codeberg.org",
}

// DeriveHost resolves the host segment of a host-bound credential key.
// SaaS providers resolve to a well-known constant; self-hosted providers
// (gitea, or gitlab/* with a custom apiURL) resolve from the URL's host
// after the caller has already applied HTTPS validation.
func DeriveHost(providerTag, apiURL string) (string, error) {
	if apiURL == "" {
		host, ok := wellKnownHosts[providerTag]
		if !ok {
			return "", merrors.New(merrors.Config, "secret.derive_host", fmt.Sprintf("provider %q has no well-known host and no api_url was given", providerTag))
		}
		return host, nil
	}

	u, err := url.Parse(apiURL)
	if err != nil {
		return "", merrors.Wrap(merrors.Config, "secret.derive_host", err)
	}
	if u.Hostname() == "" {
		return "", merrors.New(merrors.Config, "secret.derive_host", "api_url has no host")
	}
	return u.Hostname(), nil
}
