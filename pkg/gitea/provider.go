// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package gitea

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"code.gitea.io/sdk/gitea"

	"github.com/multigit-io/multigit/pkg/provider"
	"github.com/multigit-io/multigit/pkg/ratelimit"
)

// Provider implements provider.Provider for Gitea and Gitea-API-compatible
// forks (see the codeberg package, which wraps this one against a fixed
// host).
type Provider struct {
	baseURL     string
	tag         string // "gitea" unless overridden by an embedding adapter
	rateLimiter *ratelimit.Limiter
}

// NewProvider creates a Gitea provider against the given instance base URL
// (e.g. "https://gitea.example.com").
func NewProvider(baseURL string) *Provider {
	return NewProviderTag(baseURL, "gitea")
}

// NewProviderTag creates a Gitea-API-compatible provider reporting tag as
// its Name(). Used by the codeberg package to reuse this adapter while
// identifying itself distinctly in the registry.
func NewProviderTag(baseURL, tag string) *Provider {
	return &Provider{
		baseURL:     baseURL,
		tag:         tag,
		rateLimiter: ratelimit.NewLimiter(1000), // conservative default
	}
}

// Name returns the provider tag.
func (p *Provider) Name() string { return p.tag }

func (p *Provider) client(cred provider.Credential) (*gitea.Client, error) {
	client, err := gitea.NewClient(p.baseURL, gitea.SetToken(cred.Token), gitea.SetHTTPClient(&http.Client{}))
	if err != nil {
		return nil, fmt.Errorf("%s: creating client: %w", p.tag, err)
	}
	return client, nil
}

// TestConnection verifies cred against the instance's authenticated-user
// endpoint.
func (p *Provider) TestConnection(ctx context.Context, cred provider.Credential) (provider.ConnectionStatus, error) {
	client, err := p.client(cred)
	if err != nil {
		return provider.StatusNetwork, err
	}
	if err := p.rateLimiter.Wait(ctx); err != nil {
		return provider.StatusNetwork, err
	}

	_, resp, err := client.GetMyUserInfo()
	return p.classifyResponse(resp, err)
}

func (p *Provider) classifyResponse(resp *gitea.Response, err error) (provider.ConnectionStatus, error) {
	if resp == nil || resp.Response == nil {
		if err != nil {
			return provider.StatusNetwork, err
		}
		return provider.StatusOK, nil
	}
	p.rateLimiter.UpdateFromHeaders(resp.Response)

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return provider.StatusOK, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return provider.StatusAuthFailed, err
	case http.StatusTooManyRequests:
		return provider.StatusRateLimited, err
	default:
		return provider.StatusNetwork, err
	}
}

// RepoExists reports whether owner/name is visible to cred.
func (p *Provider) RepoExists(ctx context.Context, owner, name string, cred provider.Credential) (bool, error) {
	client, err := p.client(cred)
	if err != nil {
		return false, err
	}
	if err := p.rateLimiter.Wait(ctx); err != nil {
		return false, err
	}

	_, resp, err := client.GetRepo(owner, name)
	if resp != nil && resp.Response != nil {
		p.rateLimiter.UpdateFromHeaders(resp.Response)
	}
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("%s: checking %s/%s: %w", p.tag, owner, name, err)
	}
	return true, nil
}

// CreateRepo provisions a repository under spec.Owner via the Gitea API.
func (p *Provider) CreateRepo(ctx context.Context, spec provider.RepoSpec, cred provider.Credential) (*provider.RepoDescriptor, error) {
	client, err := p.client(cred)
	if err != nil {
		return nil, err
	}

	opts := gitea.CreateRepoOption{
		Name:        spec.Name,
		Description: spec.Description,
		Private:     spec.Private,
	}

	if err := p.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	var created *gitea.Repository
	var resp *gitea.Response
	if spec.Owner != "" && spec.Owner != cred.Username {
		created, resp, err = client.CreateOrgRepo(spec.Owner, opts)
	} else {
		created, resp, err = client.CreateRepo(opts)
	}
	if resp != nil && resp.Response != nil {
		p.rateLimiter.UpdateFromHeaders(resp.Response)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: creating %s/%s: %w", p.tag, spec.Owner, spec.Name, err)
	}

	return &provider.RepoDescriptor{
		Owner:     spec.Owner,
		Name:      created.Name,
		FullName:  created.FullName,
		HTMLURL:   created.HTMLURL,
		CloneURL:  created.CloneURL,
		SSHURL:    created.SSHURL,
		Private:   created.Private,
		CreatedAt: created.Created,
	}, nil
}

// RemoteURL derives the clone URL for owner/name.
func (p *Provider) RemoteURL(owner, name string, protocol provider.Protocol) (string, error) {
	u, err := url.Parse(p.baseURL)
	if err != nil {
		return "", fmt.Errorf("%s: invalid base URL %q: %w", p.tag, p.baseURL, err)
	}
	host := u.Hostname()
	if host == "" {
		return "", fmt.Errorf("%s: base URL %q has no host", p.tag, p.baseURL)
	}

	switch protocol {
	case provider.ProtocolSSH:
		return fmt.Sprintf("git@%s:%s/%s.git", host, owner, name), nil
	default:
		return fmt.Sprintf("https://%s/%s/%s.git", host, owner, name), nil
	}
}

// RateLimit returns the locally tracked rate-limit snapshot. Gitea does not
// expose a dedicated rate-limit endpoint.
func (p *Provider) RateLimit(ctx context.Context, cred provider.Credential) (*provider.RateLimit, error) {
	remaining, limit, reset := p.rateLimiter.Status()
	return &provider.RateLimit{
		Limit:     limit,
		Remaining: remaining,
		Reset:     reset,
	}, nil
}
