// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"

	"github.com/multigit-io/multigit/pkg/provider"
	"github.com/multigit-io/multigit/pkg/ratelimit"
)

// Provider implements provider.Provider for github.com and GitHub Enterprise.
type Provider struct {
	baseURL     string // empty for github.com
	rateLimiter *ratelimit.Limiter
}

// NewProvider creates a GitHub provider. baseURL is empty for github.com or
// the Enterprise API root (e.g. "https://ghe.example.com/api/v3/") otherwise.
func NewProvider(baseURL string) *Provider {
	return &Provider{
		baseURL:     baseURL,
		rateLimiter: ratelimit.NewLimiter(5000), // GitHub default
	}
}

// Name returns the provider tag.
func (p *Provider) Name() string { return "github" }

func (p *Provider) client(cred provider.Credential) (*github.Client, error) {
	var hc *http.Client
	if cred.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cred.Token})
		hc = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(hc)
	if p.baseURL == "" {
		return client, nil
	}

	client, err := client.WithEnterpriseURLs(p.baseURL, p.baseURL)
	if err != nil {
		return nil, fmt.Errorf("github: invalid enterprise base URL %q: %w", p.baseURL, err)
	}
	return client, nil
}

// TestConnection verifies cred against GitHub's authenticated-user endpoint.
func (p *Provider) TestConnection(ctx context.Context, cred provider.Credential) (provider.ConnectionStatus, error) {
	client, err := p.client(cred)
	if err != nil {
		return provider.StatusNetwork, err
	}
	if err := p.rateLimiter.Wait(ctx); err != nil {
		return provider.StatusNetwork, err
	}

	_, resp, err := client.Users.Get(ctx, "")
	if resp != nil {
		p.rateLimiter.UpdateFromHeaders(resp.Response)
	}
	return classifyResponse(resp, err)
}

func classifyResponse(resp *github.Response, err error) (provider.ConnectionStatus, error) {
	if resp == nil {
		if err != nil {
			return provider.StatusNetwork, err
		}
		return provider.StatusOK, nil
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return provider.StatusOK, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		if resp.Header.Get("X-RateLimit-Remaining") == "0" {
			return provider.StatusRateLimited, err
		}
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

	_, resp, err := client.Repositories.Get(ctx, owner, name)
	if resp != nil {
		p.rateLimiter.UpdateFromHeaders(resp.Response)
	}
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("github: checking %s/%s: %w", owner, name, err)
	}
	return true, nil
}

// CreateRepo provisions a repository under spec.Owner via the GitHub API.
func (p *Provider) CreateRepo(ctx context.Context, spec provider.RepoSpec, cred provider.Credential) (*provider.RepoDescriptor, error) {
	client, err := p.client(cred)
	if err != nil {
		return nil, err
	}

	repo := &github.Repository{
		Name:        github.String(spec.Name),
		Description: github.String(spec.Description),
		Private:     github.Bool(spec.Private),
	}

	// An empty org string targets the authenticated user's own account.
	org := spec.Owner
	if org == cred.Username {
		org = ""
	}

	if err := p.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}
	created, resp, err := client.Repositories.Create(ctx, org, repo)
	if resp != nil {
		p.rateLimiter.UpdateFromHeaders(resp.Response)
	}
	if err != nil {
		return nil, fmt.Errorf("github: creating %s/%s: %w", spec.Owner, spec.Name, err)
	}

	return &provider.RepoDescriptor{
		Owner:     spec.Owner,
		Name:      created.GetName(),
		FullName:  created.GetFullName(),
		HTMLURL:   created.GetHTMLURL(),
		CloneURL:  created.GetCloneURL(),
		SSHURL:    created.GetSSHURL(),
		Private:   created.GetPrivate(),
		CreatedAt: created.GetCreatedAt().Time,
	}, nil
}

// RemoteURL derives the clone URL for owner/name.
func (p *Provider) RemoteURL(owner, name string, protocol provider.Protocol) (string, error) {
	host := "github.com"
	if p.baseURL != "" {
		h, err := hostFromBaseURL(p.baseURL)
		if err != nil {
			return "", err
		}
		host = h
	}

	switch protocol {
	case provider.ProtocolSSH:
		return fmt.Sprintf("git@%s:%s/%s.git", host, owner, name), nil
	default:
		return fmt.Sprintf("https://%s/%s/%s.git", host, owner, name), nil
	}
}

// RateLimit returns GitHub's current rate-limit snapshot for cred.
func (p *Provider) RateLimit(ctx context.Context, cred provider.Credential) (*provider.RateLimit, error) {
	client, err := p.client(cred)
	if err != nil {
		return nil, err
	}

	limits, resp, err := client.RateLimit.Get(ctx)
	if resp != nil {
		p.rateLimiter.UpdateFromHeaders(resp.Response)
	}
	if err != nil {
		return nil, fmt.Errorf("github: rate limit check: %w", err)
	}

	core := limits.Core
	return &provider.RateLimit{
		Limit:     core.Limit,
		Remaining: core.Remaining,
		Reset:     core.Reset.Time,
	}, nil
}

var errNoHost = errors.New("github: base URL has no host")

func hostFromBaseURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("github: invalid base URL %q: %w", baseURL, err)
	}
	if u.Hostname() == "" {
		return "", errNoHost
	}
	return u.Hostname(), nil
}
