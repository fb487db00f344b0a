// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package bitbucket

import (
	"context"
	"fmt"
	"strings"

	"github.com/ktrysmt/go-bitbucket"

	"github.com/multigit-io/multigit/pkg/provider"
	"github.com/multigit-io/multigit/pkg/ratelimit"
)

// Provider implements provider.Provider for Bitbucket Cloud. Bitbucket
// authenticates with an app password alongside a username rather than a
// single bearer token, so cred.Username and cred.Token map to the
// app-password pair.
type Provider struct {
	rateLimiter *ratelimit.Limiter
}

// NewProvider creates a Bitbucket Cloud provider.
func NewProvider() *Provider {
	return &Provider{
		rateLimiter: ratelimit.NewLimiter(1000), // Bitbucket Cloud default estimate
	}
}

// Name returns the provider tag.
func (p *Provider) Name() string { return "bitbucket" }

func (p *Provider) client(cred provider.Credential) *bitbucket.Client {
	return bitbucket.NewBasicAuth(cred.Username, cred.Token)
}

// TestConnection verifies cred against Bitbucket's current-user endpoint.
func (p *Provider) TestConnection(ctx context.Context, cred provider.Credential) (provider.ConnectionStatus, error) {
	if err := p.rateLimiter.Wait(ctx); err != nil {
		return provider.StatusNetwork, err
	}

	client := p.client(cred)
	_, err := client.User.Profile()
	if err != nil {
		return classifyError(err)
	}
	return provider.StatusOK, nil
}

func classifyError(err error) (provider.ConnectionStatus, error) {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "401") || strings.Contains(msg, "Unauthorized"):
		return provider.StatusAuthFailed, err
	case strings.Contains(msg, "429") || strings.Contains(msg, "Too Many Requests"):
		return provider.StatusRateLimited, err
	default:
		return provider.StatusNetwork, err
	}
}

// RepoExists reports whether owner/name is visible to cred.
func (p *Provider) RepoExists(ctx context.Context, owner, name string, cred provider.Credential) (bool, error) {
	if err := p.rateLimiter.Wait(ctx); err != nil {
		return false, err
	}

	client := p.client(cred)
	_, err := client.Repositories.Repository.Get(&bitbucket.RepositoryOptions{
		Owner:    owner,
		RepoSlug: name,
	})
	if err != nil {
		if strings.Contains(err.Error(), "404") || strings.Contains(err.Error(), "Not Found") {
			return false, nil
		}
		return false, fmt.Errorf("bitbucket: checking %s/%s: %w", owner, name, err)
	}
	return true, nil
}

// CreateRepo provisions a repository under spec.Owner via the Bitbucket API.
func (p *Provider) CreateRepo(ctx context.Context, spec provider.RepoSpec, cred provider.Credential) (*provider.RepoDescriptor, error) {
	if err := p.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	client := p.client(cred)
	isPrivate := spec.Private
	created, err := client.Repositories.Repository.Create(&bitbucket.RepositoryOptions{
		Owner:       spec.Owner,
		RepoSlug:    spec.Name,
		Scm:         "git",
		Description: spec.Description,
		IsPrivate:   fmt.Sprintf("%t", isPrivate),
	})
	if err != nil {
		return nil, fmt.Errorf("bitbucket: creating %s/%s: %w", spec.Owner, spec.Name, err)
	}

	htmlURL, _ := p.RemoteURL(spec.Owner, spec.Name, provider.ProtocolHTTPS)
	sshURL, _ := p.RemoteURL(spec.Owner, spec.Name, provider.ProtocolSSH)

	return &provider.RepoDescriptor{
		Owner:    spec.Owner,
		Name:     created.Slug,
		FullName: spec.Owner + "/" + created.Slug,
		HTMLURL:  htmlURL,
		CloneURL: htmlURL,
		SSHURL:   sshURL,
		Private:  isPrivate,
	}, nil
}

// RemoteURL derives the clone URL for owner/name.
func (p *Provider) RemoteURL(owner, name string, protocol provider.Protocol) (string, error) {
	switch protocol {
	case provider.ProtocolSSH:
		return fmt.Sprintf("git@bitbucket.org:%s/%s.git", owner, name), nil
	default:
		return fmt.Sprintf("https://bitbucket.org/%s/%s.git", owner, name), nil
	}
}

// RateLimit returns the locally tracked rate-limit snapshot. Bitbucket
// Cloud does not expose a dedicated rate-limit endpoint.
func (p *Provider) RateLimit(ctx context.Context, cred provider.Credential) (*provider.RateLimit, error) {
	remaining, limit, reset := p.rateLimiter.Status()
	return &provider.RateLimit{
		Limit:     limit,
		Remaining: remaining,
		Reset:     reset,
	}, nil
}
