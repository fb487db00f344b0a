// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package gitlab

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/xanzy/go-gitlab"

	"github.com/multigit-io/multigit/pkg/provider"
	"github.com/multigit-io/multigit/pkg/ratelimit"
)

// Provider implements provider.Provider for gitlab.com and self-managed
// GitLab instances.
type Provider struct {
	baseURL     string // empty for gitlab.com
	sshHost     string // SSH hostname, derived from baseURL
	sshPort     int    // custom SSH port (0 = default 22)
	rateLimiter *ratelimit.Limiter
}

// NewProvider creates a GitLab provider. baseURL is empty for gitlab.com or
// a self-managed instance's API root otherwise. sshPort overrides the
// default port 22 when the instance exposes SSH on a non-standard port.
func NewProvider(baseURL string, sshPort int) *Provider {
	p := &Provider{
		baseURL:     baseURL,
		sshPort:     sshPort,
		rateLimiter: ratelimit.NewLimiter(2000), // GitLab default
	}
	if baseURL != "" {
		p.sshHost = extractHostFromURL(baseURL)
	}
	return p
}

// Name returns the provider tag.
func (p *Provider) Name() string { return "gitlab" }

func (p *Provider) client(cred provider.Credential) (*gitlab.Client, error) {
	var opts []gitlab.ClientOptionFunc
	if p.baseURL != "" {
		opts = append(opts, gitlab.WithBaseURL(p.baseURL))
	}
	client, err := gitlab.NewClient(cred.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("gitlab: creating client: %w", err)
	}
	return client, nil
}

// TestConnection verifies cred against GitLab's current-user endpoint.
func (p *Provider) TestConnection(ctx context.Context, cred provider.Credential) (provider.ConnectionStatus, error) {
	client, err := p.client(cred)
	if err != nil {
		return provider.StatusNetwork, err
	}
	if err := p.rateLimiter.Wait(ctx); err != nil {
		return provider.StatusNetwork, err
	}

	_, resp, err := client.Users.CurrentUser(gitlab.WithContext(ctx))
	return classifyResponse(p.rateLimiter, resp, err)
}

func classifyResponse(rl *ratelimit.Limiter, resp *gitlab.Response, err error) (provider.ConnectionStatus, error) {
	if resp == nil {
		if err != nil {
			return provider.StatusNetwork, err
		}
		return provider.StatusOK, nil
	}
	rl.UpdateFromHeaders(resp.Response)

	switch resp.StatusCode {
	case 200, 201, 204:
		return provider.StatusOK, nil
	case 401, 403:
		if resp.Header.Get("RateLimit-Remaining") == "0" {
			return provider.StatusRateLimited, err
		}
		return provider.StatusAuthFailed, err
	case 429:
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

	projectPath := owner + "/" + name
	_, resp, err := client.Projects.GetProject(projectPath, nil, gitlab.WithContext(ctx))
	if resp != nil {
		p.rateLimiter.UpdateFromHeaders(resp.Response)
	}
	if err != nil {
		if resp != nil && resp.StatusCode == 404 {
			return false, nil
		}
		return false, fmt.Errorf("gitlab: checking %s: %w", projectPath, err)
	}
	return true, nil
}

// CreateRepo provisions a project under spec.Owner via the GitLab API.
func (p *Provider) CreateRepo(ctx context.Context, spec provider.RepoSpec, cred provider.Credential) (*provider.RepoDescriptor, error) {
	client, err := p.client(cred)
	if err != nil {
		return nil, err
	}

	opts := &gitlab.CreateProjectOptions{
		Name:        gitlab.Ptr(spec.Name),
		Description: gitlab.Ptr(spec.Description),
		Visibility:  gitlab.Ptr(gitlab.PublicVisibility),
	}
	if spec.Private {
		opts.Visibility = gitlab.Ptr(gitlab.PrivateVisibility)
	}

	// spec.Owner equal to the authenticated user creates under the user's
	// own namespace; otherwise resolve the owner as a group namespace.
	if spec.Owner != "" && spec.Owner != cred.Username {
		group, _, err := client.Groups.GetGroup(spec.Owner, nil, gitlab.WithContext(ctx))
		if err == nil && group != nil {
			opts.NamespaceID = gitlab.Ptr(group.ID)
		}
	}

	if err := p.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}
	created, resp, err := client.Projects.CreateProject(opts, gitlab.WithContext(ctx))
	if resp != nil {
		p.rateLimiter.UpdateFromHeaders(resp.Response)
	}
	if err != nil {
		return nil, fmt.Errorf("gitlab: creating %s/%s: %w", spec.Owner, spec.Name, err)
	}

	var createdAt time.Time
	if created.CreatedAt != nil {
		createdAt = *created.CreatedAt
	}

	return &provider.RepoDescriptor{
		Owner:     spec.Owner,
		Name:      created.Path,
		FullName:  created.PathWithNamespace,
		HTMLURL:   created.WebURL,
		CloneURL:  created.HTTPURLToRepo,
		SSHURL:    created.SSHURLToRepo,
		Private:   created.Visibility == gitlab.PrivateVisibility,
		CreatedAt: createdAt,
	}, nil
}

// RemoteURL derives the clone URL for owner/name, honoring a custom SSH port
// when one was configured for this instance.
func (p *Provider) RemoteURL(owner, name string, protocol provider.Protocol) (string, error) {
	projectPath := owner + "/" + name

	switch protocol {
	case provider.ProtocolSSH:
		host := p.sshHost
		if host == "" {
			host = "gitlab.com"
		}
		sshURL := p.buildSSHURL(projectPath)
		if sshURL == "" {
			// No custom SSH host configured: fall back to the standard form.
			sshURL = fmt.Sprintf("git@%s:%s.git", host, projectPath)
		}
		return sshURL, nil
	default:
		host := "gitlab.com"
		if p.baseURL != "" {
			h := extractHostFromURL(p.baseURL)
			if h == "" {
				return "", fmt.Errorf("gitlab: base URL %q has no host", p.baseURL)
			}
			host = h
		}
		return fmt.Sprintf("https://%s/%s.git", host, projectPath), nil
	}
}

// RateLimit returns the locally tracked rate-limit snapshot. GitLab does not
// expose a dedicated rate-limit endpoint; the snapshot reflects the values
// last seen in response headers.
func (p *Provider) RateLimit(ctx context.Context, cred provider.Credential) (*provider.RateLimit, error) {
	remaining, limit, reset := p.rateLimiter.Status()
	return &provider.RateLimit{
		Limit:     limit,
		Remaining: remaining,
		Reset:     reset,
	}, nil
}

// extractHostFromURL extracts hostname from API base URL.
// Base URL should be the API endpoint (http/https).
// Examples:
//   - "https://gitlab.polypia.net" -> "gitlab.polypia.net"
//   - "https://gitlab.polypia.net:8443" -> "gitlab.polypia.net"
//   - "https://gitlab.com/api/v4" -> "gitlab.com"
func extractHostFromURL(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// buildSSHURL constructs the SSH URL for a project path.
// Format: ssh://git@host:port/path/to/repo.git
func (p *Provider) buildSSHURL(projectPath string) string {
	if p.sshHost == "" {
		return ""
	}

	if !strings.HasSuffix(projectPath, ".git") {
		projectPath = projectPath + ".git"
	}

	if p.sshPort > 0 && p.sshPort != 22 {
		return fmt.Sprintf("ssh://git@%s:%d/%s", p.sshHost, p.sshPort, projectPath)
	}
	return fmt.Sprintf("git@%s:%s", p.sshHost, projectPath)
}
