// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package provider

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Protocol selects the transport used when a provider derives a remote URL.
type Protocol string

const (
	ProtocolHTTPS Protocol = "https"
	ProtocolSSH   Protocol = "ssh"
)

// ConnectionStatus is the outcome of Provider.TestConnection.
type ConnectionStatus string

const (
	StatusOK          ConnectionStatus = "ok"
	StatusAuthFailed  ConnectionStatus = "auth_failed"
	StatusNetwork     ConnectionStatus = "network"
	StatusRateLimited ConnectionStatus = "rate_limited"
)

// ErrUnsupported is returned by CreateRepo when a provider does not support
// programmatic repository creation.
var ErrUnsupported = errors.New("provider: operation unsupported")

// Credential carries the secret material a provider needs to authenticate a
// REST call. It never reaches logs or audit records; see internal/redact.
type Credential struct {
	Provider string
	Host     string
	Username string
	Token    string
}

// RepoDescriptor is the result of a successful CreateRepo call.
type RepoDescriptor struct {
	Owner     string
	Name      string
	FullName  string
	HTMLURL   string
	CloneURL  string
	SSHURL    string
	Private   bool
	CreatedAt time.Time
}

// RepoSpec describes the repository CreateRepo should provision.
type RepoSpec struct {
	Owner       string
	Name        string
	Description string
	Private     bool
}

// RateLimit is the best-effort rate-limit snapshot returned by a provider.
// Reset is the zero time when the provider does not expose a reset instant.
type RateLimit struct {
	Limit     int
	Remaining int
	Reset     time.Time
	Unknown   bool
}

// Provider is the uniform capability set every hosting platform adapter
// implements. Construction of a Provider with a custom base URL must apply
// the HTTPS enforcement policy described in spec §4.3 before the first call.
type Provider interface {
	// Name returns the provider tag (github, gitlab, bitbucket, codeberg, gitea).
	Name() string

	// TestConnection verifies the credential against the provider's API.
	TestConnection(ctx context.Context, cred Credential) (ConnectionStatus, error)

	// RepoExists reports whether owner/name exists and is visible to cred.
	RepoExists(ctx context.Context, owner, name string, cred Credential) (bool, error)

	// CreateRepo provisions a new repository. Returns ErrUnsupported when the
	// provider adapter does not implement repository creation.
	CreateRepo(ctx context.Context, spec RepoSpec, cred Credential) (*RepoDescriptor, error)

	// RemoteURL derives the clone URL for owner/name under the given protocol.
	RemoteURL(owner, name string, protocol Protocol) (string, error)

	// RateLimit probes current API rate-limit status. Providers that cannot
	// determine this return a RateLimit with Unknown set.
	RateLimit(ctx context.Context, cred Credential) (*RateLimit, error)
}

// Registry is a set of provider adapters keyed by tag.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds or replaces the adapter for p.Name().
func (r *Registry) Register(p Provider) {
	r.providers[p.Name()] = p
}

// Get resolves a provider by tag. Unknown tags produce an error naming the
// tag, per spec §4.3 ("Unknown tags are ProviderError").
func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("provider: unknown provider tag %q", name)
	}
	return p, nil
}

// Names returns the registered provider tags.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}

// SupportedProviders are the provider tags spec §4.3 requires adapters for.
var SupportedProviders = []string{"github", "gitlab", "bitbucket", "codeberg", "gitea"}
