// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package provider

import (
	"context"
	"testing"
	"time"
)

func TestRegistryGetUnknown(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Get("github"); err == nil {
		t.Fatal("expected error for unregistered provider")
	}
}

type stubProvider struct{ name string }

func (s stubProvider) Name() string { return s.name }
func (s stubProvider) TestConnection(ctx context.Context, cred Credential) (ConnectionStatus, error) {
	return StatusOK, nil
}
func (s stubProvider) RepoExists(ctx context.Context, owner, name string, cred Credential) (bool, error) {
	return true, nil
}
func (s stubProvider) CreateRepo(ctx context.Context, spec RepoSpec, cred Credential) (*RepoDescriptor, error) {
	return nil, ErrUnsupported
}
func (s stubProvider) RemoteURL(owner, name string, protocol Protocol) (string, error) {
	return "https://example.com/" + owner + "/" + name, nil
}
func (s stubProvider) RateLimit(ctx context.Context, cred Credential) (*RateLimit, error) {
	return &RateLimit{Unknown: true}, nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(stubProvider{name: "github"})

	p, err := r.Get("github")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "github" {
		t.Errorf("Name() = %q, want %q", p.Name(), "github")
	}
}

func TestSupportedProviders(t *testing.T) {
	want := map[string]bool{"github": true, "gitlab": true, "bitbucket": true, "codeberg": true, "gitea": true}
	if len(SupportedProviders) != len(want) {
		t.Fatalf("SupportedProviders length = %d, want %d", len(SupportedProviders), len(want))
	}
	for _, name := range SupportedProviders {
		if !want[name] {
			t.Errorf("unexpected provider tag %q", name)
		}
	}
}

func TestRateLimitZeroValue(t *testing.T) {
	rl := RateLimit{Limit: 5000, Remaining: 4500, Reset: time.Now()}
	if rl.Unknown {
		t.Error("Unknown should default to false")
	}
}
