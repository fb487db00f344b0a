// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package secret

import (
	"context"
	"testing"
)

func TestResolverEnvOverridesPrimaryWhenAllowed(t *testing.T) {
	primary := NewFileStore(t.TempDir(), NewPassphrase([]byte("pw")))
	ctx := context.Background()
	if err := primary.Store(ctx, "github", "github.com", "alice", "stored-secret"); err != nil {
		t.Fatal(err)
	}

	t.Setenv("MULTIGIT_GITHUB_TOKEN", "env-secret")

	r := NewResolver(primary, true)
	got, err := r.Retrieve(ctx, "github", "github.com", "alice")
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if got != "env-secret" {
		t.Errorf("Retrieve() = %q, want the env override %q", got, "env-secret")
	}
}

func TestResolverIgnoresEnvWhenNotAllowed(t *testing.T) {
	primary := NewFileStore(t.TempDir(), NewPassphrase([]byte("pw")))
	ctx := context.Background()
	if err := primary.Store(ctx, "github", "github.com", "alice", "stored-secret"); err != nil {
		t.Fatal(err)
	}

	t.Setenv("MULTIGIT_GITHUB_TOKEN", "env-secret")

	r := NewResolver(primary, false)
	got, err := r.Retrieve(ctx, "github", "github.com", "alice")
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if got != "stored-secret" {
		t.Errorf("Retrieve() = %q, want the stored secret %q", got, "stored-secret")
	}
}

func TestDeriveHostWellKnown(t *testing.T) {
	host, err := DeriveHost("github", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if host != "github.com" {
		t.Errorf("DeriveHost() = %q, want %q", host, "github.com")
	}
}

func TestDeriveHostCustomURL(t *testing.T) {
	host, err := DeriveHost("gitea", "https://gitea.example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if host != "gitea.example.com" {
		t.Errorf("DeriveHost() = %q, want %q", host, "gitea.example.com")
	}
}

func TestDeriveHostUnknownProviderNoURL(t *testing.T) {
	if _, err := DeriveHost("gitea", ""); err == nil {
		t.Error("expected an error for a self-hosted provider with no api_url")
	}
}
