// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package gitea

import (
	"testing"

	"github.com/multigit-io/multigit/pkg/provider"
)

func TestProvider_Name(t *testing.T) {
	p := NewProvider("https://gitea.example.com")
	if p.Name() != "gitea" {
		t.Errorf("Name() = %q, want %q", p.Name(), "gitea")
	}
}

func TestNewProviderTag_OverridesName(t *testing.T) {
	p := NewProviderTag("https://codeberg.org", "codeberg")
	if p.Name() != "codeberg" {
		t.Errorf("Name() = %q, want %q", p.Name(), "codeberg")
	}
}

func TestProvider_RemoteURL(t *testing.T) {
	p := NewProvider("https://gitea.example.com")

	https, err := p.RemoteURL("alice", "proj", provider.ProtocolHTTPS)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if https != "https://gitea.example.com/alice/proj.git" {
		t.Errorf("RemoteURL(https) = %q", https)
	}

	ssh, err := p.RemoteURL("alice", "proj", provider.ProtocolSSH)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ssh != "git@gitea.example.com:alice/proj.git" {
		t.Errorf("RemoteURL(ssh) = %q", ssh)
	}
}

func TestProvider_RemoteURL_InvalidBaseURL(t *testing.T) {
	p := NewProvider("not-a-url-with-no-host")
	if _, err := p.RemoteURL("alice", "proj", provider.ProtocolHTTPS); err == nil {
		t.Error("expected error for base URL with no host")
	}
}

func TestProvider_RateLimit_Unset(t *testing.T) {
	p := NewProvider("https://gitea.example.com")
	rl, err := p.RateLimit(nil, provider.Credential{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rl.Limit <= 0 {
		t.Errorf("expected a positive default limit, got %d", rl.Limit)
	}
}
