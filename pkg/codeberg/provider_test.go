// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package codeberg

import (
	"testing"

	"github.com/multigit-io/multigit/pkg/provider"
)

func TestNewProvider_Name(t *testing.T) {
	p := NewProvider()
	if p.Name() != "codeberg" {
		t.Errorf("Name() = %q, want %q", p.Name(), "codeberg")
	}
}

func TestNewProvider_RemoteURL(t *testing.T) {
	p := NewProvider()

	https, err := p.RemoteURL("alice", "proj", provider.ProtocolHTTPS)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if https != "https://codeberg.org/alice/proj.git" {
		t.Errorf("RemoteURL(https) = %q", https)
	}

	ssh, err := p.RemoteURL("alice", "proj", provider.ProtocolSSH)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ssh != "git@codeberg.org:alice/proj.git" {
		t.Errorf("RemoteURL(ssh) = %q", ssh)
	}
}
