// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package codeberg implements provider.Provider for Codeberg.
//
// Codeberg runs Forgejo, a community fork of Gitea that keeps the same
// REST API surface, so this adapter is a thin wrapper around the gitea
// package pinned to the fixed codeberg.org host rather than a separate
// client implementation.
package codeberg

import (
	"github.com/multigit-io/multigit/pkg/gitea"
)

const baseURL = "https://codeberg.org"

// NewProvider creates a provider.Provider for Codeberg.
func NewProvider() *gitea.Provider {
	return gitea.NewProviderTag(baseURL, "codeberg")
}
