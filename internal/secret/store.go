// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package secret implements host-bound credential storage with OS-native,
// encrypted-file, and opt-in environment-variable backends, plus
// transparent migration from the legacy (provider, username) key shape.
package secret

import (
	"context"

	"github.com/multigit-io/multigit/internal/merrors"
)

// Store persists and retrieves secrets keyed by (provider, host, username).
type Store interface {
	Store(ctx context.Context, provider, host, username, secret string) error
	Retrieve(ctx context.Context, provider, host, username string) (string, error)
	Delete(ctx context.Context, provider, host, username string) error
	ListProviders(ctx context.Context) ([]string, error)
}

// ErrNotFound is returned by Retrieve when no secret is stored for the key.
var ErrNotFound = merrors.New(merrors.NotFound, "secret", "no secret stored for this credential")

// key renders the host-bound key format mandated by spec §4.2.
func key(provider, host, username string) string {
	return provider + ":" + host + ":" + username + ":token"
}

// legacyKey renders the pre-host-bound key format, kept only to support
// migration of secrets stored before MultiGit adopted host-bound keys.
func legacyKey(provider, username string) string {
	return provider + ":" + username + ":token"
}
