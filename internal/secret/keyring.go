// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package secret

import (
	"context"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/multigit-io/multigit/internal/merrors"
)

// service is the keyring service name all MultiGit entries are grouped
// under.
const service = "multigit"

// KeyringStore is the OS-native backend (macOS Keychain, Windows Credential
// Manager, Secret Service on Linux via go-keyring). It is the primary
// backend per spec §4.2.
//
// Open Question resolution: on legacy-key migration, the legacy entry is
// deleted once its secret has been re-stored under the host-bound key
// (migrate-and-delete). Keeping both indefinitely would let a stale legacy
// secret silently diverge from the one actually in use.
type KeyringStore struct{}

// NewKeyringStore returns the OS-native credential backend.
func NewKeyringStore() *KeyringStore { return &KeyringStore{} }

func (s *KeyringStore) Store(ctx context.Context, provider, host, username, secret string) error {
	if err := keyring.Set(service, key(provider, host, username), secret); err != nil {
		return merrors.Wrap(merrors.BackendUnavailable, "secret.keyring.store", err)
	}
	return nil
}

func (s *KeyringStore) Retrieve(ctx context.Context, provider, host, username string) (string, error) {
	val, err := keyring.Get(service, key(provider, host, username))
	if err == nil {
		return val, nil
	}
	if !errors.Is(err, keyring.ErrNotFound) {
		return "", merrors.Wrap(merrors.BackendUnavailable, "secret.keyring.retrieve", err)
	}

	// Not found under the host-bound key: fall back to the legacy key and
	// migrate on success.
	legacy, legacyErr := keyring.Get(service, legacyKey(provider, username))
	if legacyErr != nil {
		if errors.Is(legacyErr, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", merrors.Wrap(merrors.BackendUnavailable, "secret.keyring.retrieve", legacyErr)
	}

	if err := keyring.Set(service, key(provider, host, username), legacy); err != nil {
		return "", merrors.Wrap(merrors.BackendUnavailable, "secret.keyring.migrate", err)
	}
	if err := keyring.Delete(service, legacyKey(provider, username)); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return "", merrors.Wrap(merrors.BackendUnavailable, "secret.keyring.migrate", err)
	}

	return legacy, nil
}

func (s *KeyringStore) Delete(ctx context.Context, provider, host, username string) error {
	err := keyring.Delete(service, key(provider, host, username))
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return merrors.Wrap(merrors.BackendUnavailable, "secret.keyring.delete", err)
	}

	legacyErr := keyring.Delete(service, legacyKey(provider, username))
	if legacyErr != nil && !errors.Is(legacyErr, keyring.ErrNotFound) {
		return merrors.Wrap(merrors.BackendUnavailable, "secret.keyring.delete", legacyErr)
	}
	return nil
}

// ListProviders is unsupported: go-keyring exposes no enumeration API
// across backends (Secret Service, Keychain, Credential Manager each
// differ). Callers should track configured remotes via the config model
// instead of asking the secret store to enumerate itself.
func (s *KeyringStore) ListProviders(ctx context.Context) ([]string, error) {
	return nil, merrors.New(merrors.Internal, "secret.keyring.list_providers", fmt.Sprintf("%s backend does not support enumeration", service))
}
