// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package secret

import (
	"context"
	"errors"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir(), NewPassphrase([]byte("correct horse battery staple")))
	ctx := context.Background()

	if err := store.Store(ctx, "github", "github.com", "alice", "ghp_abc123"); err != nil {
		t.Fatalf("Store: %v", err)
	}

	got, err := store.Retrieve(ctx, "github", "github.com", "alice")
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if got != "ghp_abc123" {
		t.Errorf("Retrieve() = %q, want %q", got, "ghp_abc123")
	}
}

func TestFileStoreRetrieveDifferentHostNotFound(t *testing.T) {
	store := NewFileStore(t.TempDir(), NewPassphrase([]byte("pw")))
	ctx := context.Background()

	if err := store.Store(ctx, "github", "github.com", "alice", "secret"); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if _, err := store.Retrieve(ctx, "github", "ghe.example.com", "alice"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for a different host, got %v", err)
	}
}

func TestFileStoreLegacyMigration(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir, NewPassphrase([]byte("pw")))
	ctx := context.Background()

	// Seed a legacy-keyed record directly, bypassing Store (which always
	// writes the host-bound key).
	if err := store.Store(ctx, "github", "github.com", "alice", "placeholder"); err != nil {
		t.Fatal(err)
	}
	ff, err := store.load()
	if err != nil {
		t.Fatal(err)
	}
	legacyRec := ff.Records[key("github", "github.com", "alice")]
	delete(ff.Records, key("github", "github.com", "alice"))
	ff.Records[legacyKey("github", "alice")] = legacyRec
	if err := store.save(ff); err != nil {
		t.Fatal(err)
	}

	got, err := store.Retrieve(ctx, "github", "github.com", "alice")
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if got != "placeholder" {
		t.Errorf("Retrieve() = %q, want %q", got, "placeholder")
	}

	// Migration is migrate-and-delete: the legacy entry should be gone and
	// the host-bound one present.
	ff, err = store.load()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := ff.Records[legacyKey("github", "alice")]; ok {
		t.Error("legacy record should have been deleted after migration")
	}
	if _, ok := ff.Records[key("github", "github.com", "alice")]; !ok {
		t.Error("host-bound record should exist after migration")
	}
}

func TestFileStoreDeleteRemovesBothKeys(t *testing.T) {
	store := NewFileStore(t.TempDir(), NewPassphrase([]byte("pw")))
	ctx := context.Background()

	if err := store.Store(ctx, "gitlab", "gitlab.com", "bob", "tok"); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, "gitlab", "gitlab.com", "bob"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Retrieve(ctx, "gitlab", "gitlab.com", "bob"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
