// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package secret

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"

	"github.com/multigit-io/multigit/internal/merrors"
)

const (
	scryptN  = 1 << 15
	scryptR  = 8
	scryptP  = 1
	keyLen   = 32
	saltLen  = 16
	nonceLen = 24
	fileName = "secrets.enc"
	fileMode = 0o600
)

// record is one encrypted-file entry. Each record carries its own salt and
// nonce, so records encrypt independently under the same passphrase.
type record struct {
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

type fileFormat struct {
	Records map[string]record `json:"records"`
}

// FileStore is the encrypted-file fallback backend. Every secret is sealed
// with crypto/nacl/secretbox under a key derived via scrypt from a
// passphrase held in a Passphrase container.
type FileStore struct {
	path       string
	passphrase *Passphrase
}

// NewFileStore returns the encrypted-file backend, storing its file under
// dir (the user config directory) and deriving keys from passphrase.
// Ownership of passphrase passes to the caller; FileStore never zeroes it.
func NewFileStore(dir string, passphrase *Passphrase) *FileStore {
	return &FileStore{path: filepath.Join(dir, fileName), passphrase: passphrase}
}

func (s *FileStore) load() (fileFormat, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fileFormat{Records: map[string]record{}}, nil
		}
		return fileFormat{}, merrors.Wrap(merrors.BackendUnavailable, "secret.file.load", err)
	}
	if len(data) == 0 {
		return fileFormat{Records: map[string]record{}}, nil
	}

	var ff fileFormat
	if err := json.Unmarshal(data, &ff); err != nil {
		return fileFormat{}, merrors.Wrap(merrors.Corrupt, "secret.file.load", err)
	}
	if ff.Records == nil {
		ff.Records = map[string]record{}
	}
	return ff, nil
}

func (s *FileStore) save(ff fileFormat) error {
	data, err := json.Marshal(ff)
	if err != nil {
		return merrors.Wrap(merrors.Internal, "secret.file.save", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return merrors.Wrap(merrors.BackendUnavailable, "secret.file.save", err)
	}
	if err := os.WriteFile(s.path, data, fileMode); err != nil {
		return merrors.Wrap(merrors.BackendUnavailable, "secret.file.save", err)
	}
	return nil
}

func (s *FileStore) deriveKey(salt []byte) (*[32]byte, error) {
	raw, err := scrypt.Key(s.passphrase.Bytes(), salt, scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return nil, err
	}
	var derived [32]byte
	copy(derived[:], raw)
	return &derived, nil
}

func (s *FileStore) Store(ctx context.Context, provider, host, username, secret string) error {
	ff, err := s.load()
	if err != nil {
		return err
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return merrors.Wrap(merrors.Crypto, "secret.file.store", err)
	}
	derivedKey, err := s.deriveKey(salt)
	if err != nil {
		return merrors.Wrap(merrors.Crypto, "secret.file.store", err)
	}

	var nonce [nonceLen]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return merrors.Wrap(merrors.Crypto, "secret.file.store", err)
	}

	sealed := secretbox.Seal(nil, []byte(secret), &nonce, derivedKey)
	ff.Records[key(provider, host, username)] = record{Salt: salt, Nonce: nonce[:], Ciphertext: sealed}

	return s.save(ff)
}

func (s *FileStore) Retrieve(ctx context.Context, provider, host, username string) (string, error) {
	ff, err := s.load()
	if err != nil {
		return "", err
	}

	if rec, ok := ff.Records[key(provider, host, username)]; ok {
		return s.open(rec)
	}

	legacy, ok := ff.Records[legacyKey(provider, username)]
	if !ok {
		return "", ErrNotFound
	}
	plain, err := s.open(legacy)
	if err != nil {
		return "", err
	}

	// Migrate: re-store under the host-bound key, drop the legacy one.
	if err := s.Store(ctx, provider, host, username, plain); err != nil {
		return "", err
	}
	ff, err = s.load()
	if err == nil {
		delete(ff.Records, legacyKey(provider, username))
		_ = s.save(ff)
	}
	return plain, nil
}

func (s *FileStore) open(rec record) (string, error) {
	derivedKey, err := s.deriveKey(rec.Salt)
	if err != nil {
		return "", merrors.Wrap(merrors.Crypto, "secret.file.retrieve", err)
	}
	var nonce [nonceLen]byte
	copy(nonce[:], rec.Nonce)

	plain, ok := secretbox.Open(nil, rec.Ciphertext, &nonce, derivedKey)
	if !ok {
		return "", merrors.Wrap(merrors.Crypto, "secret.file.retrieve", errors.New("decryption failed: wrong passphrase or corrupt record"))
	}
	return string(plain), nil
}

func (s *FileStore) Delete(ctx context.Context, provider, host, username string) error {
	ff, err := s.load()
	if err != nil {
		return err
	}
	delete(ff.Records, key(provider, host, username))
	delete(ff.Records, legacyKey(provider, username))
	return s.save(ff)
}

func (s *FileStore) ListProviders(ctx context.Context) ([]string, error) {
	ff, err := s.load()
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var providers []string
	for k := range ff.Records {
		// Host-bound keys are "provider:host:username:token"; the provider
		// segment is always the prefix up to the first colon.
		for i := 0; i < len(k); i++ {
			if k[i] == ':' {
				p := k[:i]
				if !seen[p] {
					seen[p] = true
					providers = append(providers, p)
				}
				break
			}
		}
	}
	return providers, nil
}
