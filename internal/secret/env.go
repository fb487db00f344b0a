// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package secret

import (
	"context"
	"os"
	"strings"

	"github.com/multigit-io/multigit/internal/merrors"
)

// EnvStore reads MULTIGIT_<PROVIDER>_TOKEN. It is consulted only when
// security.allow_env_tokens is true and is read-only: Store/Delete are
// unsupported since environment variables are not MultiGit's to persist.
type EnvStore struct{}

// NewEnvStore returns the environment-variable backend.
func NewEnvStore() *EnvStore { return &EnvStore{} }

func envVarName(provider string) string {
	return "MULTIGIT_" + strings.ToUpper(provider) + "_TOKEN"
}

func (s *EnvStore) Retrieve(ctx context.Context, provider, host, username string) (string, error) {
	val, ok := os.LookupEnv(envVarName(provider))
	if !ok || val == "" {
		return "", ErrNotFound
	}
	return val, nil
}

func (s *EnvStore) Store(ctx context.Context, provider, host, username, secret string) error {
	return merrors.New(merrors.Internal, "secret.env.store", "the environment backend is read-only")
}

func (s *EnvStore) Delete(ctx context.Context, provider, host, username string) error {
	return merrors.New(merrors.Internal, "secret.env.delete", "the environment backend is read-only")
}

func (s *EnvStore) ListProviders(ctx context.Context) ([]string, error) {
	return nil, merrors.New(merrors.Internal, "secret.env.list_providers", "the environment backend does not enumerate providers")
}
