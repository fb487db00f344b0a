// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package secret

import (
	"context"
	"errors"
)

// Resolver composes the primary backend selected by security.auth_backend
// with the opt-in environment override, implementing the lookup order
// spec §4.2/§3 describe: env wins when allowed and set, otherwise the
// primary backend (with its own legacy-key migration) answers.
type Resolver struct {
	Primary        Store
	Env            *EnvStore
	AllowEnvTokens bool
}

// NewResolver builds a Resolver over primary, wiring in the environment
// backend only when allowEnvTokens is true.
func NewResolver(primary Store, allowEnvTokens bool) *Resolver {
	r := &Resolver{Primary: primary, AllowEnvTokens: allowEnvTokens}
	if allowEnvTokens {
		r.Env = NewEnvStore()
	}
	return r
}

func (r *Resolver) Retrieve(ctx context.Context, provider, host, username string) (string, error) {
	if r.AllowEnvTokens && r.Env != nil {
		val, err := r.Env.Retrieve(ctx, provider, host, username)
		if err == nil {
			return val, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return "", err
		}
	}
	return r.Primary.Retrieve(ctx, provider, host, username)
}

func (r *Resolver) Store(ctx context.Context, provider, host, username, secret string) error {
	return r.Primary.Store(ctx, provider, host, username, secret)
}

func (r *Resolver) Delete(ctx context.Context, provider, host, username string) error {
	return r.Primary.Delete(ctx, provider, host, username)
}

func (r *Resolver) ListProviders(ctx context.Context) ([]string, error) {
	return r.Primary.ListProviders(ctx)
}
