// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package gitea implements provider.Provider for Gitea and Gitea-API-
// compatible forks.
//
// # Features
//
//   - Connection testing, repo existence checks, repo creation
//   - Org or user-account repo creation via CreateOrgRepo/CreateRepo
//   - Locally tracked rate-limit snapshot
//
// NewProviderTag lets an embedding adapter (see the codeberg package) reuse
// this client against a fixed host while reporting its own Name().
//
// # Usage
//
//	provider := gitea.NewProvider("https://gitea.example.com")
//	status, err := provider.TestConnection(ctx, cred)
package gitea
