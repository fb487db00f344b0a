// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package provider defines the uniform capability set that lets MultiGit
// treat every configured remote hosting service interchangeably.
//
// # Interface
//
// The Provider interface defines methods for:
//   - Connection testing with a stored credential
//   - Repository existence checks and (optional) creation
//   - Host-bound remote URL derivation (HTTPS or SSH)
//   - Best-effort rate-limit probing
//
// # Implementations
//
// See the github, gitlab, bitbucket, gitea, and codeberg packages for
// concrete adapters. codeberg wraps the gitea adapter pointed at the fixed
// Codeberg host, since Codeberg runs Forgejo, a Gitea-API-compatible fork.
package provider
