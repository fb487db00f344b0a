// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package gitlab implements provider.Provider for gitlab.com and
// self-managed GitLab instances.
//
// # Features
//
//   - Connection testing and project existence checks
//   - Project creation under a user or group namespace
//   - Custom SSH port configuration for self-hosted instances
//   - Locally tracked rate-limit snapshot (GitLab exposes no dedicated
//     rate-limit endpoint)
//
// # Usage
//
//	p := gitlab.NewProvider("https://gitlab.example.com", 2224)
//	status, err := p.TestConnection(ctx, cred)
package gitlab
