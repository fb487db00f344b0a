// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package gitengine wraps go-git/go-git/v5 to give the orchestrator a small,
// typed surface over the local repository: opening it, inspecting its
// working tree and remotes, and running fetch/push against a single remote
// with a credential and a wall-time budget. It replaces the teacher's
// shell-exec internal/gitcmd package with a native Git implementation, but
// keeps the same shape: an Executor-like handle, a default 5-minute timeout,
// and errors that carry enough context for the caller to classify and retry.
package gitengine
