// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package orchestrator is the central state machine of a MultiGit command:
// it fans a push, fetch, or full sync out across the enabled remotes with a
// bounded worker count, retries transient per-task failures once, and
// aggregates results without ever failing the whole command for one
// remote's failure. It follows the same errgroup.SetLimit fan-out shape as
// the teacher's pkg/sync.Syncer, generalized from "clone/update a list of
// repositories" to "push/fetch/sync one repository across many remotes".
package orchestrator
