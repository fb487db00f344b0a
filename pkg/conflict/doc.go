// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package conflict classifies the relationship between a local branch tip
// and a remote-tracking reference into one of six mutually exclusive
// states, and derives a push/pull recommendation from the configured sync
// strategy. It is pure: given ahead/behind counts it mutates nothing and
// performs no I/O.
package conflict
