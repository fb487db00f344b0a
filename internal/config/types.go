// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package config loads and merges MultiGit's hierarchical configuration:
// built-in defaults, a user-scoped file, a repository-scoped file, then
// command-line overrides, each layer winning over the last.
package config

// Source identifies which layer contributed an effective field's value.
type Source string

const (
	SourceDefault Source = "default"
	SourceUser    Source = "user"
	SourceRepo    Source = "repo"
	SourceFlag    Source = "flag"
)

// SyncStrategy is the policy applied by pull and conflict resolution advice.
type SyncStrategy string

const (
	StrategyFastForward SyncStrategy = "fast-forward"
	StrategyMerge       SyncStrategy = "merge"
	StrategyRebase      SyncStrategy = "rebase"
	StrategyForce       SyncStrategy = "force"
)

// AuthBackend selects the primary credential store.
type AuthBackend string

const (
	AuthBackendKeyring       AuthBackend = "keyring"
	AuthBackendEncryptedFile AuthBackend = "encrypted-file"
)

// Settings holds settings.* fields.
type Settings struct {
	DefaultBranch string `toml:"default_branch"`
	ParallelPush  bool   `toml:"parallel_push"`
	MaxParallel   int    `toml:"max_parallel"`
}

// Sync holds sync.* fields.
type Sync struct {
	Strategy      SyncStrategy `toml:"strategy"`
	PrimarySource string       `toml:"primary_source"`
	AutoSync      bool         `toml:"auto_sync"`
}

// Security holds security.* fields.
type Security struct {
	AuthBackend       AuthBackend `toml:"auth_backend"`
	AllowEnvTokens    bool        `toml:"allow_env_tokens"`
	AllowInsecureHTTP bool        `toml:"allow_insecure_http"`
	AuditLog          bool        `toml:"audit_log"`
}

// RemoteSpec describes one configured remote entry (remotes.<name>).
type RemoteSpec struct {
	Name     string `toml:"-"`
	Provider string `toml:"provider"`
	Username string `toml:"username"`
	APIURL   string `toml:"api_url"`
	Enabled  bool   `toml:"enabled"`
	Priority int    `toml:"priority"`
}

// File is the on-disk shape of one config layer (user or repo). Unknown
// keys are preserved in Extra so the core ignores, rather than rejects,
// fields it does not recognize.
type File struct {
	Settings Settings              `toml:"settings"`
	Sync     Sync                  `toml:"sync"`
	Security Security              `toml:"security"`
	Remotes  map[string]RemoteSpec `toml:"remotes"`
}

// Effective is the merged configuration consumed by every other component.
type Effective struct {
	Settings Settings
	Sync     Sync
	Security Security
	Remotes  map[string]RemoteSpec

	// Sources records which layer last set each top-level field, keyed by
	// "section.field"; useful for `status --json` and doctor diagnostics.
	Sources map[string]Source
}

// Defaults returns the built-in baseline every load starts from.
func Defaults() Effective {
	return Effective{
		Settings: Settings{
			DefaultBranch: "main",
			ParallelPush:  true,
			MaxParallel:   4,
		},
		Sync: Sync{
			Strategy: StrategyFastForward,
			AutoSync: false,
		},
		Security: Security{
			AuthBackend:       AuthBackendKeyring,
			AllowEnvTokens:    false,
			AllowInsecureHTTP: false,
			AuditLog:          false,
		},
		Remotes: map[string]RemoteSpec{},
		Sources: map[string]Source{
			"settings.default_branch": SourceDefault,
			"settings.parallel_push":  SourceDefault,
			"settings.max_parallel":   SourceDefault,
			"sync.strategy":           SourceDefault,
			"sync.auto_sync":          SourceDefault,
			"security.auth_backend":   SourceDefault,
		},
	}
}
