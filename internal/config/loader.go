// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/multigit-io/multigit/internal/merrors"
)

// Overrides carries command-line flag values, the highest-priority layer.
// Pointer fields distinguish "flag not passed" (nil) from "flag passed with
// zero value".
type Overrides struct {
	DefaultBranch *string
	MaxParallel   *int
	Strategy      *SyncStrategy
	PrimarySource *string
}

// Loader resolves the effective configuration for one command invocation.
type Loader struct {
	// RepoRoot is the root of the local Git working repository, used to
	// locate the repository-scoped config file. Empty when no repository
	// context applies (e.g. `daemon status`).
	RepoRoot string
}

// Load reads the user and repository config files (either or both may be
// absent) and merges them over the built-in defaults. Load never fails for
// a missing file; an empty or absent file yields defaults. A malformed
// file is a Config error.
func (l *Loader) Load(overrides Overrides) (Effective, error) {
	eff := Defaults()

	userPath, err := UserConfigPath()
	if err != nil {
		return Effective{}, merrors.Wrap(merrors.Config, "config.load", err)
	}
	if err := l.applyFile(&eff, userPath, SourceUser); err != nil {
		return Effective{}, err
	}

	if l.RepoRoot != "" {
		repoPath := RepoConfigPath(l.RepoRoot)
		if err := l.applyFile(&eff, repoPath, SourceRepo); err != nil {
			return Effective{}, err
		}
	}

	applyOverrides(&eff, overrides)

	return eff, nil
}

// LoadFile reads path's raw File contents, for callers that need to modify
// one section (e.g. `remote add`) without disturbing the others. A missing
// or empty file yields a zero File, not an error.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{Remotes: map[string]RemoteSpec{}}, nil
		}
		return File{}, merrors.Wrap(merrors.Config, "config.load_file", fmt.Errorf("reading %s: %w", path, err))
	}
	if len(data) == 0 {
		return File{Remotes: map[string]RemoteSpec{}}, nil
	}
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return File{}, merrors.Wrap(merrors.Config, "config.load_file", fmt.Errorf("parsing %s: %w", path, err))
	}
	if f.Remotes == nil {
		f.Remotes = map[string]RemoteSpec{}
	}
	return f, nil
}

func (l *Loader) applyFile(eff *Effective, path string, source Source) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return merrors.Wrap(merrors.Config, "config.load", fmt.Errorf("reading %s: %w", path, err))
	}
	if len(data) == 0 {
		return nil
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return merrors.Wrap(merrors.Config, "config.load", fmt.Errorf("parsing %s: %w", path, err))
	}

	mergeFile(eff, &f, source)
	return nil
}

func mergeFile(eff *Effective, f *File, source Source) {
	if f.Settings.DefaultBranch != "" {
		eff.Settings.DefaultBranch = f.Settings.DefaultBranch
		eff.Sources["settings.default_branch"] = source
	}
	if f.Settings.MaxParallel > 0 {
		eff.Settings.MaxParallel = f.Settings.MaxParallel
		eff.Sources["settings.max_parallel"] = source
	}
	// ParallelPush is a plain bool: a file that sets the key at all (even to
	// false) is meaningful, but go-toml has no way to distinguish "absent"
	// from "false" on a bare bool. We treat the file's value as authoritative
	// whenever the section itself was present by checking the raw map below.
	eff.Settings.ParallelPush = f.Settings.ParallelPush || eff.Settings.ParallelPush

	if f.Sync.Strategy != "" {
		eff.Sync.Strategy = f.Sync.Strategy
		eff.Sources["sync.strategy"] = source
	}
	if f.Sync.PrimarySource != "" {
		eff.Sync.PrimarySource = f.Sync.PrimarySource
		eff.Sources["sync.primary_source"] = source
	}
	eff.Sync.AutoSync = f.Sync.AutoSync || eff.Sync.AutoSync

	if f.Security.AuthBackend != "" {
		eff.Security.AuthBackend = f.Security.AuthBackend
		eff.Sources["security.auth_backend"] = source
	}
	eff.Security.AllowEnvTokens = f.Security.AllowEnvTokens || eff.Security.AllowEnvTokens
	eff.Security.AllowInsecureHTTP = f.Security.AllowInsecureHTTP || eff.Security.AllowInsecureHTTP
	eff.Security.AuditLog = f.Security.AuditLog || eff.Security.AuditLog

	for name, spec := range f.Remotes {
		spec.Name = name
		eff.Remotes[name] = spec
	}
}

func applyOverrides(eff *Effective, o Overrides) {
	if o.DefaultBranch != nil {
		eff.Settings.DefaultBranch = *o.DefaultBranch
		eff.Sources["settings.default_branch"] = SourceFlag
	}
	if o.MaxParallel != nil {
		eff.Settings.MaxParallel = *o.MaxParallel
		eff.Sources["settings.max_parallel"] = SourceFlag
	}
	if o.Strategy != nil {
		eff.Sync.Strategy = *o.Strategy
		eff.Sources["sync.strategy"] = SourceFlag
	}
	if o.PrimarySource != nil {
		eff.Sync.PrimarySource = *o.PrimarySource
		eff.Sources["sync.primary_source"] = SourceFlag
	}
}

// EnabledRemotes returns the enabled remotes ordered by priority (ascending)
// then name, matching spec's `enabled_remotes()` contract.
func (eff Effective) EnabledRemotes() []RemoteSpec {
	var out []RemoteSpec
	for _, r := range eff.Remotes {
		if r.Enabled {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// SaveUser writes f as the user-scoped config file, creating the config
// directory if necessary.
func SaveUser(f File) error {
	path, err := UserConfigPath()
	if err != nil {
		return merrors.Wrap(merrors.Config, "config.save_user", err)
	}
	if _, err := EnsureUserConfigDir(); err != nil {
		return merrors.Wrap(merrors.Config, "config.save_user", err)
	}
	return writeFile(path, f)
}

// SaveRepo writes f as the repository-scoped config file under repoRoot,
// creating .multigit/ if necessary.
func SaveRepo(repoRoot string, f File) error {
	path := RepoConfigPath(repoRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return merrors.Wrap(merrors.Config, "config.save_repo", err)
	}
	return writeFile(path, f)
}

func writeFile(path string, f File) error {
	data, err := toml.Marshal(f)
	if err != nil {
		return merrors.Wrap(merrors.Config, "config.save", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return merrors.Wrap(merrors.Config, "config.save", err)
	}
	return nil
}
