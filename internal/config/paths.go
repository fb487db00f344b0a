// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
)

const (
	// ConfigDirName is the config directory name under the user's config home.
	ConfigDirName = "multigit"

	// UserConfigFileName is the user-scoped config file name.
	UserConfigFileName = "config.toml"

	// RepoConfigDirName is the repository-scoped config directory, relative
	// to the repository root.
	RepoConfigDirName = ".multigit"

	// RepoConfigFileName is the repository-scoped config file name.
	RepoConfigFileName = "config.toml"

	// PIDFileName is the daemon's PID file, stored alongside the user config.
	PIDFileName = "daemon.pid"

	// AuditLogFileName is the append-only audit log, stored alongside the
	// user config.
	AuditLogFileName = "audit.log"

	// DaemonLogFileName is the daemon's own redacted log file.
	DaemonLogFileName = "daemon.log"
)

// UserConfigPath returns the user-scoped config file path:
// "<user config dir>/multigit/config.toml".
func UserConfigPath() (string, error) {
	dir, err := userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, UserConfigFileName), nil
}

// RepoConfigPath returns the repository-scoped config file path given the
// repository root: "<root>/.multigit/config.toml".
func RepoConfigPath(repoRoot string) string {
	return filepath.Join(repoRoot, RepoConfigDirName, RepoConfigFileName)
}

// PIDFilePath returns the daemon PID file path.
func PIDFilePath() (string, error) {
	dir, err := userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, PIDFileName), nil
}

// AuditLogPath returns the audit log file path.
func AuditLogPath() (string, error) {
	dir, err := userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AuditLogFileName), nil
}

// DaemonLogPath returns the daemon's log file path.
func DaemonLogPath() (string, error) {
	dir, err := userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DaemonLogFileName), nil
}

func userConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, ConfigDirName)
	return dir, nil
}

// EnsureUserConfigDir creates the user config directory (0700) if absent.
func EnsureUserConfigDir() (string, error) {
	dir, err := userConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}
