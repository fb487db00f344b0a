// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package cmd implements the multigit CLI commands.
package cmd

import (
	"os"

	"go.uber.org/zap"

	"github.com/multigit-io/multigit/internal/config"
	"github.com/multigit-io/multigit/internal/gitengine"
	"github.com/multigit-io/multigit/internal/logging"
	"github.com/multigit-io/multigit/internal/merrors"
	"github.com/multigit-io/multigit/internal/secret"
	"github.com/multigit-io/multigit/pkg/audit"
	"github.com/multigit-io/multigit/pkg/bitbucket"
	"github.com/multigit-io/multigit/pkg/codeberg"
	"github.com/multigit-io/multigit/pkg/gitea"
	"github.com/multigit-io/multigit/pkg/github"
	"github.com/multigit-io/multigit/pkg/gitlab"
	"github.com/multigit-io/multigit/pkg/provider"
)

// passphraseEnvVar names the environment variable the encrypted-file secret
// backend reads its passphrase from. Undocumented in spec beyond "held in a
// scrubbing container"; this is the CLI's own choice of where that
// passphrase originates (see DESIGN.md).
const passphraseEnvVar = "MULTIGIT_PASSPHRASE"

// app bundles the dependencies every command needs, built once per
// invocation from the effective configuration.
type app struct {
	cfg      config.Effective
	repoRoot string // empty when the command does not require a repository
	secrets  secret.Store
	registry *provider.Registry
	logger   *zap.Logger
}

// newApp loads configuration, opens the current repository (unless
// skipRepo), and wires the secret store, provider registry, and logger a
// command needs.
func newApp(skipRepo bool) (*app, error) {
	repoRoot := ""
	if !skipRepo {
		h, err := gitengine.OpenFromWorkingDir(".")
		if err != nil {
			return nil, err
		}
		repoRoot = h.Root()
	}

	loader := &config.Loader{RepoRoot: repoRoot}
	overrides := buildOverrides()
	cfg, err := loader.Load(overrides)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Config{Verbose: verboseFlag, JSON: jsonFlag})
	if err != nil {
		return nil, merrors.Wrap(merrors.Internal, "cmd.new_app", err)
	}

	store, err := buildSecretStore(cfg)
	if err != nil {
		return nil, err
	}
	secrets := secret.NewResolver(store, cfg.Security.AllowEnvTokens)

	return &app{
		cfg:      cfg,
		repoRoot: repoRoot,
		secrets:  secrets,
		registry: buildRegistry(cfg),
		logger:   logger,
	}, nil
}

func buildOverrides() config.Overrides {
	var o config.Overrides
	if defaultBranchFlag != "" {
		o.DefaultBranch = &defaultBranchFlag
	}
	return o
}

func buildSecretStore(cfg config.Effective) (secret.Store, error) {
	switch cfg.Security.AuthBackend {
	case config.AuthBackendEncryptedFile:
		dir, err := config.EnsureUserConfigDir()
		if err != nil {
			return nil, merrors.Wrap(merrors.Config, "cmd.secret_store", err)
		}
		raw := os.Getenv(passphraseEnvVar)
		if raw == "" {
			return nil, merrors.New(merrors.Config, "cmd.secret_store", "encrypted-file backend requires "+passphraseEnvVar+" to be set")
		}
		return secret.NewFileStore(dir, secret.NewPassphrase([]byte(raw))), nil
	default:
		return secret.NewKeyringStore(), nil
	}
}

// buildRegistry registers all five hosting-platform adapters, applying each
// remote's custom api_url when configured.
func buildRegistry(cfg config.Effective) *provider.Registry {
	reg := provider.NewRegistry()

	ghURL, glURL, gtURL := "", "", ""
	glSSHPort := 0
	for _, r := range cfg.Remotes {
		switch r.Provider {
		case "github":
			ghURL = r.APIURL
		case "gitlab":
			glURL = r.APIURL
		case "gitea":
			gtURL = r.APIURL
		}
	}

	reg.Register(github.NewProvider(ghURL))
	reg.Register(gitlab.NewProvider(glURL, glSSHPort))
	reg.Register(gitea.NewProvider(gtURL))
	reg.Register(codeberg.NewProvider())
	reg.Register(bitbucket.NewProvider())
	return reg
}

// auditWriter returns an audit.Writer when security.audit_log is enabled,
// or nil otherwise. Callers must treat a nil writer as a no-op.
func (a *app) auditWriter() (*audit.Writer, error) {
	if !a.cfg.Security.AuditLog {
		return nil, nil
	}
	if _, err := config.EnsureUserConfigDir(); err != nil {
		return nil, merrors.Wrap(merrors.Internal, "cmd.audit_writer", err)
	}
	path, err := config.AuditLogPath()
	if err != nil {
		return nil, merrors.Wrap(merrors.Internal, "cmd.audit_writer", err)
	}
	return audit.NewWriter(path), nil
}

func appendAudit(w *audit.Writer, rec audit.Record) {
	if w == nil {
		return
	}
	_ = w.Append(rec)
}
