// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package gitengine

import (
	"context"
	"errors"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"

	"github.com/multigit-io/multigit/internal/merrors"
	"github.com/multigit-io/multigit/pkg/provider"
)

// FetchOutcome reports the references a fetch updated.
type FetchOutcome struct {
	UpdatedRefs []string
}

// Fetch runs `git fetch <remoteName>` against the repository, authenticating
// with cred and bounding the call to timeout (DefaultTimeout when zero).
func (h *RepoHandle) Fetch(ctx context.Context, remoteName string, cred provider.Credential, timeout time.Duration) (*FetchOutcome, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	remoteURL, err := h.RemoteURL(remoteName)
	if err != nil {
		return nil, err
	}
	auth, err := buildAuth(remoteURL, cred)
	if err != nil {
		return nil, err
	}

	before := h.snapshotRefs()

	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err = h.repo.FetchContext(fetchCtx, &gogit.FetchOptions{
		RemoteName: remoteName,
		Auth:       auth,
		RefSpecs:   []config.RefSpec{config.RefSpec("+refs/heads/*:refs/remotes/" + remoteName + "/*")},
		Tags:       gogit.AllTags,
	})
	if err != nil {
		if errors.Is(err, gogit.NoErrAlreadyUpToDate) {
			return &FetchOutcome{UpdatedRefs: nil}, nil
		}
		return nil, classifyTransportErr("gitengine.fetch", fetchCtx, err)
	}

	after := h.snapshotRefs()
	return &FetchOutcome{UpdatedRefs: diffRefs(before, after)}, nil
}

func (h *RepoHandle) snapshotRefs() map[string]plumbing.Hash {
	refs := make(map[string]plumbing.Hash)
	iter, err := h.repo.References()
	if err != nil {
		return refs
	}
	_ = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() == plumbing.HashReference {
			refs[ref.Name().String()] = ref.Hash()
		}
		return nil
	})
	return refs
}

func diffRefs(before, after map[string]plumbing.Hash) []string {
	var updated []string
	for name, hash := range after {
		if prior, ok := before[name]; !ok || prior != hash {
			updated = append(updated, name)
		}
	}
	return updated
}

// classifyTransportErr maps a go-git transport/operation error to a merrors
// Kind the orchestrator's retry policy understands.
func classifyTransportErr(op string, ctx context.Context, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return merrors.Wrap(merrors.Timeout, op, err)
	}
	switch {
	case errors.Is(err, transport.ErrAuthenticationRequired),
		errors.Is(err, transport.ErrAuthorizationFailed),
		errors.Is(err, transport.ErrInvalidAuthMethod):
		return merrors.Wrap(merrors.Auth, op, err)
	case errors.Is(err, transport.ErrRepositoryNotFound):
		return merrors.Wrap(merrors.NotFound, op, err)
	case errors.Is(err, gogit.ErrNonFastForwardUpdate):
		return merrors.Wrap(merrors.NonFastForward, op, err)
	default:
		return merrors.Wrap(merrors.Network, op, err)
	}
}
