// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package gitengine

import (
	"context"
	"errors"
	"io"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"

	"github.com/multigit-io/multigit/pkg/provider"
)

// PushOutcome reports the size and duration of a completed push.
type PushOutcome struct {
	Bytes    int64
	Duration time.Duration
}

// Push runs `git push <remoteName> <refspec>` against the repository,
// authenticating with cred and bounding the call to timeout (DefaultTimeout
// when zero). A non-fast-forward rejection surfaces as a NonFastForward
// merrors.Error unless force is set.
func (h *RepoHandle) Push(ctx context.Context, remoteName, refspec string, cred provider.Credential, timeout time.Duration, force bool) (*PushOutcome, error) {
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

	rs := config.RefSpec(refspec)
	if force && len(refspec) > 0 && refspec[0] != '+' {
		rs = config.RefSpec("+" + refspec)
	}

	counter := &countingWriter{}

	pushCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err = h.repo.PushContext(pushCtx, &gogit.PushOptions{
		RemoteName: remoteName,
		RefSpecs:   []config.RefSpec{rs},
		Auth:       auth,
		Force:      force,
		Progress:   counter,
	})
	duration := time.Since(start)
	if err != nil {
		if errors.Is(err, gogit.NoErrAlreadyUpToDate) {
			return &PushOutcome{Bytes: 0, Duration: duration}, nil
		}
		return nil, classifyTransportErr("gitengine.push", pushCtx, err)
	}

	return &PushOutcome{Bytes: counter.n, Duration: duration}, nil
}

// countingWriter discards go-git's sideband progress text while counting the
// bytes written, giving Push a rough transfer-size estimate without parsing
// the progress protocol.
type countingWriter struct {
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	c.n += int64(len(p))
	return len(p), nil
}

var _ io.Writer = (*countingWriter)(nil)
