// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package orchestrator

import (
	"math/rand"
	"time"

	"github.com/multigit-io/multigit/internal/merrors"
)

// maxRetryBackoff is the cap spec §4.6 places on the orchestrator's retry
// backoff, distinct from (and lower than) pkg/ratelimit's own 60s API-level
// backoff cap.
const maxRetryBackoff = 30 * time.Second

// backoff returns the exponential-with-jitter delay before the retry
// attempt-th attempt (0-indexed), capped at maxRetryBackoff.
func backoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := time.Duration(1<<uint(attempt)) * time.Second
	if d > maxRetryBackoff {
		d = maxRetryBackoff
	}
	jitter := time.Duration(rand.Float64() * float64(d) * 0.1)
	return d + jitter
}

// retryable reports whether a task-level error may be retried once, per
// spec §4.6: Network, Timeout, and RateLimited are retryable; everything
// else (Auth, NonFastForward, NotFound, ...) is terminal for that task.
func retryable(err error) bool {
	return merrors.KindOf(err).Retryable()
}
