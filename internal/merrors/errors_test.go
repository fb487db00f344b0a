// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package merrors

import (
	"errors"
	"testing"
)

func TestWrapNil(t *testing.T) {
	if Wrap(Network, "op", nil) != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestKindOf(t *testing.T) {
	base := errors.New("boom")
	wrapped := Wrap(Timeout, "gitengine.push", base)

	if KindOf(wrapped) != Timeout {
		t.Errorf("KindOf() = %q, want %q", KindOf(wrapped), Timeout)
	}
	if !errors.Is(wrapped, base) {
		t.Error("errors.Is should see through Wrap to the underlying cause")
	}
}

func TestKindOfUnclassified(t *testing.T) {
	if KindOf(errors.New("plain")) != Internal {
		t.Error("an unclassified error should report Internal")
	}
	if KindOf(nil) != Kind("") {
		t.Error("a nil error should report the empty Kind")
	}
}

func TestRetryable(t *testing.T) {
	retryable := []Kind{Network, Timeout, RateLimited}
	for _, k := range retryable {
		if !k.Retryable() {
			t.Errorf("%q should be retryable", k)
		}
	}

	terminal := []Kind{Auth, NonFastForward, NotFound, Conflict, Config, Internal, BackendUnavailable}
	for _, k := range terminal {
		if k.Retryable() {
			t.Errorf("%q should not be retryable", k)
		}
	}
}
