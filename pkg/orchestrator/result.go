// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package orchestrator

import (
	"github.com/multigit-io/multigit/internal/merrors"
)

// Result is the outcome of one task against one remote.
type Result struct {
	Remote     string
	Success    bool
	DurationMS int64
	Message    string
	Updates    *int
	ErrorKind  merrors.Kind
}

// Aggregate collects per-remote Results, counting how many succeeded.
// AllSucceeded reflects spec §8's "aggregate return code" property.
type Aggregate struct {
	Succeeded int
	Failed    int
	Results   []Result
}

// AllSucceeded reports whether every per-remote result succeeded.
func (a Aggregate) AllSucceeded() bool {
	return a.Failed == 0
}

func (a *Aggregate) add(r Result) {
	a.Results = append(a.Results, r)
	if r.Success {
		a.Succeeded++
	} else {
		a.Failed++
	}
}
