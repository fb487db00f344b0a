// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package orchestrator

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/multigit-io/multigit/internal/config"
	"github.com/multigit-io/multigit/internal/gitengine"
	"github.com/multigit-io/multigit/internal/merrors"
	"github.com/multigit-io/multigit/internal/secret"
	"github.com/multigit-io/multigit/pkg/conflict"
	"github.com/multigit-io/multigit/pkg/provider"
)

// Syncer is the central state machine of a MultiGit command: it fans a
// push, fetch, or sync out across a repository's enabled remotes with a
// bounded worker count and aggregates the per-remote outcomes.
type Syncer struct {
	RepoPath string
	Secrets  secret.Store
	Timeout  time.Duration
}

// NewSyncer builds a Syncer against the repository at repoPath, resolving
// credentials through secrets. A zero Timeout falls back to
// gitengine.DefaultTimeout per task.
func NewSyncer(repoPath string, secrets secret.Store) *Syncer {
	return &Syncer{RepoPath: repoPath, Secrets: secrets}
}

// PushAll pushes branch to every remote in remotes, bounded to
// settings.max_parallel concurrent tasks. force passes straight through to
// the underlying git push, permitting non-fast-forward updates.
func (s *Syncer) PushAll(ctx context.Context, branch string, remotes []config.RemoteSpec, maxParallel int, force bool) Aggregate {
	return s.run(ctx, remotes, maxParallel, func(ctx context.Context, r config.RemoteSpec) Result {
		return s.pushOne(ctx, branch, r, force)
	})
}

// FetchAll fetches every remote in remotes, bounded to settings.max_parallel
// concurrent tasks.
func (s *Syncer) FetchAll(ctx context.Context, remotes []config.RemoteSpec, maxParallel int) Aggregate {
	return s.run(ctx, remotes, maxParallel, s.fetchOne)
}

// Sync runs the full pipeline: a clean-worktree pre-flight (skipped when
// force is set), fetch-all, conflict detection, then push-all.
//
// force bypasses both the pre-flight check and the conflict report's push
// gate (the report is still computed and returned for advisory display —
// force never suppresses visibility into what it is overriding). Without
// force, push-all only runs when the report permits it (AllClear) and
// dryRun is false.
func (s *Syncer) Sync(ctx context.Context, branch string, remotes []config.RemoteSpec, cfg config.Sync, maxParallel int, dryRun, force bool) (Aggregate, conflict.Report, error) {
	if !force {
		h, err := gitengine.Open(s.RepoPath)
		if err != nil {
			return Aggregate{}, conflict.Report{}, err
		}
		clean, err := h.WorkingDirClean()
		if err != nil {
			return Aggregate{}, conflict.Report{}, err
		}
		if !clean {
			return Aggregate{}, conflict.Report{}, merrors.New(merrors.Conflict, "orchestrator.sync", "working directory is not clean")
		}
	}

	fetchAgg := s.FetchAll(ctx, remotes, maxParallel)

	h, err := gitengine.Open(s.RepoPath)
	if err != nil {
		return fetchAgg, conflict.Report{}, err
	}
	names := make([]string, 0, len(remotes))
	for _, r := range remotes {
		names = append(names, r.Name)
	}
	report, err := conflict.Detect(ctx, h, branch, names, cfg)
	if err != nil {
		return fetchAgg, conflict.Report{}, err
	}

	if dryRun || (!force && !report.AllClear()) {
		return fetchAgg, report, nil
	}

	pushAgg := s.PushAll(ctx, branch, remotes, maxParallel, force)
	return pushAgg, report, nil
}

// run is the shared fan-out/aggregate loop: a counting semaphore (via
// errgroup.SetLimit) bounds concurrency to maxParallel, each task runs task
// under a retry wrapper, and results are written back by index so the
// aggregate preserves remotes' input order regardless of completion order.
func (s *Syncer) run(ctx context.Context, remotes []config.RemoteSpec, maxParallel int, task func(context.Context, config.RemoteSpec) Result) Aggregate {
	results := make([]Result, len(remotes))

	g, gctx := errgroup.WithContext(ctx)
	if maxParallel > 0 {
		g.SetLimit(maxParallel)
	}

	for i, remote := range remotes {
		i, remote := i, remote
		g.Go(func() error {
			results[i] = s.withRetry(gctx, remote, task)
			return nil // never fail fast: aggregation is mandatory
		})
	}
	_ = g.Wait()

	var agg Aggregate
	for _, r := range results {
		agg.add(r)
	}
	return agg
}

// withRetry runs task once, and if it fails with a retryable error kind,
// sleeps a capped exponential backoff and retries exactly once more.
func (s *Syncer) withRetry(ctx context.Context, remote config.RemoteSpec, task func(context.Context, config.RemoteSpec) Result) Result {
	result := task(ctx, remote)
	if result.Success || !retryable(resultErr(result)) {
		return result
	}

	select {
	case <-time.After(backoff(0)):
	case <-ctx.Done():
		return result
	}
	return task(ctx, remote)
}

// resultErr reconstructs a classifiable error from a Result's ErrorKind so
// withRetry can reuse merrors.Kind.Retryable() without task() returning a
// raw error alongside Result.
func resultErr(r Result) error {
	if r.Success || r.ErrorKind == "" {
		return nil
	}
	return merrors.New(r.ErrorKind, "orchestrator", r.Message)
}

func (s *Syncer) credentialFor(ctx context.Context, remote config.RemoteSpec) (provider.Credential, error) {
	host, err := secret.DeriveHost(remote.Provider, remote.APIURL)
	if err != nil {
		return provider.Credential{}, merrors.Wrap(merrors.Auth, "orchestrator.credential", err)
	}
	token, err := s.Secrets.Retrieve(ctx, remote.Provider, host, remote.Username)
	if err != nil {
		return provider.Credential{}, merrors.Wrap(merrors.Auth, "orchestrator.credential", err)
	}
	return provider.Credential{Provider: remote.Provider, Host: host, Username: remote.Username, Token: token}, nil
}

func (s *Syncer) pushOne(ctx context.Context, branch string, remote config.RemoteSpec, force bool) Result {
	start := time.Now()

	cred, err := s.credentialFor(ctx, remote)
	if err != nil {
		return errResult(remote.Name, start, err)
	}

	h, err := gitengine.Open(s.RepoPath)
	if err != nil {
		return errResult(remote.Name, start, err)
	}

	refspec := fmt.Sprintf("refs/heads/%s:refs/heads/%s", branch, branch)
	outcome, err := h.Push(ctx, remote.Name, refspec, cred, s.Timeout, force)
	if err != nil {
		return errResult(remote.Name, start, err)
	}

	return Result{
		Remote:     remote.Name,
		Success:    true,
		DurationMS: time.Since(start).Milliseconds(),
		Message:    fmt.Sprintf("pushed %s (%d bytes, %s)", branch, outcome.Bytes, outcome.Duration),
	}
}

func (s *Syncer) fetchOne(ctx context.Context, remote config.RemoteSpec) Result {
	start := time.Now()

	cred, err := s.credentialFor(ctx, remote)
	if err != nil {
		return errResult(remote.Name, start, err)
	}

	h, err := gitengine.Open(s.RepoPath)
	if err != nil {
		return errResult(remote.Name, start, err)
	}

	outcome, err := h.Fetch(ctx, remote.Name, cred, s.Timeout)
	if err != nil {
		return errResult(remote.Name, start, err)
	}

	updates := len(outcome.UpdatedRefs)
	return Result{
		Remote:     remote.Name,
		Success:    true,
		DurationMS: time.Since(start).Milliseconds(),
		Message:    fmt.Sprintf("fetched %d updated refs", updates),
		Updates:    &updates,
	}
}

func errResult(remote string, start time.Time, err error) Result {
	return Result{
		Remote:     remote,
		Success:    false,
		DurationMS: time.Since(start).Milliseconds(),
		Message:    err.Error(),
		ErrorKind:  merrors.KindOf(err),
	}
}
