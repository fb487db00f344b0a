// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package daemon

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/multigit-io/multigit/internal/merrors"
)

// ErrAlreadyRunning is returned by AcquirePIDFile when a live daemon already
// holds the PID file.
var ErrAlreadyRunning = merrors.New(merrors.Conflict, "daemon.pidfile", "a daemon is already running")

// PIDFile guards single-instance daemon execution.
type PIDFile struct {
	path string
}

// AcquirePIDFile claims path for the current process. If path names an
// existing file whose PID is still alive, it returns ErrAlreadyRunning; a
// stale file (process no longer exists) is overwritten.
func AcquirePIDFile(path string) (*PIDFile, error) {
	if pid, ok := readAlivePID(path); ok {
		return nil, merrors.Wrap(merrors.Conflict, "daemon.pidfile", fmt.Errorf("daemon already running with pid %d", pid))
	}

	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o644); err != nil {
		return nil, merrors.Wrap(merrors.Internal, "daemon.pidfile", err)
	}
	return &PIDFile{path: path}, nil
}

// Release removes the PID file. Safe to call once after Acquire succeeds.
func (p *PIDFile) Release() error {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return merrors.Wrap(merrors.Internal, "daemon.pidfile", err)
	}
	return nil
}

// ReadPID reports the PID recorded at path and whether that process is
// still alive, for use by sibling CLI commands (daemon stop/status).
func ReadPID(path string) (int, bool) {
	return readAlivePID(path)
}

func readAlivePID(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	if !processAlive(pid) {
		return 0, false
	}
	return pid, true
}

// processAlive reports whether pid identifies a running process, using
// signal 0 which performs permission/existence checks without delivering
// anything.
func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}
