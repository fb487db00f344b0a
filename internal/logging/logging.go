// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package logging builds the structured logger used by the daemon and CLI
// commands running in verbose mode. Every field value that might carry a
// credential passes through internal/redact before it reaches a log line.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/multigit-io/multigit/internal/redact"
)

// Config controls logger construction.
type Config struct {
	// Verbose lowers the level to debug; otherwise info.
	Verbose bool
	// JSON selects the JSON encoder (for daemon log files and --json mode);
	// otherwise a human-readable console encoder is used.
	JSON bool
	// Output is where log lines are written. Defaults to os.Stderr.
	Output io.Writer
}

// New builds a zap.Logger per Config. The returned logger's Sync should be
// deferred by the caller.
func New(cfg Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Verbose {
		level = zapcore.DebugLevel
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.TimeKey = "ts"

	var encoder zapcore.Encoder
	if cfg.JSON {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(out), level)
	return zap.New(core), nil
}

// Redacted returns a zap.String field whose value has been passed through
// internal/redact, for any field whose content may originate from
// user-supplied config, URLs, or provider error bodies.
func Redacted(key, value string) zap.Field {
	return zap.String(key, redact.String(value))
}
