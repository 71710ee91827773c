// SPDX-FileCopyrightText: 2026 Panoptes contributors
//
// SPDX-License-Identifier: Apache-2.0

package slogr

import (
	"context"
	"log/slog"

	"github.com/go-logr/logr"
)

var (
	_ logr.LogSink = &Slogr{}
)

// Slogr is a wrapper around [slog.Logger] to implement the [logr.LogSink] interface.
type Slogr struct {
	logger *slog.Logger
}

// NewLogr creates a new [logr.Logger] from a [slog.Logger].
func NewLogr(logger *slog.Logger) logr.Logger {
	return logr.New(Slogr{logger: logger})
}

// Enabled implmenents the [logr.LogSink] interface. Higher logr verbosity
// maps to lower slog levels, so V(1) and above are debug records.
func (s Slogr) Enabled(level int) bool {
	return s.logger.Enabled(context.Background(), slog.Level(-level))
}

// Error logs an error message.
func (s Slogr) Error(err error, msg string, keysAndValues ...any) {
	s.logger.Error(msg, append([]any{"error", err}, keysAndValues...)...)
}

// Info logs an info message at the level matching its logr verbosity.
func (s Slogr) Info(level int, msg string, keysAndValues ...any) {
	s.logger.Log(context.Background(), slog.Level(-level), msg, keysAndValues...)
}

// Init implments the [logr.LogSink] interface.
func (s Slogr) Init(_ logr.RuntimeInfo) {
}

// WithName returns a new [logr.Logger] with the specified  group name.
func (s Slogr) WithName(name string) logr.LogSink {
	s.logger = s.logger.WithGroup(name)
	return &s
}

// WithValues returns a new [logr.Logger] with the specified key-value pairs.
func (s Slogr) WithValues(keysAndValues ...any) logr.LogSink {
	s.logger = s.logger.With(keysAndValues...)
	return &s
}
