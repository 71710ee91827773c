// SPDX-FileCopyrightText: 2026 Panoptes contributors
//
// SPDX-License-Identifier: Apache-2.0

package monitor

import (
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/panoptes-k8s/panoptes/pkg/provider"
	"github.com/panoptes-k8s/panoptes/pkg/rule"
)

// CreateOption is a function that acts on a [Monitor]
// and is used to construct such objects.
type CreateOption func(*Monitor)

// WithProviders sets the providers of a [Monitor].
func WithProviders(providers ...provider.Provider) CreateOption {
	return func(m *Monitor) {
		m.providers = providers
	}
}

// WithInterval sets the scan interval of a [Monitor].
func WithInterval(interval time.Duration) CreateOption {
	return func(m *Monitor) {
		if interval <= 0 {
			panic("interval should be a positive duration")
		}
		m.interval = interval
	}
}

// WithMinStatus sets the minimal written status of a [Monitor].
// Unknown statuses are ignored.
func WithMinStatus(minStatus rule.Status) CreateOption {
	return func(m *Monitor) {
		if slices.Contains(rule.Statuses(), minStatus) {
			m.minStatus = minStatus
		}
	}
}

// WithWriter sets the findings writer of a [Monitor].
func WithWriter(writer io.Writer) CreateOption {
	return func(m *Monitor) {
		m.writer = writer
	}
}

// WithLogger the logger of a [Monitor].
func WithLogger(logger *slog.Logger) CreateOption {
	return func(m *Monitor) {
		m.logger = logger
	}
}
