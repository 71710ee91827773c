// SPDX-FileCopyrightText: 2026 Panoptes contributors
//
// SPDX-License-Identifier: Apache-2.0

package monitor

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/panoptes-k8s/panoptes/pkg/provider"
	"github.com/panoptes-k8s/panoptes/pkg/rule"
)

// Monitor periodically runs providers against a cluster
// and writes their findings to a writer.
type Monitor struct {
	providers []provider.Provider
	interval  time.Duration
	minStatus rule.Status
	writer    io.Writer
	logger    *slog.Logger
}

// New creates a new [Monitor].
func New(options ...CreateOption) *Monitor {
	monitor := &Monitor{
		interval:  30 * time.Second,
		minStatus: rule.Passed,
		writer:    os.Stdout,
	}

	for _, o := range options {
		o(monitor)
	}

	return monitor
}

// Logger returns the Monitor's logger.
// If not set it set it to slog.Default() then return it.
func (m *Monitor) Logger() *slog.Logger {
	if m.logger == nil {
		m.logger = slog.Default()
	}
	return m.logger
}

// Run scans once immediately, then once per interval
// until the context is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		if err := m.Scan(ctx); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Scan runs all providers of the Monitor once and writes every check result
// at or above the minimal status as a single finding line. Errored check
// results are logged and never written to the findings writer.
func (m *Monitor) Scan(ctx context.Context) error {
	log := m.Logger().With("cycle_id", uuid.New().String())
	log.Info(fmt.Sprintf("scan will run %d providers", len(m.providers)))

	for _, p := range m.providers {
		providerResult, err := p.RunAll(ctx)
		if err != nil {
			log.Error(fmt.Sprintf("finished provider %s run", p.ID()), "error", err)
			continue
		}

		for _, rulesetResult := range providerResult.RulesetResults {
			// Rule results arrive in worker completion order. Sort them
			// so that consecutive scans of an unchanged cluster produce
			// identical output.
			slices.SortFunc(rulesetResult.RuleResults, func(a, b rule.RuleResult) int {
				return cmp.Compare(a.RuleID, b.RuleID)
			})

			for _, ruleResult := range rulesetResult.RuleResults {
				for _, checkResult := range ruleResult.CheckResults {
					if checkResult.Status == rule.Errored {
						log.Error(checkResult.Message, "provider", p.ID(), "ruleset", rulesetResult.RulesetID, "version", rulesetResult.RulesetVersion, "rule_id", ruleResult.RuleID)
						continue
					}

					if checkResult.Status.Less(m.minStatus) {
						continue
					}

					if _, err := fmt.Fprintln(m.writer, findingLine(ruleResult.RuleID, checkResult)); err != nil {
						return fmt.Errorf("failed to write finding: %w", err)
					}
				}
			}
		}
	}
	return nil
}

func findingLine(ruleID string, checkResult rule.CheckResult) string {
	if len(checkResult.Target) == 0 {
		return fmt.Sprintf("[%s] %s", ruleID, checkResult.Message)
	}
	return fmt.Sprintf("[%s] %s [%s]", ruleID, checkResult.Message, checkResult.Target)
}
