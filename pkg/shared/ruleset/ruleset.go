// SPDX-FileCopyrightText: 2026 Panoptes contributors
//
// SPDX-License-Identifier: Apache-2.0

package ruleset

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panoptes-k8s/panoptes/pkg/rule"
	"github.com/panoptes-k8s/panoptes/pkg/ruleset"
)

// Logger is a minimalistic logger interface.
type Logger interface {
	Info(string, ...any)
	Error(string, ...any)
}

// Run is a sample implementation for a [ruleset.Ruleset].
func Run(
	ctx context.Context,
	r ruleset.Ruleset,
	rules map[string]rule.Rule,
	numWorkers int,
	log Logger,
) (ruleset.RulesetResult, error) {
	if len(rules) == 0 {
		return ruleset.RulesetResult{}, fmt.Errorf("no rules are registered in the ruleset")
	}

	workers := 1
	if numWorkers > 0 {
		workers = numWorkers
	}

	result := ruleset.RulesetResult{
		RulesetName:    r.Name(),
		RulesetID:      r.ID(),
		RulesetVersion: r.Version(),
		RuleResults:    make([]rule.RuleResult, 0, len(rules)),
	}

	type run struct {
		result rule.RuleResult
		err    error
	}

	rulesCh := make(chan rule.Rule)
	resultCh := make(chan run)
	wg := sync.WaitGroup{}
	log.Info(fmt.Sprintf("ruleset will run %d rules with %d concurrent workers", len(rules), workers))
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			for rule := range rulesCh {
				log.Info(fmt.Sprintf("starting rule %s run", rule.ID()))
				res, err := rule.Run(ctx)
				res.RuleID = rule.ID()
				res.RuleName = rule.Name()
				resultCh <- run{result: res, err: err}
			}
			wg.Done()
		}()
	}

	go func() {
		defer close(rulesCh)
		for _, r := range rules {
			select {
			case rulesCh <- r:
			case <-ctx.Done():
				// Queued rules are not started anymore. Rules that are
				// already running return once their client calls observe
				// the cancellation.
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	var err error
	resultCount := 0
	for run := range resultCh {
		resultCount++
		remaining := len(rules) - resultCount
		finishMsg := fmt.Sprintf("finished rule %s run (%d remaining)", run.result.RuleID, remaining)
		if run.err != nil {
			log.Error(finishMsg, "error", run.err)
			err = errors.Join(err, fmt.Errorf("rule with id %s errored: %w", run.result.RuleID, run.err))
		} else {
			log.Info(finishMsg)
			result.RuleResults = append(result.RuleResults, run.result)
		}
	}

	// An interrupted run is discarded as a whole. Results of rules that
	// completed before the cancellation must not be mistaken for a full run.
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = errors.Join(err, fmt.Errorf("ruleset run was interrupted: %w", ctxErr))
	}

	if err != nil {
		return ruleset.RulesetResult{}, err
	}
	return result, nil
}
