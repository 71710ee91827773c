// SPDX-FileCopyrightText: 2026 Panoptes contributors
//
// SPDX-License-Identifier: Apache-2.0

package ruleset_test

import (
	"context"
	"errors"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/panoptes-k8s/panoptes/pkg/rule"
	"github.com/panoptes-k8s/panoptes/pkg/ruleset"
	sharedruleset "github.com/panoptes-k8s/panoptes/pkg/shared/ruleset"
)

var _ = Describe("ruleset", func() {
	var (
		ctx = context.TODO()
		rs  = &testRuleset{}
	)

	Describe("#Run", func() {
		It("should return error when no rules are registered", func() {
			_, err := sharedruleset.Run(ctx, rs, map[string]rule.Rule{}, 1, testLogger)

			Expect(err).To(MatchError("no rules are registered in the ruleset"))
		})

		It("should collect the results of all rules", func() {
			rules := map[string]rule.Rule{
				"1": &testRule{id: "1", name: "Rule 1"},
				"2": &testRule{id: "2", name: "Rule 2"},
				"3": &testRule{id: "3", name: "Rule 3"},
			}

			res, err := sharedruleset.Run(ctx, rs, rules, 2, testLogger)

			Expect(err).ToNot(HaveOccurred())
			Expect(res.RulesetID).To(Equal("fake-ruleset"))
			Expect(res.RulesetName).To(Equal("Fake Ruleset"))
			Expect(res.RulesetVersion).To(Equal("v1"))
			Expect(res.RuleResults).To(ConsistOf(
				rule.RuleResult{RuleID: "1", RuleName: "Rule 1", CheckResults: []rule.CheckResult{rule.PassedCheckResult("ok", rule.NewTarget())}},
				rule.RuleResult{RuleID: "2", RuleName: "Rule 2", CheckResults: []rule.CheckResult{rule.PassedCheckResult("ok", rule.NewTarget())}},
				rule.RuleResult{RuleID: "3", RuleName: "Rule 3", CheckResults: []rule.CheckResult{rule.PassedCheckResult("ok", rule.NewTarget())}},
			))
		})

		It("should run rules sequentially when the number of workers is not positive", func() {
			var (
				mu      sync.Mutex
				current int
				peak    int
			)
			track := func(_ context.Context) (rule.RuleResult, error) {
				mu.Lock()
				current++
				if current > peak {
					peak = current
				}
				mu.Unlock()
				time.Sleep(10 * time.Millisecond)
				mu.Lock()
				current--
				mu.Unlock()
				return rule.RuleResult{}, nil
			}
			rules := map[string]rule.Rule{
				"1": &testRule{id: "1", name: "Rule 1", run: track},
				"2": &testRule{id: "2", name: "Rule 2", run: track},
				"3": &testRule{id: "3", name: "Rule 3", run: track},
			}

			res, err := sharedruleset.Run(ctx, rs, rules, 0, testLogger)

			Expect(err).ToNot(HaveOccurred())
			Expect(res.RuleResults).To(HaveLen(3))
			Expect(peak).To(Equal(1))
		})

		It("should discard all results when a rule errors", func() {
			rules := map[string]rule.Rule{
				"good": &testRule{id: "good", name: "Good Rule"},
				"bad": &testRule{id: "bad", name: "Bad Rule", run: func(_ context.Context) (rule.RuleResult, error) {
					return rule.RuleResult{}, errors.New("boom")
				}},
			}

			res, err := sharedruleset.Run(ctx, rs, rules, 1, testLogger)

			Expect(err).To(MatchError(ContainSubstring("rule with id bad errored: boom")))
			Expect(res).To(Equal(ruleset.RulesetResult{}))
		})

		It("should discard the results of an interrupted run", func() {
			runCtx, cancel := context.WithCancel(context.Background())
			defer cancel()
			rules := map[string]rule.Rule{
				"1": &testRule{id: "1", name: "Rule 1", run: func(_ context.Context) (rule.RuleResult, error) {
					cancel()
					return rule.RuleResult{}, nil
				}},
			}

			res, err := sharedruleset.Run(runCtx, rs, rules, 1, testLogger)

			Expect(err).To(MatchError(ContainSubstring("ruleset run was interrupted")))
			Expect(res).To(Equal(ruleset.RulesetResult{}))
		})
	})
})

var (
	_ ruleset.Ruleset = &testRuleset{}
	_ rule.Rule       = &testRule{}
)

type testRuleset struct{}

func (*testRuleset) ID() string {
	return "fake-ruleset"
}

func (*testRuleset) Name() string {
	return "Fake Ruleset"
}

func (*testRuleset) Version() string {
	return "v1"
}

func (*testRuleset) Run(_ context.Context) (ruleset.RulesetResult, error) {
	return ruleset.RulesetResult{}, nil
}

func (*testRuleset) RunRule(_ context.Context, _ string) (rule.RuleResult, error) {
	return rule.RuleResult{}, nil
}

type testRule struct {
	id, name string
	run      func(ctx context.Context) (rule.RuleResult, error)
}

func (r *testRule) ID() string {
	return r.id
}

func (r *testRule) Name() string {
	return r.name
}

func (r *testRule) Run(ctx context.Context) (rule.RuleResult, error) {
	if r.run != nil {
		return r.run(ctx)
	}
	return rule.Result(r, rule.PassedCheckResult("ok", rule.NewTarget())), nil
}
