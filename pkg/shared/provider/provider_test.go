// SPDX-FileCopyrightText: 2026 Panoptes contributors
//
// SPDX-License-Identifier: Apache-2.0

package provider_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/panoptes-k8s/panoptes/pkg/provider"
	"github.com/panoptes-k8s/panoptes/pkg/rule"
	"github.com/panoptes-k8s/panoptes/pkg/ruleset"
	sharedprovider "github.com/panoptes-k8s/panoptes/pkg/shared/provider"
)

var _ = Describe("provider", func() {
	var (
		ctx = context.TODO()
		p   *testProvider
	)

	BeforeEach(func() {
		p = &testProvider{
			id:       "test",
			name:     "Test Provider",
			metadata: map[string]string{"env": "prod"},
		}
	})

	Describe("#RunAll", func() {
		It("should return error when no rulesets are registered", func() {
			_, err := sharedprovider.RunAll(ctx, p, map[string]ruleset.Ruleset{}, testLogger)

			Expect(err).To(MatchError("no rulesets are registered with the provider"))
		})

		It("should collect the results of all rulesets", func() {
			rulesets := map[string]ruleset.Ruleset{
				"foo--v1": &stubRuleset{id: "foo", name: "Foo", version: "v1"},
				"bar--v2": &stubRuleset{id: "bar", name: "Bar", version: "v2"},
			}

			res, err := sharedprovider.RunAll(ctx, p, rulesets, testLogger)

			Expect(err).ToNot(HaveOccurred())
			Expect(res.ProviderID).To(Equal("test"))
			Expect(res.ProviderName).To(Equal("Test Provider"))
			Expect(res.Metadata).To(Equal(map[string]string{"env": "prod"}))
			Expect(res.RulesetResults).To(ConsistOf(
				ruleset.RulesetResult{RulesetID: "foo", RulesetName: "Foo", RulesetVersion: "v1"},
				ruleset.RulesetResult{RulesetID: "bar", RulesetName: "Bar", RulesetVersion: "v2"},
			))
		})

		It("should not share the metadata map of the provider", func() {
			rulesets := map[string]ruleset.Ruleset{
				"foo--v1": &stubRuleset{id: "foo", name: "Foo", version: "v1"},
			}

			res, err := sharedprovider.RunAll(ctx, p, rulesets, testLogger)
			Expect(err).ToNot(HaveOccurred())

			p.metadata["env"] = "dev"
			Expect(res.Metadata).To(Equal(map[string]string{"env": "prod"}))
		})

		It("should discard all results when a ruleset errors", func() {
			rulesets := map[string]ruleset.Ruleset{
				"good--v1": &stubRuleset{id: "good", name: "Good", version: "v1"},
				"bad--v1":  &stubRuleset{id: "bad", name: "Bad", version: "v1", err: errors.New("boom")},
			}

			res, err := sharedprovider.RunAll(ctx, p, rulesets, testLogger)

			Expect(err).To(MatchError(ContainSubstring("ruleset with id bad and version v1 errored: boom")))
			Expect(res).To(Equal(provider.ProviderResult{}))
		})

		It("should not run rulesets when the context is cancelled", func() {
			rulesets := map[string]ruleset.Ruleset{
				"foo--v1": &stubRuleset{id: "foo", name: "Foo", version: "v1"},
			}

			cancelledCtx, cancel := context.WithCancel(ctx)
			cancel()

			res, err := sharedprovider.RunAll(cancelledCtx, p, rulesets, testLogger)

			Expect(err).To(MatchError(ContainSubstring("provider run was interrupted")))
			Expect(res).To(Equal(provider.ProviderResult{}))
		})
	})
})

var (
	_ provider.Provider = &testProvider{}
	_ ruleset.Ruleset   = &stubRuleset{}
)

type testProvider struct {
	id, name string
	metadata map[string]string
}

func (p *testProvider) ID() string {
	return p.id
}

func (p *testProvider) Name() string {
	return p.name
}

func (p *testProvider) Metadata() map[string]string {
	return p.metadata
}

func (p *testProvider) RunAll(_ context.Context) (provider.ProviderResult, error) {
	return provider.ProviderResult{}, nil
}

func (p *testProvider) RunRuleset(_ context.Context, _, _ string) (ruleset.RulesetResult, error) {
	return ruleset.RulesetResult{}, nil
}

func (p *testProvider) RunRule(_ context.Context, _, _, _ string) (rule.RuleResult, error) {
	return rule.RuleResult{}, nil
}

type stubRuleset struct {
	id, name, version string
	err               error
}

func (r *stubRuleset) ID() string {
	return r.id
}

func (r *stubRuleset) Name() string {
	return r.name
}

func (r *stubRuleset) Version() string {
	return r.version
}

func (r *stubRuleset) Run(_ context.Context) (ruleset.RulesetResult, error) {
	if r.err != nil {
		return ruleset.RulesetResult{}, r.err
	}
	return ruleset.RulesetResult{RulesetID: r.id, RulesetName: r.name, RulesetVersion: r.version}, nil
}

func (r *stubRuleset) RunRule(_ context.Context, id string) (rule.RuleResult, error) {
	return rule.RuleResult{RuleID: id}, nil
}
