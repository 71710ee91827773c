// SPDX-FileCopyrightText: 2026 Panoptes contributors
//
// SPDX-License-Identifier: Apache-2.0

package provider

import (
	"context"

	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/panoptes-k8s/panoptes/pkg/config"
	"github.com/panoptes-k8s/panoptes/pkg/metadata"
	"github.com/panoptes-k8s/panoptes/pkg/rule"
	"github.com/panoptes-k8s/panoptes/pkg/ruleset"
)

// Provider defines a Panoptes provider.
type Provider interface {
	ID() string
	Name() string
	Metadata() map[string]string
	RunAll(ctx context.Context) (ProviderResult, error)
	RunRuleset(ctx context.Context, rulesetID, rulesetVersion string) (ruleset.RulesetResult, error)
	RunRule(ctx context.Context, rulesetID, rulesetVersion, ruleID string) (rule.RuleResult, error)
}

// ProviderResult is the result of a provider run.
type ProviderResult struct {
	ProviderID     string
	ProviderName   string
	Metadata       map[string]string
	RulesetResults []ruleset.RulesetResult
}

// ProviderFromConfigFunc constructs a Provider from ProviderConfig.
type ProviderFromConfigFunc func(conf config.ProviderConfig, fldPath *field.Path) (Provider, error)

// MetadataFunc constructs a detailed Provider metadata object.
type MetadataFunc func() metadata.ProviderDetailed

// ProviderOption constructs a pair of a configuration and metadata function for a specific provider.
type ProviderOption struct {
	ProviderFromConfigFunc
	MetadataFunc
}
