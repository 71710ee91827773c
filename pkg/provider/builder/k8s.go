// SPDX-FileCopyrightText: 2026 Panoptes contributors
//
// SPDX-License-Identifier: Apache-2.0

package builder

import (
	"fmt"
	"log/slog"

	"k8s.io/apimachinery/pkg/util/validation/field"
	"k8s.io/client-go/rest"

	"github.com/panoptes-k8s/panoptes/pkg/config"
	"github.com/panoptes-k8s/panoptes/pkg/metadata"
	"github.com/panoptes-k8s/panoptes/pkg/provider"
	"github.com/panoptes-k8s/panoptes/pkg/provider/k8s"
	"github.com/panoptes-k8s/panoptes/pkg/provider/k8s/ruleset/owaspk8s"
	"github.com/panoptes-k8s/panoptes/pkg/ruleset"
)

// K8sProviderFromConfig returns a Provider from a [ProviderConfig].
func K8sProviderFromConfig(conf config.ProviderConfig, fldPath *field.Path) (provider.Provider, error) {
	p, err := k8s.FromGenericConfig(conf)
	if err != nil {
		return nil, err
	}

	rulesetsPath := fldPath.Child("rulesets")

	setConfigDefaults(p.Config)
	providerLogger := slog.Default().With("provider", p.ID())
	setLoggerFunc := k8s.WithLogger(providerLogger)
	setLoggerFunc(p)
	rulesets := make([]ruleset.Ruleset, 0, len(conf.Rulesets))
	for rulesetIdx, rulesetConfig := range conf.Rulesets {
		switch rulesetConfig.ID {
		case owaspk8s.RulesetID:
			ruleset, err := owaspk8s.FromGenericConfig(rulesetConfig, p.Config, rulesetsPath.Index(rulesetIdx))
			if err != nil {
				return nil, err
			}
			setLoggerOWASP := owaspk8s.WithLogger(providerLogger.With("ruleset", ruleset.ID(), "version", ruleset.Version()))
			setLoggerOWASP(ruleset)
			rulesets = append(rulesets, ruleset)
		default:
			return nil, fmt.Errorf("unknown ruleset identifier: %s", rulesetConfig.ID)
		}
	}

	if err := p.AddRulesets(rulesets...); err != nil {
		return nil, err
	}

	return p, nil
}

func setConfigDefaults(config *rest.Config) {
	if config.QPS <= 0 {
		config.QPS = 20
	}

	if config.Burst <= 0 {
		config.Burst = 40
	}
}

// k8sGetSupportedVersions returns the supported versions of a specific ruleset that is supported by the Kubernetes provider.
func k8sGetSupportedVersions(ruleset string) []string {
	switch ruleset {
	case owaspk8s.RulesetID:
		return owaspk8s.SupportedVersions
	default:
		return nil
	}
}

// K8sProviderMetadata returns available metadata for the Kubernetes Provider and it's supported rulesets.
func K8sProviderMetadata() metadata.ProviderDetailed {
	providerMetadata := metadata.ProviderDetailed{
		Provider: metadata.Provider{
			ID:   k8s.ProviderID,
			Name: k8s.ProviderName,
		},
		Rulesets: []metadata.Ruleset{
			{
				ID:   owaspk8s.RulesetID,
				Name: owaspk8s.RulesetName,
			},
		},
	}

	for i := range providerMetadata.Rulesets {
		supportedVersions := k8sGetSupportedVersions(providerMetadata.Rulesets[i].ID)
		for _, supportedVersion := range supportedVersions {
			providerMetadata.Rulesets[i].Versions = append(
				providerMetadata.Rulesets[i].Versions,
				metadata.Version{Version: supportedVersion, Latest: false},
			)
		}

		// Mark the first version as latest as the versions are sorted from newest to oldest
		if len(providerMetadata.Rulesets[i].Versions) > 0 {
			providerMetadata.Rulesets[i].Versions[0].Latest = true
		}
	}

	return providerMetadata
}
