// SPDX-FileCopyrightText: 2026 Panoptes contributors
//
// SPDX-License-Identifier: Apache-2.0

package k8s

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/panoptes-k8s/panoptes/pkg/config"
	kubeutils "github.com/panoptes-k8s/panoptes/pkg/kubernetes/utils"
	"github.com/panoptes-k8s/panoptes/pkg/provider"
	"github.com/panoptes-k8s/panoptes/pkg/rule"
	"github.com/panoptes-k8s/panoptes/pkg/ruleset"
	sharedprovider "github.com/panoptes-k8s/panoptes/pkg/shared/provider"
)

const (
	// ProviderID is a constant containing the id of the Kubernetes provider.
	ProviderID = "k8s"
	// ProviderName is a constant containing the user-friendly name of the Kubernetes provider.
	ProviderName = "Kubernetes"
)

// Provider is a Kubernetes cluster provider that can
// be used to run rules against namespaces of a kubernetes cluster.
type Provider struct {
	id, name string
	Config   *rest.Config
	rulesets map[string]ruleset.Ruleset
	metadata map[string]string
	logger   sharedprovider.Logger
}

type providerArgs struct {
	KubeconfigPath string `json:"kubeconfigPath" yaml:"kubeconfigPath"`
}

type inClusterConfigGetter func() (*rest.Config, error)

var inClusterConfigFunc inClusterConfigGetter = rest.InClusterConfig

var _ provider.Provider = &Provider{}

// New creates a new Provider.
func New(options ...CreateOption) (*Provider, error) {
	p := &Provider{
		rulesets: make(map[string]ruleset.Ruleset),
	}
	for _, o := range options {
		o(p)
	}

	var err error
	if p.Config == nil {
		err = errors.Join(err, errors.New("cluster config is nil"))
	}

	if err != nil {
		return nil, err
	}

	return p, nil
}

// RunAll executes all Rulesets registered with the Provider.
func (p *Provider) RunAll(ctx context.Context) (provider.ProviderResult, error) {
	return sharedprovider.RunAll(ctx, p, p.rulesets, p.Logger())
}

func rulesetKey(rulesetID, rulesetVersion string) string {
	return rulesetID + "--" + rulesetVersion
}

// RunRuleset executes all Rules of a known Ruleset.
func (p *Provider) RunRuleset(ctx context.Context, rulesetID, rulesetVersion string) (ruleset.RulesetResult, error) {
	rs, ok := p.rulesets[rulesetKey(rulesetID, rulesetVersion)]
	if !ok {
		return ruleset.RulesetResult{}, fmt.Errorf("ruleset with id %s and version %s does not exist", rulesetID, rulesetVersion)
	}
	return rs.Run(ctx)
}

// RunRule executes specific Rule of a known Ruleset.
func (p *Provider) RunRule(ctx context.Context, rulesetID, rulesetVersion, ruleID string) (rule.RuleResult, error) {
	rs, ok := p.rulesets[rulesetKey(rulesetID, rulesetVersion)]
	if !ok {
		return rule.RuleResult{}, fmt.Errorf("ruleset with id %s and version %s does not exist", rulesetID, rulesetVersion)
	}

	return rs.RunRule(ctx, ruleID)
}

// AddRulesets adds Rulesets to Provider.
func (p *Provider) AddRulesets(rulesets ...ruleset.Ruleset) error {
	for _, r := range rulesets {
		key := rulesetKey(r.ID(), r.Version())
		if _, ok := p.rulesets[key]; ok {
			return fmt.Errorf("ruleset with id %s and version %s already exists", r.ID(), r.Version())
		}
		p.rulesets[key] = r
	}
	return nil
}

// ID returns the id of the Provider.
func (p *Provider) ID() string {
	return p.id
}

// Name returns the name of the Provider.
func (p *Provider) Name() string {
	return p.name
}

// Metadata returns the metadata of the Provider.
func (p *Provider) Metadata() map[string]string {
	if p.metadata == nil {
		p.metadata = map[string]string{}
	}
	return p.metadata
}

// FromGenericConfig creates a Provider from ProviderConfig.
func FromGenericConfig(providerConf config.ProviderConfig) (*Provider, error) {
	providerArgsByte, err := json.Marshal(providerConf.Args)
	if err != nil {
		return nil, err
	}

	var providerArgs providerArgs
	if err := json.Unmarshal(providerArgsByte, &providerArgs); err != nil {
		return nil, err
	}

	kubeconfig, err := loadConfig(providerArgs)
	if err != nil {
		return nil, err
	}

	p, err := New(
		WithID(providerConf.ID),
		WithName(providerConf.Name),
		WithConfig(kubeconfig),
		WithMetadata(providerConf.Metadata),
	)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// Logger returns the Provider's logger.
// If not set it set it to slog.Default().With("provider", p.ID()) then return it.
func (p *Provider) Logger() sharedprovider.Logger {
	if p.logger == nil {
		p.logger = slog.Default().With("provider", p.ID())
	}
	return p.logger
}

func loadConfig(args providerArgs) (*rest.Config, error) {
	// A kubeconfig path provided via the provider args takes precedence.
	if len(args.KubeconfigPath) > 0 {
		return kubeutils.RESTConfigFromFile(args.KubeconfigPath)
	}

	// Fall back to the KUBECONFIG environment variable.
	if kubeconfigPath := os.Getenv(clientcmd.RecommendedConfigPathEnvVar); len(kubeconfigPath) > 0 {
		return kubeutils.RESTConfigFromFile(kubeconfigPath)
	}

	// Use the in-cluster configuration when no kubeconfig is provided.
	kubeconfig, err := inClusterConfigFunc()
	if err != nil {
		return nil, fmt.Errorf("failed to load in-cluster configuration: %w", err)
	}

	if len(kubeconfig.CAData) == 0 && len(kubeconfig.CAFile) > 0 {
		if kubeconfig.CAData, err = os.ReadFile(kubeconfig.CAFile); err != nil {
			return nil, fmt.Errorf("failed to load in-cluster configuration: %w", err)
		}
	}

	return kubeconfig, nil
}
