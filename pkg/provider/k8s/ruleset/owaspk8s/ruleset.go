// SPDX-FileCopyrightText: 2026 Panoptes contributors
//
// SPDX-License-Identifier: Apache-2.0

package owaspk8s

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"k8s.io/apimachinery/pkg/util/validation"
	"k8s.io/apimachinery/pkg/util/validation/field"
	"k8s.io/client-go/rest"
	"k8s.io/utils/ptr"

	"github.com/panoptes-k8s/panoptes/pkg/config"
	internalconfig "github.com/panoptes-k8s/panoptes/pkg/internal/config"
	"github.com/panoptes-k8s/panoptes/pkg/rule"
	"github.com/panoptes-k8s/panoptes/pkg/ruleset"
	sharedruleset "github.com/panoptes-k8s/panoptes/pkg/shared/ruleset"
)

const (
	// RulesetID is a constant containing the id of the OWASP Kubernetes Top Ten Ruleset.
	RulesetID = "owasp-kubernetes-top-ten"
	// RulesetName is a constant containing the user-friendly name of the OWASP Kubernetes Top Ten Ruleset.
	RulesetName = "OWASP Kubernetes Top Ten"
)

var (
	_ ruleset.Ruleset = &Ruleset{}
	// SupportedVersions is a list of available versions for the OWASP Kubernetes Top Ten Ruleset.
	// Versions are sorted from newest to oldest.
	SupportedVersions = []string{"v2022"}
)

// Ruleset implements the OWASP Kubernetes Top Ten.
type Ruleset struct {
	version    string
	rules      map[string]rule.Rule
	Config     *rest.Config
	numWorkers int
	args       Args
	logger     *slog.Logger
}

// Args are Ruleset specific arguments.
type Args struct {
	Namespace  string `json:"namespace" yaml:"namespace"`
	MaxRetries *int   `json:"maxRetries" yaml:"maxRetries"`
}

// New creates a new Ruleset.
func New(options ...CreateOption) (*Ruleset, error) {
	r := &Ruleset{
		rules:      map[string]rule.Rule{},
		numWorkers: 5,
		args: Args{
			Namespace:  "default",
			MaxRetries: ptr.To(1),
		},
	}

	for _, o := range options {
		o(r)
	}

	return r, nil
}

// ID returns the id of the Ruleset.
func (r *Ruleset) ID() string {
	return RulesetID
}

// Name returns the name of the Ruleset.
func (r *Ruleset) Name() string {
	return RulesetName
}

// Version returns the version of the Ruleset.
func (r *Ruleset) Version() string {
	return r.version
}

// FromGenericConfig creates a Ruleset from a RulesetConfig
func FromGenericConfig(rulesetConfig config.RulesetConfig, clusterConfig *rest.Config, fldPath *field.Path) (*Ruleset, error) {
	rulesetArgsByte, err := json.Marshal(rulesetConfig.Args)
	if err != nil {
		return nil, err
	}

	var rulesetArgs Args
	if err := json.Unmarshal(rulesetArgsByte, &rulesetArgs); err != nil {
		return nil, err
	}

	if rulesetArgs.Namespace == "" {
		rulesetArgs.Namespace = "default"
	}
	if rulesetArgs.MaxRetries == nil {
		rulesetArgs.MaxRetries = ptr.To(1)
	}

	if err := validateArgs(rulesetArgs, fldPath.Child("args")); err != nil {
		return nil, err
	}

	ruleset, err := New(
		WithVersion(rulesetConfig.Version),
		WithConfig(clusterConfig),
		WithArgs(rulesetArgs),
	)
	if err != nil {
		return nil, err
	}

	var (
		ruleOptions        = make(map[string]config.RuleOptionsConfig)
		indexedRuleOptions = make(map[string]internalconfig.IndexedRuleOptionsConfig)
	)

	for index, opt := range rulesetConfig.RuleOptions {
		if _, ok := ruleOptions[opt.RuleID]; ok {
			return nil, fmt.Errorf("rule option for rule id: %s is already registered", opt.RuleID)
		}

		ruleOptions[opt.RuleID] = opt
		indexedRuleOptions[opt.RuleID] = internalconfig.IndexedRuleOptionsConfig{Index: index, RuleOptionsConfig: opt}
	}

	switch rulesetConfig.Version {
	case "v2022":
		if err := ruleset.validateV2022RuleOptions(indexedRuleOptions, fldPath.Child("ruleOptions")); err != nil {
			return nil, err
		}
		if err := ruleset.registerV2022Rules(ruleOptions); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown ruleset %s version: %s - use 'panoptes show provider k8s' to see the provider's supported rulesets", rulesetConfig.ID, rulesetConfig.Version)
	}

	return ruleset, nil
}

func validateArgs(args Args, fldPath *field.Path) error {
	var allErrs field.ErrorList

	if errs := validation.IsDNS1123Label(args.Namespace); len(errs) > 0 {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("namespace"), args.Namespace, strings.Join(errs, ", ")))
	}
	if *args.MaxRetries < 0 {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("maxRetries"), *args.MaxRetries, "must not be a negative number"))
	}

	return allErrs.ToAggregate()
}

// RunRule executes specific known Rule of the Ruleset.
func (r *Ruleset) RunRule(ctx context.Context, id string) (rule.RuleResult, error) {
	rr, ok := r.rules[id]
	if !ok {
		return rule.RuleResult{}, fmt.Errorf("rule with id %s is not registered in the ruleset", id)
	}

	return rr.Run(ctx)
}

// Run executes all known Rules of the Ruleset.
func (r *Ruleset) Run(ctx context.Context) (ruleset.RulesetResult, error) {
	return sharedruleset.Run(ctx, r, r.rules, r.numWorkers, r.Logger())
}

// AddRules adds Rules to the Ruleset.
func (r *Ruleset) AddRules(rules ...rule.Rule) error {
	for _, rr := range rules {
		if _, ok := r.rules[rr.ID()]; ok {
			return fmt.Errorf("rule with id %s already exists", rr.ID())
		}
		r.rules[rr.ID()] = rr
	}
	return nil
}

// Logger returns the Ruleset's logger.
// If not set it set it to slog.Default().With("ruleset", r.ID(), "version", r.Version() then return it.
func (r *Ruleset) Logger() *slog.Logger {
	if r.logger == nil {
		r.logger = slog.Default().With("ruleset", r.ID(), "version", r.Version())
	}
	return r.logger
}
