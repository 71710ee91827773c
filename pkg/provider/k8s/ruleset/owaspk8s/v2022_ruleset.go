// SPDX-FileCopyrightText: 2026 Panoptes contributors
//
// SPDX-License-Identifier: Apache-2.0

package owaspk8s

import (
	"encoding/json"
	"fmt"

	"k8s.io/apimachinery/pkg/util/validation/field"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/panoptes-k8s/panoptes/pkg/config"
	internalconfig "github.com/panoptes-k8s/panoptes/pkg/internal/config"
	"github.com/panoptes-k8s/panoptes/pkg/provider/k8s/ruleset/owaspk8s/rules"
	"github.com/panoptes-k8s/panoptes/pkg/rule"
	"github.com/panoptes-k8s/panoptes/pkg/rule/retry"
	"github.com/panoptes-k8s/panoptes/pkg/shared/kubernetes/option"
	"github.com/panoptes-k8s/panoptes/pkg/shared/ruleset/retryerrors"
)

func (r *Ruleset) registerV2022Rules(ruleOptions map[string]config.RuleOptionsConfig) error {
	c, err := client.New(r.Config, client.Options{})
	if err != nil {
		return err
	}

	optsK01, err := getV2022OptionOrNil[rules.OptionsK01](ruleOptions["K01"].Args)
	if err != nil {
		return fmt.Errorf("rule option K01 error: %s", err.Error())
	}
	optsK10, err := getV2022OptionOrNil[rules.OptionsK10](ruleOptions["K10"].Args)
	if err != nil {
		return fmt.Errorf("rule option K10 error: %s", err.Error())
	}

	rcTransientAPIErrors := retry.RetryConditionFromRegex(
		*retryerrors.APIServerUnreachableRegexp,
		*retryerrors.EtcdTimeoutRegexp,
		*retryerrors.TLSHandshakeTimeoutRegexp,
		*retryerrors.TooManyRequestsRegexp,
	)

	rules := []rule.Rule{
		retry.New(
			retry.WithLogger(r.Logger().With("rule_id", "K01")),
			retry.WithBaseRule(&rules.RuleK01{
				Client:    c,
				Namespace: r.args.Namespace,
				Options:   optsK01,
			}),
			retry.WithRetryCondition(rcTransientAPIErrors),
			retry.WithMaxRetries(*r.args.MaxRetries),
		),
		rule.NewSkipRule(
			"K02",
			"Supply Chain Vulnerabilities",
			"Not implemented.",
			rule.NotImplemented,
			rule.SkipRuleWithSeverity(rule.SeverityHigh),
		),
		retry.New(
			retry.WithLogger(r.Logger().With("rule_id", "K03")),
			retry.WithBaseRule(&rules.RuleK03{
				Client:    c,
				Namespace: r.args.Namespace,
			}),
			retry.WithRetryCondition(rcTransientAPIErrors),
			retry.WithMaxRetries(*r.args.MaxRetries),
		),
		rule.NewSkipRule(
			"K04",
			"Lack of Centralized Policy Enforcement",
			"Not implemented.",
			rule.NotImplemented,
			rule.SkipRuleWithSeverity(rule.SeverityMedium),
		),
		rule.NewSkipRule(
			"K05",
			"Inadequate Logging and Monitoring",
			"Not implemented.",
			rule.NotImplemented,
			rule.SkipRuleWithSeverity(rule.SeverityMedium),
		),
		rule.NewSkipRule(
			"K06",
			"Broken Authentication Mechanisms",
			"Not implemented.",
			rule.NotImplemented,
			rule.SkipRuleWithSeverity(rule.SeverityHigh),
		),
		retry.New(
			retry.WithLogger(r.Logger().With("rule_id", "K07")),
			retry.WithBaseRule(&rules.RuleK07{
				Client:    c,
				Namespace: r.args.Namespace,
			}),
			retry.WithRetryCondition(rcTransientAPIErrors),
			retry.WithMaxRetries(*r.args.MaxRetries),
		),
		rule.NewSkipRule(
			"K08",
			"Secrets Management Failures",
			"Not implemented.",
			rule.NotImplemented,
			rule.SkipRuleWithSeverity(rule.SeverityHigh),
		),
		rule.NewSkipRule(
			"K09",
			"Misconfigured Cluster Components",
			"Not implemented.",
			rule.NotImplemented,
			rule.SkipRuleWithSeverity(rule.SeverityMedium),
		),
		retry.New(
			retry.WithLogger(r.Logger().With("rule_id", "K10")),
			retry.WithBaseRule(&rules.RuleK10{
				Client:    c,
				Namespace: r.args.Namespace,
				Options:   optsK10,
			}),
			retry.WithRetryCondition(rcTransientAPIErrors),
			retry.WithMaxRetries(*r.args.MaxRetries),
		),
	}

	for i, r := range rules {
		var severityLevel rule.SeverityLevel
		if severity, ok := r.(rule.Severity); !ok {
			return fmt.Errorf("rule %s does not implement rule.Severity", r.ID())
		} else {
			severityLevel = severity.Severity()
		}

		opt, found := ruleOptions[r.ID()]
		if found && opt.Skip != nil && opt.Skip.Enabled {
			rules[i] = rule.NewSkipRule(r.ID(), r.Name(), opt.Skip.Justification, rule.Accepted, rule.SkipRuleWithSeverity(severityLevel))
		}
	}

	// check that the registered rules equal
	// the number of rules in that ruleset version
	if len(rules) != 10 {
		return fmt.Errorf("revision expects 10 registered rules, but got: %d", len(rules))
	}

	return r.AddRules(rules...)
}

func (r *Ruleset) validateV2022RuleOptions(ruleOptions map[string]internalconfig.IndexedRuleOptionsConfig, fldPath *field.Path) error {
	var errs field.ErrorList

	for _, opt := range ruleOptions {
		switch opt.RuleID {
		case "K01":
			errs = append(errs, validateV2022RuleOptionArgs[rules.OptionsK01](opt, fldPath)...)
		case "K10":
			errs = append(errs, validateV2022RuleOptionArgs[rules.OptionsK10](opt, fldPath)...)
		case "K02", "K03", "K04", "K05", "K06", "K07", "K08", "K09":
			if opt.Args != nil {
				errs = append(errs, field.Forbidden(fldPath.Index(opt.Index).Child("args"), fmt.Sprintf("args are not supported for rule %s", opt.RuleID)))
			}
		default:
			errs = append(errs, field.Invalid(fldPath.Index(opt.Index).Child("ruleID"), opt.RuleID, "invalid rule ID"))
		}
	}

	return errs.ToAggregate()
}

func validateV2022RuleOptionArgs[O rules.RuleOption](opt internalconfig.IndexedRuleOptionsConfig, fldPath *field.Path) field.ErrorList {
	if opt.Args == nil {
		return nil
	}

	optionsByte, err := json.Marshal(opt.Args)
	if err != nil {
		return field.ErrorList{field.Invalid(fldPath.Index(opt.Index).Child("args"), opt.Args, err.Error())}
	}

	var parsedOptions O
	if err := json.Unmarshal(optionsByte, &parsedOptions); err != nil {
		return field.ErrorList{field.Invalid(fldPath.Index(opt.Index).Child("args"), opt.Args, err.Error())}
	}

	if val, ok := any(parsedOptions).(option.Option); ok {
		return val.Validate()
	}
	return nil
}

func parseV2022Options[O rules.RuleOption](options any) (*O, error) {
	optionsByte, err := json.Marshal(options)
	if err != nil {
		return nil, err
	}

	var parsedOptions O
	if err := json.Unmarshal(optionsByte, &parsedOptions); err != nil {
		return nil, err
	}

	if val, ok := any(parsedOptions).(option.Option); ok {
		if err := val.Validate().ToAggregate(); err != nil {
			return nil, err
		}
	}

	return &parsedOptions, nil
}

func getV2022OptionOrNil[O rules.RuleOption](options any) (*O, error) {
	if options == nil {
		return nil, nil
	}
	return parseV2022Options[O](options)
}
