// SPDX-FileCopyrightText: 2026 Panoptes contributors
//
// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"context"
	"fmt"

	"k8s.io/apimachinery/pkg/labels"
	"sigs.k8s.io/controller-runtime/pkg/client"

	kubeutils "github.com/panoptes-k8s/panoptes/pkg/kubernetes/utils"
	"github.com/panoptes-k8s/panoptes/pkg/rule"
)

var (
	_ rule.Rule     = &RuleK07{}
	_ rule.Severity = &RuleK07{}
)

type RuleK07 struct {
	Client    client.Client
	Namespace string
}

func (r *RuleK07) ID() string {
	return "K07"
}

func (r *RuleK07) Name() string {
	return "Missing Network Segmentation Controls"
}

func (r *RuleK07) Severity() rule.SeverityLevel {
	return rule.SeverityMedium
}

func (r *RuleK07) Run(ctx context.Context) (rule.RuleResult, error) {
	networkPolicies, err := kubeutils.GetNetworkPolicies(ctx, r.Client, r.Namespace, labels.NewSelector(), 300)
	if err != nil {
		return rule.Result(r, rule.ErroredCheckResult(err.Error(), rule.NewTarget("kind", "networkPolicyList"))), nil
	}

	target := rule.NewTarget("namespace", r.Namespace)

	if len(networkPolicies) == 0 {
		return rule.Result(r, rule.WarningCheckResult("No NetworkPolicies found. Consider implementing network segmentation controls.", target)), nil
	}

	return rule.Result(r, rule.PassedCheckResult(fmt.Sprintf("Found %d NetworkPolicy object(s).", len(networkPolicies)), target)), nil
}
