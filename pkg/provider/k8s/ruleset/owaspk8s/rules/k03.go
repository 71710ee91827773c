// SPDX-FileCopyrightText: 2026 Panoptes contributors
//
// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"context"
	"strings"

	"k8s.io/apimachinery/pkg/labels"
	"sigs.k8s.io/controller-runtime/pkg/client"

	kubeutils "github.com/panoptes-k8s/panoptes/pkg/kubernetes/utils"
	"github.com/panoptes-k8s/panoptes/pkg/rule"
)

var (
	_ rule.Rule     = &RuleK03{}
	_ rule.Severity = &RuleK03{}
)

type RuleK03 struct {
	Client    client.Client
	Namespace string
}

func (r *RuleK03) ID() string {
	return "K03"
}

func (r *RuleK03) Name() string {
	return "Overly Permissive RBAC Configurations"
}

func (r *RuleK03) Severity() rule.SeverityLevel {
	return rule.SeverityHigh
}

func (r *RuleK03) Run(ctx context.Context) (rule.RuleResult, error) {
	var checkResults []rule.CheckResult

	roleBindings, err := kubeutils.GetRoleBindings(ctx, r.Client, r.Namespace, labels.NewSelector(), 300)
	if err != nil {
		return rule.Result(r, rule.ErroredCheckResult(err.Error(), rule.NewTarget("kind", "roleBindingList"))), nil
	}

	if len(roleBindings) == 0 {
		return rule.Result(r, rule.PassedCheckResult("The namespace does not contain any RoleBindings.", rule.NewTarget("namespace", r.Namespace))), nil
	}

	for _, roleBinding := range roleBindings {
		roleBindingTarget := rule.NewTarget("kind", "roleBinding", "name", roleBinding.Name, "namespace", roleBinding.Namespace)

		// The name is matched case-insensitively to also catch copies and
		// aggregations of the cluster-admin ClusterRole, e.g. "my-cluster-admin".
		// Role references never bind cluster-wide privileges regardless of name.
		if roleBinding.RoleRef.Kind == "ClusterRole" && strings.Contains(strings.ToLower(roleBinding.RoleRef.Name), "cluster-admin") {
			checkResults = append(checkResults, rule.FailedCheckResult("RoleBinding binds a high-privilege ClusterRole.", roleBindingTarget.With("roleRef", roleBinding.RoleRef.Name)))
		} else {
			checkResults = append(checkResults, rule.PassedCheckResult("RoleBinding does not bind a high-privilege ClusterRole.", roleBindingTarget))
		}
	}

	return rule.Result(r, checkResults...), nil
}
