// SPDX-FileCopyrightText: 2026 Panoptes contributors
//
// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"context"
	"fmt"

	metav1validation "k8s.io/apimachinery/pkg/apis/meta/v1/validation"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/util/validation/field"
	"sigs.k8s.io/controller-runtime/pkg/client"

	kubeutils "github.com/panoptes-k8s/panoptes/pkg/kubernetes/utils"
	"github.com/panoptes-k8s/panoptes/pkg/rule"
	"github.com/panoptes-k8s/panoptes/pkg/shared/kubernetes/option"
)

var (
	_ rule.Rule     = &RuleK10{}
	_ rule.Severity = &RuleK10{}
	_ option.Option = &OptionsK10{}
)

type RuleK10 struct {
	Client    client.Client
	Namespace string
	Options   *OptionsK10
}

type OptionsK10 struct {
	ComponentMatchLabels map[string]string `json:"componentMatchLabels" yaml:"componentMatchLabels"`
}

// Validate validates that option configurations are correctly defined
func (o OptionsK10) Validate() field.ErrorList {
	var (
		allErrs  field.ErrorList
		rootPath = field.NewPath("componentMatchLabels")
	)

	if len(o.ComponentMatchLabels) == 0 {
		return field.ErrorList{field.Required(rootPath, "must not be empty")}
	}
	allErrs = append(allErrs, metav1validation.ValidateLabels(o.ComponentMatchLabels, rootPath)...)

	return allErrs
}

func (r *RuleK10) ID() string {
	return "K10"
}

func (r *RuleK10) Name() string {
	return "Outdated and Vulnerable Kubernetes Components"
}

func (r *RuleK10) Severity() rule.SeverityLevel {
	return rule.SeverityLow
}

func (r *RuleK10) Run(ctx context.Context) (rule.RuleResult, error) {
	var checkResults []rule.CheckResult

	componentMatchLabels := map[string]string{"component": "webserver"}
	if r.Options != nil {
		componentMatchLabels = r.Options.ComponentMatchLabels
	}

	pods, err := kubeutils.GetPods(ctx, r.Client, r.Namespace, labels.SelectorFromSet(componentMatchLabels), 300)
	if err != nil {
		return rule.Result(r, rule.ErroredCheckResult(err.Error(), rule.NewTarget("kind", "podList"))), nil
	}

	if len(pods) == 0 {
		return rule.Result(r, rule.PassedCheckResult("The namespace does not contain any Pods matching the component selector.", rule.NewTarget("namespace", r.Namespace))), nil
	}

	for _, pod := range pods {
		podTarget := rule.NewTarget("kind", "pod", "name", pod.Name, "namespace", pod.Namespace)
		for _, container := range pod.Spec.Containers {
			if container.Image == "" {
				continue
			}

			// Reported image versions cannot be checked against a vulnerability
			// database in an offline scan, so findings are raised as warnings.
			checkResults = append(checkResults, rule.WarningCheckResult(
				fmt.Sprintf("Container is running image '%s'.", container.Image),
				podTarget.With("container", container.Name),
			))
		}
	}

	if len(checkResults) == 0 {
		return rule.Result(r, rule.PassedCheckResult("Monitored component Pods do not have container images to report.", rule.NewTarget("namespace", r.Namespace))), nil
	}

	return rule.Result(r, checkResults...), nil
}
