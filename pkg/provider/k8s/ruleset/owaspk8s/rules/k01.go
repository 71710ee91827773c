// SPDX-FileCopyrightText: 2026 Panoptes contributors
//
// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"context"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/util/validation/field"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/panoptes-k8s/panoptes/pkg/internal/utils"
	kubeutils "github.com/panoptes-k8s/panoptes/pkg/kubernetes/utils"
	"github.com/panoptes-k8s/panoptes/pkg/rule"
	"github.com/panoptes-k8s/panoptes/pkg/shared/kubernetes/option"
)

var (
	_ rule.Rule     = &RuleK01{}
	_ rule.Severity = &RuleK01{}
	_ option.Option = &OptionsK01{}
)

type RuleK01 struct {
	Client    client.Client
	Namespace string
	Options   *OptionsK01
}

type OptionsK01 struct {
	AcceptedPods []AcceptedPodsK01 `json:"acceptedPods" yaml:"acceptedPods"`
}

type AcceptedPodsK01 struct {
	option.PodSelector
	Justification string `json:"justification" yaml:"justification"`
}

// Validate validates that option configurations are correctly defined
func (o OptionsK01) Validate() field.ErrorList {
	var allErrs field.ErrorList

	for _, p := range o.AcceptedPods {
		allErrs = append(allErrs, p.Validate()...)
	}

	return allErrs
}

func (r *RuleK01) ID() string {
	return "K01"
}

func (r *RuleK01) Name() string {
	return "Insecure Workload Configurations"
}

func (r *RuleK01) Severity() rule.SeverityLevel {
	return rule.SeverityHigh
}

func (r *RuleK01) Run(ctx context.Context) (rule.RuleResult, error) {
	var (
		checkResults      []rule.CheckResult
		containerFindings = func(securityContext *corev1.SecurityContext) []string {
			if securityContext == nil {
				return []string{"Container has no security context defined."}
			}

			var findings []string

			// RunAsNonRoot is not defaulted and must be set explicitly.
			// ref: https://kubernetes.io/docs/tasks/configure-pod-container/security-context/
			if securityContext.RunAsNonRoot == nil {
				findings = append(findings, "Container has no runAsNonRoot setting.")
			} else if !*securityContext.RunAsNonRoot {
				findings = append(findings, "Container may run as root (runAsNonRoot is false).")
			}

			if securityContext.Privileged != nil && *securityContext.Privileged {
				findings = append(findings, "Container is running in privileged mode.")
			}

			return findings
		}
	)

	pods, err := kubeutils.GetPods(ctx, r.Client, r.Namespace, labels.NewSelector(), 300)
	if err != nil {
		return rule.Result(r, rule.ErroredCheckResult(err.Error(), rule.NewTarget("kind", "podList"))), nil
	}

	if len(pods) == 0 {
		return rule.Result(r, rule.PassedCheckResult("The namespace does not contain any Pods.", rule.NewTarget("namespace", r.Namespace))), nil
	}

	for _, pod := range pods {
		podTarget := rule.NewTarget("kind", "pod", "name", pod.Name, "namespace", pod.Namespace)
		insecure := false
		for _, container := range pod.Spec.Containers {
			var (
				containerTarget = podTarget.With("container", container.Name)
				findings        = containerFindings(container.SecurityContext)
			)

			if len(findings) == 0 {
				continue
			}
			insecure = true

			if accepted, justification := r.accepted(pod); accepted {
				msg := "Pod accepted to run with insecure configurations."
				if justification != "" {
					msg = justification
				}
				checkResults = append(checkResults, rule.AcceptedCheckResult(msg, containerTarget))
				continue
			}

			for _, finding := range findings {
				checkResults = append(checkResults, rule.FailedCheckResult(finding, containerTarget))
			}
		}
		if !insecure {
			checkResults = append(checkResults, rule.PassedCheckResult("Pod does not contain containers with insecure configurations.", podTarget))
		}
	}

	return rule.Result(r, checkResults...), nil
}

func (r *RuleK01) accepted(pod corev1.Pod) (bool, string) {
	if r.Options == nil {
		return false, ""
	}

	for _, acceptedPod := range r.Options.AcceptedPods {
		if utils.MatchLabels(pod.Labels, acceptedPod.PodMatchLabels) {
			return true, acceptedPod.Justification
		}
	}

	return false, ""
}
