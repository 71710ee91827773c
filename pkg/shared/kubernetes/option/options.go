// SPDX-FileCopyrightText: 2026 Panoptes contributors
//
// SPDX-License-Identifier: Apache-2.0

package option

import (
	metav1validation "k8s.io/apimachinery/pkg/apis/meta/v1/validation"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// Option that can be validated in order to ensure
// that configurations are correctly defined
type Option interface {
	Validate() field.ErrorList
}

// PodSelector contains generalized options for matching pods by their attribute labels
type PodSelector struct {
	PodMatchLabels map[string]string `json:"podMatchLabels" yaml:"podMatchLabels"`
}

var _ Option = (*PodSelector)(nil)

// Validate validates that option configurations are correctly defined
func (s PodSelector) Validate() field.ErrorList {
	var (
		allErrs  field.ErrorList
		rootPath = field.NewPath("")
	)

	if len(s.PodMatchLabels) == 0 {
		allErrs = append(allErrs, field.Required(rootPath.Child("podMatchLabels"), "must not be empty"))
	}

	allErrs = append(allErrs, metav1validation.ValidateLabels(s.PodMatchLabels, rootPath.Child("podMatchLabels"))...)
	return allErrs
}
