// SPDX-FileCopyrightText: 2026 Panoptes contributors
//
// SPDX-License-Identifier: Apache-2.0

package config

import "github.com/panoptes-k8s/panoptes/pkg/config"

// IndexedRuleOptionsConfig represents per rule options and the index at which the option is configured in the YAML spec.
type IndexedRuleOptionsConfig struct {
	config.RuleOptionsConfig
	// Index is the rule option's index in the file configuration
	Index int
}
