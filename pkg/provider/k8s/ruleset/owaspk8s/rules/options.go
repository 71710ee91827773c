// SPDX-FileCopyrightText: 2026 Panoptes contributors
//
// SPDX-License-Identifier: Apache-2.0

package rules

type RuleOption interface {
	OptionsK01 |
		OptionsK10
}
