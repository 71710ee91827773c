// SPDX-FileCopyrightText: 2026 Panoptes contributors
//
// SPDX-License-Identifier: Apache-2.0

package rule

// SeverityLevel indicates the impact of a rule violation.
type SeverityLevel string

const (
	// SeverityLow indicates that a rule violation has low impact.
	SeverityLow SeverityLevel = "Low"
	// SeverityMedium indicates that a rule violation has medium impact.
	SeverityMedium SeverityLevel = "Medium"
	// SeverityHigh indicates that a rule violation has high impact.
	SeverityHigh SeverityLevel = "High"
)

// Severity is implemented by rules that have a severity level.
type Severity interface {
	// Severity returns the severity level of a rule.
	Severity() SeverityLevel
}
