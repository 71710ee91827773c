// SPDX-FileCopyrightText: 2026 Panoptes contributors
//
// SPDX-License-Identifier: Apache-2.0

package rule

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Rule defines what is considered a rule in the context of Panoptes.
type Rule interface {
	ID() string
	Name() string
	Run(ctx context.Context) (RuleResult, error)
}

// RuleResult contains a Rule identification and the results of a Rule run.
type RuleResult struct {
	RuleID, RuleName string
	Severity         SeverityLevel
	CheckResults     []CheckResult
}

// Result returns a [RuleResult] for a given rule and check results.
// The severity of the result is set when the rule implements [Severity].
func Result(r Rule, checkResults ...CheckResult) RuleResult {
	result := RuleResult{
		RuleID:       r.ID(),
		RuleName:     r.Name(),
		CheckResults: checkResults,
	}

	if severity, ok := r.(Severity); ok {
		result.Severity = severity.Severity()
	}

	return result
}

// Target is used to describe the things that were checked during rule runs.
type Target map[string]string

// NewTarget creates a new Target with the given key values.
// Panics if the number of arguments is an odd number.
func NewTarget(keyValuePairs ...string) Target {
	if len(keyValuePairs)%2 != 0 {
		panic("NewTarget: odd number of arguments")
	}
	t := Target{}

	for i := 0; i < len(keyValuePairs); i += 2 {
		t[keyValuePairs[i]] = keyValuePairs[i+1]
	}

	return t
}

// With creates a new Target with additional key values.
// It does not modify the original one.
// Panics if the number of arguments is an odd number.
func (t Target) With(keyValuePairs ...string) Target {
	if len(keyValuePairs)%2 != 0 {
		panic("With: odd number of arguments")
	}

	newTarget := maps.Clone(t)
	for i := 0; i < len(keyValuePairs); i += 2 {
		newTarget[keyValuePairs[i]] = keyValuePairs[i+1]
	}
	return newTarget
}

// String returns the Target as a deterministic key=value list
// where the keys are sorted alphabetically.
func (t Target) String() string {
	keys := make([]string, 0, len(t))
	for key := range t {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	keyValuePairs := make([]string, 0, len(keys))
	for _, key := range keys {
		keyValuePairs = append(keyValuePairs, fmt.Sprintf("%s=%s", key, t[key]))
	}
	return strings.Join(keyValuePairs, ", ")
}

// CheckResult contains information about a Rule check. Returned from Rule runs.
type CheckResult struct {
	Status  Status
	Message string
	Target  Target
}

// Status of a CheckResult
type Status string

const (
	// Passed status indicates that a check is satisfied.
	Passed Status = "Passed"
	// Skipped status indicates that a rule is skipped with explanation.
	Skipped Status = "Skipped"
	// Accepted status indicates that a check violation is accepted and justified
	// based on additional configuration.
	Accepted Status = "Accepted"
	// Warning status indicates that there is ambiguity and the check was not performed with confidence.
	Warning Status = "Warning"
	// Failed status indicates that a check reported a violation.
	Failed Status = "Failed"
	// Errored status indicates that an unexpected error occured during check execution.
	Errored Status = "Errored"
	// NotImplemented status indicates that a rule/check is not implemented.
	NotImplemented Status = "Not Implemented"
)

// Statuses returns all supported statuses.
func Statuses() []Status {
	return []Status{Passed, Skipped, Accepted, Warning, Failed, Errored, NotImplemented}
}

var orderedStatuses = []Status{Passed, Skipped, Accepted, Warning, Failed, Errored, NotImplemented}

// Less is used to define the priority of the statuses.
// The ascending order is as follows
// Passed, Skipped, Accepted, Warning, Failed, Errored, Not Implemented
func (a Status) Less(b Status) bool {
	i := slices.IndexFunc(orderedStatuses, func(s Status) bool {
		return a == s
	})

	x := slices.IndexFunc(orderedStatuses, func(s Status) bool {
		return b == s
	})

	return i < x
}

// StatusIcon returns the icon of a given Status.
func StatusIcon(status Status) rune {
	switch status {
	case Passed:
		return '🟢'
	case Failed, Errored:
		return '🔴'
	case Skipped, Accepted:
		return '🔵'
	case Warning, NotImplemented:
		return '🟠'
	default:
		return '⚪'
	}
}

// StatusDescription returns the description of a given Status.
func StatusDescription(status Status) string {
	switch status {
	case Passed:
		return "The check was successful and the rule is satisfied."
	case Skipped:
		return "The rule was not run because it was explicitly skipped."
	case Accepted:
		return "A detected violation is accepted and justified by additional configuration."
	case Warning:
		return "There is ambiguity or a condition that should be reviewed."
	case Failed:
		return "The check detected a violation of the rule."
	case Errored:
		return "An unexpected error occured during the check execution."
	case NotImplemented:
		return "There is no implementation for the rule."
	default:
		return "Unknown"
	}
}
