// Package severity provides the levels attached to generation issues.
//
// The levels are ordered from least to most severe:
// Info < Warning < Error < Critical
package severity

import (
	"fmt"
	"strings"
)

// Severity indicates how serious a generation issue is.
type Severity int

const (
	// SeverityInfo indicates informational messages about processing choices.
	SeverityInfo Severity = iota

	// SeverityWarning indicates a substitution or recovery that produced
	// usable but degraded output, such as a placeholder type.
	SeverityWarning

	// SeverityError indicates a problem that made part of the output unusable.
	SeverityError

	// SeverityCritical indicates a problem that prevented generation.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// AtLeast reports whether s is as severe as level or more.
func (s Severity) AtLeast(level Severity) bool {
	return s >= level
}

// Parse converts a level name (case-insensitive) to a Severity.
func Parse(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "info":
		return SeverityInfo, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	case "critical":
		return SeverityCritical, nil
	default:
		return 0, fmt.Errorf("unknown severity %q (expected info, warning, error or critical)", name)
	}
}
