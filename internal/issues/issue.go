// Package issues provides the issue type reported by client generation.
package issues

import (
	"fmt"

	"github.com/erraggy/oasclientgen/internal/severity"
)

// Issue represents a single non-fatal problem found while generating.
type Issue struct {
	// Path is the document location (e.g., "paths./pets.get.responses.200")
	Path string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Module is the module the issue belongs to, if any
	Module string
	// Line is the 1-based line number in the source file (0 if unknown)
	Line int
	// Operation identifies the operation the issue relates to. Nil when not applicable.
	Operation *OperationContext
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	where := i.Path
	if i.Operation != nil && !i.Operation.IsEmpty() {
		where = fmt.Sprintf("%s %s", i.Path, i.Operation.String())
	}
	if i.Module != "" {
		where = fmt.Sprintf("[%s] %s", i.Module, where)
	}
	if i.Line > 0 {
		return fmt.Sprintf("%s %s (line %d): %s", symbol, where, i.Line, i.Message)
	}
	return fmt.Sprintf("%s %s: %s", symbol, where, i.Message)
}

// Counts tallies issues by severity.
type Counts struct {
	Info     int
	Warning  int
	Error    int
	Critical int
}

// Tally counts the issues in list by severity.
func Tally(list []Issue) Counts {
	var c Counts
	for _, i := range list {
		switch i.Severity {
		case severity.SeverityInfo:
			c.Info++
		case severity.SeverityWarning:
			c.Warning++
		case severity.SeverityError:
			c.Error++
		case severity.SeverityCritical:
			c.Critical++
		}
	}
	return c
}

// Max returns the highest severity in list and false when list is empty.
func Max(list []Issue) (severity.Severity, bool) {
	if len(list) == 0 {
		return severity.SeverityInfo, false
	}
	highest := list[0].Severity
	for _, i := range list[1:] {
		if i.Severity > highest {
			highest = i.Severity
		}
	}
	return highest, true
}
