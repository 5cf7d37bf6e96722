package cliutil

import (
	"io"

	"github.com/erraggy/oasclientgen/internal/issues"
	"github.com/erraggy/oasclientgen/internal/severity"
)

// WriteIssues prints every issue at or above level, one per line, and returns
// how many were printed.
func WriteIssues(w io.Writer, list []issues.Issue, level severity.Severity) int {
	n := 0
	for _, i := range list {
		if !i.Severity.AtLeast(level) {
			continue
		}
		Writef(w, "%s\n", i.String())
		n++
	}
	return n
}

// CountAtLeast returns the number of issues at or above level.
func CountAtLeast(list []issues.Issue, level severity.Severity) int {
	n := 0
	for _, i := range list {
		if i.Severity.AtLeast(level) {
			n++
		}
	}
	return n
}
