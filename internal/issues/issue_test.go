package issues

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/oasclientgen/internal/severity"
)

func TestIssueString(t *testing.T) {
	tests := []struct {
		name     string
		issue    Issue
		expected string
	}{
		{
			name:     "warning with operation",
			issue:    Issue{Path: "paths./users.get", Message: "placeholder emitted", Severity: severity.SeverityWarning, Operation: &OperationContext{Method: "GET", Path: "/users"}},
			expected: "⚠ paths./users.get (GET /users): placeholder emitted",
		},
		{
			name:     "info with module",
			issue:    Issue{Path: "components.schemas.Pet", Message: "imported", Severity: severity.SeverityInfo, Module: "Store"},
			expected: "ℹ [Store] components.schemas.Pet: imported",
		},
		{
			name:     "critical with line",
			issue:    Issue{Path: "paths./x.get", Message: "bad", Severity: severity.SeverityCritical, Line: 12},
			expected: "✗ paths./x.get (line 12): bad",
		},
		{
			name:     "operation id preferred",
			issue:    Issue{Path: "p", Message: "m", Severity: severity.SeverityError, Operation: &OperationContext{Method: "GET", Path: "/x", OperationID: "x_get"}},
			expected: "✗ p (operationId: x_get): m",
		},
		{
			name:     "empty operation ignored",
			issue:    Issue{Path: "p", Message: "m", Severity: severity.Severity(42), Operation: &OperationContext{}},
			expected: "? p: m",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.issue.String())
		})
	}
}

func TestTallyAndMax(t *testing.T) {
	list := []Issue{
		{Severity: severity.SeverityWarning},
		{Severity: severity.SeverityInfo},
		{Severity: severity.SeverityWarning},
		{Severity: severity.SeverityCritical},
	}
	assert.Equal(t, Counts{Info: 1, Warning: 2, Critical: 1}, Tally(list))

	highest, ok := Max(list)
	assert.True(t, ok)
	assert.Equal(t, severity.SeverityCritical, highest)

	_, ok = Max(nil)
	assert.False(t, ok)
}

func TestOperationContext(t *testing.T) {
	assert.Equal(t, "", OperationContext{}.String())
	assert.Equal(t, "(path: /users)", OperationContext{Path: "/users"}.String())
	assert.True(t, OperationContext{}.IsEmpty())
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "", FormatPath())
	assert.Equal(t, "paths", FormatPath("paths"))
	assert.Equal(t, "paths./pets.get.responses.200", OperationPath("/pets", "GET", "responses", "200"))
	assert.Equal(t, "paths./pets.post", OperationPath("/pets", "POST"))
	assert.Equal(t, "components.schemas.Pet", ComponentPath("Pet"))
}
