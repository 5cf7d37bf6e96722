package extractor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasclientgen/oaserrors"
)

func TestPolicyByName(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"", "strict", false},
		{"strict", "strict", false},
		{" Lenient ", "lenient", false},
		{"permissive", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := PolicyByName(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, oaserrors.ErrConfig))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Name())
		})
	}
}

func TestStrictPolicy(t *testing.T) {
	p := StrictPolicy{}
	cause := &oaserrors.SchemaError{Role: "request", Cause: oaserrors.ErrEmptyRequestSchema}

	td, err := p.Underspecified(Failure{TypeName: "CreateWidgetsRequest", Err: cause})
	assert.Nil(t, td)
	assert.Same(t, cause, err)

	td, err = p.DanglingReference("Widget", "Ghost")
	assert.Nil(t, td)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrDanglingReference))
	assert.Contains(t, err.Error(), "Ghost")
	assert.Contains(t, err.Error(), "module Widget")

	collision := &oaserrors.CollisionError{Module: "Widget", MethodName: "getById"}
	assert.Same(t, collision, p.MethodCollision(collision))
}

func TestLenientPolicy(t *testing.T) {
	p := LenientPolicy{}

	td, err := p.Underspecified(Failure{
		TypeName:   "CreateWidgetsRequest",
		Err:        oaserrors.ErrEmptyRequestSchema,
		Diagnostic: "request schema empty for POST /widgets",
	})
	require.NoError(t, err)
	assert.Equal(t, "CreateWidgetsRequest", td.Name)
	assert.False(t, td.Resolved)
	assert.True(t, td.Synthesized)
	assert.Equal(t, "request schema empty for POST /widgets", td.Diagnostic)

	stub, err := p.DanglingReference("Widget", "Ghost")
	require.NoError(t, err)
	assert.Equal(t, "Ghost", stub.Name)
	assert.False(t, stub.Resolved)
	assert.False(t, stub.Synthesized)
	assert.Contains(t, stub.Diagnostic, "Ghost")

	assert.NoError(t, p.MethodCollision(&oaserrors.CollisionError{}))
}
