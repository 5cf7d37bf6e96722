package extractor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasclientgen/oaserrors"
)

func TestResolveRef(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		want    string
		wantErr bool
	}{
		{"component schema", "#/components/schemas/Pet", "Pet", false},
		{"external file", "common.yaml#/components/schemas/Error", "Error", false},
		{"escaped slash", "#/components/schemas/a~1b", "a/b", false},
		{"escaped tilde", "#/components/schemas/a~0b", "a~b", false},
		{"bare name", "Pet", "", true},
		{"trailing slash", "#/components/schemas/", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveRef(tt.ref)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, oaserrors.ErrUnsupportedReferenceShape))
				assert.False(t, errors.Is(err, oaserrors.ErrDanglingReference))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
