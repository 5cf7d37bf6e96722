package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasclientgen/oaserrors"
)

func TestExactlyOne(t *testing.T) {
	tests := []struct {
		name    string
		sources []Source
		wantErr string
	}{
		{
			name:    "one set",
			sources: []Source{{"WithFilePath", true}, {"WithBytes", false}},
		},
		{
			name:    "none set",
			sources: []Source{{"WithFilePath", false}, {"WithBytes", false}},
			wantErr: "parser: must specify an input source (use WithFilePath or WithBytes)",
		},
		{
			name:    "two set",
			sources: []Source{{"WithFilePath", true}, {"WithBytes", true}},
			wantErr: "parser: must specify exactly one input source",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ExactlyOne("parser", tt.sources...)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
