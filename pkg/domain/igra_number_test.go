package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rodeovalidate/pkg/domainerr"
)

func TestParseIGRANumber(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    IGRANumber
		wantErr bool
	}{
		{"trims whitespace", "  1946 ", "1946", false},
		{"rejects empty", "", "", true},
		{"rejects whitespace only", "   ", "", true},
		{"accepts short values", "7", "7", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIGRANumber(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, domainerr.HasCode(err, domainerr.CodeInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIGRANumber_IsZero(t *testing.T) {
	var n IGRANumber
	assert.True(t, n.IsZero())

	n, err := ParseIGRANumber("1946")
	require.NoError(t, err)
	assert.False(t, n.IsZero())
	assert.Equal(t, "1946", n.String())
}
