package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/dbimport/src/models"
)

func TestParseHeaderIdentity(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    models.AccountIdentity
		wantErr bool
	}{
		{
			name: "valid header",
			line: "Transactions Current Account;;;Customer number: 100 1234567",
			want: models.AccountIdentity{Branch: "100", Number: "1234567"},
		},
		{
			name: "trailing whitespace",
			line: "Transactions Current Account;;;Customer number: 100 1234567   ",
			want: models.AccountIdentity{Branch: "100", Number: "1234567"},
		},
		{
			name: "zero-padded numbers are kept verbatim",
			line: "Transactions Savings;;;Customer number: 010 0001234",
			want: models.AccountIdentity{Branch: "010", Number: "0001234"},
		},
		{
			name:    "marker missing",
			line:    "Transactions Current Account;;;",
			wantErr: true,
		},
		{
			name:    "unrelated line",
			line:    "Booking date;Value date;Transaction Type",
			wantErr: true,
		},
		{
			name:    "empty line",
			line:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHeaderIdentity(tt.line)
			if tt.wantErr {
				var hdrErr *HeaderFormatError
				require.ErrorAs(t, err, &hdrErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIdentityMatcher(t *testing.T) {
	m := NewMatcher(models.AccountIdentity{Branch: "100", Number: "1234567"})

	ok, err := m.Match("Transactions Current Account;;;Customer number: 100 1234567")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.Match("Transactions Current Account;;;Customer number: 100 7654321")
	require.NoError(t, err)
	assert.False(t, ok, "another account's file is a non-match, not an error")

	// Exact equality: "0100" is not "100".
	ok, err = m.Match("Transactions Current Account;;;Customer number: 0100 1234567")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = m.Match("garbage")
	var hdrErr *HeaderFormatError
	require.ErrorAs(t, err, &hdrErr)
}
