package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	type testCase struct {
		input   string
		want    string
		wantErr bool
	}

	tests := []testCase{
		{input: "10", want: "10.00"},
		{input: "12,50", want: "12.50"},
		{input: "-588,74", want: "-588.74"},
		{input: "1.234,56", want: "1234.56"},
		{input: "1,234.56", want: "1234.56"},
		{input: "1 234,5", want: "1234.50"},
		{input: "0.125", want: "0.125"},
		{input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
