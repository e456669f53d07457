package reconcile_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/cuotas/internal/expense"
	"github.com/MrJamesThe3rd/cuotas/internal/reconcile"
)

var (
	first  = uuid.MustParse("0d4f0a3e-7a55-4f0e-9b7c-0a5c6f1e2b01")
	second = uuid.MustParse("0d4f0a3e-7a55-4f0e-9b7c-0a5c6f1e2b02")
)

func TestParser_Parse(t *testing.T) {
	csv := `Payment_ID ; Status ; Amount ; Date
` + first.String() + `;paid;1.234,56;2024-03-31

` + second.String() + `;CONFIRMED;;
;;;
`

	got, err := reconcile.NewParser(0).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, first, got[0].PaymentID)
	assert.Equal(t, expense.PaymentPaid, got[0].Status)
	require.NotNil(t, got[0].Amount)
	assert.Equal(t, "1234.56", got[0].Amount.String())
	require.NotNil(t, got[0].Date)
	assert.Equal(t, time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), *got[0].Date)

	assert.Equal(t, second, got[1].PaymentID)
	assert.Equal(t, expense.PaymentConfirmed, got[1].Status)
	assert.Nil(t, got[1].Amount)
	assert.Nil(t, got[1].Date)
}

func TestParser_CustomDelimiter(t *testing.T) {
	csv := "payment_id,status\n" + first.String() + ",canceled\n"

	got, err := reconcile.NewParser(',').Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, expense.PaymentCanceled, got[0].Status)
}

func TestParser_Encodings(t *testing.T) {
	body := "payment_id;status;referência\n" + first.String() + ";paid;água\n"

	latin, err := charmap.Windows1252.NewEncoder().String(body)
	require.NoError(t, err)

	type testCase struct {
		name  string
		input string
	}

	tests := []testCase{
		{name: "utf-8", input: body},
		{name: "utf-8 bom", input: "\xEF\xBB\xBF" + body},
		{name: "windows-1252", input: latin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reconcile.NewParser(0).Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, first, got[0].PaymentID)
			assert.Equal(t, expense.PaymentPaid, got[0].Status)
		})
	}
}

func TestParser_Errors(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		wantMsg string
	}

	tests := []testCase{
		{name: "empty file", input: "", wantMsg: "missing header"},
		{name: "no status column", input: "payment_id;amount\n", wantMsg: `row 1: missing column "status"`},
		{name: "unknown status", input: "payment_id;status\n" + first.String() + ";refunded\n", wantMsg: "row 2:"},
		{name: "bad id", input: "payment_id;status\n\nnope;paid\n", wantMsg: "row 3: invalid payment id"},
		{name: "bad amount", input: "payment_id;status;amount\n" + first.String() + ";paid;ten\n", wantMsg: `row 2: invalid amount "ten"`},
		{name: "bad date", input: "payment_id;status;date\n" + first.String() + ";paid;31/03/2024\n", wantMsg: "row 2: parsing date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reconcile.NewParser(0).Parse(strings.NewReader(tt.input))
			assert.Nil(t, got)
			assert.ErrorContains(t, err, tt.wantMsg)
		})
	}
}
