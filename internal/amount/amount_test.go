package amount_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cuotas/internal/amount"
)

func TestNew_RoundsHalfAwayFromZero(t *testing.T) {
	type testCase struct {
		name  string
		input string
		want  string
	}

	tests := []testCase{
		{name: "exact boundary rounds up", input: "10.005", want: "10.01"},
		{name: "below boundary rounds down", input: "10.004", want: "10.00"},
		{name: "above boundary rounds up", input: "10.006", want: "10.01"},
		{name: "negative boundary rounds away from zero", input: "-10.005", want: "-10.01"},
		{name: "negative below boundary", input: "-10.004", want: "-10.00"},
		{name: "even cent boundary still rounds up", input: "10.015", want: "10.02"},
		{name: "odd cent boundary rounds up", input: "10.025", want: "10.03"},
		{name: "zero boundary", input: "0.005", want: "0.01"},
		{name: "already rounded", input: "33.33", want: "33.33"},
		{name: "integer", input: "100", want: "100.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := amount.New(decimal.RequireFromString(tt.input), 2)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestNewFromFloat_Boundary(t *testing.T) {
	assert.Equal(t, "10.01", amount.NewFromFloat(10.005).String())
	assert.Equal(t, "-10.01", amount.NewFromFloat(-10.005).String())
	assert.Equal(t, "2.68", amount.NewFromFloat(2.675).String())
}

func TestArithmetic_UsesMaxPrecision(t *testing.T) {
	a := amount.New(decimal.RequireFromString("1.5"), 1)
	b := amount.New(decimal.RequireFromString("0.255"), 3)

	sum := a.Add(b)
	assert.Equal(t, int32(3), sum.Precision())
	assert.Equal(t, "1.755", sum.String())

	diff := a.Sub(b)
	assert.Equal(t, int32(3), diff.Precision())
	assert.Equal(t, "1.245", diff.String())
}

func TestMulDiv(t *testing.T) {
	a := amount.NewFromInt(100)

	assert.Equal(t, "150.00", a.Mul(decimal.RequireFromString("1.5")).String())
	assert.Equal(t, "33.34", amount.NewFromFloat(16.67).Mul(decimal.NewFromInt(2)).String())

	third, err := a.DivInt(3)
	require.NoError(t, err)
	assert.Equal(t, "33.33", third.String())

	twoThirds, err := a.Mul(decimal.NewFromInt(2)).DivInt(3)
	require.NoError(t, err)
	assert.Equal(t, "66.67", twoThirds.String())

	_, err = a.Div(decimal.Zero)
	assert.ErrorIs(t, err, amount.ErrDivisionByZero)
}

func TestComparison(t *testing.T) {
	small := amount.NewFromFloat(1.99)
	big := amount.NewFromFloat(2)

	assert.True(t, small.LessThan(big))
	assert.True(t, big.GreaterThan(small))
	assert.Equal(t, -1, small.Cmp(big))
	assert.Equal(t, 0, big.Cmp(amount.NewFromInt(2)))
	assert.True(t, amount.New(decimal.RequireFromString("1.5"), 1).Equal(amount.NewFromFloat(1.50)))
	assert.True(t, amount.Zero(2).IsZero())
	assert.True(t, small.Neg().IsNegative())
	assert.True(t, small.Neg().Abs().IsPositive())
}

func TestSum(t *testing.T) {
	got := amount.Sum(2, amount.NewFromFloat(33.33), amount.NewFromFloat(33.34), amount.NewFromFloat(33.33))
	assert.Equal(t, "100.00", got.String())
	assert.Equal(t, "0.00", amount.Sum(2).String())
}

func TestParse(t *testing.T) {
	type testCase struct {
		name    string
		input   any
		want    string
		wantErr error
	}

	tests := []testCase{
		{name: "string", input: "12.50", want: "12.50"},
		{name: "bytes", input: []byte("7.1"), want: "7.10"},
		{name: "float", input: 3.999, want: "4.00"},
		{name: "int", input: 42, want: "42.00"},
		{name: "int64", input: int64(-5), want: "-5.00"},
		{name: "json number", input: json.Number("9.99"), want: "9.99"},
		{name: "keeps extra precision", input: "1.2345", want: "1.2345"},
		{name: "bool", input: true, wantErr: amount.ErrTypeMismatch},
		{name: "nil", input: nil, wantErr: amount.ErrTypeMismatch},
		{name: "map", input: map[string]any{}, wantErr: amount.ErrTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := amount.Parse(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestNewFromString_Invalid(t *testing.T) {
	_, err := amount.NewFromString("12,50")
	assert.Error(t, err)
}

func TestJSON(t *testing.T) {
	type wrapper struct {
		Total amount.Amount `json:"total"`
	}

	data, err := json.Marshal(wrapper{Total: amount.NewFromFloat(10.5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":"10.50"}`, string(data))

	var got wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"total":10.125}`), &got))
	assert.Equal(t, "10.125", got.Total.String())

	require.Error(t, json.Unmarshal([]byte(`{"total":false}`), &got))
}

func TestSQL(t *testing.T) {
	v, err := amount.NewFromFloat(8.2).Value()
	require.NoError(t, err)
	assert.Equal(t, "8.20", v)

	var a amount.Amount
	require.NoError(t, a.Scan([]byte("19.90")))
	assert.Equal(t, "19.90", a.String())

	require.NoError(t, a.Scan(nil))
	assert.True(t, a.IsZero())

	assert.ErrorIs(t, a.Scan(true), amount.ErrTypeMismatch)
}
