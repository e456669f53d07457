// Package amount provides the fixed-precision money value used by every calculation.
//
// All values are rounded half away from zero to their precision, both on construction and after
// every arithmetic operation, so repeated recomputation never drifts: 10.005 becomes 10.01 and
// -10.005 becomes -10.01.
package amount

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultPrecision is the number of decimal places used when none is given.
const DefaultPrecision int32 = 2

var (
	ErrTypeMismatch   = errors.New("value is not an amount")
	ErrDivisionByZero = errors.New("division by zero")
)

// Amount is an immutable decimal rounded to a fixed number of places.
type Amount struct {
	value     decimal.Decimal
	precision int32
}

// New rounds value to precision decimal places.
func New(value decimal.Decimal, precision int32) Amount {
	if precision < 0 {
		precision = 0
	}

	return Amount{value: value.Round(precision), precision: precision}
}

// NewFromFloat builds an Amount with the default precision.
// The float is converted through its shortest decimal representation, so 10.005 rounds to 10.01.
func NewFromFloat(f float64) Amount {
	return New(decimal.NewFromFloat(f), DefaultPrecision)
}

// NewFromInt builds an Amount with the default precision.
func NewFromInt(i int64) Amount {
	return New(decimal.NewFromInt(i), DefaultPrecision)
}

// NewFromString parses a decimal string such as "1234.56".
func NewFromString(s string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Amount{}, fmt.Errorf("parsing amount %q: %w", s, err)
	}

	return New(d, precisionOf(d)), nil
}

// Zero returns a zero Amount with the given precision.
func Zero(precision int32) Amount {
	return New(decimal.Zero, precision)
}

// Parse converts a loosely typed value (map entry, SQL column, JSON token) into an Amount.
// Anything that is not a number or a numeric string fails with ErrTypeMismatch.
func Parse(v any) (Amount, error) {
	switch val := v.(type) {
	case Amount:
		return val, nil
	case *Amount:
		if val == nil {
			return Amount{}, fmt.Errorf("%w: nil pointer", ErrTypeMismatch)
		}

		return *val, nil
	case decimal.Decimal:
		return New(val, precisionOf(val)), nil
	case string:
		return NewFromString(val)
	case []byte:
		return NewFromString(string(val))
	case json.Number:
		return NewFromString(val.String())
	case float64:
		return NewFromFloat(val), nil
	case float32:
		return NewFromFloat(float64(val)), nil
	case int:
		return NewFromInt(int64(val)), nil
	case int32:
		return NewFromInt(int64(val)), nil
	case int64:
		return NewFromInt(val), nil
	}

	return Amount{}, fmt.Errorf("%w: %T", ErrTypeMismatch, v)
}

// precisionOf keeps extra places a source value carries, never going below the default.
func precisionOf(d decimal.Decimal) int32 {
	return max(DefaultPrecision, -d.Exponent())
}

// Decimal returns the rounded value.
func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

// Precision returns the number of decimal places the amount is rounded to.
func (a Amount) Precision() int32 {
	return a.precision
}

// Float64 returns the value as a float. Use only for display.
func (a Amount) Float64() float64 {
	f, _ := a.value.Float64()
	return f
}

func (a Amount) Add(b Amount) Amount {
	return New(a.value.Add(b.value), max(a.precision, b.precision))
}

func (a Amount) Sub(b Amount) Amount {
	return New(a.value.Sub(b.value), max(a.precision, b.precision))
}

// Mul scales the amount by factor, keeping the amount's precision.
func (a Amount) Mul(factor decimal.Decimal) Amount {
	return New(a.value.Mul(factor), a.precision)
}

// Div divides the amount by divisor, keeping the amount's precision.
func (a Amount) Div(divisor decimal.Decimal) (Amount, error) {
	if divisor.IsZero() {
		return Amount{}, ErrDivisionByZero
	}

	return New(a.value.Div(divisor), a.precision), nil
}

// DivInt is Div for an integer count, used when splitting an amount in shares.
func (a Amount) DivInt(n int) (Amount, error) {
	return a.Div(decimal.NewFromInt(int64(n)))
}

func (a Amount) Neg() Amount {
	return New(a.value.Neg(), a.precision)
}

func (a Amount) Abs() Amount {
	return New(a.value.Abs(), a.precision)
}

// Cmp returns -1, 0 or 1 comparing the rounded values.
func (a Amount) Cmp(b Amount) int {
	return a.value.Cmp(b.value)
}

// Equal compares rounded values only; 1.5 at precision 1 equals 1.50 at precision 2.
func (a Amount) Equal(b Amount) bool {
	return a.value.Equal(b.value)
}

func (a Amount) LessThan(b Amount) bool {
	return a.value.LessThan(b.value)
}

func (a Amount) GreaterThan(b Amount) bool {
	return a.value.GreaterThan(b.value)
}

func (a Amount) IsZero() bool {
	return a.value.IsZero()
}

func (a Amount) IsNegative() bool {
	return a.value.IsNegative()
}

func (a Amount) IsPositive() bool {
	return a.value.IsPositive()
}

// String formats the value with exactly Precision decimal places.
func (a Amount) String() string {
	return a.value.StringFixed(a.precision)
}

// Sum adds amounts starting from zero at the given precision.
func Sum(precision int32, amounts ...Amount) Amount {
	total := Zero(precision)
	for _, a := range amounts {
		total = total.Add(a)
	}

	return total
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decoding amount: %w", err)
	}

	parsed, err := Parse(raw)
	if err != nil {
		return err
	}

	*a = parsed

	return nil
}

// Value implements driver.Valuer; amounts are stored as NUMERIC text.
func (a Amount) Value() (driver.Value, error) {
	return a.String(), nil
}

// Scan implements sql.Scanner.
func (a *Amount) Scan(src any) error {
	if src == nil {
		*a = Zero(DefaultPrecision)
		return nil
	}

	parsed, err := Parse(src)
	if err != nil {
		return fmt.Errorf("scanning amount: %w", err)
	}

	*a = parsed

	return nil
}
