// Package mapping decodes field-name/value maps into entity records.
//
// Maps hold primitive forms only: uuids and amounts as strings, dates as YYYY-MM-DD strings.
// Decode accepts those forms and also already-typed values, so maps built in memory and maps
// decoded from JSON both work.
package mapping

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/MrJamesThe3rd/cuotas/internal/amount"
)

var (
	amountType = reflect.TypeOf(amount.Amount{})
	timeType   = reflect.TypeOf(time.Time{})
)

// Decode fills out, a pointer to a record struct tagged with `mapstructure`, from input.
func Decode(input map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.DecodeHookFuncType(valueHook),
			mapstructure.TextUnmarshallerHookFunc(),
		),
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("creating decoder: %w", err)
	}

	if err := dec.Decode(input); err != nil {
		return fmt.Errorf("decoding map: %w", err)
	}

	return nil
}

// valueHook converts amounts and dates. Uuids are left to the TextUnmarshaler hook.
func valueHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	switch to {
	case amountType:
		return amount.Parse(data)
	case timeType:
		if s, ok := data.(string); ok {
			return ParseDate(s)
		}
	}

	return data, nil
}

// ParseDate accepts YYYY-MM-DD and RFC 3339 timestamps.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}

	return t, nil
}

// Date renders a date in map form.
func Date(t time.Time) string {
	return t.Format(time.DateOnly)
}

// OptionalDate renders nil as nil so the key is present but empty.
func OptionalDate(t *time.Time) any {
	if t == nil {
		return nil
	}

	return Date(*t)
}

// OptionalString renders a nil Stringer pointer as nil.
func OptionalString[T fmt.Stringer](v *T) any {
	if v == nil {
		return nil
	}

	return (*v).String()
}
