package mapping_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cuotas/internal/amount"
	"github.com/MrJamesThe3rd/cuotas/internal/mapping"
)

type record struct {
	ID     uuid.UUID     `mapstructure:"id"`
	Amount amount.Amount `mapstructure:"amount"`
	Date   time.Time     `mapstructure:"date"`
	Due    *time.Time    `mapstructure:"due"`
	Count  int           `mapstructure:"count"`
}

func TestDecode(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name    string
		input   map[string]any
		wantErr bool
	}

	tests := []testCase{
		{
			name:  "primitive forms",
			input: map[string]any{"id": id.String(), "amount": "12.5", "date": "2024-02-29", "due": "2024-03-29T00:00:00Z", "count": "3"},
		},
		{
			name:  "typed values",
			input: map[string]any{"id": id.String(), "amount": amount.NewFromFloat(12.5), "date": time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), "due": "2024-03-29", "count": 3},
		},
		{name: "bad amount", input: map[string]any{"amount": []int{1}}, wantErr: true},
		{name: "bad date", input: map[string]any{"date": "29/02/2024"}, wantErr: true},
		{name: "bad id", input: map[string]any{"id": "nope"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got record

			err := mapping.Decode(tt.input, &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, id, got.ID)
			assert.Equal(t, "12.50", got.Amount.String())
			assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), got.Date)
			require.NotNil(t, got.Due)
			assert.Equal(t, time.Date(2024, time.March, 29, 0, 0, 0, 0, time.UTC), *got.Due)
			assert.Equal(t, 3, got.Count)
		})
	}
}

func TestOptionalHelpers(t *testing.T) {
	assert.Nil(t, mapping.OptionalDate(nil))
	assert.Equal(t, "2024-01-31", mapping.OptionalDate(new(time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC))))

	assert.Nil(t, mapping.OptionalString[uuid.UUID](nil))

	id := uuid.New()
	assert.Equal(t, id.String(), mapping.OptionalString(&id))
}
