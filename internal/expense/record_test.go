package expense_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cuotas/internal/amount"
	"github.com/MrJamesThe3rd/cuotas/internal/expense"
)

func TestPurchase_MapRoundTrip(t *testing.T) {
	category := uuid.New()

	p, err := expense.NewPurchase(expense.PurchaseParams{
		AccountID:    uuid.New(),
		Title:        "Fridge",
		Tag:          "home",
		AcquiredAt:   date(2024, time.January, 31),
		Amount:       mustAmount(t, "100.00"),
		Installments: 3,
		CategoryID:   &category,
	})
	require.NoError(t, err)

	first := p.Payments()[0]
	require.NoError(t, p.UpdatePayment(expense.Payment{ID: first.ID, Amount: first.Amount, Status: expense.PaymentPaid}))

	m := p.ToMap()
	assert.Equal(t, "purchase", m["expense_type"])
	assert.Equal(t, "2024-01-31", m["acquired_at"])
	assert.Nil(t, m["first_payment_date"])

	got, err := expense.FromMap(m)
	require.NoError(t, err)

	restored, ok := got.(*expense.Purchase)
	require.True(t, ok)

	assert.Equal(t, p.ID, restored.ID)
	assert.Equal(t, p.AccountID, restored.AccountID)
	assert.Equal(t, "Fridge", restored.Title)
	assert.Equal(t, "home", restored.Tag)
	assert.Equal(t, p.AcquiredAt, restored.AcquiredAt)
	assert.Equal(t, category, *restored.CategoryID)
	assert.Equal(t, p.Status(), restored.Status())
	assert.Equal(t, amountsOf(p.Payments()), amountsOf(restored.Payments()))
	assert.Equal(t, expense.PaymentPaid, restored.Payments()[0].Status)
	assert.Equal(t, *p.Payments()[1].Date, *restored.Payments()[1].Date)
	assert.Equal(t, p.ToMap(), restored.ToMap())
}

func TestSubscription_MapRoundTrip(t *testing.T) {
	s := newSubscription(t)
	require.NoError(t, s.Cancel())

	got, err := expense.FromMap(s.ToMap())
	require.NoError(t, err)

	restored, ok := got.(*expense.Subscription)
	require.True(t, ok)
	assert.Equal(t, expense.StatusCancelled, restored.Status())
	assert.Nil(t, restored.CategoryID)
	assert.Equal(t, s.ToMap(), restored.ToMap())
}

func TestFromMap_JSONInput(t *testing.T) {
	id := uuid.New()
	raw := `{
		"id": "` + id.String() + `",
		"account_id": "` + uuid.NewString() + `",
		"title": "Phone",
		"acquired_at": "2024-02-10T00:00:00Z",
		"amount": 50.5,
		"expense_type": "purchase",
		"installments": 2,
		"payments": [
			{"id": "` + uuid.NewString() + `", "expense_id": "` + id.String() + `", "amount": "25.25", "no_installment": 1, "status": "paid", "payment_date": "2024-02-10"},
			{"id": "` + uuid.NewString() + `", "expense_id": "` + id.String() + `", "amount": 25.25, "no_installment": 2, "status": "unconfirmed", "payment_date": null}
		]
	}`

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &m))

	got, err := expense.FromMap(m)
	require.NoError(t, err)

	assert.Equal(t, "50.50", got.Common().Amount.String())
	assert.Equal(t, 2, got.Common().Installments)
	assert.Equal(t, "25.25", got.PendingAmount().String())
	assert.Equal(t, expense.StatusPending, got.Common().Status())
	assert.Nil(t, got.Common().Payments()[1].Date)
}

func TestFromMap_Errors(t *testing.T) {
	base := func() map[string]any {
		return map[string]any{
			"id":           uuid.NewString(),
			"account_id":   uuid.NewString(),
			"acquired_at":  "2024-01-01",
			"amount":       "10.00",
			"expense_type": "purchase",
			"installments": 1,
		}
	}

	type testCase struct {
		name    string
		mutate  func(m map[string]any)
		wantMsg string
	}

	tests := []testCase{
		{name: "amount of the wrong type", mutate: func(m map[string]any) { m["amount"] = true }, wantMsg: amount.ErrTypeMismatch.Error()},
		{name: "unknown expense type", mutate: func(m map[string]any) { m["expense_type"] = "loan" }},
		{name: "malformed id", mutate: func(m map[string]any) { m["id"] = "nope" }},
		{name: "malformed date", mutate: func(m map[string]any) { m["acquired_at"] = "31/01/2024" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := base()
			tt.mutate(m)

			got, err := expense.FromMap(m)
			assert.Nil(t, got)
			require.Error(t, err)

			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestPaymentFromMap(t *testing.T) {
	p := expense.NewPayment(uuid.New(), mustAmount(t, "7.25"), 2, expense.PaymentConfirmed, new(date(2024, time.June, 30)))

	got, err := expense.PaymentFromMap(p.ToMap())
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, p.ExpenseID, got.ExpenseID)
	assert.True(t, p.Amount.Equal(got.Amount))
	assert.Equal(t, 2, got.Installment)
	assert.Equal(t, expense.PaymentConfirmed, got.Status)
	assert.Equal(t, *p.Date, *got.Date)

	_, err = expense.PaymentFromMap(map[string]any{"id": uuid.NewString(), "status": "lost"})
	assert.Error(t, err)
}
