package period_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cuotas/internal/amount"
	"github.com/MrJamesThe3rd/cuotas/internal/calendar"
	"github.com/MrJamesThe3rd/cuotas/internal/expense"
	"github.com/MrJamesThe3rd/cuotas/internal/period"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustAmount(t *testing.T, s string) amount.Amount {
	t.Helper()

	a, err := amount.NewFromString(s)
	require.NoError(t, err)

	return a
}

// fixtures returns a 3-installment purchase from January, a single payment purchase and a
// subscription, all with a payment in March 2024.
func fixtures(t *testing.T) []expense.Expense {
	t.Helper()

	account := uuid.New()

	financed, err := expense.NewPurchase(expense.PurchaseParams{
		AccountID:    account,
		Title:        "Laptop",
		AcquiredAt:   date(2024, time.January, 15),
		Amount:       mustAmount(t, "300.00"),
		Installments: 3,
	})
	require.NoError(t, err)

	single, err := expense.NewPurchase(expense.PurchaseParams{
		AccountID:    account,
		Title:        "Shoes",
		AcquiredAt:   date(2024, time.March, 10),
		Amount:       mustAmount(t, "50.00"),
		Installments: 1,
	})
	require.NoError(t, err)

	sub, err := expense.NewSubscription(expense.SubscriptionParams{
		AccountID:        account,
		Title:            "Music",
		AcquiredAt:       date(2024, time.March, 1),
		Amount:           mustAmount(t, "10.00"),
		FirstPaymentDate: new(date(2024, time.March, 31)),
	})
	require.NoError(t, err)

	return []expense.Expense{financed, single, sub}
}

func TestPeriod_Collect(t *testing.T) {
	type testCase struct {
		name        string
		month       int
		wantCount   int
		wantTotal   string
		wantOneTime string
		wantLast    string
	}

	tests := []testCase{
		{name: "every expense in March", month: 3, wantCount: 3, wantTotal: "160.00", wantOneTime: "60.00", wantLast: "160.00"},
		{name: "first installment only", month: 1, wantCount: 1, wantTotal: "100.00", wantOneTime: "0.00", wantLast: "0.00"},
		{name: "empty month", month: 7, wantCount: 0, wantTotal: "0.00", wantOneTime: "0.00", wantLast: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			month, err := calendar.NewMonth(tt.month)
			require.NoError(t, err)

			p := period.New(month, 2024)
			p.Collect(fixtures(t)...)

			assert.Len(t, p.Payments(), tt.wantCount)
			assert.Equal(t, tt.wantTotal, p.TotalAmount().String())
			assert.Equal(t, tt.wantOneTime, p.TotalOneTimePayments().String())
			assert.Equal(t, tt.wantLast, p.TotalLastPayments().String())
		})
	}
}

func TestPeriod_AddRemove(t *testing.T) {
	p := period.New(3, 2024)

	pay := expense.NewPayment(uuid.New(), mustAmount(t, "20.00"), 2, expense.PaymentUnconfirmed, new(date(2024, time.March, 5)))

	p.Add(pay, 2)
	p.Add(pay, 2)
	p.Add(nil, 1)

	require.Len(t, p.Payments(), 1)
	assert.Equal(t, "20.00", p.TotalLastPayments().String())

	require.NoError(t, p.Remove(pay.ID))
	assert.Empty(t, p.Payments())
	assert.ErrorIs(t, p.Remove(pay.ID), period.ErrPaymentNotInPeriod)
}

func TestPeriod_PaymentsAreReferences(t *testing.T) {
	p := period.New(3, 2024)

	pay := expense.NewPayment(uuid.New(), mustAmount(t, "20.00"), 1, expense.PaymentUnconfirmed, new(date(2024, time.March, 5)))
	p.Add(pay, 1)

	pay.Amount = mustAmount(t, "25.00")
	assert.Equal(t, "25.00", p.TotalAmount().String())

	out := p.Payments()
	out[0] = nil
	assert.NotNil(t, p.Payments()[0])
}

func TestID(t *testing.T) {
	assert.Equal(t, period.ID(3, 2024), period.New(3, 2024).ID)
	assert.NotEqual(t, period.ID(3, 2024), period.ID(4, 2024))
	assert.NotEqual(t, period.ID(3, 2024), period.ID(3, 2025))
}

func TestPeriod_MapRoundTrip(t *testing.T) {
	p := period.New(3, 2024)
	p.Collect(fixtures(t)...)

	got, err := period.FromMap(p.ToMap())
	require.NoError(t, err)

	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, p.Month, got.Month)
	assert.Equal(t, p.Year, got.Year)
	assert.Equal(t, p.TotalAmount().String(), got.TotalAmount().String())
	assert.Equal(t, p.TotalOneTimePayments().String(), got.TotalOneTimePayments().String())
	assert.Equal(t, p.ToMap(), got.ToMap())

	_, err = period.FromMap(map[string]any{"month": 13, "year": 2024})
	assert.Error(t, err)
}
