// Package period groups payments into calendar months and totals them.
package period

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cuotas/internal/amount"
	"github.com/MrJamesThe3rd/cuotas/internal/calendar"
	"github.com/MrJamesThe3rd/cuotas/internal/expense"
	"github.com/MrJamesThe3rd/cuotas/internal/mapping"
)

var ErrPaymentNotInPeriod = errors.New("payment not in period")

// namespace makes period IDs a pure function of month and year.
var namespace = uuid.MustParse("5b0e4a52-6f55-4c3e-9a47-1f4f0c2d7d61")

// Entry is a payment seen by the period, with the installment count of the expense it belongs to.
type Entry struct {
	Payment      *expense.Payment
	Installments int
}

// Period references payments; it does not own them.
type Period struct {
	ID    uuid.UUID
	Month calendar.Month
	Year  calendar.Year

	entries []Entry
}

func New(month calendar.Month, year calendar.Year) *Period {
	return &Period{
		ID:    ID(month, year),
		Month: month,
		Year:  year,
	}
}

// ID is the identifier of the period for month and year.
func ID(month calendar.Month, year calendar.Year) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(fmt.Sprintf("%s-%s", year, month)))
}

// Add records a payment. Adding the same payment twice keeps one entry with the latest count.
func (p *Period) Add(pay *expense.Payment, installments int) {
	if pay == nil {
		return
	}

	if i := p.indexOf(pay.ID); i >= 0 {
		p.entries[i] = Entry{Payment: pay, Installments: installments}
		return
	}

	p.entries = append(p.entries, Entry{Payment: pay, Installments: installments})
}

// Collect adds every payment of the expenses dated in this period.
func (p *Period) Collect(expenses ...expense.Expense) {
	for _, e := range expenses {
		b := e.Common()

		for _, pay := range b.Payments() {
			if pay.InPeriod(p.Month, p.Year) {
				p.Add(pay, b.Installments)
			}
		}
	}
}

func (p *Period) Remove(paymentID uuid.UUID) error {
	i := p.indexOf(paymentID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrPaymentNotInPeriod, paymentID)
	}

	p.entries = slices.Delete(p.entries, i, i+1)

	return nil
}

func (p *Period) indexOf(paymentID uuid.UUID) int {
	return slices.IndexFunc(p.entries, func(e Entry) bool { return e.Payment.ID == paymentID })
}

func (p *Period) Payments() []*expense.Payment {
	out := make([]*expense.Payment, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.Payment
	}

	return out
}

func (p *Period) Entries() []Entry {
	return slices.Clone(p.entries)
}

func (p *Period) total(match func(e Entry) bool) amount.Amount {
	total := amount.Zero(amount.DefaultPrecision)
	for _, e := range p.entries {
		if match(e) {
			total = total.Add(e.Payment.Amount)
		}
	}

	return total
}

func (p *Period) TotalAmount() amount.Amount {
	return p.total(func(Entry) bool { return true })
}

// TotalOneTimePayments sums payments of single-installment expenses.
func (p *Period) TotalOneTimePayments() amount.Amount {
	return p.total(func(e Entry) bool { return e.Payment.IsOneTimePayment(e.Installments) })
}

// TotalLastPayments sums payments that close their expense's schedule.
func (p *Period) TotalLastPayments() amount.Amount {
	return p.total(func(e Entry) bool { return e.Payment.IsLastPayment(e.Installments) })
}

type entryRecord struct {
	Payment      map[string]any `mapstructure:"payment"`
	Installments int            `mapstructure:"installments"`
}

type record struct {
	ID      uuid.UUID     `mapstructure:"id"`
	Month   int           `mapstructure:"month"`
	Year    int           `mapstructure:"year"`
	Entries []entryRecord `mapstructure:"payments"`
}

func (p *Period) ToMap() map[string]any {
	entries := make([]map[string]any, len(p.entries))
	for i, e := range p.entries {
		entries[i] = map[string]any{
			"payment":      e.Payment.ToMap(),
			"installments": e.Installments,
		}
	}

	return map[string]any{
		"id":       p.ID.String(),
		"month":    int(p.Month),
		"year":     int(p.Year),
		"payments": entries,
	}
}

func FromMap(m map[string]any) (*Period, error) {
	var rec record
	if err := mapping.Decode(m, &rec); err != nil {
		return nil, fmt.Errorf("decoding period: %w", err)
	}

	month, err := calendar.NewMonth(rec.Month)
	if err != nil {
		return nil, fmt.Errorf("decoding period: %w", err)
	}

	year, err := calendar.NewYear(rec.Year)
	if err != nil {
		return nil, fmt.Errorf("decoding period: %w", err)
	}

	p := New(month, year)
	if rec.ID != uuid.Nil {
		p.ID = rec.ID
	}

	for _, er := range rec.Entries {
		pay, err := expense.PaymentFromMap(er.Payment)
		if err != nil {
			return nil, fmt.Errorf("decoding period: %w", err)
		}

		p.Add(pay, er.Installments)
	}

	return p, nil
}
