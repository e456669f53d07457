package expense

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cuotas/internal/amount"
	"github.com/MrJamesThe3rd/cuotas/internal/validation"
)

// Expense is implemented by *Purchase and *Subscription.
type Expense interface {
	// Common exposes the fields shared by both variants.
	Common() *Base
	// PendingAmount is what the expense still takes from the account limit.
	PendingAmount() amount.Amount
	// PendingFinancingAmount is what the expense still takes from the financing limit.
	PendingFinancingAmount() amount.Amount
	SetStatus(status Status) error
	// CalculatePayments discards the current schedule and generates a fresh one.
	CalculatePayments()
	ToMap() map[string]any
}

// Base holds the data every expense variant carries. Status and payments are owned by the variant
// and change only through its operations.
type Base struct {
	ID               uuid.UUID
	AccountID        uuid.UUID
	Title            string
	Tag              string
	AcquiredAt       time.Time
	Amount           amount.Amount
	Installments     int
	FirstPaymentDate *time.Time
	CategoryID       *uuid.UUID

	kind     Type
	status   Status
	payments []*Payment
}

func (b *Base) Common() *Base {
	return b
}

func (b *Base) Type() Type {
	return b.kind
}

func (b *Base) Status() Status {
	return b.status
}

// Payments returns the schedule in order. The slice is a copy; the payments are shared.
func (b *Base) Payments() []*Payment {
	out := make([]*Payment, len(b.payments))
	copy(out, b.payments)

	return out
}

// Payment looks up an owned payment by identifier.
func (b *Base) Payment(id uuid.UUID) (*Payment, bool) {
	i := b.indexOf(id)
	if i < 0 {
		return nil, false
	}

	return b.payments[i], true
}

func (b *Base) indexOf(id uuid.UUID) int {
	for i, p := range b.payments {
		if p.ID == id {
			return i
		}
	}

	return -1
}

func (b *Base) precision() int32 {
	return b.Amount.Precision()
}

// firstDate is the date of the first installment.
func (b *Base) firstDate() time.Time {
	if b.FirstPaymentDate != nil {
		return *b.FirstPaymentDate
	}

	return b.AcquiredAt
}

func (b *Base) sum(match func(p *Payment) bool) amount.Amount {
	total := amount.Zero(b.precision())
	for _, p := range b.payments {
		if match(p) {
			total = total.Add(p.Amount)
		}
	}

	return total
}

func (b *Base) count(match func(p *Payment) bool) int {
	n := 0
	for _, p := range b.payments {
		if match(p) {
			n++
		}
	}

	return n
}

func isPending(p *Payment) bool {
	return !p.IsFinal()
}

// baseParams carries the constructor input both variants share.
type baseParams struct {
	ID               uuid.UUID
	AccountID        uuid.UUID
	Title            string
	Tag              string
	AcquiredAt       time.Time
	Amount           amount.Amount
	FirstPaymentDate *time.Time
	CategoryID       *uuid.UUID
	Payments         []*Payment
}

func newBase(kind Type, p baseParams, installments int) (Base, error) {
	if p.AcquiredAt.IsZero() {
		return Base{}, validation.New("acquired_at", "is required")
	}

	if p.Amount.IsNegative() {
		return Base{}, validation.New("amount", "cannot be negative")
	}

	if installments < 1 {
		return Base{}, validation.New("installments", "must be at least 1")
	}

	id := p.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	payments := clonePayments(p.Payments)
	for _, pay := range payments {
		if pay.ExpenseID == uuid.Nil {
			pay.ExpenseID = id
		}

		if pay.ExpenseID != id {
			return Base{}, ErrExpenseMismatch
		}
	}

	var categoryID *uuid.UUID
	if p.CategoryID != nil {
		categoryID = new(*p.CategoryID)
	}

	return Base{
		ID:               id,
		AccountID:        p.AccountID,
		Title:            p.Title,
		Tag:              p.Tag,
		AcquiredAt:       p.AcquiredAt,
		Amount:           p.Amount,
		Installments:     installments,
		FirstPaymentDate: copyDate(p.FirstPaymentDate),
		CategoryID:       categoryID,
		kind:             kind,
		payments:         payments,
	}, nil
}
