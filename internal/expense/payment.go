package expense

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cuotas/internal/amount"
	"github.com/MrJamesThe3rd/cuotas/internal/calendar"
)

// Payment is one installment of an expense. It refers to its expense by identifier only.
type Payment struct {
	ID          uuid.UUID
	ExpenseID   uuid.UUID
	Amount      amount.Amount
	Installment int // 1-based
	Status      PaymentStatus
	Date        *time.Time
}

func NewPayment(expenseID uuid.UUID, amt amount.Amount, installment int, status PaymentStatus, date *time.Time) *Payment {
	return &Payment{
		ID:          uuid.New(),
		ExpenseID:   expenseID,
		Amount:      amt,
		Installment: installment,
		Status:      status,
		Date:        copyDate(date),
	}
}

func (p *Payment) IsFinal() bool {
	return p.Status.IsFinal()
}

// SetStatus accepts every transition. Reopening a paid or canceled installment is logged.
func (p *Payment) SetStatus(status PaymentStatus) {
	if p.IsFinal() && status != p.Status {
		slog.Warn("reopening final payment",
			"payment_id", p.ID,
			"expense_id", p.ExpenseID,
			"from", p.Status,
			"to", status,
		)
	}

	p.Status = status
}

// IsOneTimePayment reports whether the owning expense is paid in a single installment.
func (p *Payment) IsOneTimePayment(installments int) bool {
	return installments == 1
}

// IsLastPayment reports whether this is the final installment of the owning expense.
func (p *Payment) IsLastPayment(installments int) bool {
	return p.Installment == installments
}

// InPeriod reports whether the payment falls in the given month. Undated payments never do.
func (p *Payment) InPeriod(month calendar.Month, year calendar.Year) bool {
	if p.Date == nil {
		return false
	}

	m, y := calendar.MonthOf(*p.Date)

	return m == month && y == year
}

func (p *Payment) clone() *Payment {
	c := *p
	c.Date = copyDate(p.Date)

	return &c
}

func copyDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	return new(*t)
}

func clonePayments(payments []*Payment) []*Payment {
	out := make([]*Payment, 0, len(payments))
	for _, p := range payments {
		if p == nil {
			continue
		}

		out = append(out, p.clone())
	}

	return out
}
