package account

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cuotas/internal/amount"
	"github.com/MrJamesThe3rd/cuotas/internal/expense"
	"github.com/MrJamesThe3rd/cuotas/internal/validation"
)

var (
	ErrNotFound       = errors.New("account not found")
	ErrForeignExpense = errors.New("expense is charged to another account")
)

// CreditCard is an account with a separate limit for financed (multi-installment) purchases.
// Additional cards point at their main card through MainCreditCardID.
type CreditCard struct {
	Account

	MainCreditCardID *uuid.UUID
	NextClosingDate  *time.Time
	NextExpiringDate *time.Time

	financingLimit amount.Amount
	expenses       []expense.Expense
}

func NewCreditCard(ownerID uuid.UUID, alias string, limit, financingLimit amount.Amount) (*CreditCard, error) {
	acc, err := NewAccount(ownerID, alias, limit)
	if err != nil {
		return nil, fmt.Errorf("creating credit card: %w", err)
	}

	c := &CreditCard{Account: acc}
	if err := c.SetFinancingLimit(financingLimit); err != nil {
		return nil, fmt.Errorf("creating credit card: %w", err)
	}

	return c, nil
}

func (c *CreditCard) FinancingLimit() amount.Amount {
	return c.financingLimit
}

func (c *CreditCard) SetFinancingLimit(limit amount.Amount) error {
	if limit.IsNegative() {
		return validation.New("financing_limit", "cannot be negative")
	}

	c.financingLimit = limit

	return nil
}

// SetMainCreditCardID links an additional card to its main card. Nil makes the card a main card.
func (c *CreditCard) SetMainCreditCardID(id *uuid.UUID) error {
	if id != nil && *id == c.ID {
		return validation.New("main_credit_card_id", "cannot reference the card itself")
	}

	if id == nil {
		c.MainCreditCardID = nil
		return nil
	}

	c.MainCreditCardID = new(*id)

	return nil
}

// IsAdditional reports whether the card hangs off a main card.
func (c *CreditCard) IsAdditional() bool {
	return c.MainCreditCardID != nil
}

// AddExpense carries an expense charged to this card. It is not owned; figures are read from it
// on every call.
func (c *CreditCard) AddExpense(e expense.Expense) error {
	if e.Common().AccountID != c.ID {
		return fmt.Errorf("%w: %s", ErrForeignExpense, e.Common().ID)
	}

	c.expenses = append(c.expenses, e)

	return nil
}

func (c *CreditCard) Expenses() []expense.Expense {
	out := make([]expense.Expense, len(c.expenses))
	copy(out, c.expenses)

	return out
}

// Balance is what the carried expenses still take from the limit.
func (c *CreditCard) Balance() amount.Amount {
	total := amount.Zero(c.limit.Precision())
	for _, e := range c.expenses {
		total = total.Add(e.PendingAmount())
	}

	return total
}

func (c *CreditCard) AvailableLimit() amount.Amount {
	return c.limit.Sub(c.Balance())
}

func (c *CreditCard) AvailableFinancingLimit() amount.Amount {
	total := amount.Zero(c.financingLimit.Precision())
	for _, e := range c.expenses {
		total = total.Add(e.PendingFinancingAmount())
	}

	return c.financingLimit.Sub(total)
}
