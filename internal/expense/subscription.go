package expense

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cuotas/internal/amount"
	"github.com/MrJamesThe3rd/cuotas/internal/calendar"
	"github.com/MrJamesThe3rd/cuotas/internal/validation"
)

// Subscription is a recurring expense. Its schedule grows one payment at a time and its nominal
// Amount follows the most recent payment.
type Subscription struct {
	Base
}

type SubscriptionParams struct {
	ID               uuid.UUID // generated when zero
	AccountID        uuid.UUID
	Title            string
	Tag              string
	AcquiredAt       time.Time
	Amount           amount.Amount
	FirstPaymentDate *time.Time
	CategoryID       *uuid.UUID
	Status           Status // defaults to StatusActive
	Payments         []*Payment
}

// NewSubscription validates params and, when no payments are supplied, schedules the first one.
func NewSubscription(params SubscriptionParams) (*Subscription, error) {
	s, err := restoreSubscription(params)
	if err != nil {
		return nil, err
	}

	if len(s.payments) == 0 {
		s.CalculatePayments()
	}

	return s, nil
}

// RestoreSubscription rebuilds a stored subscription as given. An empty schedule stays empty.
func RestoreSubscription(params SubscriptionParams) (*Subscription, error) {
	return restoreSubscription(params)
}

func restoreSubscription(params SubscriptionParams) (*Subscription, error) {
	base, err := newBase(TypeSubscription, baseParams{
		ID:               params.ID,
		AccountID:        params.AccountID,
		Title:            params.Title,
		Tag:              params.Tag,
		AcquiredAt:       params.AcquiredAt,
		Amount:           params.Amount,
		FirstPaymentDate: params.FirstPaymentDate,
		CategoryID:       params.CategoryID,
		Payments:         params.Payments,
	}, 1)
	if err != nil {
		return nil, fmt.Errorf("creating subscription: %w", err)
	}

	s := &Subscription{Base: base}

	status := params.Status
	if status == "" {
		status = StatusActive
	}

	if err := s.SetStatus(status); err != nil {
		return nil, fmt.Errorf("creating subscription: %w", err)
	}

	s.reorder()

	return s, nil
}

// CalculatePayments resets the schedule to a single unconfirmed payment for the nominal amount.
func (s *Subscription) CalculatePayments() {
	s.payments = []*Payment{
		NewPayment(s.ID, s.Amount, 1, PaymentUnconfirmed, s.FirstPaymentDate),
	}
}

// PendingAmount is the sum of confirmed payments only.
func (s *Subscription) PendingAmount() amount.Amount {
	return s.sum(func(p *Payment) bool { return p.Status == PaymentConfirmed })
}

// PendingFinancingAmount is always zero; subscriptions are never financed.
func (s *Subscription) PendingFinancingAmount() amount.Amount {
	return amount.Zero(s.precision())
}

func (s *Subscription) SetStatus(status Status) error {
	if err := checkStatus(TypeSubscription, subscriptionStatuses, status); err != nil {
		return err
	}

	s.status = status

	return nil
}

func (s *Subscription) Cancel() error {
	return s.SetStatus(StatusCancelled)
}

// AddNewPayment inserts p into the schedule by date.
func (s *Subscription) AddNewPayment(p *Payment) error {
	if p == nil {
		return validation.New("payment", "is required")
	}

	if p.ExpenseID != s.ID {
		return fmt.Errorf("%w: %s", ErrExpenseMismatch, p.ExpenseID)
	}

	s.payments = append(s.payments, p)
	s.reorder()

	return nil
}

func (s *Subscription) RemovePayment(id uuid.UUID) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrPaymentNotFound, id)
	}

	s.payments = slices.Delete(s.payments, i, i+1)
	s.reorder()

	return nil
}

// UpdatePayment replaces the payment with the given ID by p.
func (s *Subscription) UpdatePayment(id uuid.UUID, p *Payment) error {
	if p == nil {
		return validation.New("payment", "is required")
	}

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrPaymentNotFound, id)
	}

	if p.ExpenseID != s.ID {
		return fmt.Errorf("%w: %s", ErrExpenseMismatch, p.ExpenseID)
	}

	s.payments[i] = p
	s.reorder()

	return nil
}

// NextPayment projects the payment that would follow the schedule, scaled by factor.
// It does not add the payment.
func (s *Subscription) NextPayment(factor decimal.Decimal, simulated bool) (*Payment, error) {
	if !factor.IsPositive() {
		return nil, validation.New("factor", "must be greater than zero")
	}

	date := s.AcquiredAt
	if n := len(s.payments); n > 0 && s.payments[n-1].Date != nil {
		date = calendar.AddMonths(*s.payments[n-1].Date, 1)
	}

	status := PaymentUnconfirmed
	if simulated {
		status = PaymentSimulated
	}

	return NewPayment(s.ID, s.Amount.Mul(factor), len(s.payments)+1, status, &date), nil
}

// reorder sorts payments by date with undated ones first, renumbers them from 1 and makes the
// nominal amount follow the last payment.
func (s *Subscription) reorder() {
	slices.SortStableFunc(s.payments, func(a, b *Payment) int {
		switch {
		case a.Date == nil && b.Date == nil:
			return 0
		case a.Date == nil:
			return -1
		case b.Date == nil:
			return 1
		default:
			return a.Date.Compare(*b.Date)
		}
	})

	for i, p := range s.payments {
		p.Installment = i + 1
	}

	if n := len(s.payments); n > 0 && !s.payments[n-1].Amount.Equal(s.Amount) {
		s.Amount = s.payments[n-1].Amount
	}
}
