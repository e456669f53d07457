package expense

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cuotas/internal/amount"
	"github.com/MrJamesThe3rd/cuotas/internal/calendar"
)

// Purchase is a one-off expense paid in a fixed number of monthly installments.
type Purchase struct {
	Base
}

type PurchaseParams struct {
	ID               uuid.UUID // generated when zero
	AccountID        uuid.UUID
	Title            string
	Tag              string
	AcquiredAt       time.Time
	Amount           amount.Amount
	Installments     int
	FirstPaymentDate *time.Time
	CategoryID       *uuid.UUID
	// Payments restores an existing schedule. When empty the schedule is generated.
	Payments []*Payment
}

// NewPurchase validates params and builds the schedule unless one is supplied.
func NewPurchase(params PurchaseParams) (*Purchase, error) {
	p, err := restorePurchase(params)
	if err != nil {
		return nil, err
	}

	if len(p.payments) == 0 {
		p.CalculatePayments()
	}

	return p, nil
}

// RestorePurchase rebuilds a stored purchase exactly as given, without generating payments.
func RestorePurchase(params PurchaseParams) (*Purchase, error) {
	return restorePurchase(params)
}

func restorePurchase(params PurchaseParams) (*Purchase, error) {
	base, err := newBase(TypePurchase, baseParams{
		ID:               params.ID,
		AccountID:        params.AccountID,
		Title:            params.Title,
		Tag:              params.Tag,
		AcquiredAt:       params.AcquiredAt,
		Amount:           params.Amount,
		FirstPaymentDate: params.FirstPaymentDate,
		CategoryID:       params.CategoryID,
		Payments:         params.Payments,
	}, params.Installments)
	if err != nil {
		return nil, fmt.Errorf("creating purchase: %w", err)
	}

	p := &Purchase{Base: base}
	p.UpdateStatus()

	return p, nil
}

// CalculatePayments splits Amount over Installments. Each share is the remaining amount divided
// by the remaining count, so rounding residue lands on later installments and the shares always
// add up to Amount exactly. Dates advance one calendar month per installment.
func (p *Purchase) CalculatePayments() {
	remaining := p.Amount
	date := p.firstDate()

	payments := make([]*Payment, 0, p.Installments)
	for no := 1; no <= p.Installments; no++ {
		share := splitShare(remaining, p.Installments-no+1)
		payments = append(payments, NewPayment(p.ID, share, no, PaymentUnconfirmed, &date))

		remaining = remaining.Sub(share)
		date = calendar.AddMonths(date, 1)
	}

	p.payments = payments
	p.UpdateStatus()
}

// splitShare divides remaining by count, count being at least 1.
func splitShare(remaining amount.Amount, count int) amount.Amount {
	share, err := remaining.DivInt(count)
	if err != nil {
		return remaining
	}

	return share
}

// PendingAmount is the sum of every installment not yet paid or canceled.
func (p *Purchase) PendingAmount() amount.Amount {
	return p.sum(isPending)
}

// PendingFinancingAmount is zero for single-installment purchases.
func (p *Purchase) PendingFinancingAmount() amount.Amount {
	if p.Installments == 1 {
		return amount.Zero(p.precision())
	}

	return p.sum(isPending)
}

func (p *Purchase) PaidAmount() amount.Amount {
	return p.sum(func(pay *Payment) bool { return pay.Status == PaymentPaid })
}

func (p *Purchase) PendingInstallments() int {
	return p.count(isPending)
}

func (p *Purchase) DoneInstallments() int {
	return p.count(func(pay *Payment) bool { return pay.IsFinal() })
}

// UpdateStatus derives the status from the schedule: pending while any installment is open.
func (p *Purchase) UpdateStatus() {
	if p.count(isPending) > 0 {
		p.status = StatusPending
		return
	}

	p.status = StatusFinished
}

func (p *Purchase) SetStatus(status Status) error {
	if err := checkStatus(TypePurchase, purchaseStatuses, status); err != nil {
		return err
	}

	p.status = status

	return nil
}

// UpdatePayment applies an observed amount and status to the installment with the same ID, then
// spreads the open balance over the installments that are neither final nor confirmed.
//
// Confirmed installments keep their amount. When every open installment is confirmed the expense
// Amount is set to what they add up to instead.
func (p *Purchase) UpdatePayment(updated Payment) error {
	stored, ok := p.Payment(updated.ID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPaymentNotFound, updated.ID)
	}

	stored.Amount = updated.Amount
	stored.SetStatus(updated.Status)

	if updated.Date != nil {
		stored.Date = copyDate(updated.Date)
	}

	defer p.UpdateStatus()

	var pending, open []*Payment

	for _, pay := range p.payments {
		if pay.IsFinal() {
			continue
		}

		pending = append(pending, pay)

		if pay.Status != PaymentConfirmed {
			open = append(open, pay)
		}
	}

	if len(pending) == 0 {
		return nil
	}

	if len(open) == 0 {
		p.Amount = amount.Sum(p.precision(), amountsOf(pending)...)
		return nil
	}

	remaining := p.PendingAmount()
	for _, pay := range pending {
		if pay.Status == PaymentConfirmed {
			remaining = remaining.Sub(pay.Amount)
		}
	}

	for i, pay := range open {
		share := splitShare(remaining, len(open)-i)
		pay.Amount = share
		remaining = remaining.Sub(share)
	}

	return nil
}

func amountsOf(payments []*Payment) []amount.Amount {
	out := make([]amount.Amount, len(payments))
	for i, p := range payments {
		out[i] = p.Amount
	}

	return out
}
