package expense

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cuotas/internal/amount"
	"github.com/MrJamesThe3rd/cuotas/internal/mapping"
)

type paymentRecord struct {
	ID          uuid.UUID     `mapstructure:"id"`
	ExpenseID   uuid.UUID     `mapstructure:"expense_id"`
	Amount      amount.Amount `mapstructure:"amount"`
	Installment int           `mapstructure:"no_installment"`
	Status      string        `mapstructure:"status"`
	Date        *time.Time    `mapstructure:"payment_date"`
}

type expenseRecord struct {
	ID               uuid.UUID       `mapstructure:"id"`
	AccountID        uuid.UUID       `mapstructure:"account_id"`
	Title            string          `mapstructure:"title"`
	Tag              string          `mapstructure:"tag"`
	AcquiredAt       time.Time       `mapstructure:"acquired_at"`
	Amount           amount.Amount   `mapstructure:"amount"`
	Type             string          `mapstructure:"expense_type"`
	Installments     int             `mapstructure:"installments"`
	FirstPaymentDate *time.Time      `mapstructure:"first_payment_date"`
	Status           string          `mapstructure:"status"`
	CategoryID       *uuid.UUID      `mapstructure:"category_id"`
	Payments         []paymentRecord `mapstructure:"payments"`
}

func (p *Payment) ToMap() map[string]any {
	return map[string]any{
		"id":             p.ID.String(),
		"expense_id":     p.ExpenseID.String(),
		"amount":         p.Amount.String(),
		"no_installment": p.Installment,
		"status":         string(p.Status),
		"payment_date":   mapping.OptionalDate(p.Date),
	}
}

// PaymentFromMap is the inverse of Payment.ToMap.
func PaymentFromMap(m map[string]any) (*Payment, error) {
	var rec paymentRecord
	if err := mapping.Decode(m, &rec); err != nil {
		return nil, fmt.Errorf("decoding payment: %w", err)
	}

	return rec.payment()
}

func (r paymentRecord) payment() (*Payment, error) {
	status, err := ParsePaymentStatus(r.Status)
	if err != nil {
		return nil, fmt.Errorf("decoding payment %s: %w", r.ID, err)
	}

	return &Payment{
		ID:          r.ID,
		ExpenseID:   r.ExpenseID,
		Amount:      r.Amount,
		Installment: r.Installment,
		Status:      status,
		Date:        r.Date,
	}, nil
}

func (b *Base) toMap() map[string]any {
	payments := make([]map[string]any, len(b.payments))
	for i, p := range b.payments {
		payments[i] = p.ToMap()
	}

	return map[string]any{
		"id":                 b.ID.String(),
		"account_id":         b.AccountID.String(),
		"title":              b.Title,
		"tag":                b.Tag,
		"acquired_at":        mapping.Date(b.AcquiredAt),
		"amount":             b.Amount.String(),
		"expense_type":       string(b.kind),
		"installments":       b.Installments,
		"first_payment_date": mapping.OptionalDate(b.FirstPaymentDate),
		"status":             string(b.status),
		"category_id":        mapping.OptionalString(b.CategoryID),
		"payments":           payments,
	}
}

func (p *Purchase) ToMap() map[string]any {
	return p.toMap()
}

func (s *Subscription) ToMap() map[string]any {
	return s.toMap()
}

// FromMap rebuilds a Purchase or a Subscription depending on the map's expense_type.
func FromMap(m map[string]any) (Expense, error) {
	var rec expenseRecord
	if err := mapping.Decode(m, &rec); err != nil {
		return nil, fmt.Errorf("decoding expense: %w", err)
	}

	payments := make([]*Payment, 0, len(rec.Payments))
	for _, pr := range rec.Payments {
		p, err := pr.payment()
		if err != nil {
			return nil, err
		}

		payments = append(payments, p)
	}

	switch Type(rec.Type) {
	case TypePurchase:
		p, err := RestorePurchase(PurchaseParams{
			ID:               rec.ID,
			AccountID:        rec.AccountID,
			Title:            rec.Title,
			Tag:              rec.Tag,
			AcquiredAt:       rec.AcquiredAt,
			Amount:           rec.Amount,
			Installments:     rec.Installments,
			FirstPaymentDate: rec.FirstPaymentDate,
			CategoryID:       rec.CategoryID,
			Payments:         payments,
		})
		if err != nil {
			return nil, err
		}

		return p, nil
	case TypeSubscription:
		s, err := RestoreSubscription(SubscriptionParams{
			ID:               rec.ID,
			AccountID:        rec.AccountID,
			Title:            rec.Title,
			Tag:              rec.Tag,
			AcquiredAt:       rec.AcquiredAt,
			Amount:           rec.Amount,
			FirstPaymentDate: rec.FirstPaymentDate,
			CategoryID:       rec.CategoryID,
			Status:           Status(rec.Status),
			Payments:         payments,
		})
		if err != nil {
			return nil, err
		}

		return s, nil
	default:
		return nil, fmt.Errorf("decoding expense: unknown expense type %q", rec.Type)
	}
}
