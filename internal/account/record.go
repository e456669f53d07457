package account

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cuotas/internal/amount"
	"github.com/MrJamesThe3rd/cuotas/internal/mapping"
)

type creditCardRecord struct {
	ID               uuid.UUID     `mapstructure:"id"`
	OwnerID          uuid.UUID     `mapstructure:"owner_id"`
	Alias            string        `mapstructure:"alias"`
	Limit            amount.Amount `mapstructure:"limit"`
	Enabled          bool          `mapstructure:"is_enabled"`
	MainCreditCardID *uuid.UUID    `mapstructure:"main_credit_card_id"`
	NextClosingDate  *time.Time    `mapstructure:"next_closing_date"`
	NextExpiringDate *time.Time    `mapstructure:"next_expiring_date"`
	FinancingLimit   amount.Amount `mapstructure:"financing_limit"`
}

// ToMap leaves the carried expenses out; they are stored on their own.
func (c *CreditCard) ToMap() map[string]any {
	return map[string]any{
		"id":                  c.ID.String(),
		"owner_id":            c.OwnerID.String(),
		"alias":               c.alias,
		"limit":               c.limit.String(),
		"is_enabled":          c.Enabled,
		"main_credit_card_id": mapping.OptionalString(c.MainCreditCardID),
		"next_closing_date":   mapping.OptionalDate(c.NextClosingDate),
		"next_expiring_date":  mapping.OptionalDate(c.NextExpiringDate),
		"financing_limit":     c.financingLimit.String(),
	}
}

func CreditCardFromMap(m map[string]any) (*CreditCard, error) {
	var rec creditCardRecord
	if err := mapping.Decode(m, &rec); err != nil {
		return nil, fmt.Errorf("decoding credit card: %w", err)
	}

	return rec.creditCard()
}

func (r creditCardRecord) creditCard() (*CreditCard, error) {
	c := &CreditCard{
		Account: Account{
			ID:      r.ID,
			OwnerID: r.OwnerID,
			Enabled: r.Enabled,
		},
		NextClosingDate:  r.NextClosingDate,
		NextExpiringDate: r.NextExpiringDate,
	}

	for _, set := range []func() error{
		func() error { return c.SetAlias(r.Alias) },
		func() error { return c.SetLimit(r.Limit) },
		func() error { return c.SetFinancingLimit(r.FinancingLimit) },
		func() error { return c.SetMainCreditCardID(r.MainCreditCardID) },
	} {
		if err := set(); err != nil {
			return nil, fmt.Errorf("decoding credit card %s: %w", r.ID, err)
		}
	}

	return c, nil
}
