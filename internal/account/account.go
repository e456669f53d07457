// Package account models the accounts expenses are charged to. Credit cards are the only kind.
package account

import (
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cuotas/internal/amount"
	"github.com/MrJamesThe3rd/cuotas/internal/validation"
)

// Account holds what every account kind shares.
type Account struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	Enabled bool

	alias string
	limit amount.Amount
}

// NewAccount returns an enabled account.
func NewAccount(ownerID uuid.UUID, alias string, limit amount.Amount) (Account, error) {
	a := Account{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Enabled: true,
	}

	if err := a.SetAlias(alias); err != nil {
		return Account{}, err
	}

	if err := a.SetLimit(limit); err != nil {
		return Account{}, err
	}

	return a, nil
}

func (a *Account) Alias() string {
	return a.alias
}

func (a *Account) SetAlias(alias string) error {
	alias = strings.TrimSpace(alias)
	if alias == "" {
		return validation.New("alias", "cannot be empty")
	}

	a.alias = alias

	return nil
}

func (a *Account) Limit() amount.Amount {
	return a.limit
}

func (a *Account) SetLimit(limit amount.Amount) error {
	if limit.IsNegative() {
		return validation.New("limit", "cannot be negative")
	}

	a.limit = limit

	return nil
}
