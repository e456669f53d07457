package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cuotas/internal/account"
	"github.com/MrJamesThe3rd/cuotas/internal/database"
	"github.com/MrJamesThe3rd/cuotas/internal/pagination"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

var filterColumns = map[string]string{
	"owner_id":            "owner_id",
	"enabled":             "enabled",
	"main_credit_card_id": "main_credit_card_id",
}

const selectCardColumns = `
	id, owner_id, alias, credit_limit, enabled, financing_limit,
	main_credit_card_id, next_closing_date, next_expiring_date
`

// scanCard goes through the map form so the entity's setters validate stored values.
func scanCard(s scanner) (*account.CreditCard, error) {
	var (
		id, ownerID                  uuid.UUID
		alias, limit, financingLimit string
		enabled                      bool
		mainCardID                   *uuid.UUID
		closing, expiring            sql.NullTime
	)

	if err := s.Scan(&id, &ownerID, &alias, &limit, &enabled, &financingLimit, &mainCardID, &closing, &expiring); err != nil {
		return nil, err
	}

	m := map[string]any{
		"id":              id,
		"owner_id":        ownerID,
		"alias":           alias,
		"limit":           limit,
		"is_enabled":      enabled,
		"financing_limit": financingLimit,
	}

	if mainCardID != nil {
		m["main_credit_card_id"] = *mainCardID
	}

	if closing.Valid {
		m["next_closing_date"] = closing.Time
	}

	if expiring.Valid {
		m["next_expiring_date"] = expiring.Time
	}

	return account.CreditCardFromMap(m)
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*account.CreditCard, error) {
	query := `SELECT ` + selectCardColumns + ` FROM accounts WHERE id = $1`

	c, err := scanCard(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, account.ErrNotFound
		}

		return nil, fmt.Errorf("getting credit card: %w", err)
	}

	return c, nil
}

func (s *Store) GetOne(ctx context.Context, filter pagination.Filter) (*account.CreditCard, error) {
	page, err := s.GetPaginated(ctx, 1, 1, filter)
	if err != nil {
		return nil, err
	}

	if len(page.Items) == 0 {
		return nil, account.ErrNotFound
	}

	return page.Items[0], nil
}

func (s *Store) GetPaginated(ctx context.Context, page, pageSize int, filter pagination.Filter) (pagination.Page[*account.CreditCard], error) {
	return s.list(ctx, "", nil, page, pageSize, filter)
}

func (s *Store) GetByOwnerID(ctx context.Context, ownerID uuid.UUID, page, pageSize int, filter pagination.Filter) (pagination.Page[*account.CreditCard], error) {
	return s.list(ctx, "owner_id = $1", []any{ownerID}, page, pageSize, filter)
}

func (s *Store) list(ctx context.Context, cond string, args []any, page, pageSize int, filter pagination.Filter) (pagination.Page[*account.CreditCard], error) {
	filterCond, filterArgs, err := database.Where(filter, filterColumns, len(args)+1)
	if err != nil {
		return pagination.Page[*account.CreditCard]{}, fmt.Errorf("listing credit cards: %w", err)
	}

	where := database.And(cond, filterCond)
	args = append(args, filterArgs...)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`+where, args...).Scan(&total); err != nil {
		return pagination.Page[*account.CreditCard]{}, fmt.Errorf("counting credit cards: %w", err)
	}

	query := `SELECT ` + selectCardColumns + ` FROM accounts` + where +
		fmt.Sprintf(" ORDER BY alias ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)

	rows, err := s.db.QueryContext(ctx, query, append(args, pageSize, pagination.Offset(page, pageSize))...)
	if err != nil {
		return pagination.Page[*account.CreditCard]{}, fmt.Errorf("listing credit cards: %w", err)
	}
	defer rows.Close()

	var cards []*account.CreditCard

	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return pagination.Page[*account.CreditCard]{}, fmt.Errorf("scanning credit card: %w", err)
		}

		cards = append(cards, c)
	}

	if err := rows.Err(); err != nil {
		return pagination.Page[*account.CreditCard]{}, fmt.Errorf("iterating credit card rows: %w", err)
	}

	return pagination.NewPage(cards, total, page, pageSize), nil
}

func (s *Store) Save(ctx context.Context, c *account.CreditCard) error {
	query := `
		INSERT INTO accounts (id, owner_id, alias, credit_limit, enabled, financing_limit, main_credit_card_id, next_closing_date, next_expiring_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			alias = EXCLUDED.alias,
			credit_limit = EXCLUDED.credit_limit,
			enabled = EXCLUDED.enabled,
			financing_limit = EXCLUDED.financing_limit,
			main_credit_card_id = EXCLUDED.main_credit_card_id,
			next_closing_date = EXCLUDED.next_closing_date,
			next_expiring_date = EXCLUDED.next_expiring_date
	`

	if _, err := s.db.ExecContext(ctx, query,
		c.ID,
		c.OwnerID,
		c.Alias(),
		c.Limit(),
		c.Enabled,
		c.FinancingLimit(),
		c.MainCreditCardID,
		c.NextClosingDate,
		c.NextExpiringDate,
	); err != nil {
		return fmt.Errorf("saving credit card: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting credit card: %w", err)
	}

	return nil
}

func (s *Store) Count(ctx context.Context, filter pagination.Filter) (int, error) {
	cond, args, err := database.Where(filter, filterColumns, 1)
	if err != nil {
		return 0, fmt.Errorf("counting credit cards: %w", err)
	}

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`+database.And(cond), args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting credit cards: %w", err)
	}

	return n, nil
}

func (s *Store) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking credit card: %w", err)
	}

	return exists, nil
}
