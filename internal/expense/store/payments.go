package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cuotas/internal/database"
	"github.com/MrJamesThe3rd/cuotas/internal/expense"
	"github.com/MrJamesThe3rd/cuotas/internal/pagination"
)

// PaymentStore reads payments directly. Writes go through Store.Save.
type PaymentStore struct {
	db *sql.DB
}

func NewPaymentStore(db *sql.DB) *PaymentStore {
	return &PaymentStore{db: db}
}

var paymentFilterColumns = map[string]string{
	"expense_id": "p.expense_id",
	"status":     "p.status",
}

const selectPaymentColumns = `p.id, p.expense_id, p.amount, p.no_installment, p.status, p.payment_date`

func scanPayment(s scanner) (*expense.Payment, error) {
	var (
		p         expense.Payment
		statusStr string
	)

	if err := s.Scan(&p.ID, &p.ExpenseID, &p.Amount, &p.Installment, &statusStr, &p.Date); err != nil {
		return nil, err
	}

	status, err := expense.ParsePaymentStatus(statusStr)
	if err != nil {
		return nil, err
	}

	p.Status = status

	return &p, nil
}

func selectPayments(ctx context.Context, q queryer, cond string, args ...any) ([]*expense.Payment, error) {
	query := `SELECT ` + selectPaymentColumns + ` FROM payments p` + database.And(cond) +
		` ORDER BY p.expense_id, p.no_installment ASC`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []*expense.Payment

	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment rows: %w", err)
	}

	return payments, nil
}

func (s *PaymentStore) GetByID(ctx context.Context, id uuid.UUID) (*expense.Payment, error) {
	query := `SELECT ` + selectPaymentColumns + ` FROM payments p WHERE p.id = $1`

	p, err := scanPayment(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", expense.ErrPaymentNotFound, id)
		}

		return nil, fmt.Errorf("getting payment: %w", err)
	}

	return p, nil
}

func (s *PaymentStore) GetByExpenseID(ctx context.Context, expenseID uuid.UUID, page, pageSize int, filter pagination.Filter) (pagination.Page[*expense.Payment], error) {
	return s.list(ctx, "p.expense_id = $1", []any{expenseID}, page, pageSize, filter)
}

// GetByDateRange returns payments dated in [start, end).
func (s *PaymentStore) GetByDateRange(ctx context.Context, start, end time.Time, page, pageSize int, filter pagination.Filter) (pagination.Page[*expense.Payment], error) {
	return s.list(ctx, "p.payment_date >= $1 AND p.payment_date < $2", []any{start, end}, page, pageSize, filter)
}

func (s *PaymentStore) list(ctx context.Context, cond string, args []any, page, pageSize int, filter pagination.Filter) (pagination.Page[*expense.Payment], error) {
	filterCond, filterArgs, err := database.Where(filter, paymentFilterColumns, len(args)+1)
	if err != nil {
		return pagination.Page[*expense.Payment]{}, fmt.Errorf("listing payments: %w", err)
	}

	where := database.And(cond, filterCond)
	args = append(args, filterArgs...)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM payments p`+where, args...).Scan(&total); err != nil {
		return pagination.Page[*expense.Payment]{}, fmt.Errorf("counting payments: %w", err)
	}

	query := `SELECT ` + selectPaymentColumns + ` FROM payments p` + where +
		fmt.Sprintf(" ORDER BY p.payment_date ASC NULLS FIRST, p.no_installment ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)

	rows, err := s.db.QueryContext(ctx, query, append(args, pageSize, pagination.Offset(page, pageSize))...)
	if err != nil {
		return pagination.Page[*expense.Payment]{}, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []*expense.Payment

	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return pagination.Page[*expense.Payment]{}, fmt.Errorf("scanning payment: %w", err)
		}

		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return pagination.Page[*expense.Payment]{}, fmt.Errorf("iterating payment rows: %w", err)
	}

	return pagination.NewPage(payments, total, page, pageSize), nil
}

func (s *PaymentStore) Count(ctx context.Context, filter pagination.Filter) (int, error) {
	cond, args, err := database.Where(filter, paymentFilterColumns, 1)
	if err != nil {
		return 0, fmt.Errorf("counting payments: %w", err)
	}

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM payments p`+database.And(cond), args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting payments: %w", err)
	}

	return n, nil
}

func (s *PaymentStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM payments WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking payment: %w", err)
	}

	return exists, nil
}
