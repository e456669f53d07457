package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cuotas/internal/amount"
	"github.com/MrJamesThe3rd/cuotas/internal/database"
	"github.com/MrJamesThe3rd/cuotas/internal/expense"
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

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

var expenseFilterColumns = map[string]string{
	"account_id":   "e.account_id",
	"expense_type": "e.expense_type",
	"status":       "e.status",
	"category_id":  "e.category_id",
	"tag":          "e.tag",
}

const selectExpenseColumns = `
	e.id, e.account_id, e.title, e.tag, e.acquired_at, e.amount, e.expense_type,
	e.installments, e.first_payment_date, e.status, e.category_id
`

// expenseRow is an expenses row before its payments are attached.
type expenseRow struct {
	id               uuid.UUID
	accountID        uuid.UUID
	title            string
	tag              string
	acquiredAt       time.Time
	amount           amount.Amount
	kind             string
	installments     int
	firstPaymentDate *time.Time
	status           string
	categoryID       *uuid.UUID
}

// scanExpense reads a row in selectExpenseColumns order.
func scanExpense(s scanner) (*expenseRow, error) {
	var r expenseRow
	if err := s.Scan(
		&r.id, &r.accountID, &r.title, &r.tag, &r.acquiredAt, &r.amount, &r.kind,
		&r.installments, &r.firstPaymentDate, &r.status, &r.categoryID,
	); err != nil {
		return nil, err
	}

	return &r, nil
}

func (r *expenseRow) build(payments []*expense.Payment) (expense.Expense, error) {
	switch expense.Type(r.kind) {
	case expense.TypePurchase:
		p, err := expense.RestorePurchase(expense.PurchaseParams{
			ID:               r.id,
			AccountID:        r.accountID,
			Title:            r.title,
			Tag:              r.tag,
			AcquiredAt:       r.acquiredAt,
			Amount:           r.amount,
			Installments:     r.installments,
			FirstPaymentDate: r.firstPaymentDate,
			CategoryID:       r.categoryID,
			Payments:         payments,
		})
		if err != nil {
			return nil, err
		}

		return p, nil
	case expense.TypeSubscription:
		s, err := expense.RestoreSubscription(expense.SubscriptionParams{
			ID:               r.id,
			AccountID:        r.accountID,
			Title:            r.title,
			Tag:              r.tag,
			AcquiredAt:       r.acquiredAt,
			Amount:           r.amount,
			FirstPaymentDate: r.firstPaymentDate,
			CategoryID:       r.categoryID,
			Status:           expense.Status(r.status),
			Payments:         payments,
		})
		if err != nil {
			return nil, err
		}

		return s, nil
	default:
		return nil, fmt.Errorf("unknown expense type %q", r.kind)
	}
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (expense.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + ` FROM expenses e WHERE e.id = $1`

	row, err := scanExpense(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, expense.ErrNotFound
		}

		return nil, fmt.Errorf("getting expense: %w", err)
	}

	expenses, err := s.attachPayments(ctx, []*expenseRow{row})
	if err != nil {
		return nil, err
	}

	return expenses[0], nil
}

func (s *Store) GetOne(ctx context.Context, filter pagination.Filter) (expense.Expense, error) {
	page, err := s.GetPaginated(ctx, 1, 1, filter)
	if err != nil {
		return nil, err
	}

	if len(page.Items) == 0 {
		return nil, expense.ErrNotFound
	}

	return page.Items[0], nil
}

func (s *Store) GetPaginated(ctx context.Context, page, pageSize int, filter pagination.Filter) (pagination.Page[expense.Expense], error) {
	return s.list(ctx, "", nil, page, pageSize, filter)
}

func (s *Store) GetByAccountIDs(ctx context.Context, accountIDs []uuid.UUID, page, pageSize int, filter pagination.Filter) (pagination.Page[expense.Expense], error) {
	return s.list(ctx, "e.account_id = ANY($1::uuid[])", []any{uuidStrings(accountIDs)}, page, pageSize, filter)
}

// list runs a paged select. cond may reference args as $1..$len(args); filter placeholders follow.
func (s *Store) list(ctx context.Context, cond string, args []any, page, pageSize int, filter pagination.Filter) (pagination.Page[expense.Expense], error) {
	filterCond, filterArgs, err := database.Where(filter, expenseFilterColumns, len(args)+1)
	if err != nil {
		return pagination.Page[expense.Expense]{}, fmt.Errorf("listing expenses: %w", err)
	}

	where := database.And(cond, filterCond)
	args = append(args, filterArgs...)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expenses e`+where, args...).Scan(&total); err != nil {
		return pagination.Page[expense.Expense]{}, fmt.Errorf("counting expenses: %w", err)
	}

	query := `SELECT ` + selectExpenseColumns + ` FROM expenses e` + where +
		fmt.Sprintf(" ORDER BY e.acquired_at ASC, e.id ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)

	rows, err := s.db.QueryContext(ctx, query, append(args, pageSize, pagination.Offset(page, pageSize))...)
	if err != nil {
		return pagination.Page[expense.Expense]{}, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var found []*expenseRow

	for rows.Next() {
		row, err := scanExpense(rows)
		if err != nil {
			return pagination.Page[expense.Expense]{}, fmt.Errorf("scanning expense: %w", err)
		}

		found = append(found, row)
	}

	if err := rows.Err(); err != nil {
		return pagination.Page[expense.Expense]{}, fmt.Errorf("iterating expense rows: %w", err)
	}

	items, err := s.attachPayments(ctx, found)
	if err != nil {
		return pagination.Page[expense.Expense]{}, err
	}

	return pagination.NewPage(items, total, page, pageSize), nil
}

// attachPayments loads the schedules of all rows with one query and builds the expenses.
func (s *Store) attachPayments(ctx context.Context, rows []*expenseRow) ([]expense.Expense, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, len(rows))
	for i, r := range rows {
		ids[i] = r.id
	}

	payments, err := selectPayments(ctx, s.db, "p.expense_id = ANY($1::uuid[])", uuidStrings(ids))
	if err != nil {
		return nil, err
	}

	byExpense := make(map[uuid.UUID][]*expense.Payment, len(rows))
	for _, p := range payments {
		byExpense[p.ExpenseID] = append(byExpense[p.ExpenseID], p)
	}

	out := make([]expense.Expense, 0, len(rows))

	for _, r := range rows {
		e, err := r.build(byExpense[r.id])
		if err != nil {
			return nil, fmt.Errorf("building expense %s: %w", r.id, err)
		}

		out = append(out, e)
	}

	return out, nil
}

// Save upserts the expense and replaces its schedule. Both happen in one database transaction.
func (s *Store) Save(ctx context.Context, e expense.Expense) error {
	b := e.Common()

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	expenseQuery := `
		INSERT INTO expenses (id, account_id, title, tag, acquired_at, amount, expense_type, installments, first_payment_date, status, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			account_id = EXCLUDED.account_id,
			title = EXCLUDED.title,
			tag = EXCLUDED.tag,
			acquired_at = EXCLUDED.acquired_at,
			amount = EXCLUDED.amount,
			installments = EXCLUDED.installments,
			first_payment_date = EXCLUDED.first_payment_date,
			status = EXCLUDED.status,
			category_id = EXCLUDED.category_id
	`

	if _, err := dbTx.ExecContext(ctx, expenseQuery,
		b.ID,
		b.AccountID,
		b.Title,
		b.Tag,
		b.AcquiredAt,
		b.Amount,
		b.Type(),
		b.Installments,
		b.FirstPaymentDate,
		b.Status(),
		b.CategoryID,
	); err != nil {
		return fmt.Errorf("upserting expense: %w", err)
	}

	payments := b.Payments()

	ids := make([]uuid.UUID, len(payments))
	for i, p := range payments {
		ids[i] = p.ID
	}

	if _, err := dbTx.ExecContext(ctx,
		`DELETE FROM payments WHERE expense_id = $1 AND NOT (id = ANY($2::uuid[]))`,
		b.ID, uuidStrings(ids),
	); err != nil {
		return fmt.Errorf("deleting removed payments: %w", err)
	}

	paymentQuery := `
		INSERT INTO payments (id, expense_id, amount, no_installment, status, payment_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			amount = EXCLUDED.amount,
			no_installment = EXCLUDED.no_installment,
			status = EXCLUDED.status,
			payment_date = EXCLUDED.payment_date
	`

	for _, p := range payments {
		if _, err := dbTx.ExecContext(ctx, paymentQuery,
			p.ID,
			p.ExpenseID,
			p.Amount,
			p.Installment,
			p.Status,
			p.Date,
		); err != nil {
			return fmt.Errorf("upserting payment %s: %w", p.ID, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	return nil
}

func (s *Store) Count(ctx context.Context, filter pagination.Filter) (int, error) {
	cond, args, err := database.Where(filter, expenseFilterColumns, 1)
	if err != nil {
		return 0, fmt.Errorf("counting expenses: %w", err)
	}

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expenses e`+database.And(cond), args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting expenses: %w", err)
	}

	return n, nil
}

func (s *Store) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM expenses WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking expense: %w", err)
	}

	return exists, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}

	return out
}
