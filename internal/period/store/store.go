package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/cuotas/internal/calendar"
	"github.com/MrJamesThe3rd/cuotas/internal/database"
	"github.com/MrJamesThe3rd/cuotas/internal/expense"
	"github.com/MrJamesThe3rd/cuotas/internal/pagination"
	"github.com/MrJamesThe3rd/cuotas/internal/period"
)

// Store derives periods from dated payments; periods have no table of their own.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

var filterColumns = map[string]string{
	"account_id":   "e.account_id",
	"expense_type": "e.expense_type",
	"status":       "p.status",
}

const fromPayments = ` FROM payments p JOIN expenses e ON e.id = p.expense_id`

func (s *Store) GetByMonthAndYear(ctx context.Context, month calendar.Month, year calendar.Year, filter pagination.Filter) (*period.Period, error) {
	start, end := calendar.Bounds(month, year)

	filterCond, filterArgs, err := database.Where(filter, filterColumns, 3)
	if err != nil {
		return nil, fmt.Errorf("getting period: %w", err)
	}

	query := `SELECT p.id, p.expense_id, p.amount, p.no_installment, p.status, p.payment_date, e.installments` +
		fromPayments + database.And("p.payment_date >= $1 AND p.payment_date < $2", filterCond) +
		` ORDER BY p.payment_date ASC, p.no_installment ASC`

	rows, err := s.db.QueryContext(ctx, query, append([]any{start, end}, filterArgs...)...)
	if err != nil {
		return nil, fmt.Errorf("getting period: %w", err)
	}
	defer rows.Close()

	p := period.New(month, year)

	for rows.Next() {
		var (
			pay          expense.Payment
			statusStr    string
			installments int
		)

		if err := rows.Scan(&pay.ID, &pay.ExpenseID, &pay.Amount, &pay.Installment, &statusStr, &pay.Date, &installments); err != nil {
			return nil, fmt.Errorf("scanning period payment: %w", err)
		}

		if pay.Status, err = expense.ParsePaymentStatus(statusStr); err != nil {
			return nil, fmt.Errorf("scanning period payment: %w", err)
		}

		p.Add(&pay, installments)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating period rows: %w", err)
	}

	return p, nil
}

// GetAll pages through the months that have at least one matching dated payment, oldest first.
func (s *Store) GetAll(ctx context.Context, page, pageSize int, filter pagination.Filter) (pagination.Page[*period.Period], error) {
	filterCond, filterArgs, err := database.Where(filter, filterColumns, 1)
	if err != nil {
		return pagination.Page[*period.Period]{}, fmt.Errorf("listing periods: %w", err)
	}

	where := database.And("p.payment_date IS NOT NULL", filterCond)
	buckets := `SELECT EXTRACT(YEAR FROM p.payment_date)::int AS y, EXTRACT(MONTH FROM p.payment_date)::int AS m` +
		fromPayments + where + ` GROUP BY 1, 2`

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM (`+buckets+`) b`, filterArgs...).Scan(&total); err != nil {
		return pagination.Page[*period.Period]{}, fmt.Errorf("counting periods: %w", err)
	}

	query := buckets + fmt.Sprintf(" ORDER BY 1, 2 LIMIT $%d OFFSET $%d", len(filterArgs)+1, len(filterArgs)+2)

	rows, err := s.db.QueryContext(ctx, query, append(filterArgs, pageSize, pagination.Offset(page, pageSize))...)
	if err != nil {
		return pagination.Page[*period.Period]{}, fmt.Errorf("listing periods: %w", err)
	}

	type bucket struct {
		month calendar.Month
		year  calendar.Year
	}

	var months []bucket

	for rows.Next() {
		var y, m int
		if err := rows.Scan(&y, &m); err != nil {
			rows.Close()
			return pagination.Page[*period.Period]{}, fmt.Errorf("scanning period: %w", err)
		}

		months = append(months, bucket{month: calendar.Month(m), year: calendar.Year(y)})
	}

	rows.Close()

	if err := rows.Err(); err != nil {
		return pagination.Page[*period.Period]{}, fmt.Errorf("iterating period rows: %w", err)
	}

	periods := make([]*period.Period, 0, len(months))

	for _, b := range months {
		p, err := s.GetByMonthAndYear(ctx, b.month, b.year, filter)
		if err != nil {
			return pagination.Page[*period.Period]{}, err
		}

		periods = append(periods, p)
	}

	return pagination.NewPage(periods, total, page, pageSize), nil
}
