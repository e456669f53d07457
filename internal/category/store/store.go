package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cuotas/internal/category"
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

const selectCategoryColumns = `id, owner_id, name, description, is_income`

func scanCategory(s scanner) (*category.Category, error) {
	var c category.Category
	if err := s.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Description, &c.IsIncome); err != nil {
		return nil, err
	}

	return &c, nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	query := `SELECT ` + selectCategoryColumns + ` FROM categories WHERE id = $1`

	c, err := scanCategory(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, category.ErrNotFound
		}

		return nil, fmt.Errorf("getting category: %w", err)
	}

	return c, nil
}

func (s *Store) Save(ctx context.Context, c *category.Category) error {
	query := `
		INSERT INTO categories (id, owner_id, name, description, is_income)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			is_income = EXCLUDED.is_income
	`

	if _, err := s.db.ExecContext(ctx, query, c.ID, c.OwnerID, c.Name, c.Description, c.IsIncome); err != nil {
		return fmt.Errorf("saving category: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	return nil
}

func (s *Store) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking category: %w", err)
	}

	return exists, nil
}

func (s *Store) GetByOwnerID(ctx context.Context, ownerID uuid.UUID, page, pageSize int) (pagination.Page[*category.Category], error) {
	return s.list(ctx, `owner_id = $1`, []any{ownerID}, page, pageSize)
}

func (s *Store) GetByIncomeType(ctx context.Context, ownerID uuid.UUID, isIncome bool, page, pageSize int) (pagination.Page[*category.Category], error) {
	return s.list(ctx, `owner_id = $1 AND is_income = $2`, []any{ownerID, isIncome}, page, pageSize)
}

func (s *Store) list(ctx context.Context, cond string, args []any, page, pageSize int) (pagination.Page[*category.Category], error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories WHERE `+cond, args...).Scan(&total); err != nil {
		return pagination.Page[*category.Category]{}, fmt.Errorf("counting categories: %w", err)
	}

	query := `SELECT ` + selectCategoryColumns + ` FROM categories WHERE ` + cond +
		fmt.Sprintf(` ORDER BY name ASC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)

	rows, err := s.db.QueryContext(ctx, query, append(args, pageSize, pagination.Offset(page, pageSize))...)
	if err != nil {
		return pagination.Page[*category.Category]{}, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []*category.Category

	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return pagination.Page[*category.Category]{}, fmt.Errorf("scanning category: %w", err)
		}

		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return pagination.Page[*category.Category]{}, fmt.Errorf("iterating category rows: %w", err)
	}

	return pagination.NewPage(categories, total, page, pageSize), nil
}
