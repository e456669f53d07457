package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cuotas/internal/pagination"
)

var ErrNotFound = errors.New("category not found")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	Save(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	GetByOwnerID(ctx context.Context, ownerID uuid.UUID, page, pageSize int) (pagination.Page[*Category], error)
	GetByIncomeType(ctx context.Context, ownerID uuid.UUID, isIncome bool, page, pageSize int) (pagination.Page[*Category], error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, name, description string, isIncome bool) (*Category, error) {
	c, err := NewCategory(ownerID, name, description, isIncome)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("saving category: %w", err)
	}

	return c, nil
}

func (s *Service) Rename(ctx context.Context, id uuid.UUID, name string) (*Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.SetName(name); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("saving category: %w", err)
	}

	return c, nil
}

// List returns an owner's categories. A nil isIncome returns both kinds.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID, isIncome *bool, page, pageSize int) (pagination.Page[*Category], error) {
	if isIncome == nil {
		return s.repo.GetByOwnerID(ctx, ownerID, page, pageSize)
	}

	return s.repo.GetByIncomeType(ctx, ownerID, *isIncome, page, pageSize)
}
