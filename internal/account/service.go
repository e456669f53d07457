package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cuotas/internal/amount"
	"github.com/MrJamesThe3rd/cuotas/internal/expense"
	"github.com/MrJamesThe3rd/cuotas/internal/pagination"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=account
type Repository interface {
	GetPaginated(ctx context.Context, page, pageSize int, filter pagination.Filter) (pagination.Page[*CreditCard], error)
	GetOne(ctx context.Context, filter pagination.Filter) (*CreditCard, error)
	GetByID(ctx context.Context, id uuid.UUID) (*CreditCard, error)
	Save(ctx context.Context, c *CreditCard) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter pagination.Filter) (int, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	GetByOwnerID(ctx context.Context, ownerID uuid.UUID, page, pageSize int, filter pagination.Filter) (pagination.Page[*CreditCard], error)
}

// ExpenseSource lists the expenses charged to a set of accounts.
type ExpenseSource interface {
	GetByAccountIDs(ctx context.Context, accountIDs []uuid.UUID, page, pageSize int, filter pagination.Filter) (pagination.Page[expense.Expense], error)
}

const expensePageSize = 100

type Service struct {
	repo     Repository
	expenses ExpenseSource
}

func NewService(repo Repository, expenses ExpenseSource) *Service {
	return &Service{repo: repo, expenses: expenses}
}

// Limits is a snapshot of a card's figures.
type Limits struct {
	CardID                  uuid.UUID
	Alias                   string
	Limit                   amount.Amount
	FinancingLimit          amount.Amount
	Balance                 amount.Amount
	AvailableLimit          amount.Amount
	AvailableFinancingLimit amount.Amount
}

// Load returns the card with every expense charged to it.
func (s *Service) Load(ctx context.Context, cardID uuid.UUID) (*CreditCard, error) {
	card, err := s.repo.GetByID(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("getting credit card: %w", err)
	}

	for page := 1; ; page++ {
		res, err := s.expenses.GetByAccountIDs(ctx, []uuid.UUID{cardID}, page, expensePageSize, nil)
		if err != nil {
			return nil, fmt.Errorf("listing expenses: %w", err)
		}

		for _, e := range res.Items {
			if err := card.AddExpense(e); err != nil {
				return nil, err
			}
		}

		if !res.HasNext() {
			break
		}
	}

	return card, nil
}

func (s *Service) Limits(ctx context.Context, cardID uuid.UUID) (Limits, error) {
	card, err := s.Load(ctx, cardID)
	if err != nil {
		return Limits{}, err
	}

	return Limits{
		CardID:                  card.ID,
		Alias:                   card.Alias(),
		Limit:                   card.Limit(),
		FinancingLimit:          card.FinancingLimit(),
		Balance:                 card.Balance(),
		AvailableLimit:          card.AvailableLimit(),
		AvailableFinancingLimit: card.AvailableFinancingLimit(),
	}, nil
}
