package period

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=period

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/cuotas/internal/amount"
	"github.com/MrJamesThe3rd/cuotas/internal/calendar"
	"github.com/MrJamesThe3rd/cuotas/internal/pagination"
)

type Repository interface {
	GetAll(ctx context.Context, page, pageSize int, filter pagination.Filter) (pagination.Page[*Period], error)
	GetByMonthAndYear(ctx context.Context, month calendar.Month, year calendar.Year, filter pagination.Filter) (*Period, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Summary is the totals view of one period.
type Summary struct {
	Month    calendar.Month
	Year     calendar.Year
	Payments int
	Total    amount.Amount
	OneTime  amount.Amount
	Last     amount.Amount
}

func Summarize(p *Period) Summary {
	return Summary{
		Month:    p.Month,
		Year:     p.Year,
		Payments: len(p.entries),
		Total:    p.TotalAmount(),
		OneTime:  p.TotalOneTimePayments(),
		Last:     p.TotalLastPayments(),
	}
}

// Build loads the period with every payment dated in month and year.
func (s *Service) Build(ctx context.Context, month calendar.Month, year calendar.Year, filter pagination.Filter) (*Period, error) {
	p, err := s.repo.GetByMonthAndYear(ctx, month, year, filter)
	if err != nil {
		return nil, fmt.Errorf("building period %s-%s: %w", year, month, err)
	}

	return p, nil
}

// Forecast summarizes n consecutive periods starting at month and year.
func (s *Service) Forecast(ctx context.Context, month calendar.Month, year calendar.Year, n int, filter pagination.Filter) ([]Summary, error) {
	summaries := make([]Summary, 0, max(n, 0))

	for range n {
		p, err := s.Build(ctx, month, year, filter)
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, Summarize(p))

		if month == 12 {
			year++
		}

		month = month.Next()
	}

	return summaries, nil
}

func (s *Service) List(ctx context.Context, page, pageSize int, filter pagination.Filter) (pagination.Page[*Period], error) {
	periods, err := s.repo.GetAll(ctx, page, pageSize, filter)
	if err != nil {
		return pagination.Page[*Period]{}, fmt.Errorf("listing periods: %w", err)
	}

	return periods, nil
}
