package expense

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cuotas/internal/amount"
	"github.com/MrJamesThe3rd/cuotas/internal/pagination"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	GetPaginated(ctx context.Context, page, pageSize int, filter pagination.Filter) (pagination.Page[Expense], error)
	GetOne(ctx context.Context, filter pagination.Filter) (Expense, error)
	GetByID(ctx context.Context, id uuid.UUID) (Expense, error)
	Save(ctx context.Context, e Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter pagination.Filter) (int, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	GetByAccountIDs(ctx context.Context, accountIDs []uuid.UUID, page, pageSize int, filter pagination.Filter) (pagination.Page[Expense], error)
}

// PaymentRepository reads payments on their own. Payments are written through their expense.
type PaymentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	GetByExpenseID(ctx context.Context, expenseID uuid.UUID, page, pageSize int, filter pagination.Filter) (pagination.Page[*Payment], error)
	GetByDateRange(ctx context.Context, start, end time.Time, page, pageSize int, filter pagination.Filter) (pagination.Page[*Payment], error)
	Count(ctx context.Context, filter pagination.Filter) (int, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type Service struct {
	repo     Repository
	payments PaymentRepository
}

func NewService(repo Repository, payments PaymentRepository) *Service {
	return &Service{repo: repo, payments: payments}
}

// PaymentUpdate is an observed change to one payment, typically a settlement reported by the bank.
type PaymentUpdate struct {
	PaymentID uuid.UUID
	Status    PaymentStatus
	Amount    *amount.Amount // nil keeps the stored amount
	Date      *time.Time     // nil keeps the stored date
}

// Applied identifies a payment update that was saved.
type Applied struct {
	PaymentID uuid.UUID
	ExpenseID uuid.UUID
	AccountID uuid.UUID
	Date      *time.Time
}

type Failed struct {
	Update PaymentUpdate
	Err    error
}

type ApplyResult struct {
	Applied []Applied
	Failed  []Failed
}

// AccountIDs returns the distinct accounts touched by the applied updates, in first-seen order.
func (r ApplyResult) AccountIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(r.Applied))

	var ids []uuid.UUID

	for _, a := range r.Applied {
		if _, ok := seen[a.AccountID]; ok {
			continue
		}

		seen[a.AccountID] = struct{}{}
		ids = append(ids, a.AccountID)
	}

	return ids
}

func (s *Service) CreatePurchase(ctx context.Context, params PurchaseParams) (*Purchase, error) {
	params.Payments = nil

	p, err := NewPurchase(params)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("saving purchase: %w", err)
	}

	return p, nil
}

func (s *Service) CreateSubscription(ctx context.Context, params SubscriptionParams) (*Subscription, error) {
	params.Payments = nil

	sub, err := NewSubscription(params)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, sub); err != nil {
		return nil, fmt.Errorf("saving subscription: %w", err)
	}

	return sub, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Expense, error) {
	return s.repo.GetByID(ctx, id)
}

// ConfirmPayment marks a payment as confirmed, keeping its amount.
func (s *Service) ConfirmPayment(ctx context.Context, paymentID uuid.UUID) (Expense, error) {
	return s.ApplyUpdate(ctx, PaymentUpdate{PaymentID: paymentID, Status: PaymentConfirmed})
}

// ApplyUpdate loads the expense owning the payment, applies the update through the expense's own
// rules and saves the result.
func (s *Service) ApplyUpdate(ctx context.Context, u PaymentUpdate) (Expense, error) {
	pay, err := s.payments.GetByID(ctx, u.PaymentID)
	if err != nil {
		return nil, fmt.Errorf("getting payment: %w", err)
	}

	e, err := s.repo.GetByID(ctx, pay.ExpenseID)
	if err != nil {
		return nil, fmt.Errorf("getting expense: %w", err)
	}

	if err := applyUpdate(e, u); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, e); err != nil {
		return nil, fmt.Errorf("saving expense: %w", err)
	}

	slog.Info("payment updated",
		"payment_id", u.PaymentID,
		"expense_id", e.Common().ID,
		"status", u.Status,
	)

	return e, nil
}

func applyUpdate(e Expense, u PaymentUpdate) error {
	stored, ok := e.Common().Payment(u.PaymentID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPaymentNotFound, u.PaymentID)
	}

	next := stored.clone()
	if u.Amount != nil {
		next.Amount = *u.Amount
	}

	if u.Date != nil {
		next.Date = copyDate(u.Date)
	}

	switch v := e.(type) {
	case *Purchase:
		next.Status = u.Status
		return v.UpdatePayment(*next)
	case *Subscription:
		next.SetStatus(u.Status)
		return v.UpdatePayment(next.ID, next)
	default:
		return fmt.Errorf("unsupported expense type %T", e)
	}
}

// ApplyEvents applies every update in order. A failing update is recorded and skipped; only a
// cancelled context stops the batch.
func (s *Service) ApplyEvents(ctx context.Context, updates []PaymentUpdate) (ApplyResult, error) {
	var res ApplyResult

	for _, u := range updates {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		e, err := s.ApplyUpdate(ctx, u)
		if err != nil {
			slog.Warn("skipping payment update", "payment_id", u.PaymentID, "error", err)
			res.Failed = append(res.Failed, Failed{Update: u, Err: err})

			continue
		}

		applied := Applied{
			PaymentID: u.PaymentID,
			ExpenseID: e.Common().ID,
			AccountID: e.Common().AccountID,
		}
		if p, ok := e.Common().Payment(u.PaymentID); ok {
			applied.Date = copyDate(p.Date)
		}

		res.Applied = append(res.Applied, applied)
	}

	return res, nil
}

func (s *Service) getSubscription(ctx context.Context, id uuid.UUID) (*Subscription, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting subscription: %w", err)
	}

	sub, ok := e.(*Subscription)
	if !ok {
		return nil, fmt.Errorf("expense %s is a %s, not a subscription", id, e.Common().Type())
	}

	return sub, nil
}

// AddSubscriptionPayment schedules the next payment of a subscription, scaled by factor.
func (s *Service) AddSubscriptionPayment(ctx context.Context, subscriptionID uuid.UUID, factor decimal.Decimal) (*Payment, error) {
	sub, err := s.getSubscription(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	p, err := sub.NextPayment(factor, false)
	if err != nil {
		return nil, err
	}

	if err := sub.AddNewPayment(p); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, sub); err != nil {
		return nil, fmt.Errorf("saving subscription: %w", err)
	}

	return p, nil
}

func (s *Service) RemoveSubscriptionPayment(ctx context.Context, subscriptionID, paymentID uuid.UUID) error {
	sub, err := s.getSubscription(ctx, subscriptionID)
	if err != nil {
		return err
	}

	if err := sub.RemovePayment(paymentID); err != nil {
		return err
	}

	if err := s.repo.Save(ctx, sub); err != nil {
		return fmt.Errorf("saving subscription: %w", err)
	}

	return nil
}

// ProjectNextPayment returns a simulated next payment without saving anything.
func (s *Service) ProjectNextPayment(ctx context.Context, subscriptionID uuid.UUID, factor decimal.Decimal) (*Payment, error) {
	sub, err := s.getSubscription(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	return sub.NextPayment(factor, true)
}
