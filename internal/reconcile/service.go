package reconcile

//go:generate mockgen -source=service.go -destination=applier_mock.go -package=reconcile

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/MrJamesThe3rd/cuotas/internal/expense"
)

// Applier is the part of expense.Service an import needs.
type Applier interface {
	ApplyEvents(ctx context.Context, updates []expense.PaymentUpdate) (expense.ApplyResult, error)
}

type Service struct {
	parser  *Parser
	applier Applier
}

func NewService(parser *Parser, applier Applier) *Service {
	return &Service{parser: parser, applier: applier}
}

// Import parses the whole file before applying anything, so a malformed file changes nothing.
func (s *Service) Import(ctx context.Context, r io.Reader) (expense.ApplyResult, error) {
	updates, err := s.parser.Parse(r)
	if err != nil {
		return expense.ApplyResult{}, fmt.Errorf("parsing events: %w", err)
	}

	res, err := s.applier.ApplyEvents(ctx, updates)
	if err != nil {
		return res, fmt.Errorf("applying events: %w", err)
	}

	slog.Info("events applied", "applied", len(res.Applied), "failed", len(res.Failed))

	return res, nil
}
