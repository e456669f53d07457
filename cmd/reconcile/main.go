package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/cuotas/internal/account"
	accountStore "github.com/MrJamesThe3rd/cuotas/internal/account/store"
	"github.com/MrJamesThe3rd/cuotas/internal/calendar"
	"github.com/MrJamesThe3rd/cuotas/internal/config"
	"github.com/MrJamesThe3rd/cuotas/internal/database"
	"github.com/MrJamesThe3rd/cuotas/internal/expense"
	expenseStore "github.com/MrJamesThe3rd/cuotas/internal/expense/store"
	"github.com/MrJamesThe3rd/cuotas/internal/period"
	periodStore "github.com/MrJamesThe3rd/cuotas/internal/period/store"
	"github.com/MrJamesThe3rd/cuotas/internal/reconcile"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	path := cfg.Events.File
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	if path == "" {
		slog.Error("no events file: pass a path or set EVENTS_FILE")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, path); err != nil {
		slog.Error("reconciliation failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, path string) error {
	if err := database.Migrate(cfg.ConnectionString()); err != nil {
		return err
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return err
	}
	defer db.Close()

	expenses := expenseStore.New(db)

	var (
		expenseService   = expense.NewService(expenses, expenseStore.NewPaymentStore(db))
		accountService   = account.NewService(accountStore.New(db), expenses)
		periodService    = period.NewService(periodStore.New(db))
		reconcileService = reconcile.NewService(reconcile.NewParser(cfg.Comma()), expenseService)
	)

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	slog.Info("reconciling", "file", path)

	res, err := reconcileService.Import(ctx, f)
	if err != nil {
		return err
	}

	for _, id := range res.AccountIDs() {
		l, err := accountService.Limits(ctx, id)
		if errors.Is(err, account.ErrNotFound) {
			continue
		}

		if err != nil {
			return err
		}

		slog.Info("card limits",
			"card_id", l.CardID,
			"alias", l.Alias,
			"balance", l.Balance,
			"available", l.AvailableLimit,
			"available_financing", l.AvailableFinancingLimit,
		)
	}

	month, year := calendar.MonthOf(time.Now())

	summaries, err := periodService.Forecast(ctx, month, year, cfg.Report.Months, nil)
	if err != nil {
		return err
	}

	for _, s := range summaries {
		slog.Info("period",
			"month", s.Month,
			"year", s.Year,
			"payments", s.Payments,
			"total", s.Total,
			"one_time", s.OneTime,
			"last_installments", s.Last,
		)
	}

	if len(res.Failed) > 0 {
		return fmt.Errorf("%d of %d events were not applied", len(res.Failed), len(res.Failed)+len(res.Applied))
	}

	return nil
}
