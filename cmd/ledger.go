package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hellora/rentbook/internal/config"
	"github.com/hellora/rentbook/internal/domain"
	"github.com/hellora/rentbook/internal/ledger"
	"github.com/hellora/rentbook/internal/log"
	"github.com/hellora/rentbook/internal/query"
	"github.com/spf13/cobra"
)

type ledgerOptions struct {
	Input  string
	Sheet  string
	Search string
	Status string
	Date   string
}

func (o *ledgerOptions) filters() query.Filters {
	return query.Filters{
		Search: o.Search,
		Status: o.Status,
		Date:   o.Date,
	}
}

func addLedgerFlags(cmd *cobra.Command, opts *ledgerOptions) {
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "transactions file (.csv or .xlsx)")
	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", "sheet to read from an .xlsx input (default: first sheet)")
	cmd.Flags().StringVar(&opts.Search, "search", "", "case-insensitive billing name substring")
	cmd.Flags().StringVar(&opts.Status, "status", query.StatusAll, "payment status (All, Paid, Unpaid)")
	cmd.Flags().StringVar(&opts.Date, "date", "", "timestamp prefix, e.g. 2025-09 or 2025-09-21")

	_ = cmd.MarkFlagRequired("input")
}

// loadView reads the input into a fresh store and returns the records matching the filters.
func loadView(ctx context.Context, cfg *config.Config, opts *ledgerOptions) ([]domain.Record, error) {
	filters := opts.filters()
	if err := filters.Validate(ctx); err != nil {
		return nil, fmt.Errorf("filters: %w", err)
	}

	location, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("timezone: %w", err)
	}

	logger := log.FromContext(ctx).With(slog.String("input.path", opts.Input))
	ctx = log.WithContext(ctx, logger)

	rows, err := ledger.ReadFile(opts.Input, opts.Sheet)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", opts.Input, err)
	}

	store := ledger.New(
		ledger.WithLocation(location),
		ledger.WithLogger(logger),
	)
	if err := ledger.Load(ctx, store, rows); err != nil {
		return nil, fmt.Errorf("load %s: %w", opts.Input, err)
	}

	view := query.Filter(store.List(), filters)

	logger.DebugContext(ctx, "filtered records",
		slog.Int("record.total", store.Len()),
		slog.Int("record.matched", len(view)),
	)

	return view, nil
}
