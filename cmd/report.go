package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/hellora/rentbook/internal/config"
	"github.com/hellora/rentbook/internal/query"
	"github.com/spf13/cobra"
)

type reportOptions struct {
	ledgerOptions
	SortDays bool
}

func newReportCommand(root *rootOptions) *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:     "report",
		Short:   "Print revenue totals",
		Long:    "Print the price, snack and grand totals of the matching transactions, their revenue per day and the weekly total.",
		Args:    cobra.NoArgs,
		Example: fmt.Sprintf(cmdExample, "report"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd.Context(), cmd.OutOrStdout(), root.config, opts)
		},
	}

	addLedgerFlags(cmd, &opts.ledgerOptions)
	cmd.Flags().BoolVar(&opts.SortDays, "sort-days", false, "list days in date order instead of first appearance")

	return cmd
}

func runReport(ctx context.Context, output io.Writer, cfg *config.Config, opts *reportOptions) error {
	view, err := loadView(ctx, cfg, &opts.ledgerOptions)
	if err != nil {
		return err
	}

	totals := query.Totals(view)
	daily := query.DailyAggregates(view)
	if opts.SortDays {
		daily = query.SortByDate(daily)
	}

	w := tabwriter.NewWriter(output, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Transaksi\t%d\n", len(view))
	_, _ = fmt.Fprintf(w, "Total Harga\t%d\n", totals.Price)
	_, _ = fmt.Fprintf(w, "Total Cemilan\t%d\n", totals.Snack)
	_, _ = fmt.Fprintf(w, "Grand Total\t%d\n", totals.Grand)
	_, _ = fmt.Fprintln(w)

	for _, day := range daily {
		_, _ = fmt.Fprintf(w, "%s\t%d\n", day.Date, day.Total)
	}
	_, _ = fmt.Fprintf(w, "Laporan Mingguan\t%d\n", query.WeeklyTotal(daily))

	return w.Flush()
}
