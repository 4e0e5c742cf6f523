package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/hellora/rentbook/internal/config"
	"github.com/hellora/rentbook/internal/format"
	"github.com/hellora/rentbook/internal/util/sliceutil"
	"github.com/spf13/cobra"
)

const listLong = `Print the matching transactions in insertion order as CSV or JSON lines.

CSV uses the report columns and status labels (Sudah Bayar, Belum Bayar), so it can be read back with --input.
JSON uses the field names and status values (Paid, Unpaid) of the record type.`

type listOptions struct {
	ledgerOptions
	Format string
}

func newListCommand(root *rootOptions) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "Print matching transactions",
		Long:    listLong,
		Args:    cobra.NoArgs,
		Example: fmt.Sprintf(cmdExample, "list --format json"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd.Context(), cmd.OutOrStdout(), root.config, opts)
		},
	}

	addLedgerFlags(cmd, &opts.ledgerOptions)
	cmd.Flags().StringVar(&opts.Format, "format", string(format.FormatTypeCSV), fmt.Sprintf("output format (options: %s)", sliceutil.ToDelimitedString(format.All())))

	return cmd
}

func runList(ctx context.Context, output io.Writer, cfg *config.Config, opts *listOptions) error {
	formatter, err := format.NewFormatter(format.FormatType(opts.Format), output)
	if err != nil {
		return fmt.Errorf("formatter: %w", err)
	}

	view, err := loadView(ctx, cfg, &opts.ledgerOptions)
	if err != nil {
		return err
	}

	return format.WriteCollection(formatter, view)
}
