package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hellora/rentbook/internal/config"
	"github.com/hellora/rentbook/internal/export"
	"github.com/hellora/rentbook/internal/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type exportOptions struct {
	ledgerOptions
	Output string
}

func newExportCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export matching transactions to a report file",
		Long: fmt.Sprintf("Export the matching transactions as a report. Supported types: %s.",
			strings.Join(lo.Map(export.All(), func(item export.Type, _ int) string {
				return string(item)
			}), ", "),
		),
	}

	for _, exportType := range export.All() {
		cmd.AddCommand(newExportTypeCommand(root, exportType))
	}

	return cmd
}

func newExportTypeCommand(root *rootOptions, exportType export.Type) *cobra.Command {
	opts := &exportOptions{}
	name := string(exportType)

	defaultOutput := ""
	if exporter, err := export.NewExporter(context.Background(), exportType, export.DefaultOptions()); err == nil {
		defaultOutput = export.DefaultFileName(exporter)
	}

	cmd := &cobra.Command{
		Use:     name,
		Short:   fmt.Sprintf("Export matching transactions as %s", name),
		Args:    cobra.NoArgs,
		Example: fmt.Sprintf(cmdExample, "export "+name),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := runExport(cmd.Context(), root.config, opts, exportType); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}

			return nil
		},
	}

	addLedgerFlags(cmd, &opts.ledgerOptions)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", defaultOutput, "path of the report file")

	return cmd
}

func runExport(ctx context.Context, cfg *config.Config, opts *exportOptions, exportType export.Type) error {
	logger := log.FromContext(ctx).With(
		slog.String("export.type", string(exportType)),
	)
	ctx = log.WithContext(ctx, logger)

	exporter, err := export.NewExporter(ctx, exportType, cfg.ExportOptions())
	if err != nil {
		return fmt.Errorf("exporter: %w", err)
	}

	view, err := loadView(ctx, cfg, &opts.ledgerOptions)
	if err != nil {
		return err
	}

	return export.WriteFile(ctx, opts.Output, exporter, view)
}
