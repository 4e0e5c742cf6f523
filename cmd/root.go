package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hellora/rentbook/internal/config"
	"github.com/hellora/rentbook/internal/log"
	"github.com/spf13/cobra"

	_ "embed"
)

var (
	BuildVersion  = `(missing)`
	BuildShortSHA = `(missing)`

	//go:embed cmd_example.txt
	cmdExample string
)

type rootOptions struct {
	Verbose  bool
	NoColour bool
	LogJSON  bool
	EnvFile  string

	config *config.Config
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:     "rentbook",
		Short:   "Rental transaction ledger",
		Long:    `A CLI for reporting on and exporting the transactions of a console rental business.`,
		Version: fmt.Sprintf("%s (%s)", BuildVersion, BuildShortSHA),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			handler := log.WithColourTextHandler()
			switch {
			case opts.LogJSON:
				handler = log.WithJSONHandler()
			case opts.NoColour:
				handler = log.WithTextHandler()
			}

			logger := log.New(
				log.WithWriter(cmd.ErrOrStderr()),
				log.WithVerbose(opts.Verbose),
				handler,
				log.WithAttrs(
					slog.String("build.version", BuildVersion),
					slog.String("build.sha", BuildShortSHA),
					slog.String("run.id", uuid.NewString()),
				),
			)

			ctx := log.WithContext(cmd.Context(), logger)
			cmd.SetContext(ctx)

			cfg, err := config.Load(opts.EnvFile)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			if err := cfg.Validate(ctx); err != nil {
				return fmt.Errorf("config: %w", err)
			}

			logger.DebugContext(ctx, "loaded config",
				slog.String("config.env_file", opts.EnvFile),
				slog.String("config.timezone", cfg.Timezone),
			)

			opts.config = cfg
			return nil
		},
	}

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().BoolVar(&opts.NoColour, "no-colour", false, "disable coloured output")
	cmd.PersistentFlags().BoolVar(&opts.LogJSON, "log-json", false, "write logs as JSON")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "optional file of RENTBOOK_* settings")

	cmd.AddCommand(
		newReportCommand(opts),
		newListCommand(opts),
		newExportCommand(opts),
		newVersionCommand(),
	)

	return cmd
}

func Main(ctx context.Context, args []string, output io.Writer, errOutput io.Writer) error {
	rootCmd := newRootCommand()
	rootCmd.SetOut(output)
	rootCmd.SetErr(errOutput)
	rootCmd.SetArgs(args[1:])

	return rootCmd.ExecuteContext(ctx)
}
