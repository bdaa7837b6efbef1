package main

import (
	"log/slog"
	"os"

	"github.com/artemmak/showreel/logging"
	"github.com/spf13/cobra"
)

var flagLogLevel string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "showreelctl",
		Short:         "Showreel operations CLI",
		Long:          "Apply migrations, price a project offline and mint admin tokens.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, _, err := logging.New(logging.Options{Level: flagLogLevel, Format: "text", Output: "stdout"})
			if err != nil {
				return err
			}
			slog.SetDefault(logger.With("cmd", cmd.Name()))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	root.SetOut(os.Stdout)

	root.AddCommand(
		newMigrateCmd(),
		newQuoteCmd(),
		newPricingInitCmd(),
		newAdminTokenCmd(),
	)
	return root
}
