package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/artemmak/showreel/config"
	"github.com/artemmak/showreel/migrations"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:       "migrate [up|down|status|version|redo|reset]",
		Short:     "Run database migrations against the configured database",
		Args:      cobra.RangeArgs(0, 2),
		ValidArgs: []string{"up", "down", "status", "version", "redo", "reset"},
		RunE: func(cmd *cobra.Command, args []string) error {
			command := "up"
			if len(args) > 0 {
				command = args[0]
			}

			cfg, err := config.LoadProductionConfig()
			if err != nil {
				return err
			}

			db, err := sql.Open("postgres", cfg.Database.DSN())
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if err := db.PingContext(ctx); err != nil {
				return fmt.Errorf("failed to ping database: %w", err)
			}

			slog.Info("running migration", "command", command, "database", cfg.Database.Name)
			if err := migrations.Run(ctx, db, command, args[min(1, len(args)):]...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: ok\n", command)
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Overall migration timeout")
	return cmd
}
