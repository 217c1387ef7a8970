package main

import (
	"baggage/internal/adapters/out/postgres"

	"github.com/spf13/cobra"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return postgres.Migrate(cfg.DSN(), ctx.logger)
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return postgres.MigrateDown(cfg.DSN(), steps, ctx.logger)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back, 0 for all")

	migrateCmd.AddCommand(up, down)
	return migrateCmd
}
