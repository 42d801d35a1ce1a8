package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var dsn string
	var down bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply registered schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cli, err := buildApp(ctx, dsn)
			if err != nil {
				return err
			}
			defer cli.Close()

			if down {
				if err := cli.app.Migrations().Rollback(ctx); err != nil {
					return withCode(exitDB, fmt.Errorf("rollback: %w", err))
				}
				return writeJSONLine(map[string]any{"message": "rolled back the most recent migration of each module"})
			}
			if err := cli.app.Migrations().Run(ctx); err != nil {
				return withCode(exitDB, fmt.Errorf("migrate: %w", err))
			}
			return writeJSONLine(map[string]any{"message": "migrations applied"})
		},
	}

	cmd.Flags().StringVar(&dsn, "dsn", "", "Postgres DSN (default: DB_* environment)")
	cmd.Flags().BoolVar(&down, "down", false, "Roll back the most recent migration of each module")

	return cmd
}
