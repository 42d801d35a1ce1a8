package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planhive/planhive/modules/staffing/importer"
	"github.com/planhive/planhive/modules/staffing/services"
)

type seedOptions struct {
	email    string
	password string
	name     string
	role     string
	dsn      string
}

func newSeedCmd() *cobra.Command {
	var opts seedOptions

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed an administrator account with full staffing access",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.email, "email", "", "Administrator email (required)")
	cmd.Flags().StringVar(&opts.password, "password", "", "Administrator password (required)")
	cmd.Flags().StringVar(&opts.name, "name", "Administrator", "Display name")
	cmd.Flags().StringVar(&opts.role, "role", "admin", "Role name to create or reuse")
	cmd.Flags().StringVar(&opts.dsn, "dsn", "", "Postgres DSN (default: DB_* environment)")

	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

// runSeed feeds the account through the users import pipeline, so seeding and
// workbook imports share one set of conflict rules.
func runSeed(ctx context.Context, opts seedOptions) error {
	cli, err := buildApp(ctx, opts.dsn)
	if err != nil {
		return err
	}
	defer cli.Close()

	payload := importer.FromSheets(map[string][]map[string]any{
		"permissions": {{
			"app role": opts.role,
			"page":     "staffing",
			"can view": "true",
			"can edit": "true",
		}},
		"users": {{
			"email":     opts.email,
			"password":  opts.password,
			"user name": opts.name,
			"app role":  opts.role,
		}},
	})

	svc := cli.app.Service(services.ImportService{}).(*services.ImportService)
	summary, err := svc.Import(cli.requestContext(ctx, ""), "users", payload)
	if err != nil {
		return withCode(exitDB, fmt.Errorf("seed: %w", err))
	}
	return writeJSONLine(summary)
}
