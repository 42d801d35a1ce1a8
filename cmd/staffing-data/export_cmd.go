package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/planhive/planhive/modules/staffing/services"
)

type exportOptions struct {
	out  string
	from string
	to   string
	dsn  string
}

func newExportCmd() *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the staffing dataset as a workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.out, "out", "", "Output workbook path (required)")
	cmd.Flags().StringVar(&opts.from, "from", "", "Allocation window start, YYYY-MM-DD (default: first of current month)")
	cmd.Flags().StringVar(&opts.to, "to", "", "Allocation window end, YYYY-MM-DD (default: last day of the from month)")
	cmd.Flags().StringVar(&opts.dsn, "dsn", "", "Postgres DSN (default: DB_* environment)")

	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runExport(ctx context.Context, opts exportOptions) error {
	var window services.ExportOptions
	var err error
	if window.From, err = parseDateFlag(opts.from); err != nil {
		return withCode(exitUsage, fmt.Errorf("invalid --from: %w", err))
	}
	if window.To, err = parseDateFlag(opts.to); err != nil {
		return withCode(exitUsage, fmt.Errorf("invalid --to: %w", err))
	}

	cli, err := buildApp(ctx, opts.dsn)
	if err != nil {
		return err
	}
	defer cli.Close()

	svc := cli.app.Service(services.ExportService{}).(*services.ExportService)
	data, err := svc.Workbook(cli.requestContext(ctx, ""), window)
	if err != nil {
		return withCode(exitDB, fmt.Errorf("export: %w", err))
	}
	if err := os.WriteFile(opts.out, data, 0o644); err != nil {
		return withCode(exitDB, fmt.Errorf("write %s: %w", opts.out, err))
	}
	return writeJSONLine(map[string]any{
		"message": "export written",
		"path":    opts.out,
		"bytes":   len(data),
	})
}

func parseDateFlag(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}
