package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/planhive/planhive/modules/staffing/importer"
	"github.com/planhive/planhive/modules/staffing/services"
	"github.com/planhive/planhive/pkg/excel"
)

type importOptions struct {
	file    string
	typeKey string
	locale  string
	dsn     string
}

func newImportCmd() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a staffing workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", "", "Workbook path (required)")
	cmd.Flags().StringVar(&opts.typeKey, "type", "", "Import type (required)")
	cmd.Flags().StringVar(&opts.locale, "locale", "", "Message locale (default: IMPORT_DEFAULT_LOCALE)")
	cmd.Flags().StringVar(&opts.dsn, "dsn", "", "Postgres DSN (default: DB_* environment)")

	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func runImport(ctx context.Context, opts importOptions) error {
	payload, err := readWorkbookPayload(opts.file)
	if err != nil {
		return err
	}

	cli, err := buildApp(ctx, opts.dsn)
	if err != nil {
		return err
	}
	defer cli.Close()

	svc := cli.app.Service(services.ImportService{}).(*services.ImportService)
	summary, err := svc.Import(cli.requestContext(ctx, opts.locale), opts.typeKey, payload)
	if err != nil {
		if is(err, importer.ErrUnknownImportType) {
			return withCode(exitUsage, fmt.Errorf(
				"unknown --type %q (have: %s)", opts.typeKey, strings.Join(svc.Types(), ", ")))
		}
		return withCode(exitDB, fmt.Errorf("import: %w", err))
	}
	return writeJSONLine(summary)
}

func readWorkbookPayload(path string) (importer.Payload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, withCode(exitUsage, fmt.Errorf("open %s: %w", path, err))
	}
	defer func() { _ = f.Close() }()

	wb, err := excel.OpenWorkbook(f)
	if err != nil {
		return nil, withCode(exitValidation, fmt.Errorf("read %s: %w", path, err))
	}
	defer func() { _ = wb.Close() }()

	sheets := make(map[string][][]string)
	for _, name := range wb.SheetNames() {
		rows, err := wb.Rows(name)
		if err != nil {
			return nil, withCode(exitValidation, fmt.Errorf("sheet %s: %w", name, err))
		}
		sheets[name] = rows
	}
	return importer.FromTable(sheets), nil
}
