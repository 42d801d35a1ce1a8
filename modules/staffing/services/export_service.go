package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/planhive/planhive/pkg/excel"
)

const (
	clientsExportQuery = `SELECT name FROM clients ORDER BY lower(name)`
	rolesExportQuery   = `SELECT name FROM roles ORDER BY lower(name)`

	resourcesExportQuery = `
		SELECT
			res.name,
			res.email,
			r.name AS role,
			res.hire_date AS "hire date",
			res.exit_date AS "exit date",
			res.daily_rate_cents / 100.0 AS "daily rate"
		FROM resources res
		LEFT JOIN roles r ON r.id = res.role_id
		ORDER BY lower(res.name)`

	projectsExportQuery = `
		SELECT
			p.name,
			c.name AS client,
			p.start_date AS "start date",
			p.end_date AS "end date",
			CASE WHEN p.billable THEN 'SI' ELSE 'NO' END AS billable
		FROM projects p
		LEFT JOIN clients c ON c.id = p.client_id
		ORDER BY lower(p.name)`

	allocationGridQuery = `
		SELECT
			a.id,
			res.name,
			p.name,
			al.day,
			al.percent::float8
		FROM assignments a
		JOIN resources res ON res.id = a.resource_id
		JOIN projects p ON p.id = a.project_id
		LEFT JOIN allocations al
			ON al.assignment_id = a.id AND al.day BETWEEN $1 AND $2
		ORDER BY lower(res.name), lower(p.name), al.day`
)

// ExportOptions select the allocation grid window. Zero values default to the
// current calendar month.
type ExportOptions struct {
	From time.Time `form:"from"`
	To   time.Time `form:"to"`
}

func (o ExportOptions) withDefaults(now time.Time) ExportOptions {
	if o.From.IsZero() {
		o.From = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	if o.To.IsZero() || o.To.Before(o.From) {
		o.To = o.From.AddDate(0, 1, -1)
	}
	return o
}

// ExportService renders the current staffing dataset as a workbook whose
// sheets and headers match what the importers accept.
type ExportService struct {
	pool *pgxpool.Pool
}

func NewExportService(pool *pgxpool.Pool) *ExportService {
	return &ExportService{pool: pool}
}

func (s *ExportService) Workbook(ctx context.Context, opts ExportOptions) ([]byte, error) {
	opts = opts.withDefaults(time.Now().UTC())
	exporter := excel.NewExcelExporter(nil, nil)
	return exporter.ExportSheets(ctx,
		excel.NewPgxDataSource(s.pool, clientsExportQuery).WithSheetName("clients"),
		excel.NewPgxDataSource(s.pool, rolesExportQuery).WithSheetName("roles"),
		excel.NewPgxDataSource(s.pool, resourcesExportQuery).WithSheetName("resources"),
		excel.NewPgxDataSource(s.pool, projectsExportQuery).WithSheetName("projects"),
		newAllocationGrid(s.pool, opts.From, opts.To),
	)
}

// allocationGrid pivots allocations into the staffing sheet layout: one row
// per assignment, one column per day in the window, percent cells only where
// an allocation exists.
type allocationGrid struct {
	pool     *pgxpool.Pool
	from, to time.Time

	headers []string
}

func newAllocationGrid(pool *pgxpool.Pool, from, to time.Time) *allocationGrid {
	return &allocationGrid{pool: pool, from: from, to: to}
}

func (g *allocationGrid) GetSheetName() string { return "staffing" }

func (g *allocationGrid) GetHeaders() []string { return g.headers }

func (g *allocationGrid) GetRows(ctx context.Context) (excel.RowIterator, error) {
	dayOffset := make(map[string]int)
	g.headers = []string{"resource name", "project name"}
	for d := g.from; !d.After(g.to); d = d.AddDate(0, 0, 1) {
		key := d.Format(time.DateOnly)
		dayOffset[key] = len(g.headers)
		g.headers = append(g.headers, key)
	}

	rows, err := g.pool.Query(ctx, allocationGridQuery, g.from, g.to)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query allocation grid")
	}
	defer rows.Close()

	var grid [][]interface{}
	rowIndex := make(map[uuid.UUID]int)
	for rows.Next() {
		var (
			assignmentID uuid.UUID
			resourceName string
			projectName  string
			day          *time.Time
			percent      *float64
		)
		if err := rows.Scan(&assignmentID, &resourceName, &projectName, &day, &percent); err != nil {
			return nil, errors.Wrap(err, "failed to scan allocation grid row")
		}
		ix, ok := rowIndex[assignmentID]
		if !ok {
			row := make([]interface{}, len(g.headers))
			row[0], row[1] = resourceName, projectName
			grid = append(grid, row)
			ix = len(grid) - 1
			rowIndex[assignmentID] = ix
		}
		if day != nil && percent != nil {
			if offset, ok := dayOffset[day.Format(time.DateOnly)]; ok {
				grid[ix][offset] = *percent
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "allocation grid row error")
	}

	i := 0
	return func() ([]interface{}, error) {
		if i >= len(grid) {
			return nil, nil
		}
		row := grid[i]
		i++
		return row, nil
	}, nil
}
