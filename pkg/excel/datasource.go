package excel

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// PgxDataSource streams the result of a SQL query as export rows. Headers
// come from the column names of the result set.
type PgxDataSource struct {
	pool      *pgxpool.Pool
	query     string
	args      []interface{}
	sheetName string

	headers []string
	rows    pgx.Rows
}

func NewPgxDataSource(pool *pgxpool.Pool, query string, args ...interface{}) *PgxDataSource {
	return &PgxDataSource{
		pool:      pool,
		query:     query,
		args:      args,
		sheetName: "Sheet1",
	}
}

func (ds *PgxDataSource) WithSheetName(name string) *PgxDataSource {
	ds.sheetName = name
	return ds
}

func (ds *PgxDataSource) GetSheetName() string {
	return ds.sheetName
}

func (ds *PgxDataSource) GetHeaders() []string {
	return ds.headers
}

func (ds *PgxDataSource) GetRows(ctx context.Context) (RowIterator, error) {
	rows, err := ds.pool.Query(ctx, ds.query, ds.args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute export query")
	}
	ds.rows = rows

	fields := rows.FieldDescriptions()
	ds.headers = make([]string, len(fields))
	for i, field := range fields {
		ds.headers[i] = field.Name
	}

	return func() ([]interface{}, error) {
		if !rows.Next() {
			defer rows.Close()
			if err := rows.Err(); err != nil {
				return nil, errors.Wrap(err, "export query row error")
			}
			return nil, nil
		}
		values, err := rows.Values()
		if err != nil {
			rows.Close()
			return nil, errors.Wrap(err, "failed to read export row")
		}
		return values, nil
	}, nil
}
