package excel

import (
	"bytes"
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceDataSource struct {
	sheet   string
	headers []string
	rows    [][]interface{}
}

func (ds *sliceDataSource) GetSheetName() string { return ds.sheet }

func (ds *sliceDataSource) GetHeaders() []string { return ds.headers }

func (ds *sliceDataSource) GetRows(ctx context.Context) (RowIterator, error) {
	i := 0
	return func() ([]interface{}, error) {
		if i >= len(ds.rows) {
			return nil, nil
		}
		row := ds.rows[i]
		i++
		return row, nil
	}, nil
}

func TestExcelExporter_RoundTrip(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	ds := &sliceDataSource{
		sheet:   "Assignments",
		headers: []string{"resource", "project", "day", "percent"},
		rows: [][]interface{}{
			{"Mario Rossi", "Apollo", day, 0.5},
			{"Anna Bianchi", "Hermes", day, 1.0},
		},
	}

	data, err := NewExcelExporter(nil, nil).Export(context.Background(), ds)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	wb, err := OpenWorkbook(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = wb.Close() }()

	assert.Equal(t, []string{"Assignments"}, wb.SheetNames())

	rows, err := wb.Rows("Assignments")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"resource", "project", "day", "percent"}, rows[0])
	assert.Equal(t, "Mario Rossi", rows[1][0])

	// Date cells keep their serial representation when read back raw.
	serial, err := strconv.ParseFloat(rows[1][2], 64)
	require.NoError(t, err)
	assert.InDelta(t, 45323.0, serial, 0.001)
}

func TestExcelExporter_MaxRows(t *testing.T) {
	t.Parallel()

	ds := &sliceDataSource{
		sheet:   "Rows",
		headers: []string{"n"},
		rows:    [][]interface{}{{1}, {2}, {3}, {4}},
	}

	opts := DefaultExportOptions()
	opts.MaxRows = 2

	data, err := NewExcelExporter(opts, nil).Export(context.Background(), ds)
	require.NoError(t, err)

	wb, err := OpenWorkbook(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = wb.Close() }()

	rows, err := wb.Rows("Rows")
	require.NoError(t, err)
	assert.Len(t, rows, 3) // header + 2 data rows
}
