package importer

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/planhive/planhive/pkg/excel"
)

func TestStaffingImporter_AllocatesOnlyDatedPositiveCells(t *testing.T) {
	store := newFakeStore()
	resourceID, projectID := uuid.New(), uuid.New()
	store.seed("resources", map[string]uuid.UUID{"mario rossi": resourceID})
	store.seed("projects", map[string]uuid.UUID{"alpha": projectID})

	payload := FromSheets(map[string][]map[string]any{
		"staffing": {
			{
				"Resource Name": "Mario Rossi",
				"Project Name":  "Alpha",
				"2024-01-10":    50,
				"2024-01-11":    0,
				"Notes":         "ignore me",
			},
		},
	})

	var w Warnings
	require.NoError(t, (&StaffingImporter{}).Import(context.Background(), store, payload, &w))
	require.Empty(t, w.List())

	assignments := store.rowsFor("assignments")
	require.Len(t, assignments, 1)
	require.Equal(t, resourceID, assignments[0][1])
	require.Equal(t, projectID, assignments[0][2])
	assignmentID := assignments[0][0].(uuid.UUID)

	allocations := store.rowsFor("allocations")
	require.Len(t, allocations, 1, "zero cells and non-date columns never insert")
	require.Equal(t, []any{assignmentID, "2024-01-10", "50"}, allocations[0])
	require.Equal(t,
		"ON CONFLICT (assignment_id, day) DO UPDATE SET percent = EXCLUDED.percent",
		store.conflictFor("allocations"))
}

func TestStaffingImporter_ReusesPersistedAssignment(t *testing.T) {
	store := newFakeStore()
	resourceID, projectID, assignmentID := uuid.New(), uuid.New(), uuid.New()
	store.seed("resources", map[string]uuid.UUID{"mario rossi": resourceID})
	store.seed("projects", map[string]uuid.UUID{"alpha": projectID})
	store.seed("assignments", map[string]uuid.UUID{
		resourceID.String() + "|" + projectID.String(): assignmentID,
	})

	payload := FromSheets(map[string][]map[string]any{
		"staffing": {
			{"Resource Name": "Mario Rossi", "Project Name": "Alpha", "2024-01-10": "50"},
		},
	})

	var w Warnings
	require.NoError(t, (&StaffingImporter{}).Import(context.Background(), store, payload, &w))

	require.Empty(t, store.rowsFor("assignments"), "existing pair must not create a second assignment")
	allocations := store.rowsFor("allocations")
	require.Len(t, allocations, 1)
	require.Equal(t, assignmentID, allocations[0][0])
}

func TestStaffingImporter_UnknownReferencesSkipRow(t *testing.T) {
	store := newFakeStore()
	store.seed("resources", map[string]uuid.UUID{"mario rossi": uuid.New()})

	payload := FromSheets(map[string][]map[string]any{
		"staffing": {
			{"Resource Name": "Mario Rossi", "Project Name": "Ghost", "2024-01-10": 50},
			{"Resource Name": "Nobody", "Project Name": "Alpha", "2024-01-10": 50},
		},
	})

	var w Warnings
	require.NoError(t, (&StaffingImporter{}).Import(context.Background(), store, payload, &w))

	require.Empty(t, store.inserts)
	require.Len(t, w.List(), 2)
	require.Contains(t, w.List()[0], "Ghost")
	require.Contains(t, w.List()[1], "Nobody")
}

func TestStaffingImporter_DuplicateDayLastWins(t *testing.T) {
	store := newFakeStore()
	resourceID, projectID := uuid.New(), uuid.New()
	store.seed("resources", map[string]uuid.UUID{"mario rossi": resourceID})
	store.seed("projects", map[string]uuid.UUID{"alpha": projectID})

	payload := FromSheets(map[string][]map[string]any{
		"staffing": {
			{"Resource Name": "Mario Rossi", "Project Name": "Alpha", "2024-01-10": "50"},
			{"Resource Name": "mario rossi", "Project Name": "ALPHA", "2024-01-10": "75,5"},
		},
	})

	var w Warnings
	require.NoError(t, (&StaffingImporter{}).Import(context.Background(), store, payload, &w))

	require.Len(t, store.rowsFor("assignments"), 1)
	allocations := store.rowsFor("allocations")
	require.Len(t, allocations, 1, "same assignment and day collapse before the database sees them")
	require.Equal(t, "75.5", allocations[0][2])
}

func TestStaffingImporter_SerialDateHeader(t *testing.T) {
	store := newFakeStore()
	resourceID, projectID := uuid.New(), uuid.New()
	store.seed("resources", map[string]uuid.UUID{"mario rossi": resourceID})
	store.seed("projects", map[string]uuid.UUID{"alpha": projectID})

	// Workbooks read raw surface date-typed header cells as serials.
	payload := FromTable(map[string][][]string{
		"staffing": {
			{"Resource Name", "Project Name", "45323"},
			{"Mario Rossi", "Alpha", "100"},
		},
	})

	var w Warnings
	require.NoError(t, (&StaffingImporter{}).Import(context.Background(), store, payload, &w))

	allocations := store.rowsFor("allocations")
	require.Len(t, allocations, 1)
	require.Equal(t, "2024-02-01", allocations[0][1])
}

// gridSource mimics the export service's staffing grid layout.
type gridSource struct {
	headers []string
	rows    [][]interface{}
}

func (g *gridSource) GetSheetName() string { return "staffing" }

func (g *gridSource) GetHeaders() []string { return g.headers }

func (g *gridSource) GetRows(context.Context) (excel.RowIterator, error) {
	i := 0
	return func() ([]interface{}, error) {
		if i >= len(g.rows) {
			return nil, nil
		}
		row := g.rows[i]
		i++
		return row, nil
	}, nil
}

func TestStaffingImporter_RoundTripsExportedGrid(t *testing.T) {
	grid := &gridSource{
		headers: []string{"resource name", "project name", "2025-03-01", "2025-03-02", "2025-03-03"},
		rows: [][]interface{}{
			{"Mario Rossi", "Alpha", 50.0, nil, 100.0},
			{"Giulia Bianchi", "Alpha", nil, 62.5, nil},
		},
	}
	blob, err := excel.NewExcelExporter(nil, nil).ExportSheets(context.Background(), grid)
	require.NoError(t, err)

	wb, err := excel.OpenWorkbook(bytes.NewReader(blob))
	require.NoError(t, err)
	defer func() { _ = wb.Close() }()
	lines, err := wb.Rows("staffing")
	require.NoError(t, err)
	payload := FromTable(map[string][][]string{"staffing": lines})

	store := newFakeStore()
	mario, giulia, alpha := uuid.New(), uuid.New(), uuid.New()
	store.seed("resources", map[string]uuid.UUID{"mario rossi": mario, "giulia bianchi": giulia})
	store.seed("projects", map[string]uuid.UUID{"alpha": alpha})

	var w Warnings
	require.NoError(t, (&StaffingImporter{}).Import(context.Background(), store, payload, &w))
	require.Empty(t, w.List())

	require.Len(t, store.rowsFor("assignments"), 2)

	byDay := map[string]string{}
	for _, row := range store.rowsFor("allocations") {
		byDay[row[1].(string)] = row[2].(string)
	}
	require.Equal(t, map[string]string{
		"2025-03-01": "50",
		"2025-03-02": "62.5",
		"2025-03-03": "100",
	}, byDay)
}
