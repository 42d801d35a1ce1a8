package importer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromTable_FoldsItalianHeadersAndSheets(t *testing.T) {
	p := FromTable(map[string][][]string{
		"Risorse": {
			{"Nome Risorsa", "Email", "Ruolo", "Data Assunzione"},
			{"Mario Rossi", "mario@example.com", "Developer", "2020-01-07"},
		},
	})

	rows := p.Sheet("resources")
	require.Len(t, rows, 1)
	row := rows[0]
	require.Equal(t, 2, row.Line)
	require.Equal(t, "Mario Rossi", row.String(colResourceName))
	require.Equal(t, "mario@example.com", row.String(colEmail))
	require.Equal(t, "Developer", row.String(colRoleName))
	hire, ok := row.Date(colHireDate)
	require.True(t, ok)
	require.Equal(t, "2020-01-07", *FormatForStorage(hire, true))
}

func TestFromTable_SparseCellsStayAbsent(t *testing.T) {
	p := FromTable(map[string][][]string{
		"staffing": {
			{"Resource Name", "Project Name", "2024-01-10", "2024-01-11"},
			{"Mario Rossi", "Alpha", "50", ""},
			{"", "", "", ""},
		},
	})

	rows := p.Sheet("staffing")
	require.Len(t, rows, 1, "fully blank lines are dropped")
	_, ok := rows[0].Raw("2024-01-11")
	require.False(t, ok, "blank cells are absent, not empty strings")
	_, ok = rows[0].Raw("2024-01-10")
	require.True(t, ok)
}

func TestFromSheets_CanonicalizesAndSortsColumns(t *testing.T) {
	p := FromSheets(map[string][]map[string]any{
		"Clienti": {
			{"Nome": "ACME", "Note": "top client"},
		},
	})

	rows := p.Sheet("clients")
	require.Len(t, rows, 1)
	require.Equal(t, 1, rows[0].Line)
	require.Equal(t, "ACME", rows[0].String(colName))
	require.Equal(t, []string{colName, colNotes}, rows[0].Columns())
}

func TestRow_Flag(t *testing.T) {
	p := FromSheets(map[string][]map[string]any{
		"permissions": {
			{"App Role": "Admin", "Page": "staffing", "Can View": "SI", "Can Edit": "NO"},
			{"App Role": "Admin", "Page": "export", "Can View": true, "Can Edit": "x"},
		},
	})

	rows := p.Sheet("permissions")
	require.True(t, rows[0].Flag(colCanView))
	require.False(t, rows[0].Flag(colCanEdit))
	require.True(t, rows[1].Flag(colCanView))
	require.True(t, rows[1].Flag(colCanEdit))
}

func TestRow_StringRendersNumbers(t *testing.T) {
	p := FromSheets(map[string][]map[string]any{
		"resources": {
			{"Resource Name": "Mario", "Daily Rate": 450.5},
		},
	})
	require.Equal(t, "450.5", p.Sheet("resources")[0].String(colDailyRate))
}
