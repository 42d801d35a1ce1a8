package importer

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestLeavesImporter_LoadsPeriods(t *testing.T) {
	store := newFakeStore()
	resourceID := uuid.New()
	store.seed("resources", map[string]uuid.UUID{"mario rossi": resourceID})

	payload := FromSheets(map[string][]map[string]any{
		"leaves": {
			{"Resource Name": "Mario Rossi", "Start Date": "2024-08-01", "End Date": "2024-08-15", "Kind": "Ferie", "Approved": "SI"},
			{"Resource Name": "Mario Rossi", "Start Date": "2024-12-24", "End Date": "2024-12-24"},
		},
	})

	var w Warnings
	require.NoError(t, (&LeavesImporter{}).Import(context.Background(), store, payload, &w))
	require.Empty(t, w.List())

	rows := store.rowsFor("leaves")
	require.Len(t, rows, 2)
	require.Equal(t, resourceID, rows[0][1])
	require.Equal(t, "Ferie", rows[0][4])
	require.Equal(t, true, rows[0][5])
	require.Equal(t, "leave", rows[1][4], "blank kind falls back to the default")
	require.Equal(t, false, rows[1][5])
}

func TestLeavesImporter_RowDefectsAndDedup(t *testing.T) {
	store := newFakeStore()
	store.seed("resources", map[string]uuid.UUID{"mario rossi": uuid.New()})

	payload := FromSheets(map[string][]map[string]any{
		"leaves": {
			{"Resource Name": "Ghost", "Start Date": "2024-08-01", "End Date": "2024-08-15"},
			{"Resource Name": "Mario Rossi", "Start Date": "2024-08-15", "End Date": "2024-08-01"},
			{"Resource Name": "Mario Rossi", "Start Date": "2024-08-01", "End Date": "2024-08-15"},
			{"Resource Name": "mario rossi", "Start Date": "2024-08-01", "End Date": "2024-08-15"},
		},
	})

	var w Warnings
	require.NoError(t, (&LeavesImporter{}).Import(context.Background(), store, payload, &w))

	require.Len(t, store.rowsFor("leaves"), 1, "unknown resource and inverted range skip; duplicates collapse")
	require.Len(t, w.List(), 2)
}
