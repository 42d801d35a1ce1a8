package importer

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestInterviewsImporter_RequiredAndOptionalFields(t *testing.T) {
	store := newFakeStore()
	roleID := uuid.New()
	store.seed("roles", map[string]uuid.UUID{"developer": roleID})

	payload := FromSheets(map[string][]map[string]any{
		"interviews": {
			{"Candidate Name": "Anna Verdi", "Candidate Email": "anna@example.com", "Interview Date": "2024-05-02", "Role Name": "Developer", "Outcome": "positive"},
			{"Candidate Name": "Luca Bianchi", "Interview Date": "2024-05-03"},
			{"Candidate Name": "Sara Neri", "Candidate Email": "sara@example.com", "Interview Date": "2024-05-04", "Role Name": "Ghost"},
		},
	})

	var w Warnings
	require.NoError(t, (&InterviewsImporter{}).Import(context.Background(), store, payload, &w))

	rows := store.rowsFor("interviews")
	require.Len(t, rows, 2, "missing email skips, unknown role only degrades")
	require.Equal(t, roleID, rows[0][3])
	require.Equal(t, "positive", rows[0][6])
	require.Nil(t, rows[1][3], "unresolved optional role binds NULL")

	require.Len(t, w.List(), 2)
	require.Contains(t, w.List()[0], "Luca Bianchi")
	require.Contains(t, w.List()[1], "Ghost")
}

func TestInterviewsImporter_DuplicateCandidateDateCollapses(t *testing.T) {
	store := newFakeStore()

	payload := FromSheets(map[string][]map[string]any{
		"interviews": {
			{"Candidate Name": "Anna Verdi", "Candidate Email": "ANNA@example.com", "Interview Date": "2024-05-02"},
			{"Candidate Name": "Anna V.", "Candidate Email": "anna@example.com", "Interview Date": "2024-05-02"},
		},
	})

	var w Warnings
	require.NoError(t, (&InterviewsImporter{}).Import(context.Background(), store, payload, &w))
	require.Len(t, store.rowsFor("interviews"), 1)
}
