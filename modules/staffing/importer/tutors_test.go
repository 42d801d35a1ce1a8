package importer

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestTutorsImporter_SelfReferenceDemotedWithOneWarning(t *testing.T) {
	store := newFakeStore()
	resourceID := uuid.New()
	store.seed("resources", map[string]uuid.UUID{"mario rossi": resourceID})

	payload := FromSheets(map[string][]map[string]any{
		"tutors": {
			{"Resource Name": "Mario Rossi", "Tutor Name": " mario rossi "},
		},
	})

	var w Warnings
	require.NoError(t, (&TutorsImporter{}).Import(context.Background(), store, payload, &w))

	rows := store.rowsFor("resource_tutors")
	require.Len(t, rows, 1)
	require.Equal(t, resourceID, rows[0][0])
	require.Nil(t, rows[0][1], "self-referential tutor demotes to no tutor")
	require.Len(t, w.List(), 1)
	require.Contains(t, w.List()[0], "cannot be its own tutor")
}

func TestTutorsImporter_UpsertsSingleSlot(t *testing.T) {
	store := newFakeStore()
	resourceID, tutorID := uuid.New(), uuid.New()
	store.seed("resources", map[string]uuid.UUID{
		"mario rossi": resourceID,
		"anna verdi":  tutorID,
	})

	payload := FromSheets(map[string][]map[string]any{
		"tutors": {
			{"Resource Name": "Mario Rossi", "Tutor Name": "Anna Verdi"},
			{"Resource Name": "Mario Rossi", "Tutor Name": "Anna Verdi"},
		},
	})

	var w Warnings
	require.NoError(t, (&TutorsImporter{}).Import(context.Background(), store, payload, &w))

	rows := store.rowsFor("resource_tutors")
	require.Len(t, rows, 1)
	require.Equal(t, []any{resourceID, tutorID}, rows[0])
	require.Equal(t,
		"ON CONFLICT (resource_id) DO UPDATE SET tutor_id = EXCLUDED.tutor_id",
		store.conflictFor("resource_tutors"))
}

func TestTutorsImporter_UnknownTutorSkips(t *testing.T) {
	store := newFakeStore()
	store.seed("resources", map[string]uuid.UUID{"mario rossi": uuid.New()})

	payload := FromSheets(map[string][]map[string]any{
		"tutors": {
			{"Resource Name": "Mario Rossi", "Tutor Name": "Ghost"},
			{"Resource Name": "Mario Rossi"},
		},
	})

	var w Warnings
	require.NoError(t, (&TutorsImporter{}).Import(context.Background(), store, payload, &w))

	require.Empty(t, store.rowsFor("resource_tutors"))
	require.Len(t, w.List(), 1, "a row without a tutor cell declares nothing and stays quiet")
	require.Contains(t, w.List()[0], "Ghost")
}
