package importer

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCoreImporter_UnknownRoleSkipsResource(t *testing.T) {
	store := newFakeStore()
	store.seed("roles", map[string]uuid.UUID{"developer": uuid.New()})

	payload := FromSheets(map[string][]map[string]any{
		"resources": {
			{"Resource Name": "Mario Rossi", "Role Name": "Architetto"},
		},
	})

	var w Warnings
	require.NoError(t, (&CoreImporter{}).Import(context.Background(), store, payload, &w))

	require.Empty(t, store.rowsFor("resources"), "row with an unresolvable role must not insert")
	require.Len(t, w.List(), 1)
	require.Contains(t, w.List()[0], "Mario Rossi")
	require.Contains(t, w.List()[0], "Architetto")
}

func TestCoreImporter_BuildsDirectory(t *testing.T) {
	store := newFakeStore()

	payload := FromSheets(map[string][]map[string]any{
		"clients": {
			{"Name": "ACME"},
		},
		"roles": {
			{"Name": "Developer"},
		},
		"projects": {
			{"Project Name": "Alpha", "Client Name": "acme", "Start Date": "2024-01-01", "Billable": "SI"},
		},
		"resources": {
			{"Resource Name": "Mario Rossi", "Role Name": "developer", "Email": "mario@example.com", "Hire Date": "2020-01-07", "Daily Rate": "450,50"},
		},
	})

	var w Warnings
	require.NoError(t, (&CoreImporter{}).Import(context.Background(), store, payload, &w))
	require.Empty(t, w.List())

	clients := store.rowsFor("clients")
	require.Len(t, clients, 1)
	clientID := clients[0][0].(uuid.UUID)

	roles := store.rowsFor("roles")
	require.Len(t, roles, 1)
	roleID := roles[0][0].(uuid.UUID)

	projects := store.rowsFor("projects")
	require.Len(t, projects, 1)
	require.Equal(t, clientID, projects[0][2], "project resolves the client introduced by this payload")
	require.Equal(t, "2024-01-01", *projects[0][3].(*string))
	require.Equal(t, true, projects[0][5])

	resources := store.rowsFor("resources")
	require.Len(t, resources, 1)
	require.Equal(t, roleID, resources[0][3], "resource resolves the role introduced by this payload")
	require.Equal(t, int64(45050), resources[0][6])
	require.Equal(t, "EUR", resources[0][7])

	require.Equal(t, "ON CONFLICT (lower(name)) DO NOTHING", store.conflictFor("resources"))
}

func TestCoreImporter_DuplicateAndPersistedNamesCollapse(t *testing.T) {
	store := newFakeStore()
	store.seed("clients", map[string]uuid.UUID{"acme": uuid.New()})

	payload := FromSheets(map[string][]map[string]any{
		"clients": {
			{"Name": "ACME"},
			{"Name": "Beta srl"},
			{"Name": " beta SRL "},
		},
	})

	var w Warnings
	require.NoError(t, (&CoreImporter{}).Import(context.Background(), store, payload, &w))

	rows := store.rowsFor("clients")
	require.Len(t, rows, 1, "persisted and case-variant duplicates insert nothing")
	require.Equal(t, "Beta srl", rows[0][1])
}

func TestCoreImporter_UnknownClientLeavesProjectUnlinked(t *testing.T) {
	store := newFakeStore()

	payload := FromSheets(map[string][]map[string]any{
		"projects": {
			{"Project Name": "Alpha", "Client Name": "Nowhere Inc"},
		},
	})

	var w Warnings
	require.NoError(t, (&CoreImporter{}).Import(context.Background(), store, payload, &w))

	rows := store.rowsFor("projects")
	require.Len(t, rows, 1, "an optional reference miss keeps the row")
	require.Nil(t, rows[0][2])
	require.Len(t, w.List(), 1)
	require.Contains(t, w.List()[0], "Nowhere Inc")
}

func TestCoreImporter_OneLookupPerEntityType(t *testing.T) {
	store := newFakeStore()
	payload := FromSheets(map[string][]map[string]any{
		"resources": {
			{"Resource Name": "A"},
			{"Resource Name": "B"},
			{"Resource Name": "C"},
		},
	})

	var w Warnings
	require.NoError(t, (&CoreImporter{}).Import(context.Background(), store, payload, &w))
	require.Equal(t, []string{"clients", "roles", "projects", "resources"}, store.lookupCalls)
}
