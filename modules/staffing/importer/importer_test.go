package importer

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ResolvesEveryDispatchKey(t *testing.T) {
	r := NewRegistry()
	require.Equal(t,
		[]string{TypeCore, TypeInterviews, TypeLeaves, TypeRequests, TypeSkills, TypeStaffing, TypeTutors, TypeUsers},
		r.Keys())

	for _, key := range r.Keys() {
		imp, err := r.Get(key)
		require.NoError(t, err)
		require.NotNil(t, imp)
	}

	imp, err := r.Get(" Core ")
	require.NoError(t, err, "dispatch keys match case-insensitively")
	require.NotNil(t, imp)
}

func TestRegistry_UnknownKey(t *testing.T) {
	_, err := NewRegistry().Get("everything")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnknownImportType))
	require.Contains(t, err.Error(), "everything")
}

func TestImporters_PropagateStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.failTable = "clients"

	payload := FromSheets(map[string][]map[string]any{
		"clients": {{"Name": "ACME"}},
	})

	var w Warnings
	err := (&CoreImporter{}).Import(context.Background(), store, payload, &w)
	require.ErrorIs(t, err, assert.AnError, "insert failures abort instead of degrading to warnings")
}

func TestImporters_EmptyPayloadIsNoOp(t *testing.T) {
	for _, key := range NewRegistry().Keys() {
		imp, err := NewRegistry().Get(key)
		require.NoError(t, err)

		store := newFakeStore()
		var w Warnings
		require.NoError(t, imp.Import(context.Background(), store, Payload{}, &w), key)
		require.Empty(t, store.inserts, key)
		require.Empty(t, w.List(), key)
	}
}
