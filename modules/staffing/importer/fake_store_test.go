package importer

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type insertCall struct {
	table    string
	columns  []string
	rows     [][]any
	conflict string
}

// fakeStore records inserts and serves lookups from seeded maps, standing in
// for the pgx-backed store.
type fakeStore struct {
	lookups     map[string]map[string]uuid.UUID
	inserts     []insertCall
	lookupCalls []string
	failTable   string
}

func newFakeStore() *fakeStore {
	return &fakeStore{lookups: map[string]map[string]uuid.UUID{}}
}

func (f *fakeStore) seed(table string, keys map[string]uuid.UUID) {
	f.lookups[table] = keys
}

func (f *fakeStore) Lookup(_ context.Context, table, _, _ string) (map[string]uuid.UUID, error) {
	f.lookupCalls = append(f.lookupCalls, table)
	out := map[string]uuid.UUID{}
	for k, v := range f.lookups[table] {
		out[NormalizeKey(k)] = v
	}
	return out, nil
}

func (f *fakeStore) BulkInsert(_ context.Context, table string, columns []string, rows [][]any, conflict string) error {
	if table == f.failTable {
		return assert.AnError
	}
	if len(rows) == 0 {
		return nil
	}
	f.inserts = append(f.inserts, insertCall{table: table, columns: columns, rows: rows, conflict: conflict})
	return nil
}

func (f *fakeStore) rowsFor(table string) [][]any {
	var out [][]any
	for _, call := range f.inserts {
		if call.table == table {
			out = append(out, call.rows...)
		}
	}
	return out
}

func (f *fakeStore) conflictFor(table string) string {
	for _, call := range f.inserts {
		if call.table == table {
			return call.conflict
		}
	}
	return ""
}
