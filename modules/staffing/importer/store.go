package importer

import (
	"context"

	"github.com/google/uuid"
)

// Store is the persistence seam the importers drive: one unfiltered natural
// key read per entity type, and conflict-aware batched inserts. The pgx
// implementation lives in infrastructure/persistence; tests substitute an
// in-memory fake.
//
// Lookup reads every row of table as (idColumn, keyExpr) pairs; keyExpr may
// be a plain column or a SQL expression for composite keys. Keys are indexed
// normalized, NULL keys are dropped.
//
// BulkInsert issues multi-row INSERT statements for the rows, partitioned
// under the bound-parameter ceiling, with the conflict clause appended
// verbatim. Empty input is a no-op. Batches run sequentially on the
// transaction carried by ctx; any failure aborts the invocation.
type Store interface {
	Lookup(ctx context.Context, table, idColumn, keyExpr string) (map[string]uuid.UUID, error)
	BulkInsert(ctx context.Context, table string, columns []string, rows [][]any, conflict string) error
}
