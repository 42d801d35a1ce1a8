package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/planhive/planhive/modules/staffing/importer"
	"github.com/planhive/planhive/pkg/composables"
	"github.com/planhive/planhive/pkg/repo"
)

// ImportStore is the pgx-backed persistence seam for the importers. Every
// statement runs on the transaction the orchestrator carries in ctx; the
// store never commits or rolls back.
type ImportStore struct {
	ceiling int
}

func NewImportStore() importer.Store {
	return NewImportStoreWithCeiling(repo.BatchCeiling)
}

// NewImportStoreWithCeiling overrides the per-statement parameter ceiling,
// mainly for deployments with a lower server-side limit.
func NewImportStoreWithCeiling(ceiling int) importer.Store {
	if ceiling <= 0 {
		ceiling = repo.BatchCeiling
	}
	return &ImportStore{ceiling: ceiling}
}

// Lookup reads every (id, key) pair of a table in one unfiltered query and
// indexes it by normalized key. keyExpr may be a SQL expression for
// composite keys.
func (s *ImportStore) Lookup(ctx context.Context, table, idColumn, keyExpr string) (map[string]uuid.UUID, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, fmt.Sprintf("SELECT %s, %s FROM %s", idColumn, keyExpr, table))
	if err != nil {
		return nil, errors.Wrapf(err, "lookup %s", table)
	}
	defer rows.Close()

	out := map[string]uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		var key *string
		if err := rows.Scan(&id, &key); err != nil {
			return nil, errors.Wrapf(err, "lookup %s", table)
		}
		if key == nil {
			continue
		}
		normalized := importer.NormalizeKey(*key)
		if normalized == "" {
			continue
		}
		out[normalized] = id
	}
	return out, rows.Err()
}

// BulkInsert issues one multi-row INSERT per batch, the batch size derived
// from the parameter ceiling and the column count, with the conflict clause
// appended verbatim. Batches run sequentially so later statements observe
// rows the earlier ones inserted.
func (s *ImportStore) BulkInsert(ctx context.Context, table string, columns []string, values [][]any, conflict string) error {
	if len(values) == 0 {
		return nil
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	base := fmt.Sprintf("INSERT INTO %s (%s) VALUES", table, strings.Join(columns, ", "))
	limit := max(s.ceiling/len(columns), 1)
	for start := 0; start < len(values); start += limit {
		end := min(start+limit, len(values))
		query, args := repo.BatchInsertQueryN(base, values[start:end])
		if conflict != "" {
			query += " " + conflict
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return errors.Wrapf(err, "bulk insert into %s", table)
		}
	}
	return nil
}
