package importer

import (
	"context"

	"github.com/google/uuid"
)

// LeavesImporter loads absence periods per resource.
type LeavesImporter struct{}

func (li *LeavesImporter) Import(ctx context.Context, store Store, payload Payload, w *Warnings) error {
	resources, err := loadLookup(ctx, store, "resources", "name")
	if err != nil {
		return err
	}

	seen := map[string]struct{}{}
	var rows [][]any
	for _, row := range payload.Sheet("leaves") {
		resourceName := row.First(colResourceName, colName)
		if resourceName == "" {
			w.Addf("leaves: row %d: missing resource name; row skipped", row.Line)
			continue
		}
		resourceID, ok := resources.Resolve(resourceName)
		if !ok {
			w.Addf("leaves: row %d: %s; row skipped",
				row.Line, unknownRef(resources, "resource", resourceName))
			continue
		}
		start, startOK := row.Date(colStartDate)
		end, endOK := row.Date(colEndDate)
		if !startOK || !endOK {
			w.Addf("leaves: row %d: missing or invalid start/end date for resource %q; row skipped",
				row.Line, resourceName)
			continue
		}
		if end.Before(start) {
			w.Addf("leaves: row %d: end date before start date for resource %q; row skipped",
				row.Line, resourceName)
			continue
		}
		startKey := *FormatForStorage(start, true)
		endKey := *FormatForStorage(end, true)
		key := resourceID.String() + "|" + startKey + "|" + endKey
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		kind := row.String(colKind)
		if kind == "" {
			kind = "leave"
		}
		rows = append(rows, []any{
			uuid.New(),
			resourceID,
			startKey,
			endKey,
			kind,
			row.Flag(colApproved),
		})
	}
	return store.BulkInsert(ctx, "leaves",
		[]string{"id", "resource_id", "start_date", "end_date", "kind", "approved"},
		rows,
		"ON CONFLICT (resource_id, start_date, end_date) DO NOTHING",
	)
}
