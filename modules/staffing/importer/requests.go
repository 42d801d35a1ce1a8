package importer

import (
	"context"

	"github.com/google/uuid"
)

// longTermDays is the inclusive day-count threshold past which a request
// counts as long-term. Computed, never a sheet column.
const longTermDays = 60

// RequestsImporter loads open resource requests: a role wanted for a client
// over a date range.
type RequestsImporter struct{}

func (ri *RequestsImporter) Import(ctx context.Context, store Store, payload Payload, w *Warnings) error {
	roles, err := loadLookup(ctx, store, "roles", "name")
	if err != nil {
		return err
	}
	clients, err := loadLookup(ctx, store, "clients", "name")
	if err != nil {
		return err
	}

	seen := map[string]struct{}{}
	var rows [][]any
	for _, row := range payload.Sheet("requests") {
		roleName := row.String(colRoleName)
		if roleName == "" {
			w.Addf("requests: row %d: missing role name; row skipped", row.Line)
			continue
		}
		roleID, ok := roles.Resolve(roleName)
		if !ok {
			w.Addf("requests: row %d: %s; row skipped",
				row.Line, unknownRef(roles, "role", roleName))
			continue
		}
		var clientID any
		clientKey := ""
		if raw := row.String(colClientName); raw != "" {
			if id, ok := clients.Resolve(raw); ok {
				clientID = id
				clientKey = id.String()
			} else {
				w.Addf("requests: row %d: %s; client left empty",
					row.Line, unknownRef(clients, "client", raw))
			}
		}
		start, startOK := row.Date(colStartDate)
		end, endOK := row.Date(colEndDate)
		if !startOK || !endOK {
			w.Addf("requests: row %d: missing or invalid start/end date for role %q; row skipped",
				row.Line, roleName)
			continue
		}
		if end.Before(start) {
			w.Addf("requests: row %d: end date before start date for role %q; row skipped",
				row.Line, roleName)
			continue
		}
		startKey := *FormatForStorage(start, true)
		key := roleID.String() + "|" + clientKey + "|" + startKey
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		var notes any
		if n := row.String(colNotes); n != "" {
			notes = n
		}
		rows = append(rows, []any{
			uuid.New(),
			roleID,
			clientID,
			startKey,
			*FormatForStorage(end, true),
			DaysInclusive(start, end) >= longTermDays,
			notes,
		})
	}
	return store.BulkInsert(ctx, "resource_requests",
		[]string{"id", "role_id", "client_id", "start_date", "end_date", "long_term", "notes"},
		rows,
		"ON CONFLICT (role_id, client_id, start_date) DO NOTHING",
	)
}
