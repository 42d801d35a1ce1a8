package importer

import (
	"context"
)

// CoreImporter loads the directory sheets: clients, roles, projects and
// resources. Entities are plain (first write wins); references between the
// sheets resolve against persisted state plus whatever earlier sheets of the
// same payload introduced.
type CoreImporter struct{}

func (ci *CoreImporter) Import(ctx context.Context, store Store, payload Payload, w *Warnings) error {
	clients, err := loadLookup(ctx, store, "clients", "name")
	if err != nil {
		return err
	}
	roles, err := loadLookup(ctx, store, "roles", "name")
	if err != nil {
		return err
	}
	projects, err := loadLookup(ctx, store, "projects", "name")
	if err != nil {
		return err
	}
	resources, err := loadLookup(ctx, store, "resources", "name")
	if err != nil {
		return err
	}

	var clientRows [][]any
	for _, row := range payload.Sheet("clients") {
		name := row.First(colName, colClientName)
		if name == "" {
			w.Addf("clients: row %d: missing name; row skipped", row.Line)
			continue
		}
		id, created := clients.GetOrCreate(name)
		if !created {
			continue
		}
		clientRows = append(clientRows, []any{id, name})
	}
	if err := store.BulkInsert(ctx, "clients",
		[]string{"id", "name"},
		clientRows,
		"ON CONFLICT (lower(name)) DO NOTHING",
	); err != nil {
		return err
	}

	var roleRows [][]any
	for _, row := range payload.Sheet("roles") {
		name := row.First(colName, colRoleName)
		if name == "" {
			w.Addf("roles: row %d: missing name; row skipped", row.Line)
			continue
		}
		id, created := roles.GetOrCreate(name)
		if !created {
			continue
		}
		roleRows = append(roleRows, []any{id, name})
	}
	if err := store.BulkInsert(ctx, "roles",
		[]string{"id", "name"},
		roleRows,
		"ON CONFLICT (lower(name)) DO NOTHING",
	); err != nil {
		return err
	}

	var projectRows [][]any
	for _, row := range payload.Sheet("projects") {
		name := row.First(colProjectName, colName)
		if name == "" {
			w.Addf("projects: row %d: missing project name; row skipped", row.Line)
			continue
		}
		var clientID any
		if raw := row.String(colClientName); raw != "" {
			if id, ok := clients.Resolve(raw); ok {
				clientID = id
			} else {
				w.Addf("projects: row %d: %s for project %q; client left empty",
					row.Line, unknownRef(clients, "client", raw), name)
			}
		}
		id, created := projects.GetOrCreate(name)
		if !created {
			continue
		}
		start, startOK := row.Date(colStartDate)
		end, endOK := row.Date(colEndDate)
		projectRows = append(projectRows, []any{
			id,
			name,
			clientID,
			FormatForStorage(start, startOK),
			FormatForStorage(end, endOK),
			row.Flag(colBillable),
		})
	}
	if err := store.BulkInsert(ctx, "projects",
		[]string{"id", "name", "client_id", "start_date", "end_date", "billable"},
		projectRows,
		"ON CONFLICT (lower(name)) DO NOTHING",
	); err != nil {
		return err
	}

	var resourceRows [][]any
	for _, row := range payload.Sheet("resources") {
		name := row.First(colResourceName, colName)
		if name == "" {
			w.Addf("resources: row %d: missing resource name; row skipped", row.Line)
			continue
		}
		// A stated role must resolve; resources without a role pass with NULL.
		var roleID any
		if raw := row.String(colRoleName); raw != "" {
			id, ok := roles.Resolve(raw)
			if !ok {
				w.Addf("resources: row %d: %s for resource %q; row skipped",
					row.Line, unknownRef(roles, "role", raw), name)
				continue
			}
			roleID = id
		}
		id, created := resources.GetOrCreate(name)
		if !created {
			continue
		}
		var email any
		if e := row.String(colEmail); e != "" {
			email = e
		}
		var rateCents, rateCurrency any
		if raw := row.String(colDailyRate); raw != "" {
			if cents, currency, ok := parseRate(raw); ok {
				rateCents, rateCurrency = cents, currency
			} else {
				w.Addf("resources: row %d: invalid daily rate %q for resource %q; rate left empty",
					row.Line, raw, name)
			}
		}
		hire, hireOK := row.Date(colHireDate)
		exit, exitOK := row.Date(colExitDate)
		resourceRows = append(resourceRows, []any{
			id,
			name,
			email,
			roleID,
			FormatForStorage(hire, hireOK),
			FormatForStorage(exit, exitOK),
			rateCents,
			rateCurrency,
		})
	}
	return store.BulkInsert(ctx, "resources",
		[]string{"id", "name", "email", "role_id", "hire_date", "exit_date", "daily_rate_cents", "daily_rate_currency"},
		resourceRows,
		"ON CONFLICT (lower(name)) DO NOTHING",
	)
}
