package importer

import (
	"context"
)

// staffingReserved lists the staffing grid columns that are never allocation
// candidates. Every other header is tried as a calendar date.
var staffingReserved = map[string]struct{}{
	colResourceName: {},
	colProjectName:  {},
	colName:         {},
	colClientName:   {},
	colRoleName:     {},
	colEmail:        {},
	colNotes:        {},
}

// StaffingImporter loads the allocation grid: one row per resource-project
// pair, one column per day. A cell becomes an allocation only when the
// header parses as a date and the value as a strictly positive percentage;
// everything else stays unallocated. Resources and projects must already
// exist, assignments are created or reused, allocation percentages overwrite
// on re-import.
type StaffingImporter struct{}

func (si *StaffingImporter) Import(ctx context.Context, store Store, payload Payload, w *Warnings) error {
	resources, err := loadLookup(ctx, store, "resources", "name")
	if err != nil {
		return err
	}
	projects, err := loadLookup(ctx, store, "projects", "name")
	if err != nil {
		return err
	}
	assignments, err := loadLookup(ctx, store, "assignments", "resource_id::text || '|' || project_id::text")
	if err != nil {
		return err
	}

	var assignmentRows [][]any
	allocations := map[string][]any{}
	var allocationOrder []string

	for _, row := range payload.Sheet("staffing") {
		resourceName := row.First(colResourceName, colName)
		if resourceName == "" {
			w.Addf("staffing: row %d: missing resource name; row skipped", row.Line)
			continue
		}
		projectName := row.String(colProjectName)
		if projectName == "" {
			w.Addf("staffing: row %d: missing project name for resource %q; row skipped",
				row.Line, resourceName)
			continue
		}
		resourceID, ok := resources.Resolve(resourceName)
		if !ok {
			w.Addf("staffing: row %d: %s; row skipped",
				row.Line, unknownRef(resources, "resource", resourceName))
			continue
		}
		projectID, ok := projects.Resolve(projectName)
		if !ok {
			w.Addf("staffing: row %d: %s; row skipped",
				row.Line, unknownRef(projects, "project", projectName))
			continue
		}

		pairKey := resourceID.String() + "|" + projectID.String()
		assignmentID, created := assignments.GetOrCreate(pairKey)
		if created {
			assignmentRows = append(assignmentRows, []any{assignmentID, resourceID, projectID})
		}

		for _, col := range row.Columns() {
			if _, reserved := staffingReserved[col]; reserved {
				continue
			}
			day, ok := ParseDate(col)
			if !ok {
				continue
			}
			cell, _ := row.Raw(col)
			percent, ok := parsePercent(cell)
			if !ok {
				continue
			}
			dayKey := *FormatForStorage(day, true)
			key := assignmentID.String() + "|" + dayKey
			if _, dup := allocations[key]; !dup {
				allocationOrder = append(allocationOrder, key)
			}
			allocations[key] = []any{assignmentID, dayKey, percent}
		}
	}

	if err := store.BulkInsert(ctx, "assignments",
		[]string{"id", "resource_id", "project_id"},
		assignmentRows,
		"ON CONFLICT (resource_id, project_id) DO NOTHING",
	); err != nil {
		return err
	}

	allocationRows := make([][]any, 0, len(allocationOrder))
	for _, key := range allocationOrder {
		allocationRows = append(allocationRows, allocations[key])
	}
	return store.BulkInsert(ctx, "allocations",
		[]string{"assignment_id", "day", "percent"},
		allocationRows,
		"ON CONFLICT (assignment_id, day) DO UPDATE SET percent = EXCLUDED.percent",
	)
}
