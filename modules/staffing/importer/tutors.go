package importer

import (
	"context"
)

// TutorsImporter loads the resource-to-tutor mapping. Each resource has one
// tutor slot; re-import overwrites it. A resource naming itself as tutor is
// demoted to no tutor with a warning instead of failing the row.
type TutorsImporter struct{}

func (ti *TutorsImporter) Import(ctx context.Context, store Store, payload Payload, w *Warnings) error {
	resources, err := loadLookup(ctx, store, "resources", "name")
	if err != nil {
		return err
	}

	slots := map[string][]any{}
	var order []string
	for _, row := range payload.Sheet("tutors") {
		resourceName := row.First(colResourceName, colName)
		if resourceName == "" {
			w.Addf("tutors: row %d: missing resource name; row skipped", row.Line)
			continue
		}
		resourceID, ok := resources.Resolve(resourceName)
		if !ok {
			w.Addf("tutors: row %d: %s; row skipped",
				row.Line, unknownRef(resources, "resource", resourceName))
			continue
		}
		tutorName := row.String(colTutorName)
		if tutorName == "" {
			continue
		}
		tutorID, ok := resources.Resolve(tutorName)
		if !ok {
			w.Addf("tutors: row %d: %s for resource %q; row skipped",
				row.Line, unknownRef(resources, "tutor", tutorName), resourceName)
			continue
		}
		var tutor any = tutorID
		if tutorID == resourceID {
			w.Addf("tutors: row %d: resource %q cannot be its own tutor; tutor left empty",
				row.Line, resourceName)
			tutor = nil
		}

		key := resourceID.String()
		if _, dup := slots[key]; !dup {
			order = append(order, key)
		}
		slots[key] = []any{resourceID, tutor}
	}

	rows := make([][]any, 0, len(order))
	for _, key := range order {
		rows = append(rows, slots[key])
	}
	return store.BulkInsert(ctx, "resource_tutors",
		[]string{"resource_id", "tutor_id"},
		rows,
		"ON CONFLICT (resource_id) DO UPDATE SET tutor_id = EXCLUDED.tutor_id",
	)
}
