package importer

import (
	"context"
)

// SkillsImporter loads the three-level taxonomy (macro category, category,
// skill) plus resource associations in two explicit phases. Phase one
// materializes every taxonomy node referenced by either sheet, synthesizing
// missing parents from inline strings; phase two resolves associations
// against the exact IDs phase one produced, so a skill introduced and
// referenced in the same workbook lands on a single ID.
type SkillsImporter struct{}

func (si *SkillsImporter) Import(ctx context.Context, store Store, payload Payload, w *Warnings) error {
	macros, err := loadLookup(ctx, store, "macro_categories", "name")
	if err != nil {
		return err
	}
	categories, err := loadLookup(ctx, store, "categories", "name")
	if err != nil {
		return err
	}
	skills, err := loadLookup(ctx, store, "skills", "name")
	if err != nil {
		return err
	}
	resources, err := loadLookup(ctx, store, "resources", "name")
	if err != nil {
		return err
	}

	var macroRows, categoryRows, skillRows [][]any

	materialize := func(skillName, categoryName, macroName string) {
		var macroID any
		if macroName != "" {
			id, created := macros.GetOrCreate(macroName)
			if created {
				macroRows = append(macroRows, []any{id, macroName})
			}
			macroID = id
		}
		var categoryID any
		if categoryName != "" {
			id, created := categories.GetOrCreate(categoryName)
			if created {
				categoryRows = append(categoryRows, []any{id, categoryName, macroID})
			}
			categoryID = id
		}
		if skillName == "" {
			return
		}
		id, created := skills.GetOrCreate(skillName)
		if created {
			skillRows = append(skillRows, []any{id, skillName, categoryID})
		}
	}

	// Phase one: taxonomy nodes from both sheets, definitions first.
	for _, row := range payload.Sheet("skills") {
		name := row.First(colSkillName, colName)
		if name == "" && row.String(colCategory) == "" && row.String(colMacroCategory) == "" {
			w.Addf("skills: row %d: missing skill name; row skipped", row.Line)
			continue
		}
		materialize(name, row.String(colCategory), row.String(colMacroCategory))
	}
	for _, row := range payload.Sheet("resource_skills") {
		materialize(row.String(colSkillName), row.String(colCategory), row.String(colMacroCategory))
	}

	if err := store.BulkInsert(ctx, "macro_categories",
		[]string{"id", "name"},
		macroRows,
		"ON CONFLICT (lower(name)) DO NOTHING",
	); err != nil {
		return err
	}
	if err := store.BulkInsert(ctx, "categories",
		[]string{"id", "name", "macro_category_id"},
		categoryRows,
		"ON CONFLICT (lower(name)) DO NOTHING",
	); err != nil {
		return err
	}
	if err := store.BulkInsert(ctx, "skills",
		[]string{"id", "name", "category_id"},
		skillRows,
		"ON CONFLICT (lower(name)) DO NOTHING",
	); err != nil {
		return err
	}

	// Phase two: associations against the taxonomy as it now stands.
	associations := map[string][]any{}
	var order []string
	for _, row := range payload.Sheet("resource_skills") {
		resourceName := row.String(colResourceName)
		if resourceName == "" {
			w.Addf("skills: row %d: missing resource name; association skipped", row.Line)
			continue
		}
		resourceID, ok := resources.Resolve(resourceName)
		if !ok {
			w.Addf("skills: row %d: %s; association skipped",
				row.Line, unknownRef(resources, "resource", resourceName))
			continue
		}
		skillName := row.String(colSkillName)
		if skillName == "" {
			w.Addf("skills: row %d: missing skill name for resource %q; association skipped",
				row.Line, resourceName)
			continue
		}
		skillID, ok := skills.Resolve(skillName)
		if !ok {
			w.Addf("skills: row %d: %s for resource %q; association skipped",
				row.Line, unknownRef(skills, "skill", skillName), resourceName)
			continue
		}
		level, ok := parseLevel(row.String(colLevel))
		if !ok {
			w.Addf("skills: row %d: invalid level %q for resource %q; association skipped",
				row.Line, row.String(colLevel), resourceName)
			continue
		}

		key := resourceID.String() + "|" + skillID.String()
		if _, dup := associations[key]; !dup {
			order = append(order, key)
		}
		// Last declaration wins within one payload, matching the upsert.
		associations[key] = []any{resourceID, skillID, level}
	}

	associationRows := make([][]any, 0, len(order))
	for _, key := range order {
		associationRows = append(associationRows, associations[key])
	}
	return store.BulkInsert(ctx, "resource_skills",
		[]string{"resource_id", "skill_id", "level"},
		associationRows,
		"ON CONFLICT (resource_id, skill_id) DO UPDATE SET level = EXCLUDED.level",
	)
}
