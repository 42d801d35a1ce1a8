package importer

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSkillsImporter_TaxonomyBeforeAssociations(t *testing.T) {
	store := newFakeStore()
	resourceID := uuid.New()
	store.seed("resources", map[string]uuid.UUID{"mario rossi": resourceID})

	payload := FromSheets(map[string][]map[string]any{
		"skills": {
			{"Skill Name": "Go", "Category": "Backend", "Macro Category": "Engineering"},
		},
		"resource_skills": {
			{"Resource Name": "Mario Rossi", "Skill Name": "go", "Level": "4"},
		},
	})

	var w Warnings
	require.NoError(t, (&SkillsImporter{}).Import(context.Background(), store, payload, &w))
	require.Empty(t, w.List())

	macros := store.rowsFor("macro_categories")
	require.Len(t, macros, 1)
	macroID := macros[0][0].(uuid.UUID)

	categories := store.rowsFor("categories")
	require.Len(t, categories, 1)
	require.Equal(t, macroID, categories[0][2])
	categoryID := categories[0][0].(uuid.UUID)

	skills := store.rowsFor("skills")
	require.Len(t, skills, 1)
	require.Equal(t, categoryID, skills[0][2])
	skillID := skills[0][0].(uuid.UUID)

	associations := store.rowsFor("resource_skills")
	require.Len(t, associations, 1)
	require.Equal(t, []any{resourceID, skillID, 4}, associations[0],
		"association must land on the ID phase one synthesized")
}

func TestSkillsImporter_InlineTaxonomyFromAssociationsSheet(t *testing.T) {
	store := newFakeStore()
	store.seed("resources", map[string]uuid.UUID{"mario rossi": uuid.New()})

	payload := FromSheets(map[string][]map[string]any{
		"resource_skills": {
			{"Resource Name": "Mario Rossi", "Skill Name": "Kafka", "Category": "Messaging", "Level": 3},
		},
	})

	var w Warnings
	require.NoError(t, (&SkillsImporter{}).Import(context.Background(), store, payload, &w))

	require.Len(t, store.rowsFor("categories"), 1)
	require.Len(t, store.rowsFor("skills"), 1)
	require.Len(t, store.rowsFor("resource_skills"), 1)
	require.Empty(t, store.rowsFor("macro_categories"))
}

func TestSkillsImporter_RepeatedAssociationLastLevelWins(t *testing.T) {
	store := newFakeStore()
	resourceID, skillID := uuid.New(), uuid.New()
	store.seed("resources", map[string]uuid.UUID{"mario rossi": resourceID})
	store.seed("skills", map[string]uuid.UUID{"go": skillID})

	payload := FromSheets(map[string][]map[string]any{
		"resource_skills": {
			{"Resource Name": "Mario Rossi", "Skill Name": "Go", "Level": "2"},
			{"Resource Name": "Mario Rossi", "Skill Name": "GO", "Level": "4"},
		},
	})

	var w Warnings
	require.NoError(t, (&SkillsImporter{}).Import(context.Background(), store, payload, &w))

	associations := store.rowsFor("resource_skills")
	require.Len(t, associations, 1)
	require.Equal(t, 4, associations[0][2])
	require.Equal(t,
		"ON CONFLICT (resource_id, skill_id) DO UPDATE SET level = EXCLUDED.level",
		store.conflictFor("resource_skills"))
}

func TestSkillsImporter_UnknownResourceSkipsAssociation(t *testing.T) {
	store := newFakeStore()

	payload := FromSheets(map[string][]map[string]any{
		"resource_skills": {
			{"Resource Name": "Nobody", "Skill Name": "Go", "Level": 3},
		},
	})

	var w Warnings
	require.NoError(t, (&SkillsImporter{}).Import(context.Background(), store, payload, &w))

	require.Empty(t, store.rowsFor("resource_skills"))
	// The skill itself still materializes; only the association is skipped.
	require.Len(t, store.rowsFor("skills"), 1)
	require.Len(t, w.List(), 1)
	require.Contains(t, w.List()[0], "Nobody")
}

func TestSkillsImporter_PersistedTaxonomyNotReinserted(t *testing.T) {
	store := newFakeStore()
	store.seed("skills", map[string]uuid.UUID{"go": uuid.New()})
	store.seed("categories", map[string]uuid.UUID{"backend": uuid.New()})

	payload := FromSheets(map[string][]map[string]any{
		"skills": {
			{"Skill Name": "Go", "Category": "Backend"},
		},
	})

	var w Warnings
	require.NoError(t, (&SkillsImporter{}).Import(context.Background(), store, payload, &w))
	require.Empty(t, store.inserts)
}
