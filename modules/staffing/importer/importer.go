// Package importer reconciles externally supplied workbook data against the
// staffing schema: natural keys resolve to surrogate IDs, dates normalize to
// UTC midnight, rows queue into batched conflict-aware inserts, and every row
// that cannot be reconciled becomes a warning instead of a failure. All
// lookup and pending state is invocation-local; the transaction boundary
// belongs to the caller.
package importer

import (
	"context"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Dispatch keys. Each import request targets exactly one of these.
const (
	TypeCore       = "core"
	TypeStaffing   = "staffing"
	TypeRequests   = "requests"
	TypeInterviews = "interviews"
	TypeSkills     = "skills"
	TypeLeaves     = "leaves"
	TypeUsers      = "users"
	TypeTutors     = "tutors"
)

// ErrUnknownImportType rejects dispatch keys outside the closed importer set.
var ErrUnknownImportType = errors.New("unknown import type")

// Importer consumes one logical sheet group. Implementations validate rows,
// resolve references, and flush through the store; they never manage the
// transaction and never fail for data-quality defects.
type Importer interface {
	Import(ctx context.Context, store Store, payload Payload, w *Warnings) error
}

// Registry maps dispatch keys onto importer implementations.
type Registry struct {
	importers map[string]Importer
}

func NewRegistry() *Registry {
	return &Registry{importers: map[string]Importer{
		TypeCore:       &CoreImporter{},
		TypeStaffing:   &StaffingImporter{},
		TypeRequests:   &RequestsImporter{},
		TypeInterviews: &InterviewsImporter{},
		TypeSkills:     &SkillsImporter{},
		TypeLeaves:     &LeavesImporter{},
		TypeUsers:      &UsersImporter{},
		TypeTutors:     &TutorsImporter{},
	}}
}

func (r *Registry) Get(key string) (Importer, error) {
	imp, ok := r.importers[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return nil, errors.Wrap(ErrUnknownImportType, key)
	}
	return imp, nil
}

func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.importers))
	for k := range r.importers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
