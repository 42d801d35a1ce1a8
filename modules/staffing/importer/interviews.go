package importer

import (
	"context"

	"github.com/google/uuid"
)

// InterviewsImporter loads candidate interviews, keyed by candidate email
// and interview date.
type InterviewsImporter struct{}

func (ii *InterviewsImporter) Import(ctx context.Context, store Store, payload Payload, w *Warnings) error {
	roles, err := loadLookup(ctx, store, "roles", "name")
	if err != nil {
		return err
	}

	seen := map[string]struct{}{}
	var rows [][]any
	for _, row := range payload.Sheet("interviews") {
		candidate := row.String(colCandidateName)
		if candidate == "" {
			w.Addf("interviews: row %d: missing candidate name; row skipped", row.Line)
			continue
		}
		email := row.String(colCandidateEmail)
		if email == "" {
			w.Addf("interviews: row %d: missing candidate email for %q; row skipped",
				row.Line, candidate)
			continue
		}
		date, ok := row.Date(colInterviewDate)
		if !ok {
			w.Addf("interviews: row %d: missing or invalid interview date for %q; row skipped",
				row.Line, candidate)
			continue
		}
		var roleID any
		if raw := row.String(colRoleName); raw != "" {
			if id, ok := roles.Resolve(raw); ok {
				roleID = id
			} else {
				w.Addf("interviews: row %d: %s for candidate %q; role left empty",
					row.Line, unknownRef(roles, "role", raw), candidate)
			}
		}

		dateKey := *FormatForStorage(date, true)
		key := NormalizeKey(email) + "|" + dateKey
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		var interviewer, outcome, notes any
		if v := row.String(colInterviewer); v != "" {
			interviewer = v
		}
		if v := row.String(colOutcome); v != "" {
			outcome = v
		}
		if v := row.String(colNotes); v != "" {
			notes = v
		}
		rows = append(rows, []any{
			uuid.New(),
			candidate,
			email,
			roleID,
			dateKey,
			interviewer,
			outcome,
			notes,
		})
	}
	return store.BulkInsert(ctx, "interviews",
		[]string{"id", "candidate_name", "candidate_email", "role_id", "interview_date", "interviewer", "outcome", "notes"},
		rows,
		"ON CONFLICT (lower(candidate_email), interview_date) DO NOTHING",
	)
}
