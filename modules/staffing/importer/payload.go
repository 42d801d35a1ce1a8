package importer

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Canonical column names after alias folding.
const (
	colName           = "name"
	colClientName     = "client name"
	colRoleName       = "role name"
	colResourceName   = "resource name"
	colProjectName    = "project name"
	colEmail          = "email"
	colHireDate       = "hire date"
	colExitDate       = "exit date"
	colDailyRate      = "daily rate"
	colStartDate      = "start date"
	colEndDate        = "end date"
	colBillable       = "billable"
	colNotes          = "notes"
	colSkillName      = "skill name"
	colCategory       = "category"
	colMacroCategory  = "macro category"
	colLevel          = "level"
	colTutorName      = "tutor name"
	colCandidateName  = "candidate name"
	colCandidateEmail = "candidate email"
	colInterviewDate  = "interview date"
	colInterviewer    = "interviewer"
	colOutcome        = "outcome"
	colKind           = "kind"
	colApproved       = "approved"
	colPage           = "page"
	colCanView        = "can view"
	colCanEdit        = "can edit"
	colAppRole        = "app role"
	colUserName       = "user name"
	colPassword       = "password"
)

// Payload is one import request: logical sheet name to its rows. Sheet names
// and headers are already folded through the alias table, so English and
// Italian workbooks address the same fields.
type Payload map[string][]Row

func (p Payload) Sheet(name string) []Row {
	return p[name]
}

// Row is one sheet line keyed by canonical column name. Cells hold whatever
// the source produced: strings, numbers, bool-ish flag strings, or native
// time values. Line is the 1-based position within the sheet, counting the
// header line in workbook input.
type Row struct {
	Line  int
	cols  []string
	cells map[string]any
}

// Columns lists the populated column names in deterministic order.
func (r Row) Columns() []string {
	return r.cols
}

func (r Row) Raw(col string) (any, bool) {
	v, ok := r.cells[col]
	return v, ok
}

// String renders a cell as a trimmed string; absent cells yield "".
func (r Row) String(col string) string {
	v, ok := r.cells[col]
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	}
	return ""
}

// First returns the first non-blank cell among the given columns.
func (r Row) First(cols ...string) string {
	for _, col := range cols {
		if s := r.String(col); s != "" {
			return s
		}
	}
	return ""
}

// Flag reads a cell as a permissive boolean: SI/sì, yes, true, 1, x and y
// all count as set.
func (r Row) Flag(col string) bool {
	if v, ok := r.cells[col]; ok {
		if b, isBool := v.(bool); isBool {
			return b
		}
	}
	return parseFlag(r.String(col))
}

// Date parses a cell through the date normalizer.
func (r Row) Date(col string) (time.Time, bool) {
	v, ok := r.cells[col]
	if !ok {
		return time.Time{}, false
	}
	return ParseDate(v)
}

// FromSheets builds a Payload from decoded JSON sheets, each row an object
// keyed by header. Object key order is not preserved by JSON, so columns are
// sorted for deterministic iteration.
func FromSheets(sheets map[string][]map[string]any) Payload {
	p := Payload{}
	for name, rows := range sheets {
		sheet := CanonicalSheet(name)
		out := p[sheet]
		for i, raw := range rows {
			row := Row{Line: i + 1, cells: make(map[string]any, len(raw))}
			for header, value := range raw {
				col := CanonicalHeader(header)
				if col == "" {
					continue
				}
				if _, dup := row.cells[col]; !dup {
					row.cols = append(row.cols, col)
				}
				row.cells[col] = value
			}
			sort.Strings(row.cols)
			out = append(out, row)
		}
		p[sheet] = out
	}
	return p
}

// FromTable builds a Payload from raw worksheet cells, first line headers.
// Blank cells are treated as absent and fully blank lines are dropped, so the
// sparse staffing grid stays sparse.
func FromTable(sheets map[string][][]string) Payload {
	p := Payload{}
	for name, lines := range sheets {
		if len(lines) == 0 {
			continue
		}
		sheet := CanonicalSheet(name)
		headers := make([]string, len(lines[0]))
		for i, h := range lines[0] {
			headers[i] = CanonicalHeader(h)
		}
		out := p[sheet]
		for i, line := range lines[1:] {
			row := Row{Line: i + 2, cells: map[string]any{}}
			for j, cell := range line {
				if j >= len(headers) {
					break
				}
				col := headers[j]
				if col == "" || strings.TrimSpace(cell) == "" {
					continue
				}
				if _, dup := row.cells[col]; !dup {
					row.cols = append(row.cols, col)
				}
				row.cells[col] = cell
			}
			if len(row.cells) == 0 {
				continue
			}
			out = append(out, row)
		}
		p[sheet] = out
	}
	return p
}
