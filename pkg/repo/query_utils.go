package repo

import (
	"fmt"
	"strings"
)

// Join concatenates non-empty SQL fragments with a single space.
func Join(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

// JoinWhere renders a WHERE clause joining all conditions with AND, or the
// empty string when there are none.
func JoinWhere(conditions ...string) string {
	nonEmpty := make([]string, 0, len(conditions))
	for _, c := range conditions {
		if strings.TrimSpace(c) != "" {
			nonEmpty = append(nonEmpty, c)
		}
	}
	if len(nonEmpty) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(nonEmpty, " AND ")
}

// FormatLimitOffset renders LIMIT/OFFSET, omitting either when non-positive.
func FormatLimitOffset(limit, offset int) string {
	switch {
	case limit > 0 && offset > 0:
		return fmt.Sprintf("LIMIT %d OFFSET %d", limit, offset)
	case limit > 0:
		return fmt.Sprintf("LIMIT %d", limit)
	case offset > 0:
		return fmt.Sprintf("OFFSET %d", offset)
	default:
		return ""
	}
}

// SortByField describes one ORDER BY term over a typed field enum.
type SortByField[T comparable] struct {
	Field     T
	Ascending bool
}

// SortBy is an ordered list of sort terms.
type SortBy[T comparable] struct {
	Fields []SortByField[T]
}

// ToSQL renders the ORDER BY clause using fieldMap to translate fields to
// column expressions. Unknown fields are skipped.
func (s SortBy[T]) ToSQL(fieldMap map[T]string) string {
	if len(s.Fields) == 0 {
		return ""
	}
	terms := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		column, ok := fieldMap[f.Field]
		if !ok {
			continue
		}
		if f.Ascending {
			terms = append(terms, column+" ASC")
		} else {
			terms = append(terms, column+" DESC")
		}
	}
	if len(terms) == 0 {
		return ""
	}
	return "ORDER BY " + strings.Join(terms, ", ")
}
