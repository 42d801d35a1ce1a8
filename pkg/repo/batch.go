package repo

import (
	"fmt"
	"strings"
)

// BatchCeiling is the safety margin below the driver's maximum bound-parameter
// count. Multi-row inserts are partitioned so one statement never carries more
// placeholders than this.
const BatchCeiling = 60000

// BatchRows returns how many rows of the given width fit in one statement.
func BatchRows(columns int) int {
	if columns <= 0 {
		return 0
	}
	return BatchCeiling / columns
}

// BatchInsertQueryN expands a multi-row insert from a base query of the form
// "INSERT INTO t (a, b) VALUES" and a list of row tuples. Values are flattened
// row-major; nil cells bind as SQL NULL. All rows must have equal width.
func BatchInsertQueryN(baseQuery string, values [][]any) (string, []any) {
	if len(values) == 0 {
		return baseQuery, nil
	}
	width := len(values[0])
	var b strings.Builder
	b.WriteString(strings.TrimRight(baseQuery, " "))
	args := make([]any, 0, len(values)*width)
	for i, row := range values {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(" (")
		for j, cell := range row {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "$%d", i*width+j+1)
			args = append(args, cell)
		}
		b.WriteString(")")
	}
	return b.String(), args
}
