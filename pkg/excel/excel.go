// Package excel turns query results into xlsx workbooks and reads uploaded
// workbooks back into raw cell matrices.
package excel

import "context"

// DataSource feeds rows to the exporter one at a time.
type DataSource interface {
	GetSheetName() string
	GetHeaders() []string
	// GetRows returns an iterator; the iterator returns nil when exhausted.
	GetRows(ctx context.Context) (RowIterator, error)
}

type RowIterator func() ([]interface{}, error)

type ExportOptions struct {
	IncludeHeaders bool
	AutoFilter     bool
	FreezeHeader   bool
	DateFormat     string
	MaxRows        int
}

func DefaultExportOptions() *ExportOptions {
	return &ExportOptions{
		IncludeHeaders: true,
		AutoFilter:     true,
		FreezeHeader:   true,
		DateFormat:     "yyyy-mm-dd",
	}
}

type FontStyle struct {
	Bold  bool
	Size  float64
	Color string
}

type FillStyle struct {
	Type    string
	Color   string
	Pattern int
}

type CellStyle struct {
	Font *FontStyle
	Fill *FillStyle
}

type StyleOptions struct {
	HeaderStyle       *CellStyle
	AlternateRowColor string
}

func DefaultStyleOptions() *StyleOptions {
	return &StyleOptions{
		HeaderStyle: &CellStyle{
			Font: &FontStyle{Bold: true, Size: 11, Color: "#FFFFFF"},
			Fill: &FillStyle{Type: "pattern", Color: "#4472C4", Pattern: 1},
		},
	}
}
