package excel

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// Workbook is a read-only view over an uploaded xlsx file. Cell values are
// returned raw, so date cells keep their underlying serial numbers instead of
// a locale-dependent rendering.
type Workbook struct {
	file *excelize.File
}

func OpenWorkbook(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open workbook")
	}
	return &Workbook{file: f}, nil
}

func (w *Workbook) Close() error {
	return w.file.Close()
}

func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Rows returns the sheet as a raw cell matrix. Rows may be ragged: trailing
// empty cells are not padded.
func (w *Workbook) Rows(sheet string) ([][]string, error) {
	rows, err := w.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %q", sheet)
	}
	return rows, nil
}
