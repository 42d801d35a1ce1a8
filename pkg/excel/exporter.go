package excel

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

type ExcelExporter struct {
	options      *ExportOptions
	styleOptions *StyleOptions
}

func NewExcelExporter(options *ExportOptions, styleOptions *StyleOptions) *ExcelExporter {
	if options == nil {
		options = DefaultExportOptions()
	}
	if styleOptions == nil {
		styleOptions = DefaultStyleOptions()
	}
	return &ExcelExporter{options: options, styleOptions: styleOptions}
}

func (e *ExcelExporter) Export(ctx context.Context, ds DataSource) ([]byte, error) {
	return e.ExportSheets(ctx, ds)
}

// ExportSheets writes one sheet per data source into a single workbook,
// in the order given.
func (e *ExcelExporter) ExportSheets(ctx context.Context, sources ...DataSource) ([]byte, error) {
	if len(sources) == 0 {
		return nil, errors.New("no data sources to export")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, ds := range sources {
		sheet := ds.GetSheetName()
		if sheet == "" {
			sheet = fmt.Sprintf("Sheet%d", i+1)
		}
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, errors.Wrap(err, "failed to name sheet")
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, errors.Wrapf(err, "failed to add sheet %q", sheet)
			}
		}
		if err := e.writeSheet(ctx, f, sheet, ds); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize workbook")
	}
	return buf.Bytes(), nil
}

func (e *ExcelExporter) writeSheet(ctx context.Context, f *excelize.File, sheet string, ds DataSource) error {
	iterator, err := ds.GetRows(ctx)
	if err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return errors.Wrapf(err, "failed to create stream writer for %q", sheet)
	}

	dateStyleID := 0
	if e.options.DateFormat != "" {
		dateStyleID, err = f.NewStyle(&excelize.Style{CustomNumFmt: &e.options.DateFormat})
		if err != nil {
			return errors.Wrap(err, "failed to create date style")
		}
	}

	rowIndex := 1
	headers := ds.GetHeaders()
	if e.options.IncludeHeaders && len(headers) > 0 {
		styleID, err := e.headerStyleID(f)
		if err != nil {
			return err
		}
		cells := make([]interface{}, len(headers))
		for i, header := range headers {
			cells[i] = excelize.Cell{StyleID: styleID, Value: header}
		}
		if err := sw.SetRow("A1", cells); err != nil {
			return errors.Wrap(err, "failed to write header row")
		}
		rowIndex++
	}

	written := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		values, err := iterator()
		if err != nil {
			return err
		}
		if values == nil {
			break
		}
		if e.options.MaxRows > 0 && written >= e.options.MaxRows {
			break
		}

		cells := make([]interface{}, len(values))
		for i, v := range values {
			if t, ok := v.(time.Time); ok && dateStyleID != 0 {
				cells[i] = excelize.Cell{StyleID: dateStyleID, Value: t}
				continue
			}
			cells[i] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, rowIndex)
		if err != nil {
			return errors.Wrap(err, "failed to compute cell coordinates")
		}
		if err := sw.SetRow(cell, cells); err != nil {
			return errors.Wrapf(err, "failed to write row %d", rowIndex)
		}
		rowIndex++
		written++
	}

	if err := sw.Flush(); err != nil {
		return errors.Wrap(err, "failed to flush stream writer")
	}

	return e.decorate(f, sheet, len(headers), rowIndex-1)
}

func (e *ExcelExporter) headerStyleID(f *excelize.File) (int, error) {
	style := e.styleOptions.HeaderStyle
	if style == nil {
		return 0, nil
	}
	s := &excelize.Style{}
	if style.Font != nil {
		s.Font = &excelize.Font{
			Bold:  style.Font.Bold,
			Size:  style.Font.Size,
			Color: style.Font.Color,
		}
	}
	if style.Fill != nil {
		s.Fill = excelize.Fill{
			Type:    style.Fill.Type,
			Color:   []string{style.Fill.Color},
			Pattern: style.Fill.Pattern,
		}
	}
	id, err := f.NewStyle(s)
	if err != nil {
		return 0, errors.Wrap(err, "failed to create header style")
	}
	return id, nil
}

func (e *ExcelExporter) decorate(f *excelize.File, sheet string, columns, lastRow int) error {
	if columns == 0 || lastRow == 0 {
		return nil
	}
	if e.options.AutoFilter && e.options.IncludeHeaders {
		lastCol, err := excelize.ColumnNumberToName(columns)
		if err != nil {
			return errors.Wrap(err, "failed to compute filter range")
		}
		ref := fmt.Sprintf("A1:%s1", lastCol)
		if err := f.AutoFilter(sheet, ref, nil); err != nil {
			return errors.Wrap(err, "failed to set auto filter")
		}
	}
	if e.options.FreezeHeader && e.options.IncludeHeaders {
		if err := f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return errors.Wrap(err, "failed to freeze header row")
		}
	}
	return nil
}
