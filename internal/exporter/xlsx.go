package exporter

import (
	"fmt"

	"fjacquet/sales-consolidator/internal/fileutils"
	"fjacquet/sales-consolidator/internal/logging"
	"fjacquet/sales-consolidator/internal/models"

	"github.com/xuri/excelize/v2"
)

// XLSXExporter writes every view as a worksheet of one workbook.
type XLSXExporter struct {
	logger logging.Logger
}

// NewXLSXExporter creates an XLSXExporter.
func NewXLSXExporter(logger logging.Logger) *XLSXExporter {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &XLSXExporter{logger: logger}
}

// Export writes the workbook to path.
func (e *XLSXExporter) Export(bundle *models.Bundle, path string) ([]string, error) {
	if err := checkBundle(bundle); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil {
			e.logger.WithError(cerr).Warn("Failed to close workbook")
		}
	}()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	names := uniqueNames(bundle, SheetName, maxSheetName)
	for i, t := range bundle.Tables {
		sheet := names[i]
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return nil, fmt.Errorf("failed to name sheet %q: %w", sheet, err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("failed to create sheet %q: %w", sheet, err)
		}

		if err := writeSheet(f, sheet, t, header); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	if err := fileutils.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return nil, err
	}

	e.logger.Info("Wrote workbook",
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(bundle.Tables)})

	return []string{path}, nil
}

func writeSheet(f *excelize.File, sheet string, t *models.Table, headerStyle int) error {
	head := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		head[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return fmt.Errorf("failed to write header of %q: %w", sheet, err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style header of %q: %w", sheet, err)
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("failed to write row %d of %q: %w", i+2, sheet, err)
		}
	}

	if len(t.Columns) > 0 {
		if err := f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return fmt.Errorf("failed to freeze header of %q: %w", sheet, err)
		}
	}
	return nil
}
