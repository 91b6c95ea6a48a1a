package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"fjacquet/sales-consolidator/internal/logging"
	"fjacquet/sales-consolidator/internal/models"
	"fjacquet/sales-consolidator/internal/parsererror"

	"github.com/xuri/excelize/v2"
)

// XLSXReader reads the first worksheet of a workbook.
type XLSXReader struct {
	BaseReader
}

// NewXLSXReader creates an XLSXReader.
func NewXLSXReader(logger logging.Logger) *XLSXReader {
	return &XLSXReader{BaseReader: NewBaseReader(logger)}
}

// ValidateFormat checks the extension and that the workbook opens.
func (r *XLSXReader) ValidateFormat(path string) (bool, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".xlsx" && ext != ".xlsm" {
		return false, nil
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to open workbook: %w", err)
	}
	if cerr := f.Close(); cerr != nil {
		r.logger.WithError(cerr).Warn("Failed to close workbook")
	}
	return true, nil
}

// Read loads the first worksheet. Cells are read raw so numeric quantities
// are not affected by display formats.
func (r *XLSXReader) Read(path string) (*models.SourceTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			r.logger.WithError(cerr).Warn("Failed to close workbook")
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "workbook with at least one worksheet",
			Msg:            "no worksheets",
		}
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", sheets[0], err)
	}

	table, ok := buildTable(filepath.Base(path), rows)
	if !ok {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "header row followed by data rows",
			Msg:            fmt.Sprintf("worksheet %q is empty", sheets[0]),
		}
	}

	r.logger.Debug("Read workbook",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: "sheet", Value: sheets[0]},
		logging.Field{Key: logging.FieldCount, Value: len(table.Rows)})

	return table, nil
}
