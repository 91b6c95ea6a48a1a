// Package parser reads monthly sales exports (.xlsx workbooks and .csv files)
// into raw tables for the normalizer.
package parser

import (
	"strings"

	"fjacquet/sales-consolidator/internal/logging"
	"fjacquet/sales-consolidator/internal/models"
)

// BaseReader carries what every reader shares. Readers embed it.
type BaseReader struct {
	logger logging.Logger
}

// NewBaseReader creates a BaseReader; a nil logger gets an info-level default.
func NewBaseReader(logger logging.Logger) BaseReader {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return BaseReader{logger: logger}
}

// SetLogger replaces the logger; nil is ignored.
func (b *BaseReader) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// GetLogger returns the reader's logger.
func (b *BaseReader) GetLogger() logging.Logger {
	return b.logger
}

// buildTable turns raw records into a SourceTable. Leading blank rows are
// skipped, the first remaining row is the header, trailing blank rows are
// dropped and short rows are padded to the header width.
func buildTable(name string, records [][]string) (*models.SourceTable, bool) {
	start := 0
	for start < len(records) && isBlank(records[start]) {
		start++
	}
	if start == len(records) {
		return nil, false
	}

	headers := make([]string, len(records[start]))
	for i, h := range records[start] {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	table := &models.SourceTable{Name: name, Headers: headers}
	for _, rec := range records[start+1:] {
		if isBlank(rec) {
			continue
		}
		row := make([]string, len(headers))
		copy(row, rec)
		table.Rows = append(table.Rows, row)
	}
	return table, true
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
