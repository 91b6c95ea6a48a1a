package parser

import (
	"path/filepath"
	"strings"

	"fjacquet/sales-consolidator/internal/logging"
	"fjacquet/sales-consolidator/internal/parsererror"
)

// Format identifies a source file format.
type Format string

const (
	XLSX Format = "xlsx"
	CSV  Format = "csv"
)

// FormatFromPath maps a file extension to its Format.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return XLSX, true
	case ".csv":
		return CSV, true
	default:
		return "", false
	}
}

// CSVOptions configures the CSV reader.
type CSVOptions struct {
	Delimiter rune
	Encoding  string
}

// Factory hands out the reader for a file.
type Factory struct {
	readers map[Format]FullReader
}

// NewFactory creates readers for every supported format.
func NewFactory(logger logging.Logger, csvOpts CSVOptions) *Factory {
	return &Factory{
		readers: map[Format]FullReader{
			XLSX: NewXLSXReader(logger),
			CSV:  NewCSVReader(logger, csvOpts.Delimiter, csvOpts.Encoding),
		},
	}
}

// ReaderFor returns the reader matching the file's extension.
func (f *Factory) ReaderFor(path string) (FullReader, error) {
	format, ok := FormatFromPath(path)
	if !ok {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: ".xlsx, .xlsm or .csv",
			Msg:            "unsupported extension",
		}
	}
	return f.readers[format], nil
}

// IsSupported reports whether a file can be read.
func IsSupported(path string) bool {
	_, ok := FormatFromPath(path)
	return ok
}
