package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/sales-consolidator/internal/logging"
	"fjacquet/sales-consolidator/internal/models"
	"fjacquet/sales-consolidator/internal/parsererror"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Supported CSV encodings.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
	EncodingLatin1      = "iso-8859-1"
)

// CSVReader reads delimited exports. Point-of-sale systems often export
// Windows-1252, so the input encoding is configurable.
type CSVReader struct {
	BaseReader
	delimiter rune
	encoding  string
}

// NewCSVReader creates a CSVReader. A zero delimiter means ','.
func NewCSVReader(logger logging.Logger, delimiter rune, encoding string) *CSVReader {
	if delimiter == 0 {
		delimiter = ','
	}
	return &CSVReader{
		BaseReader: NewBaseReader(logger),
		delimiter:  delimiter,
		encoding:   strings.ToLower(strings.TrimSpace(encoding)),
	}
}

// ValidateFormat checks the extension and that the file is readable.
func (r *CSVReader) ValidateFormat(path string) (bool, error) {
	if strings.ToLower(filepath.Ext(path)) != ".csv" {
		return false, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("failed to stat file: %w", err)
	}
	return info.Mode().IsRegular(), nil
}

func (r *CSVReader) decode(in io.Reader) (io.Reader, error) {
	switch r.encoding {
	case "", EncodingUTF8, "utf8":
		return in, nil
	case EncodingWindows1252, "cp1252":
		return transform.NewReader(in, charmap.Windows1252.NewDecoder()), nil
	case EncodingLatin1, "latin1":
		return transform.NewReader(in, charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported CSV encoding: %s", r.encoding)
	}
}

// Read loads the whole file.
func (r *CSVReader) Read(path string) (*models.SourceTable, error) {
	file, err := os.Open(path) // #nosec G304 -- CLI tool reads user-provided exports
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			r.logger.WithError(cerr).Warn("Failed to close file")
		}
	}()

	decoded, err := r.decode(file)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(decoded)
	reader.Comma = r.delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV file: %w", err)
	}

	table, ok := buildTable(filepath.Base(path), records)
	if !ok {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "header row followed by data rows",
			Msg:            "file is empty",
		}
	}

	r.logger.Debug("Read CSV file",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(table.Rows)})

	return table, nil
}
