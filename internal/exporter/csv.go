package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"fjacquet/sales-consolidator/internal/fileutils"
	"fjacquet/sales-consolidator/internal/logging"
	"fjacquet/sales-consolidator/internal/models"

	"github.com/gocarina/gocsv"
)

// CSVExporter writes each view to "<dir>/<view name>.csv".
type CSVExporter struct {
	delimiter rune
	logger    logging.Logger
}

// NewCSVExporter creates a CSVExporter. A zero delimiter means ','.
func NewCSVExporter(delimiter rune, logger logging.Logger) *CSVExporter {
	if delimiter == 0 {
		delimiter = ','
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &CSVExporter{delimiter: delimiter, logger: logger}
}

var fileNameReplacer = strings.NewReplacer("/", "-", "\\", "-", ":", "-", "*", "", "?", "", "\"", "", "<", "", ">", "", "|", "")

func fileName(name string) string {
	clean := strings.TrimSpace(fileNameReplacer.Replace(name))
	if clean == "" {
		return "view"
	}
	return clean
}

// Export writes one file per view into dir, creating it if needed.
func (e *CSVExporter) Export(bundle *models.Bundle, dir string) ([]string, error) {
	if err := checkBundle(bundle); err != nil {
		return nil, err
	}

	names := uniqueNames(bundle, fileName, 0)
	rendered := make([][]byte, len(bundle.Tables))
	for i, t := range bundle.Tables {
		data, err := e.render(t)
		if err != nil {
			return nil, fmt.Errorf("failed to render %q: %w", t.Name, err)
		}
		rendered[i] = data
	}

	if err := fileutils.EnsureDirectoryExists(dir); err != nil {
		return nil, err
	}
	written := make([]string, 0, len(rendered))
	for i, data := range rendered {
		path := filepath.Join(dir, names[i]+".csv")
		if err := fileutils.WriteFile(path, data, 0600); err != nil {
			return written, err
		}
		written = append(written, path)
		e.logger.Debug("Wrote view",
			logging.Field{Key: logging.FieldReport, Value: bundle.Tables[i].Name},
			logging.Field{Key: logging.FieldOutputFile, Value: path})
	}

	e.logger.Info("Wrote CSV views",
		logging.Field{Key: "directory", Value: dir},
		logging.Field{Key: logging.FieldCount, Value: len(written)})

	return written, nil
}

func (e *CSVExporter) render(t *models.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = e.delimiter
	sw := gocsv.NewSafeCSVWriter(w)
	for _, rec := range t.Records() {
		if err := sw.Write(rec); err != nil {
			return nil, err
		}
	}
	sw.Flush()
	if err := sw.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
