// Package exporter writes a report bundle to disk, either as one multi-sheet
// workbook or as one CSV file per view. The whole bundle is rendered in
// memory before anything is written.
package exporter

import (
	"fmt"
	"strings"

	"fjacquet/sales-consolidator/internal/logging"
	"fjacquet/sales-consolidator/internal/models"
)

// Output formats.
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// Exporter writes a bundle and returns the files it created.
type Exporter interface {
	Export(bundle *models.Bundle, path string) ([]string, error)
}

// New returns the exporter for format.
func New(format string, csvDelimiter rune, logger logging.Logger) (Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatXLSX, "":
		return NewXLSXExporter(logger), nil
	case FormatCSV:
		return NewCSVExporter(csvDelimiter, logger), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// maxSheetName is the longest worksheet name spreadsheet applications accept.
const maxSheetName = 31

var invalidSheetChars = strings.NewReplacer(
	":", "-", "\\", "-", "/", "-", "?", "", "*", "", "[", "(", "]", ")",
)

// SheetName makes name usable as a worksheet name: forbidden characters are
// replaced and the result is cut to 31 characters.
func SheetName(name string) string {
	clean := strings.TrimSpace(invalidSheetChars.Replace(name))
	if clean == "" {
		clean = "Sheet"
	}
	runes := []rune(clean)
	if len(runes) > maxSheetName {
		runes = runes[:maxSheetName]
	}
	return strings.TrimSpace(string(runes))
}

// uniqueNames applies sanitize to every view name and suffixes collisions.
func uniqueNames(bundle *models.Bundle, sanitize func(string) string, limit int) []string {
	seen := make(map[string]bool, len(bundle.Tables))
	names := make([]string, len(bundle.Tables))
	for i, t := range bundle.Tables {
		name := sanitize(t.Name)
		base := name
		for n := 2; seen[strings.ToLower(name)]; n++ {
			suffix := fmt.Sprintf(" (%d)", n)
			cut := []rune(base)
			if limit > 0 && len(cut)+len(suffix) > limit {
				cut = cut[:limit-len(suffix)]
			}
			name = string(cut) + suffix
		}
		seen[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}

func checkBundle(bundle *models.Bundle) error {
	if bundle == nil || len(bundle.Tables) == 0 {
		return fmt.Errorf("nothing to export: bundle has no views")
	}
	return nil
}
