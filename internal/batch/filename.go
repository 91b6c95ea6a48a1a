package batch

import (
	"fmt"
	"strings"

	"fjacquet/sales-consolidator/internal/models"
)

// GenerateOutputFilename names the output bundle after the first and last
// period covered: Consolidated_MARZO-2025_ABRIL-2025.<ext>. A single period
// appears once; no periods gives Consolidated.<ext>.
func GenerateOutputFilename(periods []models.Period, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if len(periods) == 0 {
		return fmt.Sprintf("Consolidated.%s", ext)
	}

	sorted := append([]models.Period(nil), periods...)
	models.SortPeriods(sorted)
	first := periodToken(sorted[0])
	last := periodToken(sorted[len(sorted)-1])
	if first == last {
		return fmt.Sprintf("Consolidated_%s.%s", first, ext)
	}
	return fmt.Sprintf("Consolidated_%s_%s.%s", first, last, ext)
}

func periodToken(p models.Period) string {
	return strings.ReplaceAll(p.Label(), " ", "-")
}
