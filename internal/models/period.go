package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Period identifies one reporting month.
type Period struct {
	Month Month
	Year  int
}

// Label returns the "<MONTH> <YEAR>" form used as column and row labels.
func (p Period) Label() string {
	return fmt.Sprintf("%s %d", p.Month, p.Year)
}

// Before orders periods chronologically by (year, month).
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

// ParsePeriodLabel is the inverse of Label.
func ParsePeriodLabel(label string) (Period, error) {
	parts := strings.Fields(label)
	if len(parts) != 2 {
		return Period{}, fmt.Errorf("invalid period label %q", label)
	}
	month, ok := MonthFromName(parts[0])
	if !ok {
		return Period{}, fmt.Errorf("invalid month in period label %q", label)
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return Period{}, fmt.Errorf("invalid year in period label %q: %w", label, err)
	}
	return Period{Month: month, Year: year}, nil
}

// SortPeriods sorts periods in place, oldest first.
func SortPeriods(periods []Period) {
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Before(periods[j])
	})
}
