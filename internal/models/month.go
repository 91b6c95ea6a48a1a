package models

import "strings"

// Month is a calendar month index, 1 (ENERO) through 12 (DICIEMBRE).
type Month int

// MonthNames holds the canonical upper-case Spanish month names in calendar order.
var MonthNames = [12]string{
	"ENERO", "FEBRERO", "MARZO", "ABRIL", "MAYO", "JUNIO",
	"JULIO", "AGOSTO", "SEPTIEMBRE", "OCTUBRE", "NOVIEMBRE", "DICIEMBRE",
}

// String returns the canonical name, or "" for an invalid month.
func (m Month) String() string {
	if !m.Valid() {
		return ""
	}
	return MonthNames[m-1]
}

// Valid reports whether m is within 1..12.
func (m Month) Valid() bool {
	return m >= 1 && m <= 12
}

// MonthFromName maps an exact canonical name (case-insensitive, trimmed) to its Month.
func MonthFromName(name string) (Month, bool) {
	up := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range MonthNames {
		if n == up {
			return Month(i + 1), true
		}
	}
	return 0, false
}
