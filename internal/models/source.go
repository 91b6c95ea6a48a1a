package models

// SourceDescriptor locates one monthly export and the period/branch it covers.
// Branch is empty when the export is not tied to a branch.
type SourceDescriptor struct {
	Path   string `validate:"required" yaml:"path"`
	Month  string `validate:"required,oneof=ENERO FEBRERO MARZO ABRIL MAYO JUNIO JULIO AGOSTO SEPTIEMBRE OCTUBRE NOVIEMBRE DICIEMBRE" yaml:"month"`
	Year   int    `validate:"gte=1900,lte=9999" yaml:"year"`
	Branch string `yaml:"branch,omitempty"`
}

// Period returns the descriptor's reporting period. The month index is zero
// when Month is not a canonical name.
func (d SourceDescriptor) Period() Period {
	m, _ := MonthFromName(d.Month)
	return Period{Month: m, Year: d.Year}
}

// PeriodLabel returns "<MONTH> <YEAR>".
func (d SourceDescriptor) PeriodLabel() string {
	return d.Period().Label()
}

// SourceTable is one already-loaded tabular source: a header row and data rows
// as raw cell text.
type SourceTable struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// Source pairs a loaded table with its descriptor.
type Source struct {
	Descriptor SourceDescriptor
	Table      *SourceTable
}
