package models

// SpecialFilter narrows the Special Categories view. An empty Departments list
// applies no department restriction; an empty Brands list applies no brand
// restriction.
type SpecialFilter struct {
	Departments []string `yaml:"departments"`
	Brands      []string `yaml:"brands"`
}

// ReportSpec selects and shapes the report views.
type ReportSpec struct {
	// ColumnOrder moves the named Consolidated columns to the front, in order.
	ColumnOrder []string

	Ranking   bool
	ByBranch  bool
	Matrix    bool
	Evolution bool
	Special   bool

	// SpecialFilter, when nil, restricts Special Categories to
	// DefaultSpecialDepartments.
	SpecialFilter             *SpecialFilter
	DefaultSpecialDepartments []string

	// UnassignedBranch labels rows whose source carried no branch.
	UnassignedBranch string
}

// DefaultSpecialDepartments returns the built-in special department list.
func DefaultSpecialDepartments() []string {
	return []string{"ELECTRO", "ELECTRODOMESTICOS", "FERRETERIA", "RODADOS"}
}

// DefaultUnassignedBranch labels branch-less rows unless configured otherwise.
const DefaultUnassignedBranch = "SIN SUCURSAL"

// DefaultReportSpec enables every view with the built-in special list.
func DefaultReportSpec() ReportSpec {
	return ReportSpec{
		Ranking:                   true,
		ByBranch:                  true,
		Matrix:                    true,
		Evolution:                 true,
		Special:                   true,
		DefaultSpecialDepartments: DefaultSpecialDepartments(),
		UnassignedBranch:          DefaultUnassignedBranch,
	}
}
