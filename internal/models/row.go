package models

import (
	"cmp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ProductIdentity is the department-free key that recognizes the same product
// across sources.
type ProductIdentity struct {
	ProductID   string
	Brand       string
	Description string
	SubFamily   string
	Family      string
}

// NormalizedRow is one source row in canonical shape, tagged with its period
// and branch.
type NormalizedRow struct {
	ProductIdentity
	Department string
	Quantity   decimal.Decimal
	Period     Period
	Branch     string
}

// PeriodLabel returns the row's "<MONTH> <YEAR>" label.
func (r NormalizedRow) PeriodLabel() string {
	return r.Period.Label()
}

// ResolvedRow is one aggregated row of the consolidated dataset.
type ResolvedRow struct {
	ProductIdentity
	Department string
	Period     Period
	Branch     string
	Quantity   int64
}

// PeriodLabel returns the row's "<MONTH> <YEAR>" label.
func (r ResolvedRow) PeriodLabel() string {
	return r.Period.Label()
}

// ResolvedDataset is the deduplicated, quantity-summed output of aggregation.
// It is read-only once built.
type ResolvedDataset struct {
	Rows []ResolvedRow
}

// Periods returns the distinct periods present, oldest first.
func (d *ResolvedDataset) Periods() []Period {
	seen := make(map[Period]bool)
	var periods []Period
	for _, r := range d.Rows {
		if !seen[r.Period] {
			seen[r.Period] = true
			periods = append(periods, r.Period)
		}
	}
	SortPeriods(periods)
	return periods
}

// TotalQuantity sums every row.
func (d *ResolvedDataset) TotalQuantity() int64 {
	var total int64
	for _, r := range d.Rows {
		total += r.Quantity
	}
	return total
}

// CompareProductIDs orders product ids numerically when both are integers and
// lexically otherwise; integers sort before non-integers.
func CompareProductIDs(a, b string) int {
	ai, aerr := strconv.ParseInt(a, 10, 64)
	bi, berr := strconv.ParseInt(b, 10, 64)
	switch {
	case aerr == nil && berr == nil:
		return cmp.Compare(ai, bi)
	case aerr == nil:
		return -1
	case berr == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// Compare orders identities by product id, then by the descriptive fields.
func (p ProductIdentity) Compare(other ProductIdentity) int {
	if c := CompareProductIDs(p.ProductID, other.ProductID); c != 0 {
		return c
	}
	if c := strings.Compare(p.Brand, other.Brand); c != 0 {
		return c
	}
	if c := strings.Compare(p.Description, other.Description); c != 0 {
		return c
	}
	if c := strings.Compare(p.SubFamily, other.SubFamily); c != 0 {
		return c
	}
	return strings.Compare(p.Family, other.Family)
}
