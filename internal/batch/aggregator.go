// Package batch runs the consolidation pipeline: it reads and normalizes every
// source, resolves departments once over all rows and aggregates quantities
// into the canonical dataset.
package batch

import (
	"cmp"
	"slices"
	"strings"

	"fjacquet/sales-consolidator/internal/logging"
	"fjacquet/sales-consolidator/internal/models"
	"fjacquet/sales-consolidator/internal/parsererror"

	"github.com/shopspring/decimal"
)

type groupKey struct {
	identity   models.ProductIdentity
	department string
	period     models.Period
	branch     string
}

// Aggregator sums quantities per (identity, department, period, branch).
type Aggregator struct {
	logger logging.Logger
}

// NewAggregator creates a new Aggregator instance
func NewAggregator(logger logging.Logger) *Aggregator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Aggregator{logger: logger}
}

// Aggregate groups rows whose departments are already resolved and sums their
// quantities. Each sum is rounded half away from zero only after the whole
// group is summed. An empty input returns parsererror.ErrNoValidData.
func (a *Aggregator) Aggregate(rows []models.NormalizedRow) (*models.ResolvedDataset, error) {
	if len(rows) == 0 {
		return nil, parsererror.ErrNoValidData
	}

	sums := make(map[groupKey]decimal.Decimal)
	var keys []groupKey
	for _, r := range rows {
		k := groupKey{identity: r.ProductIdentity, department: r.Department, period: r.Period, branch: r.Branch}
		sum, ok := sums[k]
		if !ok {
			keys = append(keys, k)
		}
		sums[k] = sum.Add(r.Quantity)
	}

	out := make([]models.ResolvedRow, 0, len(keys))
	for _, k := range keys {
		out = append(out, models.ResolvedRow{
			ProductIdentity: k.identity,
			Department:      k.department,
			Period:          k.period,
			Branch:          k.branch,
			Quantity:        RoundQuantity(sums[k]),
		})
	}
	sortResolved(out)

	a.logger.Debug("Aggregated rows",
		logging.Field{Key: "input_rows", Value: len(rows)},
		logging.Field{Key: logging.FieldCount, Value: len(out)})

	return &models.ResolvedDataset{Rows: out}, nil
}

// RoundQuantity rounds half away from zero: 2.5 → 3, -2.5 → -3, 2.4 → 2.
func RoundQuantity(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

func sortResolved(rows []models.ResolvedRow) {
	slices.SortStableFunc(rows, func(a, b models.ResolvedRow) int {
		if c := a.ProductIdentity.Compare(b.ProductIdentity); c != 0 {
			return c
		}
		if a.Period != b.Period {
			if a.Period.Before(b.Period) {
				return -1
			}
			return 1
		}
		if c := strings.Compare(a.Branch, b.Branch); c != 0 {
			return c
		}
		return cmp.Compare(a.Department, b.Department)
	})
}
