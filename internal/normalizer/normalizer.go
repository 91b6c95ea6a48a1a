package normalizer

import (
	"strings"

	"fjacquet/sales-consolidator/internal/logging"
	"fjacquet/sales-consolidator/internal/models"
	"fjacquet/sales-consolidator/internal/parsererror"
	"fjacquet/sales-consolidator/internal/textutils"

	"github.com/shopspring/decimal"
)

// Normalizer converts source tables into NormalizedRows. It is safe for
// concurrent use once constructed.
type Normalizer struct {
	schema  Schema
	aliases map[string]string
	logger  logging.Logger
}

// New creates a Normalizer. Alias keys and values are upper-cased; a nil
// aliases map applies no rewrites.
func New(schema Schema, aliases map[string]string, logger logging.Logger) *Normalizer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	folded := make(map[string]string, len(aliases))
	for from, to := range aliases {
		folded[textutils.Fold(from)] = normalizeDepartment(to)
	}
	return &Normalizer{schema: schema, aliases: folded, logger: logger}
}

// Schema returns the configured column names.
func (n *Normalizer) Schema() Schema {
	return n.schema
}

// Department upper-cases a raw department and applies the alias rewrites.
func (n *Normalizer) Department(raw string) string {
	dept := normalizeDepartment(raw)
	if alias, ok := n.aliases[textutils.Fold(dept)]; ok {
		return alias
	}
	return dept
}

// Normalize produces one row per data row of src. A table lacking the
// product-id or quantity column yields a *parsererror.SourceError. Rows with
// a blank product id are dropped.
func (n *Normalizer) Normalize(src models.Source) ([]models.NormalizedRow, error) {
	path := src.Descriptor.Path
	if src.Table == nil {
		return nil, &parsererror.SourceError{Path: path, Reason: "no table loaded"}
	}

	layout, err := n.schema.Resolve(src.Table.Headers)
	if err != nil {
		return nil, &parsererror.SourceError{Path: path, Reason: "unusable header", Err: err}
	}

	period := src.Descriptor.Period()
	branch := strings.ToUpper(strings.TrimSpace(src.Descriptor.Branch))

	rows := make([]models.NormalizedRow, 0, len(src.Table.Rows))
	dropped := 0
	for i, rec := range src.Table.Rows {
		id := cell(rec, layout.ProductID)
		if id == "" {
			dropped++
			continue
		}

		rawQty := cell(rec, layout.Quantity)
		qty, err := ParseQuantity(rawQty)
		if err != nil {
			n.logger.WithError(&parsererror.ParseError{
				Parser: "normalizer",
				Field:  n.schema.Quantity,
				Value:  rawQty,
				Err:    err,
			}).Debug("Non-numeric quantity counted as zero",
				logging.Field{Key: logging.FieldFile, Value: path},
				logging.Field{Key: "row", Value: i + 2})
		}

		rows = append(rows, models.NormalizedRow{
			ProductIdentity: models.ProductIdentity{
				ProductID:   id,
				Brand:       cell(rec, layout.Brand),
				Description: cell(rec, layout.Description),
				SubFamily:   cell(rec, layout.SubFamily),
				Family:      cell(rec, layout.Family),
			},
			Department: n.Department(cell(rec, layout.Department)),
			Quantity:   qty,
			Period:     period,
			Branch:     branch,
		})
	}

	n.logger.Debug("Normalized source",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldPeriod, Value: period.Label()},
		logging.Field{Key: logging.FieldBranch, Value: branch},
		logging.Field{Key: logging.FieldCount, Value: len(rows)},
		logging.Field{Key: "dropped", Value: dropped})

	return rows, nil
}

// ParseQuantity reads a quantity cell. Blank cells are zero. A lone comma is
// taken as the decimal separator; when both separators appear the last one
// is. On error the returned quantity is zero.
func ParseQuantity(raw string) (decimal.Decimal, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	if s == "" {
		return decimal.Zero, nil
	}

	comma := strings.LastIndex(s, ",")
	dot := strings.LastIndex(s, ".")
	switch {
	case comma >= 0 && dot < 0:
		s = strings.ReplaceAll(s, ",", ".")
	case comma > dot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case dot > comma && comma >= 0:
		s = strings.ReplaceAll(s, ",", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

func normalizeDepartment(raw string) string {
	return textutils.CollapseSpaces(strings.ToUpper(raw))
}

func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}
