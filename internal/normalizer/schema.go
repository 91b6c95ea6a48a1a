// Package normalizer turns loaded source tables into canonical rows tagged
// with their period and branch.
package normalizer

import (
	"fmt"
	"strings"

	"fjacquet/sales-consolidator/internal/textutils"
)

// Schema names the source columns. Header matching ignores case, accents and
// surrounding whitespace.
type Schema struct {
	ProductID   string
	Quantity    string
	Brand       string
	Description string
	Department  string
	SubFamily   string
	Family      string
}

// DefaultSchema returns the column names used by the point-of-sale exports.
func DefaultSchema() Schema {
	return Schema{
		ProductID:   "IdArticulo",
		Quantity:    "Cantidad",
		Brand:       "Marca",
		Description: "Descripcion",
		Department:  "Departamento",
		SubFamily:   "SubFamilia",
		Family:      "Familia",
	}
}

// DefaultAliases returns the department rewrites applied before resolution.
func DefaultAliases() map[string]string {
	return map[string]string{
		"ACEITES":          "ALMACEN",
		"HIGIENE PERSONAL": "LIMPIEZA Y CUIDADO",
	}
}

// Layout is the column position of every schema field in one header row.
// Optional fields that are absent hold -1.
type Layout struct {
	ProductID   int
	Quantity    int
	Brand       int
	Description int
	Department  int
	SubFamily   int
	Family      int
}

// MissingColumnsError lists required columns absent from a header.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

// Resolve locates the schema columns in headers. The first matching header
// wins when a name repeats.
func (s Schema) Resolve(headers []string) (Layout, error) {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		key := textutils.Fold(h)
		if _, dup := index[key]; !dup && key != "" {
			index[key] = i
		}
	}
	find := func(name string) int {
		if i, ok := index[textutils.Fold(name)]; ok && name != "" {
			return i
		}
		return -1
	}

	layout := Layout{
		ProductID:   find(s.ProductID),
		Quantity:    find(s.Quantity),
		Brand:       find(s.Brand),
		Description: find(s.Description),
		Department:  find(s.Department),
		SubFamily:   find(s.SubFamily),
		Family:      find(s.Family),
	}

	var missing []string
	if layout.ProductID < 0 {
		missing = append(missing, s.ProductID)
	}
	if layout.Quantity < 0 {
		missing = append(missing, s.Quantity)
	}
	if len(missing) > 0 {
		return layout, &MissingColumnsError{Columns: missing}
	}
	return layout, nil
}
