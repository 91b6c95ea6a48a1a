package models

import "strconv"

// Fixed view names.
const (
	SheetConsolidated = "Consolidated"
	SheetRanking      = "Ranking of Sales"
	SheetByBranch     = "By Branch"
	SheetMatrix       = "Matrix"
	SheetEvolution    = "Monthly Evolution"
	SheetSpecial      = "Special Categories"
)

// Column headers used by the views.
const (
	ColumnProductID   = "IdArticulo"
	ColumnBrand       = "Marca"
	ColumnDescription = "Descripcion"
	ColumnDepartment  = "Departamento"
	ColumnSubFamily   = "SubFamilia"
	ColumnFamily      = "Familia"

	ColumnBranch            = "Sucursal"
	ColumnTotalSold         = "Total Sold"
	ColumnTotal             = "TOTAL"
	ColumnTotalPrefix       = "TOTAL "
	ColumnTotalConsolidated = "TOTAL CONSOLIDATED"
)

// IdentityColumns are the leading columns of the product matrices.
var IdentityColumns = []string{
	ColumnProductID, ColumnBrand, ColumnDescription, ColumnDepartment, ColumnSubFamily, ColumnFamily,
}

// Table is a named, ordered grid. Cells hold either string or int64.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]interface{}
}

// NewTable creates an empty table with the given columns.
func NewTable(name string, columns []string) *Table {
	return &Table{Name: name, Columns: columns}
}

// AddRow appends a row; it must have one value per column.
func (t *Table) AddRow(values ...interface{}) {
	t.Rows = append(t.Rows, values)
}

// ColumnIndex returns the position of a column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Value returns the cell at row/column, or nil when the column is unknown.
func (t *Table) Value(row int, column string) interface{} {
	idx := t.ColumnIndex(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return nil
	}
	return t.Rows[row][idx]
}

// Int returns a numeric cell, 0 when the cell is missing or not numeric.
func (t *Table) Int(row int, column string) int64 {
	v, _ := t.Value(row, column).(int64)
	return v
}

// Text returns a string cell, "" when the cell is missing or not text.
func (t *Table) Text(row int, column string) string {
	v, _ := t.Value(row, column).(string)
	return v
}

// Records renders the header and every row as text.
func (t *Table) Records() [][]string {
	records := make([][]string, 0, len(t.Rows)+1)
	records = append(records, append([]string(nil), t.Columns...))
	for _, row := range t.Rows {
		rec := make([]string, len(row))
		for i, v := range row {
			switch val := v.(type) {
			case string:
				rec[i] = val
			case int64:
				rec[i] = strconv.FormatInt(val, 10)
			case nil:
				rec[i] = ""
			}
		}
		records = append(records, rec)
	}
	return records
}

// Bundle is the ordered set of views produced by one run.
type Bundle struct {
	Tables []*Table
}

// Get returns the named view.
func (b *Bundle) Get(name string) (*Table, bool) {
	for _, t := range b.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Names returns the view names in output order.
func (b *Bundle) Names() []string {
	names := make([]string, len(b.Tables))
	for i, t := range b.Tables {
		names[i] = t.Name
	}
	return names
}
