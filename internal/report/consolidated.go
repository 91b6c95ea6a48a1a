package report

import (
	"slices"

	"fjacquet/sales-consolidator/internal/models"
	"fjacquet/sales-consolidator/internal/textutils"
)

type cellKey struct {
	period models.Period
	branch string
}

type productLine struct {
	identity   models.ProductIdentity
	department string
	cells      map[cellKey]int64
}

func buildConsolidated(d *dataView, spec models.ReportSpec) *models.Table {
	t := productMatrix(models.SheetConsolidated, d)
	applyColumnOrder(t, spec.ColumnOrder)
	return t
}

// productMatrix pivots rows into one line per product identity. For each
// period (oldest first) it emits a "<PERIOD>_<BRANCH>" column per branch
// that sold in that period, then the "<PERIOD>" sum; then one
// "TOTAL <BRANCH>" per branch and "TOTAL CONSOLIDATED".
func productMatrix(name string, d *dataView) *models.Table {
	present := make(map[cellKey]bool)
	lines := make(map[models.ProductIdentity]*productLine)
	var order []models.ProductIdentity
	for _, r := range d.rows {
		line, ok := lines[r.ProductIdentity]
		if !ok {
			line = &productLine{identity: r.ProductIdentity, department: r.Department, cells: make(map[cellKey]int64)}
			lines[r.ProductIdentity] = line
			order = append(order, r.ProductIdentity)
		}
		k := cellKey{period: r.Period, branch: r.Branch}
		line.cells[k] += r.Quantity
		present[k] = true
	}
	slices.SortStableFunc(order, func(a, b models.ProductIdentity) int {
		return a.Compare(b)
	})

	columns := append([]string(nil), models.IdentityColumns...)
	for _, p := range d.periods {
		for _, b := range d.branches {
			if present[cellKey{period: p, branch: b}] {
				columns = append(columns, p.Label()+"_"+b)
			}
		}
		columns = append(columns, p.Label())
	}
	for _, b := range d.branches {
		columns = append(columns, models.ColumnTotalPrefix+b)
	}
	columns = append(columns, models.ColumnTotalConsolidated)

	t := models.NewTable(name, columns)
	for _, id := range order {
		line := lines[id]
		row := make([]interface{}, 0, len(columns))
		row = append(row, id.ProductID, id.Brand, id.Description, line.department, id.SubFamily, id.Family)

		branchTotals := make(map[string]int64, len(d.branches))
		for _, p := range d.periods {
			var periodSum int64
			for _, b := range d.branches {
				k := cellKey{period: p, branch: b}
				if !present[k] {
					continue
				}
				v := line.cells[k]
				row = append(row, v)
				periodSum += v
				branchTotals[b] += v
			}
			row = append(row, periodSum)
		}
		var total int64
		for _, b := range d.branches {
			row = append(row, branchTotals[b])
			total += branchTotals[b]
		}
		row = append(row, total)
		t.AddRow(row...)
	}
	return t
}

// applyColumnOrder moves the named columns to the front in the given order.
// Names match case- and accent-insensitively; unknown and repeated names are
// ignored. The remaining columns keep their order.
func applyColumnOrder(t *models.Table, order []string) {
	if len(order) == 0 {
		return
	}
	index := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		index[textutils.Fold(c)] = i
	}

	used := make(map[int]bool, len(t.Columns))
	perm := make([]int, 0, len(t.Columns))
	for _, name := range order {
		if i, ok := index[textutils.Fold(name)]; ok && !used[i] {
			used[i] = true
			perm = append(perm, i)
		}
	}
	for i := range t.Columns {
		if !used[i] {
			perm = append(perm, i)
		}
	}

	columns := make([]string, len(perm))
	for j, i := range perm {
		columns[j] = t.Columns[i]
	}
	for r, row := range t.Rows {
		reordered := make([]interface{}, len(perm))
		for j, i := range perm {
			reordered[j] = row[i]
		}
		t.Rows[r] = reordered
	}
	t.Columns = columns
}
