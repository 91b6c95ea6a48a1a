package report

import (
	"cmp"
	"slices"

	"fjacquet/sales-consolidator/internal/models"
	"fjacquet/sales-consolidator/internal/textutils"
)

func buildRanking(d *dataView, _ models.ReportSpec) *models.Table {
	type entry struct {
		identity   models.ProductIdentity
		department string
		total      int64
	}
	byID := make(map[models.ProductIdentity]*entry)
	var entries []*entry
	for _, r := range d.rows {
		e, ok := byID[r.ProductIdentity]
		if !ok {
			e = &entry{identity: r.ProductIdentity, department: r.Department}
			byID[r.ProductIdentity] = e
			entries = append(entries, e)
		}
		e.total += r.Quantity
	}
	slices.SortStableFunc(entries, func(a, b *entry) int {
		if c := cmp.Compare(b.total, a.total); c != 0 {
			return c
		}
		return a.identity.Compare(b.identity)
	})

	columns := append(append([]string(nil), models.IdentityColumns...), models.ColumnTotalSold)
	t := models.NewTable(models.SheetRanking, columns)
	for _, e := range entries {
		t.AddRow(e.identity.ProductID, e.identity.Brand, e.identity.Description,
			e.department, e.identity.SubFamily, e.identity.Family, e.total)
	}
	return t
}

func buildByBranch(d *dataView, _ models.ReportSpec) *models.Table {
	sums := make(map[cellKey]int64)
	for _, r := range d.rows {
		sums[cellKey{period: r.Period, branch: r.Branch}] += r.Quantity
	}

	columns := append([]string{models.ColumnBranch}, periodLabels(d.periods)...)
	columns = append(columns, models.ColumnTotal)
	t := models.NewTable(models.SheetByBranch, columns)
	for _, b := range d.branches {
		row := []interface{}{b}
		var total int64
		for _, p := range d.periods {
			v := sums[cellKey{period: p, branch: b}]
			row = append(row, v)
			total += v
		}
		t.AddRow(append(row, total)...)
	}
	return t
}

func buildMatrix(d *dataView, _ models.ReportSpec) *models.Table {
	type deptKey struct{ department, branch string }
	sums := make(map[deptKey]int64)
	totals := make(map[string]int64)
	for _, r := range d.rows {
		sums[deptKey{r.Department, r.Branch}] += r.Quantity
		totals[r.Department] += r.Quantity
	}

	depts := departmentsOf(d.rows)
	slices.SortStableFunc(depts, func(a, b string) int {
		return cmp.Compare(totals[b], totals[a])
	})

	columns := append([]string{models.ColumnDepartment}, d.branches...)
	columns = append(columns, models.ColumnTotal)
	t := models.NewTable(models.SheetMatrix, columns)
	for _, dept := range depts {
		row := []interface{}{dept}
		for _, b := range d.branches {
			row = append(row, sums[deptKey{dept, b}])
		}
		t.AddRow(append(row, totals[dept])...)
	}
	return t
}

func buildEvolution(d *dataView, _ models.ReportSpec) *models.Table {
	type deptKey struct {
		department string
		period     models.Period
	}
	sums := make(map[deptKey]int64)
	for _, r := range d.rows {
		sums[deptKey{r.Department, r.Period}] += r.Quantity
	}

	columns := append([]string{models.ColumnDepartment}, periodLabels(d.periods)...)
	t := models.NewTable(models.SheetEvolution, columns)
	for _, dept := range departmentsOf(d.rows) {
		row := []interface{}{dept}
		for _, p := range d.periods {
			row = append(row, sums[deptKey{dept, p}])
		}
		t.AddRow(row...)
	}
	return t
}

// buildSpecial returns nil when the filter matches no row.
func buildSpecial(d *dataView, spec models.ReportSpec) *models.Table {
	departments, brands := specialFilter(spec)
	sub := d.subset(func(r models.ResolvedRow) bool {
		if len(departments) > 0 && !departments[textutils.Fold(r.Department)] {
			return false
		}
		if len(brands) > 0 && !brands[textutils.Fold(r.Brand)] {
			return false
		}
		return true
	})
	if len(sub.rows) == 0 {
		return nil
	}
	return productMatrix(models.SheetSpecial, sub)
}

// specialFilter returns the department and brand allow-lists. Without a
// filter the default special departments apply. An empty list does not
// restrict.
func specialFilter(spec models.ReportSpec) (departments, brands map[string]bool) {
	deptList := spec.DefaultSpecialDepartments
	var brandList []string
	if spec.SpecialFilter != nil {
		deptList = spec.SpecialFilter.Departments
		brandList = spec.SpecialFilter.Brands
	} else if len(deptList) == 0 {
		deptList = models.DefaultSpecialDepartments()
	}
	return foldSet(deptList), foldSet(brandList)
}

func foldSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		if f := textutils.Fold(v); f != "" {
			set[f] = true
		}
	}
	return set
}
