package report

import (
	"slices"
	"strings"

	"fjacquet/sales-consolidator/internal/models"
)

// dataView is a read-only projection of the dataset shared by all views.
// Branch-less rows carry the unassigned label.
type dataView struct {
	rows     []models.ResolvedRow
	periods  []models.Period
	branches []string
}

func newDataView(ds *models.ResolvedDataset, unassigned string) *dataView {
	if unassigned == "" {
		unassigned = models.DefaultUnassignedBranch
	}
	rows := make([]models.ResolvedRow, len(ds.Rows))
	for i, r := range ds.Rows {
		if strings.TrimSpace(r.Branch) == "" {
			r.Branch = unassigned
		}
		rows[i] = r
	}
	return &dataView{rows: rows, periods: periodsOf(rows), branches: branchesOf(rows)}
}

// subset returns a view over the rows accepted by keep, with its own periods
// and branches.
func (d *dataView) subset(keep func(models.ResolvedRow) bool) *dataView {
	var rows []models.ResolvedRow
	for _, r := range d.rows {
		if keep(r) {
			rows = append(rows, r)
		}
	}
	return &dataView{rows: rows, periods: periodsOf(rows), branches: branchesOf(rows)}
}

func periodsOf(rows []models.ResolvedRow) []models.Period {
	seen := make(map[models.Period]bool)
	var periods []models.Period
	for _, r := range rows {
		if !seen[r.Period] {
			seen[r.Period] = true
			periods = append(periods, r.Period)
		}
	}
	models.SortPeriods(periods)
	return periods
}

func branchesOf(rows []models.ResolvedRow) []string {
	seen := make(map[string]bool)
	var branches []string
	for _, r := range rows {
		if !seen[r.Branch] {
			seen[r.Branch] = true
			branches = append(branches, r.Branch)
		}
	}
	slices.Sort(branches)
	return branches
}

func departmentsOf(rows []models.ResolvedRow) []string {
	seen := make(map[string]bool)
	var depts []string
	for _, r := range rows {
		if !seen[r.Department] {
			seen[r.Department] = true
			depts = append(depts, r.Department)
		}
	}
	slices.Sort(depts)
	return depts
}

func periodLabels(periods []models.Period) []string {
	labels := make([]string, len(periods))
	for i, p := range periods {
		labels[i] = p.Label()
	}
	return labels
}
