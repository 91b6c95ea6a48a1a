// Package resolver picks one authoritative department per product identity
// when monthly sources disagree.
package resolver

import (
	"fjacquet/sales-consolidator/internal/logging"
	"fjacquet/sales-consolidator/internal/models"
)

// Result holds the rewritten rows and the identity → department lookup they
// were rewritten with.
type Result struct {
	Rows        []models.NormalizedRow
	Departments map[models.ProductIdentity]string
	// Corrected counts identities seen under more than one department.
	Corrected int
}

// Resolver applies a priority table. It holds no mutable state, so one
// Resolver can serve concurrent runs.
type Resolver struct {
	priorities models.PriorityTable
	logger     logging.Logger
}

// New creates a Resolver. A nil table falls back to the built-in priorities.
func New(priorities models.PriorityTable, logger logging.Logger) *Resolver {
	if priorities == nil {
		priorities = models.DefaultPriorities()
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Resolver{priorities: priorities, logger: logger}
}

// Priorities returns the table in use.
func (r *Resolver) Priorities() models.PriorityTable {
	return r.priorities
}

type choice struct {
	priority   int
	department string
	conflict   bool
}

// Resolve selects, for each identity, the department of its highest priority
// row. Only a strictly greater priority replaces the current choice, so the
// earliest row wins ties. The input is not modified; the returned rows are
// copies carrying the resolved department.
func (r *Resolver) Resolve(rows []models.NormalizedRow) Result {
	best := make(map[models.ProductIdentity]*choice)
	for _, row := range rows {
		p := r.priorities.Get(row.Department)
		c, ok := best[row.ProductIdentity]
		if !ok {
			best[row.ProductIdentity] = &choice{priority: p, department: row.Department}
			continue
		}
		if row.Department != c.department {
			c.conflict = true
		}
		if p > c.priority {
			c.priority = p
			c.department = row.Department
		}
	}

	departments := make(map[models.ProductIdentity]string, len(best))
	corrected := 0
	for id, c := range best {
		departments[id] = c.department
		if c.conflict {
			corrected++
		}
	}

	out := make([]models.NormalizedRow, len(rows))
	for i, row := range rows {
		resolved := departments[row.ProductIdentity]
		if resolved != row.Department {
			r.logger.Debug("Department corrected",
				logging.Field{Key: logging.FieldProduct, Value: row.ProductID},
				logging.Field{Key: "from", Value: row.Department},
				logging.Field{Key: logging.FieldDepartment, Value: resolved})
		}
		row.Department = resolved
		out[i] = row
	}

	return Result{Rows: out, Departments: departments, Corrected: corrected}
}
