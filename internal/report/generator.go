// Package report derives the pivoted report views from a consolidated
// dataset. Every view is computed independently and none modifies the dataset.
package report

import (
	"context"
	"fmt"
	"time"

	"fjacquet/sales-consolidator/internal/logging"
	"fjacquet/sales-consolidator/internal/models"
	"fjacquet/sales-consolidator/internal/parsererror"

	"golang.org/x/sync/errgroup"
)

// Generator builds the report bundle.
type Generator struct {
	logger  logging.Logger
	workers int
}

// NewGenerator creates a Generator computing up to workers views at once.
func NewGenerator(logger logging.Logger, workers int) *Generator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if workers < 1 {
		workers = 1
	}
	return &Generator{logger: logger, workers: workers}
}

type view struct {
	name    string
	enabled bool
	build   func(*dataView, models.ReportSpec) *models.Table
}

// Generate returns the Consolidated view followed by every enabled optional
// view, in a fixed order. Special Categories is left out when its filter
// matches nothing. Either every view is built or an error is returned.
func (g *Generator) Generate(ctx context.Context, ds *models.ResolvedDataset, spec models.ReportSpec) (*models.Bundle, error) {
	if ds == nil || len(ds.Rows) == 0 {
		return nil, parsererror.ErrNoValidData
	}
	start := time.Now()
	data := newDataView(ds, spec.UnassignedBranch)

	views := []view{
		{name: models.SheetConsolidated, enabled: true, build: buildConsolidated},
		{name: models.SheetRanking, enabled: spec.Ranking, build: buildRanking},
		{name: models.SheetByBranch, enabled: spec.ByBranch, build: buildByBranch},
		{name: models.SheetMatrix, enabled: spec.Matrix, build: buildMatrix},
		{name: models.SheetEvolution, enabled: spec.Evolution, build: buildEvolution},
		{name: models.SheetSpecial, enabled: spec.Special, build: buildSpecial},
	}

	tables := make([]*models.Table, len(views))
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for i, v := range views {
		i, v := i, v
		if !v.enabled {
			continue
		}
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tables[i] = v.build(data, spec)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("report generation cancelled: %w", err)
	}

	bundle := &models.Bundle{}
	for i, t := range tables {
		if t == nil {
			if views[i].enabled {
				g.logger.Info("View has no rows, not emitted",
					logging.Field{Key: logging.FieldReport, Value: views[i].name})
			}
			continue
		}
		bundle.Tables = append(bundle.Tables, t)
		g.logger.Debug("Built view",
			logging.Field{Key: logging.FieldReport, Value: t.Name},
			logging.Field{Key: logging.FieldCount, Value: len(t.Rows)})
	}

	g.logger.Info("Report views generated",
		logging.Field{Key: logging.FieldCount, Value: len(bundle.Tables)},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})

	return bundle, nil
}
