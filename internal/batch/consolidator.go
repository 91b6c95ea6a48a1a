package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fjacquet/sales-consolidator/internal/fileutils"
	"fjacquet/sales-consolidator/internal/logging"
	"fjacquet/sales-consolidator/internal/models"
	"fjacquet/sales-consolidator/internal/normalizer"
	"fjacquet/sales-consolidator/internal/parser"
	"fjacquet/sales-consolidator/internal/parsererror"
	"fjacquet/sales-consolidator/internal/resolver"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ReaderFactory hands out the reader for a source file.
type ReaderFactory interface {
	ReaderFor(path string) (parser.FullReader, error)
}

// SkippedSource records a source excluded from a run.
type SkippedSource struct {
	Path   string
	Reason string
}

// Summary describes one consolidation run.
type Summary struct {
	RunID               string
	SourcesRead         int
	Skipped             []SkippedSource
	NormalizedRows      int
	ResolvedRows        int
	CorrectedIdentities int
	TotalQuantity       int64
	Duration            time.Duration
}

// Result is the output of a successful run.
type Result struct {
	Dataset *models.ResolvedDataset
	Summary Summary
}

// Consolidator wires the pipeline stages together. Configuration is held by
// value in its collaborators, so independent Consolidators can run
// concurrently with different priority tables.
type Consolidator struct {
	readers    ReaderFactory
	normalizer *normalizer.Normalizer
	resolver   *resolver.Resolver
	aggregator *Aggregator
	validate   *validator.Validate
	workers    int
	logger     logging.Logger
}

// NewConsolidator creates a Consolidator. workers bounds how many sources
// are read at once; values below 1 mean 1.
func NewConsolidator(readers ReaderFactory, n *normalizer.Normalizer, r *resolver.Resolver, workers int, logger logging.Logger) *Consolidator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if workers < 1 {
		workers = 1
	}
	return &Consolidator{
		readers:    readers,
		normalizer: n,
		resolver:   r,
		aggregator: NewAggregator(logger),
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		workers:    workers,
		logger:     logger,
	}
}

type loadResult struct {
	rows []models.NormalizedRow
	err  error
}

// ConsolidateFiles reads every described file and consolidates them. Sources
// that are invalid, missing, unreadable or lack required columns are skipped
// and reported in the summary. When nothing usable remains the error is
// parsererror.ErrNoValidData.
func (c *Consolidator) ConsolidateFiles(ctx context.Context, descriptors []models.SourceDescriptor) (*Result, error) {
	paths := make([]string, len(descriptors))
	for i, d := range descriptors {
		paths[i] = d.Path
	}
	return c.run(ctx, paths, func(i int) ([]models.NormalizedRow, error) {
		d := descriptors[i]
		if err := c.ValidateDescriptor(d); err != nil {
			return nil, err
		}
		if !fileutils.FileExists(d.Path) {
			return nil, &parsererror.SourceError{Path: d.Path, Reason: "file not found"}
		}
		reader, err := c.readers.ReaderFor(d.Path)
		if err != nil {
			return nil, &parsererror.SourceError{Path: d.Path, Reason: "unsupported file", Err: err}
		}
		table, err := reader.Read(d.Path)
		if err != nil {
			return nil, &parsererror.SourceError{Path: d.Path, Reason: "unreadable", Err: err}
		}
		return c.normalizer.Normalize(models.Source{Descriptor: d, Table: table})
	})
}

// Consolidate runs the pipeline over tables that are already loaded.
func (c *Consolidator) Consolidate(ctx context.Context, sources []models.Source) (*Result, error) {
	paths := make([]string, len(sources))
	for i, s := range sources {
		paths[i] = s.Descriptor.Path
	}
	return c.run(ctx, paths, func(i int) ([]models.NormalizedRow, error) {
		if err := c.ValidateDescriptor(sources[i].Descriptor); err != nil {
			return nil, err
		}
		return c.normalizer.Normalize(sources[i])
	})
}

// ValidateDescriptor checks a descriptor's month, year and path. Failures are
// skippable source errors.
func (c *Consolidator) ValidateDescriptor(d models.SourceDescriptor) error {
	if err := c.validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		reason := err.Error()
		if errors.As(err, &verrs) && len(verrs) > 0 {
			reason = fmt.Sprintf("field %s failed '%s'", verrs[0].Field(), verrs[0].Tag())
		}
		return &parsererror.SourceError{
			Path:   d.Path,
			Reason: "invalid descriptor",
			Err:    &parsererror.ValidationError{Subject: "source descriptor", Reason: reason},
		}
	}
	return nil
}

// run loads the sources in parallel and joins them in input order before
// resolution, so the result does not depend on scheduling.
func (c *Consolidator) run(ctx context.Context, paths []string, load func(i int) ([]models.NormalizedRow, error)) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := c.logger.WithField(logging.FieldRunID, runID)

	logger.Info("Starting consolidation", logging.Field{Key: "sources", Value: len(paths)})

	results := make([]loadResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i := range paths {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rows, err := load(i)
			results[i] = loadResult{rows: rows, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("consolidation cancelled: %w", err)
	}

	summary := Summary{RunID: runID}
	var all []models.NormalizedRow
	for i, res := range results {
		if res.err != nil {
			reason := res.err.Error()
			var se *parsererror.SourceError
			if errors.As(res.err, &se) {
				reason = se.Reason
				if se.Err != nil {
					reason = fmt.Sprintf("%s: %v", se.Reason, se.Err)
				}
			}
			logger.Warn("Skipping source",
				logging.Field{Key: logging.FieldFile, Value: paths[i]},
				logging.Field{Key: logging.FieldReason, Value: reason})
			summary.Skipped = append(summary.Skipped, SkippedSource{Path: paths[i], Reason: reason})
			continue
		}
		summary.SourcesRead++
		all = append(all, res.rows...)
	}
	summary.NormalizedRows = len(all)

	if len(all) == 0 {
		logger.Error("No usable data in any source",
			logging.Field{Key: "skipped", Value: len(summary.Skipped)})
		return nil, parsererror.ErrNoValidData
	}

	resolved := c.resolver.Resolve(all)
	dataset, err := c.aggregator.Aggregate(resolved.Rows)
	if err != nil {
		return nil, err
	}

	summary.ResolvedRows = len(dataset.Rows)
	summary.CorrectedIdentities = resolved.Corrected
	summary.TotalQuantity = dataset.TotalQuantity()
	summary.Duration = time.Since(start)

	logger.Info("Consolidation complete",
		logging.Field{Key: "sources_read", Value: summary.SourcesRead},
		logging.Field{Key: "sources_skipped", Value: len(summary.Skipped)},
		logging.Field{Key: "rows", Value: summary.NormalizedRows},
		logging.Field{Key: logging.FieldCount, Value: summary.ResolvedRows},
		logging.Field{Key: "corrected_identities", Value: summary.CorrectedIdentities},
		logging.Field{Key: logging.FieldDuration, Value: summary.Duration.Milliseconds()})

	return &Result{Dataset: dataset, Summary: summary}, nil
}
