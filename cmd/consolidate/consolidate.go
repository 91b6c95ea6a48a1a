// Package consolidate runs the whole pipeline from the command line: discover
// or describe the sources, consolidate them, build the report views and write
// the bundle.
package consolidate

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"fjacquet/sales-consolidator/cmd/root"
	"fjacquet/sales-consolidator/internal/batch"
	"fjacquet/sales-consolidator/internal/container"
	"fjacquet/sales-consolidator/internal/exporter"
	"fjacquet/sales-consolidator/internal/fileutils"
	"fjacquet/sales-consolidator/internal/identifier"
	"fjacquet/sales-consolidator/internal/logging"
	"fjacquet/sales-consolidator/internal/models"

	"github.com/spf13/cobra"
)

// Options are the inputs of one consolidate invocation.
type Options struct {
	Inputs    []string
	Output    string
	Format    string
	Recursive bool

	// Month, Year and Branch describe a single explicit file whose name
	// carries no usable period.
	Month  string
	Year   int
	Branch string

	Columns            []string
	SpecialDepartments []string
	SpecialBrands      []string

	NoRanking   bool
	NoByBranch  bool
	NoMatrix    bool
	NoEvolution bool
	NoSpecial   bool
}

// Outcome reports what a run read and wrote.
type Outcome struct {
	Summary     batch.Summary
	Unparseable []string
	Views       []string
	Written     []string
}

var opts Options

// Cmd represents the consolidate command
var Cmd = &cobra.Command{
	Use:   "consolidate [files...]",
	Short: "Consolidate monthly sales exports into one report bundle",
	Long: `Consolidate monthly sales exports into one report bundle.

Sources are given as files or as a directory (-i). Each file name must carry
the month and year it covers, e.g. "3. MARZO 2025 HIPER.xlsx"; the branch is
optional. Files whose name cannot be interpreted, or whose content is
unusable, are skipped and reported.

The output is one workbook with a sheet per view, or with --format csv a
directory holding one CSV per view. Without -o the output is named after the
first and last period covered.

Example:
  sales-consolidator consolidate -i ventas/ -o resumen.xlsx
  sales-consolidator consolidate "3. MARZO 2025 HIPER.xlsx" "4. ABRIL 2025 HIPER.xlsx"
  sales-consolidator consolidate export.csv --month marzo --year 2025 --branch hiper`,
	RunE: consolidateFunc,
}

func init() {
	Cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: xlsx or csv (default from output.format)")
	Cmd.Flags().BoolVarP(&opts.Recursive, "recursive", "r", false, "Search input directories recursively")
	Cmd.Flags().StringVar(&opts.Month, "month", "", "Month covered by a single input file")
	Cmd.Flags().IntVar(&opts.Year, "year", 0, "Year covered by a single input file")
	Cmd.Flags().StringVar(&opts.Branch, "branch", "", "Branch of a single input file")
	Cmd.Flags().StringSliceVar(&opts.Columns, "columns", nil, "Consolidated columns to move to the front, in order")
	Cmd.Flags().StringSliceVar(&opts.SpecialDepartments, "special-department", nil, "Departments kept in Special Categories")
	Cmd.Flags().StringSliceVar(&opts.SpecialBrands, "special-brand", nil, "Brands kept in Special Categories")
	Cmd.Flags().BoolVar(&opts.NoRanking, "no-ranking", false, "Skip the Ranking of Sales view")
	Cmd.Flags().BoolVar(&opts.NoByBranch, "no-by-branch", false, "Skip the By Branch view")
	Cmd.Flags().BoolVar(&opts.NoMatrix, "no-matrix", false, "Skip the Matrix view")
	Cmd.Flags().BoolVar(&opts.NoEvolution, "no-evolution", false, "Skip the Monthly Evolution view")
	Cmd.Flags().BoolVar(&opts.NoSpecial, "no-special", false, "Skip the Special Categories view")
}

func consolidateFunc(cmd *cobra.Command, args []string) error {
	appContainer := root.GetContainer()
	if appContainer == nil {
		return fmt.Errorf("container not initialized")
	}

	o := opts
	o.Inputs = append([]string(nil), args...)
	if root.SharedFlags.Input != "" {
		o.Inputs = append([]string{root.SharedFlags.Input}, o.Inputs...)
	}
	if o.Output == "" {
		o.Output = root.SharedFlags.Output
	}

	outcome, err := Run(cmd.Context(), appContainer, o)
	if err != nil {
		return err
	}

	PrintSummary(cmd.OutOrStdout(), outcome)
	return nil
}

// Run executes one consolidation with the container's components.
func Run(ctx context.Context, c *container.Container, o Options) (*Outcome, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := c.GetLogger()

	format := strings.ToLower(strings.TrimSpace(o.Format))
	if format == "" {
		format = c.GetConfig().Output.Format
	}
	exp, err := c.GetExporter(format)
	if err != nil {
		return nil, err
	}

	descriptors, unparseable, err := Describe(c, o)
	if err != nil {
		return nil, err
	}
	if len(descriptors) == 0 {
		return nil, fmt.Errorf("no input file has a recognizable month and year (%d skipped)", len(unparseable))
	}

	result, err := c.GetConsolidator().ConsolidateFiles(ctx, descriptors)
	if err != nil {
		return nil, err
	}

	bundle, err := c.GetGenerator().Generate(ctx, result.Dataset, ReportSpec(c.GetConfig().ReportSpec(), o))
	if err != nil {
		return nil, err
	}

	path := OutputPath(o.Output, format, result.Dataset.Periods())
	written, err := exp.Export(bundle, path)
	if err != nil {
		return nil, err
	}

	logger.Info("Report bundle written",
		logging.Field{Key: logging.FieldRunID, Value: result.Summary.RunID},
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldFormat, Value: format},
		logging.Field{Key: logging.FieldCount, Value: len(written)})

	return &Outcome{
		Summary:     result.Summary,
		Unparseable: unparseable,
		Views:       bundle.Names(),
		Written:     written,
	}, nil
}

// Describe turns the inputs into source descriptors. Directories are
// discovered in chronological order; files keep the order given.
func Describe(c *container.Container, o Options) ([]models.SourceDescriptor, []string, error) {
	if len(o.Inputs) == 0 {
		return nil, nil, fmt.Errorf("no input given: pass files or --input <directory>")
	}

	if o.Month != "" {
		return describeExplicit(o)
	}

	logger := c.GetLogger()
	ident := c.GetIdentifier()

	var descriptors []models.SourceDescriptor
	var unparseable []string
	for _, in := range o.Inputs {
		if fileutils.DirectoryExists(in) {
			d, u, err := batch.DiscoverSources(ident, in, o.Recursive, logger)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to list %s: %w", in, err)
			}
			descriptors = append(descriptors, d...)
			unparseable = append(unparseable, u...)
			continue
		}
		d, u := batch.DescribeFiles(ident, []string{in}, logger)
		descriptors = append(descriptors, d...)
		unparseable = append(unparseable, u...)
	}
	return descriptors, unparseable, nil
}

func describeExplicit(o Options) ([]models.SourceDescriptor, []string, error) {
	if len(o.Inputs) != 1 || fileutils.DirectoryExists(o.Inputs[0]) {
		return nil, nil, fmt.Errorf("--month applies to exactly one input file")
	}
	month, ok := identifier.NormalizeMonth(o.Month)
	if !ok {
		return nil, nil, fmt.Errorf("unknown month: %s", o.Month)
	}
	if o.Year == 0 {
		return nil, nil, fmt.Errorf("--year is required with --month")
	}
	return []models.SourceDescriptor{{
		Path:   o.Inputs[0],
		Month:  month,
		Year:   o.Year,
		Branch: strings.ToUpper(strings.TrimSpace(o.Branch)),
	}}, nil, nil
}

// ReportSpec applies the command line view selection to the configured one.
func ReportSpec(spec models.ReportSpec, o Options) models.ReportSpec {
	if len(o.Columns) > 0 {
		spec.ColumnOrder = o.Columns
	}
	if len(o.SpecialDepartments) > 0 || len(o.SpecialBrands) > 0 {
		spec.SpecialFilter = &models.SpecialFilter{
			Departments: o.SpecialDepartments,
			Brands:      o.SpecialBrands,
		}
	}
	spec.Ranking = spec.Ranking && !o.NoRanking
	spec.ByBranch = spec.ByBranch && !o.NoByBranch
	spec.Matrix = spec.Matrix && !o.NoMatrix
	spec.Evolution = spec.Evolution && !o.NoEvolution
	spec.Special = spec.Special && !o.NoSpecial
	return spec
}

// OutputPath picks where the bundle goes. Without an explicit output the
// name is derived from the periods; csv output is a directory, so the
// derived name drops its extension. An existing directory given for xlsx
// output receives the derived file name.
func OutputPath(output, format string, periods []models.Period) string {
	name := batch.GenerateOutputFilename(periods, format)
	if format == exporter.FormatCSV {
		name = strings.TrimSuffix(name, "."+exporter.FormatCSV)
	}

	switch {
	case output == "":
		return name
	case format != exporter.FormatCSV && fileutils.DirectoryExists(output):
		return filepath.Join(output, name)
	default:
		return output
	}
}

// PrintSummary writes a human readable run report.
func PrintSummary(w io.Writer, o *Outcome) {
	s := o.Summary
	_, _ = fmt.Fprintf(w, "Consolidation run %s\n", s.RunID)
	_, _ = fmt.Fprintf(w, "  Sources read:         %d\n", s.SourcesRead)
	_, _ = fmt.Fprintf(w, "  Sources skipped:      %d\n", len(s.Skipped))
	for _, sk := range s.Skipped {
		_, _ = fmt.Fprintf(w, "    %s: %s\n", sk.Path, sk.Reason)
	}
	if len(o.Unparseable) > 0 {
		_, _ = fmt.Fprintf(w, "  Unidentified files:   %d\n", len(o.Unparseable))
		for _, path := range o.Unparseable {
			_, _ = fmt.Fprintf(w, "    %s\n", path)
		}
	}
	_, _ = fmt.Fprintf(w, "  Normalized rows:      %d\n", s.NormalizedRows)
	_, _ = fmt.Fprintf(w, "  Resolved rows:        %d\n", s.ResolvedRows)
	_, _ = fmt.Fprintf(w, "  Corrected products:   %d\n", s.CorrectedIdentities)
	_, _ = fmt.Fprintf(w, "  Total quantity:       %d\n", s.TotalQuantity)
	_, _ = fmt.Fprintf(w, "  Duration:             %s\n", s.Duration)
	_, _ = fmt.Fprintf(w, "  Views:                %s\n", strings.Join(o.Views, ", "))
	_, _ = fmt.Fprintln(w, "Written:")
	for _, path := range o.Written {
		_, _ = fmt.Fprintf(w, "  %s\n", path)
	}
}
