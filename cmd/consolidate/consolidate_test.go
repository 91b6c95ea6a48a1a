package consolidate_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/sales-consolidator/cmd/consolidate"
	"fjacquet/sales-consolidator/internal/batch"
	"fjacquet/sales-consolidator/internal/config"
	"fjacquet/sales-consolidator/internal/container"
	"fjacquet/sales-consolidator/internal/logging"
	"fjacquet/sales-consolidator/internal/models"
	"fjacquet/sales-consolidator/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var header = []interface{}{"IdArticulo", "Marca", "Descripcion", "Departamento", "SubFamilia", "Familia", "Cantidad"}

func writeXLSX(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	require.NoError(t, f.SaveAs(path))
}

func newContainer(t *testing.T) (*container.Container, *logging.MockLogger) {
	t.Helper()
	mock := logging.NewMockLogger()
	c, err := container.NewContainerWith(config.DefaultConfig(), mock, nil)
	require.NoError(t, err)
	return c, mock
}

// writeSources creates two March exports and one April export in dir.
func writeSources(t *testing.T, dir string) {
	t.Helper()
	writeXLSX(t, filepath.Join(dir, "3. MARZO 2025 HIPER.xlsx"), [][]interface{}{
		header,
		{1001, "ACME", "ACEITE 1L", "ACEITES", "OLEOS", "COMESTIBLES", 10},
	})
	writeXLSX(t, filepath.Join(dir, "3. MARZO 2025 CORRIENTES.xlsx"), [][]interface{}{
		header,
		{1001, "ACME", "ACEITE 1L", "BEBIDAS", "OLEOS", "COMESTIBLES", 5},
	})
	writeXLSX(t, filepath.Join(dir, "4. ABRIL 2025 HIPER.xlsx"), [][]interface{}{
		header,
		{2002, "SOL", "GASEOSA", "BEBIDAS", "", "", 7},
	})
}

func TestRun_DirectoryToWorkbook(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeSources(t, in)
	require.NoError(t, os.WriteFile(filepath.Join(in, "notas.xlsx"), []byte("x"), 0600))

	c, _ := newContainer(t)
	outcome, err := consolidate.Run(context.Background(), c, consolidate.Options{
		Inputs: []string{in},
		Output: out,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, outcome.Summary.SourcesRead)
	assert.Equal(t, int64(22), outcome.Summary.TotalQuantity)
	assert.Equal(t, 1, outcome.Summary.CorrectedIdentities)
	assert.Equal(t, []string{filepath.Join(in, "notas.xlsx")}, outcome.Unparseable)

	want := filepath.Join(out, "Consolidated_MARZO-2025_ABRIL-2025.xlsx")
	require.Equal(t, []string{want}, outcome.Written)
	assert.Equal(t, models.SheetConsolidated, outcome.Views[0])

	f, err := excelize.OpenFile(want)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Contains(t, f.GetSheetList(), models.SheetConsolidated)

	rows, err := f.GetRows(models.SheetConsolidated)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, "IdArticulo", rows[0][0])
	assert.Equal(t, "TOTAL CONSOLIDATED", rows[0][len(rows[0])-1])
}

func TestRun_CSVDirectory(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "bundle")
	writeSources(t, in)

	c, _ := newContainer(t)
	outcome, err := consolidate.Run(context.Background(), c, consolidate.Options{
		Inputs:    []string{in},
		Output:    out,
		Format:    "csv",
		NoSpecial: true,
		NoMatrix:  true,
	})
	require.NoError(t, err)

	assert.NotContains(t, outcome.Views, models.SheetMatrix)
	assert.NotContains(t, outcome.Views, models.SheetSpecial)
	assert.Len(t, outcome.Written, len(outcome.Views))
	for _, path := range outcome.Written {
		assert.Equal(t, out, filepath.Dir(path))
		assert.FileExists(t, path)
	}
}

func TestRun_ExplicitFileWithFlags(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "export.xlsx")
	writeXLSX(t, src, [][]interface{}{
		header,
		{1001, "ACME", "ACEITE 1L", "ALMACEN", "", "", 4},
	})

	c, _ := newContainer(t)
	outcome, err := consolidate.Run(context.Background(), c, consolidate.Options{
		Inputs: []string{src},
		Output: filepath.Join(dir, "out.xlsx"),
		Month:  "marzo",
		Year:   2025,
		Branch: "hiper",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Summary.SourcesRead)
	assert.Equal(t, []string{filepath.Join(dir, "out.xlsx")}, outcome.Written)
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	writeXLSX(t, filepath.Join(dir, "3. MARZO 2025 HIPER.xlsx"), [][]interface{}{{"Codigo", "Unidades"}, {1, 2}})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.csv"), []byte("a,b\n"), 0600))

	tests := []struct {
		name    string
		opts    consolidate.Options
		wantErr string
		is      error
	}{
		{name: "no inputs", opts: consolidate.Options{}, wantErr: "no input given"},
		{name: "unknown format", opts: consolidate.Options{Inputs: []string{dir}, Format: "pdf"}, wantErr: "unsupported output format"},
		{name: "month with directory", opts: consolidate.Options{Inputs: []string{dir}, Month: "MARZO", Year: 2025}, wantErr: "exactly one input file"},
		{name: "unknown month", opts: consolidate.Options{Inputs: []string{filepath.Join(dir, "readme.csv")}, Month: "smarch", Year: 2025}, wantErr: "unknown month"},
		{name: "month without year", opts: consolidate.Options{Inputs: []string{filepath.Join(dir, "readme.csv")}, Month: "MARZO"}, wantErr: "--year is required"},
		{name: "nothing identifiable", opts: consolidate.Options{Inputs: []string{filepath.Join(dir, "readme.csv")}}, wantErr: "no input file has a recognizable month and year"},
		{name: "no usable data", opts: consolidate.Options{Inputs: []string{dir}}, is: parsererror.ErrNoValidData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContainer(t)
			_, err := consolidate.Run(context.Background(), c, tt.opts)
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			} else {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestRun_Cancelled(t *testing.T) {
	in := t.TempDir()
	writeSources(t, in)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c, _ := newContainer(t)
	_, err := consolidate.Run(ctx, c, consolidate.Options{Inputs: []string{in}, Output: t.TempDir()})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReportSpec(t *testing.T) {
	base := config.DefaultConfig().ReportSpec()

	spec := consolidate.ReportSpec(base, consolidate.Options{})
	assert.Equal(t, base, spec)

	spec = consolidate.ReportSpec(base, consolidate.Options{
		Columns:       []string{"Marca"},
		NoRanking:     true,
		NoEvolution:   true,
		SpecialBrands: []string{"ACME"},
	})
	assert.Equal(t, []string{"Marca"}, spec.ColumnOrder)
	assert.False(t, spec.Ranking)
	assert.False(t, spec.Evolution)
	assert.True(t, spec.ByBranch)
	assert.True(t, spec.Matrix)
	require.NotNil(t, spec.SpecialFilter)
	assert.Equal(t, []string{"ACME"}, spec.SpecialFilter.Brands)
	assert.Empty(t, spec.SpecialFilter.Departments)

	disabled := base
	disabled.Matrix = false
	spec = consolidate.ReportSpec(disabled, consolidate.Options{})
	assert.False(t, spec.Matrix)
}

func TestOutputPath(t *testing.T) {
	dir := t.TempDir()
	periods := []models.Period{{Month: 4, Year: 2025}, {Month: 3, Year: 2025}}

	tests := []struct {
		name   string
		output string
		format string
		want   string
	}{
		{"derived workbook", "", "xlsx", "Consolidated_MARZO-2025_ABRIL-2025.xlsx"},
		{"derived csv directory", "", "csv", "Consolidated_MARZO-2025_ABRIL-2025"},
		{"workbook into directory", dir, "xlsx", filepath.Join(dir, "Consolidated_MARZO-2025_ABRIL-2025.xlsx")},
		{"explicit workbook", "out.xlsx", "xlsx", "out.xlsx"},
		{"explicit csv directory", dir, "csv", dir},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, consolidate.OutputPath(tt.output, tt.format, periods))
		})
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	consolidate.PrintSummary(&buf, &consolidate.Outcome{
		Summary: batch.Summary{
			RunID:          "run-1",
			SourcesRead:    2,
			Skipped:        []batch.SkippedSource{{Path: "bad.xlsx", Reason: "unusable header"}},
			NormalizedRows: 3,
			ResolvedRows:   2,
			TotalQuantity:  15,
		},
		Unparseable: []string{"notas.xlsx"},
		Views:       []string{models.SheetConsolidated, models.SheetRanking},
		Written:     []string{"out.xlsx"},
	})

	out := buf.String()
	assert.Contains(t, out, "Consolidation run run-1")
	assert.Contains(t, out, "Sources skipped:      1")
	assert.Contains(t, out, "bad.xlsx: unusable header")
	assert.Contains(t, out, "notas.xlsx")
	assert.Contains(t, out, "Total quantity:       15")
	assert.Contains(t, out, "Consolidated, Ranking of Sales")
	assert.Contains(t, out, "  out.xlsx\n")
}

func TestCommand_Metadata(t *testing.T) {
	assert.Equal(t, "consolidate [files...]", consolidate.Cmd.Use)
	assert.Contains(t, consolidate.Cmd.Long, "Example")
	assert.NotNil(t, consolidate.Cmd.RunE)
	for _, name := range []string{"format", "recursive", "month", "year", "branch", "columns", "no-ranking", "no-special"} {
		assert.NotNil(t, consolidate.Cmd.Flags().Lookup(name), name)
	}
}
