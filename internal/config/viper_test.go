package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/sales-consolidator/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into dir for the duration of the test so no stray config.yaml
// is picked up.
func chdir(t *testing.T, dir string) {
	t.Helper()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(originalDir))
	})
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	chdir(t, dir)
	for _, key := range []string{
		"SALES_LOG_LEVEL", "SALES_LOG_FORMAT", "SALES_WORKERS",
		"SALES_OUTPUT_FORMAT", "SALES_INPUT_CSV_DELIMITER", "SALES_REPORT_MATRIX",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return dir
}

func TestInitializeConfig_Defaults(t *testing.T) {
	isolate(t)

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, "IdArticulo", config.Input.ProductIDColumn)
	assert.Equal(t, "Cantidad", config.Input.QuantityColumn)
	assert.Equal(t, ",", config.Input.CSVDelimiter)
	assert.Equal(t, "utf-8", config.Input.CSVEncoding)
	assert.Equal(t, []string{"HIPER", "CORRIENTES"}, config.Branches.Known)
	assert.Equal(t, "SIN SUCURSAL", config.Branches.UnassignedLabel)
	aliases := make(map[string]string)
	for k, v := range config.Departments.Aliases {
		aliases[strings.ToUpper(k)] = v
	}
	assert.Equal(t, "ALMACEN", aliases["ACEITES"])
	assert.Empty(t, config.Departments.Priorities)
	assert.True(t, config.Report.Ranking)
	assert.True(t, config.Report.Special)
	assert.Equal(t, models.DefaultSpecialDepartments(), config.Report.DefaultSpecialDepartments)
	assert.Equal(t, "xlsx", config.Output.Format)
	assert.Equal(t, 4, config.Workers)

	assert.Equal(t, DefaultConfig(), config)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	isolate(t)

	t.Setenv("SALES_LOG_LEVEL", "debug")
	t.Setenv("SALES_LOG_FORMAT", "json")
	t.Setenv("SALES_WORKERS", "8")
	t.Setenv("SALES_OUTPUT_FORMAT", "csv")
	t.Setenv("SALES_INPUT_CSV_DELIMITER", ";")
	t.Setenv("SALES_REPORT_MATRIX", "false")

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, 8, config.Workers)
	assert.Equal(t, "csv", config.Output.Format)
	assert.Equal(t, ';', config.InputDelimiter())
	assert.False(t, config.Report.Matrix)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	dir := isolate(t)

	configContent := `
log:
  level: "warn"
input:
  quantity_column: "Unidades"
  csv_encoding: "windows-1252"
branches:
  known: ["HIPER", "CENTRO"]
departments:
  priorities:
    BEBIDAS: 500
  priorities_file: "prio.yaml"
report:
  column_order: ["TOTAL CONSOLIDATED", "IdArticulo"]
  special_brands: ["BOSCH"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configContent), 0600))

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "Unidades", config.Schema().Quantity)
	assert.Equal(t, "IdArticulo", config.Schema().ProductID)
	assert.Equal(t, "windows-1252", config.Input.CSVEncoding)
	assert.Equal(t, []string{"HIPER", "CENTRO"}, config.Branches.Known)
	assert.Equal(t, 500, models.NewPriorityTable(config.Departments.Priorities).Get("BEBIDAS"))
	assert.Equal(t, "prio.yaml", config.Departments.PrioritiesFile)

	spec := config.ReportSpec()
	assert.Equal(t, []string{"TOTAL CONSOLIDATED", "IdArticulo"}, spec.ColumnOrder)
	require.NotNil(t, spec.SpecialFilter)
	assert.Equal(t, []string{"BOSCH"}, spec.SpecialFilter.Brands)
	assert.Empty(t, spec.SpecialFilter.Departments)
}

func TestInitializeConfig_ExplicitFile(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 2\nlog:\n  level: error\n"), 0600))
	t.Setenv("SALES_LOG_LEVEL", "debug")

	config, err := InitializeConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2, config.Workers)
	assert.Equal(t, "debug", config.Log.Level, "env var wins over file")

	_, err = InitializeConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestInitializeConfig_Invalid(t *testing.T) {
	isolate(t)
	t.Setenv("SALES_WORKERS", "0")

	_, err := InitializeConfig("")
	assert.ErrorContains(t, err, "workers must be between 1 and 64")
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name:         "invalid log level",
			modifyConfig: func(c *Config) { c.Log.Level = "invalid" },
			expectError:  "invalid log level",
		},
		{
			name:         "invalid log format",
			modifyConfig: func(c *Config) { c.Log.Format = "invalid" },
			expectError:  "invalid log format",
		},
		{
			name:         "invalid input delimiter",
			modifyConfig: func(c *Config) { c.Input.CSVDelimiter = "ab" },
			expectError:  "input CSV delimiter must be a single character",
		},
		{
			name:         "invalid output delimiter",
			modifyConfig: func(c *Config) { c.Output.CSVDelimiter = "" },
			expectError:  "output CSV delimiter must be a single character",
		},
		{
			name:         "unsupported encoding",
			modifyConfig: func(c *Config) { c.Input.CSVEncoding = "ebcdic" },
			expectError:  "unsupported input.csv_encoding",
		},
		{
			name:         "missing quantity column",
			modifyConfig: func(c *Config) { c.Input.QuantityColumn = " " },
			expectError:  "are required",
		},
		{
			name:         "invalid output format",
			modifyConfig: func(c *Config) { c.Output.Format = "pdf" },
			expectError:  "invalid output format",
		},
		{
			name:         "empty branch",
			modifyConfig: func(c *Config) { c.Branches.Known = []string{"HIPER", ""} },
			expectError:  "branches.known",
		},
		{
			name:         "too many workers",
			modifyConfig: func(c *Config) { c.Workers = 65 },
			expectError:  "workers must be between 1 and 64",
		},
		{
			name:         "negative priority",
			modifyConfig: func(c *Config) { c.Departments.Priorities = map[string]int{"X": -1} },
			expectError:  "must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			require.NoError(t, validateConfig(config))

			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestReportSpec_NoFilter(t *testing.T) {
	spec := DefaultConfig().ReportSpec()
	assert.Nil(t, spec.SpecialFilter)
	assert.Equal(t, "SIN SUCURSAL", spec.UnassignedBranch)
	assert.True(t, spec.Evolution)
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	config := DefaultConfig()
	config.Log.Format = "json"
	config.Log.Level = "debug"
	assert.NotNil(t, ConfigureLoggingFromConfig(config))
}
