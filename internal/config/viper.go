// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"fjacquet/sales-consolidator/internal/logging"
	"fjacquet/sales-consolidator/internal/models"
	"fjacquet/sales-consolidator/internal/normalizer"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SALES_LOG_LEVEL.
const EnvPrefix = "SALES"

// MaxWorkers bounds the workers setting.
const MaxWorkers = 64

// LogConfig selects log verbosity and format.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// InputConfig describes the source exports.
type InputConfig struct {
	ProductIDColumn   string `mapstructure:"product_id_column" yaml:"product_id_column"`
	QuantityColumn    string `mapstructure:"quantity_column" yaml:"quantity_column"`
	BrandColumn       string `mapstructure:"brand_column" yaml:"brand_column"`
	DescriptionColumn string `mapstructure:"description_column" yaml:"description_column"`
	DepartmentColumn  string `mapstructure:"department_column" yaml:"department_column"`
	SubFamilyColumn   string `mapstructure:"subfamily_column" yaml:"subfamily_column"`
	FamilyColumn      string `mapstructure:"family_column" yaml:"family_column"`
	CSVDelimiter      string `mapstructure:"csv_delimiter" yaml:"csv_delimiter"`
	CSVEncoding       string `mapstructure:"csv_encoding" yaml:"csv_encoding"`
}

// BranchesConfig lists the branch tokens recognized in file names.
type BranchesConfig struct {
	Known           []string `mapstructure:"known" yaml:"known"`
	UnassignedLabel string   `mapstructure:"unassigned_label" yaml:"unassigned_label"`
}

// DepartmentsConfig holds alias rewrites and priority overrides. A non-empty
// Priorities map replaces the built-in table; PrioritiesFile wins over both.
type DepartmentsConfig struct {
	Aliases        map[string]string `mapstructure:"aliases" yaml:"aliases"`
	Priorities     map[string]int    `mapstructure:"priorities" yaml:"priorities"`
	PrioritiesFile string            `mapstructure:"priorities_file" yaml:"priorities_file"`
}

// ReportConfig toggles and shapes the report views.
type ReportConfig struct {
	ColumnOrder               []string `mapstructure:"column_order" yaml:"column_order"`
	Ranking                   bool     `mapstructure:"ranking" yaml:"ranking"`
	ByBranch                  bool     `mapstructure:"by_branch" yaml:"by_branch"`
	Matrix                    bool     `mapstructure:"matrix" yaml:"matrix"`
	Evolution                 bool     `mapstructure:"evolution" yaml:"evolution"`
	Special                   bool     `mapstructure:"special" yaml:"special"`
	SpecialDepartments        []string `mapstructure:"special_departments" yaml:"special_departments"`
	SpecialBrands             []string `mapstructure:"special_brands" yaml:"special_brands"`
	DefaultSpecialDepartments []string `mapstructure:"default_special_departments" yaml:"default_special_departments"`
}

// OutputConfig selects how the bundle is written.
type OutputConfig struct {
	Format       string `mapstructure:"format" yaml:"format"`
	CSVDelimiter string `mapstructure:"csv_delimiter" yaml:"csv_delimiter"`
}

// Config represents the complete application configuration
type Config struct {
	Log         LogConfig         `mapstructure:"log" yaml:"log"`
	Input       InputConfig       `mapstructure:"input" yaml:"input"`
	Branches    BranchesConfig    `mapstructure:"branches" yaml:"branches"`
	Departments DepartmentsConfig `mapstructure:"departments" yaml:"departments"`
	Report      ReportConfig      `mapstructure:"report" yaml:"report"`
	Output      OutputConfig      `mapstructure:"output" yaml:"output"`
	Workers     int               `mapstructure:"workers" yaml:"workers"`
}

// InitializeConfig loads defaults, then the config file, then SALES_*
// environment variables. An empty configFile searches $HOME/.sales-consolidator,
// .sales-consolidator and the working directory for config.yaml; a missing
// file there is not an error. An explicit configFile must exist.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.sales-consolidator")
		v.AddConfigPath(".sales-consolidator")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	// Defaults always decode.
	_ = v.Unmarshal(&config)
	return &config
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	schema := normalizer.DefaultSchema()
	v.SetDefault("input.product_id_column", schema.ProductID)
	v.SetDefault("input.quantity_column", schema.Quantity)
	v.SetDefault("input.brand_column", schema.Brand)
	v.SetDefault("input.description_column", schema.Description)
	v.SetDefault("input.department_column", schema.Department)
	v.SetDefault("input.subfamily_column", schema.SubFamily)
	v.SetDefault("input.family_column", schema.Family)
	v.SetDefault("input.csv_delimiter", ",")
	v.SetDefault("input.csv_encoding", "utf-8")

	v.SetDefault("branches.known", []string{"HIPER", "CORRIENTES"})
	v.SetDefault("branches.unassigned_label", models.DefaultUnassignedBranch)

	v.SetDefault("departments.aliases", normalizer.DefaultAliases())
	v.SetDefault("departments.priorities", map[string]int{})
	v.SetDefault("departments.priorities_file", "")

	v.SetDefault("report.column_order", []string{})
	v.SetDefault("report.ranking", true)
	v.SetDefault("report.by_branch", true)
	v.SetDefault("report.matrix", true)
	v.SetDefault("report.evolution", true)
	v.SetDefault("report.special", true)
	v.SetDefault("report.special_departments", []string{})
	v.SetDefault("report.special_brands", []string{})
	v.SetDefault("report.default_special_departments", models.DefaultSpecialDepartments())

	v.SetDefault("output.format", "xlsx")
	v.SetDefault("output.csv_delimiter", ",")

	v.SetDefault("workers", 4)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if utf8.RuneCountInString(config.Input.CSVDelimiter) != 1 {
		return fmt.Errorf("input CSV delimiter must be a single character, got: %s", config.Input.CSVDelimiter)
	}
	if utf8.RuneCountInString(config.Output.CSVDelimiter) != 1 {
		return fmt.Errorf("output CSV delimiter must be a single character, got: %s", config.Output.CSVDelimiter)
	}

	switch strings.ToLower(config.Input.CSVEncoding) {
	case "utf-8", "utf8", "windows-1252", "cp1252", "iso-8859-1", "latin1":
	default:
		return fmt.Errorf("unsupported input.csv_encoding: %s", config.Input.CSVEncoding)
	}

	if strings.TrimSpace(config.Input.ProductIDColumn) == "" || strings.TrimSpace(config.Input.QuantityColumn) == "" {
		return fmt.Errorf("input.product_id_column and input.quantity_column are required")
	}

	switch strings.ToLower(config.Output.Format) {
	case "xlsx", "csv":
	default:
		return fmt.Errorf("invalid output format: %s (must be 'xlsx' or 'csv')", config.Output.Format)
	}

	for _, b := range config.Branches.Known {
		if strings.TrimSpace(b) == "" {
			return fmt.Errorf("branches.known must not contain empty names")
		}
	}

	if config.Workers < 1 || config.Workers > MaxWorkers {
		return fmt.Errorf("workers must be between 1 and %d, got: %d", MaxWorkers, config.Workers)
	}

	for dept, p := range config.Departments.Priorities {
		if p < 0 {
			return fmt.Errorf("departments.priorities[%s] must not be negative, got: %d", dept, p)
		}
	}

	return nil
}

// Schema returns the configured source column names.
func (c *Config) Schema() normalizer.Schema {
	return normalizer.Schema{
		ProductID:   c.Input.ProductIDColumn,
		Quantity:    c.Input.QuantityColumn,
		Brand:       c.Input.BrandColumn,
		Description: c.Input.DescriptionColumn,
		Department:  c.Input.DepartmentColumn,
		SubFamily:   c.Input.SubFamilyColumn,
		Family:      c.Input.FamilyColumn,
	}
}

// InputDelimiter returns the source CSV delimiter.
func (c *Config) InputDelimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.Input.CSVDelimiter)
	return r
}

// OutputDelimiter returns the output CSV delimiter.
func (c *Config) OutputDelimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.Output.CSVDelimiter)
	return r
}

// ReportSpec builds the report selection. A special filter is only set when
// departments or brands are configured; otherwise the default special
// departments apply.
func (c *Config) ReportSpec() models.ReportSpec {
	spec := models.ReportSpec{
		ColumnOrder:               c.Report.ColumnOrder,
		Ranking:                   c.Report.Ranking,
		ByBranch:                  c.Report.ByBranch,
		Matrix:                    c.Report.Matrix,
		Evolution:                 c.Report.Evolution,
		Special:                   c.Report.Special,
		DefaultSpecialDepartments: c.Report.DefaultSpecialDepartments,
		UnassignedBranch:          c.Branches.UnassignedLabel,
	}
	if len(c.Report.SpecialDepartments) > 0 || len(c.Report.SpecialBrands) > 0 {
		spec.SpecialFilter = &models.SpecialFilter{
			Departments: c.Report.SpecialDepartments,
			Brands:      c.Report.SpecialBrands,
		}
	}
	return spec
}

// ConfigureLoggingFromConfig builds the application logger from the Config.
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
}
