// Package container provides dependency injection for the sales-consolidator
// application. It centralizes the creation and wiring of every pipeline
// component, making the dependencies explicit and testable.
package container

import (
	"fmt"
	"strings"

	"fjacquet/sales-consolidator/internal/batch"
	"fjacquet/sales-consolidator/internal/config"
	"fjacquet/sales-consolidator/internal/exporter"
	"fjacquet/sales-consolidator/internal/identifier"
	"fjacquet/sales-consolidator/internal/logging"
	"fjacquet/sales-consolidator/internal/models"
	"fjacquet/sales-consolidator/internal/normalizer"
	"fjacquet/sales-consolidator/internal/parser"
	"fjacquet/sales-consolidator/internal/report"
	"fjacquet/sales-consolidator/internal/resolver"
	"fjacquet/sales-consolidator/internal/store"
)

// Priority sources reported by GetPrioritySource.
const (
	PrioritySourceBuiltin = "builtin"
	PrioritySourceConfig  = "config"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation: all fields are private and only
// reachable through getters.
type Container struct {
	logger         logging.Logger
	config         *config.Config
	priorityStore  store.Repository
	priorities     models.PriorityTable
	aliases        map[string]string
	prioritySource string

	identifier   *identifier.Parser
	readers      *parser.Factory
	normalizer   *normalizer.Normalizer
	resolver     *resolver.Resolver
	consolidator *batch.Consolidator
	generator    *report.Generator
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	logger := config.ConfigureLoggingFromConfig(cfg)

	var repo store.Repository
	if cfg.Departments.PrioritiesFile != "" {
		repo = store.NewPriorityStore(cfg.Departments.PrioritiesFile, logger)
	}
	return NewContainerWith(cfg, logger, repo)
}

// NewContainerWith wires the dependencies around an explicit logger and
// priority repository. repo may be nil when no priority file is configured.
func NewContainerWith(cfg *config.Config, logger logging.Logger, repo store.Repository) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = config.ConfigureLoggingFromConfig(cfg)
	}

	priorities, aliases, source, err := ResolvePriorities(cfg, repo)
	if err != nil {
		return nil, err
	}

	readers := parser.NewFactory(logger, parser.CSVOptions{
		Delimiter: cfg.InputDelimiter(),
		Encoding:  cfg.Input.CSVEncoding,
	})
	norm := normalizer.New(cfg.Schema(), aliases, logger)
	res := resolver.New(priorities, logger)

	c := &Container{
		logger:         logger,
		config:         cfg,
		priorityStore:  repo,
		priorities:     priorities,
		aliases:        aliases,
		prioritySource: source,
		identifier:     identifier.NewParser(cfg.Branches.Known),
		readers:        readers,
		normalizer:     norm,
		resolver:       res,
		consolidator:   batch.NewConsolidator(readers, norm, res, cfg.Workers, logger),
		generator:      report.NewGenerator(logger, cfg.Workers),
	}

	logger.Debug("Container initialized successfully",
		logging.Field{Key: "priority_source", Value: source},
		logging.Field{Key: "departments", Value: len(priorities)},
		logging.Field{Key: "branches", Value: strings.Join(cfg.Branches.Known, ",")})

	return c, nil
}

// ResolvePriorities picks the effective priority table and alias map. The
// priority file wins over the inline config map, which wins over the
// built-in table. Aliases from the file replace the configured ones.
func ResolvePriorities(cfg *config.Config, repo store.Repository) (models.PriorityTable, map[string]string, string, error) {
	aliases := cfg.Departments.Aliases

	if repo != nil {
		doc, err := repo.Load()
		if err != nil {
			return nil, nil, "", fmt.Errorf("failed to load department priorities: %w", err)
		}
		if len(doc.Aliases) > 0 {
			aliases = doc.Aliases
		}
		return doc.Table(), aliases, cfg.Departments.PrioritiesFile, nil
	}

	if len(cfg.Departments.Priorities) > 0 {
		return models.NewPriorityTable(cfg.Departments.Priorities), aliases, PrioritySourceConfig, nil
	}
	return models.DefaultPriorities(), aliases, PrioritySourceBuiltin, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetIdentifier returns the file name parser.
func (c *Container) GetIdentifier() *identifier.Parser {
	return c.identifier
}

// GetReaders returns the source reader factory.
func (c *Container) GetReaders() *parser.Factory {
	return c.readers
}

// GetNormalizer returns the record normalizer.
func (c *Container) GetNormalizer() *normalizer.Normalizer {
	return c.normalizer
}

// GetResolver returns the department resolver.
func (c *Container) GetResolver() *resolver.Resolver {
	return c.resolver
}

// GetConsolidator returns the pipeline runner.
func (c *Container) GetConsolidator() *batch.Consolidator {
	return c.consolidator
}

// GetGenerator returns the report generator.
func (c *Container) GetGenerator() *report.Generator {
	return c.generator
}

// GetExporter returns the exporter for format; an empty format uses the
// configured one.
func (c *Container) GetExporter(format string) (exporter.Exporter, error) {
	if format == "" {
		format = c.config.Output.Format
	}
	return exporter.New(format, c.config.OutputDelimiter(), c.logger)
}

// GetPriorities returns a copy of the effective priority table.
func (c *Container) GetPriorities() models.PriorityTable {
	out := make(models.PriorityTable, len(c.priorities))
	for k, v := range c.priorities {
		out[k] = v
	}
	return out
}

// GetAliases returns a copy of the effective department aliases.
func (c *Container) GetAliases() map[string]string {
	out := make(map[string]string, len(c.aliases))
	for k, v := range c.aliases {
		out[k] = v
	}
	return out
}

// GetPrioritySource names where the priority table came from: "builtin",
// "config" or the priority file path.
func (c *Container) GetPrioritySource() string {
	return c.prioritySource
}

// GetPriorityStore returns the priority repository, nil when no file is
// configured.
func (c *Container) GetPriorityStore() store.Repository {
	return c.priorityStore
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
