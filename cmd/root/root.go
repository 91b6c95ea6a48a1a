// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"

	"fjacquet/sales-consolidator/internal/config"
	"fjacquet/sales-consolidator/internal/container"
	"fjacquet/sales-consolidator/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input    string
	Output   string
	Config   string
	LogLevel string
	Workers  int
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppConfig is the configuration loaded before any subcommand runs
	AppConfig *config.Config

	// AppContainer holds the wired pipeline components
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "sales-consolidator",
		Short: "A CLI tool to consolidate monthly sales exports into multi-sheet reports.",
		Long: `sales-consolidator merges monthly per-branch sales exports (.xlsx or .csv)
into one dataset, settles each product's department and writes the
consolidated matrix together with the ranking, branch, matrix, evolution
and special category views.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to sales-consolidator!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return Initialize()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer == nil {
				return
			}
			if err := AppContainer.Close(); err != nil {
				Log.WithError(err).Warn("Failed to close container")
			}
		},
	}

	// SharedFlags holds the persistent flags of the root command
	SharedFlags = CommonFlags{}

	initOnce sync.Once
)

// Init registers the persistent flags. It is safe to call more than once.
func Init() {
	initOnce.Do(func() {
		Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file or directory")
		Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (or directory for csv output)")
		Cmd.PersistentFlags().StringVar(&SharedFlags.Config, "config", "", "Config file (default searches $HOME/.sales-consolidator, .sales-consolidator and .)")
		Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
		Cmd.PersistentFlags().IntVar(&SharedFlags.Workers, "workers", 0, "Number of sources read and views built in parallel")
	})
}

// Initialize loads the configuration, applies flag overrides and builds the
// container. Commands call it through PersistentPreRunE.
func Initialize() error {
	config.LoadEnv(Log)

	cfg, err := config.InitializeConfig(SharedFlags.Config)
	if err != nil {
		return err
	}

	if err := ApplyFlagOverrides(cfg, SharedFlags); err != nil {
		return err
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return err
	}

	AppConfig = cfg
	AppContainer = c
	Log = c.GetLogger()

	return nil
}

// ApplyFlagOverrides copies explicitly set flags over the loaded configuration.
func ApplyFlagOverrides(cfg *config.Config, flags CommonFlags) error {
	if flags.LogLevel != "" {
		switch flags.LogLevel {
		case "debug", "info", "warn", "error":
			cfg.Log.Level = flags.LogLevel
		default:
			return fmt.Errorf("invalid log level: %s", flags.LogLevel)
		}
	}
	if flags.Workers != 0 {
		if flags.Workers < 1 || flags.Workers > config.MaxWorkers {
			return fmt.Errorf("workers must be between 1 and %d, got %d", config.MaxWorkers, flags.Workers)
		}
		cfg.Workers = flags.Workers
	}
	return nil
}

// GetLogger returns the command logger
func GetLogger() logging.Logger {
	return Log
}

// GetContainer returns the container built in PersistentPreRunE, or nil
// before initialization.
func GetContainer() *container.Container {
	return AppContainer
}
