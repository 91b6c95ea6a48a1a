package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/sales-consolidator/cmd/consolidate"
	"fjacquet/sales-consolidator/cmd/identify"
	"fjacquet/sales-consolidator/cmd/priorities"
	"fjacquet/sales-consolidator/cmd/root"
	"fjacquet/sales-consolidator/internal/logging"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	loadEnvSilently()

	// 2. Apply LOG_LEVEL to the standard logrus logger
	logging.SetAllLogLevels(configureLogLevelDirectly())

	// 3. Register flags and subcommands
	root.Init()
	root.Cmd.AddCommand(consolidate.Cmd)
	root.Cmd.AddCommand(identify.Cmd)
	root.Cmd.AddCommand(priorities.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}

	_ = godotenv.Load(envFile)
}

// configureLogLevelDirectly sets the global log level for all logrus instances
// and returns the configured level
func configureLogLevelDirectly() logrus.Level {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}

	logrus.SetLevel(logLevel)

	return logLevel
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
