package root_test

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/sales-consolidator/cmd/root"
	"fjacquet/sales-consolidator/internal/config"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "sales-consolidator", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "consolidate monthly sales exports")
	assert.Contains(t, root.Cmd.Long, "merges monthly per-branch sales exports")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
	assert.NotNil(t, root.Cmd.PersistentPostRun)
}

func TestRootCommand_Flags(t *testing.T) {
	root.Init()
	root.Init()

	flags := root.Cmd.PersistentFlags()
	tests := []struct {
		name      string
		shorthand string
	}{
		{"input", "i"},
		{"output", "o"},
		{"config", ""},
		{"log-level", ""},
		{"workers", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := flags.Lookup(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.shorthand, f.Shorthand)
		})
	}
}

func TestRootCommand_Run(t *testing.T) {
	assert.NotPanics(t, func() {
		root.Cmd.Run(&cobra.Command{}, []string{})
	})
}

func TestApplyFlagOverrides(t *testing.T) {
	tests := []struct {
		name        string
		flags       root.CommonFlags
		wantLevel   string
		wantWorkers int
		wantErr     string
	}{
		{name: "no overrides", wantLevel: "info", wantWorkers: 4},
		{name: "log level", flags: root.CommonFlags{LogLevel: "debug"}, wantLevel: "debug", wantWorkers: 4},
		{name: "workers", flags: root.CommonFlags{Workers: 8}, wantLevel: "info", wantWorkers: 8},
		{name: "bad level", flags: root.CommonFlags{LogLevel: "loud"}, wantErr: "invalid log level: loud"},
		{name: "too many workers", flags: root.CommonFlags{Workers: config.MaxWorkers + 1}, wantErr: "workers must be between"},
		{name: "negative workers", flags: root.CommonFlags{Workers: -1}, wantErr: "workers must be between"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			err := root.ApplyFlagOverrides(cfg, tt.flags)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, cfg.Log.Level)
			assert.Equal(t, tt.wantWorkers, cfg.Workers)
		})
	}
}

func TestInitialize(t *testing.T) {
	saved := root.SharedFlags
	defer func() { root.SharedFlags = saved }()

	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("workers: 2\nlog:\n  level: warn\n"), 0600))

	root.SharedFlags = root.CommonFlags{Config: cfgFile, LogLevel: "error"}
	require.NoError(t, root.Initialize())

	require.NotNil(t, root.GetContainer())
	assert.Equal(t, 2, root.AppConfig.Workers)
	assert.Equal(t, "error", root.AppConfig.Log.Level)
	assert.Same(t, root.GetContainer().GetLogger(), root.GetLogger())
}

func TestInitialize_MissingConfigFile(t *testing.T) {
	saved := root.SharedFlags
	defer func() { root.SharedFlags = saved }()

	root.SharedFlags = root.CommonFlags{Config: filepath.Join(t.TempDir(), "absent.yaml")}
	err := root.Initialize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
