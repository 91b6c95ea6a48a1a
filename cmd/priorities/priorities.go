// Package priorities shows and exports the effective department priority table.
package priorities

import (
	"fmt"
	"io"

	"fjacquet/sales-consolidator/cmd/root"
	"fjacquet/sales-consolidator/internal/container"
	"fjacquet/sales-consolidator/internal/store"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var exportFile string

// Cmd represents the priorities command
var Cmd = &cobra.Command{
	Use:   "priorities",
	Short: "Print the effective department priority table",
	Long: `Print the effective department priority table as YAML.

The table comes from departments.priorities_file when set, otherwise from
departments.priorities in the configuration, otherwise from the built-in
defaults. Use --export to write it to a file that can be edited and then
referenced through departments.priorities_file.

Example:
  sales-consolidator priorities
  sales-consolidator priorities --export priorities.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appContainer := root.GetContainer()
		if appContainer == nil {
			return fmt.Errorf("container not initialized")
		}
		if exportFile != "" {
			if err := Export(appContainer, store.NewPriorityStore(exportFile, appContainer.GetLogger())); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Priority table written to %s\n", exportFile)
			return nil
		}
		return Print(cmd.OutOrStdout(), appContainer)
	},
}

func init() {
	Cmd.Flags().StringVar(&exportFile, "export", "", "Write the effective table to this YAML file")
}

// Document returns the effective priorities and aliases.
func Document(c *container.Container) *store.PriorityFile {
	return &store.PriorityFile{
		Priorities: c.GetPriorities(),
		Aliases:    c.GetAliases(),
	}
}

// Print writes the effective table as YAML, preceded by its source.
func Print(w io.Writer, c *container.Container) error {
	out, err := yaml.Marshal(Document(c))
	if err != nil {
		return fmt.Errorf("failed to marshal priority table: %w", err)
	}
	if _, err := fmt.Fprintf(w, "# source: %s\n%s", c.GetPrioritySource(), out); err != nil {
		return fmt.Errorf("failed to write priority table: %w", err)
	}
	return nil
}

// Export saves the effective table through repo.
func Export(c *container.Container, repo store.Repository) error {
	if err := repo.Save(Document(c)); err != nil {
		return fmt.Errorf("failed to export priority table: %w", err)
	}
	return nil
}
