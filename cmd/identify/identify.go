// Package identify prints the period and branch derived from file names.
package identify

import (
	"fmt"
	"io"

	"fjacquet/sales-consolidator/cmd/root"
	"fjacquet/sales-consolidator/internal/identifier"

	"github.com/spf13/cobra"
)

// Cmd represents the identify command
var Cmd = &cobra.Command{
	Use:   "identify <name>...",
	Short: "Show the month, year and branch read from file names",
	Long: `Show the month, year and branch read from file names.

Each name is interpreted the way consolidate interprets source files. Names
without a month and year are reported as unparseable.

Example:
  sales-consolidator identify "3. MARZO 2025 HIPER.xlsx" "Ventas Abril 2025.csv"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appContainer := root.GetContainer()
		if appContainer == nil {
			return fmt.Errorf("container not initialized")
		}
		Identify(cmd.OutOrStdout(), appContainer.GetIdentifier(), args)
		return nil
	},
}

// Identify writes one tab separated line per name: the name, then month,
// year and branch ("-" when absent), or "unparseable" and the reason.
func Identify(w io.Writer, p *identifier.Parser, names []string) {
	for _, name := range names {
		d, err := p.Parse(name)
		if err != nil {
			_, _ = fmt.Fprintf(w, "%s\tunparseable\t%v\n", name, err)
			continue
		}
		branch := d.Branch
		if branch == "" {
			branch = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", name, d.Month, d.Year, branch)
	}
}
