// Package refresh re-runs the wage source chain and reports every tier
package refresh

import (
	"fmt"
	"io"

	"fjacquet/pdn-calc/cmd/root"
	"fjacquet/pdn-calc/internal/loader"

	"github.com/spf13/cobra"
)

// Cmd represents the refresh command
var Cmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-run the wage source chain and report each tier",
	Long: `Walk the wage sources (spreadsheet, remote page, snapshot, defaults) and
print what each tier did. A table from the spreadsheet, the remote page or the
defaults is written to the snapshot store; a table read from the snapshot is not.`,
	RunE: refreshFunc,
}

func refreshFunc(cmd *cobra.Command, args []string) error {
	c, err := root.NewContainer(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	return PrintReport(cmd.OutOrStdout(), c.GetLoadReport(), c.GetStore().Location())
}

// PrintReport writes a human-readable summary of a load.
func PrintReport(w io.Writer, report loader.Report, location string) error {
	for _, a := range report.Attempts {
		line := fmt.Sprintf("%-12s %s", a.Tier, a.Outcome)
		if a.Err != nil {
			line += ": " + a.Err.Error()
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "\n%d regions loaded from %s\n", report.Table.Len(), report.Source); err != nil {
		return err
	}

	switch {
	case report.SaveErr != nil:
		_, err := fmt.Fprintf(w, "snapshot not saved to %s: %v\n", location, report.SaveErr)
		return err
	case report.Source != loader.TierCache:
		_, err := fmt.Fprintf(w, "snapshot saved to %s\n", location)
		return err
	}
	return nil
}
