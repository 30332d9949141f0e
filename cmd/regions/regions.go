// Package regions lists the regional wage table
package regions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"fjacquet/pdn-calc/cmd/root"
	"fjacquet/pdn-calc/internal/fileutils"
	"fjacquet/pdn-calc/internal/logging"
	"fjacquet/pdn-calc/internal/validation"
	"fjacquet/pdn-calc/internal/wagetable"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
	FormatYAML  = "yaml"
)

var (
	format string
	output string
)

// Cmd represents the regions command
var Cmd = &cobra.Command{
	Use:   "regions",
	Short: "List regions and their average wages",
	Long:  `Resolve the regional wage table and print it as a table, JSON, CSV or YAML.`,
	RunE:  regionsFunc,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", FormatTable, "Output format (table, json, csv, yaml)")
	Cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
}

func regionsFunc(cmd *cobra.Command, args []string) error {
	if err := validation.IsValidOutputFormat(format); err != nil {
		return err
	}
	if output != "" {
		if err := validation.IsValidOutputPath(output); err != nil {
			return err
		}
	}

	c, err := root.NewContainer(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	var buf bytes.Buffer
	if err := WriteRegions(&buf, c.GetService().Regions(), format); err != nil {
		return err
	}

	if output == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}

	if err := fileutils.WriteFileAtomic(output, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	root.Log.Info("Regions written",
		logging.F(logging.FieldFile, output),
		logging.F(logging.FieldCount, len(c.GetService().Regions())))
	return nil
}

// WriteRegions renders entries to w in the given format.
func WriteRegions(w io.Writer, entries []wagetable.RegionWage, format string) error {
	switch format {
	case FormatTable, "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		if _, err := fmt.Fprintln(tw, "Регион\tЗарплата\t"); err != nil {
			return err
		}
		for _, e := range entries {
			if _, err := fmt.Fprintf(tw, "%s\t%s\t\n", e.Region, strconv.FormatFloat(e.Wage, 'f', -1, 64)); err != nil {
				return err
			}
		}
		return tw.Flush()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case FormatCSV:
		if err := gocsv.Marshal(entries, w); err != nil {
			return fmt.Errorf("failed to marshal CSV: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format: %s (must be table, json, csv or yaml)", format)
	}
}
