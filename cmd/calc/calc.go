// Package calc computes a single debt-to-income ratio from the command line
package calc

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"fjacquet/pdn-calc/cmd/root"
	"fjacquet/pdn-calc/internal/pdn"

	"github.com/spf13/cobra"
)

var (
	income   string
	payments string
	region   string
	asJSON   bool
)

// Cmd represents the calc command
var Cmd = &cobra.Command{
	Use:   "calc",
	Short: "Compute the ПДН for an income and a list of payments",
	Long: `Compute the debt-to-income ratio. Payments are comma-separated.
When --region names a known region its average wage replaces --income.`,
	Example: `  pdn-calc calc --income 120000 --payments "15000, 22 500"
  pdn-calc calc --region "Москва" --payments 60000`,
	RunE: calcFunc,
}

func init() {
	Cmd.Flags().StringVar(&income, "income", "", "Monthly income")
	Cmd.Flags().StringVarP(&payments, "payments", "p", "", "Comma-separated monthly payments")
	Cmd.Flags().StringVarP(&region, "region", "r", "", "Region whose average wage replaces the income")
	Cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
}

func calcFunc(cmd *cobra.Command, args []string) error {
	c, err := root.NewContainer(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	svc := c.GetService()
	req, err := svc.ParseRequest(income, payments, region)
	if err != nil {
		return err
	}
	res, err := svc.Compute(req)
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), res, asJSON)
}

func printResult(w io.Writer, res pdn.Result, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	if res.Region != "" {
		if _, err := fmt.Fprintf(w, "Регион: %s (%s)\n", res.Region, formatAmount(res.Income)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "ПДН = %s%%\n%s\n", formatAmount(res.Ratio), res.Status)
	return err
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
