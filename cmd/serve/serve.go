// Package serve runs the HTTP calculator
package serve

import (
	"fjacquet/pdn-calc/cmd/root"
	"fjacquet/pdn-calc/internal/server"

	"github.com/spf13/cobra"
)

var address string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the ПДН calculator over HTTP",
	Long: `Load the regional wage table once, then serve the calculator form,
the region list (GET /regions) and the JSON API (POST /api/calculate)
until interrupted.`,
	RunE: serveFunc,
}

func init() {
	Cmd.Flags().StringVarP(&address, "address", "a", "", "Listen address (overrides server.address)")
}

func serveFunc(cmd *cobra.Command, args []string) error {
	c, err := root.NewContainer(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			root.Log.WithError(err).Warn("Failed to close container")
		}
	}()

	addr := c.GetConfig().Server.Address
	if address != "" {
		addr = address
	}

	handler := server.NewHandler(c.GetService(), c.GetLogger())
	return server.Run(cmd.Context(), addr, handler, c.GetLogger())
}
