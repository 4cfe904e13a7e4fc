package cmd

import (
	"github.com/spf13/cobra"

	"github.com/toppers/mocktest/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the MCQ and feedback HTTP API",
	Long: `Serve the HTTP API:

  POST /api/mcq-test   generate questions for a subject and chapter
  POST /api/feedback   generate motivational feedback for a result
  GET  /healthz        liveness and configured model`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := server.ConfigFromEnv()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		c, err := newContainer(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		return c.Server(cfg).ListenAndServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides TOPPERS_ADDR, default "+server.DefaultAddr+")")
}
