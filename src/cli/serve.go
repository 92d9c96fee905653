package cli

import (
	"github.com/spf13/cobra"

	"github.com/Protocol-Lattice/lattice-tutor/src/mcpserver"
	"github.com/Protocol-Lattice/lattice-tutor/src/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tutor over HTTP with server-sent events",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context(), topicFlag, true)
		if err != nil {
			return err
		}
		defer a.Close()

		if serveAddr != "" {
			a.cfg.Server.Addr = serveAddr
		}
		return server.New(a.cfg, a.gateway, a.log, a.metrics).Run(cmd.Context())
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the tutor tools to an MCP client over stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context(), topicFlag, false)
		if err != nil {
			return err
		}
		defer a.Close()

		return mcpserver.Serve(mcpserver.NewTutor(a.gateway, a.log, a.topic, a.language))
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8080)")
}
