package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/bagel/internal/app"
)

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve render batches until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, configPath := persistentPaths(cmd)
			addr, _ := cmd.Flags().GetString("addr")
			port, _ := cmd.Flags().GetInt("port")
			transport, _ := cmd.Flags().GetString("transport")
			watch, _ := cmd.Flags().GetBool("watch")
			return c.app.Serve(cmd.Context(), app.ServeOptions{
				Dir:        dir,
				ConfigPath: configPath,
				Addr:       addr,
				Port:       port,
				Transport:  transport,
				Watch:      watch,
			})
		},
	}
	cmd.Flags().String("addr", "", "Listen address, overrides --port")
	cmd.Flags().IntP("port", "p", 0, "Port to listen on")
	cmd.Flags().StringP("transport", "t", "", "Transport to serve: http or websocket")
	cmd.Flags().BoolP("watch", "w", false, "Purge module caches when sources change")
	return cmd
}
