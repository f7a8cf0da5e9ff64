package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/bagel/internal/app"
	"go.trai.ch/zerr"
)

func (c *CLI) newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render one batch and print the response",
		Long: "Render reads a batch request from the given file, or from stdin when the\n" +
			"file is omitted or '-', and writes the response document to stdout.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return zerr.With(zerr.Wrap(err, "failed to open batch request"), "path", args[0])
				}
				defer func() { _ = f.Close() }()
				in = f
			}
			return c.render(cmd, in)
		},
	}
	cmd.Flags().Bool("progress", false, "Print a line per finished span to stderr")
	return cmd
}

func (c *CLI) render(cmd *cobra.Command, in io.Reader) error {
	dir, configPath := persistentPaths(cmd)
	progress, _ := cmd.Flags().GetBool("progress")
	return c.app.Render(cmd.Context(), app.RenderOptions{
		Dir:        dir,
		ConfigPath: configPath,
		Input:      in,
		Output:     cmd.OutOrStdout(),
		Progress:   progress,
	})
}
