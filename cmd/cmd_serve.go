package cmd

import (
	"net"

	"github.com/spf13/cobra"

	"github.com/mlouielu/sionna-utils/envconfig"
	"github.com/mlouielu/sionna-utils/paths"
	"github.com/mlouielu/sionna-utils/scene"
	"github.com/mlouielu/sionna-utils/server"
)

func newServeCmd() *cobra.Command {
	var dumpPath string

	cmd := &cobra.Command{
		Use:     "serve SCENE.json",
		Aliases: []string{"start"},
		Short:   "Serve an interactive scene preview over HTTP",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scene.Load(resolveScenePath(args[0]))
			if err != nil {
				return err
			}

			var p *paths.Paths
			if dumpPath != "" {
				if p, err = paths.Load(dumpPath); err != nil {
					return err
				}
			}

			ln, err := net.Listen("tcp", envconfig.Host().Host)
			if err != nil {
				return err
			}
			return server.Serve(ln, sc, p)
		},
	}

	cmd.Flags().StringVar(&dumpPath, "paths", "", "Solver paths dump (.npz) to serve statistics for")
	return cmd
}
