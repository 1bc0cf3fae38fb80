package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/mlouielu/sionna-utils/envconfig"
	"github.com/mlouielu/sionna-utils/export"
	"github.com/mlouielu/sionna-utils/geometry"
	"github.com/mlouielu/sionna-utils/scene"
)

func newExportCmd() *cobra.Command {
	var (
		title        string
		output       string
		frame        bool
		frameScale   float64
		orientations bool
	)

	cmd := &cobra.Command{
		Use:   "export SCENE.json",
		Short: "Export a scene as a standalone interactive HTML preview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scene.Load(resolveScenePath(args[0]))
			if err != nil {
				return err
			}

			if frame {
				if _, err := geometry.CoordinateFrame(sc, frameScale, r3.Vec{}); err != nil {
					return err
				}
			}

			if output == "" {
				output = "scene.html"
			}
			if err := export.HTML(sc, output,
				export.WithTitle(title),
				export.WithOrientations(orientations),
			); err != nil {
				return err
			}

			fmt.Printf("wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "Scene Preview", "HTML page title")
	cmd.Flags().StringVarP(&output, "output", "o", "scene.html", "Output HTML file")
	cmd.Flags().BoolVar(&frame, "frame", false, "Add a coordinate frame at the origin")
	cmd.Flags().Float64Var(&frameScale, "frame-scale", 1.0, "Coordinate frame scale")
	cmd.Flags().BoolVar(&orientations, "show-orientations", false, "Show device orientations")
	return cmd
}

// resolveScenePath falls back to the configured scene directory when the
// given path does not exist as written.
func resolveScenePath(path string) string {
	if _, err := os.Stat(path); err == nil {
		return path
	}
	fallback := filepath.Join(envconfig.Scenes(), path)
	if _, err := os.Stat(fallback); err == nil {
		return fallback
	}
	return path
}
