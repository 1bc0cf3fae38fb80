package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdevine/tensor"
	"github.com/spf13/cobra"

	"github.com/mlouielu/sionna-utils/geometry"
	"github.com/mlouielu/sionna-utils/npy"
)

func newConvertCmd() *cobra.Command {
	var name, output string

	cmd := &cobra.Command{
		Use:   "convert MESH.ply",
		Short: "Convert a triangle mesh into the solver's native mesh format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tm, err := geometry.LoadPLYFile(args[0])
			if err != nil {
				return err
			}

			if name == "" {
				name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}
			mesh, err := geometry.ToSceneMesh(tm, name)
			if err != nil {
				return err
			}

			if output == "" {
				output = name + ".json"
			}
			switch filepath.Ext(output) {
			case ".json":
				raw, err := json.MarshalIndent(mesh, "", "  ")
				if err != nil {
					return err
				}
				if err := os.WriteFile(output, raw, 0o644); err != nil {
					return err
				}
			case ".npz":
				arrays := map[string]*tensor.Dense{
					"vertex_positions": tensor.New(tensor.WithShape(mesh.VertexCount, 3), tensor.WithBacking(mesh.VertexPositions)),
					"faces":            tensor.New(tensor.WithShape(mesh.FaceCount, 3), tensor.WithBacking(mesh.Faces)),
				}
				if mesh.HasVertexNormals {
					arrays["vertex_normals"] = tensor.New(tensor.WithShape(mesh.VertexCount, 3), tensor.WithBacking(mesh.VertexNormals))
				}
				if err := npy.WriteArchive(output, arrays); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported output format %q (want .json or .npz)", filepath.Ext(output))
			}

			fmt.Printf("wrote %s (%d vertices, %d faces)\n", output, mesh.VertexCount, mesh.FaceCount)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Mesh name (default: input file stem)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, .json or .npz (default: NAME.json)")
	return cmd
}
