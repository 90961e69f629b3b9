package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"meshwalk/pkg/mesh"
	"meshwalk/pkg/stl"
)

// newInfoCmd creates the info command, which parses a mesh and reports its
// statistics without running the decomposition search.
func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file.stl>",
		Short: "Parse an STL file and report mesh statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			data, err := readMeshFile(args[0])
			if err != nil {
				return err
			}

			m, err := stl.Decoder{Warn: logger.Warnf}.Decode(data)
			if err != nil {
				return err
			}
			adj := mesh.Build(m)

			name := m.Name
			if name == "" {
				name = "(unnamed)"
			}
			lo, hi := m.BoundingBox()

			printSuccess("Parsed %s", args[0])
			printKeyValue("Name", name)
			printKeyValue("Facets", fmt.Sprintf("%d", m.FacetCount()))
			printKeyValue("Adjacencies", fmt.Sprintf("%d", adj.EdgeCount()))
			printKeyValue("Bounds", fmt.Sprintf("(%g, %g, %g) to (%g, %g, %g)",
				lo[0], lo[1], lo[2], hi[0], hi[1], hi[2]))
			printKeyValue("Surface area", fmt.Sprintf("%.6g", m.SurfaceArea()))
			return nil
		},
	}
}
