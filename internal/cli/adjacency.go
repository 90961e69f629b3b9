package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"meshwalk/pkg/mesh"
	"meshwalk/pkg/render"
	"meshwalk/pkg/stl"
)

// newAdjacencyCmd creates the adjacency command, which builds the facet
// adjacency graph and reports or exports it.
func newAdjacencyCmd() *cobra.Command {
	var (
		dotOut string
		svgOut string
	)

	cmd := &cobra.Command{
		Use:   "adjacency <file.stl>",
		Short: "Build and export the facet adjacency graph",
		Long: `Build the edge-sharing graph over the mesh's facets: two facets are
adjacent when they share two vertices (a full edge).

Without flags the command prints graph statistics. With --dot or --svg the
graph is exported in Graphviz DOT form or rendered to SVG.

Examples:
  meshwalk adjacency part.stl
  meshwalk adjacency part.stl --dot graph.dot
  meshwalk adjacency part.stl --svg graph.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			data, err := readMeshFile(args[0])
			if err != nil {
				return err
			}
			m, err := stl.Decoder{Warn: logger.Warnf}.Decode(data)
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			adj := mesh.Build(m)
			prog.done(fmt.Sprintf("Built adjacency graph: %d facets, %d adjacencies",
				adj.FacetCount(), adj.EdgeCount()))

			if dotOut == "" && svgOut == "" {
				isolated := 0
				maxDegree := 0
				for i := 0; i < adj.FacetCount(); i++ {
					d := adj.Degree(i)
					if d == 0 {
						isolated++
					}
					if d > maxDegree {
						maxDegree = d
					}
				}
				printSuccess("Adjacency graph for %s", args[0])
				printKeyValue("Facets", fmt.Sprintf("%d", adj.FacetCount()))
				printKeyValue("Adjacencies", fmt.Sprintf("%d", adj.EdgeCount()))
				printKeyValue("Max degree", fmt.Sprintf("%d", maxDegree))
				printKeyValue("Isolated", fmt.Sprintf("%d", isolated))
				if isolated > 0 {
					printWarning("%d isolated facets: a full decomposition walk cannot exist", isolated)
				}
				return nil
			}

			dot := mesh.ToDOT(m, adj)
			if dotOut != "" {
				if err := writeOutput([]byte(dot), dotOut); err != nil {
					return fmt.Errorf("write DOT: %w", err)
				}
				printFile(dotOut)
			}
			if svgOut != "" {
				spin := newSpinner(ctx, "rendering adjacency graph...")
				spin.Start()
				svg, err := render.SVG(ctx, dot)
				spin.Stop()
				if err != nil {
					return fmt.Errorf("render SVG: %w", err)
				}
				if err := writeOutput(svg, svgOut); err != nil {
					return fmt.Errorf("write SVG: %w", err)
				}
				printFile(svgOut)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dotOut, "dot", "", "write the graph in DOT form to this file")
	cmd.Flags().StringVar(&svgOut, "svg", "", "render the graph to SVG at this file")

	return cmd
}
