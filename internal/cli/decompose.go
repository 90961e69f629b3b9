package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	pkgio "meshwalk/pkg/io"
	"meshwalk/pkg/pipeline"
)

// decomposeOpts holds the command-line flags for the decompose command.
type decomposeOpts struct {
	maxDepth int    // walk depth bound (0 = full coverage)
	start    int    // start facet (-1 = try all in parse order)
	output   string // output file path (stdout if empty)
	noCache  bool   // disable the cache entirely
	refresh  bool   // bypass the cache read
}

// newDecomposeCmd creates the decompose command: the full pipeline from
// decode through adjacency to the walk search, with JSON output.
func newDecomposeCmd() *cobra.Command {
	opts := decomposeOpts{start: -1}

	cmd := &cobra.Command{
		Use:   "decompose <file.stl>",
		Short: "Compute an adjacency-respecting ordering of all facets",
		Long: `Compute a decomposition walk: an ordering of the mesh's facets in which
every facet shares an edge with its immediate predecessor.

The search is exhaustive backtracking over every start facet and either
finds a valid ordering or reports that none exists. Results are cached by
the content hash of the input.

Examples:
  meshwalk decompose part.stl                  # Full ordering to stdout
  meshwalk decompose part.stl -o walk.json     # Write to file
  meshwalk decompose part.stl --max-depth 100  # Accept a 100-facet prefix
  meshwalk decompose part.stl --start 0        # Only try facet 0 as start`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if opts.maxDepth == 0 && cfg.MaxDepth > 0 {
				opts.maxDepth = cfg.MaxDepth
			}

			data, err := readMeshFile(args[0])
			if err != nil {
				return err
			}

			runner, err := newRunner(ctx, opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Cache.Close()

			spin := newSpinner(ctx, "searching for a decomposition walk...")
			spin.Start()
			result, err := runner.Decompose(ctx, data, pipeline.Options{
				MaxDepth: opts.maxDepth,
				Start:    opts.start,
				Refresh:  opts.refresh,
				Source:   args[0],
			})
			spin.Stop()
			if err != nil {
				return err
			}

			res := pkgio.FromWalk(result.Mesh, result.Order)
			res.RunID = result.RunID
			res.MeshHash = result.MeshHash

			var buf bytes.Buffer
			if err := pkgio.WriteJSON(res, &buf); err != nil {
				return err
			}
			if err := writeOutput(buf.Bytes(), opts.output); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			logger.Debug("walk complete", "length", len(result.Order), "cached", result.Cached)
			if opts.output != "" {
				printSuccess("Decomposition walk of %d facets", len(result.Order))
				printStats(result.Mesh.FacetCount(), result.Adjacency.EdgeCount(), result.Cached)
				printFile(opts.output)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", 0, "stop once a walk of this length is found (0 = all facets)")
	cmd.Flags().IntVar(&opts.start, "start", -1, "start facet index (-1 = try every facet)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached result exists")

	return cmd
}
