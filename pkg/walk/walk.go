// Package walk computes adjacency-respecting facet orderings.
//
// A decomposition walk is a permutation of a mesh's facets in which every
// facet shares an edge with its immediate predecessor, suitable for
// facet-by-facet reveal or fabrication sequencing. Decompose searches for
// one with depth-first backtracking: starting from each facet in parse
// order, it repeatedly extends the path with the nearest unvisited neighbor
// (by centroid distance) and undoes the choice when a branch dead-ends.
//
// The centroid heuristic biases the search toward spatially local chains and
// reduces backtracking in practice; it is not required for correctness. The
// search is exhaustive: it finds a valid ordering whenever one is reachable
// and otherwise reports that none exists, with no time-based cutoff. The
// only bounded mode is MaxDepth, which accepts a fixed-size path prefix.
//
// The backtracking state lives on an explicit frame stack rather than the
// call stack, so memory grows with path length instead of recursion depth
// and large meshes cannot overflow the goroutine stack.
package walk

import (
	"cmp"
	"slices"

	"meshwalk/pkg/errors"
	"meshwalk/pkg/geometry"
	"meshwalk/pkg/mesh"
	"meshwalk/pkg/stl"
)

// Options configures the decomposition search.
type Options struct {
	// MaxDepth, when positive and smaller than the facet count, stops the
	// search once a chain of that length is found. Zero or a value at least
	// the facet count means full coverage.
	MaxDepth int

	// Start restricts the search to a single start facet index. A negative
	// value tries every facet in parse order.
	Start int
}

// Decompose returns a sequence of facet indices in which every consecutive
// pair is adjacent in adj. Without a depth bound the sequence is a
// permutation of all facets. An empty mesh yields an empty path.
//
// The result is deterministic: candidate neighbors are ranked by ascending
// centroid distance with ties broken by lower facet index, and the first
// complete path found is returned. When every start facet is exhausted
// without success the error carries the NO_DECOMPOSITION code.
func Decompose(m *stl.Mesh, adj *mesh.Adjacency, opts Options) ([]int, error) {
	n := len(m.Facets)
	if n == 0 {
		return []int{}, nil
	}
	if opts.Start >= n {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"start facet %d out of range: mesh has %d facets", opts.Start, n)
	}

	target := n
	if opts.MaxDepth > 0 && opts.MaxDepth < n {
		target = opts.MaxDepth
	}

	centroids := make([]geometry.Vec3, n)
	for i, f := range m.Facets {
		centroids[i] = f.Centroid()
	}

	if opts.Start >= 0 {
		if path := search(adj, centroids, opts.Start, target); path != nil {
			return path, nil
		}
		return nil, errors.New(errors.ErrCodeNoDecomposition,
			"no adjacency-respecting ordering of length %d starts at facet %d", target, opts.Start)
	}

	for start := 0; start < n; start++ {
		if path := search(adj, centroids, start, target); path != nil {
			return path, nil
		}
	}
	return nil, errors.New(errors.ErrCodeNoDecomposition,
		"no adjacency-respecting ordering of length %d exists from any start facet", target)
}

// frame holds the ranked unvisited neighbors of one path element and the
// next candidate to try. frame i extends path[i].
type frame struct {
	candidates []int
	next       int
}

// search runs one bounded depth-first walk from start. It returns the first
// path of length target found, or nil when the subtree is exhausted.
//
// Invariant: when frame i is on top of the stack, the visited set equals the
// facets of path[:i+1]. Every deeper attempt unmarks its facets before
// control returns here, so the candidate ranking computed at push time stays
// valid for the whole life of the frame.
func search(adj *mesh.Adjacency, centroids []geometry.Vec3, start, target int) []int {
	visited := make([]bool, len(centroids))
	visited[start] = true
	path := []int{start}
	stack := []frame{{candidates: ranked(adj, centroids, start, visited)}}

	for {
		if len(path) == target {
			return path
		}

		top := &stack[len(stack)-1]
		if top.next < len(top.candidates) {
			c := top.candidates[top.next]
			top.next++
			visited[c] = true
			path = append(path, c)
			stack = append(stack, frame{candidates: ranked(adj, centroids, c, visited)})
			continue
		}

		// Dead end: drop this frame and unmark its facet.
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			return nil
		}
		last := path[len(path)-1]
		visited[last] = false
		path = path[:len(path)-1]
	}
}

// ranked returns the unvisited neighbors of facet i ordered by ascending
// centroid distance. Neighbor lists arrive sorted by index and the sort is
// stable, so equal distances keep parse order.
func ranked(adj *mesh.Adjacency, centroids []geometry.Vec3, i int, visited []bool) []int {
	var out []int
	for _, j := range adj.Neighbors(i) {
		if !visited[j] {
			out = append(out, j)
		}
	}
	from := centroids[i]
	slices.SortStableFunc(out, func(a, b int) int {
		return cmp.Compare(from.Distance(centroids[a]), from.Distance(centroids[b]))
	})
	return out
}
