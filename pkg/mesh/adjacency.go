// Package mesh builds the facet adjacency graph of a parsed STL mesh.
//
// Two facets are adjacent when they share at least two vertices, which for
// triangles means they share a full edge. Facets are identified by their
// parse-order index and vertices are interned to integer IDs by exact
// float32 coordinate equality, so no floating-point comparison leaks past
// graph construction.
package mesh

import (
	"slices"

	"meshwalk/pkg/geometry"
	"meshwalk/pkg/stl"
)

// Adjacency is the edge-sharing graph over a mesh's facets. Built once by
// Build and immutable afterwards. A facet with no qualifying neighbor (a
// boundary or disconnected facet) has an empty list; that is not an error.
type Adjacency struct {
	neighbors [][]int
	edges     int
}

// Build constructs the adjacency graph for m.
//
// It indexes each distinct vertex to the facets containing it, then for each
// facet collects the facets appearing in the incidence sets of at least two
// of its corners. Cost is proportional to local vertex fan-out, not to facet
// pairs. Neighbor lists are sorted ascending by facet index, which makes
// downstream iteration deterministic.
func Build(m *stl.Mesh) *Adjacency {
	n := len(m.Facets)

	vertexID := make(map[geometry.Vec3]int)
	var incident [][]int // facet indices touching each vertex ID
	corners := make([][3]int, n)
	for i, f := range m.Facets {
		for c, v := range f {
			id, ok := vertexID[v]
			if !ok {
				id = len(incident)
				vertexID[v] = id
				incident = append(incident, nil)
			}
			corners[i][c] = id
			// A degenerate facet can repeat a vertex; record the facet
			// at most once per vertex.
			if list := incident[id]; len(list) == 0 || list[len(list)-1] != i {
				incident[id] = append(incident[id], i)
			}
		}
	}

	neighbors := make([][]int, n)
	edges := 0
	shared := make(map[int]int)
	for i := range corners {
		clear(shared)
		for _, id := range uniqueCorners(corners[i]) {
			for _, j := range incident[id] {
				if j != i {
					shared[j]++
				}
			}
		}
		var adj []int
		for j, count := range shared {
			if count >= 2 {
				adj = append(adj, j)
			}
		}
		slices.Sort(adj)
		neighbors[i] = adj
		edges += len(adj)
	}

	return &Adjacency{neighbors: neighbors, edges: edges / 2}
}

// uniqueCorners returns the distinct vertex IDs of one facet.
func uniqueCorners(ids [3]int) []int {
	out := ids[:1]
	for _, id := range ids[1:] {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

// FacetCount returns the number of facets in the graph.
func (a *Adjacency) FacetCount() int {
	return len(a.neighbors)
}

// EdgeCount returns the number of adjacency relations (each counted once).
func (a *Adjacency) EdgeCount() int {
	return a.edges
}

// Neighbors returns the facets adjacent to facet i, sorted by index.
// The returned slice is shared; callers must not modify it.
func (a *Adjacency) Neighbors(i int) []int {
	return a.neighbors[i]
}

// Degree returns the number of facets adjacent to facet i.
func (a *Adjacency) Degree(i int) int {
	return len(a.neighbors[i])
}
