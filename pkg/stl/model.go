package stl

import "meshwalk/pkg/geometry"

// Facet is a single triangle: three vertices in file order. Vertex order is
// preserved exactly as read; facets are never normalized or sorted.
type Facet [3]geometry.Vec3

// Centroid returns the mean point of the facet's three corners.
func (f Facet) Centroid() geometry.Vec3 {
	return geometry.Centroid(f[0], f[1], f[2])
}

// Area returns the facet's surface area.
func (f Facet) Area() float64 {
	return f[1].Sub(f[0]).Cross(f[2].Sub(f[0])).Length() / 2
}

// Mesh is the parsed contents of one STL file: facets and their file-order
// normals, parallel slices of equal length. Normals are stored as read and
// are not guaranteed to be unit vectors or geometrically consistent with
// their facets.
//
// A Mesh is produced once by Decode and not mutated afterwards. Throughout
// the pipeline facets are identified by their index into Facets, so exact
// coordinate comparison is never needed past adjacency construction.
type Mesh struct {
	Name    string
	Facets  []Facet
	Normals []geometry.Vec3
}

// FacetCount returns the number of facets in the mesh.
func (m *Mesh) FacetCount() int {
	return len(m.Facets)
}

// BoundingBox returns the axis-aligned bounds over all vertices.
// For an empty mesh both corners are the zero vector.
func (m *Mesh) BoundingBox() (lo, hi geometry.Vec3) {
	if len(m.Facets) == 0 {
		return lo, hi
	}
	lo, hi = m.Facets[0][0], m.Facets[0][0]
	for _, f := range m.Facets {
		for _, v := range f {
			for c := range 3 {
				if v[c] < lo[c] {
					lo[c] = v[c]
				}
				if v[c] > hi[c] {
					hi[c] = v[c]
				}
			}
		}
	}
	return lo, hi
}

// SurfaceArea returns the total area of all facets.
func (m *Mesh) SurfaceArea() float64 {
	total := 0.0
	for _, f := range m.Facets {
		total += f.Area()
	}
	return total
}
