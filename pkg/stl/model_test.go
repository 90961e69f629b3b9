package stl

import (
	"math"
	"testing"

	"meshwalk/pkg/geometry"
)

func TestFacetCentroid(t *testing.T) {
	f := Facet{{0, 0, 0}, {3, 0, 0}, {0, 3, 0}}
	if got, want := f.Centroid(), (geometry.Vec3{1, 1, 0}); got != want {
		t.Errorf("Centroid = %v, want %v", got, want)
	}
}

func TestFacetArea(t *testing.T) {
	// Right triangle with legs 3 and 4.
	f := Facet{{0, 0, 0}, {3, 0, 0}, {0, 4, 0}}
	if got := f.Area(); math.Abs(got-6) > 1e-9 {
		t.Errorf("Area = %v, want 6", got)
	}

	// Degenerate: collinear points have zero area.
	flat := Facet{{0, 0, 0}, {1, 1, 1}, {2, 2, 2}}
	if got := flat.Area(); got != 0 {
		t.Errorf("degenerate Area = %v, want 0", got)
	}
}

func TestMeshBoundingBox(t *testing.T) {
	normals, facets := tetraFacets()
	m := &Mesh{Facets: facets, Normals: normals}

	lo, hi := m.BoundingBox()
	if want := (geometry.Vec3{0, 0, 0}); lo != want {
		t.Errorf("lo = %v, want %v", lo, want)
	}
	if want := (geometry.Vec3{1, 1, 1}); hi != want {
		t.Errorf("hi = %v, want %v", hi, want)
	}
}

func TestMeshBoundingBoxEmpty(t *testing.T) {
	var m Mesh
	lo, hi := m.BoundingBox()
	if lo != (geometry.Vec3{}) || hi != (geometry.Vec3{}) {
		t.Errorf("empty mesh bounds = %v, %v, want zero vectors", lo, hi)
	}
}

func TestMeshSurfaceArea(t *testing.T) {
	// Three right-triangle faces of the unit tetrahedron have area 1/2 each;
	// the slanted face has area sqrt(3)/2.
	normals, facets := tetraFacets()
	m := &Mesh{Facets: facets, Normals: normals}

	want := 1.5 + math.Sqrt(3)/2
	if got := m.SurfaceArea(); math.Abs(got-want) > 1e-6 {
		t.Errorf("SurfaceArea = %v, want %v", got, want)
	}
}
