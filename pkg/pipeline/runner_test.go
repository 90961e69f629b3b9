package pipeline

import (
	"bytes"
	"context"
	"slices"
	"testing"

	"meshwalk/pkg/cache"
	"meshwalk/pkg/errors"
	"meshwalk/pkg/geometry"
	"meshwalk/pkg/stl"
)

// tetraSTL returns a unit tetrahedron as binary STL bytes.
func tetraSTL(t *testing.T) []byte {
	t.Helper()

	a := geometry.Vec3{0, 0, 0}
	b := geometry.Vec3{1, 0, 0}
	c := geometry.Vec3{0, 1, 0}
	d := geometry.Vec3{0, 0, 1}
	m := &stl.Mesh{
		Name:    "tetra",
		Facets:  []stl.Facet{{a, b, c}, {a, b, d}, {a, c, d}, {b, c, d}},
		Normals: []geometry.Vec3{{0, 0, -1}, {0, -1, 0}, {-1, 0, 0}, {1, 1, 1}},
	}

	var buf bytes.Buffer
	if err := stl.EncodeBinary(m, &buf); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func TestDecomposeFresh(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil)

	result, err := runner.Decompose(ctx, tetraSTL(t), Options{Start: -1})
	if err != nil {
		t.Fatalf("Decompose error: %v", err)
	}
	if result.Cached {
		t.Error("first run should not be cached")
	}
	if result.RunID == "" {
		t.Error("RunID should be set")
	}
	if result.MeshHash != cache.Hash(tetraSTL(t)) {
		t.Error("MeshHash should be the content hash of the input")
	}
	if len(result.Order) != 4 {
		t.Errorf("walk length = %d, want 4", len(result.Order))
	}
	if result.Mesh.FacetCount() != 4 {
		t.Errorf("FacetCount = %d, want 4", result.Mesh.FacetCount())
	}
	if result.Adjacency.EdgeCount() != 6 {
		t.Errorf("EdgeCount = %d, want 6", result.Adjacency.EdgeCount())
	}
}

func TestDecomposeCachesWalk(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	runner := NewRunner(fc, nil)
	data := tetraSTL(t)

	first, err := runner.Decompose(ctx, data, Options{Start: -1})
	if err != nil {
		t.Fatalf("first Decompose error: %v", err)
	}
	if first.Cached {
		t.Error("first run should compute")
	}

	second, err := runner.Decompose(ctx, data, Options{Start: -1})
	if err != nil {
		t.Fatalf("second Decompose error: %v", err)
	}
	if !second.Cached {
		t.Error("second run should hit the cache")
	}
	if !slices.Equal(first.Order, second.Order) {
		t.Errorf("cached order %v differs from computed %v", second.Order, first.Order)
	}
	// The mesh and graph are rebuilt even on a hit; export needs them.
	if second.Mesh == nil || second.Adjacency == nil {
		t.Error("cached result should still carry mesh and adjacency")
	}
}

func TestDecomposeRefreshBypassesCache(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	runner := NewRunner(fc, nil)
	data := tetraSTL(t)

	if _, err := runner.Decompose(ctx, data, Options{Start: -1}); err != nil {
		t.Fatalf("first Decompose error: %v", err)
	}
	result, err := runner.Decompose(ctx, data, Options{Start: -1, Refresh: true})
	if err != nil {
		t.Fatalf("refresh Decompose error: %v", err)
	}
	if result.Cached {
		t.Error("refresh run should recompute")
	}
}

func TestDecomposeOptionsChangeCacheKey(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	runner := NewRunner(fc, nil)
	data := tetraSTL(t)

	if _, err := runner.Decompose(ctx, data, Options{Start: -1}); err != nil {
		t.Fatalf("Decompose error: %v", err)
	}

	// A different depth bound must not reuse the full walk.
	result, err := runner.Decompose(ctx, data, Options{Start: -1, MaxDepth: 2})
	if err != nil {
		t.Fatalf("bounded Decompose error: %v", err)
	}
	if result.Cached {
		t.Error("different options should miss the cache")
	}
	if len(result.Order) != 2 {
		t.Errorf("walk length = %d, want 2", len(result.Order))
	}
}

func TestDecomposeBadInput(t *testing.T) {
	runner := NewRunner(nil, nil)

	_, err := runner.Decompose(context.Background(), []byte("garbage"), Options{Start: -1})
	if err == nil {
		t.Fatal("Decompose should fail on undecodable input")
	}
	if !errors.Is(err, errors.ErrCodeBinaryDecode) {
		t.Errorf("error code = %v, want BINARY_DECODE_FAILED", errors.GetCode(err))
	}
}
