package io

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"meshwalk/pkg/geometry"
	"meshwalk/pkg/stl"
)

func sampleMesh() *stl.Mesh {
	a := geometry.Vec3{0, 0, 0}
	b := geometry.Vec3{1, 0, 0}
	c := geometry.Vec3{0, 1, 0}
	d := geometry.Vec3{0, 0, 1}
	return &stl.Mesh{
		Name:    "tetra",
		Facets:  []stl.Facet{{a, b, c}, {a, b, d}, {a, c, d}, {b, c, d}},
		Normals: []geometry.Vec3{{0, 0, -1}, {0, -1, 0}, {-1, 0, 0}, {1, 1, 1}},
	}
}

func TestFromWalk(t *testing.T) {
	m := sampleMesh()
	order := []int{2, 0, 1, 3}

	res := FromWalk(m, order)
	if res.FacetCount != 4 {
		t.Errorf("FacetCount = %d, want 4", res.FacetCount)
	}
	if len(res.Facets) != 4 {
		t.Fatalf("len(Facets) = %d, want 4", len(res.Facets))
	}

	// Facets are listed in walk order, carrying their parse index and the
	// matching normal.
	for pos, idx := range order {
		rec := res.Facets[pos]
		if rec.Index != idx {
			t.Errorf("Facets[%d].Index = %d, want %d", pos, rec.Index, idx)
		}
		if rec.Vertices != [3]geometry.Vec3(m.Facets[idx]) {
			t.Errorf("Facets[%d].Vertices = %v, want facet %d", pos, rec.Vertices, idx)
		}
		if rec.Normal != m.Normals[idx] {
			t.Errorf("Facets[%d].Normal = %v, want %v", pos, rec.Normal, m.Normals[idx])
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	res := FromWalk(sampleMesh(), []int{2, 0, 1, 3})
	res.RunID = "run-1"
	res.MeshHash = "abc123"

	var buf bytes.Buffer
	if err := WriteJSON(res, &buf); err != nil {
		t.Fatalf("WriteJSON error: %v", err)
	}

	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON error: %v", err)
	}
	if !reflect.DeepEqual(res, back) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", back, res)
	}
}

func TestExportImportFile(t *testing.T) {
	res := FromWalk(sampleMesh(), []int{0, 1, 2, 3})
	path := filepath.Join(t.TempDir(), "walk.json")

	if err := ExportJSON(res, path); err != nil {
		t.Fatalf("ExportJSON error: %v", err)
	}
	back, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON error: %v", err)
	}
	if !reflect.DeepEqual(res, back) {
		t.Error("file round trip mismatch")
	}
}

func TestReadJSONValidation(t *testing.T) {
	valid := FromWalk(sampleMesh(), []int{2, 0, 1, 3})

	tests := []struct {
		name    string
		mutate  func(*Result)
		wantErr string
	}{
		{
			"length mismatch",
			func(r *Result) { r.Order = r.Order[:3] },
			"entries",
		},
		{
			"index out of range",
			func(r *Result) { r.Order[0] = 9; r.Facets[0].Index = 9 },
			"out of range",
		},
		{
			"duplicate facet",
			func(r *Result) { r.Order[3] = 2; r.Facets[3].Index = 2 },
			"twice",
		},
		{
			"order and facets disagree",
			func(r *Result) { r.Facets[1].Index = 3 },
			"does not match",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := valid
			res.Order = append([]int(nil), valid.Order...)
			res.Facets = append([]FacetRecord(nil), valid.Facets...)
			tt.mutate(&res)

			var buf bytes.Buffer
			if err := WriteJSON(res, &buf); err != nil {
				t.Fatalf("WriteJSON error: %v", err)
			}
			_, err := ReadJSON(&buf)
			if err == nil {
				t.Fatal("ReadJSON should reject the mutated result")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestReadJSONMalformed(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader("not json")); err == nil {
		t.Error("ReadJSON should fail on malformed input")
	}
}
