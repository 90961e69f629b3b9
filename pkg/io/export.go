// Package io provides JSON export and import for decomposition results.
//
// # JSON Format
//
// The format lists facets in walk order. Each entry carries its original
// parse index, its three vertices, and its normal, so normals travel with
// the permutation while the original parse-order association stays
// recoverable through the index field:
//
//	{
//	  "facet_count": 4,
//	  "order": [2, 0, 1, 3],
//	  "facets": [
//	    {"index": 2, "vertices": [[0,0,0],[1,0,0],[0,0,1]], "normal": [0,-1,0]},
//	    ...
//	  ]
//	}
//
// The format is designed for downstream renderers and sequencers: import,
// export, and re-import produce identical results.
package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"meshwalk/pkg/geometry"
	"meshwalk/pkg/stl"
)

// Result is the serialization format for a decomposition walk.
type Result struct {
	RunID      string        `json:"run_id,omitempty"`
	MeshHash   string        `json:"mesh_hash,omitempty"`
	FacetCount int           `json:"facet_count"`
	Order      []int         `json:"order"`
	Facets     []FacetRecord `json:"facets"`
}

// FacetRecord is one facet in walk order.
type FacetRecord struct {
	Index    int              `json:"index"`
	Vertices [3]geometry.Vec3 `json:"vertices"`
	Normal   geometry.Vec3    `json:"normal"`
}

// FromWalk assembles a Result from a mesh and a walk order over its facets.
func FromWalk(m *stl.Mesh, order []int) Result {
	res := Result{
		FacetCount: m.FacetCount(),
		Order:      order,
		Facets:     make([]FacetRecord, len(order)),
	}
	for pos, idx := range order {
		res.Facets[pos] = FacetRecord{
			Index:    idx,
			Vertices: m.Facets[idx],
			Normal:   m.Normals[idx],
		}
	}
	return res
}

// WriteJSON encodes a Result as indented JSON and writes it to w.
func WriteJSON(res Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a Result to a JSON file at path.
func ExportJSON(res Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(res, f)
}
