package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadJSON decodes a Result from r and validates it: the order must be a
// duplicate-free sequence of in-range facet indices matching the facets
// array. ReadJSON does not close r.
func ReadJSON(r io.Reader) (Result, error) {
	var res Result
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return Result{}, fmt.Errorf("decode: %w", err)
	}

	if len(res.Facets) != len(res.Order) {
		return Result{}, fmt.Errorf("order has %d entries but facets has %d", len(res.Order), len(res.Facets))
	}
	seen := make(map[int]bool, len(res.Order))
	for pos, idx := range res.Order {
		if idx < 0 || idx >= res.FacetCount {
			return Result{}, fmt.Errorf("order[%d] = %d out of range [0, %d)", pos, idx, res.FacetCount)
		}
		if seen[idx] {
			return Result{}, fmt.Errorf("order contains facet %d twice", idx)
		}
		seen[idx] = true
		if res.Facets[pos].Index != idx {
			return Result{}, fmt.Errorf("facets[%d].index = %d does not match order[%d] = %d",
				pos, res.Facets[pos].Index, pos, idx)
		}
	}

	return res, nil
}

// ImportJSON reads a JSON file at path and returns the decoded Result.
// It returns the same validation errors as [ReadJSON].
func ImportJSON(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
