package stl

import (
	"bytes"
	"testing"

	"meshwalk/pkg/errors"
	"meshwalk/pkg/geometry"
)

func TestBinaryRoundTrip(t *testing.T) {
	normals, facets := tetraFacets()
	original := &Mesh{Name: "tetra", Facets: facets, Normals: normals}

	var buf bytes.Buffer
	if err := EncodeBinary(original, &buf); err != nil {
		t.Fatalf("EncodeBinary error: %v", err)
	}

	// The writer produces exactly the reference layout.
	if want := binarySTL("tetra", normals, facets); !bytes.Equal(buf.Bytes(), want) {
		t.Error("encoded bytes differ from reference layout")
	}

	decoded, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if decoded.Name != original.Name {
		t.Errorf("Name = %q, want %q", decoded.Name, original.Name)
	}
	if decoded.FacetCount() != original.FacetCount() {
		t.Fatalf("FacetCount = %d, want %d", decoded.FacetCount(), original.FacetCount())
	}
	for i := range original.Facets {
		if decoded.Facets[i] != original.Facets[i] {
			t.Errorf("Facets[%d] = %v, want %v", i, decoded.Facets[i], original.Facets[i])
		}
		if decoded.Normals[i] != original.Normals[i] {
			t.Errorf("Normals[%d] = %v, want %v", i, decoded.Normals[i], original.Normals[i])
		}
	}
}

func TestTextRoundTrip(t *testing.T) {
	// Awkward values: exact float32 narrowing must survive the text form.
	original := &Mesh{
		Name:    "precision",
		Normals: []geometry.Vec3{{0.1, -2.7182817, 1e-38}},
		Facets: []Facet{{
			{3.1415927, 0, -0.33333334},
			{1e20, -1e-20, 0.5},
			{123456.79, 7, -0.1},
		}},
	}

	var buf bytes.Buffer
	if err := EncodeText(original, &buf); err != nil {
		t.Fatalf("EncodeText error: %v", err)
	}

	decoded, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if decoded.Name != "precision" {
		t.Errorf("Name = %q, want %q", decoded.Name, "precision")
	}
	if decoded.FacetCount() != 1 {
		t.Fatalf("FacetCount = %d, want 1", decoded.FacetCount())
	}
	if decoded.Facets[0] != original.Facets[0] {
		t.Errorf("Facets[0] = %v, want %v", decoded.Facets[0], original.Facets[0])
	}
	if decoded.Normals[0] != original.Normals[0] {
		t.Errorf("Normals[0] = %v, want %v", decoded.Normals[0], original.Normals[0])
	}
}

func TestTextEncodingDefaultName(t *testing.T) {
	normals, facets := tetraFacets()
	m := &Mesh{Facets: facets[:1], Normals: normals[:1]}

	var buf bytes.Buffer
	if err := EncodeText(m, &buf); err != nil {
		t.Fatalf("EncodeText error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("solid mesh\n")) {
		t.Errorf("unnamed mesh should encode as \"solid mesh\": %q", buf.String()[:20])
	}
}

func TestEncodeMismatchedNormals(t *testing.T) {
	_, facets := tetraFacets()
	m := &Mesh{Facets: facets, Normals: nil}

	var buf bytes.Buffer
	if err := EncodeBinary(m, &buf); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("EncodeBinary error = %v, want INVALID_INPUT", err)
	}
	if err := EncodeText(m, &buf); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("EncodeText error = %v, want INVALID_INPUT", err)
	}
}
