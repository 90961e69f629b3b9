package geometry

import (
	"math"
	"testing"
)

func TestSub(t *testing.T) {
	got := Vec3{3, 2, 1}.Sub(Vec3{1, 1, 1})
	if want := (Vec3{2, 1, 0}); got != want {
		t.Errorf("Sub = %v, want %v", got, want)
	}
}

func TestCross(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
		want Vec3
	}{
		{"x cross y", Vec3{1, 0, 0}, Vec3{0, 1, 0}, Vec3{0, 0, 1}},
		{"y cross x", Vec3{0, 1, 0}, Vec3{1, 0, 0}, Vec3{0, 0, -1}},
		{"parallel", Vec3{2, 2, 2}, Vec3{1, 1, 1}, Vec3{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cross(tt.b); got != tt.want {
				t.Errorf("Cross = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLength(t *testing.T) {
	if got := (Vec3{3, 4, 0}).Length(); got != 5 {
		t.Errorf("Length = %v, want 5", got)
	}
	if got := (Vec3{}).Length(); got != 0 {
		t.Errorf("zero Length = %v, want 0", got)
	}
}

func TestDistance(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{1, 2, 3}
	if got := a.Distance(b); got != 0 {
		t.Errorf("Distance to self = %v, want 0", got)
	}

	c := Vec3{4, 6, 3}
	if got := a.Distance(c); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
	if a.Distance(c) != c.Distance(a) {
		t.Error("Distance should be symmetric")
	}
}

func TestCentroid(t *testing.T) {
	got := Centroid(Vec3{0, 0, 0}, Vec3{3, 0, 0}, Vec3{0, 3, 3})
	if want := (Vec3{1, 1, 1}); got != want {
		t.Errorf("Centroid = %v, want %v", got, want)
	}
}

func TestLengthUsesFloat64(t *testing.T) {
	// Components near the float32 limit would overflow a float32 square;
	// the norm is computed in float64 and stays finite.
	v := Vec3{3e38, 0, 0}
	if got := v.Length(); math.IsInf(got, 0) {
		t.Error("Length overflowed, want finite float64 result")
	}
}
