package match

import (
	"math"
	"testing"
)

func TestCosineIdenticalVectors(t *testing.T) {
	v := []float32{0.5, 0.25, 0.75}
	got := Cosine(v, v)
	if math.Abs(float64(got)-1.0) > 1e-6 {
		t.Errorf("Cosine(v, v) = %v, want 1.0", got)
	}
}

func TestCosineOrthogonalVectors(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{0, 1}
	if got := Cosine(a, b); got != 0 {
		t.Errorf("Cosine(orthogonal) = %v, want 0", got)
	}
}

func TestCosineOppositeVectors(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{-1, -2, -3}
	got := Cosine(a, b)
	if math.Abs(float64(got)+1.0) > 1e-6 {
		t.Errorf("Cosine(opposite) = %v, want -1.0", got)
	}
}

func TestCosineSymmetry(t *testing.T) {
	a := []float32{0.1, 0.9, 0.4}
	b := []float32{0.7, 0.2, 0.5}
	if Cosine(a, b) != Cosine(b, a) {
		t.Error("cosine similarity must be symmetric")
	}
}

func TestCosineDegenerateInputs(t *testing.T) {
	tests := []struct {
		name string
		a    []float32
		b    []float32
	}{
		{"both empty", nil, nil},
		{"first empty", nil, []float32{1, 2}},
		{"second empty", []float32{1, 2}, nil},
		{"length mismatch", []float32{1, 2}, []float32{1, 2, 3}},
		{"zero magnitude first", []float32{0, 0, 0}, []float32{1, 2, 3}},
		{"zero magnitude second", []float32{1, 2, 3}, []float32{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cosine(tt.a, tt.b); got != 0 {
				t.Errorf("Cosine(%v, %v) = %v, want 0", tt.a, tt.b, got)
			}
		})
	}
}

func TestCosineScaleInvariant(t *testing.T) {
	a := []float32{0.3, 0.6, 0.9}
	b := []float32{0.6, 1.2, 1.8}
	got := Cosine(a, b)
	if math.Abs(float64(got)-1.0) > 1e-6 {
		t.Errorf("Cosine of scaled vector = %v, want 1.0", got)
	}
}
