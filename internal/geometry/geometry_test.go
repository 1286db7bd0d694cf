package geometry

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func pts(xy ...float64) []Point {
	out := make([]Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, Point{X: xy[i], Y: xy[i+1]})
	}
	return out
}

func TestMeasure_KnownShapes(t *testing.T) {
	tests := []struct {
		name     string
		points   []Point
		wantArea float64
		wantBox  [4]int
	}{
		{"unit square", pts(0, 0, 1, 0, 1, 1, 0, 1), 1.0, [4]int{0, 0, 1, 1}},
		{"triangle", pts(0, 0, 4, 0, 0, 3), 6.0, [4]int{0, 0, 4, 3}},
		{"offset rectangle", pts(10, 20, 30, 20, 30, 25, 10, 25), 100.0, [4]int{10, 20, 20, 5}},
		{"fractional extremes truncate", pts(1.9, 2.7, 5.5, 2.7, 5.5, 8.2), 0.5 * 3.6 * 5.5, [4]int{1, 2, 4, 6}},
		{"negative coordinates truncate toward zero", pts(-1.5, -1.5, 2.5, -1.5, 2.5, 2.5, -1.5, 2.5), 16.0, [4]int{-1, -1, 3, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Measure(tt.points)
			if err != nil {
				t.Fatalf("Measure() error = %v", err)
			}
			if math.Abs(got.Area-tt.wantArea) > 1e-9 {
				t.Errorf("Area = %v, want %v", got.Area, tt.wantArea)
			}
			if got.BBox.Array() != tt.wantBox {
				t.Errorf("BBox = %v, want %v", got.BBox.Array(), tt.wantBox)
			}
			if len(got.Segmentation) != 2*len(tt.points) {
				t.Errorf("Segmentation length = %d, want %d", len(got.Segmentation), 2*len(tt.points))
			}
		})
	}
}

func TestArea_InvariantUnderReversalAndRotation(t *testing.T) {
	poly := pts(0, 0, 7, 1, 9, 6, 4, 9, -2, 5)
	want, err := Area(poly)
	if err != nil {
		t.Fatalf("Area() error = %v", err)
	}

	reversed := slices.Clone(poly)
	slices.Reverse(reversed)
	if got, _ := Area(reversed); math.Abs(got-want) > 1e-9 {
		t.Errorf("reversed area = %v, want %v", got, want)
	}

	for k := 1; k < len(poly); k++ {
		rotated := append(slices.Clone(poly[k:]), poly[:k]...)
		if got, _ := Area(rotated); math.Abs(got-want) > 1e-9 {
			t.Errorf("rotation %d area = %v, want %v", k, got, want)
		}
	}
}

func TestMeasure_TooFewVertices(t *testing.T) {
	for _, p := range [][]Point{nil, pts(1, 1), pts(0, 0, 1, 1)} {
		if _, err := Measure(p); !errors.Is(err, ErrInvalidPolygon) {
			t.Errorf("Measure(%v) error = %v, want ErrInvalidPolygon", p, err)
		}
	}
}

func TestFlatten_Order(t *testing.T) {
	got := Flatten(pts(1, 2, 3, 4, 5, 6))
	want := []float64{1, 2, 3, 4, 5, 6}
	if !slices.Equal(got, want) {
		t.Fatalf("Flatten() = %v, want %v", got, want)
	}
}
