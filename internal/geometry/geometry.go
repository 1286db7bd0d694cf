// Package geometry derives COCO area, bounding box and segmentation from a
// polygon's vertex list.
package geometry

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidPolygon is returned for polygons with fewer than MinVertices.
var ErrInvalidPolygon = errors.New("invalid polygon")

// MinVertices is the smallest vertex count accepted.
const MinVertices = 3

// Point is one (x, y) vertex in pixel coordinates.
type Point struct {
	X, Y float64
}

// BBox is an integer [xmin, ymin, width, height] box.
type BBox struct {
	X, Y, Width, Height int
}

// Array returns the box in COCO order.
func (b BBox) Array() [4]int { return [4]int{b.X, b.Y, b.Width, b.Height} }

// Shape bundles everything the assembler needs for one polygon.
type Shape struct {
	Area         float64
	BBox         BBox
	Segmentation []float64
}

func check(points []Point) error {
	if len(points) < MinVertices {
		return fmt.Errorf("%w: polygon has %d vertices, need at least %d", ErrInvalidPolygon, len(points), MinVertices)
	}
	return nil
}

// Area returns the unsigned shoelace area of a simple polygon. The vertex
// list is treated as closed; winding order does not matter.
func Area(points []Point) (float64, error) {
	if err := check(points); err != nil {
		return 0, err
	}
	var s1, s2 float64
	n := len(points)
	for i, p := range points {
		next := points[(i+1)%n]
		s1 += p.X * next.Y
		s2 += p.Y * next.X
	}
	return 0.5 * math.Abs(s1-s2), nil
}

// BoundingBox returns the axis-aligned box of the polygon. Extremes are
// truncated toward zero before width and height are taken, so the box can
// be one pixel narrower than the float extent.
func BoundingBox(points []Point) (BBox, error) {
	if err := check(points); err != nil {
		return BBox{}, err
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	xmin, ymin := int(minX), int(minY)
	xmax, ymax := int(maxX), int(maxY)
	return BBox{X: xmin, Y: ymin, Width: xmax - xmin, Height: ymax - ymin}, nil
}

// Flatten returns [x1, y1, x2, y2, ...].
func Flatten(points []Point) []float64 {
	out := make([]float64, 0, 2*len(points))
	for _, p := range points {
		out = append(out, p.X, p.Y)
	}
	return out
}

// Measure computes area, bounding box and segmentation in one call.
func Measure(points []Point) (Shape, error) {
	area, err := Area(points)
	if err != nil {
		return Shape{}, err
	}
	box, err := BoundingBox(points)
	if err != nil {
		return Shape{}, err
	}
	return Shape{Area: area, BBox: box, Segmentation: Flatten(points)}, nil
}
