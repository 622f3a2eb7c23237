// Package geometry provides the planar and spatial primitives used by the
// envelope model: 2D polygons with an attached pose (tilt, azimuth,
// position), axis-aligned bounding boxes and rays.
//
// Angle conventions follow UNE-EN ISO 52016-1: tilt is measured from the
// horizontal ([0,180], 0 faces straight up), azimuth is measured from due
// south, positive toward east, negative toward west ([-180,180]).
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Point2 is a point or vector in the local XY plane.
type Point2 = r2.Vec

// Point3 is a point or vector in global building coordinates.
type Point3 = r3.Vec

// Polygon is a planar polygon in local 2D coordinates. Winding and the
// direction of the first edge define the element's own frame.
type Polygon []Point2

// Area returns the gross area enclosed by the polygon (m²), via the
// shoelace formula. It is invariant under cyclic rotation of the vertex
// list and independent of winding.
func (p Polygon) Area() float64 {
	n := len(p)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i, v := range p {
		w := p[(i+1)%n]
		sum += v.X*w.Y - v.Y*w.X
	}
	return math.Abs(0.5 * sum)
}

// Perimeter returns the polygon perimeter (m). It is invariant under
// reversal of the vertex winding.
func (p Polygon) Perimeter() float64 {
	n := len(p)
	if n < 2 {
		return 0
	}
	sum := 0.0
	for i, v := range p {
		sum += r2.Norm(r2.Sub(v, p[(i+1)%n]))
	}
	return sum
}

// Normal returns the unit normal of the planar polygon in its own local
// frame, or false when the polygon has fewer than three vertices or its
// leading vertices are collinear.
func (p Polygon) Normal() (r3.Vec, bool) {
	if len(p) < 3 {
		return r3.Vec{}, false
	}
	v0 := r2.Sub(p[1], p[0])
	v1 := r2.Sub(p[2], p[0])
	n := r3.Cross(r3.Vec{X: v0.X, Y: v0.Y}, r3.Vec{X: v1.X, Y: v1.Y})
	if r3.Norm(n) < 1e-9 {
		return r3.Vec{}, false
	}
	return r3.Unit(n), true
}

// Contains reports whether the 2D point lies inside the polygon, using a
// crossing-count test that avoids computing the intersection points.
func (p Polygon) Contains(pt Point2) bool {
	inside := false
	n := len(p)
	if n < 3 {
		return false
	}
	vj := p[n-1]
	y0 := vj.Y >= pt.Y
	for _, vi := range p {
		y1 := vi.Y >= pt.Y
		if y0 != y1 && (((vi.Y-pt.Y)*(vj.X-vi.X) >= (vi.X-pt.X)*(vj.Y-vi.Y)) == y1) {
			inside = !inside
		}
		y0 = y1
		vj = vi
	}
	return inside
}

// Rotated returns a copy of the polygon rotated by alpha radians
// (counter-clockwise) about the local origin.
func (p Polygon) Rotated(alpha float64) Polygon {
	sin, cos := math.Sincos(alpha)
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = Point2{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
	}
	return out
}

// MirroredY returns a copy of the polygon mirrored about the local X axis
// (y -> -y for every vertex).
func (p Polygon) MirroredY() Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = Point2{X: v.X, Y: -v.Y}
	}
	return out
}

// EdgeVertices returns the pair of vertices that start and end the i-th
// edge (0-based), wrapping around for the closing edge.
func (p Polygon) EdgeVertices(i int) (Point2, Point2, bool) {
	n := len(p)
	if n < 2 || i < 0 || i >= n {
		return Point2{}, Point2{}, false
	}
	return p[i], p[(i+1)%n], true
}

// Normalize wraps value into the interval [start, end).
func Normalize(value, start, end float64) float64 {
	width := end - start
	offset := value - start
	return offset - math.Floor(offset/width)*width + start
}

// Round2 rounds to 2 decimal places.
func Round2(v float64) float64 { return math.Round(v*100) / 100 }

// Round3 rounds to 3 decimal places.
func Round3(v float64) float64 { return math.Round(v*1000) / 1000 }
