package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// AABB is an axis-aligned bounding box given by its extreme points.
type AABB struct {
	Min Point3
	Max Point3
}

// EmptyAABB returns the identity element for Join: a box that contains
// nothing and disappears when joined with any real box.
func EmptyAABB() AABB {
	return AABB{
		Min: Point3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: Point3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
}

// Center returns the box midpoint.
func (b AABB) Center() Point3 {
	return r3.Scale(0.5, r3.Add(b.Min, b.Max))
}

// Extend grows the box to contain point p.
func (b AABB) Extend(p Point3) AABB {
	return AABB{
		Min: Point3{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)},
		Max: Point3{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)},
	}
}

// Join returns the smallest box containing both boxes.
func (b AABB) Join(other AABB) AABB {
	return b.Extend(other.Min).Extend(other.Max)
}

// IntersectRay reports whether the ray hits the box, using the slab
// method. Divisions by a zero direction component produce infinities that
// the min/max comparisons handle correctly.
func (b AABB) IntersectRay(ray Ray) (float64, bool) {
	idx := 1 / ray.Dir.X
	idy := 1 / ray.Dir.Y
	idz := 1 / ray.Dir.Z

	t1 := (b.Min.X - ray.Origin.X) * idx
	t2 := (b.Max.X - ray.Origin.X) * idx
	t3 := (b.Min.Y - ray.Origin.Y) * idy
	t4 := (b.Max.Y - ray.Origin.Y) * idy
	t5 := (b.Min.Z - ray.Origin.Z) * idz
	t6 := (b.Max.Z - ray.Origin.Z) * idz

	tmin := math.Max(math.Max(math.Min(t1, t2), math.Min(t3, t4)), math.Min(t5, t6))
	tmax := math.Min(math.Min(math.Max(t1, t2), math.Max(t3, t4)), math.Max(t5, t6))

	// Box behind the ray origin, or no overlap between slabs.
	if tmax < 0 || tmin > tmax {
		return 0, false
	}
	return tmin, true
}
