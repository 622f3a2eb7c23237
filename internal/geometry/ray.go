package geometry

import (
	"gonum.org/v1/gonum/spatial/r3"
)

const rayEpsilon = 1e-5

// Ray is a half-line with origin and normalized direction in global
// coordinates.
type Ray struct {
	Origin Point3
	Dir    r3.Vec
}

// NewRay builds a ray, normalizing the direction.
func NewRay(origin Point3, dir r3.Vec) Ray {
	return Ray{Origin: origin, Dir: r3.Unit(dir)}
}

// IntersectPolygon computes the intersection of the ray with a planar 2D
// polygon. toLocal maps global coordinates into the polygon frame and
// normal is the polygon's local unit normal. It returns the distance t
// along the ray such that the hit point is Origin + t*Dir.
//
// The ray is transformed into the polygon frame, intersected with the XY
// plane, and the hit point is tested for polygon membership.
func (r Ray) IntersectPolygon(polygon Polygon, toLocal Transform, normal r3.Vec) (float64, bool) {
	if len(polygon) < 3 {
		return 0, false
	}
	o := toLocal.Apply(r.Origin)
	d := toLocal.ApplyDir(r.Dir)

	denominator := r3.Dot(normal, d)
	if denominator > -rayEpsilon && denominator < rayEpsilon {
		// Ray parallel to the polygon plane.
		return 0, false
	}

	p0 := r3.Vec{X: polygon[0].X, Y: polygon[0].Y}
	t := r3.Dot(normal, r3.Sub(p0, o)) / denominator
	if t < 0 {
		// Intersection behind the origin: a line hit, not a ray hit.
		return 0, false
	}

	hit := r3.Add(o, r3.Scale(t, d))
	if !polygon.Contains(Point2{X: hit.X, Y: hit.Y}) {
		return 0, false
	}
	return t, true
}
