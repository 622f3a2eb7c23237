package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func square(side float64) Polygon {
	return Polygon{
		{X: 0, Y: 0}, {X: side, Y: 0}, {X: side, Y: side}, {X: 0, Y: side},
	}
}

func TestPolygonArea(t *testing.T) {
	p := square(2)
	assert.InDelta(t, 4.0, p.Area(), 1e-12)

	// Cyclic rotation of the vertex list keeps the area.
	rotated := Polygon{p[2], p[3], p[0], p[1]}
	assert.InDelta(t, p.Area(), rotated.Area(), 1e-12)

	// Reversed winding keeps the area positive.
	reversed := Polygon{p[3], p[2], p[1], p[0]}
	assert.InDelta(t, p.Area(), reversed.Area(), 1e-12)

	assert.Equal(t, 0.0, Polygon{{X: 0, Y: 0}, {X: 1, Y: 1}}.Area())
}

func TestPolygonPerimeter(t *testing.T) {
	p := square(2)
	assert.InDelta(t, 8.0, p.Perimeter(), 1e-12)

	reversed := Polygon{p[3], p[2], p[1], p[0]}
	assert.InDelta(t, p.Perimeter(), reversed.Perimeter(), 1e-12)
}

func TestPolygonNormal(t *testing.T) {
	n, ok := square(1).Normal()
	require.True(t, ok)
	assert.InDelta(t, 0.0, n.X, 1e-12)
	assert.InDelta(t, 0.0, n.Y, 1e-12)
	assert.InDelta(t, 1.0, n.Z, 1e-12)

	_, ok = Polygon{{X: 0, Y: 0}, {X: 1, Y: 0}}.Normal()
	assert.False(t, ok)

	_, ok = Polygon{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}.Normal()
	assert.False(t, ok)
}

func TestPolygonContains(t *testing.T) {
	p := square(2)
	assert.True(t, p.Contains(Point2{X: 1, Y: 1}))
	assert.False(t, p.Contains(Point2{X: 3, Y: 1}))
	assert.False(t, p.Contains(Point2{X: -0.5, Y: 0.5}))
}

func TestPolygonRotatedMirrored(t *testing.T) {
	p := Polygon{{X: 1, Y: 0}}
	r := p.Rotated(math.Pi / 2)
	assert.InDelta(t, 0.0, r[0].X, 1e-12)
	assert.InDelta(t, 1.0, r[0].Y, 1e-12)

	m := Polygon{{X: 1, Y: 2}}.MirroredY()
	assert.Equal(t, Point2{X: 1, Y: -2}, m[0])
}

func TestNormalize(t *testing.T) {
	assert.InDelta(t, 100.0, Normalize(100.0, 0, 360), 1e-12)
	assert.InDelta(t, 260.0, Normalize(-100.0, 0, 360), 1e-12)
	assert.InDelta(t, 40.0, Normalize(400.0, 0, 360), 1e-12)
	assert.InDelta(t, -170.0, Normalize(190.0, -180, 180), 1e-12)
}

func TestTiltClassOf(t *testing.T) {
	assert.Equal(t, TiltTop, TiltClassOf(0))
	assert.Equal(t, TiltTop, TiltClassOf(60))
	assert.Equal(t, TiltSide, TiltClassOf(90))
	assert.Equal(t, TiltBottom, TiltClassOf(180))
	assert.Equal(t, TiltSide, TiltClassOf(270))
	assert.Equal(t, TiltTop, TiltClassOf(300))
	assert.Equal(t, TiltTop, TiltClassOf(360))
}

func TestOrientationOf(t *testing.T) {
	assert.Equal(t, South, OrientationOf(0))
	assert.Equal(t, SouthEast, OrientationOf(45))
	assert.Equal(t, East, OrientationOf(90))
	assert.Equal(t, North, OrientationOf(180))
	assert.Equal(t, West, OrientationOf(-90))
	assert.Equal(t, SouthWest, OrientationOf(-45))
	assert.Equal(t, South, OrientationOf(-10))
}

func TestWallGeomToGlobal(t *testing.T) {
	pos := Point3{X: 10, Y: 5, Z: 3}
	g := WallGeom{Tilt: 90, Azimuth: 0, Position: &pos, Polygon: square(2)}

	tr, ok := g.ToGlobal()
	require.True(t, ok)

	// Tilt 90 maps local +Y onto global +Z.
	p := tr.Apply(Point3{X: 1, Y: 1})
	assert.InDelta(t, 11.0, p.X, 1e-9)
	assert.InDelta(t, 5.0, p.Y, 1e-9)
	assert.InDelta(t, 4.0, p.Z, 1e-9)

	inv, ok := g.ToLocal()
	require.True(t, ok)
	back := inv.Apply(p)
	assert.InDelta(t, 1.0, back.X, 1e-9)
	assert.InDelta(t, 1.0, back.Y, 1e-9)
	assert.InDelta(t, 0.0, back.Z, 1e-9)
}

func TestWallGeomWithoutPosition(t *testing.T) {
	g := WallGeom{Tilt: 90, Polygon: square(1)}
	_, ok := g.ToGlobal()
	assert.False(t, ok)
	_, ok = g.ToLocal()
	assert.False(t, ok)

	box := g.AABB()
	assert.True(t, box.Min.X > box.Max.X)
}

func TestWallGeomNormal(t *testing.T) {
	pos := Point3{}
	// Vertical wall facing south (azimuth 0): normal points to global -Y.
	g := WallGeom{Tilt: 90, Azimuth: 0, Position: &pos, Polygon: square(1)}
	n, ok := g.Normal()
	require.True(t, ok)
	assert.InDelta(t, 0.0, n.X, 1e-9)
	assert.InDelta(t, -1.0, n.Y, 1e-9)
	assert.InDelta(t, 0.0, n.Z, 1e-9)

	// Horizontal roof: normal points straight up.
	g = WallGeom{Tilt: 0, Azimuth: 0, Position: &pos, Polygon: square(1)}
	n, ok = g.Normal()
	require.True(t, ok)
	assert.InDelta(t, 1.0, n.Z, 1e-9)
}

func TestAABBIntersectRay(t *testing.T) {
	box := AABB{Min: Point3{X: 0, Y: 0, Z: 0}, Max: Point3{X: 1, Y: 1, Z: 1}}

	dist, hit := box.IntersectRay(NewRay(Point3{X: 0.5, Y: 0.5, Z: -2}, r3.Vec{Z: 1}))
	require.True(t, hit)
	assert.InDelta(t, 2.0, dist, 1e-9)

	_, hit = box.IntersectRay(NewRay(Point3{X: 0.5, Y: 0.5, Z: 2}, r3.Vec{Z: 1}))
	assert.False(t, hit, "box behind the origin")

	_, hit = box.IntersectRay(NewRay(Point3{X: 5, Y: 0.5, Z: -2}, r3.Vec{Z: 1}))
	assert.False(t, hit, "ray misses the box")
}

func TestRayIntersectPolygon(t *testing.T) {
	pos := Point3{}
	g := WallGeom{Tilt: 0, Azimuth: 0, Position: &pos, Polygon: square(2)}
	toLocal, ok := g.ToLocal()
	require.True(t, ok)
	normal, ok := g.Polygon.Normal()
	require.True(t, ok)

	ray := NewRay(Point3{X: 1, Y: 1, Z: 5}, r3.Vec{Z: -1})
	dist, hit := ray.IntersectPolygon(g.Polygon, toLocal, normal)
	require.True(t, hit)
	assert.InDelta(t, 5.0, dist, 1e-9)

	// Hit point outside the polygon.
	ray = NewRay(Point3{X: 5, Y: 1, Z: 5}, r3.Vec{Z: -1})
	_, hit = ray.IntersectPolygon(g.Polygon, toLocal, normal)
	assert.False(t, hit)

	// Ray parallel to the plane.
	ray = NewRay(Point3{X: 1, Y: 1, Z: 5}, r3.Vec{X: 1})
	_, hit = ray.IntersectPolygon(g.Polygon, toLocal, normal)
	assert.False(t, hit)

	// Plane behind the origin.
	ray = NewRay(Point3{X: 1, Y: 1, Z: -5}, r3.Vec{Z: -1})
	_, hit = ray.IntersectPolygon(g.Polygon, toLocal, normal)
	assert.False(t, hit)
}
