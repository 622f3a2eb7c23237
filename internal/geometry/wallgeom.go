package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// TiltClass groups an element's inclination into floor-like, wall-like and
// roof-like positions.
type TiltClass int

const (
	// TiltTop is a roof-like element (tilt <= 60 degrees).
	TiltTop TiltClass = iota
	// TiltSide is a wall-like element.
	TiltSide
	// TiltBottom is a floor-like element.
	TiltBottom
)

func (t TiltClass) String() string {
	switch t {
	case TiltTop:
		return "TOP"
	case TiltSide:
		return "SIDE"
	case TiltBottom:
		return "BOTTOM"
	}
	return "UNKNOWN"
}

// MarshalText renders the class by name in JSON output.
func (t TiltClass) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// TiltClassOf derives the tilt class from a tilt angle in degrees.
func TiltClassOf(tilt float64) TiltClass {
	t := Normalize(tilt, 0, 360)
	switch {
	case t <= 60:
		return TiltTop
	case t < 120:
		return TiltSide
	case t < 240:
		return TiltBottom
	case t < 300:
		return TiltSide
	default:
		return TiltTop
	}
}

// Orientation names the compass orientation of a vertical element, or HZ
// for horizontal ones.
type Orientation int

const (
	North Orientation = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
	Horizontal
)

var orientationNames = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW", "HZ"}

func (o Orientation) String() string {
	if int(o) < len(orientationNames) {
		return orientationNames[o]
	}
	return "HZ"
}

// MarshalText renders the orientation by name, also when used as a map
// key in JSON output.
func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// OrientationOf maps an azimuth (S=0, E=+90, W=-90) to its compass sector.
// Sector limits follow the CTE DB-HE orientation ranges.
func OrientationOf(azimuth float64) Orientation {
	az := Normalize(azimuth, 0, 360)
	switch {
	case az < 18:
		return South
	case az < 69:
		return SouthEast
	case az < 120:
		return East
	case az < 157.5:
		return NorthEast
	case az < 202.5:
		return North
	case az < 240:
		return NorthWest
	case az < 291:
		return West
	case az < 342:
		return SouthWest
	default:
		return South
	}
}

// Orientations lists every compass sector plus Horizontal, in reporting
// order.
func Orientations() []Orientation {
	return []Orientation{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest, Horizontal}
}

// WallGeom is the pose and shape shared by opaque elements and shades: a
// local 2D polygon plus the tilt/azimuth/position that place it in global
// building coordinates. A nil Position marks an incomplete geometric
// definition.
type WallGeom struct {
	Tilt     float64
	Azimuth  float64
	Position *Point3
	Polygon  Polygon
}

// Transform maps points between the local polygon frame and global
// building coordinates. It composes a tilt rotation about X, an azimuth
// rotation about Z and a translation.
type Transform struct {
	pos  r3.Vec
	zrot r3.Rotation
	xrot r3.Rotation
	inv  bool
}

// Apply maps p through the transform.
func (t Transform) Apply(p Point3) Point3 {
	if t.inv {
		return t.xrot.Rotate(t.zrot.Rotate(r3.Sub(p, t.pos)))
	}
	return r3.Add(t.pos, t.zrot.Rotate(t.xrot.Rotate(p)))
}

// ApplyDir maps a direction vector through the transform, ignoring the
// translation component.
func (t Transform) ApplyDir(v r3.Vec) r3.Vec {
	if t.inv {
		return t.xrot.Rotate(t.zrot.Rotate(v))
	}
	return t.zrot.Rotate(t.xrot.Rotate(v))
}

// ToGlobal returns the local-to-global transform, or false when the
// element has no position and its global pose is undefined.
func (g *WallGeom) ToGlobal() (Transform, bool) {
	if g.Position == nil {
		return Transform{}, false
	}
	return Transform{
		pos:  *g.Position,
		zrot: r3.NewRotation(g.Azimuth*math.Pi/180, r3.Vec{Z: 1}),
		xrot: r3.NewRotation(g.Tilt*math.Pi/180, r3.Vec{X: 1}),
	}, true
}

// ToLocal returns the global-to-local transform, or false when the element
// has no position.
func (g *WallGeom) ToLocal() (Transform, bool) {
	if g.Position == nil {
		return Transform{}, false
	}
	return Transform{
		pos:  *g.Position,
		zrot: r3.NewRotation(-g.Azimuth*math.Pi/180, r3.Vec{Z: 1}),
		xrot: r3.NewRotation(-g.Tilt*math.Pi/180, r3.Vec{X: 1}),
		inv:  true,
	}, true
}

// Normal returns the element's outward unit normal in global coordinates,
// or false for a degenerate polygon.
func (g *WallGeom) Normal() (r3.Vec, bool) {
	n, ok := g.Polygon.Normal()
	if !ok {
		return r3.Vec{}, false
	}
	zrot := r3.NewRotation(g.Azimuth*math.Pi/180, r3.Vec{Z: 1})
	xrot := r3.NewRotation(g.Tilt*math.Pi/180, r3.Vec{X: 1})
	return zrot.Rotate(xrot.Rotate(n)), true
}

// Area returns the gross area of the element (m²).
func (g *WallGeom) Area() float64 { return g.Polygon.Area() }

// Perimeter returns the element perimeter (m).
func (g *WallGeom) Perimeter() float64 { return g.Polygon.Perimeter() }

// AABB returns the axis-aligned bounding box of the polygon in global
// coordinates. Elements without a complete pose produce the empty box.
func (g *WallGeom) AABB() AABB {
	tr, ok := g.ToGlobal()
	if !ok {
		return EmptyAABB()
	}
	box := EmptyAABB()
	for _, p := range g.Polygon {
		box = box.Extend(tr.Apply(Point3{X: p.X, Y: p.Y}))
	}
	return box
}
