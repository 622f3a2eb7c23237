package convert

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/vk/thermenv/internal/geometry"
	"github.com/vk/thermenv/internal/record"
)

// DegenerateGeometryError reports a polygon with near-zero area from
// collinear or duplicate points.
type DegenerateGeometryError struct {
	Element string
}

func (e *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("%s: degenerate polygon (collinear or duplicate points)", e.Element)
}

// bdlAzimuthToModel converts a source azimuth (from north, clockwise,
// E+/W-) to the model convention (from south, counter-clockwise, E+,
// W-), wrapped to [-180, 180).
func bdlAzimuthToModel(angle float64) float64 {
	return geometry.Normalize(180.0-angle, -180.0, 180.0)
}

// parsePolygon reads the V1..Vn vertex attributes of a polygon record.
// Each value is an "x,y" pair.
func parsePolygon(rec *record.Record) (geometry.Polygon, error) {
	var poly geometry.Polygon
	for i := 1; ; i++ {
		v, ok := rec.Attrs[fmt.Sprintf("V%d", i)]
		if !ok {
			break
		}
		parts := strings.SplitN(v, ",", 2)
		if len(parts) != 2 {
			return nil, &record.AttrError{
				Record: rec.Name, Attr: fmt.Sprintf("V%d", i),
				Reason: fmt.Sprintf("not an x,y pair: %q", v),
			}
		}
		x, errX := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errX != nil || errY != nil {
			return nil, &record.AttrError{
				Record: rec.Name, Attr: fmt.Sprintf("V%d", i),
				Reason: fmt.Sprintf("not an x,y pair: %q", v),
			}
		}
		poly = append(poly, geometry.Point2{X: x, Y: y})
	}
	if len(poly) < 3 {
		return nil, &DegenerateGeometryError{Element: rec.Name}
	}
	return poly, nil
}

// spaceGeom is the geometric context a space provides to its elements.
type spaceGeom struct {
	x, y, z float64
	height  float64
	// azimuth is the space rotation relative to the building, source
	// convention.
	azimuth float64
	polygon geometry.Polygon
}

// wallGeometry reconstructs an element's pose and polygon from its raw
// record and its owning space, for any of the three source conventions:
// explicit polygon, space-inherited TOP/BOTTOM, or vertex-relative.
//
// The element position is first expressed in floor coordinates and then
// rotated by the accumulated space and building deviation; the sign flips
// because the source measures angles clockwise.
func wallGeometry(rec *record.Record, sg *spaceGeom, wallPolygon geometry.Polygon, globalDeviation float64) (geometry.WallGeom, error) {
	location := rec.StrOr("location", "")
	tilt := rec.FloatOr("tilt", defaultTilt(location))
	wallAzimuth := rec.FloatOr("azimuth", 0.0)
	wx := rec.FloatOr("x", 0)
	wy := rec.FloatOr("y", 0)
	wz := rec.FloatOr("z", 0)

	angle := -(sg.azimuth + globalDeviation) * math.Pi / 180
	rot := r3.NewRotation(angle, r3.Vec{Z: 1})

	var base geometry.Point3
	switch {
	case location != "" && location != "TOP" && location != "BOTTOM":
		idx, err := edgeIndex(location)
		if err != nil {
			return geometry.WallGeom{}, fmt.Errorf("%s: %w", rec.Name, err)
		}
		p1, _, ok := sg.polygon.EdgeVertices(idx)
		if !ok {
			return geometry.WallGeom{}, fmt.Errorf("%s: space polygon has no edge %q", rec.Name, location)
		}
		base = geometry.Point3{X: p1.X + wx + sg.x, Y: p1.Y + wy + sg.y, Z: wz + sg.z}
	default:
		height := 0.0
		// A TOP element inheriting the space polygon sits at the space
		// ceiling; one with its own polygon already carries the final
		// elevation in z.
		if location == "TOP" && wallPolygon == nil {
			height = sg.height
		}
		base = geometry.Point3{X: wx + sg.x, Y: wy + sg.y, Z: wz + sg.z + height}
	}
	position := rot.Rotate(base)

	var polygon geometry.Polygon
	switch {
	case wallPolygon != nil:
		polygon = wallPolygon
	case location == "TOP":
		az := bdlAzimuthToModel(sg.azimuth + wallAzimuth)
		polygon = sg.polygon.Rotated(az * math.Pi / 180)
	case location == "BOTTOM":
		// Mirror about X so the 180 degree tilt leaves the polygon
		// right-handed in the global frame.
		az := bdlAzimuthToModel(sg.azimuth + wallAzimuth)
		polygon = sg.polygon.Rotated(az * math.Pi / 180).MirroredY()
	case location != "":
		idx, err := edgeIndex(location)
		if err != nil {
			return geometry.WallGeom{}, fmt.Errorf("%s: %w", rec.Name, err)
		}
		p1, p2, ok := sg.polygon.EdgeVertices(idx)
		if !ok {
			return geometry.WallGeom{}, fmt.Errorf("%s: space polygon has no edge %q", rec.Name, location)
		}
		width := math.Hypot(p2.X-p1.X, p2.Y-p1.Y)
		polygon = geometry.Polygon{
			{X: 0, Y: 0}, {X: width, Y: 0}, {X: width, Y: sg.height}, {X: 0, Y: sg.height},
		}
	default:
		return geometry.WallGeom{}, fmt.Errorf("%s: no polygon and no location", rec.Name)
	}

	azimuth := geometry.Round2(bdlAzimuthToModel(globalDeviation + sg.azimuth + wallAzimuth))
	return geometry.WallGeom{
		Tilt:     geometry.Round2(tilt),
		Azimuth:  azimuth,
		Position: &position,
		Polygon:  polygon,
	}, nil
}

// defaultTilt maps a location to its implied tilt when the record gives
// none: ceilings face up, floors face down, everything else is vertical.
func defaultTilt(location string) float64 {
	switch location {
	case "TOP":
		return 0
	case "BOTTOM":
		return 180
	default:
		return 90
	}
}

// edgeIndex parses a vertex-relative location of the form "V1".."Vn"
// into a 0-based edge index.
func edgeIndex(location string) (int, error) {
	if !strings.HasPrefix(location, "V") {
		return 0, fmt.Errorf("unknown location %q", location)
	}
	n, err := strconv.Atoi(location[1:])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("unknown location %q", location)
	}
	return n - 1, nil
}

// shadeGeometry reconstructs a shading element from either of the two
// source conventions: a rectangle given by position, width and height, or
// an explicit list of 3D vertices.
func shadeGeometry(rec *record.Record, globalDeviation float64) (geometry.WallGeom, bool, error) {
	rot := r3.NewRotation(-globalDeviation*math.Pi/180, r3.Vec{Z: 1})

	if rec.Has("vertices") {
		return shadeGeometryFromVertices(rec, globalDeviation)
	}

	width := rec.FloatOr("width", 0)
	height := rec.FloatOr("height", 0)
	if math.Abs(width) < 1e-3 || math.Abs(height) < 1e-3 {
		// Zero-area shade: nothing to occlude with.
		return geometry.WallGeom{}, false, nil
	}
	position := rot.Rotate(geometry.Point3{
		X: rec.FloatOr("x", 0), Y: rec.FloatOr("y", 0), Z: rec.FloatOr("z", 0),
	})
	azimuth := geometry.Round2(bdlAzimuthToModel(rec.FloatOr("azimuth", 0) + globalDeviation))
	return geometry.WallGeom{
		Tilt:     rec.FloatOr("tilt", 90),
		Azimuth:  azimuth,
		Position: &position,
		Polygon: geometry.Polygon{
			{X: 0, Y: 0}, {X: width, Y: 0}, {X: width, Y: height}, {X: 0, Y: height},
		},
	}, true, nil
}

// shadeGeometryFromVertices derives pose and local polygon from a list
// of global 3D vertices "x,y,z;x,y,z;...". The tilt comes from the
// polygon normal; the azimuth from the normal's horizontal projection.
// Horizontal surfaces use a best-effort azimuth derivation.
func shadeGeometryFromVertices(rec *record.Record, globalDeviation float64) (geometry.WallGeom, bool, error) {
	raw, err := rec.Str("vertices")
	if err != nil {
		return geometry.WallGeom{}, false, err
	}
	var vertices []geometry.Point3
	for _, part := range strings.Split(raw, ";") {
		coords := strings.SplitN(part, ",", 3)
		if len(coords) != 3 {
			return geometry.WallGeom{}, false, &record.AttrError{
				Record: rec.Name, Attr: "vertices",
				Reason: fmt.Sprintf("not an x,y,z triple: %q", part),
			}
		}
		x, errX := strconv.ParseFloat(strings.TrimSpace(coords[0]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(coords[1]), 64)
		z, errZ := strconv.ParseFloat(strings.TrimSpace(coords[2]), 64)
		if errX != nil || errY != nil || errZ != nil {
			return geometry.WallGeom{}, false, &record.AttrError{
				Record: rec.Name, Attr: "vertices",
				Reason: fmt.Sprintf("not an x,y,z triple: %q", part),
			}
		}
		vertices = append(vertices, geometry.Point3{X: x, Y: y, Z: z})
	}
	if len(vertices) < 3 {
		return geometry.WallGeom{}, false, &DegenerateGeometryError{Element: rec.Name}
	}

	normal := r3.Cross(r3.Sub(vertices[1], vertices[0]), r3.Sub(vertices[2], vertices[1]))
	if r3.Norm(normal) < 1e-6 {
		return geometry.WallGeom{}, false, &DegenerateGeometryError{Element: rec.Name}
	}
	normal = r3.Unit(normal)

	tilt := math.Acos(normal.Z)
	var shadeAzimuth float64
	if math.Abs(math.Mod(tilt, math.Pi)) > 1e-6 {
		// Angle between -Y and the horizontal projection of the normal,
		// counter-clockwise.
		shadeAzimuth = math.Atan2(normal.X, -normal.Y)
	} else {
		// Horizontal surface: best-effort placeholder derivation.
		shadeAzimuth = math.Acos(normal.Z)
	}

	rot := r3.NewRotation(-globalDeviation*math.Pi/180, r3.Vec{Z: 1})
	v0 := vertices[0]
	position := rot.Rotate(v0)
	azimuth := geometry.Round2(geometry.Normalize(shadeAzimuth*180/math.Pi-globalDeviation, -180, 180))

	// Translate to the first vertex, then undo tilt and azimuth to
	// obtain the local polygon.
	undoTilt := r3.NewRotation(-tilt, r3.Vec{X: 1})
	undoAzimuth := r3.NewRotation(-shadeAzimuth, r3.Vec{Z: 1})
	polygon := make(geometry.Polygon, len(vertices))
	for i, v := range vertices {
		local := undoTilt.Rotate(undoAzimuth.Rotate(r3.Sub(v, v0)))
		polygon[i] = geometry.Point2{X: local.X, Y: local.Y}
	}
	return geometry.WallGeom{
		Tilt:     geometry.Round2(geometry.Normalize(tilt*180/math.Pi, 0, 360)),
		Azimuth:  azimuth,
		Position: &position,
		Polygon:  polygon,
	}, true, nil
}
