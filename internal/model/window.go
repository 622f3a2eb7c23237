package model

import (
	"fmt"
	"math"

	"github.com/vk/thermenv/internal/geometry"
)

// WinGeom locates a window inside the plane of its owning wall.
type WinGeom struct {
	// Position of the window's lower-left corner, in wall coordinates.
	// Nil marks an incomplete geometric definition.
	Position *geometry.Point2 `json:"position,omitempty"`
	// Height of the window, m.
	Height float64 `json:"height"`
	// Width of the window, m.
	Width float64 `json:"width"`
	// Setback is the recess depth of the glazing plane from the wall
	// surface, m.
	Setback float64 `json:"setback"`
}

// Area returns the window surface, m2.
func (g *WinGeom) Area() float64 { return g.Width * g.Height }

// Perimeter returns the window perimeter, m.
func (g *WinGeom) Perimeter() float64 { return 2 * (g.Width + g.Height) }

// Window is a semitransparent element belonging to a wall.
type Window struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	// Cons references the window construction.
	Cons ID `json:"cons"`
	// Wall references the owning opaque element.
	Wall ID `json:"wall"`
	// FShobst is the user-supplied remote-obstruction factor, when
	// given. It takes precedence over the computed one.
	FShobst *float64 `json:"f_shobst,omitempty"`
	// FShobstCalc is the remote-obstruction factor computed from the
	// model geometry.
	FShobstCalc *float64 `json:"f_shobst_calc,omitempty"`
	// Geometry locates the window in its wall plane.
	Geometry WinGeom `json:"geometry"`
}

// Area returns the window surface, m2.
func (w *Window) Area() float64 { return w.Geometry.Area() }

// Perimeter returns the window perimeter, m.
func (w *Window) Perimeter() float64 { return w.Geometry.Perimeter() }

// EffectiveFShobst returns the obstruction factor to use in solar-gain
// computations: the user-supplied value when present, the computed one
// otherwise, and 1.0 (no obstruction) when neither is available.
func (w *Window) EffectiveFShobst() float64 {
	if w.FShobst != nil {
		return *w.FShobst
	}
	if w.FShobstCalc != nil {
		return *w.FShobstCalc
	}
	return 1.0
}

// SetbackShades derives the four shading surfaces formed by a recessed
// window's reveal: overhang, left fin, right fin and sill. wallGeom is
// the geometry of the owning wall. Windows with no setback or without a
// complete geometric definition produce no shades.
func (w *Window) SetbackShades(wallGeom *geometry.WallGeom) []Shade {
	wg := &w.Geometry
	if math.Abs(wg.Setback) < 0.01 || wg.Position == nil {
		return nil
	}
	toGlobal, ok := wallGeom.ToGlobal()
	if !ok {
		return nil
	}
	x, y := wg.Position.X, wg.Position.Y

	topPos := toGlobal.Apply(geometry.Point3{X: x, Y: y + wg.Height})
	sillPos := toGlobal.Apply(geometry.Point3{X: x, Y: y})
	rightPos := toGlobal.Apply(geometry.Point3{X: x + wg.Width, Y: y + wg.Height})

	overhang := Shade{
		ID:   IDFromString(fmt.Sprintf("%s-top_setback", w.ID)),
		Name: w.Name + "_top_setback",
		Geometry: geometry.WallGeom{
			// At +90 degrees the surface is perpendicular to the window.
			Tilt:     wallGeom.Tilt + 90.0,
			Azimuth:  wallGeom.Azimuth,
			Position: &topPos,
			Polygon: geometry.Polygon{
				{X: 0, Y: 0},
				{X: 0, Y: -wg.Setback},
				{X: wg.Width, Y: -wg.Setback},
				{X: wg.Width, Y: 0},
			},
		},
	}
	leftFin := Shade{
		ID:   IDFromString(fmt.Sprintf("%s-left_setback", w.ID)),
		Name: w.Name + "_left_setback",
		Geometry: geometry.WallGeom{
			Tilt:     wallGeom.Tilt,
			Azimuth:  wallGeom.Azimuth + 90.0,
			Position: &topPos,
			Polygon: geometry.Polygon{
				{X: 0, Y: 0},
				{X: 0, Y: -wg.Height},
				{X: wg.Setback, Y: -wg.Height},
				{X: wg.Setback, Y: 0},
			},
		},
	}
	rightFin := Shade{
		ID:   IDFromString(fmt.Sprintf("%s-right_setback", w.ID)),
		Name: w.Name + "_right_setback",
		Geometry: geometry.WallGeom{
			Tilt:     wallGeom.Tilt,
			Azimuth:  wallGeom.Azimuth - 90.0,
			Position: &rightPos,
			Polygon: geometry.Polygon{
				{X: 0, Y: 0},
				{X: -wg.Setback, Y: 0},
				{X: -wg.Setback, Y: -wg.Height},
				{X: 0, Y: -wg.Height},
			},
		},
	}
	sill := Shade{
		ID:   IDFromString(fmt.Sprintf("%s-sill_setback", w.ID)),
		Name: w.Name + "_sill_setback",
		Geometry: geometry.WallGeom{
			Tilt:     wallGeom.Tilt - 90.0,
			Azimuth:  wallGeom.Azimuth,
			Position: &sillPos,
			Polygon: geometry.Polygon{
				{X: 0, Y: 0},
				{X: wg.Width, Y: 0},
				{X: wg.Width, Y: wg.Setback},
				{X: 0, Y: wg.Setback},
			},
		},
	}
	return []Shade{overhang, leftFin, rightFin, sill}
}
