package model

import (
	"fmt"

	"github.com/vk/thermenv/internal/geometry"
)

// BoundaryType is the boundary condition of an opaque element.
type BoundaryType string

const (
	// BoundsExterior faces outside air.
	BoundsExterior BoundaryType = "EXTERIOR"
	// BoundsInterior faces the air of another space.
	BoundsInterior BoundaryType = "INTERIOR"
	// BoundsGround is in contact with the ground.
	BoundsGround BoundaryType = "GROUND"
	// BoundsAdiabatic exchanges no heat.
	BoundsAdiabatic BoundaryType = "ADIABATIC"
)

// ParseBoundaryType validates a boundary condition name.
func ParseBoundaryType(s string) (BoundaryType, error) {
	switch BoundaryType(s) {
	case BoundsExterior, BoundsInterior, BoundsGround, BoundsAdiabatic:
		return BoundaryType(s), nil
	}
	return "", fmt.Errorf("unknown boundary condition %q", s)
}

// Wall is an opaque element: facade, roof, floor or partition.
type Wall struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	// Bounds is the boundary condition.
	Bounds BoundaryType `json:"bounds"`
	// Cons references the opaque construction.
	Cons ID `json:"cons"`
	// Space references the owning space.
	Space ID `json:"space"`
	// NextTo references the adjacent space for INTERIOR elements.
	NextTo *ID `json:"next_to,omitempty"`
	// Geometry is the pose and local polygon of the element.
	Geometry geometry.WallGeom `json:"geometry"`
}

// Area returns the gross surface of the element, m2.
func (w *Wall) Area() float64 { return w.Geometry.Area() }

// NetArea returns the surface of the element minus its windows, m2.
func (w *Wall) NetArea(windows []Window) float64 {
	area := w.Area()
	for i := range windows {
		if windows[i].Wall == w.ID {
			area -= windows[i].Area()
		}
	}
	return geometry.Round2(area)
}

// Perimeter returns the element perimeter, m.
func (w *Wall) Perimeter() float64 { return w.Geometry.Perimeter() }

// TiltClass returns the roof/wall/floor position of the element.
func (w *Wall) TiltClass() geometry.TiltClass {
	return geometry.TiltClassOf(w.Geometry.Tilt)
}

// Orientation returns the compass sector of the element, or Horizontal
// for roof-like and floor-like positions.
func (w *Wall) Orientation() geometry.Orientation {
	if w.TiltClass() != geometry.TiltSide {
		return geometry.Horizontal
	}
	return geometry.OrientationOf(w.Geometry.Azimuth)
}

// Shade is a shading element with no thermal role, used only for
// obstruction analysis.
type Shade struct {
	ID       ID                `json:"id"`
	Name     string            `json:"name"`
	Geometry geometry.WallGeom `json:"geometry"`
}
