package model

import (
	"encoding/json"

	"github.com/vk/thermenv/internal/geometry"
)

// Model is the whole building: metadata, spaces, envelope elements and
// catalogs. It is built once per conversion pass and not mutated by the
// property computations.
type Model struct {
	Meta           Meta            `json:"meta"`
	Spaces         []Space         `json:"spaces"`
	Walls          []Wall          `json:"walls"`
	Windows        []Window        `json:"windows"`
	ThermalBridges []ThermalBridge `json:"thermal_bridges"`
	Shades         []Shade         `json:"shades"`
	Cons           ConsDb          `json:"cons"`
	Mats           MatsDb          `json:"mats"`
}

// AsJSON serializes the model.
func (m *Model) AsJSON() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// FromJSON deserializes a model.
func FromJSON(data []byte) (*Model, error) {
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// GetSpace finds a space by id.
func (m *Model) GetSpace(id ID) *Space {
	for i := range m.Spaces {
		if m.Spaces[i].ID == id {
			return &m.Spaces[i]
		}
	}
	return nil
}

// GetSpaceByName finds a space by name.
func (m *Model) GetSpaceByName(name string) *Space {
	for i := range m.Spaces {
		if m.Spaces[i].Name == name {
			return &m.Spaces[i]
		}
	}
	return nil
}

// GetWall finds an opaque element by id.
func (m *Model) GetWall(id ID) *Wall {
	for i := range m.Walls {
		if m.Walls[i].ID == id {
			return &m.Walls[i]
		}
	}
	return nil
}

// GetWallByName finds an opaque element by name.
func (m *Model) GetWallByName(name string) *Wall {
	for i := range m.Walls {
		if m.Walls[i].Name == name {
			return &m.Walls[i]
		}
	}
	return nil
}

// GetWindow finds a window by id.
func (m *Model) GetWindow(id ID) *Window {
	for i := range m.Windows {
		if m.Windows[i].ID == id {
			return &m.Windows[i]
		}
	}
	return nil
}

// WindowsOfWall lists the windows belonging to an opaque element.
func (m *Model) WindowsOfWall(wallID ID) []*Window {
	var out []*Window
	for i := range m.Windows {
		if m.Windows[i].Wall == wallID {
			out = append(out, &m.Windows[i])
		}
	}
	return out
}

// WallsOfEnvelope lists the opaque elements of the thermal envelope in
// contact with outside air or the ground. Elements whose space is
// undefined are considered outside the envelope.
func (m *Model) WallsOfEnvelope() []*Wall {
	var out []*Wall
	for i := range m.Walls {
		w := &m.Walls[i]
		if w.Bounds != BoundsExterior && w.Bounds != BoundsGround {
			continue
		}
		if s := m.GetSpace(w.Space); s != nil && s.InsideTEnv {
			out = append(out, w)
		}
	}
	return out
}

// WindowsOfEnvelope lists the windows of exterior envelope walls.
func (m *Model) WindowsOfEnvelope() []*Window {
	var out []*Window
	for i := range m.Walls {
		w := &m.Walls[i]
		if w.Bounds != BoundsExterior {
			continue
		}
		s := m.GetSpace(w.Space)
		if s == nil || !s.InsideTEnv {
			continue
		}
		out = append(out, m.WindowsOfWall(w.ID)...)
	}
	return out
}

// IsEnvelopeBoundary reports whether an opaque element belongs to the
// envelope boundary set: EXTERIOR/GROUND/ADIABATIC with an
// envelope-internal space, or INTERIOR with exactly one of the two
// adjoining spaces envelope-internal.
func (m *Model) IsEnvelopeBoundary(w *Wall) bool {
	space := m.GetSpace(w.Space)
	if space == nil {
		return false
	}
	if w.Bounds != BoundsInterior {
		return space.InsideTEnv
	}
	if w.NextTo == nil {
		return false
	}
	next := m.GetSpace(*w.NextTo)
	if next == nil {
		return false
	}
	return space.InsideTEnv != next.InsideTEnv
}

// ARef returns the useful floor area of the habitable spaces inside the
// thermal envelope, m2.
func (m *Model) ARef() float64 {
	total := 0.0
	for i := range m.Spaces {
		s := &m.Spaces[i]
		if s.InsideTEnv && s.Kind != Uninhabited {
			total += s.Area * s.Multiplier
		}
	}
	return geometry.Round2(total)
}

// VolEnvGross returns the gross volume of the envelope spaces, habitable
// or not, m3.
func (m *Model) VolEnvGross() float64 {
	total := 0.0
	for i := range m.Spaces {
		s := &m.Spaces[i]
		if s.InsideTEnv {
			total += s.Area * s.Height * s.Multiplier
		}
	}
	return geometry.Round2(total)
}

// VolEnvNet returns the net volume of the envelope spaces, discounting
// the thickness of top slabs, m3.
func (m *Model) VolEnvNet() float64 {
	total := 0.0
	for i := range m.Spaces {
		s := &m.Spaces[i]
		if s.InsideTEnv {
			total += s.Area * m.SpaceNetHeight(s) * s.Multiplier
		}
	}
	return geometry.Round2(total)
}

// VolEnvInhNet returns the net volume of the habitable envelope spaces,
// m3.
func (m *Model) VolEnvInhNet() float64 {
	total := 0.0
	for i := range m.Spaces {
		s := &m.Spaces[i]
		if s.InsideTEnv && s.Kind != Uninhabited {
			total += s.Area * m.SpaceNetHeight(s) * s.Multiplier
		}
	}
	return geometry.Round2(total)
}

// SpaceNetHeight returns the free height of a space: gross height minus
// the thickness of the slab above it, m.
func (m *Model) SpaceNetHeight(s *Space) float64 {
	return s.Height - m.topWallThicknessOfSpace(s.ID)
}

// topWallThicknessOfSpace is the thickness of the first element found
// closing the space from above.
func (m *Model) topWallThicknessOfSpace(spaceID ID) float64 {
	for i := range m.Walls {
		w := &m.Walls[i]
		var isTop bool
		switch w.TiltClass() {
		case geometry.TiltTop:
			isTop = w.Space == spaceID
		case geometry.TiltBottom:
			isTop = w.NextTo != nil && *w.NextTo == spaceID
		}
		if !isTop {
			continue
		}
		if cons := m.Cons.GetWallCons(w.Cons); cons != nil {
			return cons.Thickness()
		}
		return 0
	}
	return 0
}

// Compacity returns the V/A ratio of the envelope, m3/m2: interior gross
// volume over the exterior/ground exchange surface, with space
// multipliers applied. Zero when the exchange surface is zero.
func (m *Model) Compacity() float64 {
	vol := m.VolEnvGross()
	area := 0.0
	for _, w := range m.WallsOfEnvelope() {
		multiplier := 1.0
		if s := m.GetSpace(w.Space); s != nil {
			multiplier = s.Multiplier
		}
		winArea := 0.0
		for _, win := range m.WindowsOfWall(w.ID) {
			winArea += win.Area()
		}
		area += (w.NetArea(m.Windows) + winArea) * multiplier
	}
	if area == 0 {
		return 0
	}
	return geometry.Round2(vol / area)
}

// WindowSetbackShades derives the reveal shading surfaces of every
// recessed window. Each shade is paired with the id of the window it
// belongs to, so obstruction analysis can skip shades of other windows.
func (m *Model) WindowSetbackShades() []LinkedShade {
	var out []LinkedShade
	for i := range m.Windows {
		win := &m.Windows[i]
		wall := m.GetWall(win.Wall)
		if wall == nil {
			continue
		}
		for _, shade := range win.SetbackShades(&wall.Geometry) {
			out = append(out, LinkedShade{Window: win.ID, Shade: shade})
		}
	}
	return out
}

// LinkedShade is a derived shade tied to the window that generates it.
type LinkedShade struct {
	Window ID
	Shade  Shade
}
