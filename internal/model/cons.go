package model

import (
	"github.com/vk/thermenv/internal/geometry"
)

// Layer is one material sheet of an opaque construction.
type Layer struct {
	// Material references the layer material.
	Material ID `json:"id"`
	// E is the layer thickness, m.
	E float64 `json:"e"`
}

// WallCons is an opaque construction: an ordered list of layers, outside
// to inside, plus the solar absorptance of the outer surface.
type WallCons struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	// Group is the library group the construction belongs to.
	Group string `json:"group,omitempty"`
	// Layers, ordered outside to inside.
	Layers []Layer `json:"layers"`
	// Absorptance is the solar absorptance of the outer surface [0-1].
	Absorptance float64 `json:"absorptance"`
}

// Thickness returns the total thickness of the layer stack, m.
func (c *WallCons) Thickness() float64 {
	total := 0.0
	for _, l := range c.Layers {
		total += l.E
	}
	return geometry.Round3(total)
}

// Resistance returns the intrinsic thermal resistance of the layer
// stack, m2K/W, without surface resistances. Layers whose material is
// missing from the catalog, or has non-positive conductivity, make the
// resistance undefined.
func (c *WallCons) Resistance(mats *MatsDb) (float64, bool) {
	total := 0.0
	for _, l := range c.Layers {
		mat := mats.Material(l.Material)
		if mat == nil {
			return 0, false
		}
		r, ok := mat.Props.LayerResistance(l.E)
		if !ok {
			return 0, false
		}
		total += r
	}
	return total, true
}

// WinCons is a window construction.
type WinCons struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	// Group is the library group the construction belongs to.
	Group string `json:"group,omitempty"`
	// Glass references the glazing.
	Glass ID `json:"glass"`
	// Frame references the frame.
	Frame ID `json:"frame"`
	// FF is the frame fraction [0-1].
	FF float64 `json:"f_f"`
	// DeltaU is the percentage increase of U from spacers and shutter
	// boxes (%).
	DeltaU float64 `json:"delta_u"`
	// GGlShWi is the solar factor with the shading device active. Nil
	// means equal to the factor without shading.
	GGlShWi *float64 `json:"g_glshwi,omitempty"`
	// C100 is the air permeability at 100 Pa, m3/h.m2.
	C100 float64 `json:"c_100"`
}

// U returns the window transmittance from its frame and glass, W/m2K.
func (c *WinCons) U(mats *MatsDb) (float64, bool) {
	glass := mats.Glass(c.Glass)
	frame := mats.Frame(c.Frame)
	if glass == nil || frame == nil {
		return 0, false
	}
	u := (1 + c.DeltaU/100) * (frame.U*c.FF + glass.U*(1-c.FF))
	return geometry.Round2(u), true
}

// GGlWi returns the solar factor of the glazing at normal incidence
// corrected to diffuse incidence (g_gl;wi = g_gl;n * 0.90).
func (c *WinCons) GGlWi(mats *MatsDb) (float64, bool) {
	glass := mats.Glass(c.Glass)
	if glass == nil {
		return 0, false
	}
	return geometry.Round2(glass.GGlN * 0.90), true
}

// GGlShWiValue returns the solar factor with shading active, falling
// back to the unshaded factor when none is defined.
func (c *WinCons) GGlShWiValue(mats *MatsDb) (float64, bool) {
	if c.GGlShWi != nil {
		return *c.GGlShWi, true
	}
	return c.GGlWi(mats)
}

// ConsDb is the construction catalog of the model.
type ConsDb struct {
	// WallCons lists the opaque constructions.
	WallCons []WallCons `json:"wallcons"`
	// WinCons lists the window constructions.
	WinCons []WinCons `json:"wincons"`
}

// GetWallCons finds an opaque construction by id.
func (db *ConsDb) GetWallCons(id ID) *WallCons {
	for i := range db.WallCons {
		if db.WallCons[i].ID == id {
			return &db.WallCons[i]
		}
	}
	return nil
}

// GetWinCons finds a window construction by id.
func (db *ConsDb) GetWinCons(id ID) *WinCons {
	for i := range db.WinCons {
		if db.WinCons[i].ID == id {
			return &db.WinCons[i]
		}
	}
	return nil
}
