package model

// MatProps is either a detailed thermal property set or a bare thermal
// resistance. Exactly one of the two representations is meaningful:
// detailed when Conductivity is non-nil, resistance otherwise.
type MatProps struct {
	// Conductivity is the thermal conductivity lambda, W/mK.
	Conductivity *float64 `json:"conductivity,omitempty"`
	// Density rho, kg/m3.
	Density *float64 `json:"density,omitempty"`
	// SpecificHeat C_p, J/kgK.
	SpecificHeat *float64 `json:"specificheat,omitempty"`
	// VapourDiffusivity mu, dimensionless.
	VapourDiffusivity *float64 `json:"vapourdiffusivity,omitempty"`
	// Resistance is the thermal resistance of the whole sheet, m2K/W,
	// for materials defined by resistance (air chambers and the like).
	Resistance *float64 `json:"resistance,omitempty"`
}

// DetailedProps builds a conductivity-based property set.
func DetailedProps(conductivity, density, specificHeat float64) MatProps {
	return MatProps{
		Conductivity: &conductivity,
		Density:      &density,
		SpecificHeat: &specificHeat,
	}
}

// ResistanceProps builds a resistance-based property set.
func ResistanceProps(resistance float64) MatProps {
	return MatProps{Resistance: &resistance}
}

// LayerResistance returns the thermal resistance of a sheet of thickness
// e built from this material, m2K/W. False when the properties cannot
// produce a resistance (zero or negative conductivity).
func (p *MatProps) LayerResistance(e float64) (float64, bool) {
	if p.Conductivity != nil {
		if *p.Conductivity <= 0 {
			return 0, false
		}
		return e / *p.Conductivity, true
	}
	if p.Resistance != nil {
		return *p.Resistance, true
	}
	return 0, false
}

// Material is an opaque-layer material.
type Material struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	// Group is the library group the material belongs to.
	Group string `json:"group,omitempty"`
	// Props is the thermal definition, detailed or by resistance.
	Props MatProps `json:"props"`
}

// Glass is a glazing type.
type Glass struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	// Group is the library group the glass belongs to.
	Group string `json:"group,omitempty"`
	// U is the glazing transmittance, W/m2K.
	U float64 `json:"u"`
	// GGlN is the solar factor at normal incidence [0-1].
	GGlN float64 `json:"g_gln"`
}

// Frame is a window frame type.
type Frame struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	// Group is the library group the frame belongs to.
	Group string `json:"group,omitempty"`
	// U is the frame transmittance, W/m2K.
	U float64 `json:"u"`
	// Absorptivity of the frame surface [0-1].
	Absorptivity float64 `json:"absorptivity"`
}

// MatsDb is the material catalog of the model.
type MatsDb struct {
	Materials []Material `json:"materials"`
	Glasses   []Glass    `json:"glasses"`
	Frames    []Frame    `json:"frames"`
}

// Material finds a material by id.
func (db *MatsDb) Material(id ID) *Material {
	for i := range db.Materials {
		if db.Materials[i].ID == id {
			return &db.Materials[i]
		}
	}
	return nil
}

// Glass finds a glazing by id.
func (db *MatsDb) Glass(id ID) *Glass {
	for i := range db.Glasses {
		if db.Glasses[i].ID == id {
			return &db.Glasses[i]
		}
	}
	return nil
}

// Frame finds a frame by id.
func (db *MatsDb) Frame(id ID) *Frame {
	for i := range db.Frames {
		if db.Frames[i].ID == id {
			return &db.Frames[i]
		}
	}
	return nil
}
