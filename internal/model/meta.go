package model

import (
	"github.com/vk/thermenv/internal/climate"
)

// Meta carries the building-level attributes fixed at conversion time.
type Meta struct {
	// Name of the project.
	Name string `json:"name"`
	// IsNewBuilding distinguishes new construction from renovation.
	IsNewBuilding bool `json:"is_new_building"`
	// IsDwelling marks residential use.
	IsDwelling bool `json:"is_dwelling"`
	// NumDwellings is the number of dwelling units.
	NumDwellings int `json:"num_dwellings"`
	// Climate is the CTE climate zone.
	Climate climate.Zone `json:"climate"`
	// GlobalVentilation is the whole-building ventilation flow for
	// habitable residential spaces, l/s. Nil for non-residential use.
	GlobalVentilation *float64 `json:"global_ventilation_l_s,omitempty"`
	// N50Test is the blower-door measured air-change rate at 50 Pa,
	// 1/h, when a test result is available.
	N50Test *float64 `json:"n50_test_ach,omitempty"`
	// DPerimInsulation is the width or depth of the slab perimeter
	// insulation, m.
	DPerimInsulation float64 `json:"d_perim_insulation"`
	// RNPerimInsulation is the thermal resistance of the slab perimeter
	// insulation, m2K/W.
	RNPerimInsulation float64 `json:"rn_perim_insulation"`
}

// DefaultMeta returns the metadata used when the source defines none.
func DefaultMeta() Meta {
	return Meta{
		Name:          "Project",
		IsNewBuilding: true,
		IsDwelling:    true,
		NumDwellings:  1,
		Climate:       climate.ZoneD3,
	}
}
