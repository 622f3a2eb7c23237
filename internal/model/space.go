package model

import "fmt"

// SpaceKind is the conditioning level of a space.
type SpaceKind string

const (
	// Conditioned spaces are heated or cooled.
	Conditioned SpaceKind = "CONDITIONED"
	// Unconditioned spaces are habitable but not conditioned.
	Unconditioned SpaceKind = "UNCONDITIONED"
	// Uninhabited spaces are not habitable (garages, attics, plenums).
	Uninhabited SpaceKind = "UNINHABITED"
)

// ParseSpaceKind validates a conditioning level name.
func ParseSpaceKind(s string) (SpaceKind, error) {
	switch SpaceKind(s) {
	case Conditioned, Unconditioned, Uninhabited:
		return SpaceKind(s), nil
	}
	return "", fmt.Errorf("unknown space kind %q", s)
}

// Space is a thermal zone of the building.
type Space struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	// Area is the useful floor area, m2.
	Area float64 `json:"area"`
	// Multiplier is the duplication factor of the space.
	Multiplier float64 `json:"multiplier"`
	// Kind is the conditioning level.
	Kind SpaceKind `json:"type"`
	// InsideTEnv marks membership in the interior of the thermal
	// envelope.
	InsideTEnv bool `json:"inside_tenv"`
	// Height is the gross floor-to-floor height, m.
	Height float64 `json:"height"`
	// NV is the ventilation rate, air changes per hour, when defined.
	NV *float64 `json:"n_v,omitempty"`
	// Z is the floor elevation over ground level, m.
	Z float64 `json:"z"`
	// ExposedPerimeter is the part of the floor perimeter facing the
	// exterior, m. Nil when unknown.
	ExposedPerimeter *float64 `json:"exposed_perimeter,omitempty"`
	// Loads and SysSettings reference operational profiles when the
	// source defines them.
	Loads       *ID `json:"loads,omitempty"`
	SysSettings *ID `json:"sys_settings,omitempty"`
}
