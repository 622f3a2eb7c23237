package model

import "fmt"

// WarningLevel grades a model consistency finding.
type WarningLevel string

const (
	LevelInfo    WarningLevel = "INFO"
	LevelWarning WarningLevel = "WARNING"
	LevelError   WarningLevel = "ERROR"
)

// Warning is a non-fatal finding about the model, tied to the offending
// entity when one exists.
type Warning struct {
	Level WarningLevel `json:"level"`
	// ID of the entity the finding refers to, when applicable.
	ID *ID `json:"id,omitempty"`
	// Msg is the human-readable description.
	Msg string `json:"msg"`
}

// Check verifies cross-reference consistency and returns the detected
// findings. Elements flagged here are skipped by the property
// computations rather than aborting them.
func (m *Model) Check() []Warning {
	spaceIDs := make(map[ID]bool, len(m.Spaces))
	for i := range m.Spaces {
		spaceIDs[m.Spaces[i].ID] = true
	}
	wallIDs := make(map[ID]bool, len(m.Walls))
	for i := range m.Walls {
		wallIDs[m.Walls[i].ID] = true
	}
	wallConsIDs := make(map[ID]bool, len(m.Cons.WallCons))
	for i := range m.Cons.WallCons {
		wallConsIDs[m.Cons.WallCons[i].ID] = true
	}
	winConsIDs := make(map[ID]bool, len(m.Cons.WinCons))
	for i := range m.Cons.WinCons {
		winConsIDs[m.Cons.WinCons[i].ID] = true
	}

	var warnings []Warning
	warn := func(id ID, format string, args ...any) {
		idCopy := id
		warnings = append(warnings, Warning{
			Level: LevelWarning,
			ID:    &idCopy,
			Msg:   fmt.Sprintf(format, args...),
		})
	}

	for i := range m.Walls {
		w := &m.Walls[i]
		if !spaceIDs[w.Space] {
			warn(w.ID, "wall %s (%s) has a broken space reference %s", w.ID, w.Name, w.Space)
		}
		if !wallConsIDs[w.Cons] {
			warn(w.ID, "wall %s (%s) has a broken construction reference %s", w.ID, w.Name, w.Cons)
		}
		if w.NextTo != nil && !spaceIDs[*w.NextTo] {
			warn(w.ID, "wall %s (%s) has a broken adjacent space reference %s", w.ID, w.Name, *w.NextTo)
		}
		if w.Bounds == BoundsInterior && w.NextTo == nil {
			warn(w.ID, "interior wall %s (%s) has no adjacent space", w.ID, w.Name)
		}
	}
	for i := range m.Windows {
		w := &m.Windows[i]
		if !wallIDs[w.Wall] {
			warn(w.ID, "window %s (%s) has a broken wall reference %s", w.ID, w.Name, w.Wall)
		}
		if !winConsIDs[w.Cons] {
			warn(w.ID, "window %s (%s) has a broken construction reference %s", w.ID, w.Name, w.Cons)
		}
	}
	for i := range m.ThermalBridges {
		tb := &m.ThermalBridges[i]
		if tb.L < 0 {
			warn(tb.ID, "thermal bridge %s (%s) has a negative length (%g)", tb.ID, tb.Name, tb.L)
		}
	}
	return warnings
}
