package model

import "math"

// PurgeUnused removes catalog entries and elements nothing references:
// spaces without opaque elements, walls whose space is gone, windows
// whose wall is gone, zero-length thermal bridges, and constructions,
// materials, glasses and frames no surviving element uses.
func (m *Model) PurgeUnused() {
	m.purgeUnusedSpaces()
	m.purgeUnusedWalls()
	m.purgeUnusedWindows()
	m.purgeZeroLengthBridges()
	m.purgeUnusedWallCons()
	m.purgeUnusedWinCons()
	m.purgeUnusedMaterials()
	m.purgeUnusedGlasses()
	m.purgeUnusedFrames()
}

func (m *Model) purgeUnusedSpaces() {
	used := make(map[ID]bool)
	for i := range m.Walls {
		used[m.Walls[i].Space] = true
		if m.Walls[i].NextTo != nil {
			used[*m.Walls[i].NextTo] = true
		}
	}
	kept := m.Spaces[:0]
	for _, s := range m.Spaces {
		if used[s.ID] {
			kept = append(kept, s)
		}
	}
	m.Spaces = kept
}

func (m *Model) purgeUnusedWalls() {
	spaces := make(map[ID]bool, len(m.Spaces))
	for i := range m.Spaces {
		spaces[m.Spaces[i].ID] = true
	}
	kept := m.Walls[:0]
	for _, w := range m.Walls {
		if spaces[w.Space] {
			kept = append(kept, w)
		}
	}
	m.Walls = kept
}

func (m *Model) purgeUnusedWindows() {
	walls := make(map[ID]bool, len(m.Walls))
	for i := range m.Walls {
		walls[m.Walls[i].ID] = true
	}
	kept := m.Windows[:0]
	for _, w := range m.Windows {
		if walls[w.Wall] {
			kept = append(kept, w)
		}
	}
	m.Windows = kept
}

func (m *Model) purgeZeroLengthBridges() {
	kept := m.ThermalBridges[:0]
	for _, tb := range m.ThermalBridges {
		if math.Abs(tb.L) > 1e-9 {
			kept = append(kept, tb)
		}
	}
	m.ThermalBridges = kept
}

func (m *Model) purgeUnusedWallCons() {
	used := make(map[ID]bool, len(m.Walls))
	for i := range m.Walls {
		used[m.Walls[i].Cons] = true
	}
	kept := m.Cons.WallCons[:0]
	for _, c := range m.Cons.WallCons {
		if used[c.ID] {
			kept = append(kept, c)
		}
	}
	m.Cons.WallCons = kept
}

func (m *Model) purgeUnusedWinCons() {
	used := make(map[ID]bool, len(m.Windows))
	for i := range m.Windows {
		used[m.Windows[i].Cons] = true
	}
	kept := m.Cons.WinCons[:0]
	for _, c := range m.Cons.WinCons {
		if used[c.ID] {
			kept = append(kept, c)
		}
	}
	m.Cons.WinCons = kept
}

func (m *Model) purgeUnusedMaterials() {
	used := make(map[ID]bool)
	for i := range m.Cons.WallCons {
		for _, l := range m.Cons.WallCons[i].Layers {
			used[l.Material] = true
		}
	}
	kept := m.Mats.Materials[:0]
	for _, mat := range m.Mats.Materials {
		if used[mat.ID] {
			kept = append(kept, mat)
		}
	}
	m.Mats.Materials = kept
}

func (m *Model) purgeUnusedGlasses() {
	used := make(map[ID]bool, len(m.Cons.WinCons))
	for i := range m.Cons.WinCons {
		used[m.Cons.WinCons[i].Glass] = true
	}
	kept := m.Mats.Glasses[:0]
	for _, g := range m.Mats.Glasses {
		if used[g.ID] {
			kept = append(kept, g)
		}
	}
	m.Mats.Glasses = kept
}

func (m *Model) purgeUnusedFrames() {
	used := make(map[ID]bool, len(m.Cons.WinCons))
	for i := range m.Cons.WinCons {
		used[m.Cons.WinCons[i].Frame] = true
	}
	kept := m.Mats.Frames[:0]
	for _, f := range m.Mats.Frames {
		if used[f.ID] {
			kept = append(kept, f)
		}
	}
	m.Mats.Frames = kept
}
