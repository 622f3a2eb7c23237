package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/thermenv/internal/climate"
	"github.com/vk/thermenv/internal/model"
	"github.com/vk/thermenv/internal/record"
)

func testRecordSet() *record.Set {
	return &record.Set{Records: []record.Record{
		{
			Kind: record.KindMeta,
			Name: "casa",
			Attrs: record.AttrMap{
				"climate":         "D3",
				"is_new_building": "true",
				"num_dwellings":   "1",
				"azimuth":         "0",
			},
		},
		{
			Kind: record.KindPolygon,
			Name: "planta",
			Attrs: record.AttrMap{
				"V1": "0,0",
				"V2": "10,0",
				"V3": "10,5",
				"V4": "0,5",
			},
		},
		{
			Kind:  record.KindMaterial,
			Name:  "ladrillo",
			Attrs: record.AttrMap{"conductivity": "0.5", "density": "1200", "specificheat": "1000"},
		},
		{
			Kind:  record.KindMaterial,
			Name:  "camara",
			Attrs: record.AttrMap{"resistance": "0.18"},
		},
		{
			Kind:  record.KindGlass,
			Name:  "doble",
			Attrs: record.AttrMap{"u": "2.8", "g_gln": "0.75"},
		},
		{
			Kind:  record.KindFrame,
			Name:  "pvc",
			Attrs: record.AttrMap{"u": "1.8", "absorptivity": "0.7"},
		},
		{
			Kind: record.KindWallCons,
			Name: "fachada",
			Attrs: record.AttrMap{
				"layers":      "ladrillo:0.24;camara:0.0",
				"absorptance": "0.6",
			},
		},
		{
			Kind: record.KindWinCons,
			Name: "ventana_doble",
			Attrs: record.AttrMap{
				"glass":   "doble",
				"frame":   "pvc",
				"f_f":     "0.20",
				"delta_u": "0",
			},
		},
		{
			Kind: record.KindSpace,
			Name: "salon",
			Attrs: record.AttrMap{
				"type":        "CONDITIONED",
				"inside_tenv": "true",
				"polygon":     "planta",
				"height":      "3",
				"z":           "0",
			},
		},
		{
			Kind:   record.KindWall,
			Name:   "muro_sur",
			Parent: "salon",
			Attrs: record.AttrMap{
				"bounds":       "EXTERIOR",
				"construction": "fachada",
				"location":     "V1",
				"azimuth":      "180",
			},
		},
		{
			Kind:   record.KindWall,
			Name:   "cubierta",
			Parent: "salon",
			Attrs: record.AttrMap{
				"bounds":       "EXTERIOR",
				"construction": "fachada",
				"location":     "TOP",
			},
		},
		{
			Kind:   record.KindWindow,
			Name:   "v1",
			Parent: "muro_sur",
			Attrs: record.AttrMap{
				"construction": "ventana_doble",
				"x":            "2",
				"y":            "1",
				"width":        "1.5",
				"height":       "1.2",
				"setback":      "0.2",
			},
		},
		{
			Kind: record.KindShade,
			Name: "toldo",
			Attrs: record.AttrMap{
				"x": "0", "y": "-1", "z": "3",
				"width": "4", "height": "2",
				"azimuth": "180", "tilt": "0",
			},
		},
		{
			Kind:  record.KindThermalBridge,
			Name:  "frente_forjado",
			Attrs: record.AttrMap{"kind": "INTERMEDIATEFLOOR", "length": "10", "psi": "0.41"},
		},
	}}
}

func TestConvertBuildsModel(t *testing.T) {
	m, warns, err := Convert(testRecordSet())
	require.NoError(t, err)
	assert.Empty(t, warns)

	assert.Equal(t, "casa", m.Meta.Name)
	assert.Equal(t, climate.ZoneD3, m.Meta.Climate)

	require.Len(t, m.Spaces, 1)
	assert.InDelta(t, 50.0, m.Spaces[0].Area, 1e-9)

	require.Len(t, m.Walls, 2)
	require.Len(t, m.Windows, 1)
	require.Len(t, m.Shades, 1)
	require.Len(t, m.ThermalBridges, 1)
	require.Len(t, m.Cons.WallCons, 1)
	require.Len(t, m.Cons.WinCons, 1)
	require.Len(t, m.Mats.Materials, 2)
}

func TestConvertWallGeometry(t *testing.T) {
	m, _, err := Convert(testRecordSet())
	require.NoError(t, err)

	wall := m.GetWallByName("muro_sur")
	require.NotNil(t, wall)
	// Edge V1 runs along +X, outward normal -Y.
	assert.InDelta(t, 90.0, wall.Geometry.Tilt, 1e-9)
	assert.InDelta(t, 0.0, wall.Geometry.Azimuth, 1e-9)
	assert.InDelta(t, 30.0, wall.Area(), 1e-9)

	roof := m.GetWallByName("cubierta")
	require.NotNil(t, roof)
	assert.InDelta(t, 0.0, roof.Geometry.Tilt, 1e-9)
	require.NotNil(t, roof.Geometry.Position)
	assert.InDelta(t, 3.0, roof.Geometry.Position.Z, 1e-9)
	assert.InDelta(t, 50.0, roof.Area(), 1e-9)
}

func TestConvertWindow(t *testing.T) {
	m, _, err := Convert(testRecordSet())
	require.NoError(t, err)

	win := m.GetWindow(m.Windows[0].ID)
	require.NotNil(t, win)
	require.NotNil(t, win.Geometry.Position)
	assert.InDelta(t, 2.0, win.Geometry.Position.X, 1e-9)
	assert.InDelta(t, 1.8, win.Geometry.Area(), 1e-9)

	// A south window with a setback starts below full exposure.
	require.NotNil(t, win.FShobstCalc)
	assert.Less(t, *win.FShobstCalc, 1.0)
	assert.Greater(t, *win.FShobstCalc, 0.5)

	wall := m.GetWall(win.Wall)
	require.NotNil(t, wall)
	assert.InDelta(t, 28.2, wall.NetArea(m.Windows), 1e-9)
}

func TestConvertAccessoryShades(t *testing.T) {
	set := testRecordSet()
	for i := range set.Records {
		if set.Records[i].Name == "v1" {
			set.Records[i].Attrs["overhang_depth"] = "0.5"
			set.Records[i].Attrs["overhang_angle"] = "90"
			set.Records[i].Attrs["right_fin_depth"] = "0.3"
		}
	}

	m, warns, err := Convert(set)
	require.NoError(t, err)
	assert.Empty(t, warns)
	require.Len(t, m.Shades, 3)

	byName := make(map[string]model.Shade, len(m.Shades))
	for _, s := range m.Shades {
		byName[s.Name] = s
	}

	overhang, ok := byName["v1_overhang"]
	require.True(t, ok)
	// Angle 90 tips the overhang from the window plane to horizontal.
	assert.InDelta(t, 0.0, overhang.Geometry.Tilt, 1e-9)
	assert.InDelta(t, 0.0, overhang.Geometry.Azimuth, 1e-9)
	require.NotNil(t, overhang.Geometry.Position)
	assert.InDelta(t, 2.0, overhang.Geometry.Position.X, 1e-9)
	assert.InDelta(t, 2.2, overhang.Geometry.Position.Z, 1e-9)
	assert.InDelta(t, 0.75, overhang.Geometry.Area(), 1e-9)

	fin, ok := byName["v1_right_fin"]
	require.True(t, ok)
	assert.InDelta(t, 90.0, fin.Geometry.Tilt, 1e-9)
	assert.InDelta(t, -90.0, fin.Geometry.Azimuth, 1e-9)
	require.NotNil(t, fin.Geometry.Position)
	assert.InDelta(t, 3.5, fin.Geometry.Position.X, 1e-9)
	assert.InDelta(t, 0.36, fin.Geometry.Area(), 1e-9)
}

func TestConvertDegenerateShadeIsDropped(t *testing.T) {
	set := testRecordSet()
	set.Records = append(set.Records, record.Record{
		Kind:  record.KindShade,
		Name:  "rota",
		Attrs: record.AttrMap{"vertices": "0,0,0;1,0,0;2,0,0"},
	})

	m, warns, err := Convert(set)
	require.NoError(t, err)
	require.Len(t, warns, 1)
	assert.Equal(t, model.LevelWarning, warns[0].Level)
	assert.Contains(t, warns[0].Msg, "rota")
	// Only the valid shade survives.
	require.Len(t, m.Shades, 1)
	assert.Equal(t, "toldo", m.Shades[0].Name)
}

func TestConvertUnknownConstructionFails(t *testing.T) {
	set := testRecordSet()
	for i := range set.Records {
		if set.Records[i].Name == "muro_sur" {
			set.Records[i].Attrs["construction"] = "inexistente"
		}
	}

	_, _, err := Convert(set)
	require.Error(t, err)
	assert.ErrorContains(t, err, "inexistente")
}

func TestConvertIsDeterministic(t *testing.T) {
	m1, _, err := Convert(testRecordSet())
	require.NoError(t, err)
	m2, _, err := Convert(testRecordSet())
	require.NoError(t, err)

	j1, err := m1.AsJSON()
	require.NoError(t, err)
	j2, err := m2.AsJSON()
	require.NoError(t, err)
	assert.Equal(t, string(j1), string(j2))
}

func TestConvertDefaultsWithoutMeta(t *testing.T) {
	set := &record.Set{}
	m, warns, err := Convert(set)
	require.NoError(t, err)
	assert.Empty(t, warns)
	assert.Equal(t, climate.ZoneD3, m.Meta.Climate)
	assert.True(t, m.Meta.IsNewBuilding)
	assert.Empty(t, m.Walls)
}
