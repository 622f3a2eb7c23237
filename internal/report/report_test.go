package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/thermenv/internal/climate"
	"github.com/vk/thermenv/internal/geometry"
	"github.com/vk/thermenv/internal/model"
)

func testModel() *model.Model {
	mat := model.Material{ID: model.IDFromString("mat"), Name: "R2", Props: model.ResistanceProps(2.0)}
	glass := model.Glass{ID: model.IDFromString("glass"), Name: "doble", U: 2.8, GGlN: 0.75}
	frame := model.Frame{ID: model.IDFromString("frame"), Name: "pvc", U: 1.8}
	wallCons := model.WallCons{
		ID: model.IDFromString("cons-muro"), Name: "muro",
		Layers: []model.Layer{{Material: mat.ID}}, Absorptance: 0.6,
	}
	winCons := model.WinCons{
		ID: model.IDFromString("cons-ventana"), Name: "ventana",
		Glass: glass.ID, Frame: frame.ID, FF: 0.2, C100: 50,
	}
	space := model.Space{
		ID: model.IDFromString("space"), Name: "salon",
		Area: 50, Multiplier: 1, Kind: model.Conditioned,
		InsideTEnv: true, Height: 3,
	}
	pos := geometry.Point3{}
	wall := model.Wall{
		ID: model.IDFromString("muro_sur"), Name: "muro_sur",
		Bounds: model.BoundsExterior, Cons: wallCons.ID, Space: space.ID,
		Geometry: geometry.WallGeom{
			Tilt: 90, Azimuth: 0, Position: &pos,
			Polygon: geometry.Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 3}, {X: 0, Y: 3}},
		},
	}
	window := model.Window{
		ID: model.IDFromString("v1"), Name: "v1",
		Cons: winCons.ID, Wall: wall.ID,
		Geometry: model.WinGeom{
			Position: &geometry.Point2{X: 2, Y: 1},
			Width:    2, Height: 1.5,
		},
	}
	return &model.Model{
		Meta: model.Meta{
			Name: "casa", IsNewBuilding: true, IsDwelling: true,
			NumDwellings: 1, Climate: climate.ZoneD3,
		},
		Spaces:  []model.Space{space},
		Walls:   []model.Wall{wall},
		Windows: []model.Window{window},
		Cons: model.ConsDb{
			WallCons: []model.WallCons{wallCons},
			WinCons:  []model.WinCons{winCons},
		},
		Mats: model.MatsDb{
			Materials: []model.Material{mat},
			Glasses:   []model.Glass{glass},
			Frames:    []model.Frame{frame},
		},
	}
}

func TestGenerate(t *testing.T) {
	m := testModel()
	r := Generate(m, Overrides{})

	assert.Equal(t, "casa", r.Project)
	assert.Equal(t, climate.ZoneD3, r.Climate)
	assert.InDelta(t, 50.0, r.ARef, 1e-9)

	require.Len(t, r.Walls, 1)
	require.NotNil(t, r.Walls[0].U)
	assert.InDelta(t, 0.46, *r.Walls[0].U, 1e-9)
	assert.Nil(t, r.Walls[0].UUser)
	assert.True(t, r.Walls[0].InsideTEnv)

	require.Len(t, r.Windows, 1)
	require.NotNil(t, r.Windows[0].U)
	assert.InDelta(t, 2.6, *r.Windows[0].U, 1e-9)
	assert.InDelta(t, 1.0, r.Windows[0].FShobst, 1e-9)
}

func TestGenerateWallUOverride(t *testing.T) {
	m := testModel()
	wallID := m.Walls[0].ID

	base := Generate(m, Overrides{})
	r := Generate(m, Overrides{WallU: map[model.ID]float64{wallID: 0.25}})

	require.NotNil(t, r.Walls[0].UUser)
	assert.InDelta(t, 0.25, *r.Walls[0].UUser, 1e-9)
	// The aggregated K follows the override.
	assert.Less(t, r.K.K, base.K.K)
}

func TestGenerateFShobstOverride(t *testing.T) {
	m := testModel()
	winID := m.Windows[0].ID

	base := Generate(m, Overrides{})
	r := Generate(m, Overrides{WindowFShobst: map[model.ID]float64{winID: 0.5}})

	assert.InDelta(t, 0.5, r.Windows[0].FShobst, 1e-9)
	assert.Less(t, r.QSolJul.QSolJul, base.QSolJul.QSolJul)
}

func TestReportJSON(t *testing.T) {
	m := testModel()
	r := Generate(m, Overrides{})

	raw, err := r.AsJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "K_data")
	assert.Contains(t, decoded, "q_soljul_data")
	assert.Contains(t, decoded, "n50_data")
	assert.Contains(t, decoded, "warnings")
}
