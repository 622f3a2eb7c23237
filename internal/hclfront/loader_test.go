package hclfront

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/thermenv/internal/convert"
	"github.com/vk/thermenv/internal/ctxlog"
	"github.com/vk/thermenv/internal/record"
)

const fixtureSrc = `
building "casa ejemplo" {
  climate         = "D3"
  is_new_building = true
}

polygon "planta" {
  vertices = ["0,0", "10,0", "10,5", "0,5"]
}

material "ladrillo" {
  conductivity = 0.5
  density      = 1200
}

glass "doble" {
  u     = 2.8
  g_gln = 0.75
}

frame "pvc" {
  u = 1.8
}

wall_cons "fachada" {
  layers      = "ladrillo:0.24"
  absorptance = 0.6
}

win_cons "ventana_doble" {
  glass = "doble"
  frame = "pvc"
  f_f   = 0.2
}

space "salon" {
  type    = "CONDITIONED"
  polygon = "planta"
  height  = 3

  wall "muro_sur" {
    bounds       = "EXTERIOR"
    construction = "fachada"
    location     = "V1"
    azimuth      = 180

    window "v1" {
      construction = "ventana_doble"
      x            = 2
      y            = 1
      width        = 1.5
      height       = 1.2
      setback      = 0.2
    }
  }
}

shade "toldo" {
  vertices = ["0,-1,3", "4,-1,3", "4,-3,3", "0,-3,3"]
}

thermal_bridge "frente_forjado" {
  kind   = "INTERMEDIATEFLOOR"
  length = 10
  psi    = 0.41
}
`

func testContext() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

func TestParseBytesProducesRecords(t *testing.T) {
	set, err := NewLoader().ParseBytes(testContext(), "casa.hcl", []byte(fixtureSrc))
	require.NoError(t, err)

	meta := set.ByKind(record.KindMeta)
	require.Len(t, meta, 1)
	assert.Equal(t, "casa ejemplo", meta[0].Name)
	climate, err := meta[0].Str("climate")
	require.NoError(t, err)
	assert.Equal(t, "D3", climate)
	assert.True(t, meta[0].BoolOr("is_new_building", false))

	poly, ok := set.Find(record.KindPolygon, "planta")
	require.True(t, ok)
	v1, err := poly.Str("V1")
	require.NoError(t, err)
	assert.Equal(t, "0,0", v1)
	v4, err := poly.Str("V4")
	require.NoError(t, err)
	assert.Equal(t, "0,5", v4)

	mat, ok := set.Find(record.KindMaterial, "ladrillo")
	require.True(t, ok)
	cond, err := mat.Float("conductivity")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, cond, 1e-12)
}

func TestParseBytesNestsWallsAndWindows(t *testing.T) {
	set, err := NewLoader().ParseBytes(testContext(), "casa.hcl", []byte(fixtureSrc))
	require.NoError(t, err)

	walls := set.ByKind(record.KindWall)
	require.Len(t, walls, 1)
	assert.Equal(t, "muro_sur", walls[0].Name)
	assert.Equal(t, "salon", walls[0].Parent)

	windows := set.ByKind(record.KindWindow)
	require.Len(t, windows, 1)
	assert.Equal(t, "v1", windows[0].Name)
	assert.Equal(t, "muro_sur", windows[0].Parent)
	width, err := windows[0].Float("width")
	require.NoError(t, err)
	assert.InDelta(t, 1.5, width, 1e-12)

	shade, ok := set.Find(record.KindShade, "toldo")
	require.True(t, ok)
	vertices, err := shade.Str("vertices")
	require.NoError(t, err)
	assert.Equal(t, "0,-1,3;4,-1,3;4,-3,3;0,-3,3", vertices)
}

func TestParseBytesFeedsConverter(t *testing.T) {
	set, err := NewLoader().ParseBytes(testContext(), "casa.hcl", []byte(fixtureSrc))
	require.NoError(t, err)

	m, _, err := convert.Convert(set)
	require.NoError(t, err)
	require.Len(t, m.Spaces, 1)
	require.Len(t, m.Walls, 1)
	require.Len(t, m.Windows, 1)
	assert.InDelta(t, 50.0, m.Spaces[0].Area, 1e-9)
}

func TestParseBytesRejectsBadSyntax(t *testing.T) {
	_, err := NewLoader().ParseBytes(testContext(), "bad.hcl", []byte(`space "a" {`))
	require.Error(t, err)
}

func TestParseBytesRejectsUnknownBlock(t *testing.T) {
	_, err := NewLoader().ParseBytes(testContext(), "bad.hcl", []byte(`satellite "a" {}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "satellite")
}

func TestLoadMergesFiles(t *testing.T) {
	dir := t.TempDir()
	mainSrc := `
space "salon" {
  area   = 40
  height = 3
}
`
	consSrc := `
material "hormigon" {
  conductivity = 2.3
  density      = 2400
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "edificio.hcl"), []byte(mainSrc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cons.hcl"), []byte(consSrc), 0o644))

	set, err := NewLoader().Load(testContext(), dir)
	require.NoError(t, err)
	assert.Len(t, set.ByKind(record.KindSpace), 1)
	assert.Len(t, set.ByKind(record.KindMaterial), 1)
}
