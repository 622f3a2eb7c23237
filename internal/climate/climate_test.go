package climate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/thermenv/internal/geometry"
)

func TestParseZone(t *testing.T) {
	z, err := ParseZone("D3")
	require.NoError(t, err)
	assert.Equal(t, ZoneD3, z)
	assert.False(t, z.IsCanary())
	assert.Equal(t, 3, z.SummerSeverity())

	z, err = ParseZone("alfa4c")
	require.NoError(t, err)
	assert.Equal(t, ZoneAlfa4c, z)
	assert.True(t, z.IsCanary())
	assert.Equal(t, 4, z.SummerSeverity())

	_, err = ParseZone("Z9")
	assert.Error(t, err)
}

func TestMetaFor(t *testing.T) {
	m, ok := MetaFor(ZoneD3)
	require.True(t, ok)
	assert.Equal(t, "zonaD3.met", m.MetName)
	assert.InDelta(t, 40.68333, m.Latitude, 1e-6)

	m, ok = MetaFor(ZoneB1c)
	require.True(t, ok)
	assert.InDelta(t, 28.325, m.Latitude, 1e-6)

	_, ok = MetaFor(Zone("Z9"))
	assert.False(t, ok)
}

func TestTotalRadiationJuly(t *testing.T) {
	rad := TotalRadiationJuly(ZoneD3)
	require.Len(t, rad, 9)
	for _, o := range geometry.Orientations() {
		assert.Greater(t, rad[o], 0.0, "orientation %s", o)
	}
	// East and west see more July sun than south at these latitudes.
	assert.Greater(t, rad[geometry.East], rad[geometry.South])
	assert.Greater(t, rad[geometry.Horizontal], rad[geometry.East])

	// Severity scales irradiation monotonically.
	mild := TotalRadiationJuly(ZoneC1)
	severe := TotalRadiationJuly(ZoneC4)
	assert.Less(t, mild[geometry.South], severe[geometry.South])
}

func TestJulySunSamples(t *testing.T) {
	samples := JulySunSamples(ZoneD3)
	require.NotEmpty(t, samples)
	for _, s := range samples {
		assert.Greater(t, s.Altitude, 0.0)
		assert.Greater(t, s.DirNormal, 0.0)
		assert.Equal(t, 7, s.Month)
	}
	// Morning sun stands east of south, evening sun west.
	first := samples[0]
	last := samples[len(samples)-1]
	assert.Greater(t, first.Azimuth, 0.0)
	assert.Less(t, last.Azimuth, 0.0)
}

func TestRayDirToSun(t *testing.T) {
	// Noon sun due south at 45 degrees: ray leans south (-Y) and up.
	d := RayDirToSun(0, 45)
	assert.InDelta(t, 0.0, d.X, 1e-9)
	assert.Less(t, d.Y, 0.0)
	assert.Greater(t, d.Z, 0.0)
	assert.InDelta(t, 1.0, d.X*d.X+d.Y*d.Y+d.Z*d.Z, 1e-9)

	// Eastern sun on the horizon points +X.
	d = RayDirToSun(90, 0)
	assert.InDelta(t, 1.0, d.X, 1e-9)
	assert.InDelta(t, 0.0, d.Z, 1e-9)
}

func TestRadiationOnSurface(t *testing.T) {
	sample := SunSample{Azimuth: 0, Altitude: 45, DirNormal: 800, DifHoriz: 80}

	// South wall facing the sun receives direct radiation.
	dir, dif := RadiationOnSurface(sample, 90, 0, 0.2)
	assert.Greater(t, dir, 0.0)
	assert.Greater(t, dif, 0.0)

	// North wall sees no direct component.
	dir, _ = RadiationOnSurface(sample, 90, 180, 0.2)
	assert.Equal(t, 0.0, dir)

	// Horizontal surface: direct equals the horizontal projection.
	dir, dif = RadiationOnSurface(sample, 0, 0, 0.2)
	assert.InDelta(t, 800*0.70710678, dir, 1e-3)
	assert.InDelta(t, 80.0, dif, 1e-9)
}
