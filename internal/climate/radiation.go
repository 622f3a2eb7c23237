package climate

import (
	"math"
	"time"

	"github.com/sixdouglas/suncalc"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/vk/thermenv/internal/geometry"
)

// julyRadiationBasis is the accumulated July irradiation on a vertical
// surface per orientation (horizontal for HZ) for a reference severity-3
// zone, kWh/m2/month.
var julyRadiationBasis = map[geometry.Orientation]float64{
	geometry.North:      62.0,
	geometry.NorthEast:  146.0,
	geometry.East:       196.0,
	geometry.SouthEast:  180.0,
	geometry.South:      136.0,
	geometry.SouthWest:  180.0,
	geometry.West:       196.0,
	geometry.NorthWest:  146.0,
	geometry.Horizontal: 226.0,
}

// severityFactor scales the reference irradiation by the zone's summer
// climatic severity digit.
var severityFactor = [5]float64{1.0, 0.88, 0.94, 1.0, 1.06}

// TotalRadiationJuly returns the accumulated solar irradiation for July
// by orientation, kWh/m2/month, for the given climate zone.
func TotalRadiationJuly(z Zone) map[geometry.Orientation]float64 {
	severity := z.SummerSeverity()
	if severity < 1 || severity > 4 {
		severity = 1
	}
	f := severityFactor[severity]
	out := make(map[geometry.Orientation]float64, len(julyRadiationBasis))
	for o, v := range julyRadiationBasis {
		out[o] = geometry.Round2(v * f)
	}
	return out
}

// SunSample is the sun position and clear-sky irradiance for one hour of
// the reference July day. Azimuth follows the model convention (S=0,
// E=+90, W=-90); altitude is degrees over the horizon. DirNormal is the
// beam irradiance on a plane normal to the sun and DifHoriz the diffuse
// irradiance on the horizontal plane, both W/m2.
type SunSample struct {
	Month     int
	Day       int
	Hour      int
	Azimuth   float64
	Altitude  float64
	DirNormal float64
	DifHoriz  float64
}

// JulySunSamples returns the above-horizon hourly sun samples for the
// reference July day at the zone's reference site. Positions come from
// the solar ephemeris; irradiances from a clear-sky air-mass model.
func JulySunSamples(z Zone) []SunSample {
	meta, ok := MetaFor(z)
	if !ok {
		return nil
	}
	const year, month, day = 2021, time.July, 21
	var samples []SunSample
	for hour := 0; hour < 24; hour++ {
		t := time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
		p := suncalc.GetPosition(t, meta.Latitude, meta.Longitude)
		altitude := p.Altitude * 180 / math.Pi
		if altitude <= 0 {
			continue
		}
		// The ephemeris azimuth runs S=0, E=-90, W=+90; flip the sign to
		// the model convention.
		azimuth := -p.Azimuth * 180 / math.Pi
		dni := directNormalIrradiance(altitude, meta.Altitude)
		samples = append(samples, SunSample{
			Month:     int(month),
			Day:       day,
			Hour:      hour,
			Azimuth:   azimuth,
			Altitude:  altitude,
			DirNormal: dni,
			DifHoriz:  0.1 * dni,
		})
	}
	return samples
}

// directNormalIrradiance estimates clear-sky beam irradiance (W/m2) on a
// plane normal to the sun for a solar altitude in degrees and a site
// elevation in meters. Air mass per Kasten and Young (1989); attenuation
// per Meinel and Meinel (1976).
func directNormalIrradiance(altitude, elevation float64) float64 {
	if altitude <= 0 {
		return 0
	}
	zenith := 90 - altitude
	airMass := 1 / (math.Cos(zenith*math.Pi/180) + 0.50572*math.Pow(96.07995-zenith, -1.6364))
	h := elevation / 1000
	const a = 0.14
	return 1353 * ((1-a*h)*math.Pow(0.7, math.Pow(airMass, 0.678)) + a*h)
}

// RayDirToSun returns the unit vector pointing at the sun for a solar
// azimuth (S=0, E=+90, W=-90) and altitude, both in degrees.
func RayDirToSun(azimuth, altitude float64) r3.Vec {
	saz := azimuth * math.Pi / 180
	sal := altitude * math.Pi / 180
	return r3.Unit(r3.Vec{
		X: math.Cos(sal) * math.Sin(saz),
		Y: -math.Cos(sal) * math.Cos(saz),
		Z: math.Sin(sal),
	})
}

// RadiationOnSurface projects a sun sample onto a surface with the given
// tilt and azimuth (degrees, model conventions) and returns the direct
// and diffuse irradiance on the surface plane, W/m2. The diffuse part
// uses an isotropic sky plus a ground reflection with the given albedo.
func RadiationOnSurface(s SunSample, tilt, azimuth, albedo float64) (dir, dif float64) {
	sun := RayDirToSun(s.Azimuth, s.Altitude)
	normal := surfaceNormal(tilt, azimuth)

	cosInc := r3.Dot(sun, normal)
	if cosInc > 0 {
		dir = s.DirNormal * cosInc
	}
	dirHoriz := s.DirNormal * math.Sin(s.Altitude*math.Pi/180)
	cosTilt := math.Cos(tilt * math.Pi / 180)
	dif = s.DifHoriz*(1+cosTilt)/2 + albedo*(dirHoriz+s.DifHoriz)*(1-cosTilt)/2
	return dir, dif
}

// surfaceNormal is the outward normal of a surface given its tilt and
// azimuth in the model conventions.
func surfaceNormal(tilt, azimuth float64) r3.Vec {
	st, ct := math.Sincos(tilt * math.Pi / 180)
	sa, ca := math.Sincos(azimuth * math.Pi / 180)
	return r3.Vec{X: st * sa, Y: -st * ca, Z: ct}
}
