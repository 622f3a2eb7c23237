package convert

import (
	"github.com/vk/thermenv/internal/geometry"
)

// FShobstForSetback estimates the remote-obstruction factor of a window
// from its own recess, per the DA DB-HE/1 tables for vertical (table 17)
// and horizontal (table 19) openings. It is a best-effort default; a
// geometric obstruction analysis or a user override may replace it.
func FShobstForSetback(tilt, azimuth, width, height, setback float64) float64 {
	if height <= 0 || width <= 0 {
		return 1.0
	}
	rh := setback / height
	rw := setback / width

	switch geometry.TiltClassOf(tilt) {
	case geometry.TiltSide:
		return fshobstVertical(geometry.OrientationOf(azimuth), rh, rw)
	case geometry.TiltTop:
		return fshobstHorizontal(rh, rw)
	default:
		return 1.0
	}
}

var fshobstSouth = [5][5]float64{
	{1.00, 1.00, 1.00, 1.00, 1.00},
	{1.00, 0.82, 0.74, 0.62, 0.39},
	{1.00, 0.76, 0.67, 0.56, 0.35},
	{1.00, 0.56, 0.51, 0.39, 0.27},
	{1.00, 0.35, 0.32, 0.27, 0.17},
}

var fshobstSESW = [5][5]float64{
	{1.00, 1.00, 1.00, 1.00, 1.00},
	{1.00, 0.86, 0.81, 0.72, 0.51},
	{1.00, 0.79, 0.74, 0.66, 0.47},
	{1.00, 0.59, 0.56, 0.47, 0.36},
	{1.00, 0.38, 0.36, 0.32, 0.23},
}

var fshobstEW = [5][5]float64{
	{1.00, 1.00, 1.00, 1.00, 1.00},
	{1.00, 0.91, 0.87, 0.81, 0.65},
	{1.00, 0.86, 0.82, 0.76, 0.61},
	{1.00, 0.71, 0.68, 0.61, 0.51},
	{1.00, 0.53, 0.51, 0.48, 0.39},
}

func setbackRangeVertical(r float64) int {
	switch {
	case r < 0.05:
		return 0
	case r <= 0.1:
		return 1
	case r <= 0.2:
		return 2
	case r <= 0.5:
		return 3
	default:
		return 4
	}
}

func fshobstVertical(orientation geometry.Orientation, rh, rw float64) float64 {
	i := setbackRangeVertical(rh)
	j := setbackRangeVertical(rw)
	switch orientation {
	case geometry.South:
		return fshobstSouth[i][j]
	case geometry.SouthEast, geometry.SouthWest:
		return fshobstSESW[i][j]
	case geometry.East, geometry.West:
		return fshobstEW[i][j]
	default:
		// North-facing recesses block no meaningful direct radiation.
		return 1.0
	}
}

// fshobstSkylight is indexed by (max range, min range) of the two recess
// ratios.
var fshobstSkylight = map[[2]int]float64{
	{0, 0}: 0.42,
	{1, 0}: 0.43, {1, 1}: 0.46,
	{2, 0}: 0.43, {2, 1}: 0.48, {2, 2}: 0.52,
	{3, 0}: 0.43, {3, 1}: 0.50, {3, 2}: 0.55, {3, 3}: 0.60,
	{4, 0}: 0.44, {4, 1}: 0.51, {4, 2}: 0.58, {4, 3}: 0.66, {4, 4}: 0.75,
	{5, 0}: 0.44, {5, 1}: 0.52, {5, 2}: 0.59, {5, 3}: 0.68, {5, 4}: 0.79,
	{5, 5}: 0.85,
}

func setbackRangeHorizontal(r float64) int {
	switch {
	case r <= 0.1:
		return 0
	case r <= 0.5:
		return 1
	case r <= 1.0:
		return 2
	case r <= 2.0:
		return 3
	case r <= 5.0:
		return 4
	default:
		return 5
	}
}

func fshobstHorizontal(rh, rw float64) float64 {
	i := setbackRangeHorizontal(rh)
	j := setbackRangeHorizontal(rw)
	if i < j {
		i, j = j, i
	}
	if v, ok := fshobstSkylight[[2]int{i, j}]; ok {
		return v
	}
	return 0.85
}
