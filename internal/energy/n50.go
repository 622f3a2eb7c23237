package energy

import "github.com/vk/thermenv/internal/model"

// Pressure conversion factor between 100 Pa and 50 Pa permeabilities,
// (50/100)^0.67.
const pressureFactor50 = 0.629

// Default window permeability when its construction is unknown
// [m³/h·m²], airtightness class 0.
const c100Default = 100.0

// N50Data is the air change rate at 50 Pa with the reference value and,
// when a blower door test result is available, the opaque permeability
// backed out from it.
type N50Data struct {
	// n50 from the test result when available, reference otherwise [1/h].
	N50 float64 `json:"n50"`
	// n50 from reference opaque permeability [1/h].
	N50Ref     float64 `json:"n50_ref"`
	WallsA     float64 `json:"walls_a"`
	WallsCRef  float64 `json:"walls_c_ref"`
	WallsCARef float64 `json:"walls_c_a_ref"`
	WallsC     float64 `json:"walls_c"`
	WallsCA    float64 `json:"walls_c_a"`
	WindowsA   float64 `json:"windows_a"`
	WindowsC   float64 `json:"windows_c"`
	WindowsCA  float64 `json:"windows_c_a"`
	Vol        float64 `json:"vol"`
}

// ComputeN50 estimates the 50 Pa air change rate per CTE DB-HE 2019
// from the envelope opaques facing outside air, their windows and the
// net envelope volume.
func ComputeN50(props *Props) N50Data {
	data := N50Data{Vol: props.Global.VolEnvNet}

	for wallID, wall := range props.Walls {
		if !wall.IsTEnv || wall.Bounds != model.BoundsExterior {
			continue
		}
		winA := 0.0
		winCA := 0.0
		for _, win := range props.Windows {
			if win.Wall != wallID {
				continue
			}
			c100 := c100Default
			if wc, ok := props.WinCons[win.Cons]; ok {
				c100 = wc.C100
			}
			winA += win.Area
			winCA += win.Area * c100
		}
		data.WallsA += wall.AreaNet * wall.Multiplier
		data.WindowsA += winA * wall.Multiplier
		data.WindowsCA += winCA * wall.Multiplier
	}

	if data.WindowsA > 0.001 {
		data.WindowsC = data.WindowsCA / data.WindowsA
	}

	data.WallsCRef = props.Global.CO100
	data.WallsCARef = data.WallsA * data.WallsCRef

	if data.Vol > 0.001 {
		data.N50Ref = pressureFactor50 * (data.WallsCARef + data.WindowsCA) / data.Vol
	}

	if props.Global.N50Test != nil {
		data.N50 = *props.Global.N50Test
		if data.WallsA > 0.001 {
			data.WallsC = ((data.N50*data.Vol)/pressureFactor50 - data.WindowsCA) / data.WallsA
			data.WallsCA = data.WallsA * data.WallsC
		} else {
			data.WallsC = data.WallsCRef
			data.WallsCA = data.WallsCARef
		}
	} else {
		data.N50 = data.N50Ref
		data.WallsC = data.WallsCRef
		data.WallsCA = data.WallsCARef
	}
	return data
}
