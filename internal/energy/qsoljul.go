package energy

import (
	"github.com/vk/thermenv/internal/geometry"
)

// Defaults for windows with no resolvable construction: frame fraction
// of a standard unit and single glazing with shading devices.
const (
	ffDefault      = 0.20
	gglshwiDefault = 0.77
)

// QSolJulData is the July solar control parameter q_sol;jul
// (CTE DB-HE 2019) with its per-orientation breakdown.
type QSolJulData struct {
	// q_sol;jul [kWh/m²·month].
	QSolJul float64 `json:"q_soljul"`
	// July gains [kWh/month].
	TotalGains     float64 `json:"Q_soljul"`
	AWp            float64 `json:"a_wp"`
	IrradianceMean float64 `json:"irradiance_mean"`
	FShobstMean    float64 `json:"fshobst_mean"`
	GglshwiMean    float64 `json:"gglshwi_mean"`
	FFMean         float64 `json:"f_f_mean"`

	Detail map[geometry.Orientation]QSolJulDetail `json:"detail"`
}

// QSolJulDetail aggregates one orientation, window area weighted.
type QSolJulDetail struct {
	Gains       float64 `json:"gains"`
	A           float64 `json:"a"`
	Irradiance  float64 `json:"irradiance"`
	FFMean      float64 `json:"f_f_mean"`
	GglshwiMean float64 `json:"gglshwi_mean"`
	FShobstMean float64 `json:"fshobst_mean"`
}

// ComputeQSolJul calculates the solar control parameter from the
// cumulated July radiation per orientation. Windows with no remote
// obstructions factor fall back to the calculated value or 1.0.
func ComputeQSolJul(props *Props, totRadJul map[geometry.Orientation]float64) QSolJulData {
	data := QSolJulData{Detail: make(map[geometry.Orientation]QSolJulDetail)}

	for _, win := range props.Windows {
		if !win.IsExtOrGndTEnv {
			continue
		}
		radJul := totRadJul[win.Orientation]
		area := win.Area * win.Multiplier

		gglshwi := gglshwiDefault
		ff := ffDefault
		if wc, ok := props.WinCons[win.Cons]; ok {
			ff = wc.FF
			if wc.GGlShWi != nil {
				gglshwi = *wc.GGlShWi
			}
		}

		fshobst := 1.0
		if win.FShobst != nil {
			fshobst = *win.FShobst
		} else if win.FShobstCalc != nil {
			fshobst = *win.FShobstCalc
		}

		gains := fshobst * gglshwi * (1.0 - ff) * area * radJul

		detail := data.Detail[win.Orientation]
		detail.A += area
		detail.Gains += gains
		detail.Irradiance = radJul
		detail.FFMean += ff * area
		detail.GglshwiMean += gglshwi * area
		detail.FShobstMean += fshobst * area
		data.Detail[win.Orientation] = detail

		data.AWp += area
		data.IrradianceMean += radJul * area
		data.FShobstMean += fshobst * area
		data.GglshwiMean += gglshwi * area
		data.FFMean += ff * area
		data.TotalGains += gains
	}

	if props.Global.ARef > 1e-9 {
		data.QSolJul = data.TotalGains / props.Global.ARef
	}
	if data.AWp > 1e-9 {
		data.IrradianceMean /= data.AWp
		data.FShobstMean /= data.AWp
		data.GglshwiMean /= data.AWp
		data.FFMean /= data.AWp
	}
	for orientation, detail := range data.Detail {
		if detail.A > 1e-9 {
			detail.FFMean /= detail.A
			detail.GglshwiMean /= detail.A
			detail.FShobstMean /= detail.A
			data.Detail[orientation] = detail
		}
	}
	return data
}
