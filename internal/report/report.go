// Package report renders a converted model and its energy indicators
// into a serializable structure, applying user-supplied overrides for
// element transmittances and remote obstruction factors.
package report

import (
	"encoding/json"
	"sort"

	"github.com/vk/thermenv/internal/climate"
	"github.com/vk/thermenv/internal/energy"
	"github.com/vk/thermenv/internal/geometry"
	"github.com/vk/thermenv/internal/model"
)

// Overrides are user-supplied values that replace computed ones at
// report generation time. The model itself stays untouched.
type Overrides struct {
	// WallU replaces the computed transmittance of an opaque element.
	WallU map[model.ID]float64
	// WindowFShobst replaces the remote obstructions factor of a window.
	WindowFShobst map[model.ID]float64
}

// Report is the user-facing output: global indicators plus per-element
// properties, with the warnings gathered along the way.
type Report struct {
	Project string       `json:"project"`
	Climate climate.Zone `json:"climate"`

	ARef        float64 `json:"area_ref"`
	Compacity   float64 `json:"compactness"`
	VolEnvNet   float64 `json:"vol_env_net"`
	VolEnvGross float64 `json:"vol_env_gross"`

	K       energy.KData       `json:"K_data"`
	QSolJul energy.QSolJulData `json:"q_soljul_data"`
	N50     energy.N50Data     `json:"n50_data"`

	Walls   []WallReport   `json:"walls"`
	Windows []WindowReport `json:"windows"`

	Warnings []model.Warning `json:"warnings"`
}

// WallReport describes one opaque element.
type WallReport struct {
	ID          model.ID             `json:"id"`
	Name        string               `json:"name"`
	Bounds      model.BoundaryType   `json:"bounds"`
	Orientation geometry.Orientation `json:"orientation"`
	Tilt        geometry.TiltClass   `json:"tilt"`
	AreaGross   float64              `json:"area_gross"`
	AreaNet     float64              `json:"area_net"`
	InsideTEnv  bool                 `json:"inside_tenv"`
	U           *float64             `json:"u_value,omitempty"`
	UUser       *float64             `json:"u_value_user,omitempty"`
}

// WindowReport describes one window.
type WindowReport struct {
	ID          model.ID             `json:"id"`
	Name        string               `json:"name"`
	Wall        model.ID             `json:"wall"`
	Orientation geometry.Orientation `json:"orientation"`
	Area        float64              `json:"area"`
	U           *float64             `json:"u_value,omitempty"`
	GGlShWi     *float64             `json:"g_glshwi,omitempty"`
	FShobst     float64              `json:"f_shobst"`
	FShobstUser *float64             `json:"f_shobst_user,omitempty"`
	FShobstCalc *float64             `json:"f_shobst_calc,omitempty"`
}

// Generate builds the report for a model. Overrides are reflected both
// in the per-element values and in the aggregated indicators.
func Generate(m *model.Model, ov Overrides) *Report {
	props := energy.NewProps(m)
	applyOverrides(props, ov)

	totRadJul := climate.TotalRadiationJuly(m.Meta.Climate)
	r := &Report{
		Project:     m.Meta.Name,
		Climate:     m.Meta.Climate,
		ARef:        props.Global.ARef,
		Compacity:   props.Global.Compacity,
		VolEnvNet:   props.Global.VolEnvNet,
		VolEnvGross: props.Global.VolEnvGross,
		K:           energy.ComputeK(props),
		QSolJul:     energy.ComputeQSolJul(props, totRadJul),
		N50:         energy.ComputeN50(props),
		Warnings:    m.Check(),
	}

	for i := range m.Walls {
		w := &m.Walls[i]
		wp := props.Walls[w.ID]
		wr := WallReport{
			ID:          w.ID,
			Name:        w.Name,
			Bounds:      w.Bounds,
			Orientation: wp.Orientation,
			Tilt:        wp.Tilt,
			AreaGross:   wp.AreaGross,
			AreaNet:     wp.AreaNet,
			InsideTEnv:  wp.IsTEnv,
			U:           wp.U,
		}
		if u, ok := ov.WallU[w.ID]; ok {
			v := u
			wr.UUser = &v
		}
		r.Walls = append(r.Walls, wr)
	}
	sort.Slice(r.Walls, func(i, j int) bool { return r.Walls[i].Name < r.Walls[j].Name })

	for i := range m.Windows {
		win := &m.Windows[i]
		wp := props.Windows[win.ID]
		wr := WindowReport{
			ID:          win.ID,
			Name:        win.Name,
			Wall:        win.Wall,
			Orientation: wp.Orientation,
			Area:        wp.Area,
			U:           wp.U,
			FShobst:     effectiveFShobst(wp),
			FShobstUser: wp.FShobst,
			FShobstCalc: wp.FShobstCalc,
		}
		if wc, ok := props.WinCons[win.Cons]; ok {
			wr.GGlShWi = wc.GGlShWi
		}
		r.Windows = append(r.Windows, wr)
	}
	sort.Slice(r.Windows, func(i, j int) bool { return r.Windows[i].Name < r.Windows[j].Name })

	return r
}

// applyOverrides patches the resolved properties so that every
// downstream aggregate sees the user values.
func applyOverrides(props *energy.Props, ov Overrides) {
	for id, u := range ov.WallU {
		wp, ok := props.Walls[id]
		if !ok {
			continue
		}
		v := u
		wp.U = &v
		props.Walls[id] = wp
	}
	for id, f := range ov.WindowFShobst {
		wp, ok := props.Windows[id]
		if !ok {
			continue
		}
		v := f
		wp.FShobst = &v
		props.Windows[id] = wp
	}
}

func effectiveFShobst(wp energy.WinProps) float64 {
	if wp.FShobst != nil {
		return *wp.FShobst
	}
	if wp.FShobstCalc != nil {
		return *wp.FShobstCalc
	}
	return 1.0
}

// AsJSON renders the report as indented JSON.
func (r *Report) AsJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
