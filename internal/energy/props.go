package energy

import (
	"github.com/vk/thermenv/internal/geometry"
	"github.com/vk/thermenv/internal/model"
)

// Reference opaque air permeability at 100 Pa [m³/h·m²], CTE DB-HE 2019.
const (
	coRefNew      = 16.0
	coRefExisting = 29.0
)

// Props holds the thermal and geometric properties of every model
// element, resolved once so the indicator calculations work from plain
// values instead of chasing references.
type Props struct {
	Global         GlobalProps                  `json:"global"`
	Spaces         map[model.ID]SpaceProps      `json:"spaces"`
	Walls          map[model.ID]WallProps       `json:"walls"`
	Windows        map[model.ID]WinProps        `json:"windows"`
	ThermalBridges map[model.ID]TBProps         `json:"thermal_bridges"`
	WallCons       map[model.ID]WallConsProps   `json:"wallcons"`
	WinCons        map[model.ID]WinConsProps    `json:"wincons"`
}

// GlobalProps are whole-building values.
type GlobalProps struct {
	ARef                  float64  `json:"a_ref"`
	VolEnvGross           float64  `json:"vol_env_gross"`
	VolEnvNet             float64  `json:"vol_env_net"`
	VolEnvInhNet          float64  `json:"vol_env_inh_net"`
	Compacity             float64  `json:"compacity"`
	GlobalVentilationRate float64  `json:"global_ventilation_rate"`
	CO100                 float64  `json:"c_o_100"`
	N50Test               *float64 `json:"n50_test_ach,omitempty"`
}

type SpaceProps struct {
	Kind       model.SpaceKind `json:"kind"`
	InsideTEnv bool            `json:"inside_tenv"`
	Area       float64         `json:"area"`
	Multiplier float64         `json:"multiplier"`
	Height     float64         `json:"height"`
	HeightNet  float64         `json:"height_net"`
	VolumeNet  float64         `json:"volume_net"`
}

type WallProps struct {
	Space          model.ID             `json:"space"`
	SpaceNext      *model.ID            `json:"space_next,omitempty"`
	Bounds         model.BoundaryType   `json:"bounds"`
	Cons           model.ID             `json:"cons"`
	Orientation    geometry.Orientation `json:"orientation"`
	Tilt           geometry.TiltClass   `json:"tilt"`
	AreaGross      float64              `json:"area_gross"`
	AreaNet        float64              `json:"area_net"`
	Multiplier     float64              `json:"multiplier"`
	IsTEnv         bool                 `json:"is_tenv"`
	IsExtOrGndTEnv bool                 `json:"is_ext_or_gnd_tenv"`
	U              *float64             `json:"u_value,omitempty"`
	UTrace         UTrace               `json:"u_trace"`
}

type WinProps struct {
	Wall           model.ID             `json:"wall"`
	Cons           model.ID             `json:"cons"`
	Orientation    geometry.Orientation `json:"orientation"`
	Tilt           geometry.TiltClass   `json:"tilt"`
	Area           float64              `json:"area"`
	Multiplier     float64              `json:"multiplier"`
	IsExtOrGndTEnv bool                 `json:"is_ext_or_gnd_tenv"`
	U              *float64             `json:"u_value,omitempty"`
	FShobst        *float64             `json:"f_shobst,omitempty"`
	FShobstCalc    *float64             `json:"f_shobst_calc,omitempty"`
}

type TBProps struct {
	Kind model.TBKind `json:"kind"`
	L    float64      `json:"l"`
	Psi  float64      `json:"psi"`
}

type WallConsProps struct {
	RIntrinsic *float64 `json:"r_intrinsic,omitempty"`
}

type WinConsProps struct {
	GGlWi   *float64 `json:"g_glwi,omitempty"`
	GGlShWi *float64 `json:"g_glshwi,omitempty"`
	U       *float64 `json:"u_value,omitempty"`
	FF      float64  `json:"f_f"`
	C100    float64  `json:"c_100"`
}

// NewProps resolves the model into per-element properties.
func NewProps(m *model.Model) *Props {
	p := &Props{
		Spaces:         make(map[model.ID]SpaceProps, len(m.Spaces)),
		Walls:          make(map[model.ID]WallProps, len(m.Walls)),
		Windows:        make(map[model.ID]WinProps, len(m.Windows)),
		ThermalBridges: make(map[model.ID]TBProps, len(m.ThermalBridges)),
		WallCons:       make(map[model.ID]WallConsProps, len(m.Cons.WallCons)),
		WinCons:        make(map[model.ID]WinConsProps, len(m.Cons.WinCons)),
	}

	for i := range m.Cons.WallCons {
		wc := &m.Cons.WallCons[i]
		var props WallConsProps
		if r, ok := wc.Resistance(&m.Mats); ok {
			props.RIntrinsic = &r
		}
		p.WallCons[wc.ID] = props
	}
	for i := range m.Cons.WinCons {
		wc := &m.Cons.WinCons[i]
		props := WinConsProps{FF: wc.FF, C100: wc.C100}
		if u, ok := wc.U(&m.Mats); ok {
			props.U = &u
		}
		if g, ok := wc.GGlWi(&m.Mats); ok {
			props.GGlWi = &g
		}
		if g, ok := wc.GGlShWiValue(&m.Mats); ok {
			props.GGlShWi = &g
		}
		p.WinCons[wc.ID] = props
	}

	for i := range m.Spaces {
		s := &m.Spaces[i]
		heightNet := m.SpaceNetHeight(s)
		p.Spaces[s.ID] = SpaceProps{
			Kind:       s.Kind,
			InsideTEnv: s.InsideTEnv,
			Area:       s.Area,
			Multiplier: s.Multiplier,
			Height:     s.Height,
			HeightNet:  heightNet,
			VolumeNet:  s.Area * heightNet,
		}
	}

	envWalls := make(map[model.ID]bool)
	for _, w := range m.WallsOfEnvelope() {
		envWalls[w.ID] = true
	}

	for i := range m.Walls {
		w := &m.Walls[i]
		multiplier := 1.0
		if sp, ok := p.Spaces[w.Space]; ok {
			multiplier = sp.Multiplier
		}
		props := WallProps{
			Space:          w.Space,
			SpaceNext:      w.NextTo,
			Bounds:         w.Bounds,
			Cons:           w.Cons,
			Orientation:    w.Orientation(),
			Tilt:           w.TiltClass(),
			AreaGross:      w.Area(),
			AreaNet:        w.NetArea(m.Windows),
			Multiplier:     multiplier,
			IsTEnv:         m.IsEnvelopeBoundary(w),
			IsExtOrGndTEnv: envWalls[w.ID],
		}
		if u, trace, ok := WallU(m, w); ok {
			props.U = &u
			props.UTrace = trace
		}
		p.Walls[w.ID] = props
	}

	for i := range m.Windows {
		win := &m.Windows[i]
		props := WinProps{
			Wall:        win.Wall,
			Cons:        win.Cons,
			Area:        win.Area(),
			Multiplier:  1.0,
			FShobst:     win.FShobst,
			FShobstCalc: win.FShobstCalc,
		}
		if wp, ok := p.Walls[win.Wall]; ok {
			props.Orientation = wp.Orientation
			props.Tilt = wp.Tilt
			props.Multiplier = wp.Multiplier
			props.IsExtOrGndTEnv = wp.IsExtOrGndTEnv
		}
		if wc, ok := p.WinCons[win.Cons]; ok {
			props.U = wc.U
		}
		p.Windows[win.ID] = props
	}

	for i := range m.ThermalBridges {
		tb := &m.ThermalBridges[i]
		p.ThermalBridges[tb.ID] = TBProps{Kind: tb.Kind, L: tb.L, Psi: tb.Psi}
	}

	coRef := coRefExisting
	if m.Meta.IsNewBuilding {
		coRef = coRefNew
	}
	p.Global = GlobalProps{
		ARef:                  m.ARef(),
		VolEnvGross:           m.VolEnvGross(),
		VolEnvNet:             m.VolEnvNet(),
		VolEnvInhNet:          m.VolEnvInhNet(),
		Compacity:             m.Compacity(),
		GlobalVentilationRate: globalVentilationRate(m),
		CO100:                 coRef,
		N50Test:               m.Meta.N50Test,
	}
	return p
}
