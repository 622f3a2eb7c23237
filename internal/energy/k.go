package energy

import (
	"github.com/vk/thermenv/internal/geometry"
	"github.com/vk/thermenv/internal/model"
)

// KData is the global transmittance coefficient K (CTE DB-HE 2019) with
// its per-category breakdown.
type KData struct {
	// K global [W/m²K].
	K       float64     `json:"K"`
	Summary KSummary    `json:"summary"`
	Walls   KElement    `json:"walls"`
	Roofs   KElement    `json:"roofs"`
	Floors  KElement    `json:"floors"`
	Ground  KElement    `json:"ground"`
	Windows KElement    `json:"windows"`
	TBs     KTBElements `json:"tbs"`
}

// KSummary aggregates areas and conductances over all categories.
type KSummary struct {
	A         float64 `json:"a"`
	AU        float64 `json:"au"`
	OpaquesA  float64 `json:"opaques_a"`
	OpaquesAU float64 `json:"opaques_au"`
	WindowsA  float64 `json:"windows_a"`
	WindowsAU float64 `json:"windows_au"`
	TBsL      float64 `json:"tbs_l"`
	TBsPsiL   float64 `json:"tbs_psil"`
}

// KElement accumulates one element category.
type KElement struct {
	A     float64  `json:"a"`
	AU    float64  `json:"au"`
	UMax  *float64 `json:"u_max,omitempty"`
	UMin  *float64 `json:"u_min,omitempty"`
	UMean *float64 `json:"u_mean,omitempty"`
}

func (e *KElement) add(area, u float64) {
	e.A += area
	e.AU += area * u
	if e.UMax == nil || u > *e.UMax {
		v := u
		e.UMax = &v
	}
	if e.UMin == nil || u < *e.UMin {
		v := u
		e.UMin = &v
	}
}

func (e *KElement) finish() {
	if e.A > 0.001 {
		mean := e.AU / e.A
		e.UMean = &mean
	}
}

// KTBElements groups thermal bridges by kind.
type KTBElements struct {
	Roof              KTBElement `json:"roof"`
	Balcony           KTBElement `json:"balcony"`
	Corner            KTBElement `json:"corner"`
	IntermediateFloor KTBElement `json:"intermediate_floor"`
	InternalWall      KTBElement `json:"internal_wall"`
	GroundFloor       KTBElement `json:"ground_floor"`
	Pillar            KTBElement `json:"pillar"`
	Window            KTBElement `json:"window"`
	Generic           KTBElement `json:"generic"`
}

// KTBElement accumulates one thermal bridge kind.
type KTBElement struct {
	L    float64 `json:"l"`
	PsiL float64 `json:"psil"`
}

// ComputeK calculates the mean transmittance of opaques, windows and
// thermal bridges in contact with outside air or the ground. Elements
// without a resolvable transmittance are left out.
func ComputeK(props *Props) KData {
	var k KData

	for wallID, wall := range props.Walls {
		if !wall.IsExtOrGndTEnv {
			continue
		}
		for _, win := range props.Windows {
			if win.Wall != wallID || win.U == nil {
				continue
			}
			k.Windows.add(wall.Multiplier*win.Area, *win.U)
		}
		if wall.U == nil {
			continue
		}
		area := wall.Multiplier * wall.AreaNet
		switch {
		case wall.Bounds == model.BoundsGround:
			k.Ground.add(area, *wall.U)
		case wall.Tilt == geometry.TiltTop:
			k.Roofs.add(area, *wall.U)
		case wall.Tilt == geometry.TiltBottom:
			k.Floors.add(area, *wall.U)
		default:
			k.Walls.add(area, *wall.U)
		}
	}
	k.Windows.finish()
	k.Ground.finish()
	k.Roofs.finish()
	k.Floors.finish()
	k.Walls.finish()

	for _, tb := range props.ThermalBridges {
		// Negative lengths flag unmeasured bridges.
		if tb.L < 0.0 {
			continue
		}
		e := k.TBs.byKind(tb.Kind)
		e.L += tb.L
		e.PsiL += tb.Psi * tb.L
	}

	tbs := []KTBElement{
		k.TBs.Roof, k.TBs.Balcony, k.TBs.Corner, k.TBs.IntermediateFloor,
		k.TBs.InternalWall, k.TBs.GroundFloor, k.TBs.Pillar, k.TBs.Window,
		k.TBs.Generic,
	}
	for _, tb := range tbs {
		k.Summary.TBsL += tb.L
		k.Summary.TBsPsiL += tb.PsiL
	}
	k.Summary.OpaquesA = k.Roofs.A + k.Floors.A + k.Walls.A + k.Ground.A
	k.Summary.OpaquesAU = k.Roofs.AU + k.Floors.AU + k.Walls.AU + k.Ground.AU
	k.Summary.WindowsA = k.Windows.A
	k.Summary.WindowsAU = k.Windows.AU
	k.Summary.A = k.Summary.OpaquesA + k.Summary.WindowsA
	k.Summary.AU = k.Summary.OpaquesAU + k.Summary.WindowsAU + k.Summary.TBsPsiL
	if k.Summary.A >= 0.01 {
		k.K = k.Summary.AU / k.Summary.A
	}
	return k
}

func (t *KTBElements) byKind(kind model.TBKind) *KTBElement {
	switch kind {
	case model.TBRoof:
		return &t.Roof
	case model.TBBalcony:
		return &t.Balcony
	case model.TBCorner:
		return &t.Corner
	case model.TBIntermediateFloor:
		return &t.IntermediateFloor
	case model.TBInternalWall:
		return &t.InternalWall
	case model.TBGroundFloor:
		return &t.GroundFloor
	case model.TBPillar:
		return &t.Pillar
	case model.TBWindow:
		return &t.Window
	default:
		return &t.Generic
	}
}
