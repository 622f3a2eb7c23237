// Package energy derives thermal indicators from an envelope model:
// element transmittances, the global transmittance coefficient K, the
// air change rate at 50 Pa and the July solar control parameter.
//
// Transmittances follow UNE-EN ISO 6946 for elements facing outside
// air, UNE-EN ISO 13370 for elements in contact with the ground and
// UNE-EN ISO 13789 for elements facing unconditioned spaces.
package energy

import (
	"math"

	"github.com/vk/thermenv/internal/geometry"
	"github.com/vk/thermenv/internal/model"
)

// Surface resistances, UNE-EN ISO 6946 [m²K/W].
const (
	rsiAscending  = 0.10
	rsiHorizontal = 0.13
	rsiDescending = 0.17
	rse           = 0.04
)

// Ground and perimeter insulation conductivities [W/mK].
const (
	lambdaGround     = 2.0
	lambdaInsulation = 0.035
)

// Assumed basement wall thickness for slab calculations [m].
const slabWallWidth = 0.3

// UMethod identifies the formula branch a transmittance came from.
type UMethod string

const (
	UAdiabatic      UMethod = "adiabatic"
	UExterior       UMethod = "exterior"
	UGroundTop      UMethod = "ground-top"
	UGroundSlab     UMethod = "ground-slab"
	UGroundWall     UMethod = "ground-wall"
	UInteriorEqual  UMethod = "interior-equal"
	UInteriorUncond UMethod = "interior-unconditioned"
)

// UTerm is one named intermediate value of a transmittance calculation.
type UTerm struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// UTrace records which branch produced a transmittance and the
// intermediate values in computation order.
type UTrace struct {
	Method UMethod `json:"method"`
	Terms  []UTerm `json:"terms,omitempty"`
}

func (t *UTrace) add(name string, value float64) {
	t.Terms = append(t.Terms, UTerm{Name: name, Value: value})
}

// WallU computes the thermal transmittance of an opaque element in its
// position, in W/m²K. Adiabatic elements report 0.0. Elements whose
// construction or space cannot be resolved report ok=false and are
// excluded from aggregates.
func WallU(m *model.Model, w *model.Wall) (float64, UTrace, bool) {
	var trace UTrace

	var rIntrinsic float64
	rOK := false
	if cons := m.Cons.GetWallCons(w.Cons); cons != nil {
		rIntrinsic, rOK = cons.Resistance(&m.Mats)
	}

	switch w.Bounds {
	case model.BoundsAdiabatic:
		trace.Method = UAdiabatic
		return 0.0, trace, true

	case model.BoundsExterior:
		if !rOK {
			return 0, trace, false
		}
		u := uExterior(w.TiltClass(), rIntrinsic, &trace)
		return u, trace, true

	case model.BoundsGround:
		if !rOK {
			return 0, trace, false
		}
		uw := uExterior(w.TiltClass(), rIntrinsic, &trace)
		space := m.GetSpace(w.Space)
		if space == nil {
			return 0, trace, false
		}
		dt, ok := slabEquivalentThickness(m, space)
		if !ok {
			return 0, trace, false
		}
		trace.add("d_t", dt)
		psiGndExt := slabPerimeterPsi(m, dt)
		trace.add("psi_gnd_ext", psiGndExt)
		charDim := slabCharDim(m, space)
		trace.add("char_dim", charDim)
		z := math.Max(-space.Z, 0.0)
		trace.add("z", z)

		switch w.TiltClass() {
		case geometry.TiltTop:
			trace.Method = UGroundTop
			return uw, trace, true
		case geometry.TiltBottom:
			u := uGroundSlab(z, dt, charDim, psiGndExt, &trace)
			return u, trace, true
		default:
			heightNet := m.SpaceNetHeight(space)
			trace.add("space_height_net", heightNet)
			u := uGroundWall(z, uw, dt, heightNet, &trace)
			return u, trace, true
		}

	case model.BoundsInterior:
		return uInterior(m, w, rIntrinsic, rOK, &trace)
	}
	return 0, trace, false
}

// uExterior is the transmittance of an element facing outside air, with
// reference surface resistances by heat flow direction.
func uExterior(tilt geometry.TiltClass, rIntrinsic float64, trace *UTrace) float64 {
	var rsi float64
	switch tilt {
	case geometry.TiltBottom:
		rsi = rsiDescending
	case geometry.TiltTop:
		rsi = rsiAscending
	default:
		rsi = rsiHorizontal
	}
	trace.Method = UExterior
	trace.add("r_intrinsic", rIntrinsic)
	trace.add("rsi", rsi)
	trace.add("rse", rse)
	u := geometry.Round2(1.0 / (rIntrinsic + rsi + rse))
	trace.add("u_exterior", u)
	return u
}

// uGroundSlab is the transmittance of a slab on ground, UNE-EN ISO
// 13370 9.1 and 9.3.2, corrected for perimeter insulation per Annex B.
func uGroundSlab(z, dt, charDim, psiGndExt float64, trace *UTrace) float64 {
	trace.Method = UGroundSlab
	bLimit := dt + 0.5*z
	var uBF float64
	if bLimit < charDim {
		// Uninsulated and moderately insulated slabs (11).
		uBF = (2.0 * lambdaGround / (math.Pi*charDim + bLimit)) *
			math.Log(1.0+math.Pi*charDim/bLimit)
	} else {
		// Well insulated slabs (12).
		uBF = lambdaGround / (0.457*charDim + bLimit)
	}
	trace.add("u_bf", uBF)
	u := geometry.Round2(uBF + 2.0*psiGndExt/charDim)
	trace.add("u", u)
	return u
}

// uGroundWall is the transmittance of a basement wall, UNE-EN ISO 13370
// 9.3.3, height-weighted when the wall is only partly below grade.
func uGroundWall(z, uw, dt, spaceHeightNet float64, trace *UTrace) float64 {
	trace.Method = UGroundWall
	if math.Abs(z) < 0.01 {
		trace.add("u", uw)
		return uw
	}
	// Equivalent basement wall thickness (13).
	dw := lambdaGround / uw
	trace.add("d_w", dw)
	dtw := math.Min(dw, dt)
	uBW := geometry.Round2(
		(2.0 * lambdaGround / (math.Pi * z)) *
			(1.0 + 0.5*dtw/(dtw+z)) *
			math.Log(z/dw+1.0))
	trace.add("u_bw", uBW)

	h := 0.0
	if spaceHeightNet > z {
		h = spaceHeightNet - z
	}
	if h < 1e-9 {
		trace.add("u", uBW)
		return uBW
	}
	u := geometry.Round2((z*uBW + h*uw) / spaceHeightNet)
	trace.add("u", u)
	return u
}

// uInterior handles elements between spaces: equal conditioning on both
// sides uses plain surface resistances (UNE-EN ISO 13789 table 8);
// conditioned to unconditioned applies the coupling correction of
// UNE-EN ISO 6946 5.4.3 / ISO 13370 9.4.
func uInterior(m *model.Model, w *model.Wall, rIntrinsic float64, rOK bool, trace *UTrace) (float64, UTrace, bool) {
	if !rOK || w.NextTo == nil {
		return 0, *trace, false
	}
	space := m.GetSpace(w.Space)
	if space == nil {
		return 0, *trace, false
	}
	nextSpace := m.GetSpace(*w.NextTo)
	if nextSpace == nil {
		return 0, *trace, false
	}

	thisCond := space.Kind == model.Conditioned
	nextCond := nextSpace.Kind == model.Conditioned

	// Element resistance by heat flow direction.
	var rf float64
	tilt := w.TiltClass()
	switch {
	case (thisCond && !nextCond && tilt == geometry.TiltBottom) ||
		(!thisCond && nextCond && tilt == geometry.TiltTop):
		rf = rIntrinsic + 2.0*rsiDescending
	case (thisCond && !nextCond && tilt == geometry.TiltTop) ||
		(!thisCond && nextCond && tilt == geometry.TiltBottom):
		rf = rIntrinsic + 2.0*rsiAscending
	default:
		rf = rIntrinsic + 2.0*rsiHorizontal
	}
	trace.add("r_f", rf)

	var uncondSpace *model.Space
	switch {
	case thisCond && !nextCond:
		uncondSpace = nextSpace
	case !thisCond && nextCond:
		uncondSpace = space
	}
	if uncondSpace == nil {
		trace.Method = UInteriorEqual
		u := geometry.Round2(1.0 / rf)
		trace.add("u", u)
		return u, *trace, true
	}

	trace.Method = UInteriorUncond
	ai := w.Area()
	trace.add("a_i", ai)
	uaEK := uaExternalAndGround(m, uncondSpace)
	trace.add("ua_e_k", uaEK)

	volume := uncondSpace.Area * m.SpaceNetHeight(uncondSpace)
	nv := globalVentilationRate(m)
	if uncondSpace.NV != nil {
		nv = *uncondSpace.NV
	}
	qUE := volume * nv
	trace.add("q_ue", qUE)

	hUE := uaEK + 0.33*qUE
	ru := ai / hUE
	trace.add("r_u", ru)
	u := geometry.Round2(1.0 / (rf + ru))
	trace.add("u", u)
	return u, *trace, true
}

// uaExternalAndGround sums A·U over the opaque elements and windows of
// a space facing outside air or the ground. Interior elements do not
// participate; buried fractions already carry their ground U values.
func uaExternalAndGround(m *model.Model, space *model.Space) float64 {
	ua := 0.0
	for i := range m.Walls {
		w := &m.Walls[i]
		if w.Space != space.ID {
			continue
		}
		if w.Bounds != model.BoundsExterior && w.Bounds != model.BoundsGround {
			continue
		}
		wallU, _, ok := WallU(m, w)
		if !ok {
			continue
		}
		winAU := 0.0
		for _, win := range m.WindowsOfWall(w.ID) {
			cons := m.Cons.GetWinCons(win.Cons)
			if cons == nil {
				continue
			}
			u, ok := cons.U(&m.Mats)
			if !ok {
				continue
			}
			winAU += win.Geometry.Area() * u
		}
		ua += w.NetArea(m.Windows)*wallU + winAU
	}
	return ua
}

// globalVentilationRate is the whole-building ventilation in air
// changes per hour, from the design flow rate in l/s.
func globalVentilationRate(m *model.Model) float64 {
	if m.Meta.GlobalVentilation == nil {
		return 0
	}
	vol := m.VolEnvInhNet()
	if vol < 1e-3 {
		return 0
	}
	return 3.6 * *m.Meta.GlobalVentilation / vol
}

// slabCharDim is the characteristic dimension B' of a space slab on
// ground, UNE-EN ISO 13370 8.1: B' = A / (0.5·P) with the exposed
// perimeter P. A declared exposed perimeter wins over the estimate.
func slabCharDim(m *model.Model, space *model.Space) float64 {
	var slab *model.Wall
	for i := range m.Walls {
		w := &m.Walls[i]
		if w.Space == space.ID && w.TiltClass() == geometry.TiltBottom && w.Bounds == model.BoundsGround {
			slab = w
			break
		}
	}
	if slab == nil {
		return 0
	}
	area := slab.Area()
	if area < 0.001 {
		return 0
	}

	perimeter := 0.0
	if space.ExposedPerimeter != nil {
		perimeter = *space.ExposedPerimeter
	} else {
		perimeter = estimatedExposedPerimeter(m, space, slab)
		if perimeter <= 0 {
			// Square footprint estimate when nothing better is known.
			perimeter = 4.0 * math.Sqrt(area)
		}
	}
	perimeter = math.Max(perimeter, 0.01)
	return geometry.Round2(area / (0.5 * perimeter))
}

// estimatedExposedPerimeter scales the slab perimeter by the share of
// vertical wall area facing outside, the ground or spaces with a lower
// conditioning level.
func estimatedExposedPerimeter(m *model.Model, space *model.Space, slab *model.Wall) float64 {
	totalArea := 0.0
	exteriorArea := 0.0
	for i := range m.Walls {
		w := &m.Walls[i]
		if w.Space != space.ID && (w.NextTo == nil || *w.NextTo != space.ID) {
			continue
		}
		if w.TiltClass() != geometry.TiltSide {
			continue
		}
		area := w.Area()
		totalArea += area
		switch w.Bounds {
		case model.BoundsExterior, model.BoundsGround:
			exteriorArea += area
		case model.BoundsInterior:
			if w.NextTo == nil {
				continue
			}
			next := m.GetSpace(*w.NextTo)
			if next != nil && space.Kind == model.Conditioned && next.Kind != model.Conditioned {
				exteriorArea += area
			}
		}
	}
	if totalArea < 0.001 {
		return 0
	}
	return geometry.Round2(slab.Perimeter() * exteriorArea / totalArea)
}

// slabEquivalentThickness is the total equivalent slab thickness d_t,
// UNE-EN ISO 13370 9.3.2 (10), area-weighted over the ground slabs of
// the space.
func slabEquivalentThickness(m *model.Model, space *model.Space) (float64, bool) {
	eTotal := 0.0
	aTotal := 0.0
	n := 0
	for i := range m.Walls {
		w := &m.Walls[i]
		if w.Space != space.ID || w.TiltClass() != geometry.TiltBottom || w.Bounds != model.BoundsGround {
			continue
		}
		area := w.Area()
		aTotal += area
		n++
		rIntrinsic := 0.0
		if cons := m.Cons.GetWallCons(w.Cons); cons != nil {
			if r, ok := cons.Resistance(&m.Mats); ok {
				rIntrinsic = r
			}
		}
		eTotal += area * (slabWallWidth + lambdaGround*(rsiDescending+rIntrinsic+rse))
	}
	if n == 0 || aTotal < 1e-9 {
		return 0, false
	}
	return eTotal / aTotal / float64(n), true
}

// slabPerimeterPsi is the linear transmittance from horizontal
// perimeter insulation, UNE-EN ISO 13370 Annex B (B.4, B.5).
func slabPerimeterPsi(m *model.Model, dt float64) float64 {
	// Additional equivalent thickness from the insulation band.
	d1 := m.Meta.RNPerimInsulation * (lambdaGround - lambdaInsulation)
	d := m.Meta.DPerimInsulation
	return geometry.Round3(-lambdaGround / math.Pi *
		(math.Log(1.0+d/dt) - math.Log(1.0+d/(dt+d1))))
}
