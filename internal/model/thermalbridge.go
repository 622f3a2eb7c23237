package model

import "fmt"

// TBKind classifies a linear thermal bridge by the elements it joins,
// with abbreviations close to UNE-EN ISO 14683.
type TBKind string

const (
	// TBRoof joins roof and facade (R).
	TBRoof TBKind = "ROOF"
	// TBBalcony joins balcony and facade (B).
	TBBalcony TBKind = "BALCONY"
	// TBCorner joins two facades (C).
	TBCorner TBKind = "CORNER"
	// TBIntermediateFloor joins an interior floor slab and facade (IF).
	TBIntermediateFloor TBKind = "INTERMEDIATEFLOOR"
	// TBInternalWall joins an interior partition and facade or roof (IW).
	TBInternalWall TBKind = "INTERNALWALL"
	// TBGroundFloor joins a slab-on-grade or crawl space and facade (GF).
	TBGroundFloor TBKind = "GROUNDFLOOR"
	// TBPillar is a column inside a facade (P).
	TBPillar TBKind = "PILLAR"
	// TBWindow is a window or door perimeter (W).
	TBWindow TBKind = "WINDOW"
	// TBGeneric covers everything else (G).
	TBGeneric TBKind = "GENERIC"
)

// ParseTBKind validates a thermal bridge kind name.
func ParseTBKind(s string) (TBKind, error) {
	switch TBKind(s) {
	case TBRoof, TBBalcony, TBCorner, TBIntermediateFloor, TBInternalWall,
		TBGroundFloor, TBPillar, TBWindow, TBGeneric:
		return TBKind(s), nil
	}
	return "", fmt.Errorf("unknown thermal bridge kind %q", s)
}

// ThermalBridge is a linear thermal bridge.
type ThermalBridge struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	// Kind classifies the joined elements.
	Kind TBKind `json:"kind"`
	// L is the bridge length, m.
	L float64 `json:"L"`
	// Psi is the linear thermal transmittance, W/mK.
	Psi float64 `json:"psi"`
}
