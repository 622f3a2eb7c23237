package energy

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/vk/thermenv/internal/geometry"
	"github.com/vk/thermenv/internal/model"
)

// Occluder is a surface that can block direct sun: an opaque element
// facing outside air, a shading element or a window reveal. Reveal
// occluders carry the window they belong to so they only shade it.
type Occluder struct {
	ID           model.ID
	LinkedWindow *model.ID

	normal  r3.Vec
	toLocal geometry.Transform
	polygon geometry.Polygon
	box     geometry.AABB
}

// AABB implements bvh.Primitive.
func (o Occluder) AABB() geometry.AABB { return o.box }

// IntersectRay implements bvh.Primitive.
func (o Occluder) IntersectRay(ray geometry.Ray) (float64, bool) {
	return ray.IntersectPolygon(o.polygon, o.toLocal, o.normal)
}

// newOccluder builds an occluder from an element's geometry. Elements
// without a position cannot occlude anything.
func newOccluder(id model.ID, linked *model.ID, g *geometry.WallGeom) (Occluder, bool) {
	toLocal, ok := g.ToLocal()
	if !ok {
		return Occluder{}, false
	}
	normal, ok := g.Normal()
	if !ok {
		return Occluder{}, false
	}
	return Occluder{
		ID:           id,
		LinkedWindow: linked,
		normal:       normal,
		toLocal:      toLocal,
		polygon:      g.Polygon,
		box:          g.AABB(),
	}, true
}

// CollectOccluders gathers the potential sun blockers of a model:
// opaque elements facing outside air or adiabatic, shading elements and
// the reveal shades derived from window setbacks.
func CollectOccluders(m *model.Model) []Occluder {
	var occluders []Occluder
	for i := range m.Walls {
		w := &m.Walls[i]
		if w.Bounds != model.BoundsAdiabatic && w.Bounds != model.BoundsExterior {
			continue
		}
		if oc, ok := newOccluder(w.ID, nil, &w.Geometry); ok {
			occluders = append(occluders, oc)
		}
	}
	for i := range m.Shades {
		s := &m.Shades[i]
		if oc, ok := newOccluder(s.ID, nil, &s.Geometry); ok {
			occluders = append(occluders, oc)
		}
	}
	for _, linked := range m.WindowSetbackShades() {
		winID := linked.Window
		if oc, ok := newOccluder(linked.Shade.ID, &winID, &linked.Shade.Geometry); ok {
			occluders = append(occluders, oc)
		}
	}
	return occluders
}
