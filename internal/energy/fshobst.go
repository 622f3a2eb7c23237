package energy

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/vk/thermenv/internal/bvh"
	"github.com/vk/thermenv/internal/climate"
	"github.com/vk/thermenv/internal/geometry"
	"github.com/vk/thermenv/internal/model"
)

// Ground reflectance assumed for radiation on window planes.
const windowAlbedo = 0.2

// Leaf capacity of the occluder hierarchy.
const occluderLeafSize = 30

// UpdateFShobst recalculates the remote obstructions factor of every
// window by casting rays from a grid on the window plane towards the
// July sun positions. Only blocked direct radiation is modelled; sky
// and ground view factors stay fixed, so the result overestimates
// slightly against full backwards ray tracing.
func UpdateFShobst(m *model.Model) {
	occluders := CollectOccluders(m)
	samples := climate.JulySunSamples(m.Meta.Climate)
	if len(samples) == 0 {
		return
	}

	for i := range m.Windows {
		window := &m.Windows[i]
		wall := m.GetWall(window.Wall)
		if wall == nil {
			continue
		}
		origins := rayOriginsForWindow(window, wall)

		sum := 0.0
		n := 0
		for _, s := range samples {
			rayDir := climate.RayDirToSun(s.Azimuth, s.Altitude)
			dir, dif := climate.RadiationOnSurface(s, wall.Geometry.Tilt, wall.Geometry.Azimuth, windowAlbedo)
			if dir+dif < 1e-9 {
				continue
			}
			fshdir := sunlitFraction(window, wall, origins, rayDir, occluders)
			sum += (fshdir*dir + dif) / (dir + dif)
			n++
		}

		fshobst := 1.0
		if n > 0 {
			fshobst = geometry.Round2(sum / float64(n))
		}
		window.FShobstCalc = &fshobst
	}
}

// sunlitFraction is the share of the window grid with direct sun for
// one sun position, in [0, 1]. Windows with incomplete geometry count
// as fully sunlit; windows facing away from the sun as fully shaded.
func sunlitFraction(window *model.Window, wall *model.Wall, origins []geometry.Point3, rayDir r3.Vec, occluders []Occluder) float64 {
	if len(origins) == 0 {
		return 1.0
	}
	normal, ok := wall.Geometry.Normal()
	if !ok {
		return 1.0
	}
	// Rays against the facing of the wall would enter the window from
	// behind.
	if r3.Dot(normal, rayDir) < 0.01 {
		return 0.0
	}

	candidates := make([]Occluder, 0, len(occluders))
	for _, oc := range occluders {
		if oc.ID == wall.ID {
			continue
		}
		if oc.LinkedWindow != nil && *oc.LinkedWindow != window.ID {
			continue
		}
		candidates = append(candidates, oc)
	}

	tree := bvh.Build(candidates, occluderLeafSize)
	hits := 0
	for _, origin := range origins {
		if _, ok := tree.FirstHit(geometry.NewRay(origin, rayDir)); ok {
			hits++
		}
	}
	return 1.0 - float64(hits)/float64(len(origins))
}

// rayOriginsForWindow samples the window on a regular grid, one point
// per cell center, pushed back to the setback plane. The grid aims for
// 20 cm cells within 5 to 10 divisions per dimension.
func rayOriginsForWindow(window *model.Window, wall *model.Wall) []geometry.Point3 {
	wg := &window.Geometry
	if wg.Position == nil {
		return nil
	}
	toGlobal, ok := wall.Geometry.ToGlobal()
	if !ok {
		return nil
	}

	nx := gridDivisions(wg.Width)
	ny := gridDivisions(wg.Height)
	stepX := wg.Width / float64(nx)
	stepY := wg.Height / float64(ny)

	origins := make([]geometry.Point3, 0, nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			local := geometry.Point3{
				X: wg.Position.X + (float64(i)+0.5)*stepX,
				Y: wg.Position.Y + (float64(j)+0.5)*stepY,
				Z: -wg.Setback,
			}
			origins = append(origins, toGlobal.Apply(local))
		}
	}
	return origins
}

func gridDivisions(dim float64) int {
	n := int(dim/0.2 + 0.5)
	if n < 5 {
		return 5
	}
	if n > 10 {
		return 10
	}
	return n
}
