package convert

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/thermenv/internal/climate"
	"github.com/vk/thermenv/internal/geometry"
	"github.com/vk/thermenv/internal/model"
	"github.com/vk/thermenv/internal/record"
)

// Convert builds the canonical envelope model from a raw record set.
// Structural errors (broken references, malformed attributes) abort the
// conversion; degenerate shading geometry is dropped with a warning, the
// shading element being the only casualty.
func Convert(set *record.Set) (*model.Model, []model.Warning, error) {
	c := &converter{
		set:      set,
		resolver: NewResolver(set),
		polygons: make(map[string]geometry.Polygon),
	}

	meta, err := c.convertMeta()
	if err != nil {
		return nil, nil, err
	}
	c.globalDeviation = c.metaDeviation()

	if err := c.convertPolygons(); err != nil {
		return nil, nil, err
	}
	mats, err := c.convertMats()
	if err != nil {
		return nil, nil, err
	}
	cons, err := c.convertCons()
	if err != nil {
		return nil, nil, err
	}
	spaces, err := c.convertSpaces()
	if err != nil {
		return nil, nil, err
	}
	walls, err := c.convertWalls()
	if err != nil {
		return nil, nil, err
	}
	windows, accessoryShades, err := c.convertWindows(walls)
	if err != nil {
		return nil, nil, err
	}
	shades, err := c.convertShades()
	if err != nil {
		return nil, nil, err
	}
	shades = append(shades, accessoryShades...)
	bridges, err := c.convertThermalBridges()
	if err != nil {
		return nil, nil, err
	}

	m := &model.Model{
		Meta:           meta,
		Spaces:         spaces,
		Walls:          walls,
		Windows:        windows,
		ThermalBridges: bridges,
		Shades:         shades,
		Cons:           cons,
		Mats:           mats,
	}
	return m, c.warnings, nil
}

type converter struct {
	set             *record.Set
	resolver        *Resolver
	polygons        map[string]geometry.Polygon
	globalDeviation float64
	warnings        []model.Warning
}

func (c *converter) warn(id model.ID, format string, args ...any) {
	idCopy := id
	c.warnings = append(c.warnings, model.Warning{
		Level: model.LevelWarning,
		ID:    &idCopy,
		Msg:   fmt.Sprintf(format, args...),
	})
}

func (c *converter) convertMeta() (model.Meta, error) {
	recs := c.set.ByKind(record.KindMeta)
	if len(recs) == 0 {
		return model.DefaultMeta(), nil
	}
	rec := recs[0]

	zone, err := climate.ParseZone(rec.StrOr("climate", string(climate.ZoneD3)))
	if err != nil {
		return model.Meta{}, fmt.Errorf("meta %q: %w", rec.Name, err)
	}
	globalVent, err := rec.OptFloat("global_ventilation_l_s")
	if err != nil {
		return model.Meta{}, err
	}
	n50Test, err := rec.OptFloat("n50_test_ach")
	if err != nil {
		return model.Meta{}, err
	}
	return model.Meta{
		Name:              rec.Name,
		IsNewBuilding:     rec.BoolOr("is_new_building", true),
		IsDwelling:        rec.BoolOr("is_dwelling", true),
		NumDwellings:      int(rec.FloatOr("num_dwellings", 1)),
		Climate:           zone,
		GlobalVentilation: globalVent,
		N50Test:           n50Test,
		DPerimInsulation:  rec.FloatOr("d_perim_insulation", 0),
		RNPerimInsulation: rec.FloatOr("rn_perim_insulation", 0),
	}, nil
}

// metaDeviation is the whole-building deviation from north, source
// convention (N=0, clockwise).
func (c *converter) metaDeviation() float64 {
	recs := c.set.ByKind(record.KindMeta)
	if len(recs) == 0 {
		return 0
	}
	return recs[0].FloatOr("azimuth", 0)
}

func (c *converter) convertPolygons() error {
	for _, rec := range c.set.ByKind(record.KindPolygon) {
		poly, err := parsePolygon(rec)
		if err != nil {
			return err
		}
		c.polygons[rec.Name] = poly
	}
	return nil
}

func (c *converter) convertMats() (model.MatsDb, error) {
	var db model.MatsDb
	for _, rec := range c.set.ByKind(record.KindMaterial) {
		var props model.MatProps
		switch {
		case rec.Has("conductivity"):
			conductivity, err := rec.Float("conductivity")
			if err != nil {
				return db, err
			}
			props = model.DetailedProps(
				conductivity,
				rec.FloatOr("density", 1000),
				rec.FloatOr("specificheat", 800),
			)
			if mu, err := rec.OptFloat("vapourdiffusivity"); err != nil {
				return db, err
			} else if mu != nil {
				props.VapourDiffusivity = mu
			}
		case rec.Has("resistance"):
			resistance, err := rec.Float("resistance")
			if err != nil {
				return db, err
			}
			props = model.ResistanceProps(resistance)
		default:
			return db, &record.AttrError{
				Record: rec.Name, Attr: "conductivity",
				Reason: "material needs conductivity or resistance",
			}
		}
		db.Materials = append(db.Materials, model.Material{
			ID:    IDFromRecord(rec),
			Name:  rec.Name,
			Group: rec.StrOr("group", ""),
			Props: props,
		})
	}

	for _, rec := range c.set.ByKind(record.KindGlass) {
		u, err := rec.Float("u")
		if err != nil {
			return db, err
		}
		gGlN, err := rec.Float("g_gln")
		if err != nil {
			return db, err
		}
		db.Glasses = append(db.Glasses, model.Glass{
			ID:    IDFromRecord(rec),
			Name:  rec.Name,
			Group: rec.StrOr("group", ""),
			U:     u,
			GGlN:  gGlN,
		})
	}

	for _, rec := range c.set.ByKind(record.KindFrame) {
		u, err := rec.Float("u")
		if err != nil {
			return db, err
		}
		db.Frames = append(db.Frames, model.Frame{
			ID:           IDFromRecord(rec),
			Name:         rec.Name,
			Group:        rec.StrOr("group", ""),
			U:            u,
			Absorptivity: rec.FloatOr("absorptivity", 0.7),
		})
	}
	return db, nil
}

func (c *converter) convertCons() (model.ConsDb, error) {
	var db model.ConsDb
	for _, rec := range c.set.ByKind(record.KindWallCons) {
		layers, err := c.parseLayers(rec)
		if err != nil {
			return db, err
		}
		db.WallCons = append(db.WallCons, model.WallCons{
			ID:          IDFromRecord(rec),
			Name:        rec.Name,
			Group:       rec.StrOr("group", ""),
			Layers:      layers,
			Absorptance: rec.FloatOr("absorptance", 0.6),
		})
	}

	for _, rec := range c.set.ByKind(record.KindWinCons) {
		glassName, err := rec.Str("glass")
		if err != nil {
			return db, err
		}
		glassID, err := c.resolver.Resolve(rec.Name, RefGlass, glassName)
		if err != nil {
			return db, err
		}
		frameName, err := rec.Str("frame")
		if err != nil {
			return db, err
		}
		frameID, err := c.resolver.Resolve(rec.Name, RefFrame, frameName)
		if err != nil {
			return db, err
		}
		gGlShWi, err := rec.OptFloat("g_glshwi")
		if err != nil {
			return db, err
		}
		db.WinCons = append(db.WinCons, model.WinCons{
			ID:      IDFromRecord(rec),
			Name:    rec.Name,
			Group:   rec.StrOr("group", ""),
			Glass:   glassID,
			Frame:   frameID,
			FF:      rec.FloatOr("f_f", 0.25),
			DeltaU:  rec.FloatOr("delta_u", 0),
			GGlShWi: gGlShWi,
			C100:    rec.FloatOr("c_100", 50),
		})
	}
	return db, nil
}

// parseLayers reads the "layers" attribute: semicolon-separated
// "material:thickness" pairs, ordered outside to inside.
func (c *converter) parseLayers(rec *record.Record) ([]model.Layer, error) {
	raw := rec.StrOr("layers", "")
	if raw == "" {
		return nil, nil
	}
	var layers []model.Layer
	for _, part := range strings.Split(raw, ";") {
		fields := strings.SplitN(part, ":", 2)
		if len(fields) != 2 {
			return nil, &record.AttrError{
				Record: rec.Name, Attr: "layers",
				Reason: fmt.Sprintf("not a material:thickness pair: %q", part),
			}
		}
		name := strings.TrimSpace(fields[0])
		matID, err := c.resolver.Resolve(rec.Name, RefMaterial, name)
		if err != nil {
			return nil, err
		}
		var e float64
		if _, err := fmt.Sscanf(strings.TrimSpace(fields[1]), "%g", &e); err != nil {
			return nil, &record.AttrError{
				Record: rec.Name, Attr: "layers",
				Reason: fmt.Sprintf("bad thickness in %q", part),
			}
		}
		layers = append(layers, model.Layer{Material: matID, E: e})
	}
	return layers, nil
}

func (c *converter) convertSpaces() ([]model.Space, error) {
	var spaces []model.Space
	for _, rec := range c.set.ByKind(record.KindSpace) {
		kind, err := model.ParseSpaceKind(rec.StrOr("type", string(model.Conditioned)))
		if err != nil {
			return nil, fmt.Errorf("space %q: %w", rec.Name, err)
		}
		area := rec.FloatOr("area", -1)
		if area < 0 {
			poly, ok := c.spacePolygon(rec)
			if !ok {
				return nil, &record.AttrError{
					Record: rec.Name, Attr: "area",
					Reason: "no area and no polygon",
				}
			}
			area = geometry.Round2(poly.Area())
		}
		nv, err := rec.OptFloat("n_v")
		if err != nil {
			return nil, err
		}
		perimeter, err := rec.OptFloat("exposed_perimeter")
		if err != nil {
			return nil, err
		}
		space := model.Space{
			ID:               IDFromRecord(rec),
			Name:             rec.Name,
			Area:             area,
			Multiplier:       rec.FloatOr("multiplier", 1),
			Kind:             kind,
			InsideTEnv:       rec.BoolOr("inside_tenv", true),
			Height:           rec.FloatOr("height", 3),
			NV:               nv,
			Z:                rec.FloatOr("z", 0),
			ExposedPerimeter: perimeter,
		}
		if name := rec.StrOr("loads", ""); name != "" {
			id, err := c.resolver.Resolve(rec.Name, RefLoads, name)
			if err != nil {
				return nil, err
			}
			space.Loads = &id
		}
		if name := rec.StrOr("sys_settings", ""); name != "" {
			id, err := c.resolver.Resolve(rec.Name, RefSysSettings, name)
			if err != nil {
				return nil, err
			}
			space.SysSettings = &id
		}
		spaces = append(spaces, space)
	}
	return spaces, nil
}

// spacePolygon returns the footprint polygon a space references.
func (c *converter) spacePolygon(rec *record.Record) (geometry.Polygon, bool) {
	name := rec.StrOr("polygon", "")
	if name == "" {
		return nil, false
	}
	poly, ok := c.polygons[name]
	return poly, ok
}

// spaceGeomFor assembles the geometric context of a space record.
func (c *converter) spaceGeomFor(rec *record.Record) *spaceGeom {
	poly, _ := c.spacePolygon(rec)
	return &spaceGeom{
		x:       rec.FloatOr("x", 0),
		y:       rec.FloatOr("y", 0),
		z:       rec.FloatOr("z", 0),
		height:  rec.FloatOr("height", 3),
		azimuth: rec.FloatOr("azimuth", 0),
		polygon: poly,
	}
}

func (c *converter) convertWalls() ([]model.Wall, error) {
	var walls []model.Wall
	for _, rec := range c.set.ByKind(record.KindWall) {
		spaceRec, ok := c.set.Find(record.KindSpace, rec.Parent)
		if !ok {
			return nil, &UnresolvedRefError{Referrer: rec.Name, Kind: RefSpace, Name: rec.Parent}
		}
		spaceID, err := c.resolver.Resolve(rec.Name, RefSpace, rec.Parent)
		if err != nil {
			return nil, err
		}
		bounds, err := model.ParseBoundaryType(rec.StrOr("bounds", string(model.BoundsExterior)))
		if err != nil {
			return nil, fmt.Errorf("wall %q: %w", rec.Name, err)
		}
		consName, err := rec.Str("construction")
		if err != nil {
			return nil, err
		}
		consID, err := c.resolver.Resolve(rec.Name, RefWallCons, consName)
		if err != nil {
			return nil, err
		}

		var wallPolygon geometry.Polygon
		if name := rec.StrOr("polygon", ""); name != "" {
			poly, ok := c.polygons[name]
			if !ok {
				return nil, &UnresolvedRefError{Referrer: rec.Name, Kind: RefPolygon, Name: name}
			}
			wallPolygon = poly
		}
		geom, err := wallGeometry(rec, c.spaceGeomFor(spaceRec), wallPolygon, c.globalDeviation)
		if err != nil {
			return nil, err
		}

		wall := model.Wall{
			ID:       IDFromRecord(rec),
			Name:     rec.Name,
			Bounds:   bounds,
			Cons:     consID,
			Space:    spaceID,
			Geometry: geom,
		}
		if next := rec.StrOr("next_to", ""); next != "" {
			id, err := c.resolver.Resolve(rec.Name, RefSpace, next)
			if err != nil {
				return nil, err
			}
			wall.NextTo = &id
		}
		walls = append(walls, wall)
	}
	return walls, nil
}

func (c *converter) convertWindows(walls []model.Wall) ([]model.Window, []model.Shade, error) {
	wallByName := make(map[string]*model.Wall, len(walls))
	for i := range walls {
		wallByName[walls[i].Name] = &walls[i]
	}

	var windows []model.Window
	var shades []model.Shade
	for _, rec := range c.set.ByKind(record.KindWindow) {
		wall, ok := wallByName[rec.Parent]
		if !ok {
			return nil, nil, &UnresolvedRefError{Referrer: rec.Name, Kind: RefWall, Name: rec.Parent}
		}
		consName, err := rec.Str("construction")
		if err != nil {
			return nil, nil, err
		}
		consID, err := c.resolver.Resolve(rec.Name, RefWinCons, consName)
		if err != nil {
			return nil, nil, err
		}
		width, err := rec.Float("width")
		if err != nil {
			return nil, nil, err
		}
		height, err := rec.Float("height")
		if err != nil {
			return nil, nil, err
		}
		setback := rec.FloatOr("setback", 0)

		win := model.Window{
			ID:   IDFromRecord(rec),
			Name: rec.Name,
			Cons: consID,
			Wall: wall.ID,
			Geometry: model.WinGeom{
				Width:   width,
				Height:  height,
				Setback: setback,
			},
		}
		if rec.Has("x") && rec.Has("y") {
			x, errX := rec.Float("x")
			y, errY := rec.Float("y")
			if errX != nil {
				return nil, nil, errX
			}
			if errY != nil {
				return nil, nil, errY
			}
			win.Geometry.Position = &geometry.Point2{X: x, Y: y}
		}
		if override, err := rec.OptFloat("f_shobst"); err != nil {
			return nil, nil, err
		} else if override != nil {
			win.FShobst = override
		}
		fshobst := geometry.Round2(FShobstForSetback(
			wall.Geometry.Tilt, wall.Geometry.Azimuth, width, height, setback))
		win.FShobstCalc = &fshobst

		windows = append(windows, win)

		accShades, err := c.accessoryShades(rec, &win, wall)
		if err != nil {
			return nil, nil, err
		}
		shades = append(shades, accShades...)
	}
	return windows, shades, nil
}

// accessoryShades turns the optional overhang and fin attributes of a
// window into fixed shading elements positioned in the global frame.
// The overhang angle counts from the window plane, 90 being
// perpendicular to it. Fins hang from the window head down along the
// jambs.
func (c *converter) accessoryShades(rec *record.Record, win *model.Window, wall *model.Wall) ([]model.Shade, error) {
	if !rec.Has("overhang_depth") && !rec.Has("left_fin_depth") && !rec.Has("right_fin_depth") {
		return nil, nil
	}
	if win.Geometry.Position == nil {
		return nil, &record.AttrError{
			Record: rec.Name, Attr: "x",
			Reason: "shading accessories need the window position on the wall",
		}
	}
	toGlobal, ok := wall.Geometry.ToGlobal()
	if !ok {
		c.warn(win.ID, "window %q: accessories skipped, wall %q has incomplete geometry", rec.Name, rec.Parent)
		return nil, nil
	}

	x, y := win.Geometry.Position.X, win.Geometry.Position.Y
	width, height := win.Geometry.Width, win.Geometry.Height

	var shades []model.Shade
	if rec.Has("overhang_depth") {
		depth, err := rec.Float("overhang_depth")
		if err != nil {
			return nil, err
		}
		a := rec.FloatOr("overhang_a", 0)
		b := rec.FloatOr("overhang_b", 0)
		w := rec.FloatOr("overhang_width", width+2*a)
		pos := toGlobal.Apply(geometry.Point3{X: x - a, Y: y + height + b, Z: 0})
		shades = append(shades, model.Shade{
			ID:   accessoryID(win.ID, "overhang"),
			Name: rec.Name + "_overhang",
			Geometry: geometry.WallGeom{
				Tilt:     wall.Geometry.Tilt - rec.FloatOr("overhang_angle", 0),
				Azimuth:  wall.Geometry.Azimuth,
				Position: &pos,
				Polygon: geometry.Polygon{
					{X: 0, Y: 0}, {X: 0, Y: -depth}, {X: w, Y: -depth}, {X: w, Y: 0},
				},
			},
		})
	}
	for _, fin := range []struct {
		side  string
		right bool
	}{{"left_fin", false}, {"right_fin", true}} {
		if !rec.Has(fin.side + "_depth") {
			continue
		}
		depth, err := rec.Float(fin.side + "_depth")
		if err != nil {
			return nil, err
		}
		a := rec.FloatOr(fin.side+"_a", 0)
		b := rec.FloatOr(fin.side+"_b", 0)
		h := rec.FloatOr(fin.side+"_height", height)
		finX := x - a
		if fin.right {
			finX = x + width + a
		}
		pos := toGlobal.Apply(geometry.Point3{X: finX, Y: y + height - b, Z: 0})
		shades = append(shades, model.Shade{
			ID:   accessoryID(win.ID, fin.side),
			Name: rec.Name + "_" + fin.side,
			Geometry: geometry.WallGeom{
				Tilt:     wall.Geometry.Tilt,
				Azimuth:  wall.Geometry.Azimuth - 90.0,
				Position: &pos,
				Polygon: geometry.Polygon{
					{X: 0, Y: 0}, {X: 0, Y: -h}, {X: depth, Y: -h}, {X: depth, Y: 0},
				},
			},
		})
	}
	return shades, nil
}

func (c *converter) convertShades() ([]model.Shade, error) {
	var shades []model.Shade
	for _, rec := range c.set.ByKind(record.KindShade) {
		geom, ok, err := shadeGeometry(rec, c.globalDeviation)
		var degenerate *DegenerateGeometryError
		if errors.As(err, &degenerate) {
			// A broken shading polygon loses only the shade itself.
			c.warn(IDFromRecord(rec), "shade %q dropped: %s", rec.Name, err)
			continue
		}
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		shades = append(shades, model.Shade{
			ID:       IDFromRecord(rec),
			Name:     rec.Name,
			Geometry: geom,
		})
	}
	return shades, nil
}

func (c *converter) convertThermalBridges() ([]model.ThermalBridge, error) {
	var bridges []model.ThermalBridge
	for _, rec := range c.set.ByKind(record.KindThermalBridge) {
		kind, err := model.ParseTBKind(rec.StrOr("kind", string(model.TBGeneric)))
		if err != nil {
			return nil, fmt.Errorf("thermal bridge %q: %w", rec.Name, err)
		}
		bridges = append(bridges, model.ThermalBridge{
			ID:   IDFromRecord(rec),
			Name: rec.Name,
			Kind: kind,
			L:    geometry.Round2(rec.FloatOr("length", 0)),
			Psi:  rec.FloatOr("psi", 0),
		})
	}
	return bridges, nil
}
