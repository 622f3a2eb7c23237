// Package convert builds the canonical envelope model from the raw,
// loosely-typed building description: it resolves every name-based
// cross-reference into a stable identifier, reconstructs each element's
// pose and polygon in a single global frame, and assembles the model the
// property computations consume.
package convert

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vk/thermenv/internal/model"
	"github.com/vk/thermenv/internal/record"
)

// RefKind names the namespace a reference points into.
type RefKind string

const (
	RefSpace        RefKind = "space"
	RefWall         RefKind = "wall"
	RefWallCons     RefKind = "wall construction"
	RefWinCons      RefKind = "window construction"
	RefMaterial     RefKind = "material"
	RefGlass        RefKind = "glass"
	RefFrame        RefKind = "frame"
	RefPolygon      RefKind = "polygon"
	RefScheduleDay  RefKind = "day schedule"
	RefScheduleWeek RefKind = "week schedule"
	RefScheduleYear RefKind = "year schedule"
	RefLoads        RefKind = "loads profile"
	RefSysSettings  RefKind = "system settings profile"
)

// UnresolvedRefError reports a cross-reference with no matching entity.
type UnresolvedRefError struct {
	// Referrer is the element holding the reference.
	Referrer string
	// Kind is the namespace the reference points into.
	Kind RefKind
	// Name is the missing name.
	Name string
}

func (e *UnresolvedRefError) Error() string {
	return fmt.Sprintf("%s: reference to unknown %s %q", e.Referrer, e.Kind, e.Name)
}

// Resolver maps raw names to stable identifiers, one namespace per
// distinguishable entity kind. It is built once from the full record set
// and consulted for every cross-reference during model construction.
type Resolver struct {
	names map[RefKind]map[string]model.ID
}

var kindNamespaces = map[record.Kind]RefKind{
	record.KindSpace:        RefSpace,
	record.KindWall:         RefWall,
	record.KindWallCons:     RefWallCons,
	record.KindWinCons:      RefWinCons,
	record.KindMaterial:     RefMaterial,
	record.KindGlass:        RefGlass,
	record.KindFrame:        RefFrame,
	record.KindPolygon:      RefPolygon,
	record.KindScheduleDay:  RefScheduleDay,
	record.KindScheduleWeek: RefScheduleWeek,
	record.KindScheduleYear: RefScheduleYear,
	record.KindLoads:        RefLoads,
	record.KindSysSettings:  RefSysSettings,
}

// NewResolver indexes every named record under its namespace. The
// identifier of a record is a content hash, so resolving the same record
// set twice yields identical identifiers.
func NewResolver(set *record.Set) *Resolver {
	r := &Resolver{names: make(map[RefKind]map[string]model.ID)}
	for i := range set.Records {
		rec := &set.Records[i]
		ns, ok := kindNamespaces[rec.Kind]
		if !ok {
			continue
		}
		m := r.names[ns]
		if m == nil {
			m = make(map[string]model.ID)
			r.names[ns] = m
		}
		m[rec.Name] = IDFromRecord(rec)
	}
	return r
}

// Resolve returns the identifier a name maps to in the given namespace.
// referrer names the element holding the reference, for error reporting.
func (r *Resolver) Resolve(referrer string, kind RefKind, name string) (model.ID, error) {
	if m := r.names[kind]; m != nil {
		if id, ok := m[name]; ok {
			return id, nil
		}
	}
	return model.NilID, &UnresolvedRefError{Referrer: referrer, Kind: kind, Name: name}
}

// IDFromRecord derives the deterministic identifier of a record from a
// canonical serialization of its kind, name, parent and attributes. The
// participating fields are the reproducibility contract: unchanged input
// reproduces the same identifier.
func IDFromRecord(rec *record.Record) model.ID {
	keys := make([]string, 0, len(rec.Attrs))
	for k := range rec.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(string(rec.Kind))
	b.WriteByte('\n')
	b.WriteString(rec.Name)
	b.WriteByte('\n')
	b.WriteString(rec.Parent)
	for _, k := range keys {
		b.WriteByte('\n')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(rec.Attrs[k])
	}
	return model.IDFromString(b.String())
}

// accessoryID derives the identifier of a shading element that belongs
// to a window, such as an overhang or a side fin.
func accessoryID(window model.ID, tag string) model.ID {
	return model.IDFromString(window.String() + "/" + tag)
}
