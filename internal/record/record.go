// Package record defines the loosely-typed input boundary of the
// converter: named records with string-keyed attributes, as produced by a
// building-description front end. The converter consumes records through
// the typed accessors and never assumes any particular on-disk syntax.
package record

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tags a record with the entity family it describes.
type Kind string

const (
	KindMeta          Kind = "meta"
	KindSpace         Kind = "space"
	KindWall          Kind = "wall"
	KindWindow        Kind = "window"
	KindShade         Kind = "shade"
	KindThermalBridge Kind = "thermal_bridge"
	KindPolygon       Kind = "polygon"
	KindWallCons      Kind = "wall_cons"
	KindWinCons       Kind = "win_cons"
	KindMaterial      Kind = "material"
	KindGlass         Kind = "glass"
	KindFrame         Kind = "frame"
	KindScheduleDay   Kind = "schedule_day"
	KindScheduleWeek  Kind = "schedule_week"
	KindScheduleYear  Kind = "schedule_year"
	KindLoads         Kind = "loads"
	KindSysSettings   Kind = "sys_settings"
)

// AttrError reports a missing or unparsable attribute, naming the record
// and attribute involved.
type AttrError struct {
	Record string
	Attr   string
	Reason string
}

func (e *AttrError) Error() string {
	return fmt.Sprintf("record %q: attribute %q: %s", e.Record, e.Attr, e.Reason)
}

// AttrMap is a string-keyed attribute collection with typed accessors.
// Values are stored as strings; numeric accessors parse on demand.
type AttrMap map[string]string

// Record is one named block from the building description. Parent is the
// name of the enclosing record when the source nests definitions (a wall
// inside a space, a window inside a wall); it is empty for top-level
// records.
type Record struct {
	Kind   Kind
	Name   string
	Parent string
	Attrs  AttrMap
}

// Has reports whether the attribute is present.
func (r *Record) Has(key string) bool {
	_, ok := r.Attrs[key]
	return ok
}

// Str returns a string attribute, failing when absent.
func (r *Record) Str(key string) (string, error) {
	v, ok := r.Attrs[key]
	if !ok {
		return "", &AttrError{Record: r.Name, Attr: key, Reason: "not found"}
	}
	return v, nil
}

// StrOr returns a string attribute or the fallback when absent.
func (r *Record) StrOr(key, fallback string) string {
	if v, ok := r.Attrs[key]; ok {
		return v
	}
	return fallback
}

// Float returns a numeric attribute, failing when absent or unparsable.
func (r *Record) Float(key string) (float64, error) {
	v, ok := r.Attrs[key]
	if !ok {
		return 0, &AttrError{Record: r.Name, Attr: key, Reason: "not found"}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, &AttrError{Record: r.Name, Attr: key, Reason: fmt.Sprintf("not a number: %q", v)}
	}
	return f, nil
}

// FloatOr returns a numeric attribute or the fallback when absent or
// unparsable.
func (r *Record) FloatOr(key string, fallback float64) float64 {
	f, err := r.Float(key)
	if err != nil {
		return fallback
	}
	return f
}

// OptFloat returns a pointer to the parsed value, or nil when the
// attribute is absent. An attribute that is present but unparsable is an
// error.
func (r *Record) OptFloat(key string) (*float64, error) {
	if !r.Has(key) {
		return nil, nil
	}
	f, err := r.Float(key)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Bool interprets an attribute as a flag. Accepted spellings are
// true/false, yes/no and 1/0, case-insensitive.
func (r *Record) Bool(key string) (bool, error) {
	v, ok := r.Attrs[key]
	if !ok {
		return false, &AttrError{Record: r.Name, Attr: key, Reason: "not found"}
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "yes", "1":
		return true, nil
	case "false", "no", "0":
		return false, nil
	}
	return false, &AttrError{Record: r.Name, Attr: key, Reason: fmt.Sprintf("not a flag: %q", v)}
}

// BoolOr returns a flag attribute or the fallback when absent or
// unrecognized.
func (r *Record) BoolOr(key string, fallback bool) bool {
	b, err := r.Bool(key)
	if err != nil {
		return fallback
	}
	return b
}

// Set is the whole raw building description, in source order.
type Set struct {
	Records []Record
}

// ByKind returns the records of one kind, preserving source order.
func (s *Set) ByKind(kind Kind) []*Record {
	var out []*Record
	for i := range s.Records {
		if s.Records[i].Kind == kind {
			out = append(out, &s.Records[i])
		}
	}
	return out
}

// Find returns the first record of the given kind and name.
func (s *Set) Find(kind Kind, name string) (*Record, bool) {
	for i := range s.Records {
		if s.Records[i].Kind == kind && s.Records[i].Name == name {
			return &s.Records[i], true
		}
	}
	return nil, false
}
