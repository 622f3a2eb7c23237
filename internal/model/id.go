// Package model holds the canonical envelope model: spaces, opaque
// elements, windows, shades, thermal bridges and the construction and
// material catalogs, all cross-referenced by stable identifiers.
//
// The model is built once per conversion pass and treated as read-only by
// the property computations.
package model

import (
	"github.com/google/uuid"
)

// ID is the stable identifier of a model entity, compared by value.
type ID = uuid.UUID

// NilID is the zero identifier, used for unresolved references.
var NilID = uuid.Nil

// IDFromString derives a deterministic identifier from a string. The same
// input always yields the same identifier, which is the model's
// reproducibility contract for derived objects such as setback shades.
func IDFromString(s string) ID {
	return uuid.NewMD5(uuid.NameSpaceOID, []byte(s))
}

// NewID returns a fresh random identifier for genuinely new objects.
func NewID() ID {
	return uuid.New()
}
