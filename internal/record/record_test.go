package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedAccessors(t *testing.T) {
	r := Record{
		Kind: KindWall,
		Name: "P01_E01_PE001",
		Attrs: AttrMap{
			"construction": "Fachada",
			"azimuth":      "90.0",
			"height":       " 2.5 ",
			"inside_tenv":  "yes",
			"bad":          "abc",
		},
	}

	s, err := r.Str("construction")
	require.NoError(t, err)
	assert.Equal(t, "Fachada", s)

	_, err = r.Str("missing")
	require.Error(t, err)
	var attrErr *AttrError
	require.ErrorAs(t, err, &attrErr)
	assert.Equal(t, "P01_E01_PE001", attrErr.Record)
	assert.Equal(t, "missing", attrErr.Attr)

	f, err := r.Float("azimuth")
	require.NoError(t, err)
	assert.Equal(t, 90.0, f)

	f, err = r.Float("height")
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)

	_, err = r.Float("bad")
	assert.Error(t, err)

	assert.Equal(t, 1.0, r.FloatOr("missing", 1.0))
	assert.Equal(t, "x", r.StrOr("missing", "x"))

	b, err := r.Bool("inside_tenv")
	require.NoError(t, err)
	assert.True(t, b)
	assert.False(t, r.BoolOr("missing", false))

	opt, err := r.OptFloat("missing")
	require.NoError(t, err)
	assert.Nil(t, opt)
	opt, err = r.OptFloat("azimuth")
	require.NoError(t, err)
	require.NotNil(t, opt)
	assert.Equal(t, 90.0, *opt)
	_, err = r.OptFloat("bad")
	assert.Error(t, err)
}

func TestSetLookup(t *testing.T) {
	set := Set{Records: []Record{
		{Kind: KindSpace, Name: "P01_E01"},
		{Kind: KindWall, Name: "W1", Parent: "P01_E01"},
		{Kind: KindSpace, Name: "P01_E02"},
	}}

	spaces := set.ByKind(KindSpace)
	require.Len(t, spaces, 2)
	assert.Equal(t, "P01_E01", spaces[0].Name)
	assert.Equal(t, "P01_E02", spaces[1].Name)

	w, ok := set.Find(KindWall, "W1")
	require.True(t, ok)
	assert.Equal(t, "P01_E01", w.Parent)

	_, ok = set.Find(KindWall, "nope")
	assert.False(t, ok)
}
