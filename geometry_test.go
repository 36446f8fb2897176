package citybuf

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tingold/orb-citybuf/flat"
)

func mustGeometry(t *testing.T, s string) *Geometry {
	t.Helper()
	g := &Geometry{}
	require.NoError(t, json.Unmarshal([]byte(s), g))
	return g
}

// unflatten rebuilds the nested boundary array from a flattened geometry.
func unflatten(fg *FlatGeometry) interface{} {
	idx := fg.Boundaries
	levels := [4][]uint32{fg.Strings, fg.Surfaces, fg.Shells, fg.Solids}
	next := func(k int) uint32 {
		v := levels[k][0]
		levels[k] = levels[k][1:]
		return v
	}
	var build func(k int) []interface{}
	build = func(k int) []interface{} {
		n := next(k)
		out := make([]interface{}, n)
		for i := range out {
			if k == levelString {
				out[i] = idx[0]
				idx = idx[1:]
			} else {
				out[i] = build(k - 1)
			}
		}
		return out
	}
	d := depth(fg.Type)
	if d == 0 {
		return build(levelString)
	}
	var root []interface{}
	for len(levels[d-1]) > 0 {
		root = append(root, build(d-1))
	}
	return root
}

func sum(v []uint32) int {
	n := 0
	for _, x := range v {
		n += int(x)
	}
	return n
}

func TestFlattenGeometry_RoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		typ        string
		boundaries string
	}{
		{"MultiPoint", "MultiPoint", `[0,1,2]`},
		{"MultiLineString", "MultiLineString", `[[0,1],[1,2,3]]`},
		{"MultiSurface", "MultiSurface", `[[[0,1,2]],[[1,2,3],[0,2,3]]]`},
		{"CompositeSurface", "CompositeSurface", `[[[0,1,2,3]],[[3,2,1]]]`},
		{"Solid", "Solid", `[[[[0,1,2]],[[1,2,3]],[[0,2,3]]],[[[0,1,3]]]]`},
		{"MultiSolid", "MultiSolid", `[[[[[0,1,2]],[[1,2,3]]]],[[[[0,1,3]]],[[[2,3,0]]]]]`},
		{"CompositeSolid", "CompositeSolid", `[[[[[0,1,2]],[[1,2,3]],[[0,2,3]],[[0,1,3]]]]]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGeometry(t, `{"type":"`+tt.typ+`","lod":"2","boundaries":`+tt.boundaries+`}`)
			fg, err := FlattenGeometry(g, 4)
			require.NoError(t, err)
			assert.Equal(t, tt.typ, fg.Type.String())

			got, err := json.Marshal(unflatten(fg))
			require.NoError(t, err)
			var want bytes.Buffer
			require.NoError(t, json.Compact(&want, []byte(tt.boundaries)))
			assert.Equal(t, want.String(), string(got))
		})
	}
}

func TestFlattenGeometry_RunLengths(t *testing.T) {
	g := mustGeometry(t, `{"type":"Solid","lod":"2","boundaries":[[[[0,1,2]],[[1,2,3]],[[0,2,3]]],[[[0,1,3]]]]}`)
	fg, err := FlattenGeometry(g, 4)
	require.NoError(t, err)

	assert.Nil(t, fg.Solids)
	assert.Equal(t, []uint32{3, 1}, fg.Shells)
	assert.Len(t, fg.Surfaces, 4)
	assert.Equal(t, len(fg.Surfaces), sum(fg.Shells))
	assert.Equal(t, len(fg.Strings), sum(fg.Surfaces))
	assert.Equal(t, len(fg.Boundaries), sum(fg.Strings))
	assert.Nil(t, fg.Semantics)
}

func TestFlattenGeometry_OmittedLevels(t *testing.T) {
	tests := []struct {
		typ                                string
		boundaries                         string
		solids, shells, surfaces, strs bool
	}{
		{"MultiPoint", `[0,1]`, false, false, false, true},
		{"MultiLineString", `[[0,1]]`, false, false, false, true},
		{"MultiSurface", `[[[0,1,2]]]`, false, false, true, true},
		{"Solid", `[[[[0,1,2]]]]`, false, true, true, true},
		{"MultiSolid", `[[[[[0,1,2]]]]]`, true, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			fg, err := FlattenGeometry(mustGeometry(t, `{"type":"`+tt.typ+`","boundaries":`+tt.boundaries+`}`), 3)
			require.NoError(t, err)
			assert.Equal(t, tt.solids, fg.Solids != nil, "solids")
			assert.Equal(t, tt.shells, fg.Shells != nil, "shells")
			assert.Equal(t, tt.surfaces, fg.Surfaces != nil, "surfaces")
			assert.Equal(t, tt.strs, fg.Strings != nil, "strings")
		})
	}
}

func TestFlattenGeometry_Semantics(t *testing.T) {
	surfaces := `"surfaces":[{"type":"GroundSurface"},{"type":"RoofSurface"}]`
	tests := []struct {
		name   string
		geom   string
		values []uint32
	}{
		{
			name:   "solid",
			geom:   `{"type":"Solid","boundaries":[[[[0,1,2]],[[1,2,3]],[[0,2,3]]],[[[0,1,3]]]],"semantics":{` + surfaces + `,"values":[[0,null,1],[0]]}}`,
			values: []uint32{0, NoSemantic, 1, 0},
		},
		{
			name:   "null shell",
			geom:   `{"type":"Solid","boundaries":[[[[0,1,2]],[[1,2,3]],[[0,2,3]]],[[[0,1,3]]]],"semantics":{` + surfaces + `,"values":[null,[1]]}}`,
			values: []uint32{NoSemantic, NoSemantic, NoSemantic, 1},
		},
		{
			name:   "multi surface",
			geom:   `{"type":"MultiSurface","boundaries":[[[0,1,2]],[[1,2,3]]],"semantics":{` + surfaces + `,"values":[1,0]}}`,
			values: []uint32{1, 0},
		},
		{
			name:   "multi solid",
			geom:   `{"type":"MultiSolid","boundaries":[[[[[0,1,2]],[[1,2,3]]]],[[[[0,1,3]]]]],"semantics":{` + surfaces + `,"values":[[[0,1]],null]}}`,
			values: []uint32{0, 1, NoSemantic},
		},
		{
			name:   "multi line string",
			geom:   `{"type":"MultiLineString","boundaries":[[0,1],[2,3],[1,2]],"semantics":{` + surfaces + `,"values":[0,null,1]}}`,
			values: []uint32{0, NoSemantic, 1},
		},
		{
			name:   "multi point",
			geom:   `{"type":"MultiPoint","boundaries":[0,1,2],"semantics":{` + surfaces + `,"values":[1,1,0]}}`,
			values: []uint32{1, 1, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fg, err := FlattenGeometry(mustGeometry(t, tt.geom), 4)
			require.NoError(t, err)
			assert.Equal(t, tt.values, fg.Semantics)

			primitives := len(fg.Surfaces)
			switch fg.Type {
			case flat.GeometryTypeMultiLineString:
				primitives = len(fg.Strings)
			case flat.GeometryTypeMultiPoint:
				primitives = len(fg.Boundaries)
			}
			assert.Len(t, fg.Semantics, primitives)
		})
	}
}

func TestFlattenGeometry_Errors(t *testing.T) {
	tests := []struct {
		name string
		geom string
		err  error
	}{
		{"geometry instance", `{"type":"GeometryInstance","boundaries":[0],"template":0}`, ErrUnsupportedGeometry},
		{"unknown type", `{"type":"Polygon","boundaries":[[0,1,2]]}`, ErrUnknownTypeTag},
		{"vertex out of range", `{"type":"MultiPoint","boundaries":[0,4]}`, ErrVertexIndex},
		{"negative vertex", `{"type":"MultiPoint","boundaries":[-1]}`, ErrVertexIndex},
		{"shallow boundaries", `{"type":"Solid","boundaries":[[0,1,2]]}`, ErrMalformedBoundaries},
		{"missing boundaries", `{"type":"MultiSurface"}`, ErrMalformedBoundaries},
		{"semantics without values", `{"type":"MultiSurface","boundaries":[[[0,1,2]]],"semantics":{"surfaces":[{"type":"RoofSurface"}]}}`, ErrMalformedSemantics},
		{"semantics without surfaces", `{"type":"MultiSurface","boundaries":[[[0,1,2]]],"semantics":{"values":[0]}}`, ErrMalformedSemantics},
		{"semantic count mismatch", `{"type":"MultiSurface","boundaries":[[[0,1,2]],[[1,2,3]]],"semantics":{"surfaces":[{"type":"RoofSurface"}],"values":[0]}}`, ErrMalformedSemantics},
		{"semantic index out of range", `{"type":"MultiSurface","boundaries":[[[0,1,2]]],"semantics":{"surfaces":[{"type":"RoofSurface"}],"values":[1]}}`, ErrMalformedSemantics},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FlattenGeometry(mustGeometry(t, tt.geom), 4)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestFlattenGeometry_LOD(t *testing.T) {
	tests := []struct {
		lod  string
		want string
	}{
		{`"2.2"`, "2.2"},
		{`2`, "2"},
		{`1.3`, "1.3"},
		{`null`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.lod, func(t *testing.T) {
			fg, err := FlattenGeometry(mustGeometry(t, `{"type":"MultiPoint","lod":`+tt.lod+`,"boundaries":[0]}`), 1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, fg.LOD)
		})
	}
}

func TestBuildSemanticObjects(t *testing.T) {
	surfaces := []*Attributes{
		mustAttrs(t, `{"type":"RoofSurface","slope":12.5,"children":[1,2]}`),
		mustAttrs(t, `{"type":"Window","parent":0}`),
		mustAttrs(t, `{"type":"Door","parent":0,"slope":null}`),
	}
	sb := NewSchemaBuilder(nil)
	for _, s := range surfaces {
		sb.Observe(s, semanticKeys...)
	}
	schema, err := sb.Freeze()
	require.NoError(t, err)
	require.Equal(t, 1, schema.Len())

	objs, err := BuildSemanticObjects(surfaces, schema, true)
	require.NoError(t, err)
	require.Len(t, objs, 3)

	assert.Equal(t, flat.SemanticSurfaceTypeRoofSurface, objs[0].Type)
	assert.Equal(t, []uint32{1, 2}, objs[0].Children)
	assert.Nil(t, objs[0].Parent)
	assert.Len(t, objs[0].Attributes, 2+8)

	assert.Equal(t, flat.SemanticSurfaceTypeWindow, objs[1].Type)
	require.NotNil(t, objs[1].Parent)
	assert.Equal(t, uint32(0), *objs[1].Parent)
	assert.Empty(t, objs[1].Attributes)

	assert.Equal(t, []byte{0, 0}, objs[2].Attributes)
}

func TestBuildSemanticObjects_Errors(t *testing.T) {
	schema, err := NewSchemaBuilder(nil).Freeze()
	require.NoError(t, err)

	tests := []struct {
		name    string
		surface string
		err     error
	}{
		{"unknown type", `{"type":"AtticSurface"}`, ErrUnknownTypeTag},
		{"missing type", `{"slope":1}`, ErrMalformedSemantics},
		{"parent out of range", `{"type":"RoofSurface","parent":3}`, ErrMalformedSemantics},
		{"unknown attribute", `{"type":"RoofSurface","slope":1}`, ErrSchemaDrift},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildSemanticObjects([]*Attributes{mustAttrs(t, tt.surface)}, schema, true)
			require.ErrorIs(t, err, tt.err)
		})
	}
}
