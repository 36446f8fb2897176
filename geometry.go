package citybuf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/tingold/orb-citybuf/flat"
)

// NoSemantic marks a surface without a semantic object in the semantics
// array of a flattened geometry.
const NoSemantic = math.MaxUint32

// Nesting levels of a boundary array, counted from the vertex indices up.
const (
	levelString = iota
	levelSurface
	levelShell
	levelSolid
)

// FlatGeometry is a boundary array flattened into vertex indices and
// run-length arrays. A run-length array is nil when the geometry type
// does not nest to that level.
type FlatGeometry struct {
	Type       flat.GeometryType
	LOD        string
	Solids     []uint32 // shells per solid
	Shells     []uint32 // surfaces per shell
	Surfaces   []uint32 // rings per surface
	Strings    []uint32 // indices per ring, line string or point set
	Boundaries []uint32 // vertex indices
	Semantics  []uint32 // semantic object per primitive, nil without semantics
}

// depth returns the number of array levels above the vertex indices.
func depth(t flat.GeometryType) int {
	switch t {
	case flat.GeometryTypeMultiPoint:
		return 0
	case flat.GeometryTypeMultiLineString:
		return 1
	case flat.GeometryTypeMultiSurface, flat.GeometryTypeCompositeSurface:
		return 2
	case flat.GeometryTypeSolid:
		return 3
	default:
		return 4
	}
}

// primitiveLevel returns the level that semantic values are assigned to:
// surfaces for surface based types, line strings for MultiLineString and
// single points (-1) for MultiPoint.
func primitiveLevel(t flat.GeometryType) int {
	switch t {
	case flat.GeometryTypeMultiPoint:
		return -1
	case flat.GeometryTypeMultiLineString:
		return levelString
	default:
		return levelSurface
	}
}

type flattener struct {
	out         *FlatGeometry
	levels      [4]*[]uint32
	root        int
	primitive   int
	vertexCount int
	semantics   bool
	objects     int
}

// FlattenGeometry flattens the boundaries of g. Every vertex index must
// be lower than vertexCount. When g has semantics the values are
// flattened into one entry per primitive, with NoSemantic for null.
func FlattenGeometry(g *Geometry, vertexCount int) (*FlatGeometry, error) {
	t, err := geometryType(g.Type)
	if err != nil {
		return nil, err
	}
	lod, err := lodString(g.LOD)
	if err != nil {
		return nil, err
	}
	out := &FlatGeometry{Type: t, LOD: lod}
	f := &flattener{
		out:         out,
		levels:      [4]*[]uint32{&out.Strings, &out.Surfaces, &out.Shells, &out.Solids},
		root:        depth(t),
		primitive:   primitiveLevel(t),
		vertexCount: vertexCount,
	}
	used := f.root
	if used == 0 {
		used = 1
	}
	for k := 0; k < used; k++ {
		*f.levels[k] = []uint32{}
	}
	out.Boundaries = []uint32{}

	var values json.RawMessage
	if s := g.Semantics; s != nil {
		if s.Surfaces == nil || len(bytes.TrimSpace(s.Values)) == 0 || isNull(s.Values) {
			return nil, fmt.Errorf("%w: semantics need both surfaces and values", ErrMalformedSemantics)
		}
		f.semantics = true
		f.objects = len(s.Surfaces)
		out.Semantics = []uint32{}
		values = s.Values
	}
	if len(bytes.TrimSpace(g.Boundaries)) == 0 {
		return nil, fmt.Errorf("%w: missing boundaries", ErrMalformedBoundaries)
	}
	if err := f.walk(g.Boundaries, f.root, values); err != nil {
		return nil, err
	}
	return out, nil
}

// walk flattens one unit at level k. sem is the part of the semantics
// values matching the unit; nil or null assigns NoSemantic to every
// primitive below.
func (f *flattener) walk(raw json.RawMessage, k int, sem json.RawMessage) error {
	if f.semantics && k == f.primitive {
		v, err := f.semanticValue(sem)
		if err != nil {
			return err
		}
		f.out.Semantics = append(f.out.Semantics, v)
		sem = nil
	}
	if k == levelString {
		return f.indices(raw, sem)
	}

	var children []json.RawMessage
	if err := json.Unmarshal(raw, &children); err != nil {
		return fmt.Errorf("%w: level %d: %v", ErrMalformedBoundaries, k, err)
	}
	semChildren, err := f.split(sem, k, len(children))
	if err != nil {
		return err
	}
	for i, c := range children {
		var s json.RawMessage
		if semChildren != nil {
			s = semChildren[i]
		}
		if err := f.walk(c, k-1, s); err != nil {
			return err
		}
	}
	if k != f.root {
		*f.levels[k] = append(*f.levels[k], uint32(len(children)))
	}
	return nil
}

// indices appends a ring of vertex indices. For MultiPoint each index is
// a primitive with its own semantic value.
func (f *flattener) indices(raw json.RawMessage, sem json.RawMessage) error {
	var idx []int64
	if err := json.Unmarshal(raw, &idx); err != nil {
		return fmt.Errorf("%w: ring: %v", ErrMalformedBoundaries, err)
	}
	var semChildren []json.RawMessage
	if f.semantics && f.primitive < levelString {
		var err error
		if semChildren, err = f.split(sem, levelString, len(idx)); err != nil {
			return err
		}
	}
	for i, v := range idx {
		if v < 0 || v >= int64(f.vertexCount) {
			return fmt.Errorf("%w: %d, feature has %d vertices", ErrVertexIndex, v, f.vertexCount)
		}
		f.out.Boundaries = append(f.out.Boundaries, uint32(v))
		if f.semantics && f.primitive < levelString {
			var s json.RawMessage
			if semChildren != nil {
				s = semChildren[i]
			}
			sv, err := f.semanticValue(s)
			if err != nil {
				return err
			}
			f.out.Semantics = append(f.out.Semantics, sv)
		}
	}
	f.out.Strings = append(f.out.Strings, uint32(len(idx)))
	return nil
}

// split decodes the semantics values of a container with n children.
// It returns nil when the container carries no values.
func (f *flattener) split(sem json.RawMessage, k, n int) ([]json.RawMessage, error) {
	if !f.semantics || k <= f.primitive || sem == nil || isNull(sem) {
		return nil, nil
	}
	var children []json.RawMessage
	if err := json.Unmarshal(sem, &children); err != nil {
		return nil, fmt.Errorf("%w: values at level %d: %v", ErrMalformedSemantics, k, err)
	}
	if len(children) != n {
		return nil, fmt.Errorf("%w: %d values for %d elements", ErrMalformedSemantics, len(children), n)
	}
	return children, nil
}

func (f *flattener) semanticValue(sem json.RawMessage) (uint32, error) {
	if sem == nil || isNull(sem) {
		return NoSemantic, nil
	}
	v, err := strconv.ParseUint(string(bytes.TrimSpace(sem)), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: value %s is not an index", ErrMalformedSemantics, sem)
	}
	if v >= uint64(f.objects) {
		return 0, fmt.Errorf("%w: value %d, %d surfaces", ErrMalformedSemantics, v, f.objects)
	}
	return uint32(v), nil
}
