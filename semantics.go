package citybuf

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tingold/orb-citybuf/flat"
)

// Keys of a semantic surface that are not attributes.
var semanticKeys = []string{"type", "parent", "children"}

// SemanticObject is an encoded semantic surface.
type SemanticObject struct {
	Type       flat.SemanticSurfaceType
	Attributes []byte
	Children   []uint32
	Parent     *uint32
}

// BuildSemanticObjects encodes the semantic surfaces of a geometry in
// order, one object per surface. Parent and children must refer to
// positions in surfaces.
func BuildSemanticObjects(surfaces []*Attributes, schema *Schema, writeNulls bool) ([]SemanticObject, error) {
	objs := make([]SemanticObject, 0, len(surfaces))
	for i, s := range surfaces {
		if s == nil {
			return nil, fmt.Errorf("%w: surface %d is null", ErrMalformedSemantics, i)
		}
		raw, ok := s.Get("type")
		if !ok {
			return nil, fmt.Errorf("%w: surface %d has no type", ErrMalformedSemantics, i)
		}
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			return nil, fmt.Errorf("%w: surface %d type: %v", ErrMalformedSemantics, i, err)
		}
		t, err := semanticSurfaceType(name)
		if err != nil {
			return nil, err
		}
		obj := SemanticObject{Type: t}
		if obj.Attributes, err = schema.Encode(s, writeNulls, semanticKeys...); err != nil {
			return nil, fmt.Errorf("surface %d: %w", i, err)
		}
		if raw, ok := s.Get("parent"); ok && !isNull(raw) {
			p, err := surfaceRef(raw, len(surfaces))
			if err != nil {
				return nil, fmt.Errorf("surface %d parent: %w", i, err)
			}
			obj.Parent = &p
		}
		if raw, ok := s.Get("children"); ok && !isNull(raw) {
			var children []json.RawMessage
			if err := json.Unmarshal(raw, &children); err != nil {
				return nil, fmt.Errorf("%w: surface %d children: %v", ErrMalformedSemantics, i, err)
			}
			obj.Children = make([]uint32, 0, len(children))
			for _, c := range children {
				ci, err := surfaceRef(c, len(surfaces))
				if err != nil {
					return nil, fmt.Errorf("surface %d children: %w", i, err)
				}
				obj.Children = append(obj.Children, ci)
			}
		}
		objs = append(objs, obj)
	}
	return objs, nil
}

func surfaceRef(raw json.RawMessage, n int) (uint32, error) {
	v, err := strconv.ParseUint(string(raw), 10, 32)
	if err != nil || v >= uint64(n) {
		return 0, fmt.Errorf("%w: %s does not index one of %d surfaces", ErrMalformedSemantics, raw, n)
	}
	return uint32(v), nil
}
