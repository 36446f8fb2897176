package citybuf

import (
	"fmt"

	"github.com/tingold/orb-citybuf/flat"
)

// cityObjectType maps a CityJSON object type to its table enum.
func cityObjectType(s string) (flat.CityObjectType, error) {
	t, ok := flat.EnumValuesCityObjectType[s]
	if !ok {
		return 0, fmt.Errorf("%w: city object type %q", ErrUnknownTypeTag, s)
	}
	return t, nil
}

// geometryType maps a CityJSON geometry type to its table enum.
// GeometryInstance has an enum value but cannot be flattened.
func geometryType(s string) (flat.GeometryType, error) {
	t, ok := flat.EnumValuesGeometryType[s]
	if !ok {
		return 0, fmt.Errorf("%w: geometry type %q", ErrUnknownTypeTag, s)
	}
	if t == flat.GeometryTypeGeometryInstance {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedGeometry, s)
	}
	return t, nil
}

// semanticSurfaceType maps a semantic surface type to its table enum.
func semanticSurfaceType(s string) (flat.SemanticSurfaceType, error) {
	t, ok := flat.EnumValuesSemanticSurfaceType[s]
	if !ok {
		return 0, fmt.Errorf("%w: semantic surface type %q", ErrUnknownTypeTag, s)
	}
	return t, nil
}
