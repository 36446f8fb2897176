// Package citybuf converts CityJSON sequences into CityBuf files. A
// CityBuf file is a magic number followed by a size-prefixed FlatBuffers
// header table and one size-prefixed FlatBuffers table per feature.
package citybuf

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/go-kit/log"
)

// Common errors returned by this package.
var (
	ErrUnsupportedGeometry   = errors.New("citybuf: unsupported geometry type")
	ErrUnknownTypeTag        = errors.New("citybuf: unknown type tag")
	ErrMalformedSemantics    = errors.New("citybuf: malformed semantics")
	ErrMalformedBoundaries   = errors.New("citybuf: malformed boundaries")
	ErrVertexIndex           = errors.New("citybuf: vertex index out of range")
	ErrSchemaDrift           = errors.New("citybuf: attribute not in schema")
	ErrAttributeType         = errors.New("citybuf: attribute value does not match column type")
	ErrMissingTransform      = errors.New("citybuf: missing transform")
	ErrInvalidData           = errors.New("citybuf: invalid data")
	ErrInvalidSchemaOverride = errors.New("citybuf: invalid schema override")
	ErrInvalidMagic          = errors.New("citybuf: invalid magic number")
	ErrTooManyColumns        = errors.New("citybuf: too many columns")
)

// ReferenceSystem represents a coordinate reference system parsed from
// an identifier such as https://www.opengis.net/def/crs/EPSG/0/7415.
type ReferenceSystem struct {
	Authority  string // e.g. EPSG
	Version    int32  // authority version, 0 for most EPSG codes
	Code       int32  // e.g. 7415
	CodeString string // the identifier as declared
}

// ParseReferenceSystem parses the last three '/'-separated segments of a
// reference system identifier as authority, version and code.
func ParseReferenceSystem(s string) (*ReferenceSystem, error) {
	parts := strings.Split(strings.TrimRight(s, "/"), "/")
	if len(parts) < 3 {
		return nil, fmt.Errorf("%w: reference system %q has fewer than 3 segments", ErrInvalidData, s)
	}
	parts = parts[len(parts)-3:]
	version, err := strconv.ParseInt(parts[1], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: reference system %q version: %v", ErrInvalidData, s, err)
	}
	code, err := strconv.ParseInt(parts[2], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: reference system %q code: %v", ErrInvalidData, s, err)
	}
	return &ReferenceSystem{
		Authority:  parts[0],
		Version:    int32(version),
		Code:       int32(code),
		CodeString: s,
	}, nil
}

// Options configures a CityBuf conversion.
type Options struct {
	WriteNulls bool       // Encode null attribute values as a bare column index (default: true)
	Overrides  []Column   // Column types that take precedence over inferred types
	Workers    int        // Features encoded in parallel (default: GOMAXPROCS)
	Logger     log.Logger // Structured logger (default: no-op)
	Metrics    *Metrics   // Receives conversion statistics (optional)
}

// DefaultOptions returns default options for converting CityJSON
// sequences.
func DefaultOptions() *Options {
	return &Options{
		WriteNulls: true,
		Workers:    runtime.GOMAXPROCS(0),
		Logger:     log.NewNopLogger(),
	}
}

// ColumnInfo describes an attribute column in a CityBuf file.
type ColumnInfo struct {
	Name     string // Column name
	Type     string // Column type ("Bool", "Long", "Double", "String", "Json", etc.)
	Nullable bool   // Whether a null value was observed for the column
}

// Header contains metadata about a CityBuf file.
type Header struct {
	Major, Minor    uint8            // Format version from the magic number
	FeaturesCount   uint64           // Number of features in the file
	Scale           [3]float64       // Vertex scale
	Translate       [3]float64       // Vertex translation
	Extent          *Extent          // Dataset extent, nil when not recorded
	ReferenceSystem *ReferenceSystem // Coordinate reference system, nil when not recorded
	Columns         []ColumnInfo     // Attribute column schema
}
