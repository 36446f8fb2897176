package citybuf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
)

// maxColumns is the number of columns addressable by the uint16 column
// index of the attribute buffer.
const maxColumns = math.MaxUint16 + 1

// Column is one entry of the attribute schema.
type Column struct {
	Name     string
	Type     flattypes.ColumnType
	Nullable bool
}

// Conflict records an attribute whose observed values disagreed on type.
type Conflict struct {
	Name     string
	From     flattypes.ColumnType // type before the observation
	Observed flattypes.ColumnType // type of the observed value
	To       flattypes.ColumnType // type after widening
}

// SchemaBuilder infers an ordered, typed column schema from attribute
// maps. It is the inference phase of the schema; Freeze returns the
// immutable Schema used for encoding.
type SchemaBuilder struct {
	overrides map[string]flattypes.ColumnType
	index     map[string]int
	columns   []Column
	pinned    []bool
	pending   []string // keys seen only with null values, in sighting order
	nulls     map[string]bool
	conflicts []Conflict
	frozen    bool
}

// NewSchemaBuilder returns a builder seeded with explicit column types.
// Overrides take precedence over inferred types but only produce a column
// once their key is observed.
func NewSchemaBuilder(overrides []Column) *SchemaBuilder {
	b := &SchemaBuilder{
		overrides: make(map[string]flattypes.ColumnType, len(overrides)),
		index:     make(map[string]int),
		nulls:     make(map[string]bool),
	}
	for _, o := range overrides {
		b.overrides[o.Name] = o.Type
	}
	return b
}

// Observe updates the running schema with the keys of attrs, skipping the
// excluded keys. New keys are appended in first-seen order.
func (b *SchemaBuilder) Observe(attrs *Attributes, exclude ...string) {
	if b.frozen {
		panic("citybuf: Observe called on a frozen schema")
	}
	if attrs == nil {
		return
	}
	for pair := attrs.Oldest(); pair != nil; pair = pair.Next() {
		if excluded(pair.Key, exclude) {
			continue
		}
		b.observe(pair.Key, pair.Value)
	}
}

func (b *SchemaBuilder) observe(name string, raw json.RawMessage) {
	t, ok := classify(raw)
	i, known := b.index[name]
	if !ok {
		if known {
			b.columns[i].Nullable = true
			return
		}
		if ot, pinned := b.overrides[name]; pinned {
			b.add(Column{Name: name, Type: ot, Nullable: true}, true)
			return
		}
		if !b.nulls[name] {
			b.nulls[name] = true
			b.pending = append(b.pending, name)
		}
		return
	}
	if !known {
		if ot, pinned := b.overrides[name]; pinned {
			b.add(Column{Name: name, Type: ot, Nullable: b.nulls[name]}, true)
			return
		}
		b.add(Column{Name: name, Type: t, Nullable: b.nulls[name]}, false)
		return
	}
	if b.pinned[i] {
		return
	}
	from := b.columns[i].Type
	if to := widen(from, t); to != from {
		b.columns[i].Type = to
		b.conflicts = append(b.conflicts, Conflict{Name: name, From: from, Observed: t, To: to})
	}
}

func (b *SchemaBuilder) add(c Column, pinned bool) {
	b.index[c.Name] = len(b.columns)
	b.columns = append(b.columns, c)
	b.pinned = append(b.pinned, pinned)
}

// Conflicts returns the type conflicts resolved by widening so far.
func (b *SchemaBuilder) Conflicts() []Conflict {
	return append([]Conflict(nil), b.conflicts...)
}

// Freeze ends the inference phase. Keys that were only ever null are
// appended as nullable String columns in the order they were first seen.
func (b *SchemaBuilder) Freeze() (*Schema, error) {
	if b.frozen {
		panic("citybuf: Freeze called twice")
	}
	b.frozen = true
	for _, name := range b.pending {
		if _, ok := b.index[name]; ok {
			continue
		}
		b.add(Column{Name: name, Type: flattypes.ColumnTypeString, Nullable: true}, false)
	}
	if len(b.columns) > maxColumns {
		return nil, fmt.Errorf("%w: %d columns, at most %d are addressable", ErrTooManyColumns, len(b.columns), maxColumns)
	}
	s := &Schema{
		columns: make([]Column, len(b.columns)),
		index:   make(map[string]int, len(b.index)),
	}
	copy(s.columns, b.columns)
	for k, v := range b.index {
		s.index[k] = v
	}
	return s, nil
}

// Schema is a frozen, ordered column schema. It is safe for concurrent
// use.
type Schema struct {
	columns []Column
	index   map[string]int
}

// Len returns the number of columns.
func (s *Schema) Len() int {
	return len(s.columns)
}

// Columns returns a copy of the columns in schema order.
func (s *Schema) Columns() []Column {
	return append([]Column(nil), s.columns...)
}

// ColumnType returns the type of the named column.
func (s *Schema) ColumnType(name string) (flattypes.ColumnType, bool) {
	i, ok := s.index[name]
	if !ok {
		return 0, false
	}
	return s.columns[i].Type, true
}

// ColumnIndex returns the position of the named column.
func (s *Schema) ColumnIndex(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// classify returns the column type implied by a raw JSON value. The
// second result is false for null.
func classify(raw json.RawMessage) (flattypes.ColumnType, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, false
	}
	switch raw[0] {
	case 'n':
		return 0, false
	case '"':
		return flattypes.ColumnTypeString, true
	case 't', 'f':
		return flattypes.ColumnTypeBool, true
	case '{', '[':
		return flattypes.ColumnTypeJson, true
	}
	if bytes.ContainsAny(raw, ".eE") {
		return flattypes.ColumnTypeDouble, true
	}
	if _, err := strconv.ParseInt(string(raw), 10, 64); err != nil {
		return flattypes.ColumnTypeDouble, true
	}
	return flattypes.ColumnTypeLong, true
}

// widen returns the type able to hold values of both a and b.
func widen(a, b flattypes.ColumnType) flattypes.ColumnType {
	switch {
	case a == b:
		return a
	case a == flattypes.ColumnTypeJson || b == flattypes.ColumnTypeJson:
		return flattypes.ColumnTypeJson
	case a == flattypes.ColumnTypeString || b == flattypes.ColumnTypeString:
		return flattypes.ColumnTypeString
	case isNumeric(a) && isNumeric(b):
		if isFloat(a) || isFloat(b) {
			return flattypes.ColumnTypeDouble
		}
		return flattypes.ColumnTypeLong
	default:
		return flattypes.ColumnTypeJson
	}
}

func isNumeric(t flattypes.ColumnType) bool {
	switch t {
	case flattypes.ColumnTypeByte, flattypes.ColumnTypeUByte,
		flattypes.ColumnTypeShort, flattypes.ColumnTypeUShort,
		flattypes.ColumnTypeInt, flattypes.ColumnTypeUInt,
		flattypes.ColumnTypeLong, flattypes.ColumnTypeULong,
		flattypes.ColumnTypeFloat, flattypes.ColumnTypeDouble:
		return true
	}
	return false
}

func isFloat(t flattypes.ColumnType) bool {
	return t == flattypes.ColumnTypeFloat || t == flattypes.ColumnTypeDouble
}

func excluded(key string, exclude []string) bool {
	for _, e := range exclude {
		if key == e {
			return true
		}
	}
	return false
}
