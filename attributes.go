package citybuf

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
)

// Encode serializes attrs against the schema. Each present value is
// written as a uint16 column index followed by the value bytes for the
// column type. A null value is written as a bare column index when
// writeNulls is set and skipped otherwise. Keys are written in the
// record's own order.
func (s *Schema) Encode(attrs *Attributes, writeNulls bool, exclude ...string) ([]byte, error) {
	if attrs == nil {
		return nil, nil
	}
	var buf []byte
	for pair := attrs.Oldest(); pair != nil; pair = pair.Next() {
		if excluded(pair.Key, exclude) {
			continue
		}
		i, ok := s.index[pair.Key]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrSchemaDrift, pair.Key)
		}
		if _, present := classify(pair.Value); !present {
			if writeNulls {
				buf = binary.LittleEndian.AppendUint16(buf, uint16(i))
			}
			continue
		}
		buf = binary.LittleEndian.AppendUint16(buf, uint16(i))
		var err error
		buf, err = appendValue(buf, s.columns[i].Type, pair.Value)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", pair.Key, err)
		}
	}
	return buf, nil
}

func appendValue(buf []byte, t flattypes.ColumnType, raw json.RawMessage) ([]byte, error) {
	raw = bytes.TrimSpace(raw)
	switch t {
	case flattypes.ColumnTypeBool:
		switch string(raw) {
		case "true":
			return append(buf, 1), nil
		case "false":
			return append(buf, 0), nil
		}
		return nil, fmt.Errorf("%w: %s is not a boolean", ErrAttributeType, raw)

	case flattypes.ColumnTypeByte:
		v, err := parseInt(raw, math.MinInt8, math.MaxInt8)
		if err != nil {
			return nil, err
		}
		return append(buf, byte(int8(v))), nil

	case flattypes.ColumnTypeUByte:
		v, err := parseInt(raw, 0, math.MaxUint8)
		if err != nil {
			return nil, err
		}
		return append(buf, byte(v)), nil

	case flattypes.ColumnTypeShort:
		v, err := parseInt(raw, math.MinInt16, math.MaxInt16)
		if err != nil {
			return nil, err
		}
		return binary.LittleEndian.AppendUint16(buf, uint16(int16(v))), nil

	case flattypes.ColumnTypeUShort:
		v, err := parseInt(raw, 0, math.MaxUint16)
		if err != nil {
			return nil, err
		}
		return binary.LittleEndian.AppendUint16(buf, uint16(v)), nil

	case flattypes.ColumnTypeInt:
		v, err := parseInt(raw, math.MinInt32, math.MaxInt32)
		if err != nil {
			return nil, err
		}
		return binary.LittleEndian.AppendUint32(buf, uint32(int32(v))), nil

	case flattypes.ColumnTypeUInt:
		v, err := parseInt(raw, 0, math.MaxUint32)
		if err != nil {
			return nil, err
		}
		return binary.LittleEndian.AppendUint32(buf, uint32(v)), nil

	case flattypes.ColumnTypeLong:
		v, err := parseInt(raw, math.MinInt64, math.MaxInt64)
		if err != nil {
			return nil, err
		}
		return binary.LittleEndian.AppendUint64(buf, uint64(v)), nil

	case flattypes.ColumnTypeULong:
		v, err := strconv.ParseUint(string(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s is not an unsigned integer", ErrAttributeType, raw)
		}
		return binary.LittleEndian.AppendUint64(buf, v), nil

	case flattypes.ColumnTypeFloat:
		v, err := parseFloat(raw)
		if err != nil {
			return nil, err
		}
		return binary.LittleEndian.AppendUint32(buf, math.Float32bits(float32(v))), nil

	case flattypes.ColumnTypeDouble:
		v, err := parseFloat(raw)
		if err != nil {
			return nil, err
		}
		return binary.LittleEndian.AppendUint64(buf, math.Float64bits(v)), nil

	case flattypes.ColumnTypeString, flattypes.ColumnTypeDateTime, flattypes.ColumnTypeBinary:
		s, err := text(raw)
		if err != nil {
			return nil, err
		}
		return appendBytes(buf, []byte(s)), nil

	case flattypes.ColumnTypeJson:
		var out bytes.Buffer
		if err := json.Compact(&out, raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAttributeType, err)
		}
		return appendBytes(buf, out.Bytes()), nil
	}
	return nil, fmt.Errorf("%w: unsupported column type %d", ErrAttributeType, t)
}

func appendBytes(buf, b []byte) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(b)))
	return append(buf, b...)
}

// parseInt parses an integer value, accepting floats without a
// fractional part.
func parseInt(raw json.RawMessage, lo, hi int64) (int64, error) {
	v, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(string(raw), 64)
		if ferr != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, fmt.Errorf("%w: %s is not an integer", ErrAttributeType, raw)
		}
		v = int64(f)
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("%w: %d out of range [%d, %d]", ErrAttributeType, v, lo, hi)
	}
	return v, nil
}

func parseFloat(raw json.RawMessage) (float64, error) {
	v, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s is not a number", ErrAttributeType, raw)
	}
	return v, nil
}

// text returns the decoded string for JSON strings and the compact JSON
// text for any other value.
func text(raw json.RawMessage) (string, error) {
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("%w: %v", ErrAttributeType, err)
		}
		return s, nil
	}
	var out bytes.Buffer
	if err := json.Compact(&out, raw); err != nil {
		return "", fmt.Errorf("%w: %v", ErrAttributeType, err)
	}
	return out.String(), nil
}

// AttributeValue is one decoded entry of an attribute buffer. Value is
// nil for a null marker.
type AttributeValue struct {
	Column Column
	Value  interface{}
}

// DecodeAttributes decodes an attribute buffer written by Schema.Encode.
// Buffers with null markers before the last entry are not decodable.
func DecodeAttributes(data []byte, columns []Column) ([]AttributeValue, error) {
	var out []AttributeValue
	for off := 0; off < len(data); {
		if off+2 > len(data) {
			return nil, fmt.Errorf("%w: truncated column index at %d", ErrInvalidData, off)
		}
		ci := int(binary.LittleEndian.Uint16(data[off:]))
		off += 2
		if ci >= len(columns) {
			return nil, fmt.Errorf("%w: column index %d out of range", ErrInvalidData, ci)
		}
		col := columns[ci]
		// Null markers carry no length, so only a trailing one can be
		// recognized.
		if off == len(data) {
			out = append(out, AttributeValue{Column: col})
			break
		}
		v, n, err := readValue(data[off:], col.Type)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col.Name, err)
		}
		off += n
		out = append(out, AttributeValue{Column: col, Value: v})
	}
	return out, nil
}

func readValue(data []byte, t flattypes.ColumnType) (interface{}, int, error) {
	need := func(n int) error {
		if len(data) < n {
			return fmt.Errorf("%w: need %d bytes, have %d", ErrInvalidData, n, len(data))
		}
		return nil
	}
	switch t {
	case flattypes.ColumnTypeBool:
		if err := need(1); err != nil {
			return nil, 0, err
		}
		return data[0] != 0, 1, nil
	case flattypes.ColumnTypeByte:
		if err := need(1); err != nil {
			return nil, 0, err
		}
		return int8(data[0]), 1, nil
	case flattypes.ColumnTypeUByte:
		if err := need(1); err != nil {
			return nil, 0, err
		}
		return data[0], 1, nil
	case flattypes.ColumnTypeShort:
		if err := need(2); err != nil {
			return nil, 0, err
		}
		return int16(binary.LittleEndian.Uint16(data)), 2, nil
	case flattypes.ColumnTypeUShort:
		if err := need(2); err != nil {
			return nil, 0, err
		}
		return binary.LittleEndian.Uint16(data), 2, nil
	case flattypes.ColumnTypeInt:
		if err := need(4); err != nil {
			return nil, 0, err
		}
		return int32(binary.LittleEndian.Uint32(data)), 4, nil
	case flattypes.ColumnTypeUInt:
		if err := need(4); err != nil {
			return nil, 0, err
		}
		return binary.LittleEndian.Uint32(data), 4, nil
	case flattypes.ColumnTypeLong:
		if err := need(8); err != nil {
			return nil, 0, err
		}
		return int64(binary.LittleEndian.Uint64(data)), 8, nil
	case flattypes.ColumnTypeULong:
		if err := need(8); err != nil {
			return nil, 0, err
		}
		return binary.LittleEndian.Uint64(data), 8, nil
	case flattypes.ColumnTypeFloat:
		if err := need(4); err != nil {
			return nil, 0, err
		}
		return math.Float32frombits(binary.LittleEndian.Uint32(data)), 4, nil
	case flattypes.ColumnTypeDouble:
		if err := need(8); err != nil {
			return nil, 0, err
		}
		return math.Float64frombits(binary.LittleEndian.Uint64(data)), 8, nil
	case flattypes.ColumnTypeString, flattypes.ColumnTypeDateTime, flattypes.ColumnTypeJson, flattypes.ColumnTypeBinary:
		if err := need(4); err != nil {
			return nil, 0, err
		}
		n := int(binary.LittleEndian.Uint32(data))
		if err := need(4 + n); err != nil {
			return nil, 0, err
		}
		b := data[4 : 4+n]
		switch t {
		case flattypes.ColumnTypeBinary:
			return append([]byte(nil), b...), 4 + n, nil
		case flattypes.ColumnTypeJson:
			return json.RawMessage(append([]byte(nil), b...)), 4 + n, nil
		}
		return string(b), 4 + n, nil
	}
	return nil, 0, fmt.Errorf("%w: unsupported column type %d", ErrInvalidData, t)
}

// ParseSchemaOverrides parses a comma-separated list of name:type pairs.
// Types are the short names text, integer, float, boolean and structured
// (with their usual aliases) or any column type name such as Int or
// DateTime.
func ParseSchemaOverrides(s string) ([]Column, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var cols []Column
	for _, item := range strings.Split(s, ",") {
		name, typ, ok := strings.Cut(strings.TrimSpace(item), ":")
		name, typ = strings.TrimSpace(name), strings.TrimSpace(typ)
		if !ok || name == "" || typ == "" {
			return nil, fmt.Errorf("%w: %q is not name:type", ErrInvalidSchemaOverride, item)
		}
		t, err := parseColumnType(typ)
		if err != nil {
			return nil, err
		}
		cols = append(cols, Column{Name: name, Type: t})
	}
	return cols, nil
}

func parseColumnType(s string) (flattypes.ColumnType, error) {
	switch s {
	case "text", "str", "string":
		return flattypes.ColumnTypeString, nil
	case "integer", "int":
		return flattypes.ColumnTypeLong, nil
	case "float", "double":
		return flattypes.ColumnTypeDouble, nil
	case "boolean", "bool":
		return flattypes.ColumnTypeBool, nil
	case "structured", "json":
		return flattypes.ColumnTypeJson, nil
	}
	if t, ok := flattypes.EnumValuesColumnType[s]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("%w: unknown type %q", ErrInvalidSchemaOverride, s)
}
