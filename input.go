package citybuf

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Attributes is an attribute map which keeps the key order of the JSON
// object it was decoded from. Values are kept as raw JSON.
type Attributes = orderedmap.OrderedMap[string, json.RawMessage]

// NewAttributes returns an empty attribute map.
func NewAttributes() *Attributes {
	return orderedmap.New[string, json.RawMessage]()
}

// Metadata is the first line of a CityJSON sequence.
type Metadata struct {
	Type      string           `json:"type"`
	Version   string           `json:"version"`
	Transform *Transform       `json:"transform"`
	Metadata  *DatasetMetadata `json:"metadata"`
}

// Transform is the vertex quantization shared by every feature.
type Transform struct {
	Scale     []float64 `json:"scale"`
	Translate []float64 `json:"translate"`
}

// DatasetMetadata holds the optional dataset-level metadata.
type DatasetMetadata struct {
	GeographicalExtent []float64 `json:"geographicalExtent"`
	ReferenceSystem    string    `json:"referenceSystem"`
}

// Feature is one CityJSONFeature line.
type Feature struct {
	Type        string                                      `json:"type"`
	ID          string                                      `json:"id"`
	Vertices    [][]int32                                   `json:"vertices"`
	CityObjects *orderedmap.OrderedMap[string, *CityObject] `json:"CityObjects"`
}

// CityObject is one entry of a feature's CityObjects mapping.
type CityObject struct {
	Type               string      `json:"type"`
	Attributes         *Attributes `json:"attributes"`
	Geometry           []*Geometry `json:"geometry"`
	Parents            []string    `json:"parents"`
	Children           []string    `json:"children"`
	GeographicalExtent []float64   `json:"geographicalExtent"`
}

// Geometry is one geometry of a city object. Boundaries are kept raw and
// decoded by FlattenGeometry according to Type.
type Geometry struct {
	Type       string          `json:"type"`
	LOD        json.RawMessage `json:"lod"`
	Boundaries json.RawMessage `json:"boundaries"`
	Semantics  *Semantics      `json:"semantics"`
}

// Semantics holds the semantic surfaces of a geometry and the values
// array assigning them to surfaces.
type Semantics struct {
	Surfaces []*Attributes   `json:"surfaces"`
	Values   json.RawMessage `json:"values"`
}

// Sequence is a fully parsed CityJSON sequence.
type Sequence struct {
	Metadata *Metadata
	Features []*Feature
}

func (m *Metadata) validate() error {
	t := m.Transform
	if t == nil {
		return ErrMissingTransform
	}
	if len(t.Scale) != 3 || len(t.Translate) != 3 {
		return fmt.Errorf("%w: scale and translate must have 3 components", ErrMissingTransform)
	}
	return nil
}

func (f *Feature) validate() error {
	if f.Type != "" && f.Type != "CityJSONFeature" {
		return fmt.Errorf("%w: feature type %q", ErrInvalidData, f.Type)
	}
	for i, v := range f.Vertices {
		if len(v) != 3 {
			return fmt.Errorf("%w: vertex %d has %d components", ErrInvalidData, i, len(v))
		}
	}
	if f.CityObjects == nil {
		f.CityObjects = orderedmap.New[string, *CityObject]()
	}
	for pair := f.CityObjects.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value == nil {
			return fmt.Errorf("%w: city object %q is null", ErrInvalidData, pair.Key)
		}
		if e := pair.Value.GeographicalExtent; e != nil && len(e) != 6 {
			return fmt.Errorf("%w: city object %q extent has %d values", ErrInvalidData, pair.Key, len(e))
		}
	}
	return nil
}

// ReadSequence reads a CityJSON sequence: a metadata line followed by
// one feature per line. Blank lines are skipped. The whole sequence is
// held in memory because the attribute schema must be known before the
// first feature is written.
func ReadSequence(r io.Reader) (*Sequence, error) {
	br := bufio.NewReaderSize(r, 1<<20)
	seq := &Sequence{}
	for n := 1; ; n++ {
		line, err := br.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("citybuf: line %d: %w", n, err)
		}
		if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
			if seq.Metadata == nil {
				seq.Metadata = &Metadata{}
				if uerr := json.Unmarshal(trimmed, seq.Metadata); uerr != nil {
					return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidData, n, uerr)
				}
				if verr := seq.Metadata.validate(); verr != nil {
					return nil, verr
				}
			} else {
				f := &Feature{}
				if uerr := json.Unmarshal(trimmed, f); uerr != nil {
					return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidData, n, uerr)
				}
				if verr := f.validate(); verr != nil {
					return nil, fmt.Errorf("line %d: feature %q: %w", n, f.ID, verr)
				}
				seq.Features = append(seq.Features, f)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
	}
	if seq.Metadata == nil {
		return nil, fmt.Errorf("%w: empty sequence", ErrInvalidData)
	}
	return seq, nil
}

// lodString returns the level of detail as text. CityJSON 1.0 encodes it
// as a number, later versions as a string.
func lodString(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || isNull(raw) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil || math.IsInf(f, 0) {
		return "", fmt.Errorf("%w: lod %s", ErrInvalidData, raw)
	}
	return string(raw), nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
