package citybuf

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	flatbuffers "github.com/google/flatbuffers/go"
	"golang.org/x/sync/errgroup"

	"github.com/tingold/orb-citybuf/flat"
)

// Format version written after the magic tags.
const (
	VersionMajor = 0
	VersionMinor = 4
)

// Magic is the 8-byte prefix of every CityBuf file: the tag "FCB" with
// the major version, then the tag again with the minor version.
var Magic = [8]byte{'F', 'C', 'B', VersionMajor, 'F', 'C', 'B', VersionMinor}

// Convert reads a CityJSON sequence from r and writes it to w as a
// CityBuf file.
func Convert(ctx context.Context, r io.Reader, w io.Writer, opts *Options) (*Stats, error) {
	seq, err := ReadSequence(r)
	if err != nil {
		return nil, err
	}
	return ConvertSequence(ctx, seq, w, opts)
}

// ConvertSequence writes a parsed CityJSON sequence to w. The schema and
// extent are collected over every feature first; features are then
// encoded in parallel and written in input order. Nothing is written to w
// unless every feature encodes successfully.
func ConvertSequence(ctx context.Context, seq *Sequence, w io.Writer, opts *Options) (*Stats, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if seq == nil || seq.Metadata == nil {
		return nil, fmt.Errorf("%w: missing metadata", ErrInvalidData)
	}
	if err := seq.Metadata.validate(); err != nil {
		return nil, err
	}

	schema, extent, conflicts, err := scan(seq, opts.Overrides)
	if err != nil {
		return nil, err
	}
	for _, c := range conflicts {
		level.Warn(logger).Log("msg", "widened attribute column", "column", c.Name,
			"from", c.From, "observed", c.Observed, "to", c.To)
	}
	level.Info(logger).Log("msg", "using schema", "columns", describeSchema(schema))

	frames := make([][]byte, len(seq.Features))
	stats := make([]Stats, len(seq.Features))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range seq.Features {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			buf, err := encodeFeature(f, schema, opts.WriteNulls, &stats[i])
			if err != nil {
				return fmt.Errorf("feature %d (%q): %w", i, f.ID, err)
			}
			frames[i] = buf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var rs *ReferenceSystem
	if md := seq.Metadata.Metadata; md != nil && md.ReferenceSystem != "" {
		rs, err = ParseReferenceSystem(md.ReferenceSystem)
		if err != nil {
			level.Warn(logger).Log("msg", "ignoring reference system", "err", err)
			rs = nil
		}
	} else {
		level.Warn(logger).Log("msg", "no reference system declared")
	}
	ext, ok := extent.Result()
	if !ok {
		level.Warn(logger).Log("msg", "no geographical extent available, header will not record one")
	}
	var extp *Extent
	if ok {
		extp = &ext
	}
	header := buildHeader(seq.Metadata.Transform, schema, uint64(len(frames)), extp, rs)

	total := &Stats{
		Features:        len(frames),
		Columns:         schema.Len(),
		SchemaConflicts: len(conflicts),
	}
	for i := range stats {
		total.add(&stats[i])
	}
	n, err := w.Write(Magic[:])
	total.OutputBytes += int64(n)
	if err != nil {
		return nil, err
	}
	n, err = w.Write(header)
	total.OutputBytes += int64(n)
	if err != nil {
		return nil, err
	}
	for _, frame := range frames {
		n, err = w.Write(frame)
		total.OutputBytes += int64(n)
		if err != nil {
			return nil, err
		}
	}

	level.Info(logger).Log("msg", "conversion finished",
		"features", total.Features,
		"objects", total.Objects,
		"vertices", total.Vertices,
		"vertex_bytes", total.VertexBytes,
		"attribute_bytes", total.AttributeBytes,
		"geometry_bytes", total.GeometryBytes,
		"semantic_bytes", total.SemanticBytes,
		"boundary_bytes", total.BoundaryBytes,
		"bytes_per_index", fmt.Sprintf("%.2f", total.BytesPerIndex()),
		"output_bytes", total.OutputBytes,
	)
	if opts.Metrics != nil {
		opts.Metrics.Observe(total)
	}
	return total, nil
}

// scan is the first pass: it infers the attribute schema from object and
// semantic surface attributes and folds object extents.
func scan(seq *Sequence, overrides []Column) (*Schema, *ExtentAccumulator, []Conflict, error) {
	var declared []float64
	if md := seq.Metadata.Metadata; md != nil {
		declared = md.GeographicalExtent
	}
	acc, err := NewExtentAccumulator(declared)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("dataset extent: %w", err)
	}
	sb := NewSchemaBuilder(overrides)
	for i, f := range seq.Features {
		if err := f.validate(); err != nil {
			return nil, nil, nil, fmt.Errorf("feature %d (%q): %w", i, f.ID, err)
		}
		for pair := f.CityObjects.Oldest(); pair != nil; pair = pair.Next() {
			obj := pair.Value
			sb.Observe(obj.Attributes)
			for _, g := range obj.Geometry {
				if g == nil || g.Semantics == nil {
					continue
				}
				for _, s := range g.Semantics.Surfaces {
					sb.Observe(s, semanticKeys...)
				}
			}
			if err := acc.Fold(obj.GeographicalExtent); err != nil {
				return nil, nil, nil, fmt.Errorf("feature %d object %q: %w", i, pair.Key, err)
			}
		}
	}
	conflicts := sb.Conflicts()
	schema, err := sb.Freeze()
	if err != nil {
		return nil, nil, nil, err
	}
	return schema, acc, conflicts, nil
}

func describeSchema(s *Schema) string {
	parts := make([]string, 0, s.Len())
	for _, c := range s.Columns() {
		parts = append(parts, c.Name+":"+c.Type.String())
	}
	return strings.Join(parts, ",")
}

// buildHeader serializes the header table with its size prefix.
func buildHeader(t *Transform, schema *Schema, count uint64, ext *Extent, rs *ReferenceSystem) []byte {
	b := flatbuffers.NewBuilder(1024)

	cols := schema.Columns()
	colOffsets := make([]flatbuffers.UOffsetT, len(cols))
	for i, c := range cols {
		name := b.CreateString(c.Name)
		flat.ColumnStart(b)
		flat.ColumnAddName(b, name)
		flat.ColumnAddType(b, c.Type)
		flat.ColumnAddNullable(b, c.Nullable)
		colOffsets[i] = flat.ColumnEnd(b)
	}
	columns := createOffsetVector(b, colOffsets)

	var rsOffset flatbuffers.UOffsetT
	if rs != nil {
		authority := b.CreateString(rs.Authority)
		codeString := b.CreateString(rs.CodeString)
		flat.ReferenceSystemStart(b)
		flat.ReferenceSystemAddAuthority(b, authority)
		flat.ReferenceSystemAddVersion(b, rs.Version)
		flat.ReferenceSystemAddCode(b, rs.Code)
		flat.ReferenceSystemAddCodeString(b, codeString)
		rsOffset = flat.ReferenceSystemEnd(b)
	}

	flat.HeaderStart(b)
	flat.HeaderAddTransform(b, flat.CreateTransform(b,
		t.Scale[0], t.Scale[1], t.Scale[2],
		t.Translate[0], t.Translate[1], t.Translate[2]))
	flat.HeaderAddColumns(b, columns)
	flat.HeaderAddFeaturesCount(b, count)
	if ext != nil {
		lo, hi := ext.Min(), ext.Max()
		flat.HeaderAddGeographicalExtent(b, flat.CreateGeographicalExtent(b,
			lo[0], lo[1], lo[2], hi[0], hi[1], hi[2]))
	}
	if rs != nil {
		flat.HeaderAddReferenceSystem(b, rsOffset)
	}
	b.FinishSizePrefixed(flat.HeaderEnd(b))
	return b.FinishedBytes()
}

// encodeFeature serializes one feature table with its size prefix and
// records its section sizes in st.
func encodeFeature(f *Feature, schema *Schema, writeNulls bool, st *Stats) ([]byte, error) {
	b := flatbuffers.NewBuilder(4096)

	o := b.Offset()
	flat.CityFeatureStartVerticesVector(b, len(f.Vertices))
	for i := len(f.Vertices) - 1; i >= 0; i-- {
		v := f.Vertices[i]
		flat.CreateVertex(b, v[0], v[1], v[2])
	}
	vertices := b.EndVector(len(f.Vertices))
	st.VertexBytes += int64(b.Offset() - o)
	st.Vertices += len(f.Vertices)

	objOffsets := make([]flatbuffers.UOffsetT, 0, f.CityObjects.Len())
	for pair := f.CityObjects.Oldest(); pair != nil; pair = pair.Next() {
		off, err := encodeObject(b, pair.Key, pair.Value, len(f.Vertices), schema, writeNulls, st)
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", pair.Key, err)
		}
		objOffsets = append(objOffsets, off)
	}
	st.Objects += len(objOffsets)
	objects := createOffsetVector(b, objOffsets)
	id := b.CreateString(f.ID)

	flat.CityFeatureStart(b)
	flat.CityFeatureAddId(b, id)
	flat.CityFeatureAddObjects(b, objects)
	flat.CityFeatureAddVertices(b, vertices)
	b.FinishSizePrefixed(flat.CityFeatureEnd(b))
	return b.FinishedBytes(), nil
}

func encodeObject(b *flatbuffers.Builder, id string, obj *CityObject, vertexCount int, schema *Schema, writeNulls bool, st *Stats) (flatbuffers.UOffsetT, error) {
	t, err := cityObjectType(obj.Type)
	if err != nil {
		return 0, err
	}

	var attributes flatbuffers.UOffsetT
	if obj.Attributes != nil {
		buf, err := schema.Encode(obj.Attributes, writeNulls)
		if err != nil {
			return 0, err
		}
		o := b.Offset()
		attributes = b.CreateByteVector(buf)
		st.AttributeBytes += int64(b.Offset() - o)
	}

	var geometry flatbuffers.UOffsetT
	if obj.Geometry != nil {
		o := b.Offset()
		offsets := make([]flatbuffers.UOffsetT, len(obj.Geometry))
		for i, g := range obj.Geometry {
			if g == nil {
				return 0, fmt.Errorf("geometry %d: %w: null geometry", i, ErrInvalidData)
			}
			if offsets[i], err = encodeGeometry(b, g, vertexCount, schema, writeNulls, st); err != nil {
				return 0, fmt.Errorf("geometry %d: %w", i, err)
			}
		}
		geometry = createOffsetVector(b, offsets)
		st.GeometryBytes += int64(b.Offset() - o)
	}

	var parents, children flatbuffers.UOffsetT
	if obj.Parents != nil {
		parents = createStringVector(b, obj.Parents)
	}
	if obj.Children != nil {
		children = createStringVector(b, obj.Children)
	}
	idOffset := b.CreateString(id)

	flat.CityObjectStart(b)
	flat.CityObjectAddType(b, t)
	flat.CityObjectAddId(b, idOffset)
	if e := obj.GeographicalExtent; e != nil {
		flat.CityObjectAddGeographicalExtent(b, flat.CreateGeographicalExtent(b, e[0], e[1], e[2], e[3], e[4], e[5]))
	}
	if obj.Geometry != nil {
		flat.CityObjectAddGeometry(b, geometry)
	}
	if obj.Attributes != nil {
		flat.CityObjectAddAttributes(b, attributes)
	}
	if obj.Children != nil {
		flat.CityObjectAddChildren(b, children)
	}
	if obj.Parents != nil {
		flat.CityObjectAddParents(b, parents)
	}
	return flat.CityObjectEnd(b), nil
}

func encodeGeometry(b *flatbuffers.Builder, g *Geometry, vertexCount int, schema *Schema, writeNulls bool, st *Stats) (flatbuffers.UOffsetT, error) {
	fg, err := FlattenGeometry(g, vertexCount)
	if err != nil {
		return 0, err
	}

	var semanticObjects flatbuffers.UOffsetT
	if g.Semantics != nil {
		objs, err := BuildSemanticObjects(g.Semantics.Surfaces, schema, writeNulls)
		if err != nil {
			return 0, err
		}
		o := b.Offset()
		offsets := make([]flatbuffers.UOffsetT, len(objs))
		for i, so := range objs {
			attrs := b.CreateByteVector(so.Attributes)
			var children flatbuffers.UOffsetT
			if so.Children != nil {
				children = createUint32Vector(b, so.Children)
			}
			flat.SemanticObjectStart(b)
			flat.SemanticObjectAddType(b, so.Type)
			flat.SemanticObjectAddAttributes(b, attrs)
			if so.Children != nil {
				flat.SemanticObjectAddChildren(b, children)
			}
			if so.Parent != nil {
				flat.SemanticObjectAddParent(b, *so.Parent)
			}
			offsets[i] = flat.SemanticObjectEnd(b)
		}
		semanticObjects = createOffsetVector(b, offsets)
		st.SemanticBytes += int64(b.Offset() - o)
	}

	o := b.Offset()
	boundaries := createUint32Vector(b, fg.Boundaries)
	st.IndexBytes += int64(b.Offset() - o)
	st.IndexCount += int64(len(fg.Boundaries))

	var solids, shells, surfaces, strs, semantics flatbuffers.UOffsetT
	if fg.Solids != nil {
		solids = createUint32Vector(b, fg.Solids)
	}
	if fg.Shells != nil {
		shells = createUint32Vector(b, fg.Shells)
	}
	if fg.Surfaces != nil {
		surfaces = createUint32Vector(b, fg.Surfaces)
	}
	if fg.Strings != nil {
		strs = createUint32Vector(b, fg.Strings)
	}
	if fg.Semantics != nil {
		semantics = createUint32Vector(b, fg.Semantics)
	}
	st.BoundaryBytes += int64(b.Offset() - o)
	lod := b.CreateString(fg.LOD)

	flat.GeometryStart(b)
	flat.GeometryAddType(b, fg.Type)
	flat.GeometryAddLod(b, lod)
	if fg.Solids != nil {
		flat.GeometryAddSolids(b, solids)
	}
	if fg.Shells != nil {
		flat.GeometryAddShells(b, shells)
	}
	if fg.Surfaces != nil {
		flat.GeometryAddSurfaces(b, surfaces)
	}
	if fg.Strings != nil {
		flat.GeometryAddStrings(b, strs)
	}
	flat.GeometryAddBoundaries(b, boundaries)
	if fg.Semantics != nil {
		flat.GeometryAddSemantics(b, semantics)
	}
	if g.Semantics != nil {
		flat.GeometryAddSemanticsObjects(b, semanticObjects)
	}
	return flat.GeometryEnd(b), nil
}

func createUint32Vector(b *flatbuffers.Builder, v []uint32) flatbuffers.UOffsetT {
	b.StartVector(4, len(v), 4)
	for i := len(v) - 1; i >= 0; i-- {
		b.PrependUint32(v[i])
	}
	return b.EndVector(len(v))
}

func createOffsetVector(b *flatbuffers.Builder, offsets []flatbuffers.UOffsetT) flatbuffers.UOffsetT {
	b.StartVector(4, len(offsets), 4)
	for i := len(offsets) - 1; i >= 0; i-- {
		b.PrependUOffsetT(offsets[i])
	}
	return b.EndVector(len(offsets))
}

func createStringVector(b *flatbuffers.Builder, s []string) flatbuffers.UOffsetT {
	offsets := make([]flatbuffers.UOffsetT, len(s))
	for i, v := range s {
		offsets[i] = b.CreateString(v)
	}
	return createOffsetVector(b, offsets)
}
