package citybuf

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Stats describes a finished conversion. Byte counts are measured on the
// FlatBuffers builder and include alignment padding.
type Stats struct {
	Features        int
	Objects         int
	Vertices        int
	Columns         int
	SchemaConflicts int
	VertexBytes     int64
	AttributeBytes  int64
	GeometryBytes   int64
	SemanticBytes   int64
	BoundaryBytes   int64 // boundaries plus run-length and semantics arrays
	IndexBytes      int64 // boundaries vector only
	IndexCount      int64
	OutputBytes     int64
}

// BytesPerIndex returns the average encoded size of a vertex index.
func (s *Stats) BytesPerIndex() float64 {
	if s.IndexCount == 0 {
		return 0
	}
	return float64(s.IndexBytes) / float64(s.IndexCount)
}

func (s *Stats) add(o *Stats) {
	s.Objects += o.Objects
	s.Vertices += o.Vertices
	s.VertexBytes += o.VertexBytes
	s.AttributeBytes += o.AttributeBytes
	s.GeometryBytes += o.GeometryBytes
	s.SemanticBytes += o.SemanticBytes
	s.BoundaryBytes += o.BoundaryBytes
	s.IndexBytes += o.IndexBytes
	s.IndexCount += o.IndexCount
}

// Metrics exports conversion statistics as Prometheus gauges.
type Metrics struct {
	Features      prometheus.Gauge
	Objects       prometheus.Gauge
	Vertices      prometheus.Gauge
	Columns       prometheus.Gauge
	Conflicts     prometheus.Gauge
	EncodedBytes  *prometheus.GaugeVec
	BytesPerIndex prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the provided registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	features := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "citybuf_features",
		Help: "Features written by the last conversion",
	})

	objects := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "citybuf_city_objects",
		Help: "City objects written by the last conversion",
	})

	vertices := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "citybuf_vertices",
		Help: "Vertices written by the last conversion",
	})

	columns := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "citybuf_schema_columns",
		Help: "Attribute columns in the frozen schema",
	})

	conflicts := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "citybuf_schema_conflicts",
		Help: "Attribute type conflicts resolved by widening",
	})

	encodedBytes := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "citybuf_encoded_bytes",
		Help: "Encoded bytes per section of the last conversion",
	}, []string{"section"})

	bytesPerIndex := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "citybuf_bytes_per_index",
		Help: "Average encoded bytes per boundary vertex index",
	})

	reg.MustRegister(features, objects, vertices, columns, conflicts, encodedBytes, bytesPerIndex)

	return &Metrics{
		Features:      features,
		Objects:       objects,
		Vertices:      vertices,
		Columns:       columns,
		Conflicts:     conflicts,
		EncodedBytes:  encodedBytes,
		BytesPerIndex: bytesPerIndex,
	}
}

// Observe sets the gauges from s.
func (m *Metrics) Observe(s *Stats) {
	m.Features.Set(float64(s.Features))
	m.Objects.Set(float64(s.Objects))
	m.Vertices.Set(float64(s.Vertices))
	m.Columns.Set(float64(s.Columns))
	m.Conflicts.Set(float64(s.SchemaConflicts))
	m.EncodedBytes.WithLabelValues("vertices").Set(float64(s.VertexBytes))
	m.EncodedBytes.WithLabelValues("attributes").Set(float64(s.AttributeBytes))
	m.EncodedBytes.WithLabelValues("geometry").Set(float64(s.GeometryBytes))
	m.EncodedBytes.WithLabelValues("semantics").Set(float64(s.SemanticBytes))
	m.EncodedBytes.WithLabelValues("boundaries").Set(float64(s.BoundaryBytes))
	m.EncodedBytes.WithLabelValues("indices").Set(float64(s.IndexBytes))
	m.EncodedBytes.WithLabelValues("output").Set(float64(s.OutputBytes))
	m.BytesPerIndex.Set(s.BytesPerIndex())
}
