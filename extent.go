package citybuf

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Extent is a 3D bounding box. The planar part is an orb.Bound so it can
// be used with the rest of the orb ecosystem.
type Extent struct {
	Planar     orb.Bound
	MinZ, MaxZ float64
}

// NewExtent returns the extent of a 6-value CityJSON bounding box
// (min x, y, z followed by max x, y, z).
func NewExtent(b []float64) (Extent, error) {
	if len(b) != 6 {
		return Extent{}, fmt.Errorf("%w: extent has %d values, want 6", ErrInvalidData, len(b))
	}
	return Extent{
		Planar: orb.Bound{Min: orb.Point{b[0], b[1]}, Max: orb.Point{b[3], b[4]}},
		MinZ:   b[2],
		MaxZ:   b[5],
	}, nil
}

// Min returns the minimum corner.
func (e Extent) Min() [3]float64 {
	return [3]float64{e.Planar.Min.X(), e.Planar.Min.Y(), e.MinZ}
}

// Max returns the maximum corner.
func (e Extent) Max() [3]float64 {
	return [3]float64{e.Planar.Max.X(), e.Planar.Max.Y(), e.MaxZ}
}

// Valid reports whether every bound is finite and min does not exceed
// max on any axis.
func (e Extent) Valid() bool {
	lo, hi := e.Min(), e.Max()
	for i := 0; i < 3; i++ {
		if math.IsInf(lo[i], 0) || math.IsInf(hi[i], 0) || math.IsNaN(lo[i]) || math.IsNaN(hi[i]) || lo[i] > hi[i] {
			return false
		}
	}
	return true
}

// ExtentAccumulator computes the dataset extent. A declared dataset
// extent is used as is; otherwise object extents are folded starting
// from an empty box.
type ExtentAccumulator struct {
	extent   Extent
	declared bool
}

// NewExtentAccumulator returns an accumulator seeded with the declared
// dataset extent, or an empty box when declared is nil.
func NewExtentAccumulator(declared []float64) (*ExtentAccumulator, error) {
	if declared != nil {
		e, err := NewExtent(declared)
		if err != nil {
			return nil, err
		}
		return &ExtentAccumulator{extent: e, declared: true}, nil
	}
	inf := math.Inf(1)
	return &ExtentAccumulator{extent: Extent{
		Planar: orb.Bound{Min: orb.Point{inf, inf}, Max: orb.Point{-inf, -inf}},
		MinZ:   inf,
		MaxZ:   -inf,
	}}, nil
}

// Fold extends the extent by an object extent. It is a no-op when the
// dataset extent was declared or b is nil.
func (a *ExtentAccumulator) Fold(b []float64) error {
	if a.declared || b == nil {
		return nil
	}
	e, err := NewExtent(b)
	if err != nil {
		return err
	}
	a.extent.Planar = a.extent.Planar.Extend(e.Planar.Min).Extend(e.Planar.Max)
	a.extent.MinZ = math.Min(a.extent.MinZ, e.MinZ)
	a.extent.MaxZ = math.Max(a.extent.MaxZ, e.MaxZ)
	return nil
}

// Result returns the accumulated extent. The second result is false when
// nothing was declared or folded, in which case the extent is still the
// infinite seed and must not be written.
func (a *ExtentAccumulator) Result() (Extent, bool) {
	return a.extent, a.extent.Valid()
}
