package grid

import "math"

// Dimensions is the ordered collection of axes that make up the search
// space's spatial partition, plus a version counter that increments every
// time a bound moves (ExpandBounds, ExpandBoundsMultiple, AdjustLimits) or
// a dimension is subdivided (DivideDimension). Callers cache region-key
// lookups against this counter and recompute whenever it changes.
type Dimensions struct {
	dims            []Dimension
	version         uint64
	lastDivisionIdx int
}

// Bounds is an inclusive [Lo, Hi] range used to seed a dimension.
type Bounds struct {
	Lo, Hi float64
}

// NewDimensions builds one Dimension per entry in limits. Following the
// source system's initial-world convention, each dimension starts at
// double its nominal width (centered on the original midpoint) with one
// doubling already applied, so the very first region split has somewhere
// to go.
func NewDimensions(limits []Bounds) *Dimensions {
	dims := make([]Dimension, len(limits))
	for i, b := range limits {
		width := b.Hi - b.Lo
		doubledWidth := width * 2
		midpoint := (b.Lo + b.Hi) / 2
		newLo := midpoint - doubledWidth/2
		newHi := midpoint + doubledWidth/2
		dims[i] = NewDimension(newLo, newHi, 1)
	}
	return &Dimensions{dims: dims}
}

// RestoreDimensions rebuilds a Dimensions directly from already-computed
// per-axis state and a version counter, skipping NewDimensions' initial
// doubling transform. Used only when resuming from a checkpoint, where the
// ranges and doublings on disk are already exact and must not be
// transformed again.
func RestoreDimensions(dims []Dimension, version uint64) *Dimensions {
	return &Dimensions{dims: dims, version: version}
}

// NumDimensions returns the number of axes.
func (d *Dimensions) NumDimensions() int { return len(d.dims) }

// Version returns the current cache-invalidation token.
func (d *Dimensions) Version() uint64 { return d.version }

// Dimension returns a copy of the dimension at idx.
func (d *Dimensions) Dimension(idx int) Dimension { return d.dims[idx] }

// All returns the dimensions in order. Callers must not mutate the
// returned slice.
func (d *Dimensions) All() []Dimension { return d.dims }

// LastDivisionIndex returns the axis index DivideDimension most recently
// succeeded on (0 before any division). The engine's Phase 7 does not read
// it; it picks the axis to divide by diversity.
func (d *Dimensions) LastDivisionIndex() int { return d.lastDivisionIdx }

// ExpandBounds widens dimension dimIdx's range by 50% on each side and
// bumps the version counter. Panics if dimIdx is out of range.
func (d *Dimensions) ExpandBounds(dimIdx int) {
	d.dims[dimIdx].ExpandBounds()
	d.version++
}

// ExpandBoundsMultiple expands every dimension named in dimIndices and
// increments the version counter exactly once, regardless of how many
// dimensions were touched. A nil or empty dimIndices is a no-op: no
// dimension changes and the version does not advance.
func (d *Dimensions) ExpandBoundsMultiple(dimIndices []int) {
	if len(dimIndices) == 0 {
		return
	}
	for _, idx := range dimIndices {
		d.dims[idx].ExpandBounds()
	}
	d.version++
}

// DivideDimension doubles the interval count of dimension dimIdx by
// incrementing its doubling count, unless doing so would produce an
// interval width too small for float64 to represent distinctly from the
// range start — in which case it leaves the dimension untouched and
// returns false. Panics if dimIdx is out of range or Dimensions is empty.
func (d *Dimensions) DivideDimension(dimIdx int) bool {
	if len(d.dims) == 0 {
		panic("grid: DivideDimension called on empty Dimensions set")
	}
	if dimIdx < 0 || dimIdx >= len(d.dims) {
		panic("grid: dimension index out of bounds")
	}
	dim := &d.dims[dimIdx]
	newDoublings := dim.doublings + 1
	numNewIntervals := dim.NumIntervals() * 2 // equivalent to 2^newDoublings
	lo, hi := dim.Bounds()
	rangeWidth := hi - lo
	newIntervalWidth := rangeWidth / numNewIntervals

	if lo+newIntervalWidth == lo {
		return false
	}

	dim.setDoublings(newDoublings)
	d.lastDivisionIdx = dimIdx
	d.version++
	return true
}

// AdjustLimits is the fallback used when DivideDimension can no longer
// refine a dimension because float64 precision has been exhausted: it
// recomputes the dimension's range directly from the span of observed
// organism values, padded by 50%, rather than subdividing further.
//
// Returns false (leaving the dimension untouched) if dimIdx is out of
// range, values is empty, or every value is non-finite. Returns true if
// the new range is strictly narrower than the old one.
func (d *Dimensions) AdjustLimits(dimIdx int, values []float64) bool {
	if dimIdx < 0 || dimIdx >= len(d.dims) {
		return false
	}

	lo, hi := d.dims[dimIdx].Bounds()
	var originalSpan float64
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		originalSpan = math.Inf(1)
	} else {
		originalSpan = hi - lo
	}

	minVal, maxVal := math.Inf(1), math.Inf(-1)
	found := false
	for _, v := range values {
		if !isFiniteValue(v) {
			continue
		}
		found = true
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if !found {
		return false
	}

	midpoint := (minVal + maxVal) / 2
	span := maxVal - minVal
	if span == 0 {
		span = 1
	} else {
		span *= 1.5
	}
	newLo := midpoint - span/2
	newHi := midpoint + span/2

	d.dims[dimIdx].setBounds(newLo, newHi)
	d.version++

	newSpan := newHi - newLo
	if math.IsInf(originalSpan, 0) {
		return isFiniteValue(newSpan)
	}
	return newSpan < originalSpan
}

func isFiniteValue(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
