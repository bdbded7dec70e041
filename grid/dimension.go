// Package grid implements the axis-aligned spatial partition that region
// lookup and subdivision are built on: a Dimension per search axis, the
// doublings-based interval scheme that carves each axis into 2^doublings
// half-open buckets, and the version counter that invalidates any cached
// region key once a bound moves.
package grid

import (
	"fmt"
	"math"
)

// Dimension is one axis of the search space: an inclusive [Lo, Hi] range
// subdivided into 2^Doublings equal-width intervals (zero doublings yield a
// single interval covering the whole range).
type Dimension struct {
	lo, hi    float64
	doublings uint32
}

// NewDimension builds a Dimension over [lo, hi] with the given doubling
// count. Panics if hi < lo.
func NewDimension(lo, hi float64, doublings uint32) Dimension {
	if hi < lo {
		panic(fmt.Sprintf("grid: dimension max must be >= min, got lo=%v hi=%v", lo, hi))
	}
	return Dimension{lo: lo, hi: hi, doublings: doublings}
}

// Bounds returns the current inclusive range.
func (d Dimension) Bounds() (lo, hi float64) { return d.lo, d.hi }

// Doublings returns the current subdivision count.
func (d Dimension) Doublings() uint32 { return d.doublings }

// NumIntervals returns 2^Doublings as a float64, matching the precision
// used when computing interval widths.
func (d Dimension) NumIntervals() float64 { return math.Pow(2, float64(d.doublings)) }

// setDoublings overwrites the doubling count. Used by Dimensions.DivideDimension.
func (d *Dimension) setDoublings(doublings uint32) { d.doublings = doublings }

// setBounds overwrites the range. Used by Dimensions.AdjustLimits and ExpandBounds.
func (d *Dimension) setBounds(lo, hi float64) { d.lo, d.hi = lo, hi }

// GetInterval returns the 0-indexed interval value falls into, or ok=false
// if value lies outside [Lo, Hi].
func (d Dimension) GetInterval(value float64) (index int, ok bool) {
	if value < d.lo || value > d.hi {
		return 0, false
	}
	numIntervals := d.NumIntervals()
	if d.lo == d.hi || numIntervals == 1 {
		return 0, true
	}
	step := (d.hi - d.lo) / numIntervals
	idx := int(math.Floor((value - d.lo) / step))
	n := int(numIntervals)
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx, true
}

// IntervalBounds returns the [start, end] bounds of the given 0-indexed
// interval. All intervals are half-open [start, end) except the last,
// which closes on the exact range end to avoid precision gaps. Returns
// ok=false if index is outside [0, NumIntervals).
func (d Dimension) IntervalBounds(index int) (start, end float64, ok bool) {
	numIntervals := d.NumIntervals()
	n := int(numIntervals)
	if index < 0 || index >= n {
		return 0, 0, false
	}
	if d.lo == d.hi || n == 1 {
		if index == 0 {
			return d.lo, d.hi, true
		}
		return 0, 0, false
	}
	intervalSize := (d.hi - d.lo) / numIntervals
	start = d.lo + float64(index)*intervalSize
	if index+1 == n {
		end = d.hi
	} else {
		end = start + intervalSize
	}
	return start, end, true
}

// ExpandBounds widens the range by 50% on each side. A zero-width range
// expands by a fixed +/-0.5 instead, since 50% of zero is zero.
func (d *Dimension) ExpandBounds() {
	width := d.hi - d.lo
	if width == 0 {
		d.lo -= 0.5
		d.hi += 0.5
		return
	}
	expansion := width / 2
	d.lo -= expansion
	d.hi += expansion
}
