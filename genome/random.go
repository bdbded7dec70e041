package genome

import "math/rand"

// E0 is the floor applied to an adjustment's maximum random magnitude when a
// locus's value span is zero or vanishingly small, so a degenerate bound
// still produces a usable (if tiny) mutation step.
const E0 = 1e-9

// Bounds is an inclusive [Lo, Hi] range used to seed a Locus's initial value
// and the bound on its adjustment magnitude.
type Bounds struct {
	Lo, Hi float64
}

// NewRandomLocusAdjustment builds a LocusAdjustment with a uniformly random
// direction, doubling flag, and a non-negative magnitude capped at
// AdjustmentValueBoundPercentage of the locus's value span (or E0 if that
// would be smaller).
func NewRandomLocusAdjustment(rng *rand.Rand, valueBounds Bounds) LocusAdjustment {
	dir := Add
	if rng.Float64() < 0.5 {
		dir = Subtract
	}
	doubling := rng.Float64() < 0.5
	span := valueBounds.Hi - valueBounds.Lo
	if span < 0 {
		span = -span
	}
	maxAdj := span * AdjustmentValueBoundPercentage
	if maxAdj < E0 {
		maxAdj = E0
	}
	adjVal := NewParameterWithBounds(rng.Float64()*maxAdj, 0.0, maxAdj)
	return NewLocusAdjustment(adjVal, dir, doubling)
}

// NewRandomLocus builds a Locus whose value is uniformly sampled from bounds
// (clamped into them) and whose adjustment is random per
// NewRandomLocusAdjustment. apply_adjustment starts false.
func NewRandomLocus(rng *rand.Rand, bounds Bounds, bound bool) Locus {
	val := bounds.Lo + rng.Float64()*(bounds.Hi-bounds.Lo)
	var value Parameter
	if bound {
		value = NewParameterWithBounds(val, bounds.Lo, bounds.Hi)
	} else {
		value = NewParameter(val)
	}
	adj := NewRandomLocusAdjustment(rng, bounds)
	return NewLocus(value, adj, false)
}

// NewRandomGamete builds a Gamete with one locus per entry in
// parameterBounds. The first NumSystemParameters loci are bounded (system
// parameters always clamp); the rest are unbounded (problem parameters may
// wander outside their seed range, subject to the search grid).
func NewRandomGamete(rng *rand.Rand, parameterBounds []Bounds) Gamete {
	loci := make([]Locus, len(parameterBounds))
	for i, b := range parameterBounds {
		loci[i] = NewRandomLocus(rng, b, i < NumSystemParameters)
	}
	return NewGamete(loci)
}

// NewRandomPhenotype builds a Phenotype from two independently random
// gametes. Panics if fewer than NumSystemParameters bounds are supplied.
func NewRandomPhenotype(rng *rand.Rand, parameterBounds []Bounds) Phenotype {
	if len(parameterBounds) < NumSystemParameters {
		panic("genome: parameterBounds must carry at least NumSystemParameters entries")
	}
	g1 := NewRandomGamete(rng, parameterBounds)
	g2 := NewRandomGamete(rng, parameterBounds)
	return NewPhenotype(g1, g2, rng)
}
