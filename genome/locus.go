package genome

import "math/rand"

// Locus is one gene position: a value, the adjustment rule that would be
// applied to it, and whether that rule is currently switched on.
type Locus struct {
	Value          Parameter
	Adjustment     LocusAdjustment
	ApplyAdjustment bool
}

// NewLocus builds a Locus from its three fields.
func NewLocus(value Parameter, adjustment LocusAdjustment, apply bool) Locus {
	return Locus{Value: value, Adjustment: adjustment, ApplyAdjustment: apply}
}

// Mutate applies the five-trial PDD mutation process and returns a new Locus,
// clamping the resulting value to the Value Parameter's bounds (if any). Used
// for system-parameter loci (indices < NumSystemParameters).
func (l Locus) Mutate(rng *rand.Rand, dists MutationDistributions) Locus {
	return l.mutate(rng, dists, false)
}

// MutateUnbound is Mutate without clamping the resulting value to bounds. Used
// for problem-parameter loci, which must be free to wander outside their
// initial range (the grid, not the parameter, is responsible for tracking
// where the search has gone).
func (l Locus) MutateUnbound(rng *rand.Rand, dists MutationDistributions) Locus {
	return l.mutate(rng, dists, true)
}

func (l Locus) mutate(rng *rand.Rand, dists MutationDistributions, unbound bool) Locus {
	newAdjVal := l.Adjustment.AdjustmentValue
	newDirection := l.Adjustment.Direction
	newDoubling := l.Adjustment.DoublingFlag
	newApply := l.ApplyAdjustment

	// m4: flip direction, and couple a doubling-flag flip to it.
	if dists.sample(rng, dists.M4) {
		newDirection = newDirection.Flip()
		newDoubling = !newDoubling
	}

	// m3: flip doubling flag independently.
	if dists.sample(rng, dists.M3) {
		newDoubling = !newDoubling
	}

	// m5: double or halve the adjustment magnitude depending on the (possibly
	// just-flipped) doubling flag.
	if dists.sample(rng, dists.M5) {
		if newDoubling {
			newAdjVal.Set(newAdjVal.Get() * 2.0)
		} else {
			newAdjVal.Set(newAdjVal.Get() / 2.0)
		}
	}

	// Only rebuild the adjustment (and its checksum) if something changed.
	var newAdjustment LocusAdjustment
	if newAdjVal.Get() != l.Adjustment.AdjustmentValue.Get() ||
		newDirection != l.Adjustment.Direction ||
		newDoubling != l.Adjustment.DoublingFlag {
		newAdjustment = NewLocusAdjustment(newAdjVal, newDirection, newDoubling)
	} else {
		newAdjustment = l.Adjustment
	}

	// m1/m2: toggle the apply flag.
	if newApply {
		if dists.sample(rng, dists.M2) {
			newApply = false
		}
	} else if dists.sample(rng, dists.M1) {
		newApply = true
	}

	newValue := l.Value
	if newApply {
		delta := newAdjustment.Direction.Sign() * newAdjustment.AdjustmentValue.Get()
		if unbound {
			newValue.SetUnbound(newValue.Get() + delta)
		} else {
			newValue.Set(newValue.Get() + delta)
		}
	}

	return NewLocus(newValue, newAdjustment, newApply)
}
