package genome

import "math/rand"

// NumSystemParameters is the number of expressed loci reserved for self-tuning
// system behavior ahead of the problem parameters: m1..m5, max_age, crossover_points.
const NumSystemParameters = 7

// System parameter bounds: fixed ranges for the self-tuning loci, shared by
// every organism regardless of problem dimensionality.
var (
	mutationRateBounds = [2]float64{0.0, 1.0}
	maxAgeBounds        = [2]float64{2.0, 10.0}
	crossoverPointBounds = [2]float64{1.0, 10.0}
)

// SystemParameters is the decoded interpretation of the first NumSystemParameters
// expressed values of a Phenotype.
type SystemParameters struct {
	M1, M2, M3, M4, M5 float64
	MaxAge             uint32
	CrossoverPoints     uint32
}

// NewSystemParameters decodes the first NumSystemParameters expressed values.
// Panics if fewer than NumSystemParameters values are supplied.
func NewSystemParameters(expressed []float64) SystemParameters {
	if len(expressed) < NumSystemParameters {
		panic("genome: NewSystemParameters requires at least NumSystemParameters values")
	}
	return SystemParameters{
		M1:              clampTo(expressed[0], mutationRateBounds),
		M2:              clampTo(expressed[1], mutationRateBounds),
		M3:              clampTo(expressed[2], mutationRateBounds),
		M4:              clampTo(expressed[3], mutationRateBounds),
		M5:              clampTo(expressed[4], mutationRateBounds),
		MaxAge:          uint32(clampTo(expressed[5], maxAgeBounds)),
		CrossoverPoints: uint32(clampTo(expressed[6], crossoverPointBounds)),
	}
}

// DefaultSystemParameters returns a conservative all-zero-rate set used when
// constructing placeholder genomes in tests and tooling.
func DefaultSystemParameters() SystemParameters {
	return SystemParameters{MaxAge: 2, CrossoverPoints: 1}
}

func clampTo(v float64, bounds [2]float64) float64 {
	if v < bounds[0] {
		return bounds[0]
	}
	if v > bounds[1] {
		return bounds[1]
	}
	return v
}

// MutationDistributions caches the five Bernoulli trial rates derived from a
// SystemParameters so Locus.Mutate doesn't re-read/re-clamp on every trial.
type MutationDistributions struct {
	M1, M2, M3, M4, M5 float64
}

// MutationDistributions builds the cached Bernoulli rates for this organism's
// system parameters.
func (sp SystemParameters) MutationDistributions() MutationDistributions {
	return MutationDistributions{M1: sp.M1, M2: sp.M2, M3: sp.M3, M4: sp.M4, M5: sp.M5}
}

func (d MutationDistributions) sample(rng *rand.Rand, rate float64) bool {
	return rng.Float64() < rate
}
