package genome

import (
	"math/rand"

	"github.com/cainem/hilldescent-go/internal/pool"
)

// ReproducePhenotypes crosses two parent phenotypes into two child
// phenotypes. Each parent carries two gametes (its diploid pair); the two
// offspring gametes of gamete-slot 1 come from crossing both parents'
// Gamete1, and likewise for Gamete2, so each child ends up with one new
// gamete per slot the same way its parents did.
//
// The crossover point count and mutation rates for the whole event are
// taken from parent1's system parameters: crossover is a property of the
// reproduction event, not of either single gamete, and parent1 is the
// higher-ranked parent by the region's selection order whenever this is
// called from the epoch engine.
func ReproducePhenotypes(parent1, parent2 Phenotype, rng *rand.Rand) (Phenotype, Phenotype) {
	return ReproducePhenotypesWithPool(parent1, parent2, rng, nil)
}

// ReproducePhenotypesWithPool is ReproducePhenotypes, but draws its four
// offspring gamete slices from scratch instead of allocating them fresh.
// A nil scratch behaves exactly like ReproducePhenotypes.
func ReproducePhenotypesWithPool(parent1, parent2 Phenotype, rng *rand.Rand, scratch *pool.Pool[Locus]) (Phenotype, Phenotype) {
	sys := parent1.SystemParameters
	crossovers := int(sys.CrossoverPoints)
	if maxCrossovers := (parent1.Gamete1.Len() - 1) / 2; crossovers > maxCrossovers {
		crossovers = maxCrossovers
	}
	if crossovers < 1 {
		crossovers = 1
	}

	g1a, g1b := ReproduceWithPool(parent1.Gamete1, parent2.Gamete1, crossovers, rng, sys, scratch)
	g2a, g2b := ReproduceWithPool(parent1.Gamete2, parent2.Gamete2, crossovers, rng, sys, scratch)

	child1 := NewPhenotype(g1a, g2a, rng)
	child2 := NewPhenotype(g1b, g2b, rng)
	return child1, child2
}
