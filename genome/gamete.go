package genome

import (
	"fmt"
	"math/rand"

	"github.com/cainem/hilldescent-go/internal/pool"
)

// Gamete is an ordered sequence of loci, one per genetic dimension
// (NumSystemParameters + the problem dimensionality).
type Gamete struct {
	Loci []Locus
}

// NewGamete wraps loci as a Gamete.
func NewGamete(loci []Locus) Gamete { return Gamete{Loci: loci} }

// Len returns the number of loci.
func (g Gamete) Len() int { return len(g.Loci) }

// Clone deep-copies the gamete's loci slice.
func (g Gamete) Clone() Gamete {
	cp := make([]Locus, len(g.Loci))
	copy(cp, g.Loci)
	return Gamete{Loci: cp}
}

// Reproduce performs multi-point crossover between two parent gametes,
// producing two mutated offspring gametes. System-parameter loci
// (index < NumSystemParameters) are mutated with bounded Mutate; problem
// loci use MutateUnbound.
//
// Panics if the parents differ in length, or if len <= 2*crossovers (the
// source's own precondition: there must be room for `crossovers` distinct
// interior cut points).
func Reproduce(parent1, parent2 Gamete, crossovers int, rng *rand.Rand, sys SystemParameters) (Gamete, Gamete) {
	return ReproduceWithPool(parent1, parent2, crossovers, rng, sys, nil)
}

// ReproduceWithPool is Reproduce, but draws its two offspring loci slices
// from scratch (a shared free list) instead of allocating fresh ones. A
// nil scratch behaves exactly like Reproduce. Callers that recycle a
// removed organism's gamete buffers back into scratch get them back here
// instead of paying for a fresh allocation per offspring.
func ReproduceWithPool(parent1, parent2 Gamete, crossovers int, rng *rand.Rand, sys SystemParameters, scratch *pool.Pool[Locus]) (Gamete, Gamete) {
	n := len(parent1.Loci)
	if n != len(parent2.Loci) {
		panic("genome: gametes must have same number of loci")
	}
	if n <= 2*crossovers {
		panic(fmt.Sprintf("genome: number of crossovers (%d) must satisfy len (%d) > 2*crossovers", crossovers, n))
	}

	points := rng.Perm(n - 1) // values in [0, n-2]; shift below to [1, n-1]
	for i := range points {
		points[i]++
	}
	points = points[:crossovers]
	sortInts(points)

	dists := sys.MutationDistributions()
	offspring1 := scratch.Take(n)
	offspring2 := scratch.Take(n)
	useP1 := true
	pi := 0

	for i := 0; i < n; i++ {
		if pi < len(points) && points[pi] == i {
			useP1 = !useP1
			pi++
		}
		var l1, l2 Locus
		if useP1 {
			l1, l2 = parent1.Loci[i], parent2.Loci[i]
		} else {
			l1, l2 = parent2.Loci[i], parent1.Loci[i]
		}
		if i < NumSystemParameters {
			offspring1 = append(offspring1, l1.Mutate(rng, dists))
			offspring2 = append(offspring2, l2.Mutate(rng, dists))
		} else {
			offspring1 = append(offspring1, l1.MutateUnbound(rng, dists))
			offspring2 = append(offspring2, l2.MutateUnbound(rng, dists))
		}
	}

	return NewGamete(offspring1), NewGamete(offspring2)
}

func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
