package genome

import (
	"encoding/binary"
	"math"
	"math/rand"

	"github.com/cespare/xxhash/v2"
)

// Phenotype is a pair of gametes plus the diploid expression computed from
// them: the vector of expressed values, the decoded system parameters, and a
// stable hash of the problem-parameter portion of the expressed vector.
type Phenotype struct {
	Gamete1, Gamete2 Gamete
	Expressed        []float64
	SystemParameters SystemParameters
	ExpressedHash    uint64
}

// NewPhenotype expresses a phenotype from two gametes using the diploid
// dominance rule in ComputeExpressed, then decodes system parameters and
// hashes the problem-parameter slice.
//
// Panics if the gametes differ in length or have fewer than
// NumSystemParameters loci.
func NewPhenotype(g1, g2 Gamete, rng *rand.Rand) Phenotype {
	if g1.Len() != g2.Len() {
		panic("genome: gametes must have same number of loci")
	}
	if g1.Len() < NumSystemParameters {
		panic("genome: gametes must carry at least NumSystemParameters loci")
	}
	expressed := ComputeExpressed(g1, g2, rng)
	sys := NewSystemParameters(expressed)
	return Phenotype{
		Gamete1:          g1,
		Gamete2:          g2,
		Expressed:        expressed,
		SystemParameters: sys,
		ExpressedHash:    hashProblemParams(expressed),
	}
}

// ProblemParams returns the problem-parameter slice of the expressed vector
// (everything past the system parameters) — the candidate arguments to the
// objective function.
func (p Phenotype) ProblemParams() []float64 {
	return p.Expressed[NumSystemParameters:]
}

// Clone deep-copies both gametes' loci and the expressed vector, so the
// result shares no backing array with p — safe to retain past the point p's
// organism is removed and its gamete buffers recycled by a locus pool.
func (p Phenotype) Clone() Phenotype {
	return Phenotype{
		Gamete1:          p.Gamete1.Clone(),
		Gamete2:          p.Gamete2.Clone(),
		Expressed:        append([]float64(nil), p.Expressed...),
		SystemParameters: p.SystemParameters,
		ExpressedHash:    p.ExpressedHash,
	}
}

// ComputeExpressed implements the per-locus diploid dominance rule: equal
// adjustment checksums flip a fair coin between alleles; unequal checksums
// favor the smaller-checksum allele with probability proportional to the
// midpoint between the two checksums (normalized to [0,1]).
func ComputeExpressed(g1, g2 Gamete, rng *rand.Rand) []float64 {
	if g1.Len() != g2.Len() {
		panic("genome: gametes must have same number of loci")
	}
	const maxU64 = float64(math.MaxUint64)
	result := make([]float64, g1.Len())
	for i := range result {
		l1, l2 := g1.Loci[i], g2.Loci[i]
		c1, c2 := l1.Adjustment.Checksum(), l2.Adjustment.Checksum()
		if c1 == c2 {
			if rng.Float64() < 0.5 {
				result[i] = l1.Value.Get()
			} else {
				result[i] = l2.Value.Get()
			}
			continue
		}
		a, b, ca, cb := l1, l2, c1, c2
		if c1 > c2 {
			a, b, ca, cb = l2, l1, c2, c1
		}
		midpoint := (float64(ca) + float64(cb)) / (2.0 * maxU64)
		if rng.Float64() <= midpoint {
			result[i] = a.Value.Get()
		} else {
			result[i] = b.Value.Get()
		}
	}
	return result
}

func hashProblemParams(expressed []float64) uint64 {
	problem := expressed[NumSystemParameters:]
	buf := make([]byte, 8*len(problem))
	for i, v := range problem {
		binary.LittleEndian.PutUint64(buf[i*8:i*8+8], math.Float64bits(v))
	}
	return xxhash.Sum64(buf)
}
