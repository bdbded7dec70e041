package genome

import (
	"math/rand"
	"testing"

	"github.com/cainem/hilldescent-go/internal/pool"
	"github.com/stretchr/testify/assert"
)

func samplePhenotypeForReproduce(seed int64) Phenotype {
	bounds := ParameterBounds([]Bounds{{Lo: -5, Hi: 5}, {Lo: -5, Hi: 5}})
	rng := rand.New(rand.NewSource(seed))
	return NewRandomPhenotype(rng, bounds)
}

func TestReproducePhenotypesProducesTwoChildrenOfSameLength(t *testing.T) {
	p1 := samplePhenotypeForReproduce(1)
	p2 := samplePhenotypeForReproduce(2)
	rng := rand.New(rand.NewSource(3))

	c1, c2 := ReproducePhenotypes(p1, p2, rng)

	assert.Equal(t, p1.Gamete1.Len(), c1.Gamete1.Len())
	assert.Equal(t, p1.Gamete1.Len(), c2.Gamete1.Len())
	assert.Len(t, c1.Expressed, p1.Gamete1.Len())
	assert.Len(t, c2.Expressed, p1.Gamete1.Len())
}

func TestReproducePhenotypesIsDeterministicForFixedSeed(t *testing.T) {
	p1 := samplePhenotypeForReproduce(10)
	p2 := samplePhenotypeForReproduce(20)

	rngA := rand.New(rand.NewSource(99))
	c1a, c2a := ReproducePhenotypes(p1, p2, rngA)

	rngB := rand.New(rand.NewSource(99))
	c1b, c2b := ReproducePhenotypes(p1, p2, rngB)

	assert.Equal(t, c1a.Expressed, c1b.Expressed)
	assert.Equal(t, c2a.Expressed, c2b.Expressed)
}

func TestReproducePhenotypesClampsCrossoversToGameteLength(t *testing.T) {
	// Minimal gamete: exactly NumSystemParameters loci, no problem params.
	bounds := SystemParameterBounds()
	rng := rand.New(rand.NewSource(4))
	p1 := NewRandomPhenotype(rng, bounds)
	p2 := NewRandomPhenotype(rng, bounds)

	assert.NotPanics(t, func() {
		ReproducePhenotypes(p1, p2, rng)
	})
}

func TestReproducePhenotypesWithPoolMatchesUnpooled(t *testing.T) {
	p1 := samplePhenotypeForReproduce(5)
	p2 := samplePhenotypeForReproduce(6)

	rngA := rand.New(rand.NewSource(42))
	c1a, c2a := ReproducePhenotypes(p1, p2, rngA)

	scratch := pool.New[Locus]()
	rngB := rand.New(rand.NewSource(42))
	c1b, c2b := ReproducePhenotypesWithPool(p1, p2, rngB, scratch)

	assert.Equal(t, c1a.Expressed, c1b.Expressed)
	assert.Equal(t, c2a.Expressed, c2b.Expressed)
}

func TestReproducePhenotypesWithPoolReusesReleasedBuffers(t *testing.T) {
	p1 := samplePhenotypeForReproduce(7)
	p2 := samplePhenotypeForReproduce(8)
	rng := rand.New(rand.NewSource(11))

	scratch := pool.New[Locus]()
	n := p1.Gamete1.Len()
	if n >= pool.MinPoolCapacity {
		scratch.Release(make([]Locus, 0, n))
		scratch.Release(make([]Locus, 0, n))
	}

	assert.NotPanics(t, func() {
		ReproducePhenotypesWithPool(p1, p2, rng, scratch)
	})
}
