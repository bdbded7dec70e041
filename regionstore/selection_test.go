package regionstore

import (
	"math/rand"
	"testing"

	"github.com/cainem/hilldescent-go/genome"
	"github.com/cainem/hilldescent-go/grid"
	"github.com/cainem/hilldescent-go/organism"
	"github.com/stretchr/testify/assert"
)

func makeScoredOrganism(pool *organism.Pool, score float64, age uint32) *organism.Organism {
	rng := rand.New(rand.NewSource(1))
	bounds := genome.ParameterBounds([]genome.Bounds{{Lo: -1, Hi: 1}})
	p := genome.NewRandomPhenotype(rng, bounds)
	o := organism.NewFounder(p)
	o.Score, o.HasScore = score, true
	o.Age = age
	pool.Add(o)
	return o
}

func TestSelectTruncatesToCarryingCapacity(t *testing.T) {
	pool := organism.NewPool()
	region := NewRegion(grid.NewRegionKey([]int{0}))
	region.CarryingCapacity = 2

	o1 := makeScoredOrganism(pool, 1.0, 0)
	o2 := makeScoredOrganism(pool, 2.0, 0)
	o3 := makeScoredOrganism(pool, 3.0, 0)
	region.OrganismIDs = []uint64{o1.ID, o2.ID, o3.ID}

	result := Select(region, pool, 0)
	assert.ElementsMatch(t, []uint64{o3.ID}, result.ToRemove)
}

func TestSelectSortsByScoreAscendingThenAgeDescending(t *testing.T) {
	pool := organism.NewPool()
	region := NewRegion(grid.NewRegionKey([]int{0}))
	region.CarryingCapacity = 4

	older := makeScoredOrganism(pool, 1.0, 10)
	younger := makeScoredOrganism(pool, 1.0, 2)
	region.OrganismIDs = []uint64{younger.ID, older.ID}

	result := Select(region, pool, 0)
	// Both survive (capacity 4 > 2), extreme pairing with 2 parents pairs rank0-rank1.
	assert.Len(t, result.Pairs, 1)
	assert.Equal(t, older.ID, result.Pairs[0].Parent1)
}

func TestSelectProducesNoPairsWhenNoOffspringNeeded(t *testing.T) {
	pool := organism.NewPool()
	region := NewRegion(grid.NewRegionKey([]int{0}))
	region.CarryingCapacity = 2

	o1 := makeScoredOrganism(pool, 1.0, 0)
	o2 := makeScoredOrganism(pool, 2.0, 0)
	region.OrganismIDs = []uint64{o1.ID, o2.ID}

	result := Select(region, pool, 0)
	assert.Empty(t, result.Pairs)
	assert.Empty(t, result.ToRemove)
}

func TestSelectOddSelectionSizeDuplicatesTopRank(t *testing.T) {
	pool := organism.NewPool()
	region := NewRegion(grid.NewRegionKey([]int{0}))
	region.CarryingCapacity = 1

	o1 := makeScoredOrganism(pool, 1.0, 0)
	region.OrganismIDs = []uint64{o1.ID}

	result := Select(region, pool, 1) // one age death, capacity 1, needs 1 offspring
	assert.Len(t, result.Pairs, 1)
	assert.Equal(t, o1.ID, result.Pairs[0].Parent1)
	assert.Equal(t, o1.ID, result.Pairs[0].Parent2)
}

func TestSelectExtremePairingCouplesTopWithBottom(t *testing.T) {
	pool := organism.NewPool()
	region := NewRegion(grid.NewRegionKey([]int{0}))
	region.CarryingCapacity = 8

	var ids []uint64
	for i := 0; i < 4; i++ {
		o := makeScoredOrganism(pool, float64(i+1), 0)
		ids = append(ids, o.ID)
	}
	region.OrganismIDs = ids

	result := Select(region, pool, 0)
	assert.Len(t, result.Pairs, 2)
	assert.Equal(t, ids[0], result.Pairs[0].Parent1)
	assert.Equal(t, ids[3], result.Pairs[0].Parent2)
	assert.Equal(t, ids[1], result.Pairs[1].Parent1)
	assert.Equal(t, ids[2], result.Pairs[1].Parent2)
}

func TestSelectHandlesEmptyRegion(t *testing.T) {
	pool := organism.NewPool()
	region := NewRegion(grid.NewRegionKey([]int{0}))
	region.CarryingCapacity = 5

	result := Select(region, pool, 0)
	assert.Empty(t, result.Pairs)
	assert.Empty(t, result.ToRemove)
}
