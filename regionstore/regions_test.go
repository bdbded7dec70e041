package regionstore

import (
	"math/rand"
	"testing"

	"github.com/cainem/hilldescent-go/genome"
	"github.com/cainem/hilldescent-go/grid"
	"github.com/cainem/hilldescent-go/organism"
	"github.com/stretchr/testify/assert"
)

func TestNewRegionsPanicsOnZeroTargetRegions(t *testing.T) {
	assert.Panics(t, func() { NewRegions(0, 10) })
}

func TestNewRegionsPanicsOnZeroPopulationSize(t *testing.T) {
	assert.Panics(t, func() { NewRegions(10, 0) })
}

func TestGetOrCreateIsIdempotentAndOrdered(t *testing.T) {
	rs := NewRegions(10, 100)
	k1 := grid.NewRegionKey([]int{1, 1})
	k2 := grid.NewRegionKey([]int{2, 2})

	rs.GetOrCreate(k2)
	rs.GetOrCreate(k1)
	same := rs.GetOrCreate(k2)

	assert.Equal(t, 2, rs.Len())
	all := rs.All()
	assert.True(t, all[0].Key.Equal(k2))
	assert.True(t, all[1].Key.Equal(k1))
	assert.Same(t, all[0], same)
}

func newOrganismAt(phenotypeBounds []genome.Bounds, key grid.RegionKey, version uint64, dead bool) *organism.Organism {
	rng := rand.New(rand.NewSource(1))
	p := genome.NewRandomPhenotype(rng, genome.ParameterBounds(phenotypeBounds))
	o := organism.NewFounder(p)
	o.SetRegionKey(key, version)
	o.IsDead = dead
	return o
}

func TestPopulatePrunesEmptyRegionsAndSkipsDead(t *testing.T) {
	rs := NewRegions(10, 100)
	bounds := []genome.Bounds{{Lo: -1, Hi: 1}}
	key := grid.NewRegionKey([]int{0})

	alive := newOrganismAt(bounds, key, 1, false)
	dead := newOrganismAt(bounds, key, 1, true)

	Populate(rs, []*organism.Organism{alive, dead})

	assert.Equal(t, 1, rs.Len())
	r, ok := rs.Get(key)
	assert.True(t, ok)
	assert.Equal(t, []uint64{alive.ID}, r.OrganismIDs)
}

func TestUpdateMinScoresIgnoresNonPositiveAndMissingScores(t *testing.T) {
	rs := NewRegions(10, 100)
	pool := organism.NewPool()
	bounds := []genome.Bounds{{Lo: -1, Hi: 1}}
	key := grid.NewRegionKey([]int{0})

	o1 := newOrganismAt(bounds, key, 1, false)
	o1.Score, o1.HasScore = 5.0, true
	o2 := newOrganismAt(bounds, key, 1, false)
	o2.Score, o2.HasScore = 0.0, true // not strictly positive, ignored
	o3 := newOrganismAt(bounds, key, 1, false)
	o3.Score, o3.HasScore = 2.0, true

	pool.Add(o1)
	pool.Add(o2)
	pool.Add(o3)
	Populate(rs, []*organism.Organism{o1, o2, o3})

	UpdateMinScores(rs, pool)

	r, _ := rs.Get(key)
	assert.True(t, r.HasMinScore)
	assert.Equal(t, 2.0, r.MinScore)
}
