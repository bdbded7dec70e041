package organism

import (
	"math/rand"
	"testing"

	"github.com/cainem/hilldescent-go/genome"
	"github.com/cainem/hilldescent-go/grid"
	"github.com/stretchr/testify/assert"
)

func samplePhenotype(t *testing.T) genome.Phenotype {
	t.Helper()
	bounds := genome.ParameterBounds([]genome.Bounds{{Lo: -1, Hi: 1}})
	rng := rand.New(rand.NewSource(1))
	return genome.NewRandomPhenotype(rng, bounds)
}

func TestNewFounderHasNoParentsAndNoRegionKey(t *testing.T) {
	o := NewFounder(samplePhenotype(t))
	assert.False(t, o.HasParents)
	assert.False(t, o.HasRegionKey)
	assert.Equal(t, uint32(0), o.Age)
}

func TestNewChildRecordsLineage(t *testing.T) {
	o := NewChild(samplePhenotype(t), 7, 9)
	assert.True(t, o.HasParents)
	assert.Equal(t, uint64(7), o.ParentID1)
	assert.Equal(t, uint64(9), o.ParentID2)
}

func TestRegionKeyValidOnlyWhenVersionsMatch(t *testing.T) {
	o := NewFounder(samplePhenotype(t))
	assert.False(t, o.RegionKeyValid(0))

	o.SetRegionKey(grid.NewRegionKey([]int{1, 2}), 3)
	assert.True(t, o.RegionKeyValid(3))
	assert.False(t, o.RegionKeyValid(4))
}

func TestNextIDIsMonotonicallyIncreasing(t *testing.T) {
	a := NextID()
	b := NextID()
	assert.Less(t, a, b)
}

func TestPoolAllIteratesInAscendingIDOrder(t *testing.T) {
	pool := NewPool()
	o1 := NewFounder(samplePhenotype(t))
	o2 := NewFounder(samplePhenotype(t))
	o3 := NewFounder(samplePhenotype(t))
	pool.Add(o3)
	pool.Add(o1)
	pool.Add(o2)

	all := pool.All()
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}
}

func TestPoolRemoveAll(t *testing.T) {
	pool := NewPool()
	o1 := NewFounder(samplePhenotype(t))
	o2 := NewFounder(samplePhenotype(t))
	pool.Add(o1)
	pool.Add(o2)
	pool.RemoveAll([]uint64{o1.ID})

	assert.Equal(t, 1, pool.Len())
	assert.Nil(t, pool.Get(o1.ID))
	assert.NotNil(t, pool.Get(o2.ID))
}
