package regionstore

import (
	"testing"

	"github.com/cainem/hilldescent-go/grid"
	"github.com/stretchr/testify/assert"
)

func TestComputeZonesGroupsAdjacentRegions(t *testing.T) {
	r1 := NewRegion(grid.NewRegionKey([]int{1, 1}))
	r2 := NewRegion(grid.NewRegionKey([]int{1, 2}))
	zones := computeZones([]*Region{r1, r2})
	assert.Len(t, zones, 1)
	assert.Len(t, zones[0], 2)
}

func TestComputeZonesSeparatesNonAdjacentRegions(t *testing.T) {
	r1 := NewRegion(grid.NewRegionKey([]int{1, 1}))
	r2 := NewRegion(grid.NewRegionKey([]int{5, 5}))
	zones := computeZones([]*Region{r1, r2})
	assert.Len(t, zones, 2)
}

func TestComputeZonesChainsThroughIntermediateRegion(t *testing.T) {
	r1 := NewRegion(grid.NewRegionKey([]int{1, 1}))
	r2 := NewRegion(grid.NewRegionKey([]int{2, 2}))
	r3 := NewRegion(grid.NewRegionKey([]int{3, 3}))
	zones := computeZones([]*Region{r1, r2, r3})
	assert.Len(t, zones, 1)
	assert.Len(t, zones[0], 3)
}

func TestAdjacentRequiresEveryCoordinateWithinOne(t *testing.T) {
	a := grid.NewRegionKey([]int{1, 1})
	b := grid.NewRegionKey([]int{2, 3})
	assert.False(t, adjacent(a, b))

	c := grid.NewRegionKey([]int{2, 2})
	assert.True(t, adjacent(a, c))
}
