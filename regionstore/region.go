// Package regionstore partitions the live population into regions keyed by
// grid.RegionKey, allocates each region's carrying capacity from a hybrid
// global-performance / zone-proportional fund, and runs the region-local
// selection that decides which organisms survive and which pairs reproduce.
package regionstore

import "github.com/cainem/hilldescent-go/grid"

// Region is one cell of the spatial grid: the organisms currently mapped to
// it, the lowest strictly positive score among them, the carrying capacity
// derived for it this epoch, and the zone it was assigned to during the
// most recent capacity allocation.
type Region struct {
	Key         grid.RegionKey
	OrganismIDs []uint64

	MinScore    float64
	HasMinScore bool

	CarryingCapacity uint32

	ZoneID    int
	HasZoneID bool
}

// NewRegion builds an empty region for key.
func NewRegion(key grid.RegionKey) *Region {
	return &Region{Key: key}
}

// Add records id as belonging to this region.
func (r *Region) Add(id uint64) {
	r.OrganismIDs = append(r.OrganismIDs, id)
}

// Len returns the number of organisms currently in the region.
func (r *Region) Len() int {
	return len(r.OrganismIDs)
}
