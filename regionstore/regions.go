package regionstore

import (
	"fmt"

	"github.com/cainem/hilldescent-go/grid"
	"github.com/cainem/hilldescent-go/organism"
)

// Regions is an insertion-ordered RegionKey -> Region mapping, plus the two
// constants the caller provides for the life of a run: the resolution
// target for grid adaptation and the total population the carrying
// capacities must sum to at most.
type Regions struct {
	order []string
	byKey map[string]*Region

	TargetRegions  uint32
	PopulationSize uint32
}

// NewRegions builds an empty region store. Both arguments are caller
// contracts, not tunable knobs the engine ever defaults silently — zero in
// either is a programmer error.
func NewRegions(targetRegions, populationSize uint32) *Regions {
	if targetRegions == 0 {
		panic("regionstore: target_regions must be greater than zero")
	}
	if populationSize == 0 {
		panic("regionstore: population_size must be greater than zero")
	}
	return &Regions{
		byKey:          make(map[string]*Region),
		TargetRegions:  targetRegions,
		PopulationSize: populationSize,
	}
}

// Get returns the region stored under key, if any.
func (rs *Regions) Get(key grid.RegionKey) (*Region, bool) {
	r, ok := rs.byKey[key.String()]
	return r, ok
}

// GetOrCreate returns the region under key, creating and recording it in
// insertion order if it doesn't exist yet.
func (rs *Regions) GetOrCreate(key grid.RegionKey) *Region {
	s := key.String()
	if r, ok := rs.byKey[s]; ok {
		return r
	}
	r := NewRegion(key)
	rs.byKey[s] = r
	rs.order = append(rs.order, s)
	return r
}

// Len returns the number of regions currently held.
func (rs *Regions) Len() int {
	return len(rs.order)
}

// All returns every region in insertion order.
func (rs *Regions) All() []*Region {
	out := make([]*Region, 0, len(rs.order))
	for _, s := range rs.order {
		out = append(out, rs.byKey[s])
	}
	return out
}

// Reset discards every region. Populate rebuilds the map from scratch
// each epoch rather than patch it incrementally, since which organisms
// belong to which region changes completely between epochs.
func (rs *Regions) Reset() {
	rs.order = nil
	rs.byKey = make(map[string]*Region)
}

// Prune removes every region left with no organisms.
func (rs *Regions) Prune() {
	kept := rs.order[:0]
	for _, s := range rs.order {
		if rs.byKey[s].Len() > 0 {
			kept = append(kept, s)
		} else {
			delete(rs.byKey, s)
		}
	}
	rs.order = kept
}

// Populate clears the store and re-inserts every live, in-bounds organism
// into the region named by its cached region key. Dead organisms and
// organisms with no valid region key (should not occur once Phase 1/2 of
// the epoch have run to completion) are skipped.
func Populate(rs *Regions, orgs []*organism.Organism) {
	rs.Reset()
	for _, o := range orgs {
		if o.IsDead || !o.HasRegionKey {
			continue
		}
		r := rs.GetOrCreate(o.RegionKey)
		r.Add(o.ID)
	}
	rs.Prune()
}

// UpdateMinScores recomputes every region's MinScore: the lowest strictly
// positive score among its current organisms, or none if it has no
// organism with a positive score.
func UpdateMinScores(rs *Regions, pool *organism.Pool) {
	for _, r := range rs.All() {
		r.HasMinScore = false
		r.MinScore = 0
		for _, id := range r.OrganismIDs {
			o := pool.Get(id)
			if o == nil || !o.HasScore || o.Score <= 0 {
				continue
			}
			if !r.HasMinScore || o.Score < r.MinScore {
				r.MinScore = o.Score
				r.HasMinScore = true
			}
		}
	}
}

// MustGet returns the region under key, panicking if absent. Used where a
// region is known to exist from a prior lookup in the same pass and its
// disappearance would indicate a bug in the caller's bookkeeping.
func (rs *Regions) MustGet(key grid.RegionKey) *Region {
	r, ok := rs.Get(key)
	if !ok {
		panic(fmt.Sprintf("regionstore: region %s missing from store", key.String()))
	}
	return r
}
