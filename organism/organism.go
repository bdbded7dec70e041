// Package organism holds the per-individual state the epoch engine schedules:
// a phenotype, its cached region key, age and score, lineage, and an
// alive/dead flag that region population skips organisms on. The engine
// removes organisms from the pool by id and does not set the flag itself.
package organism

import (
	"sync/atomic"

	"github.com/cainem/hilldescent-go/genome"
	"github.com/cainem/hilldescent-go/grid"
)

var nextID uint64

// NextID returns a fresh, process-wide monotonically increasing organism id.
// Ids are never reused, even across removal, so lineage references
// (ParentID1/ParentID2) always resolve unambiguously within a run.
func NextID() uint64 {
	return atomic.AddUint64(&nextID, 1)
}

// SeedNextID advances the process-wide id counter so the next NextID() call
// returns floor+1 or later. Used only when resuming from a checkpoint, so
// restored organisms' ids and any freshly created ones never collide.
// A no-op if the counter is already past floor.
func SeedNextID(floor uint64) {
	for {
		cur := atomic.LoadUint64(&nextID)
		if cur >= floor {
			return
		}
		if atomic.CompareAndSwapUint64(&nextID, cur, floor) {
			return
		}
	}
}

// Organism is one individual in the population: its genetic material plus
// the bookkeeping the epoch engine needs to schedule it.
type Organism struct {
	ID      uint64
	Phenotype genome.Phenotype

	Age    uint32
	Score  float64
	HasScore bool

	RegionKey        grid.RegionKey
	HasRegionKey     bool
	CachedDimVersion uint64

	IsDead bool

	ParentID1, ParentID2 uint64
	HasParents           bool
}

// NewFounder builds a parentless organism (the initial population) from a
// random phenotype, age 0, with no cached region key.
func NewFounder(phenotype genome.Phenotype) *Organism {
	return &Organism{
		ID:        NextID(),
		Phenotype: phenotype,
	}
}

// NewChild builds an organism descended from the two parents named by id,
// carrying phenotype. Age starts at 0 and the organism has no score and no
// cached region key until the engine's next Phase 1 processes it.
func NewChild(phenotype genome.Phenotype, parent1, parent2 uint64) *Organism {
	return &Organism{
		ID:         NextID(),
		Phenotype:  phenotype,
		ParentID1:  parent1,
		ParentID2:  parent2,
		HasParents: true,
	}
}

// RegionKeyValid reports whether the organism's cached region key can be
// reused without recomputation: the dimension version it was computed
// against must match currentVersion exactly.
func (o *Organism) RegionKeyValid(currentVersion uint64) bool {
	return o.HasRegionKey && o.CachedDimVersion == currentVersion
}

// SetRegionKey stores a freshly computed region key and the dimension
// version it was computed against.
func (o *Organism) SetRegionKey(key grid.RegionKey, version uint64) {
	o.RegionKey = key
	o.HasRegionKey = true
	o.CachedDimVersion = version
}

// ProblemParams returns the problem-parameter slice of the organism's
// expressed phenotype — the arguments passed to the objective function.
func (o *Organism) ProblemParams() []float64 {
	return o.Phenotype.ProblemParams()
}
