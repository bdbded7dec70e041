package regionstore

import (
	"math"
	"sort"

	"github.com/cainem/hilldescent-go/organism"
)

// ParentPair names two organism ids selected to reproduce together.
type ParentPair struct {
	Parent1, Parent2 uint64
}

// SelectionResult is the outcome of running Select against one region:
// the parent pairs it should reproduce and the organism ids it should
// remove (capacity truncation plus any age deaths folded in by the caller).
type SelectionResult struct {
	Pairs    []ParentPair
	ToRemove []uint64
}

// Select runs the region-local reproduction selection described for a
// single region: rank its organisms by (score ascending, age descending),
// truncate to carrying capacity, compute how many offspring are needed to
// refill the region once age deaths are accounted for, and pair the top
// survivors by extreme pairing — rank i with rank len-1-i — so each pair
// couples a fit parent with the most different one still in the running.
//
// deathsInRegion is the number of organisms in this region that aged out
// this epoch (already removed from region.OrganismIDs by the caller before
// Select runs, or about to be — either way it is counted here, not
// re-derived, since the engine already knows the count from Phase 1/3).
func Select(region *Region, pool *organism.Pool, deathsInRegion int) SelectionResult {
	ids := append([]uint64(nil), region.OrganismIDs...)
	sort.SliceStable(ids, func(i, j int) bool {
		oi, oj := pool.Get(ids[i]), pool.Get(ids[j])
		si, sj := organismScore(oi), organismScore(oj)
		if si != sj {
			return si < sj
		}
		return oi.Age > oj.Age
	})

	capacity := int(region.CarryingCapacity)
	n := len(ids)

	var toRemove []uint64
	if n > capacity {
		toRemove = append(toRemove, ids[capacity:]...)
		ids = ids[:capacity]
		n = capacity
	}

	survivorCount := n
	ageDeathsInSurvivors := deathsInRegion
	if ageDeathsInSurvivors > survivorCount {
		ageDeathsInSurvivors = survivorCount
	}
	postDeath := survivorCount - ageDeathsInSurvivors
	offspringNeeded := capacity - postDeath
	if offspringNeeded < 0 {
		offspringNeeded = 0
	}

	selectionSize := int(2 * math.Ceil(float64(offspringNeeded)/2))
	if selectionSize > survivorCount {
		selectionSize = survivorCount
	}

	parents := append([]uint64(nil), ids[:selectionSize]...)
	if len(parents)%2 == 1 {
		parents = append([]uint64{parents[0]}, parents...)
	}

	var pairs []ParentPair
	for i := 0; i < len(parents)/2; i++ {
		pairs = append(pairs, ParentPair{Parent1: parents[i], Parent2: parents[len(parents)-1-i]})
	}

	return SelectionResult{Pairs: pairs, ToRemove: toRemove}
}

func organismScore(o *organism.Organism) float64 {
	if o == nil || !o.HasScore {
		return math.Inf(1)
	}
	return o.Score
}
