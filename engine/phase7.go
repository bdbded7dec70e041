package engine

import (
	"github.com/cainem/hilldescent-go/grid"
	"github.com/cainem/hilldescent-go/regionstore"
	"gonum.org/v1/gonum/stat"
)

// AdjustOutcome is the result of one Phase 7 grid-adaptation attempt.
type AdjustOutcome int

const (
	// ExpansionNotNecessary means the region count already meets or
	// exceeds the target; no subdivision was attempted.
	ExpansionNotNecessary AdjustOutcome = iota
	// AtResolutionLimit means subdivision was attempted and could not
	// proceed: the most populous region is too small to need splitting,
	// has no diverse axis left, or every fallback failed. This is a
	// steady-state signal, not an error.
	AtResolutionLimit
	// DimensionExpanded means an axis was successfully subdivided (or its
	// limits adjusted) and region membership was recalculated against it.
	DimensionExpanded
)

// AdjustResult is Phase 7's outcome. Axis is only meaningful when Outcome
// is DimensionExpanded.
type AdjustResult struct {
	Outcome AdjustOutcome
	Axis    int
}

// adjustRegions implements Phase 7: grow grid resolution by one axis when
// the region count is still below target, choosing the most populous
// region's most diverse axis as the subdivision candidate.
func (e *Engine) adjustRegions() AdjustResult {
	if e.Regions.Len() >= int(e.Config.TargetRegions) {
		return AdjustResult{Outcome: ExpansionNotNecessary}
	}

	mostPopulous := mostPopulousRegion(e.Regions.All())
	if mostPopulous == nil || mostPopulous.Len() < 2 {
		return AdjustResult{Outcome: AtResolutionLimit}
	}

	axis, uniqueCount := e.mostDiverseAxis(mostPopulous)
	if uniqueCount <= 1 {
		return AdjustResult{Outcome: AtResolutionLimit}
	}

	if e.Dims.DivideDimension(axis) {
		e.recalculateRegionKeysForDimension(axis)
		return AdjustResult{Outcome: DimensionExpanded, Axis: axis}
	}

	values := e.allProblemValuesForAxis(axis)
	if e.Dims.AdjustLimits(axis, values) {
		e.recalculateRegionKeysForDimension(axis)
		return AdjustResult{Outcome: DimensionExpanded, Axis: axis}
	}

	return AdjustResult{Outcome: AtResolutionLimit}
}

func mostPopulousRegion(regions []*regionstore.Region) *regionstore.Region {
	var best *regionstore.Region
	for _, r := range regions {
		if best == nil || r.Len() > best.Len() {
			best = r
		}
	}
	return best
}

// mostDiverseAxis picks the axis with the most unique problem-parameter
// values among region's organisms, breaking ties by larger standard
// deviation. Returns the winning axis and its unique-value count.
func (e *Engine) mostDiverseAxis(region *regionstore.Region) (axis int, uniqueCount int) {
	numDims := e.Dims.NumDimensions()
	bestAxis, bestUnique, bestStdDev := -1, -1, -1.0

	for d := 0; d < numDims; d++ {
		values := make([]float64, 0, region.Len())
		seen := make(map[float64]bool, region.Len())
		for _, id := range region.OrganismIDs {
			o := e.Pool.Get(id)
			if o == nil {
				continue
			}
			v := o.ProblemParams()[d]
			values = append(values, v)
			seen[v] = true
		}
		unique := len(seen)
		var sd float64
		if len(values) > 1 {
			sd = stat.StdDev(values, nil)
		}
		if unique > bestUnique || (unique == bestUnique && sd > bestStdDev) {
			bestAxis, bestUnique, bestStdDev = d, unique, sd
		}
	}
	return bestAxis, bestUnique
}

func (e *Engine) allProblemValuesForAxis(axis int) []float64 {
	orgs := e.Pool.All()
	values := make([]float64, 0, len(orgs))
	for _, o := range orgs {
		values = append(values, o.ProblemParams()[axis])
	}
	return values
}

// recalculateRegionKeysForDimension walks every organism's cached region
// key, replacing only the index for axis with a freshly computed one
// against the now-subdivided dimension, and re-populates the region store.
// Fitness is not re-evaluated and ages are not incremented: Phase 7 only
// refines where organisms are filed, not what they are.
func (e *Engine) recalculateRegionKeysForDimension(axis int) {
	version := e.Dims.Version()
	dim := e.Dims.Dimension(axis)

	for _, o := range e.Pool.All() {
		if !o.HasRegionKey {
			continue
		}
		values := append([]int(nil), o.RegionKey.Values()...)
		newIdx, ok := dim.GetInterval(o.ProblemParams()[axis])
		if !ok {
			o.HasRegionKey = false
			continue
		}
		values[axis] = newIdx
		o.SetRegionKey(grid.NewRegionKey(values), version)
	}

	regionstore.Populate(e.Regions, e.Pool.All())
}
