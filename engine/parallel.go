package engine

import (
	"runtime"
	"sync"

	"github.com/cainem/hilldescent-go/grid"
	"github.com/cainem/hilldescent-go/objective"
	"github.com/cainem/hilldescent-go/organism"
)

// phase1Task is one organism's unit of Phase 1 work.
type phase1Task struct {
	Org *organism.Organism
}

// phase1Result is what a Phase 1 worker reports back for one organism:
// either a fresh region key, score, and age, or the axes its problem
// parameters fell outside of.
type phase1Result struct {
	OrganismID   uint64
	RegionKey    grid.RegionKey
	Score        float64
	NewAge       uint32
	ShouldRemove bool
	OutOfBounds  []int
}

// phase1Evaluator runs Phase 1 (parallel organism processing) across a
// worker pool sized to the engine's configured concurrency. It is
// stateless across calls — every field it needs is passed to processPopulation.
type phase1Evaluator struct {
	numWorkers int
}

func newPhase1Evaluator(numWorkers int) *phase1Evaluator {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &phase1Evaluator{numWorkers: numWorkers}
}

// processPopulation computes region-key, score, and age for every organism
// in orgs, concurrently, using dims/version/changedDims as the broadcast
// state every worker reads (read-only for the duration of this call, per
// the engine's shared-mutable-state contract).
func (pe *phase1Evaluator) processPopulation(
	orgs []*organism.Organism,
	dims *grid.Dimensions,
	version uint64,
	changedDims []int,
	obj objective.Objective,
	inputs, knownOutputs []float64,
) []phase1Result {
	if len(orgs) == 0 {
		return nil
	}

	tasks := make(chan phase1Task, len(orgs))
	results := make(chan phase1Result, len(orgs))

	var wg sync.WaitGroup
	for i := 0; i < pe.numWorkers; i++ {
		wg.Add(1)
		go pe.worker(tasks, results, &wg, dims, version, changedDims, obj, inputs, knownOutputs)
	}

	for _, o := range orgs {
		tasks <- phase1Task{Org: o}
	}
	close(tasks)

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]phase1Result, 0, len(orgs))
	for r := range results {
		out = append(out, r)
	}
	return out
}

func (pe *phase1Evaluator) worker(
	tasks <-chan phase1Task,
	results chan<- phase1Result,
	wg *sync.WaitGroup,
	dims *grid.Dimensions,
	version uint64,
	changedDims []int,
	obj objective.Objective,
	inputs, knownOutputs []float64,
) {
	defer wg.Done()
	for task := range tasks {
		results <- pe.processOrganism(task.Org, dims, version, changedDims, obj, inputs, knownOutputs)
	}
}

// processOrganism computes one organism's region key (reusing its cache
// when the version matches, recomputing incrementally when only some axes
// changed, and recomputing fully otherwise), its fitness score, and its
// post-increment age. It never mutates the organism: the caller applies
// the result on the engine thread during Phase 3 aggregation.
func (pe *phase1Evaluator) processOrganism(
	o *organism.Organism,
	dims *grid.Dimensions,
	version uint64,
	changedDims []int,
	obj objective.Objective,
	inputs, knownOutputs []float64,
) phase1Result {
	key, err := computeRegionKey(o, dims, version, changedDims)
	if err != nil {
		oob := err.(*grid.OutOfBounds)
		return phase1Result{OrganismID: o.ID, OutOfBounds: oob.DimensionsExceeded}
	}

	score := objective.Score(obj, o.ProblemParams(), inputs, knownOutputs)
	newAge := o.Age + 1
	shouldRemove := newAge > o.Phenotype.SystemParameters.MaxAge

	return phase1Result{
		OrganismID:   o.ID,
		RegionKey:    key,
		Score:        score,
		NewAge:       newAge,
		ShouldRemove: shouldRemove,
	}
}

// computeRegionKey picks between three cache modes: reuse (cache valid,
// nothing changed), incremental recompute (cache valid, only changedDims
// need new interval indices), and full recompute (no usable cache).
func computeRegionKey(o *organism.Organism, dims *grid.Dimensions, version uint64, changedDims []int) (grid.RegionKey, error) {
	if o.RegionKeyValid(version) {
		if len(changedDims) == 0 {
			return o.RegionKey, nil
		}
		values := append([]int(nil), o.RegionKey.Values()...)
		params := o.ProblemParams()
		var exceeded []int
		for _, idx := range changedDims {
			dim := dims.Dimension(idx)
			newIdx, ok := dim.GetInterval(params[idx])
			if !ok {
				exceeded = append(exceeded, idx)
				continue
			}
			values[idx] = newIdx
		}
		if len(exceeded) > 0 {
			return grid.RegionKey{}, &grid.OutOfBounds{DimensionsExceeded: exceeded}
		}
		return grid.NewRegionKey(values), nil
	}
	return grid.CalculateRegionKey(o.ProblemParams(), dims)
}
