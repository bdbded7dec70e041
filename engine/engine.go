package engine

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/cainem/hilldescent-go/genome"
	"github.com/cainem/hilldescent-go/grid"
	"github.com/cainem/hilldescent-go/internal/pool"
	"github.com/cainem/hilldescent-go/objective"
	"github.com/cainem/hilldescent-go/organism"
	"github.com/cainem/hilldescent-go/regionstore"
)

// Engine owns the full state of one optimization run: the spatial grid,
// the region store, the organism pool, and the bookkeeping the reporting
// surface and checkpointing read from. One call to TrainingRun advances it
// by exactly one epoch.
type Engine struct {
	// RunID is an opaque caller-assigned identifier persisted into
	// checkpoints; the engine itself never generates or reads it. Set it
	// before the first SaveCheckpoint if a stable run identity matters
	// (the CLI layer assigns a UUID here).
	RunID     string
	Config    *Config
	Objective objective.Objective

	Dims    *grid.Dimensions
	Regions *regionstore.Regions
	Pool    *organism.Pool

	Epoch uint64

	HasBest        bool
	BestScore      float64
	BestOrganismID uint64
	// BestParams is the problem-parameter vector of the best organism seen
	// so far, copied out at the moment it set a new best score. Reading it
	// here instead of re-deriving it from a Pool.Get(BestOrganismID) lookup
	// means it stays valid even after that organism is later removed from
	// the pool (guaranteed over any run of reasonable length, since every
	// organism ages out eventually).
	BestParams []float64

	lastAdjust   AdjustResult
	evaluator    *phase1Evaluator
	locusPool    *pool.Pool[genome.Locus]
	bestSnapshot *organism.Organism
}

// NewEngine builds an engine from config and seeds its initial population
// of random founders, one phenotype per slot up to PopulationSize, drawn
// from a config.WorldSeed-rooted master RNG in ascending organism-id order.
func NewEngine(config *Config, obj objective.Objective) *Engine {
	if config == nil {
		config = DefaultConfig()
	}
	if len(config.ParamRange) == 0 {
		panic("engine: config.ParamRange must name at least one problem parameter")
	}

	e := &Engine{
		Config:    config,
		Objective: obj,
		Dims:      grid.NewDimensions(config.ParamRange),
		Regions:   regionstore.NewRegions(config.TargetRegions, config.PopulationSize),
		Pool:      organism.NewPool(),
		evaluator: newPhase1Evaluator(config.NumWorkers),
		locusPool: pool.New[genome.Locus](),
	}
	e.initializePopulation()
	return e
}

func (e *Engine) initializePopulation() {
	rng := rand.New(rand.NewSource(int64(e.Config.WorldSeed)))
	bounds := genome.ParameterBounds(toGenomeBounds(e.Config.ParamRange))

	for i := uint32(0); i < e.Config.PopulationSize; i++ {
		p := genome.NewRandomPhenotype(rng, bounds)
		e.Pool.Add(organism.NewFounder(p))
	}
}

func toGenomeBounds(bounds []grid.Bounds) []genome.Bounds {
	out := make([]genome.Bounds, len(bounds))
	for i, b := range bounds {
		out[i] = genome.Bounds{Lo: b.Lo, Hi: b.Hi}
	}
	return out
}

// TrainingRun validates data, runs one full epoch (Phases 1–7), and
// reports whether grid adaptation reached its resolution limit — the
// caller's signal that further epochs are unlikely to refine resolution
// any further. Validation failures panic immediately; engine state is
// left unchanged by a validation failure since it happens before any
// phase runs.
func (e *Engine) TrainingRun(data TrainingData) bool {
	data.validate()
	inputs, knownOutputs := data.row(e.Epoch)

	e.runEpoch(inputs, knownOutputs)
	e.Epoch++

	return e.lastAdjust.Outcome == AtResolutionLimit
}

// runEpoch executes Phases 1 through 7 against a fixed set of training
// inputs and known outputs.
func (e *Engine) runEpoch(inputs, knownOutputs []float64) {
	results := e.runToFixedPoint(inputs, knownOutputs)

	deadIDs, deathsByRegion := e.aggregate(results)

	regionstore.Populate(e.Regions, e.Pool.All())
	regionstore.UpdateMinScores(e.Regions, e.Pool)
	regionstore.AllocateCarryingCapacities(e.Regions)

	selections := e.selectRegions(deathsByRegion)
	// reproduce must run before releaseDoomedLoci: an organism dying this
	// epoch may still be selected as a parent (it stays in its region's
	// OrganismIDs, which Populate built above, until Pool.RemoveAll below
	// deletes it), so releasing its gamete buffers first would let a later
	// reproduce() pair pop and overwrite a still-live parent's loci.
	capacityRemoved := e.reproduce(selections)
	e.releaseDoomedLoci(deadIDs, selections)

	toRemove := make([]uint64, 0, len(deadIDs)+len(capacityRemoved))
	toRemove = append(toRemove, deadIDs...)
	toRemove = append(toRemove, capacityRemoved...)
	e.Pool.RemoveAll(toRemove)

	e.lastAdjust = e.adjustRegions()
}

// runToFixedPoint runs Phase 1 and Phase 2: it keeps broadcasting and
// re-running Phase 1 until every organism reports Ok, expanding bounds by
// the union of exceeded axes between attempts.
func (e *Engine) runToFixedPoint(inputs, knownOutputs []float64) []phase1Result {
	orgs := e.Pool.All()
	version := e.Dims.Version()
	var changedDims []int

	for {
		results := e.evaluator.processPopulation(orgs, e.Dims, version, changedDims, e.Objective, inputs, knownOutputs)

		exceededSet := make(map[int]bool)
		anyExceeded := false
		for _, r := range results {
			if r.OutOfBounds != nil {
				anyExceeded = true
				for _, d := range r.OutOfBounds {
					exceededSet[d] = true
				}
			}
		}
		if !anyExceeded {
			return results
		}

		union := make([]int, 0, len(exceededSet))
		for d := range exceededSet {
			union = append(union, d)
		}
		sort.Ints(union)

		e.Dims.ExpandBoundsMultiple(union)
		version = e.Dims.Version()
		changedDims = union
	}
}

// aggregate applies Phase 1 results to the pool (Phase 3): it writes each
// organism's fresh region key, score, and age, tracks global best, and
// collects age-death ids and per-region death counts for Phase 4.
func (e *Engine) aggregate(results []phase1Result) (deadIDs []uint64, deathsByRegion map[string]int) {
	deathsByRegion = make(map[string]int)

	for _, r := range results {
		o := e.Pool.Get(r.OrganismID)
		if o == nil {
			continue
		}
		o.SetRegionKey(r.RegionKey, e.Dims.Version())
		o.Score = r.Score
		o.HasScore = true
		o.Age = r.NewAge

		if r.ShouldRemove {
			deadIDs = append(deadIDs, o.ID)
			deathsByRegion[r.RegionKey.String()]++
		}

		e.updateBest(o)
	}
	return deadIDs, deathsByRegion
}

func (e *Engine) updateBest(o *organism.Organism) {
	if !o.HasScore {
		return
	}
	if !e.HasBest || o.Score < e.BestScore {
		e.HasBest = true
		e.BestScore = o.Score
		e.BestOrganismID = o.ID
		e.BestParams = append([]float64(nil), o.ProblemParams()...)

		snapshot := *o
		snapshot.Phenotype = o.Phenotype.Clone()
		e.bestSnapshot = &snapshot
	}
}

// GetBestScore returns the lowest score seen so far, or +Inf if the engine
// has not completed a single epoch yet.
func (e *Engine) GetBestScore() float64 {
	if !e.HasBest {
		return math.Inf(1)
	}
	return e.BestScore
}

// GetBestParams returns the problem parameters of the best organism seen so
// far, or nil if no organism has been scored yet. This is the cached copy
// taken at the moment the best score was set, not a fresh pool lookup: the
// best organism is routinely removed from the pool by natural aging long
// before a caller asks for its params.
func (e *Engine) GetBestParams() []float64 {
	if !e.HasBest {
		return nil
	}
	return e.BestParams
}

// GetBestOrganism runs one additional epoch against data/outputs and
// returns the organism holding the best score afterward: the caller is
// asking "what does the frontier look like right now", which requires
// advancing the state it is inspecting. The returned organism is the cached
// snapshot taken when it set the best score, not a live pool lookup, since
// the pool is free to have aged it out by the time a caller asks.
func (e *Engine) GetBestOrganism(data TrainingData) (*organism.Organism, error) {
	e.TrainingRun(data)
	if !e.HasBest {
		return nil, fmt.Errorf("engine: no organism has been scored yet")
	}
	return e.bestSnapshot, nil
}
