// Package engine implements the epoch loop that drives the spatial grid,
// the region store, and the organism pool through one full optimization
// step at a time: parallel evaluation, out-of-bounds recovery, region
// bookkeeping, selection, reproduction, removal, and grid adaptation.
package engine

import "github.com/cainem/hilldescent-go/grid"

// Config holds the knobs a caller supplies when constructing an Engine.
// Everything else (system-parameter ranges, fund-split fractions, zone
// adjacency rule) is a fixed internal the engine owns.
type Config struct {
	// PopulationSize is the total organism cap: the sum of every region's
	// carrying capacity never exceeds this.
	PopulationSize uint32
	// TargetRegions is the non-empty-region count grid adaptation stops
	// expanding resolution at.
	TargetRegions uint32
	// WorldSeed roots every deterministic RNG derivation the engine makes
	// (initial population, per-region reproduction). Zero is a legal seed,
	// not a sentinel for "pick one at random" — callers wanting a fresh
	// seed every run should derive one themselves before constructing Config.
	WorldSeed uint64
	// ParamRange is the ordered list of [lo, hi] bounds for each problem
	// parameter. Its length fixes the dimensionality of the search space.
	ParamRange []grid.Bounds
	// NumWorkers bounds the Phase 1 worker pool. Zero means auto-detect
	// (runtime.NumCPU()).
	NumWorkers int
	// Verbose enables progress logging via the standard logger.
	Verbose bool
}

// DefaultConfig returns a small, single-problem-parameter configuration
// suitable for smoke tests. Callers building a real run always supply
// their own ParamRange at minimum.
func DefaultConfig() *Config {
	return &Config{
		PopulationSize: 100,
		TargetRegions:  10,
		WorldSeed:      1,
		ParamRange:     []grid.Bounds{{Lo: -10, Hi: 10}},
		NumWorkers:     0,
		Verbose:        false,
	}
}
