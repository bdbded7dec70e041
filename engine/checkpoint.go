package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cainem/hilldescent-go/genome"
	"github.com/cainem/hilldescent-go/grid"
	"github.com/cainem/hilldescent-go/internal/pool"
	"github.com/cainem/hilldescent-go/objective"
	"github.com/cainem/hilldescent-go/organism"
	"github.com/cainem/hilldescent-go/regionstore"
)

// CheckpointVersion is the current checkpoint format version.
const CheckpointVersion = "1.0"

type dimensionSnapshot struct {
	Lo        float64 `json:"lo"`
	Hi        float64 `json:"hi"`
	Doublings uint32  `json:"doublings"`
}

type organismSnapshot struct {
	ID               uint64          `json:"id"`
	Phenotype        genome.Phenotype `json:"phenotype"`
	Age              uint32          `json:"age"`
	Score            float64         `json:"score"`
	HasScore         bool            `json:"has_score"`
	RegionKeyValues  []int           `json:"region_key_values,omitempty"`
	HasRegionKey     bool            `json:"has_region_key"`
	CachedDimVersion uint64          `json:"cached_dim_version"`
	IsDead           bool            `json:"is_dead"`
	ParentID1        uint64          `json:"parent_id_1,omitempty"`
	ParentID2        uint64          `json:"parent_id_2,omitempty"`
	HasParents       bool            `json:"has_parents"`
}

// CheckpointData is the full serializable state of an engine run: enough to
// resume an interrupted run bit-for-bit at the organism level (every locus,
// every adjustment) rather than just its aggregate statistics.
type CheckpointData struct {
	RunID             string              `json:"run_id"`
	Config            *Config             `json:"config"`
	Epoch             uint64              `json:"epoch"`
	DimensionsVersion uint64              `json:"dimensions_version"`
	Dimensions        []dimensionSnapshot `json:"dimensions"`
	Organisms         []organismSnapshot  `json:"organisms"`
	NextOrganismID    uint64              `json:"next_organism_id"`
	HasBest           bool                `json:"has_best"`
	BestScore         float64             `json:"best_score"`
	BestOrganismID    uint64              `json:"best_organism_id"`
	BestParams        []float64           `json:"best_params,omitempty"`
	Timestamp         time.Time           `json:"timestamp"`
	Version           string              `json:"version"`
}

// SaveCheckpoint writes the engine's full state to path, via a temp-file-
// then-rename so a crash mid-write never leaves a truncated checkpoint
// behind.
func (e *Engine) SaveCheckpoint(path string) error {
	orgs := e.Pool.All()
	orgSnaps := make([]organismSnapshot, len(orgs))
	var maxID uint64
	for i, o := range orgs {
		snap := organismSnapshot{
			ID:               o.ID,
			Phenotype:        o.Phenotype,
			Age:              o.Age,
			Score:            o.Score,
			HasScore:         o.HasScore,
			HasRegionKey:     o.HasRegionKey,
			CachedDimVersion: o.CachedDimVersion,
			IsDead:           o.IsDead,
			ParentID1:        o.ParentID1,
			ParentID2:        o.ParentID2,
			HasParents:       o.HasParents,
		}
		if o.HasRegionKey {
			snap.RegionKeyValues = append([]int(nil), o.RegionKey.Values()...)
		}
		orgSnaps[i] = snap
		if o.ID > maxID {
			maxID = o.ID
		}
	}

	dims := e.Dims.All()
	dimSnaps := make([]dimensionSnapshot, len(dims))
	for i, d := range dims {
		lo, hi := d.Bounds()
		dimSnaps[i] = dimensionSnapshot{Lo: lo, Hi: hi, Doublings: d.Doublings()}
	}

	checkpoint := CheckpointData{
		RunID:             e.RunID,
		Config:            e.Config,
		Epoch:             e.Epoch,
		DimensionsVersion: e.Dims.Version(),
		Dimensions:        dimSnaps,
		Organisms:         orgSnaps,
		NextOrganismID:    maxID + 1,
		HasBest:           e.HasBest,
		BestScore:         e.BestScore,
		BestOrganismID:    e.BestOrganismID,
		BestParams:        e.BestParams,
		Timestamp:         time.Now(),
		Version:           CheckpointVersion,
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("engine: failed to create checkpoint directory: %w", err)
	}

	data, err := json.MarshalIndent(checkpoint, "", "  ")
	if err != nil {
		return fmt.Errorf("engine: failed to marshal checkpoint: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("engine: failed to write checkpoint: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("engine: failed to finalize checkpoint: %w", err)
	}
	return nil
}

// LoadCheckpoint reads and unmarshals a checkpoint file without building an
// Engine from it. Exposed separately from ResumeFromCheckpoint so callers
// can inspect a checkpoint's metadata before committing to a full restore.
func LoadCheckpoint(path string) (*CheckpointData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("engine: failed to read checkpoint: %w", err)
	}
	var checkpoint CheckpointData
	if err := json.Unmarshal(data, &checkpoint); err != nil {
		return nil, fmt.Errorf("engine: failed to unmarshal checkpoint: %w", err)
	}
	return &checkpoint, nil
}

// ResumeFromCheckpoint loads path and rebuilds a fully live Engine from it:
// every dimension, every organism's exact phenotype, and the global best
// seen so far, ready to take its next TrainingRun call as if the process
// had never stopped.
func ResumeFromCheckpoint(path string, obj objective.Objective) (*Engine, error) {
	checkpoint, err := LoadCheckpoint(path)
	if err != nil {
		return nil, err
	}

	dims := make([]grid.Dimension, len(checkpoint.Dimensions))
	for i, d := range checkpoint.Dimensions {
		dims[i] = grid.NewDimension(d.Lo, d.Hi, d.Doublings)
	}

	e := &Engine{
		RunID:          checkpoint.RunID,
		Config:         checkpoint.Config,
		Objective:      obj,
		Dims:           grid.RestoreDimensions(dims, checkpoint.DimensionsVersion),
		Regions:        regionstore.NewRegions(checkpoint.Config.TargetRegions, checkpoint.Config.PopulationSize),
		Pool:           organism.NewPool(),
		evaluator:      newPhase1Evaluator(checkpoint.Config.NumWorkers),
		locusPool:      pool.New[genome.Locus](),
		Epoch:          checkpoint.Epoch,
		HasBest:        checkpoint.HasBest,
		BestScore:      checkpoint.BestScore,
		BestOrganismID: checkpoint.BestOrganismID,
		BestParams:     checkpoint.BestParams,
	}

	for _, snap := range checkpoint.Organisms {
		o := &organism.Organism{
			ID:               snap.ID,
			Phenotype:        snap.Phenotype,
			Age:              snap.Age,
			Score:            snap.Score,
			HasScore:         snap.HasScore,
			CachedDimVersion: snap.CachedDimVersion,
			IsDead:           snap.IsDead,
			ParentID1:        snap.ParentID1,
			ParentID2:        snap.ParentID2,
			HasParents:       snap.HasParents,
		}
		if snap.HasRegionKey {
			o.SetRegionKey(grid.NewRegionKey(snap.RegionKeyValues), snap.CachedDimVersion)
		}
		e.Pool.Add(o)
		if e.HasBest && o.ID == e.BestOrganismID {
			snapshot := *o
			snapshot.Phenotype = o.Phenotype.Clone()
			e.bestSnapshot = &snapshot
		}
	}
	organism.SeedNextID(checkpoint.NextOrganismID)

	regionstore.Populate(e.Regions, e.Pool.All())
	regionstore.UpdateMinScores(e.Regions, e.Pool)
	regionstore.AllocateCarryingCapacities(e.Regions)

	return e, nil
}

// AutoCheckpointer saves e's state on an epoch interval, mirroring the
// source tooling's "every N generations" cadence.
type AutoCheckpointer struct {
	Engine    *Engine
	Path      string
	Interval  int
	LastSaved int
}

// NewAutoCheckpointer builds an AutoCheckpointer that saves every interval
// epochs. Interval <= 0 disables saving (ShouldSave always false).
func NewAutoCheckpointer(engine *Engine, path string, interval int) *AutoCheckpointer {
	return &AutoCheckpointer{Engine: engine, Path: path, Interval: interval, LastSaved: -1}
}

// ShouldSave reports whether epoch is an interval boundary not yet saved.
// Epoch 0 never triggers a save — there is nothing to checkpoint yet.
func (ac *AutoCheckpointer) ShouldSave(epoch int) bool {
	if ac.Interval <= 0 || epoch == 0 {
		return false
	}
	return epoch > ac.LastSaved && epoch%ac.Interval == 0
}

// Save writes a checkpoint if epoch is due for one.
func (ac *AutoCheckpointer) Save(epoch int) error {
	if !ac.ShouldSave(epoch) {
		return nil
	}
	if err := ac.Engine.SaveCheckpoint(ac.Path); err != nil {
		return err
	}
	ac.LastSaved = epoch
	return nil
}

// SaveFinal writes a checkpoint unconditionally, regardless of interval.
func (ac *AutoCheckpointer) SaveFinal() error {
	return ac.Engine.SaveCheckpoint(ac.Path)
}
