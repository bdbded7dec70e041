package engine

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/cainem/hilldescent-go/genome"
)

// StateDimension is one axis's reportable shape: its current range and
// subdivision count.
type StateDimension struct {
	Lo        float64 `json:"lo"`
	Hi        float64 `json:"hi"`
	Doublings uint32  `json:"doublings"`
}

// StateOrganism is one organism's full reportable state.
type StateOrganism struct {
	ID         uint64    `json:"id"`
	RegionKey  string    `json:"region_key,omitempty"`
	Age        uint32    `json:"age"`
	Score      float64   `json:"score"`
	HasScore   bool      `json:"has_score"`
	IsDead     bool      `json:"is_dead"`
	Expressed  []float64 `json:"expressed"`
}

// StateRegion is one region's full reportable state.
type StateRegion struct {
	Key              string  `json:"key"`
	MinScore         float64 `json:"min_score"`
	HasMinScore      bool    `json:"has_min_score"`
	CarryingCapacity uint32  `json:"carrying_capacity"`
	OrganismCount    int     `json:"organism_count"`
}

// State is the full, engine-agnostic snapshot returned by GetState: every
// dimension's bounds and resolution, and every organism's region key,
// expressed parameters, and score.
type State struct {
	Dimensions []StateDimension `json:"dimensions"`
	Organisms  []StateOrganism  `json:"organisms"`
	Regions    []StateRegion    `json:"regions"`
}

// GetState builds the full state dump: every dimension's range and
// doublings, every organism's region key/age/score/expressed phenotype,
// and every region's min score and carrying capacity.
func (e *Engine) GetState() State {
	dims := e.Dims.All()
	stateDims := make([]StateDimension, len(dims))
	for i, d := range dims {
		lo, hi := d.Bounds()
		stateDims[i] = StateDimension{Lo: lo, Hi: hi, Doublings: d.Doublings()}
	}

	orgs := e.Pool.All()
	stateOrgs := make([]StateOrganism, len(orgs))
	for i, o := range orgs {
		var key string
		if o.HasRegionKey {
			key = o.RegionKey.String()
		}
		stateOrgs[i] = StateOrganism{
			ID:        o.ID,
			RegionKey: key,
			Age:       o.Age,
			Score:     o.Score,
			HasScore:  o.HasScore,
			IsDead:    o.IsDead,
			Expressed: o.Phenotype.Expressed,
		}
	}

	regions := e.Regions.All()
	stateRegions := make([]StateRegion, len(regions))
	for i, r := range regions {
		stateRegions[i] = StateRegion{
			Key:              r.Key.String(),
			MinScore:         r.MinScore,
			HasMinScore:      r.HasMinScore,
			CarryingCapacity: r.CarryingCapacity,
			OrganismCount:    r.Len(),
		}
	}

	return State{Dimensions: stateDims, Organisms: stateOrgs, Regions: stateRegions}
}

// GetStateJSON renders GetState as indented JSON.
func (e *Engine) GetStateJSON() ([]byte, error) {
	return json.MarshalIndent(e.GetState(), "", "  ")
}

// AxisRange is an inclusive [Lo, Hi] range rendered for the web state.
type AxisRange struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// WebPoint is a 2D coordinate.
type WebPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// WebBounds is a 2D region's per-axis extent.
type WebBounds struct {
	X AxisRange `json:"x"`
	Y AxisRange `json:"y"`
}

// WebPhenotype is the subset of an organism's genetic state the external
// visualization contract renders.
type WebPhenotype struct {
	SystemParameters genome.SystemParameters `json:"system_parameters"`
	ExpressedHash    uint64                  `json:"expressed_hash"`
}

// WebOrganism is one organism's record in the 2D web-state contract.
type WebOrganism struct {
	ID         uint64       `json:"id"`
	Params     WebPoint     `json:"params"`
	Age        uint32       `json:"age"`
	MaxAge     uint32       `json:"max_age"`
	Score      float64      `json:"score"`
	HasScore   bool         `json:"has_score"`
	RegionKey  string       `json:"region_key,omitempty"`
	IsDead     bool         `json:"is_dead"`
	HasParents bool         `json:"has_parents"`
	ParentID1  uint64       `json:"parent_id_1,omitempty"`
	ParentID2  uint64       `json:"parent_id_2,omitempty"`
	Phenotype  WebPhenotype `json:"phenotype"`
}

// WebRegion is one region's record in the 2D web-state contract.
type WebRegion struct {
	Key              string    `json:"key"`
	CarryingCapacity uint32    `json:"carrying_capacity"`
	Bounds           WebBounds `json:"bounds"`
	MinScore         float64   `json:"min_score"`
	HasMinScore      bool      `json:"has_min_score"`
}

// WebState is the full 2D visualization payload.
type WebState struct {
	Organisms   []WebOrganism `json:"organisms"`
	Regions     []WebRegion   `json:"regions"`
	WorldBounds WebBounds     `json:"world_bounds"`
	ScoreRange  AxisRange     `json:"score_range"`
}

// GetStateForWeb builds the 2D-only visualization payload. Panics if the
// engine's search space is not exactly two-dimensional: the contract is
// keyed to a fixed {x, y} shape and has no sensible rendering otherwise.
func (e *Engine) GetStateForWeb() WebState {
	if e.Dims.NumDimensions() != 2 {
		panic(fmt.Sprintf("engine: get_state_for_web requires exactly 2 dimensions, got %d", e.Dims.NumDimensions()))
	}

	orgs := e.Pool.All()
	webOrgs := make([]WebOrganism, len(orgs))
	scoreLo, scoreHi := math.Inf(1), math.Inf(-1)
	for i, o := range orgs {
		params := o.ProblemParams()
		var key string
		if o.HasRegionKey {
			key = o.RegionKey.String()
		}
		if o.HasScore {
			if o.Score < scoreLo {
				scoreLo = o.Score
			}
			if o.Score > scoreHi {
				scoreHi = o.Score
			}
		}
		webOrgs[i] = WebOrganism{
			ID:         o.ID,
			Params:     WebPoint{X: params[0], Y: params[1]},
			Age:        o.Age,
			MaxAge:     o.Phenotype.SystemParameters.MaxAge,
			Score:      o.Score,
			HasScore:   o.HasScore,
			RegionKey:  key,
			IsDead:     o.IsDead,
			HasParents: o.HasParents,
			ParentID1:  o.ParentID1,
			ParentID2:  o.ParentID2,
			Phenotype: WebPhenotype{
				SystemParameters: o.Phenotype.SystemParameters,
				ExpressedHash:    o.Phenotype.ExpressedHash,
			},
		}
	}
	if math.IsInf(scoreLo, 1) {
		scoreLo, scoreHi = 0, 0
	}

	dimX, dimY := e.Dims.Dimension(0), e.Dims.Dimension(1)
	worldLoX, worldHiX := dimX.Bounds()
	worldLoY, worldHiY := dimY.Bounds()
	worldBounds := WebBounds{X: AxisRange{Lo: worldLoX, Hi: worldHiX}, Y: AxisRange{Lo: worldLoY, Hi: worldHiY}}

	regions := e.Regions.All()
	webRegions := make([]WebRegion, len(regions))
	for i, r := range regions {
		keyVals := r.Key.Values()
		xLo, xHi, _ := dimX.IntervalBounds(keyVals[0])
		yLo, yHi, _ := dimY.IntervalBounds(keyVals[1])
		webRegions[i] = WebRegion{
			Key:              r.Key.String(),
			CarryingCapacity: r.CarryingCapacity,
			Bounds:           WebBounds{X: AxisRange{Lo: xLo, Hi: xHi}, Y: AxisRange{Lo: yLo, Hi: yHi}},
			MinScore:         r.MinScore,
			HasMinScore:      r.HasMinScore,
		}
	}

	return WebState{
		Organisms:   webOrgs,
		Regions:     webRegions,
		WorldBounds: worldBounds,
		ScoreRange:  AxisRange{Lo: scoreLo, Hi: scoreHi},
	}
}

// GetStateForWebJSON renders GetStateForWeb as indented JSON.
func (e *Engine) GetStateForWebJSON() ([]byte, error) {
	return json.MarshalIndent(e.GetStateForWeb(), "", "  ")
}
