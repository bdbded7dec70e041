package engine

import (
	"fmt"
	"math"
)

// TrainingData is the public input to TrainingRun: either a bare floor
// value (unsupervised descent toward a known lower bound) or a supervised
// input/output table the engine cycles through one row per epoch.
type TrainingData interface {
	// validate panics with a descriptive message on any contract violation.
	// Validation failures are fatal; the engine does not try to recover
	// from a caller's malformed training data.
	validate()
	// row returns the training inputs and known outputs for the given
	// epoch count, cycling through whatever rows are available.
	row(epoch uint64) (inputs, knownOutputs []float64)
}

// NoneData drives the engine with no explicit inputs or outputs: the
// objective is scored purely against a floor value, e.g. "minimize f(x)"
// rather than "match f(x) to some target".
type NoneData struct {
	FloorValue float64
}

func (d NoneData) validate() {
	if !isFinite(d.FloorValue) {
		panic(fmt.Sprintf("engine: floor value must be finite, got %v", d.FloorValue))
	}
}

func (d NoneData) row(uint64) (inputs, knownOutputs []float64) {
	return nil, []float64{d.FloorValue}
}

// SupervisedData drives the engine against a fixed input/output table.
// Inputs[i] is paired with Outputs[i]; the engine advances through rows by
// epoch count modulo the table length, so a single-row table behaves like a
// fixed training example repeated every epoch.
type SupervisedData struct {
	Inputs  [][]float64
	Outputs [][]float64
}

func (d SupervisedData) validate() {
	if len(d.Inputs) == 0 || len(d.Outputs) == 0 {
		panic("engine: supervised training data must not be empty")
	}
	if len(d.Inputs) != len(d.Outputs) {
		panic(fmt.Sprintf("engine: supervised inputs (%d rows) and outputs (%d rows) must have equal length", len(d.Inputs), len(d.Outputs)))
	}
	for i, row := range d.Inputs {
		for j, v := range row {
			if !isFinite(v) {
				panic(fmt.Sprintf("engine: supervised input[%d][%d] = %v is not finite", i, j, v))
			}
		}
	}
	for i, row := range d.Outputs {
		for j, v := range row {
			if !isFinite(v) {
				panic(fmt.Sprintf("engine: supervised output[%d][%d] = %v is not finite", i, j, v))
			}
		}
	}
}

func (d SupervisedData) row(epoch uint64) (inputs, knownOutputs []float64) {
	idx := int(epoch % uint64(len(d.Inputs)))
	return d.Inputs[idx], d.Outputs[idx]
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
