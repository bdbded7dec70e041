// Package objective defines the pluggable scoring contract the epoch engine
// evaluates every organism against, and the euclidean-distance-from-floor
// scoring function that turns an objective's raw outputs into an organism's
// fitness score.
package objective

import (
	"fmt"
	"math"
)

// Objective is a pluggable scoring function. Run computes the objective's
// outputs from an organism's problem parameters and the current training
// inputs. Floor establishes a lower bound every output must satisfy; most
// objectives use the default of 0.0 and need not implement it themselves —
// embed DefaultFloor to get that for free.
type Objective interface {
	Run(problemParams, inputs []float64) []float64
	Floor() float64
}

// DefaultFloor implements Floor() as the constant 0.0. Objectives without a
// meaningful lower bound on their output embed this rather than repeat it.
type DefaultFloor struct{}

// Floor returns 0.0.
func (DefaultFloor) Floor() float64 { return 0.0 }

// Score computes an organism's fitness: the euclidean distance between
// obj.Run(problemParams, inputs) and knownOutputs. It panics on any contract
// violation, mirroring the engine's fatal-on-caller-misuse error taxonomy —
// these are programmer errors, not recoverable in-engine events.
func Score(obj Objective, problemParams, inputs, knownOutputs []float64) float64 {
	if len(knownOutputs) == 0 {
		panic("objective: known outputs must not be empty")
	}
	for i, k := range knownOutputs {
		if !isFinite(k) {
			panic(fmt.Sprintf("objective: known output[%d] = %v is not finite", i, k))
		}
	}

	outputs := obj.Run(problemParams, inputs)

	if len(outputs) != len(knownOutputs) {
		panic(fmt.Sprintf("objective: the number of outputs (%d) must match the number of known outputs (%d)", len(outputs), len(knownOutputs)))
	}

	floor := obj.Floor()
	for i, out := range outputs {
		if out < floor {
			panic(fmt.Sprintf("objective: output[%d] = %v is below the function floor %v", i, out, floor))
		}
	}

	var sumSquares float64
	for i, out := range outputs {
		d := out - knownOutputs[i]
		sumSquares += d * d
	}
	score := math.Sqrt(sumSquares)

	if !isFinite(score) {
		panic(fmt.Sprintf("objective: fitness score must be finite, got: %v", score))
	}
	return score
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
