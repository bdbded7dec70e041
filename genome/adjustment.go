package genome

import (
	"encoding/binary"
	"encoding/json"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Direction is the sign applied when a LocusAdjustment is applied to a value.
type Direction uint8

const (
	Add Direction = iota
	Subtract
)

// AdjustmentValueBoundPercentage bounds an adjustment's magnitude to this
// fraction of the locus's value span when the locus is constructed with bounds.
// Carried from the original Rust source's LocusAdjustment::ADJUSTMENT_VALUE_BOUND_PERCENTAGE.
const AdjustmentValueBoundPercentage = 0.1

// LocusAdjustment is the self-tuning mutation-step state attached to a Locus:
// a magnitude, a direction, and a doubling/halving flag, plus a checksum used
// purely as a dominance key during diploid expression (see ComputeExpressed).
type LocusAdjustment struct {
	AdjustmentValue Parameter
	Direction       Direction
	DoublingFlag    bool
	checksum        uint64
}

// NewLocusAdjustment builds a LocusAdjustment and computes its checksum.
func NewLocusAdjustment(value Parameter, dir Direction, doubling bool) LocusAdjustment {
	la := LocusAdjustment{AdjustmentValue: value, Direction: dir, DoublingFlag: doubling}
	la.checksum = computeChecksum(value.Get(), dir, doubling)
	return la
}

// Checksum returns the stable 64-bit checksum of this adjustment. It changes
// if and only if one of AdjustmentValue, Direction, or DoublingFlag changes.
func (la LocusAdjustment) Checksum() uint64 { return la.checksum }

func computeChecksum(value float64, dir Direction, doubling bool) uint64 {
	var buf [10]byte
	binary.LittleEndian.PutUint64(buf[0:8], math.Float64bits(value))
	buf[8] = byte(dir)
	if doubling {
		buf[9] = 1
	}
	return xxhash.Sum64(buf[:])
}

// locusAdjustmentJSON is LocusAdjustment's wire format. checksum is derived,
// never stored: unmarshaling rebuilds it via NewLocusAdjustment so a
// resumed checkpoint's dominance comparisons behave identically to a fresh
// run instead of comparing against zeroed-out checksums.
type locusAdjustmentJSON struct {
	AdjustmentValue Parameter `json:"adjustment_value"`
	Direction       Direction `json:"direction"`
	DoublingFlag    bool      `json:"doubling_flag"`
}

func (la LocusAdjustment) MarshalJSON() ([]byte, error) {
	return json.Marshal(locusAdjustmentJSON{
		AdjustmentValue: la.AdjustmentValue,
		Direction:       la.Direction,
		DoublingFlag:    la.DoublingFlag,
	})
}

func (la *LocusAdjustment) UnmarshalJSON(data []byte) error {
	var laj locusAdjustmentJSON
	if err := json.Unmarshal(data, &laj); err != nil {
		return err
	}
	*la = NewLocusAdjustment(laj.AdjustmentValue, laj.Direction, laj.DoublingFlag)
	return nil
}

// Sign returns +1.0 for Add, -1.0 for Subtract.
func (d Direction) Sign() float64 {
	if d == Subtract {
		return -1.0
	}
	return 1.0
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Add {
		return Subtract
	}
	return Add
}
