// Package genome implements the Parameter-Dependent Dynamics genome: loci that
// carry both a value and a self-tuning adjustment rule, gametes built from loci,
// and the diploid expression of a phenotype from a pair of gametes.
package genome

import "encoding/json"

// Parameter is a real value with optional inclusive bounds. A Parameter created
// with bounds clamps every write through Set; Parameter.SetUnbound stores the
// value verbatim regardless of bounds.
type Parameter struct {
	value    float64
	hasBound bool
	lo, hi   float64
}

// NewParameter creates an unbounded Parameter holding val.
func NewParameter(val float64) Parameter {
	return Parameter{value: val}
}

// NewParameterWithBounds creates a Parameter clamped to [lo, hi]; val is
// clamped on construction.
func NewParameterWithBounds(val, lo, hi float64) Parameter {
	p := Parameter{hasBound: true, lo: lo, hi: hi}
	p.Set(val)
	return p
}

// Get returns the current value.
func (p Parameter) Get() float64 { return p.value }

// HasBounds reports whether this Parameter clamps on Set.
func (p Parameter) HasBounds() bool { return p.hasBound }

// Bounds returns the inclusive bounds and whether they are set.
func (p Parameter) Bounds() (lo, hi float64, ok bool) { return p.lo, p.hi, p.hasBound }

// Set stores x, clamping to [lo, hi] if bounds are present.
func (p *Parameter) Set(x float64) {
	if p.hasBound {
		if x < p.lo {
			x = p.lo
		} else if x > p.hi {
			x = p.hi
		}
	}
	p.value = x
}

// SetUnbound stores x verbatim, ignoring any configured bounds.
func (p *Parameter) SetUnbound(x float64) {
	p.value = x
}

// parameterJSON is Parameter's wire format. Parameter keeps its fields
// unexported so callers can't bypass Set's clamping, which means the
// default JSON encoding (no exported fields) would silently lose every
// value on a checkpoint round-trip — these methods exist so
// checkpointing sees the real state instead of an empty object.
type parameterJSON struct {
	Value    float64 `json:"value"`
	HasBound bool    `json:"has_bound,omitempty"`
	Lo       float64 `json:"lo,omitempty"`
	Hi       float64 `json:"hi,omitempty"`
}

func (p Parameter) MarshalJSON() ([]byte, error) {
	return json.Marshal(parameterJSON{Value: p.value, HasBound: p.hasBound, Lo: p.lo, Hi: p.hi})
}

func (p *Parameter) UnmarshalJSON(data []byte) error {
	var pj parameterJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return err
	}
	p.value, p.hasBound, p.lo, p.hi = pj.Value, pj.HasBound, pj.Lo, pj.Hi
	return nil
}
