package grid

import "strconv"

// RegionKey identifies a region as a tuple of per-dimension interval
// indices. Two organisms with the same key occupy the same region.
type RegionKey struct {
	values []int
}

// NewRegionKey wraps a slice of interval indices as a RegionKey. The slice
// is not copied; callers must not mutate it afterward.
func NewRegionKey(values []int) RegionKey {
	return RegionKey{values: values}
}

// Values returns the interval indices, one per dimension, in dimension order.
func (k RegionKey) Values() []int { return k.values }

// Len returns the number of dimensions encoded in the key.
func (k RegionKey) Len() int { return len(k.values) }

// String renders the key as a comma-joined tuple, suitable as a stable map
// key or log field, e.g. "2,0,5".
func (k RegionKey) String() string {
	if len(k.values) == 0 {
		return ""
	}
	out := strconv.Itoa(k.values[0])
	for _, v := range k.values[1:] {
		out += "," + strconv.Itoa(v)
	}
	return out
}

// Equal reports whether two keys encode the same interval indices.
func (k RegionKey) Equal(other RegionKey) bool {
	if len(k.values) != len(other.values) {
		return false
	}
	for i, v := range k.values {
		if other.values[i] != v {
			return false
		}
	}
	return true
}

// OutOfBounds reports which dimensions a phenotype's problem-parameter
// values fall outside of. It is the zero-indexed sibling of RegionKey: a
// non-nil value from CalculateRegionKey's error case tells the caller
// exactly which axes to expand before retrying.
type OutOfBounds struct {
	DimensionsExceeded []int
}

func (e *OutOfBounds) Error() string {
	return "grid: value outside dimension bounds for dimensions " + joinInts(e.DimensionsExceeded)
}

func joinInts(xs []int) string {
	if len(xs) == 0 {
		return ""
	}
	out := strconv.Itoa(xs[0])
	for _, x := range xs[1:] {
		out += "," + strconv.Itoa(x)
	}
	return out
}

// CalculateRegionKey computes the RegionKey for a vector of problem-parameter
// values, one per dimension. If any value falls outside its dimension's
// bounds, it returns a nil key and an *OutOfBounds naming every exceeded
// dimension (not just the first).
//
// Panics if len(values) != dims.NumDimensions().
func CalculateRegionKey(values []float64, dims *Dimensions) (RegionKey, error) {
	if len(values) != dims.NumDimensions() {
		panic("grid: number of values must match number of dimensions")
	}
	intervals := make([]int, 0, len(values))
	var exceeded []int
	for i, v := range values {
		idx, ok := dims.dims[i].GetInterval(v)
		if !ok {
			exceeded = append(exceeded, i)
			continue
		}
		intervals = append(intervals, idx)
	}
	if len(exceeded) > 0 {
		return RegionKey{}, &OutOfBounds{DimensionsExceeded: exceeded}
	}
	return NewRegionKey(intervals), nil
}
