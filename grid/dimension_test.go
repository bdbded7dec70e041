package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDimensionPanicsWhenMaxLessThanMin(t *testing.T) {
	assert.Panics(t, func() {
		NewDimension(5.0, 0.0, 1)
	})
}

func TestNewDimensionAcceptsZeroDoublings(t *testing.T) {
	d := NewDimension(0.0, 5.0, 0)
	assert.Equal(t, uint32(0), d.Doublings())
	lo, hi := d.Bounds()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 5.0, hi)
}

func TestGetIntervalZeroDoublingsAlwaysZero(t *testing.T) {
	d := NewDimension(0.0, 10.0, 0)
	idx, ok := d.GetInterval(7.3)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestGetIntervalOutOfBounds(t *testing.T) {
	d := NewDimension(0.0, 10.0, 2)
	_, ok := d.GetInterval(-0.1)
	assert.False(t, ok)
	_, ok = d.GetInterval(10.1)
	assert.False(t, ok)
}

func TestGetIntervalSubdividesEvenly(t *testing.T) {
	d := NewDimension(0.0, 10.0, 2) // 4 intervals of width 2.5
	idx, ok := d.GetInterval(0.0)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	idx, ok = d.GetInterval(9.9)
	assert.True(t, ok)
	assert.Equal(t, 3, idx)

	idx, ok = d.GetInterval(10.0)
	assert.True(t, ok)
	assert.Equal(t, 3, idx, "upper bound falls in the last interval")
}

func TestIntervalBoundsZeroDoublingsReturnsFullRange(t *testing.T) {
	d := NewDimension(0.0, 10.0, 0)
	lo, hi, ok := d.IntervalBounds(0)
	assert.True(t, ok)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 10.0, hi)

	_, _, ok = d.IntervalBounds(1)
	assert.False(t, ok)
}

func TestIntervalBoundsSinglePointRange(t *testing.T) {
	d := NewDimension(5.0, 5.0, 5)
	lo, hi, ok := d.IntervalBounds(0)
	assert.True(t, ok)
	assert.Equal(t, 5.0, lo)
	assert.Equal(t, 5.0, hi)

	_, _, ok = d.IntervalBounds(1)
	assert.False(t, ok)
}

func TestIntervalBoundsBasicDivisions(t *testing.T) {
	d := NewDimension(0.0, 10.0, 2)
	lo, hi, ok := d.IntervalBounds(0)
	assert.True(t, ok)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 2.5, hi)

	lo, hi, ok = d.IntervalBounds(3)
	assert.True(t, ok)
	assert.Equal(t, 7.5, lo)
	assert.Equal(t, 10.0, hi, "last interval closes on exact range end")

	_, _, ok = d.IntervalBounds(4)
	assert.False(t, ok)
}

func TestExpandBoundsZeroWidthExpandsByFixedAmount(t *testing.T) {
	d := NewDimension(0.0, 0.0, 0)
	d.ExpandBounds()
	lo, hi := d.Bounds()
	assert.Equal(t, -0.5, lo)
	assert.Equal(t, 0.5, hi)
}

func TestExpandBoundsNonZeroWidthExpandsBy50Percent(t *testing.T) {
	d := NewDimension(10.0, 20.0, 0)
	d.ExpandBounds()
	lo, hi := d.Bounds()
	assert.Equal(t, 5.0, lo)
	assert.Equal(t, 25.0, hi)
}
