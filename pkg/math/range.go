package math

import (
	"fmt"
	gomath "math"
)

// Range is a closed floating interval [Min, Max].
//
// The zero value is NOT an empty range; use EmptyRange. An empty range has
// Min = +Inf and Max = -Inf so the first Extend or Union establishes real
// bounds.
type Range struct {
	Min, Max float64
}

// EmptyRange returns a range that contains nothing.
func EmptyRange() Range {
	return Range{Min: gomath.Inf(1), Max: gomath.Inf(-1)}
}

// NewRange creates a range with the given bounds.
func NewRange(lo, hi float64) Range {
	return Range{Min: lo, Max: hi}
}

// Extend widens the range to include v.
func (r *Range) Extend(v float64) {
	if v < r.Min {
		r.Min = v
	}
	if v > r.Max {
		r.Max = v
	}
}

// Union returns the componentwise min/max of r and other.
func (r Range) Union(other Range) Range {
	return Range{Min: gomath.Min(r.Min, other.Min), Max: gomath.Max(r.Max, other.Max)}
}

// Size returns Max - Min. It is negative infinity for an empty range.
func (r Range) Size() float64 {
	return r.Max - r.Min
}

// IsEmpty reports whether nothing has been added to the range.
func (r Range) IsEmpty() bool {
	return r.Min > r.Max
}

// String returns the range as "min-max".
func (r Range) String() string {
	return fmt.Sprintf("%g-%g", r.Min, r.Max)
}
