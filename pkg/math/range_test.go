package math

import (
	gomath "math"
	"testing"
)

func TestEmptyRange(t *testing.T) {
	r := EmptyRange()
	if !r.IsEmpty() {
		t.Error("EmptyRange() should be empty")
	}
	if !gomath.IsInf(r.Min, 1) || !gomath.IsInf(r.Max, -1) {
		t.Errorf("EmptyRange() = %v, want [+Inf, -Inf]", r)
	}
}

func TestRangeExtend(t *testing.T) {
	r := EmptyRange()
	r.Extend(5)
	if r.Min != 5 || r.Max != 5 {
		t.Errorf("after Extend(5) got %v, want 5-5", r)
	}
	if r.IsEmpty() {
		t.Error("range should not be empty after Extend")
	}

	r.Extend(-2)
	r.Extend(12.5)
	r.Extend(3)
	if r.Min != -2 || r.Max != 12.5 {
		t.Errorf("got %v, want -2-12.5", r)
	}
	if r.Size() != 14.5 {
		t.Errorf("Size() = %v, want 14.5", r.Size())
	}
}

func TestRangeUnion(t *testing.T) {
	tests := []struct {
		a, b Range
	}{
		{NewRange(0, 10), NewRange(5, 20)},
		{NewRange(-5, 0), NewRange(1, 2)},
		{NewRange(3, 4), NewRange(3, 4)},
		{NewRange(1, 100), NewRange(50, 60)},
	}

	for _, tt := range tests {
		got := tt.a.Union(tt.b)
		if got.Min != gomath.Min(tt.a.Min, tt.b.Min) {
			t.Errorf("(%v | %v).Min = %v", tt.a, tt.b, got.Min)
		}
		if got.Max != gomath.Max(tt.a.Max, tt.b.Max) {
			t.Errorf("(%v | %v).Max = %v", tt.a, tt.b, got.Max)
		}
		if got != tt.b.Union(tt.a) {
			t.Errorf("union of %v and %v is not commutative", tt.a, tt.b)
		}
	}
}

func TestRangeUnionWithEmpty(t *testing.T) {
	r := NewRange(2, 8)
	if got := EmptyRange().Union(r); got != r {
		t.Errorf("empty | %v = %v, want %v", r, got, r)
	}
}
