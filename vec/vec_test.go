package vec

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-12
}

func TestArithmetic(t *testing.T) {
	a := New(1, 2)
	b := New(3, -4)

	if got := a.Add(b); got != New(4, -2) {
		t.Errorf("Add = %v, want (4, -2)", got)
	}
	if got := a.Sub(b); got != New(-2, 6) {
		t.Errorf("Sub = %v, want (-2, 6)", got)
	}
	if got := a.Scale(2); got != New(2, 4) {
		t.Errorf("Scale = %v, want (2, 4)", got)
	}
	if got := b.Div(2); got != New(1.5, -2) {
		t.Errorf("Div = %v, want (1.5, -2)", got)
	}
	if got := a.Neg(); got != New(-1, -2) {
		t.Errorf("Neg = %v, want (-1, -2)", got)
	}
}

func TestDotLengthDistance(t *testing.T) {
	a := New(3, 4)

	if got := a.Dot(New(2, 1)); !almostEqual(got, 10) {
		t.Errorf("Dot = %v, want 10", got)
	}
	if got := a.Length(); !almostEqual(got, 5) {
		t.Errorf("Length = %v, want 5", got)
	}
	if got := Zero.Distance(a); !almostEqual(got, 5) {
		t.Errorf("Distance = %v, want 5", got)
	}
}

func TestNormalize(t *testing.T) {
	if got := New(3, 4).Normalize(); !almostEqual(got.Length(), 1) {
		t.Errorf("normalized length = %v, want 1", got.Length())
	}

	// The zero vector must normalize to zero, not NaN.
	if got := Zero.Normalize(); got != Zero {
		t.Errorf("Zero.Normalize() = %v, want zero", got)
	}
}

func TestPerp(t *testing.T) {
	v := New(2, 1)
	p := v.Perp()

	if p != New(-1, 2) {
		t.Errorf("Perp = %v, want (-1, 2)", p)
	}
	if got := v.Dot(p); !almostEqual(got, 0) {
		t.Errorf("Perp not orthogonal: dot = %v", got)
	}
	if got := v.PerpDot(New(0, 1)); !almostEqual(got, 2) {
		t.Errorf("PerpDot = %v, want 2", got)
	}
}

func TestFromAngle(t *testing.T) {
	tests := []struct {
		angle float64
		want  Vec2
	}{
		{0, New(1, 0)},
		{math.Pi / 2, New(0, 1)},
		{math.Pi, New(-1, 0)},
	}

	for _, tt := range tests {
		got := FromAngle(tt.angle)
		if !almostEqual(got.X, tt.want.X) || !almostEqual(got.Y, tt.want.Y) {
			t.Errorf("FromAngle(%v) = %v, want %v", tt.angle, got, tt.want)
		}
	}
}
