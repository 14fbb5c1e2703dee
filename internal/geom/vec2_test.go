package geom

import (
	"math"
	"testing"
)

func TestVec2Arithmetic(t *testing.T) {
	a := Vec2{X: 3, Y: 4}
	b := Vec2{X: 1, Y: -2}

	if got := a.Add(b); got != (Vec2{X: 4, Y: 2}) {
		t.Errorf("Add: expected (4, 2), got (%g, %g)", got.X, got.Y)
	}
	if got := a.Sub(b); got != (Vec2{X: 2, Y: 6}) {
		t.Errorf("Sub: expected (2, 6), got (%g, %g)", got.X, got.Y)
	}
	if got := a.Scale(2); got != (Vec2{X: 6, Y: 8}) {
		t.Errorf("Scale: expected (6, 8), got (%g, %g)", got.X, got.Y)
	}
	if got := a.Dot(b); got != -5 {
		t.Errorf("Dot: expected -5, got %g", got)
	}
	if got := a.Cross(b); got != -10 {
		t.Errorf("Cross: expected -10, got %g", got)
	}
	if got := a.Length(); got != 5 {
		t.Errorf("Length: expected 5, got %g", got)
	}
}

func TestVec2Normalized(t *testing.T) {
	v := Vec2{X: 3, Y: 4}.Normalized()
	if math.Abs(v.Length()-1) > 1e-12 {
		t.Errorf("Normalized length: expected 1, got %g", v.Length())
	}
	if math.Abs(v.X-0.6) > 1e-12 || math.Abs(v.Y-0.8) > 1e-12 {
		t.Errorf("Normalized: expected (0.6, 0.8), got (%g, %g)", v.X, v.Y)
	}

	// The zero vector stays put instead of dividing by zero.
	zero := Vec2{}.Normalized()
	if zero != (Vec2{}) {
		t.Errorf("Normalized zero: expected (0, 0), got (%g, %g)", zero.X, zero.Y)
	}
}
