package render

import (
	"math"
	"testing"

	"chosenoffset.com/portal9/internal/geom"
)

func vecNear(a, b geom.Vec2, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

func TestCameraToSpace(t *testing.T) {
	c := NewCamera()
	c.SetLocation(geom.Vec2{X: 3, Y: 4}, 0.5, 0)

	// The camera's own location is the camera-space origin.
	if got := c.ToSpace(c.Location); !vecNear(got, geom.Vec2{}, 1e-12) {
		t.Errorf("ToSpace(location): expected origin, got (%g, %g)", got.X, got.Y)
	}

	// A point straight ahead lands on +Y at its distance.
	ahead := c.Location.Add(c.Direction.Scale(5))
	if got := c.ToSpace(ahead); !vecNear(got, geom.Vec2{X: 0, Y: 5}, 1e-9) {
		t.Errorf("ToSpace(ahead): expected (0, 5), got (%g, %g)", got.X, got.Y)
	}

	// A point to the right lands on +X.
	right := c.Location.Add(c.Right.Scale(2))
	if got := c.ToSpace(right); !vecNear(got, geom.Vec2{X: 2, Y: 0}, 1e-9) {
		t.Errorf("ToSpace(right): expected (2, 0), got (%g, %g)", got.X, got.Y)
	}
}

func TestCameraToSpaceRotated(t *testing.T) {
	c := NewCamera()
	c.SetLocation(geom.Vec2{X: 1, Y: 1}, 0.5, math.Pi/2)

	if !vecNear(c.Direction, geom.Vec2{X: 0, Y: 1}, 1e-12) {
		t.Fatalf("Direction: expected (0, 1), got (%g, %g)", c.Direction.X, c.Direction.Y)
	}
	if !vecNear(c.Right, geom.Vec2{X: 1, Y: 0}, 1e-12) {
		t.Fatalf("Right: expected (1, 0), got (%g, %g)", c.Right.X, c.Right.Y)
	}

	// Looking along +Y in world space: world (1, 3) is 2 ahead.
	if got := c.ToSpace(geom.Vec2{X: 1, Y: 3}); !vecNear(got, geom.Vec2{X: 0, Y: 2}, 1e-9) {
		t.Errorf("ToSpace: expected (0, 2), got (%g, %g)", got.X, got.Y)
	}
}

// SetLocation must leave no stale derived state behind.
func TestCameraSetLocationRecomputes(t *testing.T) {
	c := NewCamera()
	c.SetLocation(geom.Vec2{X: 10, Y: -2}, 1, 0.7)
	c.SetLocation(geom.Vec2{X: -3, Y: 5}, 0.5, 2.1)

	wantDir := geom.Vec2{X: math.Cos(2.1), Y: math.Sin(2.1)}
	if !vecNear(c.Direction, wantDir, 1e-12) {
		t.Errorf("Direction stale after second SetLocation")
	}
	if !vecNear(c.Right, geom.Vec2{X: wantDir.Y, Y: -wantDir.X}, 1e-12) {
		t.Errorf("Right stale after second SetLocation")
	}
	if got := c.ToSpace(c.Location); !vecNear(got, geom.Vec2{}, 1e-9) {
		t.Errorf("location dot caches stale: ToSpace(location) = (%g, %g)", got.X, got.Y)
	}

	// Direction and Right stay orthonormal for any rotation.
	if d := c.Direction.Dot(c.Right); math.Abs(d) > 1e-12 {
		t.Errorf("Direction and Right not orthogonal: dot = %g", d)
	}
}
