package render

import (
	"math"

	"chosenoffset.com/portal9/internal/geom"
)

// Camera holds the view pose and the derived basis used to transform world
// points into camera space, where the view direction is +Y and right is +X.
// The basis and the location dot caches are recomputed by SetLocation so
// that ToSpace is two multiply-adds per axis on the hot path.
type Camera struct {
	Location geom.Vec2
	Height   float64
	Rotation float64

	Direction geom.Vec2
	Right     geom.Vec2

	locationDotDirection float64
	locationDotRight     float64
}

// NewCamera returns a camera at the origin looking along +X.
func NewCamera() *Camera {
	c := &Camera{}
	c.SetLocation(geom.Vec2{}, 0.5, 0)
	return c
}

// SetLocation is the sole camera mutator. It updates location, height and
// rotation together and recomputes the derived basis, so the camera is
// never observed with a stale Direction or Right.
func (c *Camera) SetLocation(location geom.Vec2, height, rotation float64) {
	c.Location = location
	c.Height = height
	c.Rotation = rotation

	c.Direction = geom.Vec2{X: math.Cos(rotation), Y: math.Sin(rotation)}
	c.Right = geom.Vec2{X: c.Direction.Y, Y: -c.Direction.X}

	c.locationDotDirection = c.Location.Dot(c.Direction)
	c.locationDotRight = c.Location.Dot(c.Right)
}

// ToSpace transforms a world point into camera space. The Y coordinate of
// the result is the view depth.
func (c *Camera) ToSpace(p geom.Vec2) geom.Vec2 {
	return geom.Vec2{
		X: p.X*c.Right.X + p.Y*c.Right.Y - c.locationDotRight,
		Y: p.X*c.Direction.X + p.Y*c.Direction.Y - c.locationDotDirection,
	}
}
