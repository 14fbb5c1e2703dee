package world

import (
	"math"

	"chosenoffset.com/portal9/internal/geom"
)

// SectorID identifies a sector by its dense index into the map's sector
// slice. It is a weak reference: holders go through Map.Sector to resolve
// it, which may fail on a malformed id.
type SectorID uint32

// EdgeKind distinguishes solid walls from portals into a neighbour sector.
type EdgeKind int

const (
	EdgeWall EdgeKind = iota
	EdgePortal
)

// Edge is one boundary segment of a sector. Edges are built once from the
// sector's point loop and are immutable afterwards; DCrossP0 caches the
// constant term of the half-plane test for Contains.
type Edge struct {
	P0, P1 geom.Vec2
	// D is P1 - P0.
	D geom.Vec2
	// DCrossP0 is D.X*P0.Y - D.Y*P0.X.
	DCrossP0 float64

	Kind EdgeKind
	// Target is the neighbour sector for EdgePortal edges.
	Target SectorID
}

// Sector is a convex polygonal region of the map with its own floor and
// ceiling heights. Points are stored in a consistent winding order; the
// loader guarantees this, and Contains relies on it.
type Sector struct {
	Points  []geom.Vec2
	Edges   []Edge
	Floor   float64
	Ceiling float64
}

// NewWallLoop builds a sector whose every edge is a solid wall, with the
// default 0..1 height band. Useful for tests and generated rooms.
func NewWallLoop(points []geom.Vec2) *Sector {
	s := &Sector{
		Points:  points,
		Floor:   0,
		Ceiling: 1,
	}
	s.Edges = make([]Edge, len(points)) // zero value Kind is EdgeWall
	s.buildEdges()
	return s
}

// buildEdges fills in the geometric fields of s.Edges from the point loop.
// The edge kinds/targets must already be in place, one per point.
func (s *Sector) buildEdges() {
	for i := range s.Points {
		p0 := s.Points[i]
		p1 := s.Points[(i+1)%len(s.Points)]
		d := p1.Sub(p0)

		e := &s.Edges[i]
		e.P0 = p0
		e.P1 = p1
		e.D = d
		e.DCrossP0 = d.X*p0.Y - d.Y*p0.X
	}
}

// Contains reports whether point lies inside the sector.
//
// Each edge contributes the sign bit of its half-plane expression to a
// two-bit collector: bit 0 for non-negative results, bit 1 for negative
// ones. With a consistent winding every interior point sees the same sign
// on all edges, so the point is inside iff exactly one bit is set.
// Branch-free on purpose: the loop body is a handful of multiplies and an
// OR, which keeps this hot path cheap.
func (s *Sector) Contains(point geom.Vec2) bool {
	var signs uint8
	for i := range s.Edges {
		e := &s.Edges[i]
		v := e.D.X*point.Y - e.D.Y*point.X - e.DCrossP0
		signs |= 1 << (math.Float64bits(v) >> 63)
	}
	return signs != 0 && signs != 3
}
