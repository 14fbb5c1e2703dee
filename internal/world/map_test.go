package world

import (
	"strings"
	"testing"

	"chosenoffset.com/portal9/internal/geom"
)

// threeRoomChain is a corridor of three sectors joined left to right by
// two portals: 0 <-> 1 <-> 2.
const threeRoomChain = `
	p 0 0
	p 8 0
	p 16 0
	p 24 0
	p 24 8
	p 16 8
	p 8 8
	p 0 8
	w 0 1
	w 1 2
	w 2 3
	w 3 4
	w 4 5
	w 5 6
	w 6 7
	w 7 0
	s 0 1 0 1 6 7
	s 0 1 1 2 5 6
	s 0 1 2 3 4 5
	c 4 4 0.5 0
`

func loadChain(t *testing.T) *Map {
	t.Helper()
	m, err := ParseMap(strings.NewReader(threeRoomChain))
	if err != nil {
		t.Fatalf("ParseMap: %v", err)
	}
	return m
}

func TestFindSector(t *testing.T) {
	m := loadChain(t)

	tests := []struct {
		point geom.Vec2
		want  SectorID
		ok    bool
	}{
		{geom.Vec2{X: 4, Y: 4}, 0, true},
		{geom.Vec2{X: 12, Y: 4}, 1, true},
		{geom.Vec2{X: 20, Y: 4}, 2, true},
		{geom.Vec2{X: 30, Y: 4}, 0, false},
		{geom.Vec2{X: 4, Y: -3}, 0, false},
	}
	for _, tt := range tests {
		id, ok := m.FindSector(tt.point)
		if ok != tt.ok || (ok && id != tt.want) {
			t.Errorf("FindSector(%g, %g): expected (%d, %v), got (%d, %v)",
				tt.point.X, tt.point.Y, tt.want, tt.ok, id, ok)
		}
	}
}

func TestFindAdjacentSector(t *testing.T) {
	m := loadChain(t)

	// Same sector: the cheap common case.
	if id, ok := m.FindAdjacentSector(geom.Vec2{X: 4, Y: 4}, 0); !ok || id != 0 {
		t.Errorf("expected (0, true), got (%d, %v)", id, ok)
	}

	// One portal hop: must agree with FindSector.
	if id, ok := m.FindAdjacentSector(geom.Vec2{X: 12, Y: 4}, 0); !ok || id != 1 {
		t.Errorf("expected (1, true), got (%d, %v)", id, ok)
	}
	if id, ok := m.FindAdjacentSector(geom.Vec2{X: 4, Y: 4}, 1); !ok || id != 0 {
		t.Errorf("expected (0, true), got (%d, %v)", id, ok)
	}

	// Two hops away: legitimately out of reach even though FindSector
	// would locate it.
	if _, ok := m.FindAdjacentSector(geom.Vec2{X: 20, Y: 4}, 0); ok {
		t.Error("expected miss for a point two portal hops away")
	}
	if id, ok := m.FindSector(geom.Vec2{X: 20, Y: 4}); !ok || id != 2 {
		t.Errorf("FindSector cross-check: expected (2, true), got (%d, %v)", id, ok)
	}

	// Invalid hint.
	if _, ok := m.FindAdjacentSector(geom.Vec2{X: 4, Y: 4}, 99); ok {
		t.Error("expected miss for an out-of-range hint")
	}

	// Point outside the map.
	if _, ok := m.FindAdjacentSector(geom.Vec2{X: -5, Y: 4}, 0); ok {
		t.Error("expected miss for a point outside every sector")
	}
}

func TestFindSectorFromOld(t *testing.T) {
	m := loadChain(t)

	// Adjacent case resolves without the fallback.
	if id, ok := m.FindSectorFromOld(geom.Vec2{X: 12, Y: 4}, 0); !ok || id != 1 {
		t.Errorf("expected (1, true), got (%d, %v)", id, ok)
	}

	// Teleport across the map: full-scan fallback.
	if id, ok := m.FindSectorFromOld(geom.Vec2{X: 20, Y: 4}, 0); !ok || id != 2 {
		t.Errorf("expected (2, true), got (%d, %v)", id, ok)
	}

	// Stale hint still recovers.
	if id, ok := m.FindSectorFromOld(geom.Vec2{X: 4, Y: 4}, 99); !ok || id != 0 {
		t.Errorf("expected (0, true), got (%d, %v)", id, ok)
	}

	if _, ok := m.FindSectorFromOld(geom.Vec2{X: 50, Y: 50}, 0); ok {
		t.Error("expected miss for a point outside the map")
	}
}

func TestSectorLookup(t *testing.T) {
	m := loadChain(t)

	if m.SectorCount() != 3 {
		t.Fatalf("SectorCount: expected 3, got %d", m.SectorCount())
	}
	if _, ok := m.Sector(2); !ok {
		t.Error("Sector(2): expected ok")
	}
	if _, ok := m.Sector(3); ok {
		t.Error("Sector(3): expected miss")
	}
}
