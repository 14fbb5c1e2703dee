package world

import "chosenoffset.com/portal9/internal/geom"

// Map owns the full sector graph plus the camera spawn parameters parsed
// from the map file. It is built once by the loader and read-only
// afterwards, so it may be shared freely between frames.
type Map struct {
	sectors []Sector

	SpawnLocation geom.Vec2
	SpawnHeight   float64
	SpawnRotation float64
}

// Sector resolves a SectorID. The second result is false when the id does
// not reference an existing sector.
func (m *Map) Sector(id SectorID) (*Sector, bool) {
	if int(id) >= len(m.sectors) {
		return nil, false
	}
	return &m.sectors[id], true
}

// SectorCount returns the number of sectors in the map.
func (m *Map) SectorCount() int {
	return len(m.sectors)
}

// FindSector locates the sector containing location by linear scan.
// O(sector count); used once at startup and as the teleport fallback.
func (m *Map) FindSector(location geom.Vec2) (SectorID, bool) {
	for i := range m.sectors {
		if m.sectors[i].Contains(location) {
			return SectorID(i), true
		}
	}
	return 0, false
}

// FindAdjacentSector locates the sector containing location among hint and
// the sectors one portal hop away from it. This bounds the per-frame
// movement query to the portal count of the current sector. Returns false
// when hint is invalid or no candidate contains the point.
func (m *Map) FindAdjacentSector(location geom.Vec2, hint SectorID) (SectorID, bool) {
	sector, ok := m.Sector(hint)
	if !ok {
		return 0, false
	}

	if sector.Contains(location) {
		return hint, true
	}

	for i := range sector.Edges {
		e := &sector.Edges[i]
		if e.Kind != EdgePortal {
			continue
		}
		neighbour, ok := m.Sector(e.Target)
		if !ok {
			continue
		}
		if neighbour.Contains(location) {
			return e.Target, true
		}
	}
	return 0, false
}

// FindSectorFromOld tries the adjacency-bounded search first and falls
// back to the full scan, covering teleports and thin-sector tunnelling.
func (m *Map) FindSectorFromOld(location geom.Vec2, old SectorID) (SectorID, bool) {
	if id, ok := m.FindAdjacentSector(location, old); ok {
		return id, true
	}
	return m.FindSector(location)
}
