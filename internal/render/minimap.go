package render

import (
	"chosenoffset.com/portal9/internal/world"
)

// minimapScale is the pixels-per-world-unit scale of the minimap view.
const minimapScale = 6.0

// Minimap base colors per edge kind, brightened by a per-sector scale.
const (
	minimapWallColor   = 0x001100
	minimapPortalColor = 0x110000
)

// RenderMinimap draws a camera-space wire view of the camera's sector and
// its one-hop portal neighbours into surface, with a player marker at the
// center. Non-recursive debug path: it reuses the surface line primitives
// and does no occlusion.
func RenderMinimap(surface *Surface, m *world.Map, camera *Camera, cameraSector world.SectorID) {
	drawSector := func(sector *world.Sector, colorScale uint32) {
		for i := range sector.Edges {
			edge := &sector.Edges[i]

			p0 := camera.ToSpace(edge.P0)
			p1 := camera.ToSpace(edge.P1)

			var edgeColor uint32
			if edge.Kind == world.EdgePortal {
				edgeColor = minimapPortalColor * colorScale
			} else {
				edgeColor = minimapWallColor * colorScale
			}

			surface.DrawLine(
				surface.W/2+int(p0.X*minimapScale),
				surface.H/2-int(p0.Y*minimapScale),
				surface.W/2+int(p1.X*minimapScale),
				surface.H/2-int(p1.Y*minimapScale),
				edgeColor,
			)
		}
	}

	if sector, ok := m.Sector(cameraSector); ok {
		for i := range sector.Edges {
			edge := &sector.Edges[i]
			if edge.Kind != world.EdgePortal {
				continue
			}
			if neighbour, ok := m.Sector(edge.Target); ok {
				drawSector(neighbour, 6)
			}
		}
		drawSector(sector, 15)
	}

	// Player marker: a dot at the view origin with a heading tick. The
	// view is camera-space, so the heading is always straight up.
	x0, y0 := surface.W/2, surface.H/2
	surface.DrawBar(x0-1, y0-1, x0+2, y0+2, 0xFFFFFF)
	surface.DrawLine(x0, y0, x0, y0-5, 0xFFFFFF)
}
