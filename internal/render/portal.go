package render

import (
	"math"

	"chosenoffset.com/portal9/internal/geom"
	"chosenoffset.com/portal9/internal/world"
)

// nearPlane is the camera-space depth an edge endpoint behind the camera
// is clipped to.
const nearPlane = 0.001

// Debug palette for wall/floor/ceiling faces, keyed by portal traversal
// depth so nested sectors are visually distinguishable. Any shading policy
// could replace this without touching the traversal.
type palette struct {
	wall, floor, ceiling uint32
}

var depthPalettes = []palette{
	{wall: 0xAACCAA, floor: 0xDDFFDD, ceiling: 0x779977},
	{wall: 0xCCAAAA, floor: 0xFFDDDD, ceiling: 0x997777},
	{wall: 0xAAAACC, floor: 0xDDDDFF, ceiling: 0x777799},
}

var deepPalette = palette{wall: 0xBBBBBB, floor: 0xEEEEEE, ceiling: 0x888888}

func paletteAt(depth int) palette {
	if depth < len(depthPalettes) {
		return depthPalettes[depth]
	}
	return deepPalette
}

// Renderer draws portal-based scenes into a Surface. The per-column scan
// buffers are kept on the Renderer and reused across frames; a Renderer
// must therefore not be shared between concurrent render calls.
type Renderer struct {
	ceilBuf     []int
	floorBuf    []int
	invDepthBuf []float64
}

// NewRenderer returns a renderer with empty scan state; buffers grow to
// the surface width on first use.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// InvDepth returns the inverse perspective distance recorded for each
// screen column during the last Render call. Useful for depth-aware
// overlays; the renderer itself does not read it back.
func (r *Renderer) InvDepth() []float64 {
	return r.invDepthBuf
}

// renderContext carries the state shared by one recursive traversal: the
// target surface, the read-only map and camera, the visited-sector path,
// and the per-column scan buffers. There is exactly one context per Render
// call; the scan buffers are never duplicated per recursion level.
type renderContext struct {
	surface *Surface
	m       *world.Map
	camera  *Camera

	// visitStack is the ordered path of sector ids from the root to the
	// current call. Deliberately a stack and not a set: a sector may be
	// revisited from a sibling portal branch within the same frame, only
	// cycles along a single path are cut.
	visitStack []world.SectorID

	ceilBuf     []int
	floorBuf    []int
	invDepthBuf []float64
}

func (ctx *renderContext) onPath(id world.SectorID) bool {
	for _, visited := range ctx.visitStack {
		if visited == id {
			return true
		}
	}
	return false
}

// Render rasterizes the scene visible from camera, which must currently be
// inside sector root, into surface. An out-of-range root id renders
// nothing; the call is otherwise infallible and always runs to completion.
func (r *Renderer) Render(surface *Surface, m *world.Map, camera *Camera, root world.SectorID) {
	if _, ok := m.Sector(root); !ok {
		return
	}

	w := surface.W
	if cap(r.ceilBuf) < w {
		r.ceilBuf = make([]int, w)
		r.floorBuf = make([]int, w)
		r.invDepthBuf = make([]float64, w)
	}
	r.ceilBuf = r.ceilBuf[:w]
	r.floorBuf = r.floorBuf[:w]
	r.invDepthBuf = r.invDepthBuf[:w]
	for x := 0; x < w; x++ {
		r.ceilBuf[x] = 0
		r.floorBuf[x] = surface.H
		r.invDepthBuf[x] = 0
	}

	ctx := renderContext{
		surface:     surface,
		m:           m,
		camera:      camera,
		ceilBuf:     r.ceilBuf,
		floorBuf:    r.floorBuf,
		invDepthBuf: r.invDepthBuf,
	}
	ctx.renderSector(root, 0, w)
}

// renderSector rasterizes one sector's edges into the column range
// [xBegin, xEnd) and recurses through its portals. Each recursion either
// narrows the column range or is cut by the path check, and the path
// length is bounded by the sector count, so the traversal terminates.
func (ctx *renderContext) renderSector(id world.SectorID, xBegin, xEnd int) {
	sector, ok := ctx.m.Sector(id)
	if !ok {
		return
	}

	surface := ctx.surface
	width := surface.W
	height := surface.H
	stride := surface.Stride
	pal := paletteAt(len(ctx.visitStack))

	for ei := range sector.Edges {
		edge := &sector.Edges[ei]

		p0 := ctx.camera.ToSpace(edge.P0)
		p1 := ctx.camera.ToSpace(edge.P1)
		if p0.X > p1.X {
			p0, p1 = p1, p0
		}

		// Near-plane clip. An endpoint behind the camera is slid along
		// the edge to the nearPlane depth; a fully-behind edge is gone.
		if p0.Y <= 0 {
			if p1.Y <= 0 {
				continue
			}
			p0 = geom.Vec2{X: clipNearX(p0, p1), Y: nearPlane}
		} else if p1.Y <= 0 {
			p1 = geom.Vec2{X: clipNearX(p0, p1), Y: nearPlane}
		}

		// Perspective divide into pixel columns, clamped to the column
		// range this call inherited through its portal.
		x0 := clampInt(screenX(p0, width), xBegin, xEnd)
		x1 := clampInt(screenX(p1, width), xBegin, xEnd)
		xp0, xp1 := x0, x1
		if xp0 > xp1 {
			xp0, xp1 = xp1, xp0
		}

		// Per-edge invariants: the camera-space edge normal and the
		// reciprocal of the camera's perpendicular distance to the edge
		// line. Skip the edge if the camera lies on that line.
		edgeNorm := geom.Vec2{X: p1.Y - p0.Y, Y: p0.X - p1.X}.Normalized()
		normDotP0 := math.Abs(edgeNorm.Dot(p0))
		if normDotP0 < 1e-12 {
			continue
		}
		invEdgeDistance := 1 / normDotP0

		var neighbour *world.Sector
		if edge.Kind == world.EdgePortal {
			neighbour, _ = ctx.m.Sector(edge.Target)
		}

		for x := xp0; x < xp1; x++ {
			// View ray for this column, inverting the projection's
			// column mapping.
			pixelDir := geom.Vec2{
				X: float64(x)/float64(width)*2 - 1,
				Y: 1,
			}
			invDistance := math.Abs(pixelDir.Dot(edgeNorm)) * invEdgeDistance

			toScreenRow := func(worldHeight float64) int {
				row := int(((ctx.camera.Height-worldHeight)*invDistance + 1) / 2 * float64(height))
				return clampInt(row, 0, height)
			}

			bufCeil := ctx.ceilBuf[x]
			bufFloor := ctx.floorBuf[x]

			// Project this sector's height band and clamp it to the
			// column's still-open vertical range; everything above and
			// below is already owned by nearer geometry.
			ceilY := clampInt(toScreenRow(sector.Ceiling), bufCeil, bufFloor)
			floorY := clampInt(toScreenRow(sector.Floor), bufCeil, bufFloor)

			ctx.invDepthBuf[x] = invDistance

			fillColumn(surface.Pix, x, stride, bufCeil, ceilY, pal.ceiling)

			if neighbour != nil {
				// Portal: paint only the step bands between this
				// sector's band and the neighbour's, and shrink the
				// open range so the recursive call stays inside the
				// opening.
				neighbourCeilY := clampInt(toScreenRow(neighbour.Ceiling), ceilY, floorY)
				neighbourFloorY := clampInt(toScreenRow(neighbour.Floor), ceilY, floorY)

				fillColumn(surface.Pix, x, stride, ceilY, neighbourCeilY, pal.wall)
				fillColumn(surface.Pix, x, stride, neighbourFloorY, floorY, pal.wall)

				ctx.ceilBuf[x] = neighbourCeilY
				ctx.floorBuf[x] = neighbourFloorY
			} else {
				fillColumn(surface.Pix, x, stride, ceilY, floorY, pal.wall)
			}

			fillColumn(surface.Pix, x, stride, floorY, bufFloor, pal.floor)
		}

		// Deferred neighbour rendering. The current sector joins the
		// path before the cycle check so a portal back onto the path
		// (including a self-portal) acts as an opaque boundary.
		if edge.Kind == world.EdgePortal {
			ctx.visitStack = append(ctx.visitStack, id)
			if !ctx.onPath(edge.Target) && xp1 > xp0 {
				ctx.renderSector(edge.Target, xp0, xp1)
			}
			ctx.visitStack = ctx.visitStack[:len(ctx.visitStack)-1]
		}
	}
}

// clipNearX returns the x coordinate of the edge p0-p1 at zero depth,
// by linear interpolation.
func clipNearX(p0, p1 geom.Vec2) float64 {
	return p0.X - p0.Y*(p1.X-p0.X)/(p1.Y-p0.Y)
}

// screenX projects a camera-space point to a pixel column.
func screenX(p geom.Vec2, width int) int {
	return int((p.X/p.Y*0.5 + 0.5) * float64(width))
}

// fillColumn paints rows [y0, y1) of column x. The caller has already
// clamped the range to the surface, so the loop indexes without checks.
func fillColumn(pix []uint32, x, stride, y0, y1 int, color uint32) {
	for i := y0*stride + x; i < y1*stride+x; i += stride {
		pix[i] = color
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
