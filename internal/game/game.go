package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"chosenoffset.com/portal9/internal/render"
	"chosenoffset.com/portal9/internal/world"
)

// Movement tuning, in world units per second and radians per second.
const (
	moveSpeed = 3.0
	turnSpeed = 2.0
	liftSpeed = 3.0

	// probeDT is the fixed timestep used for the sector-tracking probe
	// position, independent of the frame delta, so a slow frame cannot
	// jump the probe across a thin sector.
	probeDT = 0.01
)

// Game is the ebiten host for the portal renderer: it integrates input
// into the camera pose, tracks the camera's sector across frames and
// orchestrates the per-frame software render.
type Game struct {
	screenWidth  int
	screenHeight int

	gameMap      *world.Map
	camera       *render.Camera
	cameraSector world.SectorID

	renderer *render.Renderer
	surface  *render.Surface
	frame    *ebiten.Image
	rgba     []byte

	showMinimap bool
}

// New creates a game rendering at the given internal resolution, with the
// camera placed at the map's spawn point. Fails if the spawn point lies in
// no sector.
func New(gameMap *world.Map, screenWidth, screenHeight int) (*Game, error) {
	camera := render.NewCamera()
	camera.SetLocation(gameMap.SpawnLocation, gameMap.SpawnHeight, gameMap.SpawnRotation)

	sectorID, ok := gameMap.FindSector(camera.Location)
	if !ok {
		return nil, fmt.Errorf("camera spawn (%g, %g) is outside every sector", camera.Location.X, camera.Location.Y)
	}

	pix := make([]uint32, screenWidth*screenHeight)
	return &Game{
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		gameMap:      gameMap,
		camera:       camera,
		cameraSector: sectorID,
		renderer:     render.NewRenderer(),
		surface:      render.NewSurface(pix, screenWidth, screenHeight, screenWidth),
		rgba:         make([]byte, screenWidth*screenHeight*4),
		showMinimap:  true,
	}, nil
}

// Update integrates one tick of input into the camera pose.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.showMinimap = !g.showMinimap
	}

	dt := 1.0 / float64(ebiten.TPS())

	ox := axis(ebiten.KeyA, ebiten.KeyD)
	oy := axis(ebiten.KeyW, ebiten.KeyS)
	oz := axis(ebiten.KeyR, ebiten.KeyF)
	strafe := ebiten.IsKeyPressed(ebiten.KeyAlt)

	if ox == 0 && oy == 0 && oz == 0 {
		return nil
	}

	delta := g.camera.Direction.Scale(oy * moveSpeed)
	newRotation := g.camera.Rotation
	if strafe {
		delta = delta.Sub(g.camera.Right.Scale(ox * moveSpeed))
	} else {
		newRotation += ox * turnSpeed * dt
	}
	newHeight := g.camera.Height + oz*liftSpeed*dt

	newLocation := g.camera.Location.Add(delta.Scale(dt))
	probeLocation := g.camera.Location.Add(delta.Scale(probeDT))

	// A probe miss means the move would leave the map: reject it and
	// keep the previous pose. Never treated as an error.
	newSectorID, ok := g.gameMap.FindAdjacentSector(probeLocation, g.cameraSector)
	if !ok {
		return nil
	}
	newSector, ok := g.gameMap.Sector(newSectorID)
	if !ok {
		return nil
	}

	if newSectorID == g.cameraSector {
		g.camera.SetLocation(newLocation, clampFloat(newHeight, newSector.Floor, newSector.Ceiling), newRotation)
		return nil
	}

	// Crossing into a neighbour sector is only allowed when the camera
	// height fits its floor/ceiling band; otherwise the portal edge acts
	// as a wall for movement.
	if g.camera.Height >= newSector.Floor && g.camera.Height <= newSector.Ceiling {
		g.camera.SetLocation(newLocation, clampFloat(newHeight, newSector.Floor, newSector.Ceiling), newRotation)
		g.cameraSector = newSectorID
	}
	return nil
}

// Draw renders the frame: full portal render, minimap inset, blit, debug
// overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Fill(0x000000)
	g.renderer.Render(g.surface, g.gameMap, g.camera, g.cameraSector)

	if g.showMinimap {
		inset := g.surface.Sub(g.screenWidth/3, g.screenHeight/3)
		render.RenderMinimap(inset, g.gameMap, g.camera, g.cameraSector)
	}

	g.blit(screen)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f", ebiten.ActualFPS()), 4, g.screenHeight/3+4)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("X: %.2f  Y: %.2f", g.camera.Location.X, g.camera.Location.Y), 4, g.screenHeight/3+18)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("H: %.2f  R: %.2f", g.camera.Height, g.camera.Rotation), 4, g.screenHeight/3+32)
}

// Layout returns the game's logical screen size; ebiten scales it to the
// window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenWidth, g.screenHeight
}

// blit unpacks the 0xRRGGBB software surface into RGBA bytes and uploads
// them to the screen image.
func (g *Game) blit(screen *ebiten.Image) {
	for i, c := range g.surface.Pix {
		g.rgba[i*4+0] = byte(c >> 16)
		g.rgba[i*4+1] = byte(c >> 8)
		g.rgba[i*4+2] = byte(c)
		g.rgba[i*4+3] = 0xFF
	}
	if g.frame == nil {
		g.frame = ebiten.NewImage(g.screenWidth, g.screenHeight)
	}
	g.frame.WritePixels(g.rgba)
	screen.DrawImage(g.frame, nil)
}

// axis returns +1, -1 or 0 from a pair of opposing keys.
func axis(positive, negative ebiten.Key) float64 {
	v := 0.0
	if ebiten.IsKeyPressed(positive) {
		v++
	}
	if ebiten.IsKeyPressed(negative) {
		v--
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
