package main

import (
	"bytes"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"chosenoffset.com/portal9/internal/game"
	"chosenoffset.com/portal9/internal/world"
	"chosenoffset.com/portal9/maps"
)

func main() {
	mapPath := flag.String("map", "", "path to a .wmt map file (default: built-in map)")
	width := flag.Int("width", 800, "internal render width in pixels")
	height := flag.Int("height", 600, "internal render height in pixels")
	flag.Parse()

	var (
		gameMap *world.Map
		err     error
	)
	if *mapPath != "" {
		gameMap, err = world.LoadMapFile(*mapPath)
	} else {
		gameMap, err = world.ParseMap(bytes.NewReader(maps.Default))
	}
	if err != nil {
		log.Fatalf("Failed to load map: %v", err)
	}
	log.Printf("Loaded map with %d sectors", gameMap.SectorCount())

	g, err := game.New(gameMap, *width, *height)
	if err != nil {
		log.Fatalf("Failed to set up game: %v", err)
	}

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("portal9")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
