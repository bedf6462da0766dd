package main

import (
	"flag"
	"log"
	"runtime"

	"voxelmesh/internal/config"
	"voxelmesh/internal/game"
	"voxelmesh/internal/graphics"
	"voxelmesh/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "YAML settings file")
	mapPath := flag.String("map", "", "map file to load instead of generating one")
	blocksPath := flag.String("blocks", "", "block definitions JSON")
	terrainPath := flag.String("terrain", "", "16x16 tile terrain PNG (checker atlas if empty)")
	fontPath := flag.String("font", "", "TTF/OTF font for the overlay (built-in bitmap font if empty)")
	fontSize := flag.Float64("font-size", 16, "overlay font size in pixels")
	width := flag.Int("width", 1280, "window width")
	height := flag.Int("height", 720, "window height")
	samples := flag.Int("msaa", 0, "multisample count, 0 disables")
	vsync := flag.Bool("vsync", false, "sync buffer swaps to the display")
	flag.Parse()

	settings := config.Default()
	gen := config.NewWorldGenSettings()
	if *configPath != "" {
		if err := config.Load(*configPath, settings, gen); err != nil {
			log.Fatalf("config: %v", err)
		}
	}

	w, err := game.LoadWorld(*mapPath, gen)
	if err != nil {
		log.Fatal(err)
	}
	blocks, err := game.LoadBlocks(*blocksPath)
	if err != nil {
		log.Fatal(err)
	}
	terrain, err := game.LoadTerrain(*terrainPath)
	if err != nil {
		log.Fatal(err)
	}
	face, err := graphics.LoadFace(*fontPath, *fontSize)
	if err != nil {
		log.Fatal(err)
	}

	if err := glfw.Init(); err != nil {
		log.Fatal(err)
	}
	defer glfw.Terminate()

	window, err := game.SetupWindow(game.WindowOptions{
		Width:   *width,
		Height:  *height,
		Title:   "voxelview",
		Samples: *samples,
		VSync:   *vsync,
	})
	if err != nil {
		log.Fatal(err)
	}

	im := input.NewInputManager()
	app, err := game.NewApp(window, im, game.Options{
		World:      w,
		Blocks:     blocks,
		Terrain:    terrain,
		Settings:   settings,
		Face:       face,
		BlocksPath: *blocksPath,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer app.Close()
	game.SetupInputHandlers(app)

	app.Run()
}
