// Command chunkstats flies a scripted camera over a map without a window and
// reports what the chunk manager built, unloaded and drew.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"voxelmesh/internal/atlas"
	"voxelmesh/internal/chunks"
	"voxelmesh/internal/config"
	"voxelmesh/internal/game"
	"voxelmesh/internal/gpu"
	"voxelmesh/internal/graphics"
	"voxelmesh/internal/profiling"
	"voxelmesh/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

func main() {
	configPath := flag.String("config", "", "YAML settings file")
	mapPath := flag.String("map", "", "map file to load instead of generating one")
	blocksPath := flag.String("blocks", "", "block definitions JSON")
	savePath := flag.String("save", "", "write the map to this file before flying")
	frames := flag.Int("frames", 600, "frames to simulate")
	fps := flag.Float64("fps", 60, "simulated frame rate")
	pageTiles := flag.Int("page-tiles", 16, "tiles per atlas page")
	every := flag.Int("every", 60, "log stats every n frames")
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
	if *savePath != "" {
		if err := world.SaveMap(*savePath, w); err != nil {
			log.Fatalf("save map: %v", err)
		}
		log.Printf("saved %s", *savePath)
	}
	blocks, err := game.LoadBlocks(*blocksPath)
	if err != nil {
		log.Fatal(err)
	}

	buffers := gpu.NewHeadless()
	layout := atlas.NewLayout(atlas.MaxTiles, 16, 16**pageTiles)
	s := game.NewSession(w, blocks, layout, buffers, settings)

	spawn := s.SpawnPoint()
	cam := graphics.NewFlyCamera(1280, 720)
	start := time.Now()
	dt := 1 / *fps
	for i := range *frames {
		profiling.ResetFrame()
		visible := s.Frame(flightPath(cam, spawn, w, float64(i)*dt), dt)
		if *every > 0 && i%*every == 0 {
			st := s.Chunks.Stats()
			log.Printf("frame %d: drew %d, meshed %d/%d, empty %d, target %d, built %d, buffers %d",
				i, len(visible), st.WithData, st.Chunks, st.Empty, st.Target, st.LastUpdates, buffers.Live())
		}
	}

	st := s.Chunks.Stats()
	log.Printf("%d frames in %v, %d chunk builds, %d buffers holding %d vertices",
		*frames, time.Since(start).Round(time.Millisecond), st.TotalUpdates, buffers.Live(), buffers.LiveVertices())
	log.Printf("bucket occupancy: %s", occupancy(s.Chunks))
	log.Printf("last frame: %s", profiling.TopN(5))
}

// flightPath circles the map centre once a minute, looking ahead.
func flightPath(cam *graphics.FlyCamera, spawn mgl32.Vec3, w *world.World, t float64) chunks.Camera {
	radius := float64(min(w.Width, w.Length)) / 3
	angle := t * 2 * math.Pi / 60
	cam.Position = mgl32.Vec3{
		float32(float64(w.Width)/2 + radius*math.Cos(angle)),
		spawn.Y() + 8,
		float32(float64(w.Length)/2 + radius*math.Sin(angle)),
	}
	cam.Yaw = mgl32.RadToDeg(float32(angle)) + 90
	cam.Pitch = -15
	return cam.ChunkCamera()
}

func occupancy(m *chunks.Manager) string {
	parts := make([]string, 0, m.UsedAtlases())
	for i := range m.UsedAtlases() {
		parts = append(parts, fmt.Sprintf("%d:%d/%d", i, m.NormalOccupancy(i), m.TranslucentOccupancy(i)))
	}
	return strings.Join(parts, " ")
}
