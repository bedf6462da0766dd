package game

import (
	"fmt"
	"image"
	"log"

	"voxelmesh/internal/atlas"
	"voxelmesh/internal/config"
	"voxelmesh/internal/registry"
	"voxelmesh/internal/world"
)

// LoadWorld reads mapPath, or generates a map from gen when the path is empty.
func LoadWorld(mapPath string, gen *config.WorldGenSettings) (*world.World, error) {
	if mapPath != "" {
		w, err := world.LoadMap(mapPath)
		if err != nil {
			return nil, fmt.Errorf("load map: %w", err)
		}
		log.Printf("loaded %s (%dx%dx%d)", mapPath, w.Width, w.Height, w.Length)
		return w, nil
	}
	width, height, length := gen.Size()
	w, err := world.New(width, height, length)
	if err != nil {
		return nil, fmt.Errorf("new map: %w", err)
	}
	g := world.NewGenerator(gen.Seed())
	if gen.Classic() {
		g = world.NewClassicGenerator(gen.Seed())
	}
	g.Populate(w)
	log.Printf("generated %dx%dx%d map with seed %d", width, height, length, gen.Seed())
	return w, nil
}

// LoadBlocks reads block definitions, or returns the built-in set when the
// path is empty.
func LoadBlocks(path string) (*registry.Table, error) {
	if path == "" {
		return registry.Default(), nil
	}
	defs, err := registry.LoadDefinitions(path)
	if err != nil {
		return nil, fmt.Errorf("load blocks: %w", err)
	}
	return registry.NewTable(defs), nil
}

// ReloadBlocks replaces the block table of s with the definitions at path,
// or the built-in set when path is empty, and rebuilds every chunk.
func ReloadBlocks(s *Session, path string) error {
	blocks, err := LoadBlocks(path)
	if err != nil {
		return err
	}
	*s.Blocks = *blocks
	s.Chunks.OnBlockDefinitionsChanged()
	if path == "" {
		path = "built-in definitions"
	}
	log.Printf("reloaded blocks from %s", path)
	return nil
}

// LoadTerrain reads a terrain image, or draws a checker atlas with 16 pixel
// tiles when the path is empty.
func LoadTerrain(path string) (image.Image, error) {
	if path == "" {
		return atlas.Checker(16), nil
	}
	return atlas.LoadTerrain(path)
}
