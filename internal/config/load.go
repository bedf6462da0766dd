package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk settings layout. Missing keys keep their defaults.
type File struct {
	Render struct {
		ViewDistance    *int     `yaml:"view_distance"`
		MaxChunkUpdates *int     `yaml:"max_chunk_updates"`
		MinChunkUpdates *int     `yaml:"min_chunk_updates"`
		TargetFPS       *float64 `yaml:"target_fps"`
		SmoothLighting  *bool    `yaml:"smooth_lighting"`
		FPSLimit        *int     `yaml:"fps_limit"`
		FogDensity      *float64 `yaml:"fog_density"`
	} `yaml:"render"`
	World struct {
		Width  *int   `yaml:"width"`
		Height *int   `yaml:"height"`
		Length *int   `yaml:"length"`
		Seed   *int64 `yaml:"seed"`
		// Generator is "classic" or "smooth".
		Generator *string `yaml:"generator"`
	} `yaml:"world"`
}

// Load reads a YAML settings file and applies it.
func Load(path string, r *RenderSettings, w *WorldGenSettings) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := Apply(raw, r, w); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Apply decodes YAML settings and overlays them on r and w.
func Apply(raw []byte, r *RenderSettings, w *WorldGenSettings) error {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("settings yaml: %w", err)
	}
	if g := f.World.Generator; g != nil && *g != "classic" && *g != "smooth" {
		return fmt.Errorf("world.generator must be classic or smooth, got %q", *g)
	}
	if f.Render.TargetFPS != nil && *f.Render.TargetFPS <= 0 {
		return fmt.Errorf("render.target_fps must be positive, got %v", *f.Render.TargetFPS)
	}

	if f.Render.FogDensity != nil && *f.Render.FogDensity < 0 {
		return fmt.Errorf("render.fog_density must not be negative, got %v", *f.Render.FogDensity)
	}

	if r != nil {
		rf := f.Render
		if rf.ViewDistance != nil {
			r.SetViewDistance(*rf.ViewDistance)
		}
		r.mu.Lock()
		if rf.MinChunkUpdates != nil {
			r.minChunkUpdates = clampInt(*rf.MinChunkUpdates, minChunkUpdatesFloor, maxChunkUpdatesCap)
		}
		if rf.TargetFPS != nil {
			r.targetFrameTime = 1 / *rf.TargetFPS + 0.01
		}
		if rf.SmoothLighting != nil {
			r.smoothLighting = *rf.SmoothLighting
		}
		if rf.FPSLimit != nil {
			r.fpsLimit = max(*rf.FPSLimit, 0)
		}
		if rf.FogDensity != nil {
			r.fogDensity = *rf.FogDensity
		}
		r.mu.Unlock()
		if rf.MaxChunkUpdates != nil {
			r.SetMaxChunkUpdates(*rf.MaxChunkUpdates)
		} else if r.MaxChunkUpdates() < r.MinChunkUpdates() {
			r.SetMaxChunkUpdates(r.MinChunkUpdates())
		}
	}

	if w != nil {
		width, height, length := w.Size()
		if f.World.Width != nil {
			width = *f.World.Width
		}
		if f.World.Height != nil {
			height = *f.World.Height
		}
		if f.World.Length != nil {
			length = *f.World.Length
		}
		w.SetSize(width, height, length)
		if f.World.Seed != nil {
			w.SetSeed(*f.World.Seed)
		}
		if f.World.Generator != nil {
			w.SetClassic(*f.World.Generator == "classic")
		}
	}
	return nil
}
