package config

import "sync"

// WorldGenSettings holds world generation configuration
type WorldGenSettings struct {
	mu                    sync.RWMutex
	width, height, length int
	seed                  int64
	classic               bool
}

// NewWorldGenSettings returns a 256x64x256 classic map with seed 1.
func NewWorldGenSettings() *WorldGenSettings {
	return &WorldGenSettings{width: 256, height: 64, length: 256, seed: 1, classic: true}
}

// Size returns the map dimensions in blocks.
func (s *WorldGenSettings) Size() (width, height, length int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, s.length
}

// SetSize sets the map dimensions, each clamped to [16, 4096].
func (s *WorldGenSettings) SetSize(width, height, length int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = clampInt(width, 16, 4096)
	s.height = clampInt(height, 16, 4096)
	s.length = clampInt(length, 16, 4096)
}

// Seed returns the terrain seed.
func (s *WorldGenSettings) Seed() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seed
}

// SetSeed sets the terrain seed.
func (s *WorldGenSettings) SetSeed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seed = seed
}

// Classic reports whether maps use the classic Perlin heightmap instead of
// smooth value noise.
func (s *WorldGenSettings) Classic() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.classic
}

// SetClassic selects the heightmap.
func (s *WorldGenSettings) SetClassic(classic bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classic = classic
}
