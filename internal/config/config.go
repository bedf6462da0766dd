package config

import "sync"

// RenderSettings holds render configuration
type RenderSettings struct {
	mu               sync.RWMutex
	viewDistance     int // in blocks
	userViewDistance int // in blocks, what the user asked for
	maxChunkUpdates  int
	minChunkUpdates  int
	targetFrameTime  float64 // seconds
	smoothLighting   bool
	fpsLimit         int
	fogDensity       float64
}

const (
	MinViewDistance = 16
	MaxViewDistance = 4096

	minChunkUpdatesFloor = 4
	maxChunkUpdatesCap   = 1024
)

// NewRenderSettings returns settings with the default values.
func NewRenderSettings() *RenderSettings {
	return &RenderSettings{
		viewDistance:     512,
		userViewDistance: 512,
		maxChunkUpdates:  30,
		minChunkUpdates:  4,
		targetFrameTime:  1.0/30 + 0.01,
		fpsLimit:         120,
	}
}

var globalRenderSettings = NewRenderSettings()

// Default returns the process-wide settings.
func Default() *RenderSettings { return globalRenderSettings }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ViewDistance returns the effective view distance in blocks.
func (s *RenderSettings) ViewDistance() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewDistance
}

// UserViewDistance returns the view distance the user selected. Chunks are
// only unloaded once they fall well outside it.
func (s *RenderSettings) UserViewDistance() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userViewDistance
}

// SetViewDistance sets both the effective and user view distance.
func (s *RenderSettings) SetViewDistance(dist int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dist = clampInt(dist, MinViewDistance, MaxViewDistance)
	s.viewDistance = dist
	s.userViewDistance = dist
}

// LimitViewDistance lowers the effective view distance without touching the
// user's choice, e.g. when dense fog hides everything past dist. Passing the
// user distance restores it.
func (s *RenderSettings) LimitViewDistance(dist int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewDistance = clampInt(dist, MinViewDistance, s.userViewDistance)
}

// MaxChunkUpdates returns the upper bound of the per-frame build budget.
func (s *RenderSettings) MaxChunkUpdates() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxChunkUpdates
}

// SetMaxChunkUpdates sets the upper bound of the per-frame build budget.
func (s *RenderSettings) SetMaxChunkUpdates(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxChunkUpdates = clampInt(n, max(minChunkUpdatesFloor, s.minChunkUpdates), maxChunkUpdatesCap)
}

// MinChunkUpdates returns the lower bound of the per-frame build budget.
func (s *RenderSettings) MinChunkUpdates() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.minChunkUpdates
}

// TargetFrameTime is the frame time in seconds under which the build
// budget is allowed to grow.
func (s *RenderSettings) TargetFrameTime() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.targetFrameTime
}

// SmoothLighting reports whether the advanced lighting builder is selected.
func (s *RenderSettings) SmoothLighting() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.smoothLighting
}

// SetSmoothLighting selects the advanced lighting builder.
func (s *RenderSettings) SetSmoothLighting(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.smoothLighting = enabled
}

// FPSLimit returns the frame cap, 0 for unlimited.
func (s *RenderSettings) FPSLimit() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fpsLimit
}

// FogDensity returns the exponential fog density, 0 for linear fog ending
// at the view distance.
func (s *RenderSettings) FogDensity() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fogDensity
}

// SetFogDensity sets the exponential fog density. Negative values select
// linear fog.
func (s *RenderSettings) SetFogDensity(d float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fogDensity = max(d, 0)
}
