package game

import (
	"time"

	"voxelmesh/internal/config"
)

const (
	// pausedFPS caps the frame rate while the viewer is paused.
	pausedFPS = 30
	// spinWindow is the tail of each wait spent spinning, since sleeps
	// overshoot by about this much.
	spinWindow = 200 * time.Microsecond
)

// FPSLimiter paces frames against a fixed schedule. A frame that runs long
// shortens the next wait instead of shifting every later frame.
type FPSLimiter struct {
	settings *config.RenderSettings
	deadline time.Time
}

// NewFPSLimiter creates a limiter reading its cap from settings.
func NewFPSLimiter(settings *config.RenderSettings) *FPSLimiter {
	if settings == nil {
		settings = config.Default()
	}
	return &FPSLimiter{settings: settings}
}

func (f *FPSLimiter) interval(paused bool) time.Duration {
	fps := f.settings.FPSLimit()
	if paused {
		fps = pausedFPS
	}
	if fps <= 0 {
		return 0
	}
	return time.Second / time.Duration(fps)
}

// Wait blocks until the current frame's slot ends and returns how long it
// idled. With no cap it returns at once.
func (f *FPSLimiter) Wait(paused bool) time.Duration {
	step := f.interval(paused)
	if step == 0 {
		f.deadline = time.Time{}
		return 0
	}

	now := time.Now()
	switch {
	case f.deadline.IsZero():
		f.deadline = now.Add(step)
	case now.Sub(f.deadline) > step:
		// More than a whole frame behind after a hitch: drop the backlog.
		f.deadline = now.Add(step)
	default:
		f.deadline = f.deadline.Add(step)
	}

	idle := time.Until(f.deadline)
	if idle <= 0 {
		return 0
	}
	if idle > spinWindow {
		time.Sleep(idle - spinWindow)
	}
	for time.Now().Before(f.deadline) {
	}
	return idle
}
