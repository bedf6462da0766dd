package game

import (
	"testing"
	"time"

	"voxelmesh/internal/config"
)

func TestFPSLimiterUnlimited(t *testing.T) {
	s := config.NewRenderSettings()
	if err := config.Apply([]byte("render:\n  fps_limit: 0\n"), s, nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	f := NewFPSLimiter(s)
	start := time.Now()
	for range 100 {
		if idle := f.Wait(false); idle != 0 {
			t.Fatalf("unlimited wait idled %v", idle)
		}
	}
	if d := time.Since(start); d > 50*time.Millisecond {
		t.Fatalf("unlimited waits took %v", d)
	}
}

func TestFPSLimiterPaces(t *testing.T) {
	s := config.NewRenderSettings()
	if err := config.Apply([]byte("render:\n  fps_limit: 200\n"), s, nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	f := NewFPSLimiter(s)
	start := time.Now()
	for range 5 {
		f.Wait(false)
	}
	// Five frames at 5ms each.
	if d := time.Since(start); d < 20*time.Millisecond {
		t.Fatalf("5 frames at 200 fps took only %v", d)
	}
}

func TestFPSLimiterDropsBacklog(t *testing.T) {
	s := config.NewRenderSettings()
	if err := config.Apply([]byte("render:\n  fps_limit: 200\n"), s, nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	f := NewFPSLimiter(s)
	f.Wait(false)
	// A hitch of several frames must not be repaid with frames that never wait.
	time.Sleep(30 * time.Millisecond)
	f.Wait(false)
	if idle := f.Wait(false); idle == 0 {
		t.Fatalf("frame after a hitch did not wait")
	}
}

func TestFPSLimiterPausedCap(t *testing.T) {
	s := config.NewRenderSettings()
	if err := config.Apply([]byte("render:\n  fps_limit: 0\n"), s, nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	f := NewFPSLimiter(s)
	if got := f.interval(true); got != time.Second/pausedFPS {
		t.Fatalf("paused interval: got %v, want %v", got, time.Second/pausedFPS)
	}
	if got := f.interval(false); got != 0 {
		t.Fatalf("unlimited interval: got %v, want 0", got)
	}
}
