package game

import (
	"fmt"
	"log"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowOptions describes the viewer window.
type WindowOptions struct {
	Width, Height int
	Title         string
	// Samples is the MSAA sample count, 0 for none.
	Samples int
	// VSync syncs buffer swaps to the display on top of the FPS limiter.
	VSync bool
}

// SetupWindow opens the viewer window with a GL 4.1 core context current on
// the calling thread. The cursor is captured for the fly camera.
func SetupWindow(opts WindowOptions) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Samples, opts.Samples)

	window, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create %dx%d window: %w", opts.Width, opts.Height, err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, fmt.Errorf("init gl: %w", err)
	}
	log.Printf("GL %s on %s", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))

	if opts.Samples > 0 {
		gl.Enable(gl.MULTISAMPLE)
	}
	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	return window, nil
}
