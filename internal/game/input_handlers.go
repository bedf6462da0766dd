package game

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func SetupInputHandlers(app *App) {
	window := app.window
	app.inputManager.SetCallbacks(window)

	// Mouse position callback
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if !app.session.Paused {
			app.camera.HandleMouseMovement(xpos, ypos)
		}
	})

	// Framebuffer size callback
	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		if fbWidth == 0 || fbHeight == 0 {
			return
		}
		gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
		app.fbW, app.fbH = fbWidth, fbHeight
		app.camera.Resize(fbWidth, fbHeight)
		app.session.Chunks.OnProjectionChanged()
	})

	// Pause when the window loses focus
	window.SetFocusCallback(func(w *glfw.Window, focused bool) {
		if !focused && !app.session.Paused {
			app.session.Paused = true
			app.setCursorCaptured(false)
		}
	})
}
