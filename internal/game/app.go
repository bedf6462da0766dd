package game

import (
	"fmt"
	"image"
	"log"
	"time"

	"voxelmesh/internal/atlas"
	"voxelmesh/internal/config"
	"voxelmesh/internal/gpu"
	"voxelmesh/internal/graphics"
	"voxelmesh/internal/input"
	"voxelmesh/internal/profiling"
	"voxelmesh/internal/registry"
	"voxelmesh/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"golang.org/x/image/font"
)

const (
	flySpeed    = 10
	sprintSpeed = 40
)

var skyColour = [3]float32{0.6, 0.8, 1.0}

// Options are the inputs of a viewer run.
type Options struct {
	World    *world.World
	Blocks   *registry.Table
	Terrain  image.Image
	Settings *config.RenderSettings
	Face     font.Face
	// BlocksPath is where Blocks came from, reread by the reload action.
	BlocksPath string
}

// App is the interactive chunk viewer: a fly camera over one map.
type App struct {
	window       *glfw.Window
	inputManager *input.InputManager
	camera       *graphics.FlyCamera

	session *Session
	gpu     *gpu.GL
	shader  *graphics.ChunkShader
	overlay *graphics.TextOverlay

	fpsLimiter *FPSLimiter
	lastTime   time.Time
	fbW, fbH   int

	frames   int
	fpsStart time.Time
	fps      float64
}

// pageHeight is the tallest atlas page the driver accepts.
func pageHeight() int {
	var maxSize, maxLayers int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &maxSize)
	gl.GetIntegerv(gl.MAX_ARRAY_TEXTURE_LAYERS, &maxLayers)
	return int(min(maxSize, maxLayers))
}

func NewApp(window *glfw.Window, im *input.InputManager, opts Options) (*App, error) {
	shader, err := graphics.NewChunkShader()
	if err != nil {
		return nil, err
	}
	overlay, err := graphics.NewTextOverlay(opts.Face)
	if err != nil {
		return nil, err
	}

	ts := atlas.TileSizeOf(opts.Terrain)
	layout := atlas.NewLayout(atlas.MaxTiles, ts, pageHeight()*ts)
	g := gpu.NewGL(shader.FirstLayer)
	g.UploadAtlas(atlas.Split(opts.Terrain, layout), layout)

	session := NewSession(opts.World, opts.Blocks, layout, g, opts.Settings)
	session.BlocksPath = opts.BlocksPath

	fbW, fbH := window.GetFramebufferSize()
	camera := graphics.NewFlyCamera(fbW, fbH)
	camera.Position = session.SpawnPoint()
	camera.FarPlane = float32(session.Settings.ViewDistance()) * 2
	gl.Viewport(0, 0, int32(fbW), int32(fbH))

	now := time.Now()
	return &App{
		window:       window,
		inputManager: im,
		camera:       camera,
		session:      session,
		gpu:          g,
		shader:       shader,
		overlay:      overlay,
		fpsLimiter:   NewFPSLimiter(session.Settings),
		lastTime:     now,
		fbW:          fbW,
		fbH:          fbH,
		fpsStart:     now,
	}, nil
}

func (a *App) Run() {
	for !a.window.ShouldClose() {
		a.tick()
	}
}

func (a *App) tick() {
	profiling.ResetFrame()
	startTick := time.Now()
	now := time.Now()
	dt := now.Sub(a.lastTime).Seconds()
	a.lastTime = now

	glfw.PollEvents()

	wasPaused := a.session.Paused
	a.session.HandleActions(a.inputManager, a.camera)
	if a.session.Paused != wasPaused {
		a.setCursorCaptured(!a.session.Paused)
	}
	if !a.session.Paused {
		a.move(dt)
	}
	a.session.ApplyFog()
	farPlane := float32(a.session.Settings.ViewDistance()) * 2
	if a.camera.FarPlane != farPlane {
		a.camera.FarPlane = farPlane
		a.session.Chunks.OnProjectionChanged()
	}

	a.session.Frame(a.camera.ChunkCamera(), dt)
	a.render()
	a.window.SwapBuffers()

	if d := time.Since(startTick); d > 50*time.Millisecond {
		log.Printf("Slow frame: %v. Top tasks: %s", d, profiling.TopN(5))
	}

	a.inputManager.PostUpdate() // Clear "JustPressed" flags
	a.countFrame(now)
	a.fpsLimiter.Wait(a.session.Paused)
}

func (a *App) move(dt float64) {
	im := a.inputManager
	var forward, right, up float32
	if im.IsActive(input.ActionMoveForward) {
		forward++
	}
	if im.IsActive(input.ActionMoveBackward) {
		forward--
	}
	if im.IsActive(input.ActionMoveRight) {
		right++
	}
	if im.IsActive(input.ActionMoveLeft) {
		right--
	}
	if im.IsActive(input.ActionFlyUp) {
		up++
	}
	if im.IsActive(input.ActionFlyDown) {
		up--
	}
	speed := float32(flySpeed)
	if im.IsActive(input.ActionSprint) {
		speed = sprintSpeed
	}
	a.camera.Move(dt, forward, right, up, speed)
}

func (a *App) render() {
	defer profiling.Track("game.render")()
	gl.ClearColor(skyColour[0], skyColour[1], skyColour[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)

	settings := a.session.Settings
	a.shader.Frame(a.camera, skyColour, float32(settings.ViewDistance()), float32(settings.FogDensity()))
	a.shader.AlphaTest(true)
	a.session.Chunks.RenderNormal(a.gpu)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)
	a.shader.AlphaTest(false)
	a.session.Chunks.RenderTranslucent(a.gpu)
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)

	if a.session.ShowOverlay {
		a.overlay.Draw(a.session.StatusLines(a.fps, a.camera.Position), a.fbW, a.fbH)
	}
}

func (a *App) countFrame(now time.Time) {
	a.frames++
	if elapsed := now.Sub(a.fpsStart); elapsed >= time.Second {
		a.fps = float64(a.frames) / elapsed.Seconds()
		a.frames = 0
		a.fpsStart = now
		a.window.SetTitle(fmt.Sprintf("voxelview - %.0f fps", a.fps))
	}
}

func (a *App) setCursorCaptured(captured bool) {
	if captured {
		a.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		a.camera.ResetMouse()
	} else {
		a.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

// Close frees the GL resources of the viewer.
func (a *App) Close() {
	a.overlay.Close()
	a.gpu.Close()
	a.shader.Delete()
}
