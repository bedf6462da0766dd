package game

import (
	"fmt"
	"log"
	"math"

	"voxelmesh/internal/atlas"
	"voxelmesh/internal/chunks"
	"voxelmesh/internal/config"
	"voxelmesh/internal/gpu"
	"voxelmesh/internal/graphics"
	"voxelmesh/internal/input"
	"voxelmesh/internal/lighting"
	"voxelmesh/internal/physics"
	"voxelmesh/internal/profiling"
	"voxelmesh/internal/registry"
	"voxelmesh/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Session is one loaded map together with its chunk manager. It holds no GL
// state so it also runs against headless buffers.
type Session struct {
	World    *world.World
	Blocks   *registry.Table
	Light    *lighting.Basic
	Settings *config.RenderSettings
	Chunks   *chunks.Manager

	Paused        bool
	ShowOverlay   bool
	ShowProfiling bool
	// Selected is the block placed with the place action.
	Selected world.BlockID
	// BlocksPath is reread by the reload action. Empty means built-in.
	BlocksPath string

	frozen   bool
	frozenVP mgl32.Mat4
	visible  int
}

func NewSession(w *world.World, blocks *registry.Table, layout atlas.Layout, buffers gpu.Buffers, settings *config.RenderSettings) *Session {
	if settings == nil {
		settings = config.Default()
	}
	light := lighting.NewBasic(w, blocks)
	m := chunks.NewManager(chunks.Source{
		World:   w,
		Blocks:  blocks,
		Light:   light,
		Buffers: buffers,
		Layout:  layout,
	}, settings)
	return &Session{
		World:       w,
		Blocks:      blocks,
		Light:       light,
		Settings:    settings,
		Chunks:      m,
		ShowOverlay: true,
		Selected:    world.BlockStone,
	}
}

// SpawnPoint returns a position just above the middle column of the map.
func (s *Session) SpawnPoint() mgl32.Vec3 {
	x, z := s.World.Width/2, s.World.Length/2
	y := max(s.Light.Height(x, z), 0) + 3
	return mgl32.Vec3{float32(x) + 0.5, float32(y), float32(z) + 0.5}
}

// HandleActions applies the viewer actions pressed this frame.
func (s *Session) HandleActions(im *input.InputManager, cam *graphics.FlyCamera) {
	if im.JustPressed(input.ActionPause) {
		s.Paused = !s.Paused
	}
	if s.Paused {
		return
	}

	if im.JustPressed(input.ActionToggleSmoothLighting) {
		smooth := !s.Settings.SmoothLighting()
		s.Settings.SetSmoothLighting(smooth)
		s.Chunks.OnLightingModeChanged(smooth)
		log.Printf("smooth lighting: %v", smooth)
	}
	if im.JustPressed(input.ActionToggleFrustumFreeze) {
		s.frozen = !s.frozen
		s.frozenVP = cam.ViewProj()
		log.Printf("frustum frozen: %v", s.frozen)
	}
	if im.JustPressed(input.ActionRefreshChunks) {
		s.Chunks.Refresh()
	}
	if im.JustPressed(input.ActionViewDistanceUp) {
		s.setViewDistance(s.Settings.UserViewDistance() * 2)
	}
	if im.JustPressed(input.ActionViewDistanceDown) {
		s.setViewDistance(s.Settings.UserViewDistance() / 2)
	}
	if im.JustPressed(input.ActionToggleProfiling) {
		s.ShowProfiling = !s.ShowProfiling
	}
	if im.JustPressed(input.ActionToggleOverlay) {
		s.ShowOverlay = !s.ShowOverlay
	}
	if im.JustPressed(input.ActionReloadBlocks) {
		if err := ReloadBlocks(s, s.BlocksPath); err != nil {
			log.Printf("reload blocks: %v", err)
		}
	}

	if im.JustPressed(input.ActionBreakBlock) {
		s.BreakBlock(cam.Position, cam.Front())
	}
	if im.JustPressed(input.ActionPlaceBlock) {
		s.PlaceBlock(cam.Position, cam.Front())
	}
	if im.JustPressed(input.ActionPickBlock) {
		s.PickBlock(cam.Position, cam.Front())
	}
}

func (s *Session) setViewDistance(dist int) {
	s.Settings.SetViewDistance(dist)
	s.Chunks.OnViewDistanceChanged()
	log.Printf("view distance: %d", s.Settings.ViewDistance())
}

// fogCutoff is the fog factor past which nothing is worth drawing.
const fogCutoff = 0.05

// ApplyFog limits the view distance to where exponential fog hides the
// scene, or restores the user view distance for linear fog.
func (s *Session) ApplyFog() {
	dist := s.Settings.UserViewDistance()
	if d := s.Settings.FogDensity(); d > 0 {
		dist = min(dist, int(math.Log(fogCutoff)/-d))
	}
	before := s.Settings.ViewDistance()
	s.Settings.LimitViewDistance(dist)
	if s.Settings.ViewDistance() != before {
		s.Chunks.OnViewDistanceChanged()
	}
}

func (s *Session) raycast(eye, dir mgl32.Vec3) physics.RaycastResult {
	return physics.Raycast(eye, dir, physics.MinReachDistance, physics.MaxReachDistance, s.World, s.Blocks)
}

// BreakBlock replaces the targeted block with air.
func (s *Session) BreakBlock(eye, dir mgl32.Vec3) bool {
	r := s.raycast(eye, dir)
	if !r.Hit {
		return false
	}
	p := r.HitPosition
	s.Chunks.UpdateBlock(p[0], p[1], p[2], world.BlockAir)
	return true
}

// PlaceBlock puts the selected block in front of the targeted face. Cells
// holding something pickable are left alone.
func (s *Session) PlaceBlock(eye, dir mgl32.Vec3) bool {
	r := s.raycast(eye, dir)
	if !r.Hit {
		return false
	}
	p := r.AdjacentPosition
	if !s.World.Contains(p[0], p[1], p[2]) || physics.CanPick(s.Blocks, s.World.GetBlock(p[0], p[1], p[2])) {
		return false
	}
	s.Chunks.UpdateBlock(p[0], p[1], p[2], s.Selected)
	return true
}

// PickBlock selects the targeted block for placing.
func (s *Session) PickBlock(eye, dir mgl32.Vec3) bool {
	r := s.raycast(eye, dir)
	if !r.Hit {
		return false
	}
	p := r.HitPosition
	s.Selected = s.World.GetBlock(p[0], p[1], p[2])
	return true
}

// Frame runs the chunk lifecycle for one frame. While the frustum is frozen
// culling keeps using the view from the moment it was frozen.
func (s *Session) Frame(cam chunks.Camera, dt float64) []*chunks.ChunkInfo {
	if s.frozen {
		cam.ViewProj = s.frozenVP
	}
	visible := s.Chunks.UpdateFrame(cam, dt)
	s.visible = len(visible)
	return visible
}

// StatusLines describes the session for the text overlay.
func (s *Session) StatusLines(fps float64, pos mgl32.Vec3) []string {
	st := s.Chunks.Stats()
	lines := []string{
		fmt.Sprintf("%.0f fps", fps),
		fmt.Sprintf("pos %.1f %.1f %.1f", pos.X(), pos.Y(), pos.Z()),
		fmt.Sprintf("chunks %d drawn, %d meshed, %d empty of %d", s.visible, st.WithData, st.Empty, st.Chunks),
		fmt.Sprintf("updates %d/%d, %d total", st.LastUpdates, st.Target, st.TotalUpdates),
		fmt.Sprintf("view %d, smooth %v, block %s", s.Settings.ViewDistance(), s.Settings.SmoothLighting(), s.Blocks.Names[s.Selected]),
	}
	if s.frozen {
		lines = append(lines, "frustum frozen")
	}
	if s.ShowProfiling {
		lines = append(lines, profiling.TopN(5))
	}
	if s.Paused {
		lines = append(lines, "paused")
	}
	return lines
}
