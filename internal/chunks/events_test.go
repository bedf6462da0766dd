package chunks

import (
	"testing"

	"voxelmesh/internal/lighting"
	"voxelmesh/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

func buildAll(m *Manager) {
	for id := range m.ChunkCount() {
		m.BuildChunk(id)
	}
}

func TestEnvColourChangeRefreshesAll(t *testing.T) {
	for _, v := range []EnvVar{EnvSunColour, EnvShadowColour} {
		w := newWorld(t, 32, 32, 32)
		w.Fill(0, 0, 0, 31, 5, 31, world.BlockStone)
		m, h := newManager(w)
		buildAll(m)
		if h.Live() == 0 {
			t.Fatalf("env %d: nothing built", v)
		}

		if v == EnvSunColour {
			m.light.SetSun(lighting.NewCol(255, 200, 150, 255))
		} else {
			m.light.SetShadow(lighting.NewCol(40, 40, 80, 255))
		}
		m.OnEnvVariableChanged(v)
		if h.Live() != 0 {
			t.Fatalf("env %d: %d buffers left after the change", v, h.Live())
		}
		for id := range m.ChunkCount() {
			c := m.Chunk(id)
			if c.HasData() || c.Empty || c.AllAir || c.PendingDelete {
				t.Fatalf("env %d: chunk %d not reset: %+v", v, id, c)
			}
		}

		m.UpdateFrame(seeAll(mgl32.Vec3{8, 8, 8}), 0.001)
		if h.Live() == 0 {
			t.Fatalf("env %d: chunks not rebuilt", v)
		}
	}
}

func TestBlockDefinitionsChanged(t *testing.T) {
	w := newWorld(t, 32, 32, 32)
	w.Fill(0, 0, 0, 31, 5, 31, world.BlockStone)
	m, h := newManager(w)
	buildAll(m)
	if got := m.light.Height(3, 3); got != 4 {
		t.Fatalf("light height before: got %d, want 4", got)
	}

	// Stone turns into an undefined block, which meshes like air.
	m.blocks.Undefine(world.BlockStone)
	m.OnBlockDefinitionsChanged()
	if h.Live() != 0 {
		t.Fatalf("%d buffers left after the definitions changed", h.Live())
	}
	if got := m.light.Height(3, 3); got >= 0 {
		t.Fatalf("light height after: got %d, want an empty column", got)
	}

	for range 4 {
		m.UpdateFrame(seeAll(mgl32.Vec3{8, 8, 8}), 0.001)
	}
	if h.Live() != 0 {
		t.Fatalf("undefined blocks were meshed into %d buffers", h.Live())
	}
	for id := range m.ChunkCount() {
		if c := m.Chunk(id); !c.Empty || !c.AllAir {
			t.Fatalf("chunk %d: Empty=%v AllAir=%v, want both", id, c.Empty, c.AllAir)
		}
	}
}

type drawFlags [6]bool

func flagsOf(c *ChunkInfo) drawFlags {
	return drawFlags{c.DrawXMin, c.DrawXMax, c.DrawYMin, c.DrawYMax, c.DrawZMin, c.DrawZMax}
}

func TestStillCameraOnlyBuildsDirtyChunks(t *testing.T) {
	m, _ := newManager(floorWorld(t))
	pos := mgl32.Vec3{8, 8, 30}
	for _, y := range []float32{7.9, 8.1, 8} {
		p := mgl32.Vec3{8, y, 30}
		m.UpdateFrame(lookAt(p, mgl32.Vec3{8, y, 0}), 0.001)
	}
	for id := range m.ChunkCount() {
		if !m.Chunk(id).HasData() {
			t.Fatalf("chunk %d not built after the moving frames", id)
		}
	}

	visible := make([]bool, m.ChunkCount())
	flags := make([]drawFlags, m.ChunkCount())
	for id := range m.ChunkCount() {
		visible[id] = m.Chunk(id).Visible
		flags[id] = flagsOf(m.Chunk(id))
	}
	behind := m.ChunkID(0, 0, 3)
	if visible[behind] {
		t.Fatalf("chunk behind the camera is visible")
	}

	dirty := m.ChunkID(1, 0, 0)
	m.RefreshChunk(1, 0, 0)

	// Same position, but the view now faces the other way.
	back := lookAt(pos, mgl32.Vec3{8, 8, 60})
	m.UpdateFrame(back, 0.001)
	if got := m.Stats().LastUpdates; got != 1 {
		t.Fatalf("still frame built %d chunks, want 1", got)
	}
	if c := m.Chunk(dirty); c.PendingDelete || !c.HasData() || c.Visible {
		t.Fatalf("dirty chunk: PendingDelete=%v data=%v Visible=%v", c.PendingDelete, c.HasData(), c.Visible)
	}
	for id := range m.ChunkCount() {
		c := m.Chunk(id)
		if flagsOf(c) != flags[id] {
			t.Fatalf("chunk %d: draw flags changed on a still frame", id)
		}
		if id != dirty && c.Visible != visible[id] {
			t.Fatalf("chunk %d: Visible changed on a still frame", id)
		}
	}

	// A projection change forces the full pass with the new frustum.
	m.OnProjectionChanged()
	m.UpdateFrame(back, 0.001)
	if !m.Chunk(behind).Visible {
		t.Fatalf("chunk now in front of the camera is still hidden")
	}
	if m.Chunk(m.ChunkID(0, 0, 0)).Visible {
		t.Fatalf("chunk now behind the camera is still visible")
	}
}
