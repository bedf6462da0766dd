package chunks

import (
	"fmt"
	"log"

	"voxelmesh/internal/atlas"
	"voxelmesh/internal/config"
	"voxelmesh/internal/gpu"
	"voxelmesh/internal/lighting"
	"voxelmesh/internal/meshing"
	"voxelmesh/internal/registry"
	"voxelmesh/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// initialTarget is the chunk build budget of the first frame.
const initialTarget = 12

// Source bundles the collaborators of a Manager.
type Source struct {
	// World may be nil until the first OnNewMapLoaded.
	World   *world.World
	Blocks  *registry.Table
	Light   *lighting.Basic
	Buffers gpu.Buffers
	Layout  atlas.Layout
}

// Manager decides which chunks get meshed, rebuilt, unloaded and drawn.
// It is not safe for concurrent use; the frame loop owns it.
type Manager struct {
	world    *world.World
	blocks   *registry.Table
	light    *lighting.Basic
	buffers  gpu.Buffers
	layout   atlas.Layout
	settings *config.RenderSettings

	builder meshing.MeshBuilder
	smooth  bool

	chunksX, chunksY, chunksZ int
	chunks                    []ChunkInfo
	sorted                    []*ChunkInfo
	distances                 []int
	render                    []*ChunkInfo

	// Part slots of chunk id live at [id*usedCount : (id+1)*usedCount].
	usedCount        int
	normalSlots      []PartInfo
	translucentSlots []PartInfo

	normalOcc, translucentOcc     [atlas.MaxTiles]int
	hasNormal, hasTranslucent     [atlas.MaxTiles]bool
	checkNormal, checkTranslucent [atlas.MaxTiles]bool

	cellX, cellY, cellZ int
	cellValid           bool

	lastPos            mgl32.Vec3
	lastYaw, lastPitch float32
	forceFull          bool

	target       int
	lastUpdates  int
	totalUpdates int
	frustum      Frustum
	edgeLevel    int
}

// NewManager creates a manager. If src.World is set its chunks are
// allocated right away.
func NewManager(src Source, settings *config.RenderSettings) *Manager {
	if settings == nil {
		settings = config.Default()
	}
	m := &Manager{
		blocks:   src.Blocks,
		light:    src.Light,
		buffers:  src.Buffers,
		layout:   src.Layout,
		settings: settings,
		smooth:   settings.SmoothLighting(),
		target:   initialTarget,
	}
	if m.layout.TilesPerAtlas <= 0 {
		m.layout = atlas.NewLayout(atlas.MaxTiles, 16, 16*atlas.MaxTiles)
	}
	m.usedCount = m.calcUsedCount()
	m.applyMeshBuilder()
	if src.World != nil {
		m.OnNewMapLoaded(src.World)
	}
	return m
}

func (m *Manager) calcUsedCount() int {
	return max(1, m.layout.UsedCount(m.blocks.MaxTextureLoc()))
}

// applyMeshBuilder creates the builder variant selected by the lighting mode.
func (m *Manager) applyMeshBuilder() {
	src := meshing.Source{Blocks: m.blocks, Light: m.light, Atlas: m.layout}
	if m.world != nil {
		src.Voxels = m.world
		src.Env = m.world.Env
	}
	m.builder = meshing.New(src, m.smooth)
}

// OnNewMap drops every chunk of the current map.
func (m *Manager) OnNewMap() {
	m.clearChunkCache()
	m.resetPartCounts()
	m.chunks = nil
	m.sorted = nil
	m.distances = nil
	m.render = nil
	m.normalSlots, m.translucentSlots = nil, nil
	m.chunksX, m.chunksY, m.chunksZ = 0, 0, 0
	m.cellValid = false
}

// OnNewMapLoaded allocates chunk records for w.
func (m *Manager) OnNewMapLoaded(w *world.World) {
	if m.chunks != nil {
		m.OnNewMap()
	}
	m.world = w
	m.light.Reset(w)

	m.chunksX = (w.Width + meshing.ChunkSize - 1) >> 4
	m.chunksY = (w.Height + meshing.ChunkSize - 1) >> 4
	m.chunksZ = (w.Length + meshing.ChunkSize - 1) >> 4
	count := m.chunksX * m.chunksY * m.chunksZ

	m.chunks = make([]ChunkInfo, count)
	m.sorted = make([]*ChunkInfo, count)
	m.distances = make([]int, count)
	m.render = make([]*ChunkInfo, 0, count)
	m.usedCount = m.calcUsedCount()
	m.allocateParts()
	m.resetChunks()
	m.resetPartCounts()
	m.resetPartFlags()

	m.builder.OnNewMapLoaded(w, w.Env)
	m.edgeLevel = max(0, w.Env.EdgeHeight)
	m.cellValid = false
	m.forceFull = true
	log.Printf("chunks: map %dx%dx%d loaded, %d chunks", w.Width, w.Height, w.Length, count)
}

func (m *Manager) allocateParts() {
	n := len(m.chunks) * m.usedCount
	m.normalSlots = make([]PartInfo, n)
	m.translucentSlots = make([]PartInfo, n)
}

// resetChunks resets every record in place and restores the identity order.
func (m *Manager) resetChunks() {
	i := 0
	for cz := range m.chunksZ {
		for cy := range m.chunksY {
			for cx := range m.chunksX {
				c := &m.chunks[i]
				c.id = i
				c.reset(cx<<4, cy<<4, cz<<4)
				m.sorted[i] = c
				m.distances[i] = 0
				i++
			}
		}
	}
}

func (m *Manager) clearChunkCache() {
	for i := range m.chunks {
		m.deleteChunk(&m.chunks[i])
	}
}

func (m *Manager) resetPartCounts() {
	clear(m.normalOcc[:])
	clear(m.translucentOcc[:])
}

func (m *Manager) resetPartFlags() {
	for i := range atlas.MaxTiles {
		m.hasNormal[i], m.hasTranslucent[i] = false, false
		m.checkNormal[i], m.checkTranslucent[i] = true, true
	}
}

// Refresh deletes all mesh data so every chunk in view gets rebuilt.
func (m *Manager) Refresh() {
	m.cellValid = false
	if m.chunks != nil {
		m.clearChunkCache()
		for i := range m.chunks {
			c := &m.chunks[i]
			c.PendingDelete, c.Empty, c.AllAir = false, false, false
		}
	}
	if used := m.calcUsedCount(); used != m.usedCount {
		m.usedCount = used
		m.allocateParts()
	}
	m.resetPartCounts()
	m.resetPartFlags()
	m.applyMeshBuilder()
	log.Printf("chunks: refreshed %d chunks", len(m.chunks))
}

// RefreshChunk marks the chunk at chunk coordinates (cx,cy,cz) for a rebuild.
// Chunks known to be all air are left alone.
func (m *Manager) RefreshChunk(cx, cy, cz int) {
	c := m.chunkAt(cx, cy, cz)
	if c == nil || c.AllAir {
		return
	}
	c.Empty = false
	c.PendingDelete = true
}

// RefreshBorders refreshes the chunks on the map edge below clipLevel.
func (m *Manager) RefreshBorders(clipLevel int) {
	m.cellValid = false
	if m.chunks == nil {
		return
	}
	for cz := range m.chunksZ {
		for cy := range m.chunksY {
			for cx := range m.chunksX {
				border := cx == 0 || cz == 0 || cx == m.chunksX-1 || cz == m.chunksZ-1
				if border && cy*meshing.ChunkSize < clipLevel {
					m.RefreshChunk(cx, cy, cz)
				}
			}
		}
	}
}

// OnAtlasChanged switches to a new atlas layout.
func (m *Manager) OnAtlasChanged(layout atlas.Layout) {
	if layout.TilesPerAtlas <= 0 {
		return
	}
	old := m.layout
	m.layout = layout
	m.builder.SetAtlas(layout)
	if old.TilesPerAtlas != layout.TilesPerAtlas || m.calcUsedCount() != m.usedCount {
		log.Printf("chunks: atlas changed to %d tiles per page, %d pages", layout.TilesPerAtlas, layout.Count)
		m.Refresh()
	}
	m.resetPartFlags()
}

// OnLightingModeChanged swaps between flat and smooth lighting.
func (m *Manager) OnLightingModeChanged(smooth bool) {
	if smooth == m.smooth {
		return
	}
	m.smooth = smooth
	m.Refresh()
}

// OnBlockDefinitionsChanged rebuilds after the block table was modified.
func (m *Manager) OnBlockDefinitionsChanged() {
	if m.world != nil {
		m.light.Refresh()
	}
	m.Refresh()
}

// EnvVar names an environment setting that affects chunk meshes.
type EnvVar int

const (
	EnvSunColour EnvVar = iota
	EnvShadowColour
	EnvEdgeHeight
	EnvSidesOffset
)

// OnEnvVariableChanged reacts to a change already applied to the lighting or
// the world's Env.
func (m *Manager) OnEnvVariableChanged(v EnvVar) {
	switch v {
	case EnvSunColour, EnvShadowColour:
		m.Refresh()
	case EnvEdgeHeight, EnvSidesOffset:
		if m.world == nil {
			return
		}
		old := m.edgeLevel
		m.edgeLevel = max(0, m.world.Env.EdgeHeight)
		m.builder.OnNewMapLoaded(m.world, m.world.Env)
		m.RefreshBorders(max(old, m.edgeLevel))
	}
}

// OnViewDistanceChanged makes the next frame recompute visibility.
func (m *Manager) OnViewDistanceChanged() { m.forceFull = true }

// OnProjectionChanged makes the next frame recompute visibility.
func (m *Manager) OnProjectionChanged() { m.forceFull = true }

// UpdateBlock sets a block and marks every chunk whose mesh may change.
func (m *Manager) UpdateBlock(x, y, z int, block world.BlockID) {
	if m.world == nil || !m.world.Contains(x, y, z) {
		return
	}
	oldHeight := m.light.Height(x, z)
	m.world.SetBlock(x, y, z, block)
	lo, hi, lightChanged := m.light.OnBlockChanged(x, z, oldHeight)

	cx, cy, cz := x>>4, y>>4, z>>4
	if c := m.chunkAt(cx, cy, cz); c != nil {
		c.AllAir = c.AllAir && m.blocks.Draw[block] == registry.DrawGas
	}
	m.RefreshChunk(cx, cy, cz)
	m.refreshNeighbours(x, y, z)

	if lightChanged {
		// Faces below and beside the column take light from the flipped cells.
		y1, y2 := max(lo-1, 0), min(hi, m.world.MaxY)
		for dz := -1; dz <= 1; dz++ {
			for dx := -1; dx <= 1; dx++ {
				for ccy := y1 >> 4; ccy <= y2>>4; ccy++ {
					m.RefreshChunk((x+dx)>>4, ccy, (z+dz)>>4)
				}
			}
		}
	}
}

// refreshNeighbours refreshes the chunks sharing a border with the block.
func (m *Manager) refreshNeighbours(x, y, z int) {
	cx, cy, cz := x>>4, y>>4, z>>4
	switch x & 15 {
	case 0:
		m.RefreshChunk(cx-1, cy, cz)
	case 15:
		m.RefreshChunk(cx+1, cy, cz)
	}
	switch y & 15 {
	case 0:
		m.RefreshChunk(cx, cy-1, cz)
	case 15:
		m.RefreshChunk(cx, cy+1, cz)
	}
	switch z & 15 {
	case 0:
		m.RefreshChunk(cx, cy, cz-1)
	case 15:
		m.RefreshChunk(cx, cy, cz+1)
	}
}

func (m *Manager) chunkAt(cx, cy, cz int) *ChunkInfo {
	if cx < 0 || cy < 0 || cz < 0 || cx >= m.chunksX || cy >= m.chunksY || cz >= m.chunksZ {
		return nil
	}
	return &m.chunks[m.ChunkID(cx, cy, cz)]
}

// ChunkID returns the id of the chunk at chunk coordinates (cx,cy,cz).
func (m *Manager) ChunkID(cx, cy, cz int) int {
	return (cz*m.chunksY+cy)*m.chunksX + cx
}

// Chunk returns the record of chunk id.
func (m *Manager) Chunk(id int) *ChunkInfo {
	m.checkID(id)
	return &m.chunks[id]
}

func (m *Manager) checkID(id int) {
	if id < 0 || id >= len(m.chunks) {
		panic(fmt.Sprintf("chunks: chunk id %d out of range [0,%d)", id, len(m.chunks)))
	}
}

// ChunkCount returns the number of chunk records.
func (m *Manager) ChunkCount() int { return len(m.chunks) }

// Dims returns the map size in chunks.
func (m *Manager) Dims() (x, y, z int) { return m.chunksX, m.chunksY, m.chunksZ }

// Target returns the current per-frame build budget.
func (m *Manager) Target() int { return m.target }

// UsedAtlases returns the number of atlas buckets chunks may use.
func (m *Manager) UsedAtlases() int { return m.usedCount }

// NormalOccupancy returns how many chunks have opaque vertices in bucket i.
func (m *Manager) NormalOccupancy(i int) int { return m.normalOcc[i] }

// TranslucentOccupancy returns how many chunks have translucent vertices in bucket i.
func (m *Manager) TranslucentOccupancy(i int) int { return m.translucentOcc[i] }

// Stats summarises the state of the manager.
type Stats struct {
	Chunks       int
	WithData     int
	Empty        int
	Visible      int
	Target       int
	LastUpdates  int
	TotalUpdates int
}

// Stats counts the chunk records by state.
func (m *Manager) Stats() Stats {
	s := Stats{
		Chunks:       len(m.chunks),
		Target:       m.target,
		LastUpdates:  m.lastUpdates,
		TotalUpdates: m.totalUpdates,
	}
	for i := range m.chunks {
		c := &m.chunks[i]
		if c.HasData() {
			s.WithData++
		}
		if c.Empty {
			s.Empty++
		}
		if c.Visible {
			s.Visible++
		}
	}
	return s
}
