package chunks

import (
	"log"
)

// BuildResult reports what a chunk build produced.
type BuildResult struct {
	// Built is set when the chunk now owns a vertex buffer.
	Built bool
	// AllAir is set when every voxel read by the build was gas.
	AllAir bool
}

// BuildChunk meshes chunk id, replacing any mesh data it had.
// It panics if id is out of range.
func (m *Manager) BuildChunk(id int) BuildResult {
	m.checkID(id)
	c := &m.chunks[id]
	m.deleteChunk(c)
	var updates int
	m.buildChunk(c, &updates)
	return BuildResult{Built: c.HasData(), AllAir: c.AllAir}
}

// DeleteChunk frees the mesh data of chunk id. It panics if id is out of range.
func (m *Manager) DeleteChunk(id int) {
	m.checkID(id)
	m.deleteChunk(&m.chunks[id])
}

func (m *Manager) buildChunk(c *ChunkInfo, updates *int) {
	*updates++
	m.totalUpdates++
	c.PendingDelete = false

	x, y, z := c.Origin()
	mesh := m.builder.Build(x, y, z)
	c.AllAir = mesh.AllAir
	if mesh.Empty() {
		c.Empty = true
		return
	}

	vb, err := m.buffers.CreateVertexBuffer(mesh.Vertices)
	if err != nil {
		// Without data the chunk is picked up again by a later frame.
		log.Printf("chunks: no vertex buffer for chunk at %d,%d,%d: %v", x, y, z, err)
		return
	}
	c.Vb = vb

	base := c.id * m.usedCount
	normal := m.normalSlots[base : base+m.usedCount]
	translucent := m.translucentSlots[base : base+m.usedCount]
	var hasNormal, hasTranslucent bool
	for i := range m.usedCount {
		normal[i], translucent[i] = PartInfo{Offset: -1}, PartInfo{Offset: -1}
		if i < len(mesh.Normal) {
			normal[i] = partInfo(mesh.Normal[i])
			translucent[i] = partInfo(mesh.Translucent[i])
		}
		if normal[i].Offset >= 0 {
			m.normalOcc[i]++
			hasNormal = true
		}
		if translucent[i].Offset >= 0 {
			m.translucentOcc[i]++
			hasTranslucent = true
		}
	}
	if hasNormal {
		c.NormalParts = normal
	}
	if hasTranslucent {
		c.TranslucentParts = translucent
	}
}

func (m *Manager) deleteChunk(c *ChunkInfo) {
	c.Empty, c.AllAir = false, false
	if c.Vb != 0 {
		m.buffers.DeleteVertexBuffer(c.Vb)
		c.Vb = 0
	}
	for i, p := range c.NormalParts {
		if p.Offset >= 0 {
			m.normalOcc[i]--
		}
	}
	for i, p := range c.TranslucentParts {
		if p.Offset >= 0 {
			m.translucentOcc[i]--
		}
	}
	c.NormalParts, c.TranslucentParts = nil, nil
}
