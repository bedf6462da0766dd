// Package chunks owns the per-chunk render state of a world: which chunks
// have meshes, which are visible, in what order they are drawn, and how
// many get rebuilt per frame.
package chunks

import (
	"voxelmesh/internal/gpu"
	"voxelmesh/internal/meshing"
	"voxelmesh/internal/world"
)

// PartInfo locates the vertices of one atlas bucket in a chunk's buffer.
type PartInfo struct {
	// Offset is the first vertex of the part, or -1 if the part is empty.
	Offset      int
	Counts      [world.FaceCount]int
	SpriteCount int
}

func partInfo(p meshing.Part) PartInfo {
	return PartInfo{Offset: p.Offset, Counts: p.Counts, SpriteCount: p.SpriteCount}
}

// ChunkInfo is the render record of one 16³ chunk.
type ChunkInfo struct {
	CentreX, CentreY, CentreZ int

	Visible       bool
	Empty         bool
	PendingDelete bool
	AllAir        bool

	// Draw flags are false for the faces pointing away from the camera.
	DrawXMin, DrawXMax bool
	DrawYMin, DrawYMax bool
	DrawZMin, DrawZMax bool

	Vb gpu.Handle
	// NormalParts and TranslucentParts have one entry per atlas bucket in
	// use. Both are nil while the chunk has no mesh data.
	NormalParts      []PartInfo
	TranslucentParts []PartInfo

	id int
}

func (c *ChunkInfo) reset(x, y, z int) {
	*c = ChunkInfo{
		CentreX: x + 8,
		CentreY: y + 8,
		CentreZ: z + 8,
		Visible: true,
		id:      c.id,
	}
}

// HasData reports whether the chunk currently owns mesh data.
func (c *ChunkInfo) HasData() bool {
	return c.NormalParts != nil || c.TranslucentParts != nil
}

// Origin returns the minimum corner of the chunk in world coordinates.
func (c *ChunkInfo) Origin() (x, y, z int) {
	return c.CentreX - 8, c.CentreY - 8, c.CentreZ - 8
}
