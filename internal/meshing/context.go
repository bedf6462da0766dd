package meshing

import (
	"voxelmesh/internal/lighting"
	"voxelmesh/internal/world"
)

// extOffset is the padded-buffer step to the neighbour across each face.
var extOffset = [world.FaceCount]int{-1, 1, -extSize, extSize, -extSize2, extSize2}

func extIndex(x, y, z int) int {
	return ((y+1)*extSize+(z+1))*extSize + (x + 1)
}

func countIndex(x, y, z int) int {
	return ((y << 8) | (z << chunkShift) | x) * world.FaceCount
}

// part accumulates the vertices of one atlas bucket during a build.
type part struct {
	sCount   int
	sAdvance int
	sCursor  int
	fCount   [world.FaceCount]int
	fCursor  [world.FaceCount]int
	offset   int
}

func (p *part) total() int {
	n := p.sCount
	for _, c := range p.fCount {
		n += c
	}
	return n
}

// place assigns the part its range of the arena starting at pos and
// returns the position after it.
func (p *part) place(pos int) int {
	p.offset = pos
	p.sCursor = pos
	p.sAdvance = p.sCount / 4
	pos += p.sCount
	for f := range p.fCount {
		p.fCursor[f] = pos
		pos += p.fCount[f]
	}
	return pos
}

func (p *part) info() Part {
	out := Part{Offset: -1, Counts: p.fCount, SpriteCount: p.sCount}
	if p.total() > 0 {
		out.Offset = p.offset
	}
	return out
}

// buildContext is the state of one build, shared by its three phases.
type buildContext struct {
	x1, y1, z1 int
	// size is the extent of the chunk inside the map along x, y and z.
	size [3]int

	chunk  [extVolume]world.BlockID
	counts [chunkVolume * world.FaceCount]uint8
	spans  [chunkVolume * world.FaceCount]uint8
	// lights holds the colours of each face that starts a quad.
	lights [chunkVolume * world.FaceCount][4]lighting.PackedCol

	normal      []part
	translucent []part
}

func (ctx *buildContext) begin(x1, y1, z1, width, height, length int) {
	ctx.x1, ctx.y1, ctx.z1 = x1, y1, z1
	ctx.size = [3]int{
		max(0, min(ChunkSize, width-x1)),
		max(0, min(ChunkSize, height-y1)),
		max(0, min(ChunkSize, length-z1)),
	}
	clear(ctx.normal)
	clear(ctx.translucent)
}

// layoutParts places every part in the arena, normal before translucent
// within each bucket, and returns the total vertex count.
func (ctx *buildContext) layoutParts() int {
	pos := 0
	for i := range ctx.normal {
		pos = ctx.normal[i].place(pos)
		pos = ctx.translucent[i].place(pos)
	}
	return pos
}
