// Package meshing turns 16³ chunks of voxels into vertex runs grouped by
// atlas bucket and face, merging neighbouring faces into larger quads.
//
// A build runs in three phases over a per-build context:
//  1. count: decide which faces are drawn, merge them, tally vertices per part
//  2. layout: turn the tallies into offsets inside one vertex arena
//  3. emit: write the vertices
//
// The arena is owned by the builder and reused by every build.
package meshing

import (
	"voxelmesh/internal/atlas"
	"voxelmesh/internal/lighting"
	"voxelmesh/internal/profiling"
	"voxelmesh/internal/registry"
	"voxelmesh/internal/world"
)

const (
	ChunkSize  = 16
	chunkShift = 4

	extSize   = ChunkSize + 2
	extSize2  = extSize * extSize
	extVolume = extSize * extSize * extSize

	chunkVolume = ChunkSize * ChunkSize * ChunkSize

	// MaxChunkVertices bounds the vertices of one chunk: every face of
	// every voxel as its own quad.
	MaxChunkVertices = chunkVolume * world.FaceCount * 4
)

// Voxels is read access to the world grid.
type Voxels interface {
	Dims() (width, height, length int)
	// Row returns the blocks of the X row at (y,z).
	Row(y, z int) []world.BlockID
}

// Lighting supplies the colour of a face by the cell it takes light from.
type Lighting interface {
	Col(x, y, z int) lighting.PackedCol
	ColXSide(x, y, z int) lighting.PackedCol
	ColZSide(x, y, z int) lighting.PackedCol
	ColYBottom(x, y, z int) lighting.PackedCol
	ColYTop(x, y, z int) lighting.PackedCol
	Outside() lighting.Outside
}

// Source bundles the collaborators a builder reads from.
type Source struct {
	Voxels Voxels
	Blocks *registry.Table
	Light  Lighting
	Atlas  atlas.Layout
	Env    world.Env
}

// MeshBuilder builds the mesh of one chunk.
type MeshBuilder interface {
	// Build meshes the chunk whose minimum corner is (x1,y1,z1). The
	// returned mesh aliases builder memory and is valid until the next Build.
	Build(x1, y1, z1 int) Mesh
	// OnNewMapLoaded points the builder at a new map.
	OnNewMapLoaded(v Voxels, env world.Env)
	// SetAtlas resizes the part pools to the atlas layout.
	SetAtlas(layout atlas.Layout)
}

// Part describes the vertices of one atlas bucket inside a chunk mesh.
type Part struct {
	// Offset is the first vertex of the part, or -1 if it has none.
	Offset      int
	Counts      [world.FaceCount]int
	SpriteCount int
}

// VertexCount returns the number of vertices of the part.
func (p Part) VertexCount() int {
	n := p.SpriteCount
	for _, c := range p.Counts {
		n += c
	}
	return n
}

// Mesh is the result of one chunk build.
type Mesh struct {
	AllAir      bool
	Vertices    []Vertex
	Normal      []Part
	Translucent []Part
}

// Empty reports whether the build produced no vertices.
func (m Mesh) Empty() bool { return len(m.Vertices) == 0 }

// New returns the smooth lighting builder if smooth is set, else the
// normal builder.
func New(src Source, smooth bool) MeshBuilder {
	if smooth {
		return NewAdvancedBuilder(src)
	}
	return NewNormalBuilder(src)
}

// lightMode is the lighting strategy of a builder variant.
type lightMode interface {
	// faceLight returns the vertex colours of the face of the voxel at
	// (x,y,z). Faces only merge when their colours are identical.
	faceLight(ctx *buildContext, x, y, z, cIndex int, block world.BlockID, face world.Face) [4]lighting.PackedCol
}

// core holds what both builder variants share.
type core struct {
	voxels Voxels
	blocks *registry.Table
	light  Lighting
	layout atlas.Layout
	mode   lightMode

	width, height, length int
	maxX, maxY, maxZ      int
	sidesLevel, edgeLevel int

	ctx     *buildContext
	arena   []Vertex
	normal  []Part
	transl  []Part
	outside lighting.Outside
}

func (b *core) init(src Source, mode lightMode) {
	b.blocks = src.Blocks
	b.light = src.Light
	b.mode = mode
	b.ctx = &buildContext{}
	b.SetAtlas(src.Atlas)
	b.OnNewMapLoaded(src.Voxels, src.Env)
}

// OnNewMapLoaded points the builder at a new map and its border levels.
func (b *core) OnNewMapLoaded(v Voxels, env world.Env) {
	b.voxels = v
	if v != nil {
		b.width, b.height, b.length = v.Dims()
	}
	b.maxX, b.maxY, b.maxZ = b.width-1, b.height-1, b.length-1
	b.sidesLevel = max(0, env.SidesHeight())
	b.edgeLevel = max(0, env.EdgeHeight)
}

// SetAtlas resizes the part pools, one normal and one translucent part per page.
func (b *core) SetAtlas(layout atlas.Layout) {
	if layout.TilesPerAtlas <= 0 {
		layout = atlas.NewLayout(atlas.MaxTiles, 16, 16*atlas.MaxTiles)
	}
	b.layout = layout
	n := max(layout.Count, 1)
	b.ctx.normal = make([]part, n)
	b.ctx.translucent = make([]part, n)
	b.normal = make([]Part, n)
	b.transl = make([]Part, n)
}

// Build meshes one chunk.
func (b *core) Build(x1, y1, z1 int) Mesh {
	defer profiling.Track("meshing.Build")()
	ctx := b.ctx
	ctx.begin(x1, y1, z1, b.width, b.height, b.length)
	b.outside = b.light.Outside()

	allAir, allSolid := b.readChunkData(ctx)
	if allAir || allSolid {
		return Mesh{AllAir: allAir}
	}

	b.countFaces(ctx)
	total := ctx.layoutParts()
	if total == 0 {
		return Mesh{}
	}
	if cap(b.arena) < total {
		b.arena = make([]Vertex, min(MaxChunkVertices, max(total, 2*cap(b.arena))))
	}
	b.arena = b.arena[:total]
	b.emitFaces(ctx)
	return b.mesh(ctx)
}

// readChunkData copies the chunk and a one voxel halo into ctx.chunk.
// Cells outside the map stay air.
func (b *core) readChunkData(ctx *buildContext) (allAir, allSolid bool) {
	clear(ctx.chunk[:])
	for i := range ctx.counts {
		ctx.counts[i] = 1
	}
	allAir, allSolid = true, true

	xs, xe := max(ctx.x1-1, 0), min(ctx.x1+ChunkSize+1, b.width)
	ys, ye := max(ctx.y1-1, 0), min(ctx.y1+ChunkSize+1, b.height)
	zs, ze := max(ctx.z1-1, 0), min(ctx.z1+ChunkSize+1, b.length)
	if xs >= xe || ys >= ye || zs >= ze {
		return true, false
	}
	draw, fullOpaque := &b.blocks.Draw, &b.blocks.FullOpaque

	for y := ys; y < ye; y++ {
		for z := zs; z < ze; z++ {
			row := b.voxels.Row(y, z)[xs:xe]
			base := ((y-ctx.y1+1)*extSize+(z-ctx.z1+1))*extSize + (xs - ctx.x1 + 1)
			copy(ctx.chunk[base:base+len(row)], row)
			for _, blk := range row {
				allAir = allAir && draw[blk] == registry.DrawGas
				allSolid = allSolid && fullOpaque[blk]
			}
		}
	}

	// Chunks on the map border always show the border faces.
	if ctx.x1 == 0 || ctx.y1 == 0 || ctx.z1 == 0 ||
		ctx.x1+ChunkSize >= b.width || ctx.y1+ChunkSize >= b.height || ctx.z1+ChunkSize >= b.length {
		allSolid = false
	}
	return allAir, allSolid
}

// partFor returns the part a face with texture loc of block belongs to.
func (b *core) partFor(ctx *buildContext, block world.BlockID, loc atlas.TextureLoc) *part {
	i := min(b.layout.Index(loc), len(ctx.normal)-1)
	if b.blocks.Draw[block] == registry.DrawTranslucent {
		return &ctx.translucent[i]
	}
	return &ctx.normal[i]
}

// mesh copies the part layout into the exported form.
func (b *core) mesh(ctx *buildContext) Mesh {
	for i := range ctx.normal {
		b.normal[i] = ctx.normal[i].info()
		b.transl[i] = ctx.translucent[i].info()
	}
	return Mesh{Vertices: b.arena, Normal: b.normal, Translucent: b.transl}
}
