package meshing

import (
	"testing"

	"voxelmesh/internal/atlas"
	"voxelmesh/internal/lighting"
	"voxelmesh/internal/registry"
	"voxelmesh/internal/world"
)

type fixture struct {
	w      *world.World
	blocks *registry.Table
	light  *lighting.Basic
}

func newFixture(t *testing.T, size int) *fixture {
	t.Helper()
	w, err := world.New(size, size, size)
	if err != nil {
		t.Fatalf("world.New: %v", err)
	}
	w.Env = world.Env{}
	blocks := registry.Default()
	return &fixture{w: w, blocks: blocks, light: lighting.NewBasic(w, blocks)}
}

func singlePage() atlas.Layout {
	return atlas.NewLayout(atlas.MaxTiles, 16, 16*atlas.MaxTiles)
}

func (f *fixture) builder(layout atlas.Layout, smooth bool) MeshBuilder {
	f.light.Refresh()
	return New(Source{Voxels: f.w, Blocks: f.blocks, Light: f.light, Atlas: layout, Env: f.w.Env}, smooth)
}

func faceVerts(m Mesh, face world.Face) int {
	n := 0
	for _, p := range m.Normal {
		n += p.Counts[face]
	}
	for _, p := range m.Translucent {
		n += p.Counts[face]
	}
	return n
}

func TestSingleBlock(t *testing.T) {
	f := newFixture(t, 48)
	f.w.SetBlock(20, 20, 20, world.BlockStone)
	m := f.builder(singlePage(), false).Build(16, 16, 16)

	if m.AllAir || m.Empty() {
		t.Fatalf("single block: got AllAir=%v Empty=%v", m.AllAir, m.Empty())
	}
	if got := len(m.Vertices); got != 24 {
		t.Fatalf("single block: got %d vertices, want 24", got)
	}
	for face := world.Face(0); face < world.FaceCount; face++ {
		if got := faceVerts(m, face); got != 4 {
			t.Fatalf("face %v: got %d vertices, want 4", face, got)
		}
	}
	if m.Normal[0].Offset != 0 || m.Translucent[0].Offset != -1 {
		t.Fatalf("offsets: normal %d translucent %d", m.Normal[0].Offset, m.Translucent[0].Offset)
	}
}

func TestFullChunkMergesToSixQuads(t *testing.T) {
	f := newFixture(t, 48)
	f.w.Fill(16, 16, 16, 31, 31, 31, world.BlockStone)
	m := f.builder(singlePage(), false).Build(16, 16, 16)

	if got := len(m.Vertices); got != 24 {
		t.Fatalf("16^3 cube: got %d vertices, want 24", got)
	}
	for _, v := range m.Vertices {
		if v.X < 16 || v.X > 32 || v.Y < 16 || v.Y > 32 || v.Z < 16 || v.Z > 32 {
			t.Fatalf("vertex outside the chunk: %+v", v)
		}
	}

	// Top face: offset of the YMax run within the only part.
	p := m.Normal[0]
	top := p.Offset + p.SpriteCount
	for face := world.Face(0); face < world.FaceYMax; face++ {
		top += p.Counts[face]
	}
	v := m.Vertices[top]
	if v.Y != 32 {
		t.Fatalf("top face height: got %v, want 32", v.Y)
	}
	u, inset := UnpackUV(m.Vertices[top+1].U)
	if u != 16 || !inset {
		t.Fatalf("top face far U: got %v inset=%v, want 16 true", u, inset)
	}
}

func TestLightingSplitsStrip(t *testing.T) {
	f := newFixture(t, 48)
	f.w.Fill(16, 20, 20, 31, 20, 20, world.BlockStone)
	// A roof in the chunk above shades the first half of the strip.
	f.w.Fill(16, 40, 20, 23, 40, 20, world.BlockStone)
	m := f.builder(singlePage(), false).Build(16, 16, 16)

	if got := faceVerts(m, world.FaceYMax); got != 8 {
		t.Fatalf("strip top: got %d vertices, want 8", got)
	}
	if got := faceVerts(m, world.FaceYMin); got != 4 {
		t.Fatalf("strip bottom: got %d vertices, want 4", got)
	}
}

func TestShadedVoxelSplitsShortStrip(t *testing.T) {
	f := newFixture(t, 48)
	f.w.Fill(17, 20, 20, 20, 20, 20, world.BlockStone)
	// A single roof block shades the top of the second voxel only.
	f.w.SetBlock(18, 40, 20, world.BlockStone)
	m := f.builder(singlePage(), false).Build(16, 16, 16)

	p := m.Normal[0]
	start := p.Offset + p.SpriteCount
	for face := world.Face(0); face < world.FaceYMax; face++ {
		start += p.Counts[face]
	}
	top := m.Vertices[start : start+p.Counts[world.FaceYMax]]
	want := [][2]float32{{17, 18}, {18, 19}, {19, 21}}
	if len(top) != 4*len(want) {
		t.Fatalf("strip top: got %d vertices, want %d", len(top), 4*len(want))
	}
	for i, w := range want {
		quad := top[4*i : 4*i+4]
		x1, x2 := quad[0].X, quad[0].X
		for _, v := range quad {
			x1, x2 = min(x1, v.X), max(x2, v.X)
		}
		if x1 != w[0] || x2 != w[1] {
			t.Fatalf("run %d: got x %v..%v, want %v..%v", i, x1, x2, w[0], w[1])
		}
	}
	if quadCol := top[4].Col; quadCol == top[0].Col {
		t.Fatalf("shaded run has the lit colour %08x", uint32(quadCol))
	}
	if got := faceVerts(m, world.FaceYMin); got != 4 {
		t.Fatalf("strip bottom: got %d vertices, want 4", got)
	}
}

func TestLiquidTopStretchesAlongXOnly(t *testing.T) {
	f := newFixture(t, 48)
	f.w.Fill(17, 20, 17, 20, 20, 20, world.BlockStillWater)
	m := f.builder(singlePage(), false).Build(16, 16, 16)

	if got := m.Translucent[0].Counts[world.FaceYMax]; got != 16 {
		t.Fatalf("water top: got %d vertices, want 16", got)
	}
	if got := m.Translucent[0].Counts[world.FaceYMin]; got != 64 {
		t.Fatalf("water bottom: got %d vertices, want 64", got)
	}
	if got := m.Translucent[0].Counts[world.FaceXMin]; got != 16 {
		t.Fatalf("water x side: got %d vertices, want 16", got)
	}
	if m.Normal[0].Offset != -1 {
		t.Fatalf("water should not produce normal vertices")
	}
}

func TestBorderOverrides(t *testing.T) {
	f := newFixture(t, 32)
	f.w.Env = world.Env{EdgeHeight: 10, SidesOffset: -2}
	f.w.SetBlock(0, 5, 5, world.BlockStone)
	f.w.SetBlock(0, 9, 12, world.BlockStone)
	f.w.SetBlock(0, 9, 5, world.BlockStillWater)
	f.w.SetBlock(5, 0, 12, world.BlockStone)
	b := f.builder(singlePage(), false)
	m := b.Build(0, 0, 0)

	// Stone below the sides level and water below the edge level lose
	// their XMin face. The floor block loses its YMin face.
	if got := faceVerts(m, world.FaceXMin); got != 8 {
		t.Fatalf("XMin: got %d vertices, want 8", got)
	}
	if got := faceVerts(m, world.FaceYMin); got != 12 {
		t.Fatalf("YMin: got %d vertices, want 12", got)
	}

	f.w.Env = world.Env{}
	b.OnNewMapLoaded(f.w, f.w.Env)
	m = b.Build(0, 0, 0)
	if got := faceVerts(m, world.FaceXMin); got != 16 {
		t.Fatalf("XMin without border: got %d vertices, want 16", got)
	}
}

func TestAllAirAndAllSolid(t *testing.T) {
	f := newFixture(t, 48)
	b := f.builder(singlePage(), false)
	if m := b.Build(16, 16, 16); !m.AllAir || !m.Empty() {
		t.Fatalf("empty chunk: got AllAir=%v Empty=%v", m.AllAir, m.Empty())
	}

	f.w.Fill(0, 0, 0, 47, 47, 47, world.BlockStone)
	if m := b.Build(16, 16, 16); m.AllAir || !m.Empty() {
		t.Fatalf("buried chunk: got AllAir=%v Empty=%v", m.AllAir, m.Empty())
	}
	// Border chunks always get their faces.
	if m := b.Build(0, 0, 0); m.Empty() {
		t.Fatalf("border chunk should not be empty")
	}
}

func TestSprite(t *testing.T) {
	f := newFixture(t, 48)
	f.w.SetBlock(20, 20, 20, world.BlockRose)
	m := f.builder(singlePage(), false).Build(16, 16, 16)

	p := m.Normal[0]
	if p.SpriteCount != 16 || p.VertexCount() != 16 {
		t.Fatalf("sprite: got SpriteCount=%d VertexCount=%d, want 16", p.SpriteCount, p.VertexCount())
	}
	if v := m.Vertices[0]; v.X != 20+2.5/16 || v.Z != 20+2.5/16 || v.Y != 20 {
		t.Fatalf("sprite first vertex: got %+v", v)
	}
	if v := m.Vertices[4]; v.X != 20+13.5/16 {
		t.Fatalf("mirrored quad should start at the far corner: got %+v", v)
	}
	if got, want := m.Vertices[0].Tile, uint16(12); got != want {
		t.Fatalf("sprite tile: got %d, want %d", got, want)
	}
	for _, v := range m.Vertices {
		if v.Col != lighting.White {
			t.Fatalf("lit sprite colour: got %08x", uint32(v.Col))
		}
	}
}

func TestAtlasBuckets(t *testing.T) {
	f := newFixture(t, 48)
	f.w.SetBlock(18, 18, 18, world.BlockStone)
	f.w.SetBlock(26, 26, 26, world.BlockCoalOre)
	layout := atlas.NewLayout(atlas.MaxTiles, 16, 16*32)
	m := f.builder(layout, false).Build(16, 16, 16)

	if len(m.Normal) != layout.Count {
		t.Fatalf("parts: got %d, want %d", len(m.Normal), layout.Count)
	}
	if m.Normal[0].Offset != 0 || m.Normal[0].VertexCount() != 24 {
		t.Fatalf("bucket 0: got %+v", m.Normal[0])
	}
	if m.Normal[1].Offset != 24 || m.Normal[1].VertexCount() != 24 {
		t.Fatalf("bucket 1: got %+v", m.Normal[1])
	}
	if got := m.Vertices[24].Tile; got != 2 {
		t.Fatalf("coal ore tile row: got %d, want 2", got)
	}
	for i := 2; i < layout.Count; i++ {
		if m.Normal[i].Offset != -1 {
			t.Fatalf("bucket %d should be unused", i)
		}
	}
}

func TestBuildIsRepeatable(t *testing.T) {
	f := newFixture(t, 48)
	f.w.Fill(18, 18, 18, 25, 22, 21, world.BlockStone)
	f.w.SetBlock(20, 23, 20, world.BlockDandelion)
	f.w.Fill(27, 18, 18, 29, 18, 20, world.BlockStillWater)
	b := f.builder(singlePage(), false)

	first := append([]Vertex(nil), b.Build(16, 16, 16).Vertices...)
	_ = b.Build(0, 0, 0)
	second := b.Build(16, 16, 16).Vertices
	if len(first) != len(second) {
		t.Fatalf("vertex count changed: %d then %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("vertex %d changed: %+v then %+v", i, first[i], second[i])
		}
	}
}

func TestSmoothLightingOcclusion(t *testing.T) {
	f := newFixture(t, 48)
	f.w.SetBlock(20, 20, 20, world.BlockStone)
	f.w.SetBlock(20, 21, 21, world.BlockStone)
	m := f.builder(singlePage(), true).Build(16, 16, 16)

	p := m.Normal[0]
	top := p.Offset
	for face := world.Face(0); face < world.FaceYMax; face++ {
		top += p.Counts[face]
	}
	v := m.Vertices[top : top+4]
	if v[0].Z != 21 || v[3].Z != 20 {
		t.Fatalf("unexpected top face order: %+v", v)
	}
	if v[0].Col == lighting.White {
		t.Fatalf("corner next to the wall should be occluded")
	}
	if v[3].Col != lighting.White {
		t.Fatalf("open corner: got %08x, want white", uint32(v[3].Col))
	}
}

func TestJavaRandom(t *testing.T) {
	a, b := newJavaRandom(1234), newJavaRandom(1234)
	for range 100 {
		x, y := a.rangeN(-3, 4), b.rangeN(-3, 4)
		if x != y {
			t.Fatalf("same seed diverged: %d vs %d", x, y)
		}
		if x < -3 || x > 3 {
			t.Fatalf("rangeN(-3,4) out of range: %d", x)
		}
		if v := a.rangeN(0, 4); v != b.rangeN(0, 4) || v < 0 || v > 3 {
			t.Fatalf("rangeN(0,4): got %d", v)
		}
	}
}

func TestUVPacking(t *testing.T) {
	if got := packUV(1); got != 16 {
		t.Fatalf("packUV(1): got %d, want 16", got)
	}
	if got := packUV(-0.5); got != 0 {
		t.Fatalf("packUV(-0.5): got %d, want 0", got)
	}
	lo, hi := uvRange(0.5, 3)
	if u, inset := UnpackUV(lo); u != 0.5 || inset {
		t.Fatalf("near edge: got %v %v", u, inset)
	}
	if u, inset := UnpackUV(hi); u != 3 || !inset {
		t.Fatalf("far edge: got %v %v", u, inset)
	}
}
