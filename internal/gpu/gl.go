package gpu

import (
	"fmt"
	"image"
	"log"
	"unsafe"

	"voxelmesh/internal/atlas"
	"voxelmesh/internal/meshing"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const vertexStride = int32(unsafe.Sizeof(meshing.Vertex{}))

type chunkBuffer struct {
	vao, vbo uint32
}

// GL stores chunk meshes in OpenGL buffers. It must only be used on the
// thread owning the GL context.
type GL struct {
	buffers map[Handle]chunkBuffer
	quadEBO uint32

	texture       uint32
	tilesPerAtlas int32
	pageUniform   int32
}

// NewGL creates the shared quad index buffer. pageUniform is the location of
// the int uniform receiving the first texture layer of the bound bucket.
func NewGL(pageUniform int32) *GL {
	g := &GL{buffers: make(map[Handle]chunkBuffer), pageUniform: pageUniform}
	g.quadEBO = newQuadIndices(meshing.MaxChunkVertices / 4)
	return g
}

// newQuadIndices builds an index buffer drawing quads as two triangles.
func newQuadIndices(quads int) uint32 {
	indices := make([]uint32, 0, quads*6)
	for q := range quads {
		i := uint32(q * 4)
		indices = append(indices, i, i+1, i+2, i+2, i+3, i)
	}
	var ebo uint32
	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	return ebo
}

func (g *GL) CreateVertexBuffer(verts []meshing.Vertex) (Handle, error) {
	if len(verts) == 0 {
		return 0, fmt.Errorf("gpu: empty vertex buffer")
	}
	var b chunkBuffer
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	if b.vao == 0 || b.vbo == 0 {
		return 0, fmt.Errorf("gpu: glGen failed (vao %d, vbo %d)", b.vao, b.vbo)
	}

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*int(vertexStride), gl.Ptr(verts), gl.STATIC_DRAW)
	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.BindVertexArray(0)
		gl.DeleteBuffers(1, &b.vbo)
		gl.DeleteVertexArrays(1, &b.vao)
		return 0, fmt.Errorf("gpu: glBufferData failed with 0x%x", code)
	}

	// position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, 0)
	gl.EnableVertexAttribArray(0)
	// fixed point uv with inset flags
	gl.VertexAttribIPointer(1, 2, gl.UNSIGNED_SHORT, vertexStride, gl.PtrOffset(12))
	gl.EnableVertexAttribArray(1)
	// tile row
	gl.VertexAttribIPointer(2, 1, gl.UNSIGNED_SHORT, vertexStride, gl.PtrOffset(16))
	gl.EnableVertexAttribArray(2)
	// colour
	gl.VertexAttribPointerWithOffset(3, 4, gl.UNSIGNED_BYTE, true, vertexStride, 20)
	gl.EnableVertexAttribArray(3)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.quadEBO)
	gl.BindVertexArray(0)

	h := Handle(b.vao)
	g.buffers[h] = b
	return h, nil
}

func (g *GL) DeleteVertexBuffer(h Handle) {
	b, ok := g.buffers[h]
	if !ok {
		return
	}
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteVertexArrays(1, &b.vao)
	delete(g.buffers, h)
}

// UploadAtlas replaces the terrain texture with the given pages. Every tile
// becomes one layer of a texture array so quads can repeat it with wrapping.
func (g *GL) UploadAtlas(pages []*image.RGBA, l atlas.Layout) {
	if g.texture != 0 {
		gl.DeleteTextures(1, &g.texture)
	}
	ts := int32(l.TileSize)
	layers := int32(len(pages) * l.TilesPerAtlas)

	gl.GenTextures(1, &g.texture)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, g.texture)
	gl.TexImage3D(gl.TEXTURE_2D_ARRAY, 0, gl.RGBA8, ts, ts, layers, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	for p, page := range pages {
		for row := range l.TilesPerAtlas {
			layer := int32(p*l.TilesPerAtlas + row)
			pix := page.Pix[page.PixOffset(0, row*l.TileSize):]
			gl.TexSubImage3D(gl.TEXTURE_2D_ARRAY, 0, 0, 0, layer, ts, ts, 1, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
		}
	}
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_T, gl.REPEAT)
	g.tilesPerAtlas = int32(l.TilesPerAtlas)

	log.Printf("gpu: uploaded %d atlas pages (%d layers of %dpx)", len(pages), layers, ts)
}

// BindBucket selects the atlas page that following draws sample from.
func (g *GL) BindBucket(i int) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, g.texture)
	gl.Uniform1i(g.pageUniform, int32(i)*g.tilesPerAtlas)
}

// DrawRange draws count vertices, a multiple of four, starting at first.
func (g *GL) DrawRange(vb Handle, first, count int) {
	b, ok := g.buffers[vb]
	if !ok || count <= 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawElementsBaseVertex(gl.TRIANGLES, int32(count/4*6), gl.UNSIGNED_INT, gl.PtrOffset(0), int32(first))
}

// Close releases every buffer and the atlas texture.
func (g *GL) Close() {
	for h := range g.buffers {
		g.DeleteVertexBuffer(h)
	}
	if g.texture != 0 {
		gl.DeleteTextures(1, &g.texture)
		g.texture = 0
	}
	gl.DeleteBuffers(1, &g.quadEBO)
	gl.BindVertexArray(0)
}
