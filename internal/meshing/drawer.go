package meshing

import (
	"voxelmesh/internal/lighting"
	"voxelmesh/internal/registry"
	"voxelmesh/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// emitFaces writes the vertices of every stored quad and sprite into the
// cursors laid out by layoutParts.
func (b *core) emitFaces(ctx *buildContext) {
	draw := &b.blocks.Draw
	for y := 0; y < ctx.size[axisY]; y++ {
		for z := 0; z < ctx.size[axisZ]; z++ {
			for x := 0; x < ctx.size[axisX]; x++ {
				cIndex := extIndex(x, y, z)
				block := ctx.chunk[cIndex]
				switch draw[block] {
				case registry.DrawGas:
					continue
				case registry.DrawSprite:
					b.drawSprite(ctx, x, y, z, block)
					continue
				}
				index := countIndex(x, y, z)
				for face := world.Face(0); face < world.FaceCount; face++ {
					i := index + int(face)
					n := int(ctx.counts[i])
					if n == 0 {
						continue
					}
					b.drawFace(ctx, x, y, z, block, face, n, int(ctx.spans[i]), ctx.lights[i])
				}
			}
		}
	}
}

// faceColours returns the vertex colours of a face before tinting.
func (b *core) faceColours(ctx *buildContext, x, y, z, cIndex int, block world.BlockID, face world.Face) [4]lighting.PackedCol {
	if b.blocks.FullBright[block] {
		return [4]lighting.PackedCol{lighting.White, lighting.White, lighting.White, lighting.White}
	}
	return b.mode.faceLight(ctx, x, y, z, cIndex, block, face)
}

// drawFace writes one quad covering n voxels along the primary and m along
// the secondary axis of face, lit with the colours found while counting.
func (b *core) drawFace(ctx *buildContext, x, y, z int, block world.BlockID, face world.Face, n, m int, cols [4]lighting.PackedCol) {
	tex := b.blocks.Texture(block, face)
	p := b.partFor(ctx, block, tex)

	if b.blocks.Tinted[block] {
		t := b.blocks.Tint[block]
		tint := lighting.NewCol(t[0], t[1], t[2], 255)
		for i := range cols {
			cols[i] = cols[i].Tint(tint)
		}
	}

	span := [3]int{1, 1, 1}
	primary, secondary := stretchAxes(face)
	span[primary], span[secondary] = n, m
	size := mgl32.Vec3{float32(span[axisX]), float32(span[axisY]), float32(span[axisZ])}

	// The quad covers the render box of the first voxel stretched over the
	// following ones.
	origin := mgl32.Vec3{float32(ctx.x1 + x), float32(ctx.y1 + y), float32(ctx.z1 + z)}
	lo := origin.Add(b.blocks.RenderMinBB[block])
	hi := origin.Add(size).Sub(mgl32.Vec3{1, 1, 1}).Add(b.blocks.RenderMaxBB[block])
	cMin, cMax := b.blocks.MinBB[block], b.blocks.MaxBB[block]

	// Side faces run the texture top to bottom along Y.
	vTop, vBottom := uvRange(1-cMax.Y(), size.Y()-cMin.Y())

	var corners [4]mgl32.Vec3
	var uvs [4][2]uint16
	switch face {
	case world.FaceXMin:
		u1, u2 := uvRange(cMin.Z(), size.Z()-1+cMax.Z())
		corners = [4]mgl32.Vec3{
			{lo.X(), lo.Y(), lo.Z()}, {lo.X(), lo.Y(), hi.Z()},
			{lo.X(), hi.Y(), hi.Z()}, {lo.X(), hi.Y(), lo.Z()},
		}
		uvs = [4][2]uint16{{u1, vBottom}, {u2, vBottom}, {u2, vTop}, {u1, vTop}}
	case world.FaceXMax:
		u1, u2 := uvRange(1-cMax.Z(), size.Z()-cMin.Z())
		corners = [4]mgl32.Vec3{
			{hi.X(), lo.Y(), hi.Z()}, {hi.X(), lo.Y(), lo.Z()},
			{hi.X(), hi.Y(), lo.Z()}, {hi.X(), hi.Y(), hi.Z()},
		}
		uvs = [4][2]uint16{{u1, vBottom}, {u2, vBottom}, {u2, vTop}, {u1, vTop}}
	case world.FaceZMin:
		u1, u2 := uvRange(1-cMax.X(), size.X()-cMin.X())
		corners = [4]mgl32.Vec3{
			{hi.X(), lo.Y(), lo.Z()}, {lo.X(), lo.Y(), lo.Z()},
			{lo.X(), hi.Y(), lo.Z()}, {hi.X(), hi.Y(), lo.Z()},
		}
		uvs = [4][2]uint16{{u1, vBottom}, {u2, vBottom}, {u2, vTop}, {u1, vTop}}
	case world.FaceZMax:
		u1, u2 := uvRange(cMin.X(), size.X()-1+cMax.X())
		corners = [4]mgl32.Vec3{
			{lo.X(), lo.Y(), hi.Z()}, {hi.X(), lo.Y(), hi.Z()},
			{hi.X(), hi.Y(), hi.Z()}, {lo.X(), hi.Y(), hi.Z()},
		}
		uvs = [4][2]uint16{{u1, vBottom}, {u2, vBottom}, {u2, vTop}, {u1, vTop}}
	case world.FaceYMin:
		u1, u2 := uvRange(cMin.X(), size.X()-1+cMax.X())
		v1, v2 := uvRange(cMin.Z(), size.Z()-1+cMax.Z())
		corners = [4]mgl32.Vec3{
			{lo.X(), lo.Y(), lo.Z()}, {hi.X(), lo.Y(), lo.Z()},
			{hi.X(), lo.Y(), hi.Z()}, {lo.X(), lo.Y(), hi.Z()},
		}
		uvs = [4][2]uint16{{u1, v1}, {u2, v1}, {u2, v2}, {u1, v2}}
	case world.FaceYMax:
		u1, u2 := uvRange(cMin.X(), size.X()-1+cMax.X())
		v1, v2 := uvRange(cMin.Z(), size.Z()-1+cMax.Z())
		corners = [4]mgl32.Vec3{
			{lo.X(), hi.Y(), hi.Z()}, {hi.X(), hi.Y(), hi.Z()},
			{hi.X(), hi.Y(), lo.Z()}, {lo.X(), hi.Y(), lo.Z()},
		}
		uvs = [4][2]uint16{{u1, v2}, {u2, v2}, {u2, v1}, {u1, v1}}
	}

	tile := uint16(b.layout.Row(tex))
	at := p.fCursor[face]
	for i, c := range corners {
		b.arena[at+i] = newVertex(c, uvs[i][0], uvs[i][1], tile, cols[i])
	}
	p.fCursor[face] = at + 4
}
