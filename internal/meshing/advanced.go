package meshing

import (
	"voxelmesh/internal/lighting"
	"voxelmesh/internal/world"
)

// occlusionShade darkens a corner cell that is filled by an opaque block.
const occlusionShade = 0.7

// cornerDirs holds, per face, the in-plane direction of each of the four
// quad corners in the vertex order used by drawFace.
var cornerDirs = [world.FaceCount][4][3]int{
	world.FaceXMin: {{0, -1, -1}, {0, -1, 1}, {0, 1, 1}, {0, 1, -1}},
	world.FaceXMax: {{0, -1, 1}, {0, -1, -1}, {0, 1, -1}, {0, 1, 1}},
	world.FaceZMin: {{1, -1, 0}, {-1, -1, 0}, {-1, 1, 0}, {1, 1, 0}},
	world.FaceZMax: {{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0}},
	world.FaceYMin: {{-1, 0, -1}, {1, 0, -1}, {1, 0, 1}, {-1, 0, 1}},
	world.FaceYMax: {{-1, 0, 1}, {1, 0, 1}, {1, 0, -1}, {-1, 0, -1}},
}

// AdvancedBuilder lights each quad corner separately by averaging the four
// cells around it, which gives smooth lighting and ambient occlusion.
type AdvancedBuilder struct {
	core
}

// NewAdvancedBuilder creates a builder with smooth per-corner lighting.
func NewAdvancedBuilder(src Source) *AdvancedBuilder {
	b := &AdvancedBuilder{}
	b.init(src, smoothLight{&b.core})
	return b
}

type smoothLight struct {
	b *core
}

func (l smoothLight) faceLight(ctx *buildContext, x, y, z, _ int, block world.BlockID, face world.Face) [4]lighting.PackedCol {
	nx, ny, nz := face.Normal()
	if l.b.blocks.LightOffset[block]>>face&1 == 0 {
		nx, ny, nz = 0, 0, 0
	}
	fx, fy, fz := x+nx, y+ny, z+nz

	var out [4]lighting.PackedCol
	for i, d := range cornerDirs[face] {
		a, c := splitDir(d, face)
		out[i] = lighting.Average(
			l.cell(ctx, fx, fy, fz, face),
			l.cell(ctx, fx+a[0], fy+a[1], fz+a[2], face),
			l.cell(ctx, fx+c[0], fy+c[1], fz+c[2], face),
			l.cell(ctx, fx+a[0]+c[0], fy+a[1]+c[1], fz+a[2]+c[2], face),
		)
	}
	return out
}

// splitDir separates a corner direction into its two in-plane components.
func splitDir(d [3]int, face world.Face) (a, c [3]int) {
	switch face {
	case world.FaceXMin, world.FaceXMax:
		return [3]int{0, d[1], 0}, [3]int{0, 0, d[2]}
	case world.FaceZMin, world.FaceZMax:
		return [3]int{d[0], 0, 0}, [3]int{0, d[1], 0}
	default:
		return [3]int{d[0], 0, 0}, [3]int{0, 0, d[2]}
	}
}

// cell returns the light of the cell at local (x,y,z) as seen by face.
func (l smoothLight) cell(ctx *buildContext, x, y, z int, face world.Face) lighting.PackedCol {
	b := l.b
	wx, wy, wz := ctx.x1+x, ctx.y1+y, ctx.z1+z

	var col lighting.PackedCol
	if wx < 0 || wz < 0 || wx > b.maxX || wz > b.maxZ || wy < 0 {
		col = outsideCol(b.outside, face)
	} else {
		switch face {
		case world.FaceXMin, world.FaceXMax:
			col = b.light.ColXSide(wx, wy, wz)
		case world.FaceZMin, world.FaceZMax:
			col = b.light.ColZSide(wx, wy, wz)
		case world.FaceYMin:
			col = b.light.ColYBottom(wx, wy, wz)
		default:
			col = b.light.ColYTop(wx, wy, wz)
		}
	}
	if b.blocks.FullOpaque[ctx.chunk[extIndex(x, y, z)]] {
		col = col.Scale(occlusionShade)
	}
	return col
}

func outsideCol(o lighting.Outside, face world.Face) lighting.PackedCol {
	switch face {
	case world.FaceXMin, world.FaceXMax:
		return o.XSide
	case world.FaceZMin, world.FaceZMax:
		return o.ZSide
	case world.FaceYMin:
		return o.YBottom
	}
	return o.Top
}
