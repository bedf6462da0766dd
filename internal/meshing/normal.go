package meshing

import (
	"voxelmesh/internal/lighting"
	"voxelmesh/internal/world"
)

// NormalBuilder lights every quad with a single colour taken from the cell
// in front of the face.
type NormalBuilder struct {
	core
}

// NewNormalBuilder creates a builder with flat per-face lighting.
func NewNormalBuilder(src Source) *NormalBuilder {
	b := &NormalBuilder{}
	b.init(src, flatLight{&b.core})
	return b
}

type flatLight struct {
	b *core
}

func (l flatLight) faceLight(ctx *buildContext, x, y, z, _ int, block world.BlockID, face world.Face) [4]lighting.PackedCol {
	c := l.col(ctx.x1+x, ctx.y1+y, ctx.z1+z, block, face)
	return [4]lighting.PackedCol{c, c, c, c}
}

func (l flatLight) col(x, y, z int, block world.BlockID, face world.Face) lighting.PackedCol {
	b := l.b
	off := int(b.blocks.LightOffset[block]>>face) & 1
	switch face {
	case world.FaceXMin:
		if x < off {
			return b.outside.XSide
		}
		return b.light.ColXSide(x-off, y, z)
	case world.FaceXMax:
		if x > b.maxX-off {
			return b.outside.XSide
		}
		return b.light.ColXSide(x+off, y, z)
	case world.FaceZMin:
		if z < off {
			return b.outside.ZSide
		}
		return b.light.ColZSide(x, y, z-off)
	case world.FaceZMax:
		if z > b.maxZ-off {
			return b.outside.ZSide
		}
		return b.light.ColZSide(x, y, z+off)
	case world.FaceYMin:
		if y <= 0 {
			return b.outside.YBottom
		}
		return b.light.ColYBottom(x, y-off, z)
	default:
		if y >= b.maxY {
			return b.outside.Top
		}
		return b.light.ColYTop(x, y+1-off, z)
	}
}
