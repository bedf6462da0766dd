package meshing

import (
	"voxelmesh/internal/lighting"
	"voxelmesh/internal/registry"
	"voxelmesh/internal/world"
)

const (
	axisX = iota
	axisY
	axisZ
)

// stretchAxes returns the primary and secondary merge axis of a face.
func stretchAxes(face world.Face) (primary, secondary int) {
	switch face {
	case world.FaceXMin, world.FaceXMax:
		return axisZ, axisY
	case world.FaceZMin, world.FaceZMax:
		return axisX, axisY
	default:
		return axisX, axisZ
	}
}

// countFaces decides the drawn faces of the chunk, merges them and tallies
// the vertices of every part.
func (b *core) countFaces(ctx *buildContext) {
	draw := &b.blocks.Draw
	for y := 0; y < ctx.size[axisY]; y++ {
		for z := 0; z < ctx.size[axisZ]; z++ {
			for x := 0; x < ctx.size[axisX]; x++ {
				cIndex := extIndex(x, y, z)
				block := ctx.chunk[cIndex]
				if draw[block] == registry.DrawGas {
					continue
				}
				index := countIndex(x, y, z)

				if draw[block] == registry.DrawSprite {
					p := b.partFor(ctx, block, b.blocks.Texture(block, world.FaceXMax))
					p.sCount += 16
					continue
				}

				for face := world.Face(0); face < world.FaceCount; face++ {
					i := index + int(face)
					if ctx.counts[i] == 0 {
						continue
					}
					if !b.faceVisible(ctx, block, cIndex, x, y, z, face) {
						ctx.counts[i] = 0
						continue
					}
					cols := b.faceColours(ctx, x, y, z, cIndex, block, face)
					n, m := b.stretch(ctx, x, y, z, cIndex, block, face, cols)
					ctx.counts[i], ctx.spans[i], ctx.lights[i] = uint8(n), uint8(m), cols
					if n == 0 {
						continue
					}
					p := b.partFor(ctx, block, b.blocks.Texture(block, face))
					p.fCount[face] += 4
				}
			}
		}
	}
}

// faceVisible applies the hidden-face mask and the map border overrides to
// the face of the voxel at local (x,y,z).
func (b *core) faceVisible(ctx *buildContext, block world.BlockID, cIndex, x, y, z int, face world.Face) bool {
	if b.blocks.IsFaceHidden(block, ctx.chunk[cIndex+extOffset[face]], face) {
		return false
	}
	wx, wy, wz := ctx.x1+x, ctx.y1+y, ctx.z1+z
	switch face {
	case world.FaceXMin:
		return wx != 0 || !b.borderHidden(block, wy)
	case world.FaceXMax:
		return wx != b.maxX || !b.borderHidden(block, wy)
	case world.FaceZMin:
		return wz != 0 || !b.borderHidden(block, wy)
	case world.FaceZMax:
		return wz != b.maxZ || !b.borderHidden(block, wy)
	case world.FaceYMin:
		return wy != 0
	}
	return true
}

// borderHidden reports whether a side face on the map border at height y is
// covered by the border blocks or the edge liquid.
func (b *core) borderHidden(block world.BlockID, y int) bool {
	return y < b.sidesLevel || (b.blocks.Liquid[block] && y < b.edgeLevel)
}

// occludedLiquid reports whether the voxel above cIndex is opaque and boxed
// in, so a liquid surface below it can never be seen.
func (b *core) occludedLiquid(ctx *buildContext, cIndex int) bool {
	above := cIndex + extSize2
	draw := &b.blocks.Draw
	return b.blocks.FullOpaque[ctx.chunk[above]] &&
		draw[ctx.chunk[above-extSize]] != registry.DrawGas &&
		draw[ctx.chunk[above-1]] != registry.DrawGas &&
		draw[ctx.chunk[above+1]] != registry.DrawGas &&
		draw[ctx.chunk[above+extSize]] != registry.DrawGas
}

// stretch merges the visible face at local (x,y,z), lit with key, with the
// following faces along the primary and then the secondary axis. It returns
// the run length along each axis, or 0 if the face is dropped. Absorbed
// faces are zeroed.
func (b *core) stretch(ctx *buildContext, x, y, z, cIndex int, block world.BlockID, face world.Face, key [4]lighting.PackedCol) (n, m int) {
	liquidTop := face == world.FaceYMax && b.blocks.Liquid[block]
	if liquidTop && b.occludedLiquid(ctx, cIndex) {
		return 0, 0
	}
	if b.blocks.CanStretch[block]&(1<<face) == 0 {
		return 1, 1
	}

	bright := b.blocks.FullBright[block]
	origin := [3]int{x, y, z}
	primary, secondary := stretchAxes(face)

	canMerge := func(pos [3]int) bool {
		cx, cy, cz := pos[axisX], pos[axisY], pos[axisZ]
		if ctx.counts[countIndex(cx, cy, cz)+int(face)] == 0 {
			return false
		}
		c := extIndex(cx, cy, cz)
		if ctx.chunk[c] != block || !b.faceVisible(ctx, block, c, cx, cy, cz, face) {
			return false
		}
		if liquidTop && b.occludedLiquid(ctx, c) {
			return false
		}
		return bright || b.mode.faceLight(ctx, cx, cy, cz, c, block, face) == key
	}
	at := func(k, j int) [3]int {
		pos := origin
		pos[primary] += k
		pos[secondary] += j
		return pos
	}

	n = 1
	for origin[primary]+n < ctx.size[primary] && canMerge(at(n, 0)) {
		n++
	}
	m = 1
	if !liquidTop {
	rows:
		for origin[secondary]+m < ctx.size[secondary] {
			for k := 0; k < n; k++ {
				if !canMerge(at(k, m)) {
					break rows
				}
			}
			m++
		}
	}

	for j := 0; j < m; j++ {
		for k := 0; k < n; k++ {
			if j == 0 && k == 0 {
				continue
			}
			pos := at(k, j)
			ctx.counts[countIndex(pos[axisX], pos[axisY], pos[axisZ])+int(face)] = 0
		}
	}
	return n, m
}
