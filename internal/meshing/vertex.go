package meshing

import (
	"voxelmesh/internal/lighting"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is the chunk vertex layout uploaded to the GPU (24 bytes).
//
// U and V are in 1/16 tile units, so a merged quad simply runs past 1.0 and
// the sampler wraps within the tile. The top bit flags the far edge of a
// quad; the shader pulls such coordinates in by a small epsilon so the edge
// texel never wraps around to the opposite side of the tile.
type Vertex struct {
	X, Y, Z float32
	U, V    uint16
	// Tile is the row of the texture inside its atlas page.
	Tile uint16
	_    uint16
	Col  lighting.PackedCol
}

func newVertex(pos mgl32.Vec3, u, v, tile uint16, col lighting.PackedCol) Vertex {
	return Vertex{X: pos.X(), Y: pos.Y(), Z: pos.Z(), U: u, V: v, Tile: tile, Col: col}
}

const (
	uvInset    = 0x8000
	uvMask     = 0x7FFF
	uvFracBits = 4
)

// packUV converts a coordinate in tiles to the fixed point vertex format.
func packUV(tiles float32) uint16 {
	if tiles <= 0 {
		return 0
	}
	v := int(tiles*(1<<uvFracBits) + 0.5)
	return uint16(min(v, uvMask))
}

// UnpackUV returns the coordinate in tiles and whether the inset flag is set.
func UnpackUV(packed uint16) (tiles float32, inset bool) {
	return float32(packed&uvMask) / (1 << uvFracBits), packed&uvInset != 0
}

// uvRange packs the near and far edge of a quad along one axis.
func uvRange(near, far float32) (uint16, uint16) {
	return packUV(near), packUV(far) | uvInset
}
