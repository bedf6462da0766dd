package meshing

import (
	"voxelmesh/internal/lighting"
	"voxelmesh/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	spriteMin     = 2.5 / 16
	spriteMax     = 13.5 / 16
	spriteStretch = 1.7 / 16
)

// javaRandom is the 48-bit linear congruential generator of java.util.Random.
// Sprite jitter must match it so plant offsets are stable between clients.
type javaRandom struct {
	seed int64
}

const (
	jrMultiplier = 0x5DEECE66D
	jrAddend     = 0xB
	jrMask       = 1<<48 - 1
)

func newJavaRandom(seed int64) *javaRandom {
	return &javaRandom{seed: (seed ^ jrMultiplier) & jrMask}
}

func (r *javaRandom) next(bits uint) int32 {
	r.seed = (r.seed*jrMultiplier + jrAddend) & jrMask
	return int32(r.seed >> (48 - bits))
}

// nextN returns a value in [0,n).
func (r *javaRandom) nextN(n int32) int32 {
	if n&-n == n {
		return int32((int64(n) * int64(r.next(31))) >> 31)
	}
	for {
		bits := r.next(31)
		val := bits % n
		if bits-val+(n-1) >= 0 {
			return val
		}
	}
}

// rangeN returns a value in [lo,hi).
func (r *javaRandom) rangeN(lo, hi int32) int32 {
	return lo + r.nextN(hi-lo)
}

// drawSprite writes the four quads of a cross sprite: Z diagonal, Z mirrored,
// X diagonal, X mirrored. Each group lies sAdvance vertices after the last so
// the renderer can pick the groups facing the camera.
func (b *core) drawSprite(ctx *buildContext, x, y, z int, block world.BlockID) {
	tex := b.blocks.Texture(block, world.FaceXMax)
	p := b.partFor(ctx, block, tex)
	wx, wy, wz := ctx.x1+x, ctx.y1+y, ctx.z1+z

	origin := mgl32.Vec3{float32(wx), float32(wy), float32(wz)}
	lo := origin.Add(mgl32.Vec3{spriteMin, 0, spriteMin})
	hi := origin.Add(mgl32.Vec3{spriteMax, 1, spriteMax})

	if offset := b.blocks.SpriteOffset[block]; offset == 6 || offset == 7 {
		rng := newJavaRandom(int64((wx + 1217*wz) & 0x7fffffff))
		dx := float32(rng.rangeN(-3, 4)) / 16
		dy := float32(rng.rangeN(0, 4)) / 16
		dz := float32(rng.rangeN(-3, 4)) / 16
		if offset != 7 {
			dy = 0
		}
		stretch := mgl32.Vec3{spriteStretch, 0, spriteStretch}
		shift := mgl32.Vec3{dx, -dy, dz}
		lo = lo.Add(shift).Sub(stretch)
		hi = hi.Add(shift).Add(stretch)
	}

	col := lighting.White
	if !b.blocks.FullBright[block] {
		col = b.light.Col(wx, wy, wz)
	}
	if b.blocks.Tinted[block] {
		t := b.blocks.Tint[block]
		col = col.Tint(lighting.NewCol(t[0], t[1], t[2], 255))
	}

	u1, u2 := uvRange(0, 1)
	v1, v2 := uvRange(0, 1)
	tile := uint16(b.layout.Row(tex))
	// Bottom corners of each quad; the top corners lie up above them.
	quads := [4][2]mgl32.Vec3{
		{{lo.X(), lo.Y(), lo.Z()}, {hi.X(), lo.Y(), hi.Z()}},
		{{hi.X(), lo.Y(), hi.Z()}, {lo.X(), lo.Y(), lo.Z()}},
		{{lo.X(), lo.Y(), hi.Z()}, {hi.X(), lo.Y(), lo.Z()}},
		{{hi.X(), lo.Y(), lo.Z()}, {lo.X(), lo.Y(), hi.Z()}},
	}
	up := mgl32.Vec3{0, hi.Y() - lo.Y(), 0}

	at := p.sCursor
	for _, q := range quads {
		from, to := q[0], q[1]
		b.arena[at+0] = newVertex(from, u2, v2, tile, col)
		b.arena[at+1] = newVertex(from.Add(up), u2, v1, tile, col)
		b.arena[at+2] = newVertex(to.Add(up), u1, v1, tile, col)
		b.arena[at+3] = newVertex(to, u1, v2, tile, col)
		at += p.sAdvance
	}
	p.sCursor += 4
}
