package lighting

// PackedCol is an RGBA colour stored as R | G<<8 | B<<16 | A<<24, which is
// byte order R, G, B, A in a little-endian vertex buffer.
type PackedCol uint32

const (
	White PackedCol = 0xFFFFFFFF
	Black PackedCol = 0xFF000000
)

// Face shading factors applied to sun and shadow colours.
const (
	ShadeX    = 0.6
	ShadeZ    = 0.8
	ShadeYMin = 0.5
)

// NewCol packs the given channels.
func NewCol(r, g, b, a uint8) PackedCol {
	return PackedCol(uint32(r) | uint32(g)<<8 | uint32(b)<<16 | uint32(a)<<24)
}

func (c PackedCol) R() uint8 { return uint8(c) }
func (c PackedCol) G() uint8 { return uint8(c >> 8) }
func (c PackedCol) B() uint8 { return uint8(c >> 16) }
func (c PackedCol) A() uint8 { return uint8(c >> 24) }

// Scale multiplies the colour channels by t, keeping alpha.
func (c PackedCol) Scale(t float32) PackedCol {
	return NewCol(uint8(float32(c.R())*t), uint8(float32(c.G())*t), uint8(float32(c.B())*t), c.A())
}

// Tint multiplies c channel-wise by other, keeping c's alpha.
func (c PackedCol) Tint(other PackedCol) PackedCol {
	mul := func(a, b uint8) uint8 { return uint8(uint16(a) * uint16(b) / 255) }
	return NewCol(mul(c.R(), other.R()), mul(c.G(), other.G()), mul(c.B(), other.B()), c.A())
}

// Shaded returns the X side, Z side and bottom variants of c.
func Shaded(c PackedCol) (xSide, zSide, yBottom PackedCol) {
	return c.Scale(ShadeX), c.Scale(ShadeZ), c.Scale(ShadeYMin)
}

// Average returns the per-channel mean of four colours.
func Average(a, b, c, d PackedCol) PackedCol {
	avg := func(s func(PackedCol) uint8) uint8 {
		return uint8((uint16(s(a)) + uint16(s(b)) + uint16(s(c)) + uint16(s(d))) / 4)
	}
	return NewCol(avg(PackedCol.R), avg(PackedCol.G), avg(PackedCol.B), avg(PackedCol.A))
}
