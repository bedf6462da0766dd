package lighting

import (
	"math"

	"voxelmesh/internal/registry"
	"voxelmesh/internal/world"
)

const (
	unsetHeight = math.MaxInt16
	// emptyHeight is the light height of a column with no light blocker.
	emptyHeight = -10
)

// DefaultShadow is the classic shadow colour.
var DefaultShadow = NewCol(155, 155, 155, 255)

// Outside holds the colours used for faces on the map border.
type Outside struct {
	Top, XSide, ZSide, YBottom PackedCol
}

// Basic is heightmap lighting: a cell is lit iff it is above the highest
// light-blocking block of its column.
type Basic struct {
	w       *world.World
	blocks  *registry.Table
	heights []int16

	sun, sunX, sunZ, sunYMin             PackedCol
	shadow, shadowX, shadowZ, shadowYMin PackedCol
}

// NewBasic creates heightmap lighting over w.
func NewBasic(w *world.World, blocks *registry.Table) *Basic {
	l := &Basic{blocks: blocks}
	l.SetSun(White)
	l.SetShadow(DefaultShadow)
	l.Reset(w)
	return l
}

// Reset attaches the lighting to a new map and drops the heightmap.
func (l *Basic) Reset(w *world.World) {
	l.w = w
	l.heights = make([]int16, w.Width*w.Length)
	l.Refresh()
}

// Refresh invalidates every column, e.g. after block definitions changed.
func (l *Basic) Refresh() {
	for i := range l.heights {
		l.heights[i] = unsetHeight
	}
}

// SetSun sets the lit colour.
func (l *Basic) SetSun(c PackedCol) {
	l.sun = c
	l.sunX, l.sunZ, l.sunYMin = Shaded(c)
}

// SetShadow sets the unlit colour.
func (l *Basic) SetShadow(c PackedCol) {
	l.shadow = c
	l.shadowX, l.shadowZ, l.shadowYMin = Shaded(c)
}

func (l *Basic) Sun() PackedCol    { return l.sun }
func (l *Basic) Shadow() PackedCol { return l.shadow }

// Outside returns the colours for faces on the map border.
func (l *Basic) Outside() Outside {
	return Outside{Top: l.sun, XSide: l.sunX, ZSide: l.sunZ, YBottom: l.sunYMin}
}

// Height returns the light height of column (x,z).
func (l *Basic) Height(x, z int) int {
	i := z*l.w.Width + x
	if h := l.heights[i]; h != unsetHeight {
		return int(h)
	}
	h := l.calcHeight(x, z)
	l.heights[i] = int16(h)
	return h
}

func (l *Basic) calcHeight(x, z int) int {
	for y := l.w.MaxY; y >= 0; y-- {
		b := l.w.GetBlock(x, y, z)
		if l.blocks.BlocksLight[b] {
			offset := int(l.blocks.LightOffset[b]>>world.FaceYMax) & 1
			return y - offset
		}
	}
	return emptyHeight
}

// IsLit reports whether cell (x,y,z) receives sunlight. Columns outside the
// map are always lit.
func (l *Basic) IsLit(x, y, z int) bool {
	if x < 0 || z < 0 || x >= l.w.Width || z >= l.w.Length {
		return true
	}
	return y > l.Height(x, z)
}

func (l *Basic) Col(x, y, z int) PackedCol {
	if l.IsLit(x, y, z) {
		return l.sun
	}
	return l.shadow
}

func (l *Basic) ColXSide(x, y, z int) PackedCol {
	if l.IsLit(x, y, z) {
		return l.sunX
	}
	return l.shadowX
}

func (l *Basic) ColZSide(x, y, z int) PackedCol {
	if l.IsLit(x, y, z) {
		return l.sunZ
	}
	return l.shadowZ
}

func (l *Basic) ColYBottom(x, y, z int) PackedCol {
	if l.IsLit(x, y, z) {
		return l.sunYMin
	}
	return l.shadowYMin
}

func (l *Basic) ColYTop(x, y, z int) PackedCol {
	return l.Col(x, y, z)
}

// OnBlockChanged updates the column of (x,z) after the world block changed.
// oldH is the Height of the column read before the change. It returns the
// inclusive range of y levels whose lit state flipped.
func (l *Basic) OnBlockChanged(x, z, oldH int) (minY, maxY int, changed bool) {
	if x < 0 || z < 0 || x >= l.w.Width || z >= l.w.Length {
		return 0, 0, false
	}
	newH := l.calcHeight(x, z)
	l.heights[z*l.w.Width+x] = int16(newH)
	if oldH == newH {
		return 0, 0, false
	}
	return min(oldH, newH) + 1, max(oldH, newH), true
}
