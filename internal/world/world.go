package world

import "fmt"

// Env holds the map border levels used by edge and sides rendering.
type Env struct {
	// EdgeHeight is the level of the liquid surrounding the map.
	EdgeHeight int
	// SidesOffset is added to EdgeHeight to get the bedrock sides level.
	SidesOffset int
	// Border is returned by SafeBlock for coordinates outside the map.
	Border BlockID
}

// SidesHeight returns the level of the solid map sides.
func (e Env) SidesHeight() int { return e.EdgeHeight + e.SidesOffset }

// DefaultEnv returns the classic border levels for a map of the given height.
func DefaultEnv(height int) Env {
	return Env{EdgeHeight: height / 2, SidesOffset: -2, Border: BlockAir}
}

// World is a fixed-size dense voxel grid.
type World struct {
	Width, Height, Length int
	MaxX, MaxY, MaxZ      int
	Blocks                []BlockID
	Env                   Env
}

// New allocates an all-air world.
func New(width, height, length int) (*World, error) {
	if width <= 0 || height <= 0 || length <= 0 {
		return nil, fmt.Errorf("world: invalid dimensions %dx%dx%d", width, height, length)
	}
	return &World{
		Width: width, Height: height, Length: length,
		MaxX: width - 1, MaxY: height - 1, MaxZ: length - 1,
		Blocks: make([]BlockID, width*height*length),
		Env:    DefaultEnv(height),
	}, nil
}

// Pack returns the index of (x,y,z) in Blocks.
func (w *World) Pack(x, y, z int) int {
	return (y*w.Length+z)*w.Width + x
}

// Contains reports whether (x,y,z) lies inside the map.
func (w *World) Contains(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < w.Width && y < w.Height && z < w.Length
}

// GetBlock returns the block at (x,y,z), which must be inside the map.
func (w *World) GetBlock(x, y, z int) BlockID {
	return w.Blocks[w.Pack(x, y, z)]
}

// SafeBlock returns the block at (x,y,z), or the border block outside the map.
func (w *World) SafeBlock(x, y, z int) BlockID {
	if !w.Contains(x, y, z) {
		return w.Env.Border
	}
	return w.Blocks[w.Pack(x, y, z)]
}

// SetBlock stores b at (x,y,z). Out of range writes are ignored.
func (w *World) SetBlock(x, y, z int, b BlockID) {
	if !w.Contains(x, y, z) {
		return
	}
	w.Blocks[w.Pack(x, y, z)] = b
}

// Dims returns the map dimensions.
func (w *World) Dims() (width, height, length int) {
	return w.Width, w.Height, w.Length
}

// Row returns the X row at (y,z). The slice aliases the map storage.
func (w *World) Row(y, z int) []BlockID {
	i := w.Pack(0, y, z)
	return w.Blocks[i : i+w.Width]
}

// Fill sets every block in the inclusive box to b, clipped to the map.
func (w *World) Fill(x1, y1, z1, x2, y2, z2 int, b BlockID) {
	x1, y1, z1 = max(x1, 0), max(y1, 0), max(z1, 0)
	x2, y2, z2 = min(x2, w.MaxX), min(y2, w.MaxY), min(z2, w.MaxZ)
	for y := y1; y <= y2; y++ {
		for z := z1; z <= z2; z++ {
			row := w.Row(y, z)
			for x := x1; x <= x2; x++ {
				row[x] = b
			}
		}
	}
}
