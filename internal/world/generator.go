package world

import "math"

// Generator fills a fixed-size map from a noise heightmap.
type Generator struct {
	seed        int64
	scale       float64
	amp         float64
	octaves     int
	persistence float64
	lacunarity  float64
	// classic replaces the value noise heightmap when set.
	classic *classicHeights
}

// NewGenerator creates a new generator with default settings.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		seed:        seed,
		scale:       1.0 / 64.0,
		amp:         24,
		octaves:     4,
		persistence: 0.5,
		lacunarity:  2.0,
	}
}

// NewClassicGenerator creates a generator using the classic Perlin heightmap.
func NewClassicGenerator(seed int64) *Generator {
	g := NewGenerator(seed)
	g.classic = newClassicHeights(seed)
	return g
}

// HeightAt computes the surface height (block Y) at X,Z for a map of the
// given height. Terrain is centred on the map's water level.
func (g *Generator) HeightAt(x, z, mapHeight int) int {
	var height float64
	if g.classic != nil {
		height = float64(mapHeight/2) + g.classic.offset(x, z)
	} else {
		n := octaveNoise2D(float64(x)*g.scale, float64(z)*g.scale, g.seed, g.octaves, g.persistence, g.lacunarity)
		height = float64(mapHeight/2) + (n-0.5)*g.amp
	}
	height = math.Max(1, math.Min(height, float64(mapHeight-8)))
	return int(math.Floor(height))
}

// Populate overwrites every block of w.
func (g *Generator) Populate(w *World) {
	water := w.Env.EdgeHeight
	for z := 0; z < w.Length; z++ {
		for x := 0; x < w.Width; x++ {
			h := g.HeightAt(x, z, w.Height)
			g.column(w, x, z, h, water)
		}
	}
	// Decorations after terrain so trees can overhang neighbouring columns.
	for z := 2; z < w.Length-2; z++ {
		for x := 2; x < w.Width-2; x++ {
			g.decorate(w, x, z, water)
		}
	}
}

func (g *Generator) column(w *World, x, z, h, water int) {
	for y := 0; y < w.Height; y++ {
		var b BlockID
		switch {
		case y == 0:
			b = BlockBedrock
		case y < h-3:
			b = BlockStone
			if r := hash2(int64(x*31+y), int64(z), g.seed+7) % 97; r == 0 {
				b = BlockCoalOre
			}
		case y < h:
			b = BlockDirt
		case y == h:
			if h < water {
				b = BlockSand
			} else {
				b = BlockGrass
			}
		case y < water:
			b = BlockStillWater
		default:
			b = BlockAir
		}
		w.Blocks[w.Pack(x, y, z)] = b
	}
}

func (g *Generator) decorate(w *World, x, z, water int) {
	h := g.HeightAt(x, z, w.Height)
	if h < water || h+6 >= w.Height || w.GetBlock(x, h, z) != BlockGrass {
		return
	}
	r := hash2(int64(x), int64(z), g.seed+101) % 1000
	switch {
	case r < 4:
		g.tree(w, x, h+1, z)
	case r < 30:
		w.SetBlock(x, h+1, z, BlockDandelion)
	case r < 50:
		w.SetBlock(x, h+1, z, BlockRose)
	case r < 55:
		w.SetBlock(x, h+1, z, BlockBrownMushroom)
	}
}

func (g *Generator) tree(w *World, x, y, z int) {
	const trunk = 4
	for dy := -2; dy <= 1; dy++ {
		radius := 2
		if dy == 1 {
			radius = 1
		}
		for dz := -radius; dz <= radius; dz++ {
			for dx := -radius; dx <= radius; dx++ {
				ly := y + trunk + dy
				if w.SafeBlock(x+dx, ly, z+dz) == BlockAir {
					w.SetBlock(x+dx, ly, z+dz, BlockLeaves)
				}
			}
		}
	}
	for dy := 0; dy < trunk; dy++ {
		w.SetBlock(x, y+dy, z, BlockLog)
	}
}
