package world

import (
	"math"
	"math/rand"
)

// improvedNoise is 2D Perlin noise over a shuffled permutation table.
type improvedNoise struct {
	p [512]int
}

func newImprovedNoise(rnd *rand.Rand) *improvedNoise {
	n := &improvedNoise{}
	for i := 0; i < 256; i++ {
		n.p[i] = i
	}
	for i := 0; i < 256; i++ {
		j := rnd.Intn(256-i) + i
		n.p[i], n.p[j] = n.p[j], n.p[i]
		n.p[i+256] = n.p[i]
	}
	return n
}

// grad is the Perlin gradient with z fixed at 0.
func grad(hash int, x, y float64) float64 {
	h := hash & 15
	u := y
	if h < 8 {
		u = x
	}
	var v float64
	switch {
	case h < 4:
		v = y
	case h == 12 || h == 14:
		v = x
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

func (n *improvedNoise) compute(x, y float64) float64 {
	xf, yf := math.Floor(x), math.Floor(y)
	xi, yi := int(xf)&0xFF, int(yf)&0xFF
	x, y = x-xf, y-yf

	u, v := fade(x), fade(y)
	a := n.p[xi] + yi
	b := n.p[xi+1] + yi
	return lerp(
		lerp(grad(n.p[a], x, y), grad(n.p[b], x-1, y), u),
		lerp(grad(n.p[a+1], x, y-1), grad(n.p[b+1], x-1, y-1), u),
		v,
	)
}

// octaveNoise sums octaves with doubling amplitude and halving frequency.
type octaveNoise []*improvedNoise

func newOctaveNoise(rnd *rand.Rand, octaves int) octaveNoise {
	o := make(octaveNoise, octaves)
	for i := range o {
		o[i] = newImprovedNoise(rnd)
	}
	return o
}

func (o octaveNoise) compute(x, y float64) float64 {
	amp, freq, sum := 1.0, 1.0, 0.0
	for _, n := range o {
		sum += n.compute(x*freq, y*freq) * amp
		amp *= 2
		freq *= 0.5
	}
	return sum
}

// combinedNoise warps the x input of one octave noise by another.
type combinedNoise struct {
	n1, n2 octaveNoise
}

func (c combinedNoise) compute(x, y float64) float64 {
	return c.n1.compute(x+c.n2.compute(x, y), y)
}

// classicHeights is the heightmap of the classic map generator: low rolling
// hills with taller terrain where a selector noise is negative.
type classicHeights struct {
	low, high combinedNoise
	selector  octaveNoise
}

func newClassicHeights(seed int64) *classicHeights {
	rnd := rand.New(rand.NewSource(seed))
	return &classicHeights{
		low:      combinedNoise{newOctaveNoise(rnd, 8), newOctaveNoise(rnd, 8)},
		high:     combinedNoise{newOctaveNoise(rnd, 8), newOctaveNoise(rnd, 8)},
		selector: newOctaveNoise(rnd, 6),
	}
}

// offset returns the height relative to the water level.
func (c *classicHeights) offset(x, z int) float64 {
	fx, fz := float64(x), float64(z)
	h := c.low.compute(fx*1.3, fz*1.3)/6 - 4
	if c.selector.compute(fx, fz)/8 <= 0 {
		h = math.Max(h, c.high.compute(fx*1.3, fz*1.3)/5+6)
	}
	h *= 0.5
	if h < 0 {
		h *= 0.8
	}
	return h
}
