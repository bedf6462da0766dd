package world

import (
	"math/rand"
	"testing"
)

func TestImprovedNoiseZeroOnLattice(t *testing.T) {
	n := newImprovedNoise(rand.New(rand.NewSource(1)))
	for _, p := range [][2]float64{{0, 0}, {3, 7}, {-12, 40}} {
		if v := n.compute(p[0], p[1]); v != 0 {
			t.Fatalf("noise at lattice point %v: got %v, want 0", p, v)
		}
	}
	var nonZero bool
	for i := 0; i < 16; i++ {
		v := n.compute(float64(i)*0.37+0.1, float64(i)*0.21+0.3)
		if v < -2 || v > 2 {
			t.Fatalf("noise out of range: %v", v)
		}
		if v != 0 {
			nonZero = true
		}
	}
	if !nonZero {
		t.Fatalf("noise is flat")
	}
}

func TestClassicHeightsDeterministic(t *testing.T) {
	a, b := newClassicHeights(42), newClassicHeights(42)
	c := newClassicHeights(43)
	var differs bool
	for x := 0; x < 64; x += 7 {
		for z := 0; z < 64; z += 5 {
			if a.offset(x, z) != b.offset(x, z) {
				t.Fatalf("same seed differs at %d,%d", x, z)
			}
			if a.offset(x, z) != c.offset(x, z) {
				differs = true
			}
		}
	}
	if !differs {
		t.Fatalf("different seeds gave the same heightmap")
	}
}

func TestClassicGeneratorStaysInMap(t *testing.T) {
	w, err := New(64, 64, 64)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g := NewClassicGenerator(3)
	for x := 0; x < 64; x += 3 {
		for z := 0; z < 64; z += 3 {
			if h := g.HeightAt(x, z, w.Height); h < 1 || h > w.Height-8 {
				t.Fatalf("height %d at %d,%d outside [1,%d]", h, x, z, w.Height-8)
			}
		}
	}
	g.Populate(w)
	if b := w.GetBlock(10, 0, 10); b != BlockBedrock {
		t.Fatalf("got floor %d, want bedrock", b)
	}
}
