package lighting

import (
	"testing"

	"voxelmesh/internal/registry"
	"voxelmesh/internal/world"
)

func TestPackedColChannels(t *testing.T) {
	c := NewCol(10, 20, 30, 40)
	if c.R() != 10 || c.G() != 20 || c.B() != 30 || c.A() != 40 {
		t.Fatalf("channels: got %d %d %d %d", c.R(), c.G(), c.B(), c.A())
	}
	if got := White.Scale(0.5); got != NewCol(127, 127, 127, 255) {
		t.Fatalf("Scale: got %08x", uint32(got))
	}
	if got := NewCol(200, 100, 50, 255).Tint(NewCol(255, 0, 255, 0)); got != NewCol(200, 0, 50, 255) {
		t.Fatalf("Tint: got %08x", uint32(got))
	}
	if got := Average(White, Black, White, Black); got != NewCol(127, 127, 127, 255) {
		t.Fatalf("Average: got %08x", uint32(got))
	}
}

func newLitWorld(t *testing.T) (*world.World, *Basic) {
	t.Helper()
	w, err := world.New(8, 16, 8)
	if err != nil {
		t.Fatalf("world.New: %v", err)
	}
	return w, NewBasic(w, registry.Default())
}

func TestHeightmap(t *testing.T) {
	w, l := newLitWorld(t)
	if got := l.Height(1, 1); got != emptyHeight {
		t.Fatalf("empty column: got %d, want %d", got, emptyHeight)
	}

	w.SetBlock(2, 5, 2, world.BlockStone)
	l.Refresh()
	if got := l.Height(2, 2); got != 4 {
		t.Fatalf("stone column: got %d, want 4", got)
	}
	if !l.IsLit(2, 5, 2) || !l.IsLit(2, 6, 2) {
		t.Fatalf("cells at and above the blocker should be lit")
	}
	if l.IsLit(2, 4, 2) {
		t.Fatalf("cell below the blocker should be in shadow")
	}

	w.SetBlock(3, 5, 3, world.BlockSlab)
	l.Refresh()
	if got := l.Height(3, 3); got != 5 {
		t.Fatalf("slab column: got %d, want 5", got)
	}

	w.SetBlock(4, 9, 4, world.BlockGlass)
	l.Refresh()
	if got := l.Height(4, 4); got != emptyHeight {
		t.Fatalf("glass should not block light: got %d", got)
	}
}

func TestFaceColours(t *testing.T) {
	w, l := newLitWorld(t)
	w.SetBlock(1, 8, 1, world.BlockStone)
	l.Refresh()

	if got := l.ColYTop(1, 9, 1); got != White {
		t.Fatalf("lit top: got %08x", uint32(got))
	}
	if got := l.Col(1, 3, 1); got != DefaultShadow {
		t.Fatalf("shadow: got %08x", uint32(got))
	}
	if got, want := l.ColXSide(1, 9, 1), White.Scale(ShadeX); got != want {
		t.Fatalf("lit x side: got %08x, want %08x", uint32(got), uint32(want))
	}
	if got, want := l.ColZSide(1, 3, 1), DefaultShadow.Scale(ShadeZ); got != want {
		t.Fatalf("shadow z side: got %08x, want %08x", uint32(got), uint32(want))
	}
	if got, want := l.ColYBottom(1, 3, 1), DefaultShadow.Scale(ShadeYMin); got != want {
		t.Fatalf("shadow bottom: got %08x, want %08x", uint32(got), uint32(want))
	}
	if !l.IsLit(-1, 0, 3) {
		t.Fatalf("outside columns should be lit")
	}
	if got := l.Outside().XSide; got != White.Scale(ShadeX) {
		t.Fatalf("outside x side: got %08x", uint32(got))
	}

	l.SetSun(NewCol(250, 200, 100, 255))
	if got := l.ColYTop(1, 9, 1); got != NewCol(250, 200, 100, 255) {
		t.Fatalf("SetSun not applied: got %08x", uint32(got))
	}
}

func TestOnBlockChanged(t *testing.T) {
	w, l := newLitWorld(t)
	w.SetBlock(2, 3, 2, world.BlockStone)
	l.Refresh()

	old := l.Height(2, 2)
	w.SetBlock(2, 10, 2, world.BlockStone)
	lo, hi, changed := l.OnBlockChanged(2, 2, old)
	if !changed || lo != 3 || hi != 9 {
		t.Fatalf("raise: got %d..%d changed=%v, want 3..9 true", lo, hi, changed)
	}

	old = l.Height(2, 2)
	w.SetBlock(2, 12, 2, world.BlockGlass)
	if _, _, changed := l.OnBlockChanged(2, 2, old); changed {
		t.Fatalf("glass placement should not change the column")
	}
	if _, _, changed := l.OnBlockChanged(-4, 2, 0); changed {
		t.Fatalf("outside column should be ignored")
	}
}
