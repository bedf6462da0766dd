package world

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestPackIsRowMajor(t *testing.T) {
	w, err := New(4, 3, 5)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got, want := w.Pack(1, 0, 0), 1; got != want {
		t.Fatalf("Pack(1,0,0): got %d, want %d", got, want)
	}
	if got, want := w.Pack(0, 0, 1), 4; got != want {
		t.Fatalf("Pack(0,0,1): got %d, want %d", got, want)
	}
	if got, want := w.Pack(0, 1, 0), 20; got != want {
		t.Fatalf("Pack(0,1,0): got %d, want %d", got, want)
	}
}

func TestNewRejectsEmptyDimensions(t *testing.T) {
	if _, err := New(0, 16, 16); err == nil {
		t.Fatalf("expected error for zero width")
	}
}

func TestRowAliasesStorage(t *testing.T) {
	w, _ := New(8, 8, 8)
	row := w.Row(2, 3)
	row[5] = BlockStone
	if got := w.GetBlock(5, 2, 3); got != BlockStone {
		t.Fatalf("GetBlock after Row write: got %d, want %d", got, BlockStone)
	}
	if len(row) != w.Width {
		t.Fatalf("row length: got %d, want %d", len(row), w.Width)
	}
}

func TestSafeBlockReturnsBorder(t *testing.T) {
	w, _ := New(4, 4, 4)
	w.Env.Border = BlockBedrock
	if got := w.SafeBlock(-1, 0, 0); got != BlockBedrock {
		t.Fatalf("SafeBlock outside: got %d, want %d", got, BlockBedrock)
	}
	w.SetBlock(9, 9, 9, BlockStone) // ignored
	if got := w.SafeBlock(0, 0, 0); got != BlockAir {
		t.Fatalf("SafeBlock inside: got %d, want air", got)
	}
}

func TestFillClipsToMap(t *testing.T) {
	w, _ := New(4, 4, 4)
	w.Fill(-5, 1, -5, 10, 1, 10, BlockDirt)
	n := 0
	for _, b := range w.Blocks {
		if b == BlockDirt {
			n++
		}
	}
	if n != 16 {
		t.Fatalf("filled blocks: got %d, want 16", n)
	}
}

func TestGeneratorDeterministic(t *testing.T) {
	a, _ := New(32, 64, 32)
	b, _ := New(32, 64, 32)
	NewGenerator(99).Populate(a)
	NewGenerator(99).Populate(b)
	if !bytes.Equal(blockBytes(a), blockBytes(b)) {
		t.Fatalf("same seed produced different maps")
	}
	if a.GetBlock(0, 0, 0) != BlockBedrock {
		t.Fatalf("expected bedrock floor, got %d", a.GetBlock(0, 0, 0))
	}
	if top := a.GetBlock(5, a.MaxY, 5); top != BlockAir {
		t.Fatalf("expected air at the ceiling, got %d", top)
	}
}

func TestMapFileRoundTrip(t *testing.T) {
	w, _ := New(16, 32, 16)
	NewGenerator(5).Populate(w)
	w.Env.SidesOffset = -4

	path := filepath.Join(t.TempDir(), "maps", "test.vxm")
	if err := SaveMap(path, w); err != nil {
		t.Fatalf("SaveMap: %v", err)
	}
	got, err := LoadMap(path)
	if err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	if got.Width != w.Width || got.Height != w.Height || got.Length != w.Length {
		t.Fatalf("dims: got %dx%dx%d", got.Width, got.Height, got.Length)
	}
	if got.Env != w.Env {
		t.Fatalf("env: got %+v, want %+v", got.Env, w.Env)
	}
	if !bytes.Equal(blockBytes(got), blockBytes(w)) {
		t.Fatalf("blocks differ after round trip")
	}
}

func TestReadMapRejectsGarbage(t *testing.T) {
	if _, err := readMap(bytes.NewReader([]byte("not a map at all"))); err == nil {
		t.Fatalf("expected error for bad magic")
	}
}

func blockBytes(w *World) []byte {
	out := make([]byte, len(w.Blocks))
	for i, b := range w.Blocks {
		out[i] = byte(b)
	}
	return out
}
