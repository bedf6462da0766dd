package atlas

import (
	"image"
	"image/color"
	"testing"
)

func TestNewLayout(t *testing.T) {
	l := NewLayout(256, 16, 1024)
	if l.TilesPerAtlas != 64 || l.Count != 4 {
		t.Fatalf("layout: got %d per atlas, %d atlases, want 64 and 4", l.TilesPerAtlas, l.Count)
	}
	if got := l.Index(130); got != 2 {
		t.Fatalf("Index(130): got %d, want 2", got)
	}
	if got := l.Row(130); got != 2 {
		t.Fatalf("Row(130): got %d, want 2", got)
	}
	if got := l.InvTileSize(); got != 1.0/64 {
		t.Fatalf("InvTileSize: got %v, want %v", got, 1.0/64)
	}
}

func TestNewLayoutSinglePage(t *testing.T) {
	l := NewLayout(256, 16, 8192)
	if l.TilesPerAtlas != 256 || l.Count != 1 {
		t.Fatalf("layout: got %+v", l)
	}
	if got := l.UsedCount(255); got != 1 {
		t.Fatalf("UsedCount: got %d, want 1", got)
	}
}

func TestUsedCount(t *testing.T) {
	l := NewLayout(256, 16, 512) // 32 tiles per page
	if got := l.UsedCount(31); got != 1 {
		t.Fatalf("UsedCount(31): got %d, want 1", got)
	}
	if got := l.UsedCount(32); got != 2 {
		t.Fatalf("UsedCount(32): got %d, want 2", got)
	}
	if got := l.UsedCount(255); got != l.Count {
		t.Fatalf("UsedCount(255): got %d, want %d", got, l.Count)
	}
}

func TestSplitPlacesTilesInRows(t *testing.T) {
	const ts = 4
	src := image.NewRGBA(image.Rect(0, 0, ts*TilesPerRow, ts*TilesPerRow))
	// Tile 17 (second row, second column) is solid red.
	red := color.RGBA{255, 0, 0, 255}
	for y := ts; y < 2*ts; y++ {
		for x := ts; x < 2*ts; x++ {
			src.SetRGBA(x, y, red)
		}
	}
	l := NewLayout(256, ts, 16*ts) // 16 tiles per page
	pages := Split(src, l)
	if len(pages) != 16 {
		t.Fatalf("pages: got %d, want 16", len(pages))
	}
	page := pages[l.Index(17)]
	y := l.Row(17)*ts + 1
	if got := page.RGBAAt(1, y); got != red {
		t.Fatalf("tile 17 pixel: got %v, want %v", got, red)
	}
	if got := pages[0].RGBAAt(1, 1); got == red {
		t.Fatalf("tile 0 should not be red")
	}
}

func TestSplitRescalesOddImages(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 90))
	l := NewLayout(256, 8, 2048)
	pages := Split(src, l)
	if b := pages[0].Bounds(); b.Dx() != 8 || b.Dy() != 8*l.TilesPerAtlas {
		t.Fatalf("page bounds: got %v", b)
	}
}

func TestCheckerSize(t *testing.T) {
	img := Checker(8)
	if b := img.Bounds(); b.Dx() != 128 || b.Dy() != 128 {
		t.Fatalf("bounds: got %v", b)
	}
	if TileSizeOf(img) != 8 {
		t.Fatalf("TileSizeOf: got %d, want 8", TileSizeOf(img))
	}
	if img.RGBAAt(4, 4) == img.RGBAAt(12, 4) {
		t.Fatalf("adjacent tiles should differ in colour")
	}
}
