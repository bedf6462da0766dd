package graphics

import (
	"testing"

	"golang.org/x/image/font/basicfont"
)

func TestRasterizeLinesSize(t *testing.T) {
	face := basicfont.Face7x13
	img := RasterizeLines(face, []string{"chunks 12", "fps 60.0"})

	// 9 glyphs of 7px, two 13px lines, padding on both sides.
	if got, want := img.Bounds().Dx(), 9*7+2*textPadding; got != want {
		t.Fatalf("width: got %d, want %d", got, want)
	}
	if got, want := img.Bounds().Dy(), 2*13+2*textPadding; got != want {
		t.Fatalf("height: got %d, want %d", got, want)
	}
	if c := img.RGBAAt(0, 0); c != textBackground {
		t.Fatalf("corner: got %v, want background", c)
	}

	var lit int
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] == 0xff {
			lit++
		}
	}
	if lit == 0 {
		t.Fatalf("no glyph pixels drawn")
	}
}

func TestLoadFaceMissingFile(t *testing.T) {
	if _, err := LoadFace("/nonexistent/font.ttf", 14); err == nil {
		t.Fatalf("expected error for missing font")
	}
	face, err := LoadFace("", 14)
	if err != nil || face != basicfont.Face7x13 {
		t.Fatalf("empty path: got %v, %v", face, err)
	}
}
