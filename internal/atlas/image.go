package atlas

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"
)

// LoadTerrain decodes a terrain image from disk.
func LoadTerrain(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open terrain %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode terrain %s: %w", path, err)
	}
	return img, nil
}

// TileSizeOf returns the tile size of a 16-tiles-wide terrain image.
func TileSizeOf(img image.Image) int {
	return max(1, img.Bounds().Dx()/TilesPerRow)
}

// Split copies the tiles of a terrain image into 1D pages.
// Images that are not square are rescaled with nearest neighbour first.
func Split(img image.Image, l Layout) []*image.RGBA {
	ts := l.TileSize
	side := ts * TilesPerRow
	src := img
	if b := img.Bounds(); b.Dx() != side || b.Dy() != side {
		scaled := image.NewRGBA(image.Rect(0, 0, side, side))
		draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, b, draw.Src, nil)
		src = scaled
	}
	origin := src.Bounds().Min

	pages := make([]*image.RGBA, l.Count)
	for i := range pages {
		pages[i] = image.NewRGBA(image.Rect(0, 0, ts, ts*l.TilesPerAtlas))
	}
	for loc := 0; loc < l.Count*l.TilesPerAtlas && loc < MaxTiles; loc++ {
		sx := origin.X + (loc%TilesPerRow)*ts
		sy := origin.Y + (loc/TilesPerRow)*ts
		page := pages[l.Index(TextureLoc(loc))]
		dy := l.Row(TextureLoc(loc)) * ts
		draw.Copy(page, image.Pt(0, dy), src, image.Rect(sx, sy, sx+ts, sy+ts), draw.Src, nil)
	}
	return pages
}

// Checker draws a procedural terrain image: every tile gets its own flat
// colour with a darker one pixel border.
func Checker(tileSize int) *image.RGBA {
	side := tileSize * TilesPerRow
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	for loc := 0; loc < MaxTiles; loc++ {
		c := tileColour(loc)
		edge := color.RGBA{c.R / 2, c.G / 2, c.B / 2, 255}
		x0 := (loc % TilesPerRow) * tileSize
		y0 := (loc / TilesPerRow) * tileSize
		draw.Draw(img, image.Rect(x0, y0, x0+tileSize, y0+tileSize), image.NewUniform(edge), image.Point{}, draw.Src)
		if tileSize > 2 {
			inner := image.Rect(x0+1, y0+1, x0+tileSize-1, y0+tileSize-1)
			draw.Draw(img, inner, image.NewUniform(c), image.Point{}, draw.Src)
		}
	}
	return img
}

func tileColour(loc int) color.RGBA {
	h := uint32(loc)*2654435761 + 0x9E37
	return color.RGBA{
		R: uint8(96 + (h>>8)%160),
		G: uint8(96 + (h>>16)%160),
		B: uint8(96 + (h>>24)%160),
		A: 255,
	}
}
