// Package atlas maps 2D terrain texture locations onto 1D atlas pages.
//
// A terrain image is a 16-tiles-wide grid. For rendering it is cut into
// pages that are one tile wide and TilesPerAtlas tiles tall, so that a
// greedy quad can repeat its texture along both axes with plain wrapping.
// Vertices are batched per page ("bucket").
package atlas

// TextureLoc is the index of a tile in the 2D terrain image.
type TextureLoc uint16

const (
	// TilesPerRow is the width of the 2D terrain image in tiles.
	TilesPerRow = 16
	// MaxTiles is the number of addressable tiles.
	MaxTiles = TilesPerRow * TilesPerRow
)

// Layout describes how tiles are spread over 1D pages.
type Layout struct {
	TilesPerAtlas int
	Count         int
	TileSize      int
}

// NewLayout fits totalTiles tiles of tileSize pixels into pages no taller
// than maxPageHeight pixels.
func NewLayout(totalTiles, tileSize, maxPageHeight int) Layout {
	if totalTiles <= 0 {
		totalTiles = MaxTiles
	}
	if tileSize <= 0 {
		tileSize = 16
	}
	perAtlas := min(totalTiles, max(1, maxPageHeight/tileSize))
	return Layout{
		TilesPerAtlas: perAtlas,
		Count:         (totalTiles + perAtlas - 1) / perAtlas,
		TileSize:      tileSize,
	}
}

// Index returns the page (bucket) holding loc.
func (l Layout) Index(loc TextureLoc) int {
	return int(loc) / l.TilesPerAtlas
}

// Row returns the row of loc within its page.
func (l Layout) Row(loc TextureLoc) int {
	return int(loc) % l.TilesPerAtlas
}

// InvTileSize is the height of one tile in page texture coordinates.
func (l Layout) InvTileSize() float32 {
	return 1 / float32(l.TilesPerAtlas)
}

// UsedCount returns how many pages are needed to reach maxLoc.
func (l Layout) UsedCount(maxLoc TextureLoc) int {
	return min(l.Index(maxLoc)+1, l.Count)
}
