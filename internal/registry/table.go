package registry

import (
	"voxelmesh/internal/atlas"
	"voxelmesh/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const faceMaskAll = 1<<world.FaceCount - 1

// Table is the flattened per-block lookup data used by meshing and lighting.
type Table struct {
	Names   [world.BlockCount]string
	Defined [world.BlockCount]bool

	Draw         [world.BlockCount]DrawStyle
	FullOpaque   [world.BlockCount]bool
	FullBright   [world.BlockCount]bool
	BlocksLight  [world.BlockCount]bool
	Liquid       [world.BlockCount]bool
	Tinted       [world.BlockCount]bool
	Tint         [world.BlockCount][3]uint8
	SpriteOffset [world.BlockCount]uint8
	// LightOffset has a bit per face that is flush with the cell boundary;
	// such faces take their light from the neighbouring cell.
	LightOffset [world.BlockCount]uint8
	// CanStretch has a bit per face that may be merged with neighbours.
	CanStretch [world.BlockCount]uint8

	MinBB, MaxBB             [world.BlockCount]mgl32.Vec3
	RenderMinBB, RenderMaxBB [world.BlockCount]mgl32.Vec3

	Textures [world.BlockCount * world.FaceCount]atlas.TextureLoc

	hidden [world.BlockCount * world.BlockCount]uint8
}

// NewTable builds a table from definitions. Undefined IDs behave like air.
func NewTable(defs []Definition) *Table {
	t := &Table{}
	for i := range world.BlockCount {
		t.reset(world.BlockID(i))
	}
	for _, def := range defs {
		t.set(def)
	}
	t.RecalculateCulling()
	return t
}

// Default builds a table from the built-in definitions.
func Default() *Table {
	return NewTable(DefaultDefinitions())
}

func (t *Table) reset(id world.BlockID) {
	t.Names[id] = ""
	t.Defined[id] = false
	t.Draw[id] = DrawGas
	t.FullOpaque[id] = false
	t.FullBright[id] = false
	t.BlocksLight[id] = false
	t.Liquid[id] = false
	t.Tinted[id] = false
	t.SpriteOffset[id] = 0
	t.MinBB[id] = mgl32.Vec3{0, 0, 0}
	t.MaxBB[id] = mgl32.Vec3{1, 1, 1}
	t.RenderMinBB[id] = t.MinBB[id]
	t.RenderMaxBB[id] = t.MaxBB[id]
	t.LightOffset[id] = faceMaskAll
	t.CanStretch[id] = 0
	for f := range world.FaceCount {
		t.Textures[int(id)*world.FaceCount+f] = 0
	}
}

// Define replaces one block definition and refreshes the derived culling data.
func (t *Table) Define(def Definition) {
	t.set(def)
	t.RecalculateCulling()
}

// Undefine reverts a block to air.
func (t *Table) Undefine(id world.BlockID) {
	t.reset(id)
	t.RecalculateCulling()
}

func (t *Table) set(def Definition) {
	id := def.ID
	t.reset(id)
	t.Names[id] = def.Name
	t.Defined[id] = true
	t.Draw[id] = def.Draw
	t.FullBright[id] = def.FullBright
	t.BlocksLight[id] = def.BlocksLight
	t.Liquid[id] = def.Liquid
	t.Tinted[id] = def.Tinted
	t.Tint[id] = def.Tint
	t.SpriteOffset[id] = def.SpriteOffset
	t.MinBB[id] = def.Min
	t.MaxBB[id] = def.Max
	for f := range world.FaceCount {
		t.Textures[int(id)*world.FaceCount+f] = def.Textures[f]
	}

	full := def.Min == (mgl32.Vec3{0, 0, 0}) && def.Max == (mgl32.Vec3{1, 1, 1})
	t.FullOpaque[id] = def.Draw == DrawOpaque && full && !def.Liquid
	t.calcRenderBounds(id)
	t.LightOffset[id] = flushFaces(def.Min, def.Max)

	switch {
	case def.HasStretch:
		t.CanStretch[id] = def.Stretch
	case def.Draw == DrawSprite || def.Draw == DrawGas:
		t.CanStretch[id] = 0
	case def.Liquid:
		t.CanStretch[id] = 1 << world.FaceYMax
	default:
		t.CanStretch[id] = stretchFaces(def.Min, def.Max)
	}
}

// calcRenderBounds lowers liquids slightly below the cell top.
func (t *Table) calcRenderBounds(id world.BlockID) {
	min, max := t.MinBB[id], t.MaxBB[id]
	if t.Liquid[id] {
		min[0] -= 0.1 / 16
		max[0] -= 0.1 / 16
		min[2] -= 0.1 / 16
		max[2] -= 0.1 / 16
		min[1] -= 1.5 / 16
		max[1] -= 1.5 / 16
	}
	t.RenderMinBB[id], t.RenderMaxBB[id] = min, max
}

// flushFaces returns a bit per face lying on the cell boundary.
func flushFaces(min, max mgl32.Vec3) uint8 {
	var flags uint8
	if min.X() == 0 {
		flags |= 1 << world.FaceXMin
	}
	if max.X() == 1 {
		flags |= 1 << world.FaceXMax
	}
	if min.Z() == 0 {
		flags |= 1 << world.FaceZMin
	}
	if max.Z() == 1 {
		flags |= 1 << world.FaceZMax
	}
	if min.Y() == 0 {
		flags |= 1 << world.FaceYMin
	}
	if max.Y() == 1 {
		flags |= 1 << world.FaceYMax
	}
	return flags
}

// stretchFaces allows merging on faces whose in-plane extent covers the
// whole cell, so the texture tiles seamlessly across voxels.
func stretchFaces(min, max mgl32.Vec3) uint8 {
	fullX := min.X() == 0 && max.X() == 1
	fullY := min.Y() == 0 && max.Y() == 1
	fullZ := min.Z() == 0 && max.Z() == 1
	var flags uint8
	if fullY && fullZ {
		flags |= 1<<world.FaceXMin | 1<<world.FaceXMax
	}
	if fullX && fullY {
		flags |= 1<<world.FaceZMin | 1<<world.FaceZMax
	}
	if fullX && fullZ {
		flags |= 1<<world.FaceYMin | 1<<world.FaceYMax
	}
	return flags
}

// Texture returns the texture of a block face.
func (t *Table) Texture(b world.BlockID, face world.Face) atlas.TextureLoc {
	return t.Textures[int(b)*world.FaceCount+int(face)]
}

// MaxTextureLoc returns the highest texture used by any visible block.
func (t *Table) MaxTextureLoc() atlas.TextureLoc {
	var maxLoc atlas.TextureLoc
	for b := range world.BlockCount {
		if !t.Defined[b] || t.Draw[b] == DrawGas {
			continue
		}
		for f := range world.FaceCount {
			maxLoc = max(maxLoc, t.Textures[b*world.FaceCount+f])
		}
	}
	return maxLoc
}

// ByName looks a block up by its definition name.
func (t *Table) ByName(name string) (world.BlockID, bool) {
	for b := range world.BlockCount {
		if t.Defined[b] && t.Names[b] == name {
			return world.BlockID(b), true
		}
	}
	return 0, false
}
