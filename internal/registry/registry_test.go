package registry

import (
	"testing"

	"voxelmesh/internal/world"
)

func TestDefaultTable(t *testing.T) {
	tbl := Default()
	if tbl.Draw[world.BlockAir] != DrawGas {
		t.Fatalf("air draw: got %d, want gas", tbl.Draw[world.BlockAir])
	}
	if !tbl.FullOpaque[world.BlockStone] {
		t.Fatalf("stone should be fully opaque")
	}
	if tbl.FullOpaque[world.BlockSlab] {
		t.Fatalf("slab should not be fully opaque")
	}
	if got := tbl.Texture(world.BlockGrass, world.FaceYMax); got != 0 {
		t.Fatalf("grass top texture: got %d, want 0", got)
	}
	if got := tbl.Texture(world.BlockGrass, world.FaceXMin); got != 3 {
		t.Fatalf("grass side texture: got %d, want 3", got)
	}
	if got := tbl.Texture(world.BlockGrass, world.FaceYMin); got != 2 {
		t.Fatalf("grass bottom texture: got %d, want 2", got)
	}
	if got := tbl.MaxTextureLoc(); got != 56 {
		t.Fatalf("MaxTextureLoc: got %d, want 56", got)
	}
	if id, ok := tbl.ByName("glass"); !ok || id != world.BlockGlass {
		t.Fatalf("ByName(glass): got %d %v", id, ok)
	}
	if tbl.Draw[200] != DrawGas || tbl.Defined[200] {
		t.Fatalf("undefined ids should behave like air")
	}
}

func TestHiddenMask(t *testing.T) {
	tbl := Default()
	cases := []struct {
		name   string
		a, b   world.BlockID
		face   world.Face
		hidden bool
	}{
		{"stone by stone", world.BlockStone, world.BlockStone, world.FaceXMin, true},
		{"stone by dirt", world.BlockStone, world.BlockDirt, world.FaceYMax, true},
		{"stone by air", world.BlockStone, world.BlockAir, world.FaceXMin, false},
		{"stone by glass", world.BlockStone, world.BlockGlass, world.FaceZMax, false},
		{"glass by glass", world.BlockGlass, world.BlockGlass, world.FaceZMax, true},
		{"leaves by leaves", world.BlockLeaves, world.BlockLeaves, world.FaceXMax, false},
		{"water by water", world.BlockWater, world.BlockWater, world.FaceYMax, true},
		{"water by still water", world.BlockWater, world.BlockStillWater, world.FaceXMin, true},
		{"stone by water", world.BlockStone, world.BlockWater, world.FaceYMax, false},
		{"water by stone", world.BlockWater, world.BlockStone, world.FaceXMin, true},
		{"stone by lava", world.BlockStone, world.BlockLava, world.FaceXMin, false},
		{"stone by flower", world.BlockStone, world.BlockRose, world.FaceYMax, false},
		{"slab top by stone", world.BlockSlab, world.BlockStone, world.FaceYMax, false},
		{"slab bottom by stone", world.BlockSlab, world.BlockStone, world.FaceYMin, true},
		{"stone top by slab", world.BlockStone, world.BlockSlab, world.FaceYMax, true},
		{"stone side by slab", world.BlockStone, world.BlockSlab, world.FaceXMax, false},
		{"slab side by slab", world.BlockSlab, world.BlockSlab, world.FaceXMax, true},
	}
	for _, tc := range cases {
		if got := tbl.IsFaceHidden(tc.a, tc.b, tc.face); got != tc.hidden {
			t.Errorf("%s: got hidden=%v, want %v", tc.name, got, tc.hidden)
		}
	}
}

func TestStretchAndLightOffset(t *testing.T) {
	tbl := Default()
	if got := tbl.CanStretch[world.BlockStone]; got != faceMaskAll {
		t.Fatalf("stone stretch: got %06b, want all", got)
	}
	if got := tbl.CanStretch[world.BlockWater]; got != 1<<world.FaceYMax {
		t.Fatalf("water stretch: got %06b, want top only", got)
	}
	if got := tbl.CanStretch[world.BlockSlab]; got != 1<<world.FaceYMin|1<<world.FaceYMax {
		t.Fatalf("slab stretch: got %06b, want top and bottom", got)
	}
	if got := tbl.CanStretch[world.BlockRose]; got != 0 {
		t.Fatalf("sprite stretch: got %06b, want 0", got)
	}
	if tbl.LightOffset[world.BlockSlab]&(1<<world.FaceYMax) != 0 {
		t.Fatalf("slab top is not flush and must not take neighbour light")
	}
	if tbl.LightOffset[world.BlockStone] != faceMaskAll {
		t.Fatalf("stone light offset: got %06b", tbl.LightOffset[world.BlockStone])
	}
	if tbl.RenderMaxBB[world.BlockWater].Y() >= 1 {
		t.Fatalf("water should render below the cell top, got %v", tbl.RenderMaxBB[world.BlockWater])
	}
}

func TestDefineRecalculates(t *testing.T) {
	tbl := Default()
	tbl.Define(Definition{ID: 100, Name: "wall", Draw: DrawOpaque, Max: [3]float32{1, 1, 1}, BlocksLight: true})
	if !tbl.IsFaceHidden(world.BlockStone, 100, world.FaceXMin) {
		t.Fatalf("new opaque block should hide stone faces")
	}
	tbl.Undefine(100)
	if tbl.IsFaceHidden(world.BlockStone, 100, world.FaceXMin) {
		t.Fatalf("undefined block should not hide faces")
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	bad := map[string]string{
		"unknown draw":   `{"blocks":[{"id":1,"name":"x","draw":"shiny"}]}`,
		"id too large":   `{"blocks":[{"id":300,"name":"x","draw":"opaque"}]}`,
		"extra field":    `{"blocks":[{"id":1,"name":"x","draw":"opaque","colour":1}]}`,
		"missing blocks": `{}`,
		"bad tint":       `{"blocks":[{"id":1,"name":"x","draw":"opaque","tint":"red"}]}`,
		"duplicate id":   `{"blocks":[{"id":1,"name":"x","draw":"opaque"},{"id":1,"name":"y","draw":"opaque"}]}`,
		"empty bounds":   `{"blocks":[{"id":1,"name":"x","draw":"opaque","min":[0,8,0],"max":[16,8,16]}]}`,
		"not json":       `{"blocks":`,
	}
	for name, raw := range bad {
		if _, err := ParseDefinitions([]byte(raw)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestParseOptionalFields(t *testing.T) {
	raw := `{"blocks":[{"id":5,"name":"tinted","draw":"opaque","tint":"#80FF00","stretch":["ymax"],
		"textures":{"all":3,"top":9,"xmin":11}}]}`
	defs, err := ParseDefinitions([]byte(raw))
	if err != nil {
		t.Fatalf("ParseDefinitions: %v", err)
	}
	d := defs[0]
	if !d.Tinted || d.Tint != [3]uint8{0x80, 0xFF, 0x00} {
		t.Fatalf("tint: got %v %v", d.Tinted, d.Tint)
	}
	if !d.HasStretch || d.Stretch != 1<<world.FaceYMax {
		t.Fatalf("stretch: got %06b", d.Stretch)
	}
	want := [world.FaceCount]uint16{11, 3, 3, 3, 3, 9}
	for f := range world.FaceCount {
		if uint16(d.Textures[f]) != want[f] {
			t.Errorf("texture face %d: got %d, want %d", f, d.Textures[f], want[f])
		}
	}
	if !d.BlocksLight {
		t.Fatalf("opaque blocks block light by default")
	}
}
